package pipeline

import "gridstats/internal"

// BuildPerspectives turns one game into its two mirrored records. The
// metadata spread fields arrive in the box score's home/away frame; when the
// schedule row's primary team is the away side they are swapped into the
// row's team/opponent frame before mirroring. The mirror then swaps names,
// locations, scores and the already-attributed spreads.
func BuildPerspectives(game internal.GameRow, tm, opp internal.TeamStatRow, meta internal.GameMeta) (internal.PerspectiveRecord, internal.PerspectiveRecord) {
	tmSpread, oppSpread := meta.TmSpread, meta.OppSpread
	if game.TmLocation == "A" {
		tmSpread, oppSpread = oppSpread, tmSpread
	}

	primary := internal.PerspectiveRecord{
		Team:        game.TmName,
		Opponent:    game.OppName,
		TmLocation:  game.TmLocation,
		OppLocation: game.OppLocation,
		TmScore:     game.TmScore,
		OppScore:    game.OppScore,
		TmSpread:    tmSpread,
		OppSpread:   oppSpread,
		Week:        game.Week,
		EventDate:   game.EventDate.Format("2006-01-02"),
		Stats:       cleanStats(tm),
		Meta:        meta,
	}

	mirror := primary
	mirror.Team, mirror.Opponent = primary.Opponent, primary.Team
	mirror.TmLocation, mirror.OppLocation = primary.OppLocation, primary.TmLocation
	mirror.TmScore, mirror.OppScore = primary.OppScore, primary.TmScore
	mirror.TmSpread, mirror.OppSpread = primary.OppSpread, primary.TmSpread
	mirror.Stats = cleanStats(opp)

	return primary, mirror
}

// cleanStats runs the projected stat values through the cleaner, giving every
// perspective record uniform numeric typing.
func cleanStats(row internal.TeamStatRow) internal.TeamStats {
	v := row.Values
	return internal.TeamStats{
		RushAtt:           Number(v["rush_att"]),
		RushYds:           Number(v["rush_yds"]),
		RushTds:           Number(v["rush_tds"]),
		PassCmp:           Number(v["pass_cmp"]),
		PassAtt:           Number(v["pass_att"]),
		PassYds:           Number(v["pass_yds"]),
		PassTds:           Number(v["pass_tds"]),
		PassInt:           Number(v["pass_int"]),
		PasserRating:      Number(v["passer_rating"]),
		NetPassYds:        Number(v["net_pass_yds"]),
		TotalYds:          Number(v["total_yds"]),
		TimesSacked:       Number(v["times_sacked"]),
		YdsSackedFor:      Number(v["yds_sacked_for"]),
		Fumbles:           Number(v["fumbles"]),
		FumblesLost:       Number(v["fumbles_lost"]),
		Turnovers:         Number(v["turnovers"]),
		Penalties:         Number(v["penalties"]),
		PenaltyYds:        Number(v["penalty_yds"]),
		FirstDowns:        Number(v["first_downs"]),
		ThirdDownConv:     Number(v["third_down_conv"]),
		ThirdDownAtt:      Number(v["third_down_att"]),
		ThirdDownConvPct:  Number(v["third_down_conv_pct"]),
		FourthDownConv:    Number(v["fourth_down_conv"]),
		FourthDownAtt:     Number(v["fourth_down_att"]),
		FourthDownConvPct: Number(v["fourth_down_conv_pct"]),
		TimeOfPossession:  Text(v["time_of_possession"]),
	}
}
