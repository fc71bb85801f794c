package pipeline

import "gridstats/internal"

// statFields is the canonical per-team stat column set, in export order.
var statFields = []string{
	"rush_att",
	"rush_yds",
	"rush_tds",
	"pass_cmp",
	"pass_att",
	"pass_yds",
	"pass_tds",
	"pass_int",
	"passer_rating",
	"net_pass_yds",
	"total_yds",
	"times_sacked",
	"yds_sacked_for",
	"fumbles",
	"fumbles_lost",
	"turnovers",
	"penalties",
	"penalty_yds",
	"first_downs",
	"third_down_conv",
	"third_down_att",
	"third_down_conv_pct",
	"fourth_down_conv",
	"fourth_down_att",
	"fourth_down_conv_pct",
	"time_of_possession",
}

const possessionDefault = "00:00"

// ExtractTeamStats projects one raw per-team payload onto the canonical stat
// field set. Absent fields get their declared default; present values are
// carried as-is. This is a pure structural projection, cleaning is an
// explicit later pass in BuildPerspectives.
func ExtractTeamStats(raw internal.RawRow, team string) internal.TeamStatRow {
	values := make(internal.RawRow, len(statFields))
	for _, field := range statFields {
		var def any = float64(0)
		if field == "time_of_possession" {
			def = possessionDefault
		}
		values[field] = raw.Lookup(field, def)
	}
	return internal.TeamStatRow{Team: team, Values: values}
}
