package internal

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// RawRow is one loosely typed payload row from the source: field name to
// whatever scalar the page produced. All reads go through the accessors so
// extractors never depend on the source's exact value types.
type RawRow map[string]any

// Lookup returns the value under key, or def when the key is absent or nil.
func (r RawRow) Lookup(key string, def any) any {
	if v, ok := r[key]; ok && v != nil {
		return v
	}
	return def
}

// Text returns the trimmed string under key, or "" when the value is absent
// or not string-like.
func (r RawRow) Text(key string) string {
	switch v := r[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return ""
	}
}

// GameRow is one scheduled game in the schedule's team/opponent frame.
type GameRow struct {
	EventDate         time.Time
	Week              int
	TmName            string
	OppName           string
	TmLocation        string // H, A or N
	OppLocation       string
	TmScore           float64
	OppScore          float64
	BoxscoreStatsLink string
}

func (g GameRow) Matchup() string {
	return g.TmName + " vs " + g.OppName
}

// TeamStatRow is the structural projection of one raw per-team statistics
// payload: exactly the canonical stat keys, defaults applied, values still
// uncleaned. Cleaning happens when perspectives are built.
type TeamStatRow struct {
	Team   string
	Values RawRow
}

// TeamStats is the cleaned per-team statistics record.
type TeamStats struct {
	RushAtt           float64 `json:"rush_att"`
	RushYds           float64 `json:"rush_yds"`
	RushTds           float64 `json:"rush_tds"`
	PassCmp           float64 `json:"pass_cmp"`
	PassAtt           float64 `json:"pass_att"`
	PassYds           float64 `json:"pass_yds"`
	PassTds           float64 `json:"pass_tds"`
	PassInt           float64 `json:"pass_int"`
	PasserRating      float64 `json:"passer_rating"`
	NetPassYds        float64 `json:"net_pass_yds"`
	TotalYds          float64 `json:"total_yds"`
	TimesSacked       float64 `json:"times_sacked"`
	YdsSackedFor      float64 `json:"yds_sacked_for"`
	Fumbles           float64 `json:"fumbles"`
	FumblesLost       float64 `json:"fumbles_lost"`
	Turnovers         float64 `json:"turnovers"`
	Penalties         float64 `json:"penalties"`
	PenaltyYds        float64 `json:"penalty_yds"`
	FirstDowns        float64 `json:"first_downs"`
	ThirdDownConv     float64 `json:"third_down_conv"`
	ThirdDownAtt      float64 `json:"third_down_att"`
	ThirdDownConvPct  float64 `json:"third_down_conv_pct"`
	FourthDownConv    float64 `json:"fourth_down_conv"`
	FourthDownAtt     float64 `json:"fourth_down_att"`
	FourthDownConvPct float64 `json:"fourth_down_conv_pct"`
	TimeOfPossession  string  `json:"time_of_possession"`
}

// GameMeta is the cleaned game-level context shared by both perspectives.
// Spread fields are in the box score's own home/away frame; the perspective
// builder re-attributes them to the schedule row's team/opponent frame.
type GameMeta struct {
	TmSpread                float64 `json:"tm_spread"`
	OppSpread               float64 `json:"opp_spread"`
	Total                   float64 `json:"total"`
	Attendance              float64 `json:"attendance"`
	Duration                string  `json:"duration"`
	RoofType                string  `json:"roof_type"`
	SurfaceType             string  `json:"surface_type"`
	WonToss                 string  `json:"won_toss"`
	WonTossDecision         string  `json:"won_toss_decision"`
	WonTossOvertime         string  `json:"won_toss_overtime"`
	WonTossOvertimeDecision string  `json:"won_toss_overtime_decision"`
	Temperature             float64 `json:"temperature"`
	HumidityPct             float64 `json:"humidity_pct"`
	WindSpeed               float64 `json:"wind_speed"`
}

// PerspectiveRecord is one team's complete flattened view of one game: its
// cleaned stats, the shared game context and the game-relative fields. Two
// records per game, satisfying the mirror invariant.
type PerspectiveRecord struct {
	Team        string    `json:"team"`
	Opponent    string    `json:"opponent"`
	TmLocation  string    `json:"tm_location"`
	OppLocation string    `json:"opp_location"`
	TmScore     float64   `json:"tm_score"`
	OppScore    float64   `json:"opp_score"`
	TmSpread    float64   `json:"tm_spread"`
	OppSpread   float64   `json:"opp_spread"`
	Week        int       `json:"week"`
	EventDate   string    `json:"event_date"`
	Stats       TeamStats `json:"stats"`
	Meta        GameMeta  `json:"meta"`
}

// ErrTeamOrder means the raw stat pair carries no team-identifying field, so
// the rows cannot be matched to the schedule's team/opponent roles.
var ErrTeamOrder = errors.New("team order unresolved")

// SourceError wraps a failed fetch from the schedule, statistics or metadata
// source.
type SourceError struct {
	Op  string
	Ref string
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s %s: %v", e.Op, e.Ref, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// GameFailure records one skipped game in a batch run.
type GameFailure struct {
	EventDate string `json:"event_date"`
	Matchup   string `json:"matchup"`
	Stage     string `json:"stage"`
	Reason    string `json:"reason"`
}

// RunReport is the outcome of one batch run: records in schedule order,
// primary perspective before its mirror, plus every per-game failure.
type RunReport struct {
	TraceID  string
	Season   int
	Window   string
	Selected int
	Records  []PerspectiveRecord
	Failures []GameFailure
	Elapsed  time.Duration
}

// Succeeded is the number of games that produced their perspective pair.
func (r *RunReport) Succeeded() int { return len(r.Records) / 2 }
