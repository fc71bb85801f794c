package pipeline

import "gridstats/internal"

// ExtractMetadata projects the fixed game-context field set from the raw
// payload, every field through the cleaner: numeric fields with the numeric
// expectation, descriptive fields with the string expectation. No field of
// the result is ever a missing marker.
func ExtractMetadata(raw internal.RawRow) internal.GameMeta {
	return internal.GameMeta{
		TmSpread:                Number(raw["tm_spread"]),
		OppSpread:               Number(raw["opp_spread"]),
		Total:                   Number(raw["total"]),
		Attendance:              Number(raw["attendance"]),
		Duration:                Text(raw["duration"]),
		RoofType:                Text(raw["roof_type"]),
		SurfaceType:             Text(raw["surface_type"]),
		WonToss:                 Text(raw["won_toss"]),
		WonTossDecision:         Text(raw["won_toss_decision"]),
		WonTossOvertime:         Text(raw["won_toss_overtime"]),
		WonTossOvertimeDecision: Text(raw["won_toss_overtime_decision"]),
		Temperature:             Number(raw["temperature"]),
		HumidityPct:             Number(raw["humidity_pct"]),
		WindSpeed:               Number(raw["wind_speed"]),
	}
}
