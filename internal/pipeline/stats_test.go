package pipeline

import (
	"testing"

	"gridstats/internal"
)

func TestExtractTeamStatsDefaults(t *testing.T) {
	row := ExtractTeamStats(internal.RawRow{}, "Baltimore Ravens")

	if row.Team != "Baltimore Ravens" {
		t.Fatalf("team = %q", row.Team)
	}
	if len(row.Values) != len(statFields) {
		t.Fatalf("got %d fields, want %d", len(row.Values), len(statFields))
	}
	for _, field := range statFields {
		v, ok := row.Values[field]
		if !ok {
			t.Fatalf("field %q missing", field)
		}
		if field == "time_of_possession" {
			if v != possessionDefault {
				t.Fatalf("time_of_possession default = %v", v)
			}
			continue
		}
		if v != float64(0) {
			t.Fatalf("field %q default = %v, want 0", field, v)
		}
	}
}

func TestExtractTeamStatsCarriesRawValues(t *testing.T) {
	raw := internal.RawRow{
		"rush_att":           "28",
		"rush_yds":           142,
		"time_of_possession": "31:20",
		"unrelated":          "dropped",
	}
	row := ExtractTeamStats(raw, "Ravens")

	// Projection only: values pass through uncleaned, unknown keys are dropped.
	if row.Values["rush_att"] != "28" {
		t.Fatalf("rush_att = %v", row.Values["rush_att"])
	}
	if row.Values["rush_yds"] != 142 {
		t.Fatalf("rush_yds = %v", row.Values["rush_yds"])
	}
	if row.Values["time_of_possession"] != "31:20" {
		t.Fatalf("time_of_possession = %v", row.Values["time_of_possession"])
	}
	if _, ok := row.Values["unrelated"]; ok {
		t.Fatal("unknown key survived projection")
	}
}
