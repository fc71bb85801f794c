package pipeline

import (
	"testing"
	"time"

	"gridstats/internal"
)

func testGame() internal.GameRow {
	return internal.GameRow{
		EventDate:         time.Date(2024, 9, 8, 0, 0, 0, 0, time.UTC),
		Week:              1,
		TmName:            "A",
		OppName:           "B",
		TmLocation:        "H",
		OppLocation:       "A",
		TmScore:           24,
		OppScore:          17,
		BoxscoreStatsLink: "/boxscores/test.htm",
	}
}

func TestBuildPerspectives(t *testing.T) {
	game := testGame()
	meta := internal.GameMeta{TmSpread: -3, OppSpread: 3}

	// Stat rows arrive unordered; the resolver puts them into role order.
	statsB := internal.RawRow{"market": "B", "rush_att": "25", "rush_yds": "110"}
	statsA := internal.RawRow{"market": "A", "rush_att": "28", "rush_yds": "142"}
	tmRaw, oppRaw, err := ResolveTeams([]internal.RawRow{statsB, statsA}, game.TmName, game.OppName)
	if err != nil {
		t.Fatal(err)
	}

	p1, p2 := BuildPerspectives(game,
		ExtractTeamStats(tmRaw, game.TmName),
		ExtractTeamStats(oppRaw, game.OppName),
		meta)

	if p1.Team != "A" || p1.Opponent != "B" {
		t.Fatalf("p1 teams = %q vs %q", p1.Team, p1.Opponent)
	}
	if p1.TmScore != 24 || p1.OppScore != 17 {
		t.Fatalf("p1 scores = %v / %v", p1.TmScore, p1.OppScore)
	}
	if p1.TmLocation != "H" || p1.OppLocation != "A" {
		t.Fatalf("p1 locations = %q / %q", p1.TmLocation, p1.OppLocation)
	}
	if p1.TmSpread != -3 || p1.OppSpread != 3 {
		t.Fatalf("p1 spreads = %v / %v", p1.TmSpread, p1.OppSpread)
	}
	if p1.Week != 1 || p1.EventDate != "2024-09-08" {
		t.Fatalf("p1 week/date = %d / %q", p1.Week, p1.EventDate)
	}
	if p1.Stats.RushAtt != 28 || p1.Stats.RushYds != 142 {
		t.Fatalf("p1 stats = %+v", p1.Stats)
	}
	if p2.Stats.RushAtt != 25 || p2.Stats.RushYds != 110 {
		t.Fatalf("p2 stats = %+v", p2.Stats)
	}

	assertMirror(t, p1, p2)
}

func TestBuildPerspectivesAwaySpread(t *testing.T) {
	game := testGame()
	game.TmLocation, game.OppLocation = "A", "H"
	meta := internal.GameMeta{TmSpread: -3, OppSpread: 3}

	// The raw spread fields are in the box score's home/away frame; with the
	// primary team away they must be re-attributed before mirroring.
	p1, p2 := BuildPerspectives(game,
		internal.TeamStatRow{Team: "A", Values: internal.RawRow{}},
		internal.TeamStatRow{Team: "B", Values: internal.RawRow{}},
		meta)

	if p1.TmSpread != 3 || p1.OppSpread != -3 {
		t.Fatalf("p1 spreads = %v / %v, want inverted", p1.TmSpread, p1.OppSpread)
	}
	assertMirror(t, p1, p2)
}

func TestBuildPerspectivesCleansStats(t *testing.T) {
	game := testGame()
	tm := ExtractTeamStats(internal.RawRow{"pass_yds": "  203 ", "turnovers": "N/A"}, "A")
	opp := ExtractTeamStats(internal.RawRow{}, "B")

	p1, p2 := BuildPerspectives(game, tm, opp, internal.GameMeta{})

	if p1.Stats.PassYds != 203 {
		t.Fatalf("pass_yds = %v", p1.Stats.PassYds)
	}
	if p1.Stats.Turnovers != 0 {
		t.Fatalf("turnovers = %v", p1.Stats.Turnovers)
	}
	if p2.Stats.TimeOfPossession != "00:00" {
		t.Fatalf("time_of_possession = %q", p2.Stats.TimeOfPossession)
	}
}

func assertMirror(t *testing.T, p1, p2 internal.PerspectiveRecord) {
	t.Helper()
	if p1.Team != p2.Opponent || p1.Opponent != p2.Team {
		t.Fatalf("team mirror broken: %q/%q vs %q/%q", p1.Team, p1.Opponent, p2.Team, p2.Opponent)
	}
	if p1.TmScore != p2.OppScore || p1.OppScore != p2.TmScore {
		t.Fatalf("score mirror broken: %v/%v vs %v/%v", p1.TmScore, p1.OppScore, p2.TmScore, p2.OppScore)
	}
	if p1.TmLocation != p2.OppLocation || p1.OppLocation != p2.TmLocation {
		t.Fatalf("location mirror broken: %q/%q vs %q/%q", p1.TmLocation, p1.OppLocation, p2.TmLocation, p2.OppLocation)
	}
	if p1.TmSpread != p2.OppSpread || p1.OppSpread != p2.TmSpread {
		t.Fatalf("spread mirror broken: %v/%v vs %v/%v", p1.TmSpread, p1.OppSpread, p2.TmSpread, p2.OppSpread)
	}
	if p1.Week != p2.Week || p1.EventDate != p2.EventDate {
		t.Fatalf("shared fields differ: %d/%s vs %d/%s", p1.Week, p1.EventDate, p2.Week, p2.EventDate)
	}
}
