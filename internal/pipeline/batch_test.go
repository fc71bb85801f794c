package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"gridstats/internal"
	"gridstats/internal/config"
	"gridstats/internal/source"
)

type fakeSource struct {
	games       []internal.GameRow
	scheduleErr error
	stats       map[string][]internal.RawRow
	meta        map[string]internal.RawRow
	statsErr    map[string]error
}

var _ source.Source = (*fakeSource)(nil)

func (f *fakeSource) Gamelogs(_ context.Context, _ int) ([]internal.GameRow, error) {
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	return f.games, nil
}

func (f *fakeSource) GamelogStatistics(_ context.Context, ref string) ([]internal.RawRow, error) {
	if err := f.statsErr[ref]; err != nil {
		return nil, err
	}
	return f.stats[ref], nil
}

func (f *fakeSource) GamelogMetadata(_ context.Context, ref string) (internal.RawRow, error) {
	return f.meta[ref], nil
}

func testProcessor(src source.Source) *Processor {
	cfg := config.Config{
		Season:      2024,
		SeasonStart: time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProcessor(src, cfg, logger)
}

func fakeGame(date time.Time, tm, opp, ref string) internal.GameRow {
	return internal.GameRow{
		EventDate:         date,
		Week:              1,
		TmName:            tm,
		OppName:           opp,
		TmLocation:        "H",
		OppLocation:       "A",
		TmScore:           24,
		OppScore:          17,
		BoxscoreStatsLink: ref,
	}
}

func TestRunSkipsFailedGames(t *testing.T) {
	day := time.Date(2024, 9, 8, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{
		games: []internal.GameRow{
			fakeGame(day, "A", "B", "/box/good"),
			fakeGame(day, "C", "D", "/box/bad"),
			fakeGame(day.AddDate(0, 0, 7), "E", "F", "/box/other-week"),
		},
		stats: map[string][]internal.RawRow{
			"/box/good": {
				{"market": "B", "rush_att": "25"},
				{"market": "A", "rush_att": "28"},
			},
		},
		meta: map[string]internal.RawRow{
			"/box/good": {"tm_spread": "-3", "opp_spread": "3"},
			"/box/bad":  {},
		},
		statsErr: map[string]error{
			"/box/bad": &internal.SourceError{Op: "gamelog_statistics", Ref: "/box/bad", Err: fmt.Errorf("status 404")},
		},
	}

	report, err := testProcessor(src).Run(context.Background(), DateWindow(day))
	if err != nil {
		t.Fatal(err)
	}

	if report.Selected != 2 {
		t.Fatalf("selected = %d", report.Selected)
	}
	if report.Succeeded() != 1 || len(report.Records) != 2 {
		t.Fatalf("succeeded = %d, records = %d", report.Succeeded(), len(report.Records))
	}
	if len(report.Failures) != 1 {
		t.Fatalf("failures = %d", len(report.Failures))
	}
	failure := report.Failures[0]
	if failure.Stage != "statistics" || failure.Matchup != "C vs D" {
		t.Fatalf("failure = %+v", failure)
	}

	// Primary perspective first, mirror second, resolved against the
	// unordered stat pair.
	p1, p2 := report.Records[0], report.Records[1]
	if p1.Team != "A" || p2.Team != "B" {
		t.Fatalf("records = %q then %q", p1.Team, p2.Team)
	}
	if p1.Stats.RushAtt != 28 || p2.Stats.RushAtt != 25 {
		t.Fatalf("stats = %v / %v", p1.Stats.RushAtt, p2.Stats.RushAtt)
	}
	if p1.Team != p2.Opponent || p1.TmScore != p2.OppScore || p1.TmLocation != p2.OppLocation {
		t.Fatal("mirror invariant broken")
	}
}

func TestRunResolutionFailureSkipsGame(t *testing.T) {
	day := time.Date(2024, 9, 8, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{
		games: []internal.GameRow{fakeGame(day, "A", "B", "/box/1")},
		stats: map[string][]internal.RawRow{
			"/box/1": {{"rush_att": "25"}, {"rush_att": "28"}},
		},
		meta: map[string]internal.RawRow{"/box/1": {}},
	}

	report, err := testProcessor(src).Run(context.Background(), DateWindow(day))
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Records) != 0 || len(report.Failures) != 1 {
		t.Fatalf("records = %d, failures = %d", len(report.Records), len(report.Failures))
	}
	if report.Failures[0].Stage != "resolve" {
		t.Fatalf("stage = %q", report.Failures[0].Stage)
	}
}

func TestRunEmptyWindow(t *testing.T) {
	day := time.Date(2024, 9, 8, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{
		games: []internal.GameRow{fakeGame(day, "A", "B", "/box/1")},
	}

	report, err := testProcessor(src).Run(context.Background(), DateWindow(day.AddDate(0, 0, 30)))
	if err != nil {
		t.Fatal(err)
	}
	if report.Selected != 0 || len(report.Records) != 0 || len(report.Failures) != 0 {
		t.Fatalf("report = %+v", report)
	}
}

func TestRunScheduleFailureAborts(t *testing.T) {
	src := &fakeSource{
		scheduleErr: &internal.SourceError{Op: "gamelogs", Ref: "/years/2024/games.htm", Err: fmt.Errorf("status 503")},
	}
	_, err := testProcessor(src).Run(context.Background(), WeekWindow(1))
	if err == nil {
		t.Fatal("expected batch abort when the schedule fetch fails")
	}
}
