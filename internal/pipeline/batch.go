package pipeline

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"gridstats/internal"
	"gridstats/internal/config"
	"gridstats/internal/source"
)

const (
	stageMetadata   = "metadata"
	stageStatistics = "statistics"
	stageResolve    = "resolve"
)

// Processor runs the batch: select in-window games from the schedule, build
// the two perspective records per game, skip and record per-game failures.
type Processor struct {
	src source.Source
	cfg config.Config
	log *slog.Logger
}

func NewProcessor(src source.Source, cfg config.Config, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{src: src, cfg: cfg, log: logger}
}

// Run processes every scheduled game inside the window. A failed game never
// aborts the batch; it is logged, counted and skipped. Only a failed schedule
// fetch aborts, since no games can be enumerated at all. An empty window is a
// valid empty report.
func (p *Processor) Run(ctx context.Context, window Window) (*internal.RunReport, error) {
	start := time.Now()

	games, err := p.src.Gamelogs(ctx, p.cfg.Season)
	if err != nil {
		return nil, fmt.Errorf("fetch season %d schedule: %w", p.cfg.Season, err)
	}

	report := &internal.RunReport{
		TraceID: traceID(),
		Season:  p.cfg.Season,
		Window:  window.Label(),
	}

	for _, game := range games {
		if !window.Contains(p.cfg.SeasonStart, game.EventDate) {
			continue
		}
		report.Selected++

		primary, mirror, stage, err := p.processGame(ctx, game)
		if err != nil {
			p.log.Warn("skipping game",
				"matchup", game.Matchup(),
				"date", game.EventDate.Format("2006-01-02"),
				"stage", stage,
				"err", err)
			report.Failures = append(report.Failures, internal.GameFailure{
				EventDate: game.EventDate.Format("2006-01-02"),
				Matchup:   game.Matchup(),
				Stage:     stage,
				Reason:    err.Error(),
			})
			continue
		}
		report.Records = append(report.Records, primary, mirror)
	}

	report.Elapsed = time.Since(start)
	return report, nil
}

// ProcessGame builds the perspective pair for a single scheduled game.
func (p *Processor) ProcessGame(ctx context.Context, game internal.GameRow) (internal.PerspectiveRecord, internal.PerspectiveRecord, error) {
	primary, mirror, stage, err := p.processGame(ctx, game)
	if err != nil {
		return internal.PerspectiveRecord{}, internal.PerspectiveRecord{}, fmt.Errorf("%s: %w", stage, err)
	}
	return primary, mirror, nil
}

func (p *Processor) processGame(ctx context.Context, game internal.GameRow) (internal.PerspectiveRecord, internal.PerspectiveRecord, string, error) {
	var zero internal.PerspectiveRecord

	metaRaw, err := p.src.GamelogMetadata(ctx, game.BoxscoreStatsLink)
	if err != nil {
		return zero, zero, stageMetadata, err
	}

	pair, err := p.src.GamelogStatistics(ctx, game.BoxscoreStatsLink)
	if err != nil {
		return zero, zero, stageStatistics, err
	}

	tmRaw, oppRaw, err := ResolveTeams(pair, game.TmName, game.OppName)
	if err != nil {
		return zero, zero, stageResolve, err
	}

	tm := ExtractTeamStats(tmRaw, game.TmName)
	opp := ExtractTeamStats(oppRaw, game.OppName)
	meta := ExtractMetadata(metaRaw)

	primary, mirror := BuildPerspectives(game, tm, opp, meta)
	return primary, mirror, "", nil
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
