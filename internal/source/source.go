package source

import (
	"context"

	"gridstats/internal"
)

// Source is the box-score data source. Gamelogs enumerates a season's
// schedule; the other two fetch one game's payloads by its box-score
// reference. Implementations return *internal.SourceError on fetch failure.
type Source interface {
	Gamelogs(ctx context.Context, season int) ([]internal.GameRow, error)
	GamelogStatistics(ctx context.Context, boxscoreRef string) ([]internal.RawRow, error)
	GamelogMetadata(ctx context.Context, boxscoreRef string) (internal.RawRow, error)
}
