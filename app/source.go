// Package app wires the source adapters behind shared HTTP routes for both
// local and Lambda execution.
package app

import (
	"context"

	"github.com/ShahinyanDav/chessnaptracker/app/models"
)

// Site names accepted in request paths.
const (
	SiteChessCom = "chesscom"
	SiteLichess  = "lichess"
)

// GameSource is the shared capability both service adapters implement. Each
// adapter keeps its parsing state (previous-clock trackers, move counters)
// private to a single FetchGames call.
type GameSource interface {
	FetchGames(ctx context.Context, username string, opts models.FetchOptions) ([]models.NormalizedGame, error)
}
