package chesscom

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ShahinyanDav/chessnaptracker/app/models"
	"github.com/ShahinyanDav/chessnaptracker/app/timecontrol"
)

// reArchiveMonth matches the trailing "/YYYY/MM" of a monthly archive URL.
var reArchiveMonth = regexp.MustCompile(`/(\d{4})/(\d{2})$`)

// FetchGames retrieves, filters, and normalizes the player's games within the
// requested window. It fails with models.ErrNoGamesFound when the archive
// index lookup fails, no archive overlaps the window, or nothing survives
// filtering.
func (c *Client) FetchGames(ctx context.Context, username string, opts models.FetchOptions) ([]models.NormalizedGame, error) {
	startTs, endTs, err := opts.Window()
	if err != nil {
		return nil, err
	}

	archives, err := c.fetchArchives(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNoGamesFound) {
			return nil, err
		}
		c.log.Warnw("archive index lookup failed", "username", username, "error", err)
		return nil, models.ErrNoGamesFound
	}

	var out []models.NormalizedGame
	// newest month first
	for i := len(archives) - 1; i >= 0; i-- {
		monthURL := archives[i]
		if !archiveOverlaps(monthURL, startTs, endTs) {
			continue
		}
		mg, err := c.fetchMonthly(ctx, monthURL)
		if err != nil {
			// soft-fail a month, the rest of the query still proceeds
			c.log.Warnw("skipping archive", "url", monthURL, "error", err)
			continue
		}
		for _, g := range mg.Games {
			if ng, ok := c.normalize(username, g, opts.GameType, startTs, endTs); ok {
				out = append(out, ng)
			}
		}
	}

	if len(out) == 0 {
		return nil, models.ErrNoGamesFound
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// archiveOverlaps reports whether the archive's month intersects the
// inclusive [startTs, endTs] window. Archives with an unparsable URL are
// treated as non-overlapping.
func archiveOverlaps(monthURL string, startTs, endTs int64) bool {
	m := reArchiveMonth.FindStringSubmatch(monthURL)
	if m == nil {
		return false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, 0).Add(-time.Second)
	return first.Unix() <= endTs && last.Unix() >= startTs
}

// normalize applies the filtering chain and converts one raw game. The second
// return value is false when the game does not qualify.
func (c *Client) normalize(username string, g models.ChessComGame, gameType models.GameType, startTs, endTs int64) (models.NormalizedGame, bool) {
	if g.EndTime == 0 || g.EndTime < startTs || g.EndTime > endTs {
		return models.NormalizedGame{}, false
	}
	if !gameType.Matches(g.TimeClass) {
		return models.NormalizedGame{}, false
	}
	if g.Rules != "" && g.Rules != "chess" {
		return models.NormalizedGame{}, false
	}
	if g.InitialSetup != "" && g.InitialSetup != models.StartingFEN {
		return models.NormalizedGame{}, false
	}

	userIsWhite := strings.EqualFold(g.White.Username, username)
	me, opp := g.White, g.Black
	if !userIsWhite {
		me, opp = g.Black, g.White
	}
	lowerOpp := strings.ToLower(opp.Username)
	if strings.Contains(lowerOpp, "bot") || strings.Contains(lowerOpp, "computer") {
		return models.NormalizedGame{}, false
	}

	result := models.ResultDraw
	switch {
	case me.Result == "win":
		result = models.ResultWin
	case opp.Result == "win":
		result = models.ResultLoss
	}

	label := "casual"
	if g.Rated {
		label = "rated"
	}

	return models.NormalizedGame{
		ID:          gameID(g),
		Date:        time.Unix(g.EndTime, 0).UTC(),
		WhitePlayer: g.White.Username,
		BlackPlayer: g.Black.Username,
		Result:      result,
		Rating:      me.Rating,
		GameType:    fmt.Sprintf("%s (%s)", g.TimeClass, label),
		TimeControl: timecontrol.FormatChessCom(g.TimeControl),
		MoveTimings: parseMoveTimings(g.PGN),
	}, true
}

// gameID extracts the live game id from the game URL; the analysis deep link
// needs the numeric id, not the uuid.
func gameID(g models.ChessComGame) string {
	if idx := strings.LastIndex(g.URL, "/"); idx != -1 && idx+1 < len(g.URL) {
		return g.URL[idx+1:]
	}
	return g.UUID
}
