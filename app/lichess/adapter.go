// Package lichess fetches and normalizes a player's Lichess game history from
// the NDJSON export endpoint.
package lichess

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ShahinyanDav/chessnaptracker/app/models"
	"github.com/ShahinyanDav/chessnaptracker/app/timecontrol"
	"github.com/ShahinyanDav/chessnaptracker/pkg/logger"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://lichess.org"

// scanner line cap; a long game with clock tags stays well under this.
const maxLineBytes = 1 << 20

// Client is the Lichess source adapter.
type Client struct {
	httpc   *http.Client
	baseURL string
	log     *zap.SugaredLogger
}

func NewClient() *Client {
	return &Client{
		httpc:   &http.Client{Timeout: 15 * time.Second},
		baseURL: defaultBaseURL,
		log:     logger.New("lichess"),
	}
}

// FetchGames streams the user's games matching the window and speed filter,
// one JSON record per line. It fails with models.ErrNoGamesFound when the
// request fails, the body is empty or malformed, or nothing survives
// filtering. A malformed line aborts the whole batch.
func (c *Client) FetchGames(ctx context.Context, username string, opts models.FetchOptions) ([]models.NormalizedGame, error) {
	startTs, endTs, err := opts.Window()
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("tags", "true")
	q.Set("clocks", "true")
	q.Set("perfType", opts.GameType.PerfTypes())
	if startTs > 0 {
		q.Set("since", strconv.FormatInt(startTs*1000, 10))
	}
	if endTs < math.MaxInt64 {
		// until is exclusive; push it past the inclusive end second
		q.Set("until", strconv.FormatInt((endTs+1)*1000, 10))
	}
	u := fmt.Sprintf("%s/api/games/user/%s?%s", c.baseURL, url.PathEscape(username), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/x-ndjson")

	res, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warnw("game export request failed", "username", username, "error", err)
		return nil, models.ErrNoGamesFound
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		c.log.Warnw("game export rejected", "username", username, "status", res.StatusCode)
		return nil, models.ErrNoGamesFound
	}

	var out []models.NormalizedGame
	scanner := bufio.NewScanner(res.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var g models.LichessGame
		if err := json.Unmarshal([]byte(line), &g); err != nil {
			c.log.Warnw("malformed export line, aborting batch", "username", username, "error", err)
			return nil, models.ErrNoGamesFound
		}
		if ng, ok := normalize(username, g); ok {
			out = append(out, ng)
		}
	}
	if err := scanner.Err(); err != nil {
		c.log.Warnw("game export stream failed", "username", username, "error", err)
		return nil, models.ErrNoGamesFound
	}

	if len(out) == 0 {
		return nil, models.ErrNoGamesFound
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// normalize applies the filtering chain and converts one raw game.
func normalize(username string, g models.LichessGame) (models.NormalizedGame, bool) {
	if g.Variant != "" && g.Variant != "standard" {
		return models.NormalizedGame{}, false
	}
	if g.InitialFen != "" && g.InitialFen != models.StartingFEN {
		return models.NormalizedGame{}, false
	}
	if g.Players.White.AILevel > 0 || g.Players.Black.AILevel > 0 {
		return models.NormalizedGame{}, false
	}

	white := g.Players.White.DisplayName()
	black := g.Players.Black.DisplayName()
	userIsWhite := strings.EqualFold(white, username)
	me := g.Players.White
	oppName := black
	if !userIsWhite {
		me = g.Players.Black
		oppName = white
	}
	lowerOpp := strings.ToLower(oppName)
	for _, marker := range []string{"bot", "stockfish", "engine"} {
		if strings.Contains(lowerOpp, marker) {
			return models.NormalizedGame{}, false
		}
	}

	result := models.ResultDraw
	switch {
	case g.Winner == "":
		result = models.ResultDraw
	case (g.Winner == "white") == userIsWhite:
		result = models.ResultWin
	default:
		result = models.ResultLoss
	}

	increment := 0
	control := "-"
	if g.Clock != nil {
		increment = g.Clock.Increment
		control = timecontrol.FormatLichess(g.Clock.Initial, g.Clock.Increment)
	}

	label := "casual"
	if g.Rated {
		label = "rated"
	}

	return models.NormalizedGame{
		ID:          g.ID,
		Date:        time.UnixMilli(g.LastMoveAt).UTC(),
		WhitePlayer: white,
		BlackPlayer: black,
		Result:      result,
		Rating:      me.Rating,
		GameType:    fmt.Sprintf("%s (%s)", g.Speed, label),
		TimeControl: control,
		MoveTimings: moveTimingsFromClocks(g.Moves, g.Clocks, increment),
	}, true
}

// moveTimingsFromClocks pairs the space-separated move list with the parallel
// centisecond clock array. Every ply with a clock entry yields a timing
// record; the think time (previous same-color clock - current + increment) is
// kept only when positive.
func moveTimingsFromClocks(moves string, clocks []int, increment int) []models.MoveTiming {
	fields := strings.Fields(moves)

	var (
		out  []models.MoveTiming
		prev [2]float64
		seen [2]bool
	)
	for i, mv := range fields {
		if i >= len(clocks) {
			break
		}
		secs := float64(clocks[i]) / 100
		whole := clocks[i] / 100

		side := i % 2 // even ply index is white
		var spent *float64
		if seen[side] {
			if d := prev[side] - secs + float64(increment); d > 0 {
				spent = &d
			}
		}
		prev[side], seen[side] = secs, true

		out = append(out, models.MoveTiming{
			MoveText:     mv,
			MoveNumber:   i/2 + 1,
			IsWhite:      side == 0,
			Clock:        fmt.Sprintf("%d:%02d", whole/60, whole%60),
			ClockSeconds: secs,
			TimeSpent:    spent,
		})
	}
	return out
}
