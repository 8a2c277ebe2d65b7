// Package chesscom fetches and normalizes a player's chess.com game history.
package chesscom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ShahinyanDav/chessnaptracker/app/models"
	"github.com/ShahinyanDav/chessnaptracker/pkg/logger"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.chess.com"

// Client is the chess.com source adapter. All per-query parsing state lives
// inside a single FetchGames call; the Client itself is safe for concurrent use.
type Client struct {
	httpc     *http.Client
	baseURL   string
	userAgent string
	log       *zap.SugaredLogger
}

// NewClient builds an adapter with the given User-Agent. Chess.com asks for a
// contact address in the UA of public-API consumers.
func NewClient(userAgent string) *Client {
	return &Client{
		httpc:     &http.Client{Timeout: 15 * time.Second},
		baseURL:   defaultBaseURL,
		userAgent: userAgent,
		log:       logger.New("chesscom"),
	}
}

type httpError struct {
	Status int
	Body   string
}

func (e httpError) Error() string { return fmt.Sprintf("http %d: %s", e.Status, e.Body) }

// getJSON fetches url and decodes the body into v, with a basic retry for
// 429/5xx responses.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	var last httpError
	for attempt := 0; attempt < 3; attempt++ {
		res, err := c.httpc.Do(req)
		if err != nil {
			return err
		}

		if res.StatusCode == http.StatusOK {
			err := json.NewDecoder(res.Body).Decode(v)
			res.Body.Close()
			return err
		}

		// capture body (truncated) for error clarity
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(res.Body).Decode(&msg)
		res.Body.Close()
		last = httpError{Status: res.StatusCode, Body: msg.Message}

		if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500 {
			time.Sleep(time.Duration(250*(attempt+1)) * time.Millisecond)
			continue
		}
		break
	}
	return last
}

func (c *Client) fetchArchives(ctx context.Context, username string) ([]string, error) {
	u := fmt.Sprintf("%s/pub/player/%s/games/archives", c.baseURL, username)
	var idx models.ChessComArchiveIndex
	if err := c.getJSON(ctx, u, &idx); err != nil {
		return nil, err
	}
	return idx.Archives, nil
}

func (c *Client) fetchMonthly(ctx context.Context, monthURL string) (*models.ChessComMonthly, error) {
	var mg models.ChessComMonthly
	if err := c.getJSON(ctx, monthURL, &mg); err != nil {
		return nil, err
	}
	return &mg, nil
}
