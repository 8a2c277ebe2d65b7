package lichess

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ShahinyanDav/chessnaptracker/app/models"
)

func newTestClient(srvURL string) *Client {
	c := NewClient()
	c.baseURL = srvURL
	return c
}

func newExportServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/x-ndjson" {
			t.Errorf("Accept header = %q, want application/x-ndjson", got)
		}
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const gameLine = `{"id":"abcd1234","lastMoveAt":1704103200000,"speed":"blitz","rated":true,"variant":"standard",` +
	`"moves":"e4 e5 Nf3 Nc6","clocks":[18000,18000,17000,18200],` +
	`"winner":"white","clock":{"initial":180,"increment":2},` +
	`"players":{"white":{"user":{"name":"Alice"},"rating":1800},"black":{"user":{"name":"Carol"},"rating":1850}}}`

func TestFetchGamesNormalizesClocks(t *testing.T) {
	srv := newExportServer(t, gameLine+"\n")
	c := newTestClient(srv.URL)

	games, err := c.FetchGames(context.Background(), "alice", models.FetchOptions{GameType: models.GameTypeAll})
	if err != nil {
		t.Fatalf("FetchGames error = %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}
	g := games[0]
	if g.Result != models.ResultWin || g.Rating != 1800 {
		t.Fatalf("POV fields wrong: result=%s rating=%d", g.Result, g.Rating)
	}
	if g.TimeControl != "3+2" {
		t.Fatalf("TimeControl = %q, want 3+2", g.TimeControl)
	}
	if g.GameType != "blitz (rated)" {
		t.Fatalf("GameType = %q, want blitz (rated)", g.GameType)
	}

	if len(g.MoveTimings) != 4 {
		t.Fatalf("got %d move timings, want 4", len(g.MoveTimings))
	}
	// 18000cs = 3:00
	if g.MoveTimings[0].Clock != "3:00" {
		t.Fatalf("Clock = %q, want 3:00", g.MoveTimings[0].Clock)
	}
	// white: 180s -> 170s with +2 increment = 12s thought
	spent := g.MoveTimings[2].TimeSpent
	if spent == nil || *spent != 12 {
		t.Fatalf("white's second ply TimeSpent = %v, want 12", spent)
	}
	// black: 180s -> 182s, 180-182+2 = 0, non-positive is discarded
	if g.MoveTimings[3].TimeSpent != nil {
		t.Fatalf("non-positive think time must be absent, got %v", *g.MoveTimings[3].TimeSpent)
	}
}

func TestFetchGamesResultInversion(t *testing.T) {
	srv := newExportServer(t, gameLine+"\n")
	c := newTestClient(srv.URL)

	games, err := c.FetchGames(context.Background(), "carol", models.FetchOptions{GameType: models.GameTypeAll})
	if err != nil {
		t.Fatalf("FetchGames error = %v", err)
	}
	if games[0].Result != models.ResultLoss {
		t.Fatalf("querying as the loser: Result = %s, want loss", games[0].Result)
	}
	if games[0].Rating != 1850 {
		t.Fatalf("Rating = %d, want the queried player's 1850", games[0].Rating)
	}
}

func TestFetchGamesFiltersEnginesAndBots(t *testing.T) {
	ai := strings.Replace(gameLine, `"black":{"user":{"name":"Carol"},"rating":1850}`,
		`"black":{"user":{"name":"Carol"},"rating":1850,"aiLevel":5}`, 1)
	bot := strings.Replace(gameLine, `"name":"Carol"`, `"name":"SuperBot2000"`, 1)
	fish := strings.Replace(gameLine, `"name":"Carol"`, `"name":"stockfish-fan"`, 1)
	fromPos := strings.Replace(gameLine, `"variant":"standard"`, `"variant":"standard","initialFen":"8/8/8/8/8/8/8/K6k w - - 0 1"`, 1)
	variant := strings.Replace(gameLine, `"variant":"standard"`, `"variant":"chess960"`, 1)

	body := strings.Join([]string{ai, bot, fish, fromPos, variant}, "\n") + "\n"
	srv := newExportServer(t, body)
	c := newTestClient(srv.URL)

	_, err := c.FetchGames(context.Background(), "alice", models.FetchOptions{GameType: models.GameTypeAll})
	if !errors.Is(err, models.ErrNoGamesFound) {
		t.Fatalf("every game filtered out must yield ErrNoGamesFound, got %v", err)
	}
}

func TestFetchGamesMalformedLineAbortsBatch(t *testing.T) {
	srv := newExportServer(t, gameLine+"\n{not json\n")
	c := newTestClient(srv.URL)

	_, err := c.FetchGames(context.Background(), "alice", models.FetchOptions{GameType: models.GameTypeAll})
	if !errors.Is(err, models.ErrNoGamesFound) {
		t.Fatalf("a malformed line must abort the whole batch, got %v", err)
	}
}

func TestFetchGamesEmptyBody(t *testing.T) {
	srv := newExportServer(t, "")
	c := newTestClient(srv.URL)

	_, err := c.FetchGames(context.Background(), "alice", models.FetchOptions{GameType: models.GameTypeAll})
	if !errors.Is(err, models.ErrNoGamesFound) {
		t.Fatalf("empty body must yield ErrNoGamesFound, got %v", err)
	}
}

func TestFetchGamesSendsWindowAndPerfType(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(gameLine + "\n"))
	}))
	t.Cleanup(srv.Close)
	c := newTestClient(srv.URL)

	_, err := c.FetchGames(context.Background(), "alice", models.FetchOptions{
		GameType:  models.GameTypeBlitz,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-02",
	})
	if err != nil {
		t.Fatalf("FetchGames error = %v", err)
	}

	if got := gotQuery["perfType"]; len(got) != 1 || got[0] != "blitz" {
		t.Fatalf("perfType = %v, want [blitz]", got)
	}
	if got := gotQuery["since"]; len(got) != 1 || got[0] != "1704067200000" {
		t.Fatalf("since = %v, want 2024-01-01 in epoch ms", got)
	}
	// until is exclusive: one past the final second of 2024-01-02
	if got := gotQuery["until"]; len(got) != 1 || got[0] != "1704240000000" {
		t.Fatalf("until = %v, want 1704240000000", got)
	}
	if got := gotQuery["clocks"]; len(got) != 1 || got[0] != "true" {
		t.Fatalf("clocks = %v, want [true]", got)
	}
}

func TestMoveTimingsFromClocksShorterClockArray(t *testing.T) {
	timings := moveTimingsFromClocks("e4 e5 Nf3", []int{18000, 17900}, 0)
	if len(timings) != 2 {
		t.Fatalf("got %d timings, want 2 (clock array is shorter)", len(timings))
	}
	if timings[1].MoveNumber != 1 || timings[1].IsWhite {
		t.Fatalf("second timing should be black's move 1, got %+v", timings[1])
	}
}

func TestMoveTimingsFromClocksParity(t *testing.T) {
	timings := moveTimingsFromClocks("e4 e5 Nf3 Nc6", []int{18000, 18000, 17500, 17600}, 0)
	wantNumbers := []int{1, 1, 2, 2}
	wantWhite := []bool{true, false, true, false}
	for i, tm := range timings {
		if tm.MoveNumber != wantNumbers[i] || tm.IsWhite != wantWhite[i] {
			t.Fatalf("timing %d = {num:%d white:%v}, want {num:%d white:%v}",
				i, tm.MoveNumber, tm.IsWhite, wantNumbers[i], wantWhite[i])
		}
	}
	// white thought 5s; black's clock went up 1s without increment, discarded
	if timings[2].TimeSpent == nil || *timings[2].TimeSpent != 5 {
		t.Fatalf("white TimeSpent = %v, want 5", timings[2].TimeSpent)
	}
	if timings[3].TimeSpent != nil {
		t.Fatalf("black TimeSpent must be absent, got %v", *timings[3].TimeSpent)
	}
}
