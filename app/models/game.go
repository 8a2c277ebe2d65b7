// Package models holds the shared game entities plus the raw per-service
// payload shapes the adapters decode at the HTTP boundary.
package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrNoGamesFound is the single error surfaced to callers when a query yields
// nothing usable: unknown user, a window intersecting no games, or every
// candidate game filtered out.
var ErrNoGamesFound = errors.New("no games found")

// Result is the game outcome relative to the queried username, never
// absolute to white/black.
type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
	ResultDraw Result = "draw"
)

// GameType is the speed-class filter for a query. "all" deliberately covers
// blitz and rapid only; bullet/daily/classical are excluded from it.
type GameType string

const (
	GameTypeAll   GameType = "all"
	GameTypeBlitz GameType = "blitz"
	GameTypeRapid GameType = "rapid"
)

func ParseGameType(s string) (GameType, error) {
	switch GameType(s) {
	case GameTypeAll, GameTypeBlitz, GameTypeRapid:
		return GameType(s), nil
	}
	return "", fmt.Errorf("unknown game type %q", s)
}

// Matches reports whether a service speed class passes this filter.
func (t GameType) Matches(timeClass string) bool {
	switch t {
	case GameTypeAll:
		return timeClass == "blitz" || timeClass == "rapid"
	default:
		return timeClass == string(t)
	}
}

// PerfTypes renders the filter as a Lichess perfType query value.
func (t GameType) PerfTypes() string {
	if t == GameTypeAll {
		return "blitz,rapid"
	}
	return string(t)
}

// FetchOptions carries the caller-supplied query parameters common to both
// source adapters.
type FetchOptions struct {
	GameType  GameType
	StartDate string // "YYYY-MM-DD", optional
	EndDate   string // "YYYY-MM-DD", optional
}

// Window converts the date strings to inclusive unix-second bounds.
// Missing dates default to 0 and the maximum representable instant. The end
// date covers its whole day.
func (o FetchOptions) Window() (start, end int64, err error) {
	start, end = 0, math.MaxInt64
	if o.StartDate != "" {
		t, err := time.Parse("2006-01-02", o.StartDate)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid start date %q: %w", o.StartDate, err)
		}
		start = t.Unix()
	}
	if o.EndDate != "" {
		t, err := time.Parse("2006-01-02", o.EndDate)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid end date %q: %w", o.EndDate, err)
		}
		end = t.AddDate(0, 0, 1).Add(-time.Second).Unix()
	}
	return start, end, nil
}

// MoveTiming is one ply with resolvable clock data. TimeSpent is nil when no
// prior same-color reading exists or the raw think time came out non-positive
// (lag compensation and server clock quirks, not real thinking).
type MoveTiming struct {
	MoveText     string   `json:"move_text"`
	MoveNumber   int      `json:"move_number"`
	IsWhite      bool     `json:"is_white"`
	Clock        string   `json:"clock"`
	ClockSeconds float64  `json:"clock_seconds"`
	TimeSpent    *float64 `json:"time_spent,omitempty"`
}

// NormalizedGame is the common output entity both adapters produce.
type NormalizedGame struct {
	ID          string       `json:"id"`
	Date        time.Time    `json:"date"`
	WhitePlayer string       `json:"white_player"`
	BlackPlayer string       `json:"black_player"`
	Result      Result       `json:"result"`
	Rating      int          `json:"rating"`
	GameType    string       `json:"game_type"`
	TimeControl string       `json:"time_control"`
	MoveTimings []MoveTiming `json:"move_timings"`
}

// StartingFEN is the standard initial position; games declaring any other
// starting position (handicap, Chess960) are filtered out.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
