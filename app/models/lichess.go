package models

// LichessGame represents a subset of the Lichess NDJSON game export payload.
type LichessGame struct {
	ID         string `json:"id"`
	CreatedAt  int64  `json:"createdAt"`
	LastMoveAt int64  `json:"lastMoveAt"`
	Speed      string `json:"speed"`
	Rated      bool   `json:"rated"`
	Variant    string `json:"variant"`
	InitialFen string `json:"initialFen"`
	Moves      string `json:"moves"`  // space-separated SAN
	Clocks     []int  `json:"clocks"` // centiseconds, parallel to Moves (may be shorter)
	Winner     string `json:"winner"` // "white", "black", or absent on draws
	Clock      *struct {
		Initial   int `json:"initial"`
		Increment int `json:"increment"`
	} `json:"clock"`
	Players struct {
		White LichessPlayer `json:"white"`
		Black LichessPlayer `json:"black"`
	} `json:"players"`
}

// LichessPlayer represents a player in the Lichess game payload.
type LichessPlayer struct {
	User *struct {
		Name string `json:"name"`
	} `json:"user"`
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	AILevel int    `json:"aiLevel"` // nonzero when the side was an engine
}

// DisplayName prefers the account name and falls back to the anonymous name.
func (p LichessPlayer) DisplayName() string {
	if p.User != nil && p.User.Name != "" {
		return p.User.Name
	}
	return p.Name
}
