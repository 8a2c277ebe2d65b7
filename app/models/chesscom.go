package models

// ChessComPlayer is one side of a chess.com game record.
type ChessComPlayer struct {
	Username string `json:"username"`
	Result   string `json:"result"` // "win","checkmated","resigned","agreed", etc.
	Rating   int    `json:"rating"`
}

// ChessComGame is the raw game record inside a chess.com monthly archive.
type ChessComGame struct {
	URL          string         `json:"url"`
	UUID         string         `json:"uuid"`
	PGN          string         `json:"pgn"`
	TimeControl  string         `json:"time_control"` // "180+2", "1/86400", ...
	TimeClass    string         `json:"time_class"`   // blitz/rapid/bullet/daily
	Rated        bool           `json:"rated"`
	EndTime      int64          `json:"end_time"`
	Rules        string         `json:"rules"` // empty or "chess" for standard games
	InitialSetup string         `json:"initial_setup"`
	White        ChessComPlayer `json:"white"`
	Black        ChessComPlayer `json:"black"`
}

// ChessComArchiveIndex is the response of /pub/player/{username}/games/archives.
type ChessComArchiveIndex struct {
	Archives []string `json:"archives"`
}

// ChessComMonthly is the envelope of one monthly archive URL.
type ChessComMonthly struct {
	Games []ChessComGame `json:"games"`
}
