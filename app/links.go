package app

import "fmt"

// PlyNumber maps a displayed full-move number and color to the ply index the
// hosting services use in their viewer URLs.
func PlyNumber(moveNumber int, isWhite bool) int {
	if isWhite {
		return moveNumber*2 - 1
	}
	return moveNumber * 2
}

// ChessComAnalysisURL deep-links the review board at the given ply.
func ChessComAnalysisURL(gameID string, moveNumber int, isWhite bool) string {
	return fmt.Sprintf("https://www.chess.com/analysis/game/live/%s?tab=review&move=%d",
		gameID, PlyNumber(moveNumber, isWhite))
}

// LichessURL deep-links the game viewer at the given ply.
func LichessURL(gameID string, moveNumber int, isWhite bool) string {
	return fmt.Sprintf("https://lichess.org/%s#%d", gameID, PlyNumber(moveNumber, isWhite))
}
