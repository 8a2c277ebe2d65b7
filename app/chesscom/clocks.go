package chesscom

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/ShahinyanDav/chessnaptracker/app/models"
)

var (
	// [Tag "Value"] header lines
	reTags = regexp.MustCompile(`(?m)^\[.*?\]\s*`)
	// One ply: move number, one dot for white / two-or-three for black, the
	// move token, and an optional {...} annotation. This pattern is the
	// authoritative grammar for chess.com live PGNs, which prefix every ply
	// with its number when comments intervene.
	rePly = regexp.MustCompile(`(\d+)(\.{1,3})\s*([^\s{]+)(?:\s*\{([^}]*)\})?`)
	// [%clk H:MM:SS] or [%clk H:MM:SS.frac] inside the annotation
	reClk = regexp.MustCompile(`\[%clk\s+(\d+):(\d+):(\d+)(?:\.\d+)?\]`)
)

// parseMoveTimings extracts per-ply clock readings and think times from a
// chess.com PGN blob. Plies without a clock annotation advance the color and
// move counters but emit no timing. Think time is the drop in the mover's own
// clock since their previous ply; non-positive drops are discarded.
func parseMoveTimings(pgn string) []models.MoveTiming {
	body := reTags.ReplaceAllString(pgn, "")

	var (
		timings []models.MoveTiming
		prev    [2]float64 // previous clock seconds, indexed white=0 black=1
		seen    [2]bool
		moveNum = 1
		white   = true
	)

	for _, ply := range rePly.FindAllStringSubmatch(body, -1) {
		moveText, annotation := ply[3], ply[4]

		if clk := reClk.FindStringSubmatch(annotation); clk != nil {
			h, _ := strconv.Atoi(clk[1])
			m, _ := strconv.Atoi(clk[2])
			s, _ := strconv.Atoi(clk[3]) // fractional seconds truncated
			secs := float64(h*3600 + m*60 + s)

			side := 0
			if !white {
				side = 1
			}
			var spent *float64
			if seen[side] {
				if d := prev[side] - secs; d > 0 {
					spent = &d
				}
			}
			prev[side], seen[side] = secs, true

			timings = append(timings, models.MoveTiming{
				MoveText:     moveText,
				MoveNumber:   moveNum,
				IsWhite:      white,
				Clock:        fmt.Sprintf("%d:%d:%d", h, m, s),
				ClockSeconds: secs,
				TimeSpent:    spent,
			})
		}

		// The full-move counter turns over after black's ply; the color
		// alternates on every processed ply, clocked or not.
		if !white {
			moveNum++
		}
		white = !white
	}

	return timings
}
