// Package timecontrol renders raw time-control encodings as display labels.
package timecontrol

import (
	"fmt"
	"strconv"
	"strings"
)

// Chess.com encodes daily games as "moves/seconds-per-move"; only these
// per-move durations exist on the service.
var dayLabels = map[int]string{
	86400:   "1 day",
	259200:  "3 days",
	432000:  "5 days",
	604800:  "7 days",
	1209600: "14 days",
}

// FormatChessCom renders a chess.com time_control value, e.g.
// "180+2" -> "3+2", "90+5" -> "1:30+5", "30" -> "30s+0", "1/604800" -> "7 days".
// Anything unparsable renders as "-".
func FormatChessCom(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "-"
	}

	if slash := strings.LastIndex(raw, "/"); slash != -1 {
		if secs, err := strconv.Atoi(raw[slash+1:]); err == nil {
			if label, ok := dayLabels[secs]; ok {
				return label
			}
		}
		return "-"
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		if label, ok := dayLabels[secs]; ok {
			return label
		}
	}

	base, incRaw := raw, ""
	if plus := strings.Index(raw, "+"); plus != -1 {
		base, incRaw = raw[:plus], raw[plus+1:]
	}
	baseSecs, err := strconv.Atoi(base)
	if err != nil {
		return "-"
	}
	inc, err := strconv.Atoi(incRaw)
	if err != nil {
		inc = 0
	}

	var label string
	switch {
	case baseSecs >= 60 && baseSecs%60 == 0:
		label = strconv.Itoa(baseSecs / 60)
	case baseSecs >= 60:
		label = fmt.Sprintf("%d:%02d", baseSecs/60, baseSecs%60)
	default:
		label = fmt.Sprintf("%ds", baseSecs)
	}
	return fmt.Sprintf("%s+%d", label, inc)
}

// FormatLichess renders an already-split initial-seconds/increment pair,
// e.g. 180/2 -> "3+2".
func FormatLichess(initialSecs, increment int) string {
	return fmt.Sprintf("%d+%d", initialSecs/60, increment)
}
