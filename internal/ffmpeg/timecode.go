package ffmpeg

import (
	"strconv"
	"strings"
)

// ParseTimecode converts an "HH:MM:SS(.ms)" token into seconds.
// Malformed segments count as zero; anything other than three segments
// yields 0 so a garbled progress line never produces a bogus jump.
func ParseTimecode(tc string) float64 {
	parts := strings.Split(tc, ":")
	if len(parts) != 3 {
		return 0
	}
	h := parseOrZero(parts[0])
	m := parseOrZero(parts[1])
	s := parseOrZero(parts[2])
	return h*3600 + m*60 + s
}

func parseOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// TimeMarker is the stderr token that precedes ffmpeg's progress timecode.
const TimeMarker = "time="

// ExtractTimecode pulls the timecode token following a "time=" marker out of
// a raw stderr line. ok is false when the line carries no marker.
func ExtractTimecode(line string) (tc string, ok bool) {
	idx := strings.Index(line, TimeMarker)
	if idx < 0 {
		return "", false
	}
	rest := line[idx+len(TimeMarker):]
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}
