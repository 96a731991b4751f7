package render

import (
	"regexp"
)

// Progress reports encode advancement. Fraction is in [0, 1] when the input
// duration is known and -1 when it is not; ElapsedMs is the source timestamp
// the encoder has reached.
type Progress struct {
	Fraction  float64
	ElapsedMs int64
}

// IndeterminateProgress marks progress updates without a known duration.
const IndeterminateProgress = -1.0

var progressTimePattern = regexp.MustCompile(`time=(\d+):(\d{2}):(\d{2})\.(\d{1,3})`)

// parseEncodeTime extracts the elapsed source timestamp from an encoder
// status line. Lines without a time= token (or with time=N/A) report false.
func parseEncodeTime(line string) (int64, bool) {
	m := progressTimePattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	return clockToMs(m[1], m[2], m[3], m[4]), true
}

// progressFor converts an elapsed timestamp into a Progress update, clamping
// the fraction into [0, 1]. Without a duration the fraction is
// indeterminate.
func progressFor(elapsedMs, durationMs int64) Progress {
	p := Progress{Fraction: IndeterminateProgress, ElapsedMs: elapsedMs}
	if durationMs <= 0 {
		return p
	}
	fraction := float64(elapsedMs) / float64(durationMs)
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	p.Fraction = fraction
	return p
}
