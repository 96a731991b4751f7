package timecode

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrParse marks timestamp text that does not match the expected notation.
var ErrParse = errors.New("timecode: parse error")

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
)

// FormatSRT renders milliseconds in SubRip notation: zero-padded
// HH:MM:SS,mmm with hours growing beyond two digits when needed.
// Negative inputs clamp to zero.
func FormatSRT(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / msPerHour
	minutes := ms % msPerHour / msPerMinute
	seconds := ms % msPerMinute / msPerSecond
	millis := ms % msPerSecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// FormatASS renders milliseconds in Advanced SubStation notation:
// H:MM:SS.cc with no leading zero on the hour and the fraction truncated to
// centiseconds. Negative inputs clamp to zero.
func FormatASS(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / msPerHour
	minutes := ms % msPerHour / msPerMinute
	seconds := ms % msPerMinute / msPerSecond
	centis := ms % msPerSecond / 10
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}

var srtRangePattern = regexp.MustCompile(`^\s*(\d+):(\d{2}):(\d{2})[,.](\d{1,3})\s*-->\s*(\d+):(\d{2}):(\d{2})[,.](\d{1,3})\s*$`)

// ParseSRTRange decodes a SubRip timing line ("HH:MM:SS,mmm --> HH:MM:SS,mmm").
// Periods are accepted in place of commas and fractions may carry one to
// three digits; short fractions scale by digit position, so ",5" is 500ms
// and ",32" is 320ms.
func ParseSRTRange(line string) (startMs, endMs int64, err error) {
	match := srtRangePattern.FindStringSubmatch(line)
	if match == nil {
		return 0, 0, fmt.Errorf("%w: timing line %q", ErrParse, line)
	}
	return ClockMs(match[1], match[2], match[3], match[4]), ClockMs(match[5], match[6], match[7], match[8]), nil
}

// ClockMs converts already-matched clock fields to milliseconds. The
// fraction scales by digit count: one digit is tenths, two hundredths,
// three thousandths.
func ClockMs(hours, minutes, seconds, fraction string) int64 {
	h, _ := strconv.ParseInt(hours, 10, 64)
	m, _ := strconv.ParseInt(minutes, 10, 64)
	s, _ := strconv.ParseInt(seconds, 10, 64)
	frac, _ := strconv.ParseInt(fraction, 10, 64)
	for i := len(fraction); i < 3; i++ {
		frac *= 10
	}
	return h*msPerHour + m*msPerMinute + s*msPerSecond + frac
}
