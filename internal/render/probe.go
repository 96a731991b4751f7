package render

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Defaults applied when the input cannot be probed.
const (
	DefaultProbeWidth  = 1920
	DefaultProbeHeight = 1080
)

// ProbeResult describes the displayed geometry and duration of an input
// video. Width and Height already account for rotation metadata, so portrait
// phone footage reports portrait dimensions.
type ProbeResult struct {
	Width      int
	Height     int
	DurationMs int64
	Rotation   int
}

// Portrait reports whether the displayed frame is taller than wide.
func (r ProbeResult) Portrait() bool {
	return r.Height > r.Width
}

var (
	probeDurationPattern  = regexp.MustCompile(`Duration:\s*(\d+):(\d{2}):(\d{2})\.(\d{1,3})`)
	probeVideoSizePattern = regexp.MustCompile(`\b(\d{2,5})x(\d{2,5})\b`)
	probeRotateTagPattern = regexp.MustCompile(`rotate\s*:\s*(-?\d+)`)
	probeMatrixPattern    = regexp.MustCompile(`rotation of (-?\d+(?:\.\d+)?) degrees`)
)

// parseProbeOutput extracts geometry, duration, and rotation from the
// diagnostic lines the encoder prints for an input. Missing fields keep
// their zero value; the caller applies defaults.
func parseProbeOutput(lines []string) ProbeResult {
	var res ProbeResult
	rotationSeen := false
	for _, line := range lines {
		if res.DurationMs == 0 {
			if m := probeDurationPattern.FindStringSubmatch(line); m != nil {
				res.DurationMs = clockToMs(m[1], m[2], m[3], m[4])
			}
		}
		if res.Width == 0 && strings.Contains(line, "Video:") {
			if m := probeVideoSizePattern.FindStringSubmatch(line); m != nil {
				res.Width, _ = strconv.Atoi(m[1])
				res.Height, _ = strconv.Atoi(m[2])
			}
		}
		if !rotationSeen {
			if m := probeRotateTagPattern.FindStringSubmatch(line); m != nil {
				deg, _ := strconv.Atoi(m[1])
				res.Rotation = normalizeRotation(deg)
				rotationSeen = true
			} else if m := probeMatrixPattern.FindStringSubmatch(line); m != nil {
				deg, _ := strconv.ParseFloat(m[1], 64)
				res.Rotation = normalizeRotation(int(math.Round(deg)))
				rotationSeen = true
			}
		}
	}
	if res.Rotation == 90 || res.Rotation == 270 {
		res.Width, res.Height = res.Height, res.Width
	}
	return res
}

// normalizeRotation folds arbitrary degree values into 0, 90, 180, or 270.
func normalizeRotation(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

// clockToMs converts matched HH:MM:SS.frac fields to milliseconds, scaling
// the fraction by its digit count.
func clockToMs(hours, minutes, seconds, fraction string) int64 {
	h, _ := strconv.ParseInt(hours, 10, 64)
	m, _ := strconv.ParseInt(minutes, 10, 64)
	s, _ := strconv.ParseInt(seconds, 10, 64)
	frac, _ := strconv.ParseInt(fraction, 10, 64)
	for i := len(fraction); i < 3; i++ {
		frac *= 10
	}
	return ((h*60+m)*60+s)*1000 + frac
}
