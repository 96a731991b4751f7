package render

import (
	"fmt"
	"strings"
)

// filterPathSanitizer prepares a path for the filter graph: backslashes
// become forward slashes, literal quotes and colons are escaped so drive
// letters and apostrophes survive the filter parser.
var filterPathSanitizer = strings.NewReplacer(
	"\\", "/",
	"'", `'\''`,
	":", `\:`,
)

// escapeFilterPath quotes a filesystem path for use inside a filter option.
func escapeFilterPath(path string) string {
	return filterPathSanitizer.Replace(path)
}

// BuildFilter assembles the video filter graph for a burn-in render: the
// subtitles filter, an optional fontsdir, and an optional scale stage. The
// scale stage fixes the short side and keeps the long side proportional and
// even, so portrait footage scales by width and landscape by height.
func BuildFilter(subtitlePath, fontsDir string, target Resolution, portrait bool) string {
	var b strings.Builder
	b.WriteString("subtitles=")
	b.WriteString(escapeFilterPath(subtitlePath))
	if fontsDir != "" {
		b.WriteString(":fontsdir=")
		b.WriteString(escapeFilterPath(fontsDir))
	}
	if short := target.ShortSide(); short > 0 {
		if portrait {
			fmt.Fprintf(&b, ",scale=%d:-2", short)
		} else {
			fmt.Fprintf(&b, ",scale=-2:%d", short)
		}
	}
	return b.String()
}

// encodeArgs builds the encoder invocation for a burn-in render. Audio is
// copied untouched; only the video stream is re-encoded.
func encodeArgs(job EncodeJob) []string {
	return []string{
		"-hide_banner",
		"-i", job.InputPath,
		"-vf", job.Filter,
		"-c:a", "copy",
		"-y", job.OutputPath,
	}
}
