package render

import (
	"fmt"
	"strings"
)

// Resolution names the target output size of a render. Values map to the
// short side of the frame so the same target works for landscape and
// portrait footage.
type Resolution string

const (
	ResolutionOriginal Resolution = "original"
	Resolution4K       Resolution = "4k"
	Resolution1440p    Resolution = "1440p"
	Resolution1080p    Resolution = "1080p"
	Resolution720p     Resolution = "720p"
	Resolution480p     Resolution = "480p"
)

// ShortSide returns the target length in pixels of the frame's shorter
// dimension, or 0 when the source size is kept.
func (r Resolution) ShortSide() int {
	switch r {
	case Resolution4K:
		return 2160
	case Resolution1440p:
		return 1440
	case Resolution1080p:
		return 1080
	case Resolution720p:
		return 720
	case Resolution480p:
		return 480
	default:
		return 0
	}
}

// ParseResolution normalizes a user-supplied resolution name.
func ParseResolution(value string) (Resolution, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "original", "source":
		return ResolutionOriginal, nil
	case "4k", "2160p", "uhd":
		return Resolution4K, nil
	case "1440p", "2k":
		return Resolution1440p, nil
	case "1080p", "fhd":
		return Resolution1080p, nil
	case "720p", "hd":
		return Resolution720p, nil
	case "480p", "sd":
		return Resolution480p, nil
	default:
		return ResolutionOriginal, fmt.Errorf("unknown resolution %q", value)
	}
}

// Resolutions lists the accepted resolution names for help text.
func Resolutions() []Resolution {
	return []Resolution{
		ResolutionOriginal,
		Resolution4K,
		Resolution1440p,
		Resolution1080p,
		Resolution720p,
		Resolution480p,
	}
}
