package captions

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidCue marks cues whose timing cannot be rendered.
var ErrInvalidCue = errors.New("invalid cue")

// Word is a single timed token from the transcription provider.
type Word struct {
	Text  string `json:"text"`
	Start int64  `json:"start_ms"`
	End   int64  `json:"end_ms"`
}

// Cue is one caption entry: a text payload displayed between Start and End.
type Cue struct {
	Start int64  `json:"start_ms"`
	End   int64  `json:"end_ms"`
	Text  string `json:"text"`
}

// Validate reports whether the cue timing is renderable. Start must be
// non-negative and End must be strictly after Start.
func (c Cue) Validate() error {
	if c.Start < 0 {
		return fmt.Errorf("%w: start %dms is negative", ErrInvalidCue, c.Start)
	}
	if c.End <= c.Start {
		return fmt.Errorf("%w: end %dms is not after start %dms", ErrInvalidCue, c.End, c.Start)
	}
	return nil
}

// Duration returns the display duration of the cue.
func (c Cue) Duration() time.Duration {
	if c.End <= c.Start {
		return 0
	}
	return time.Duration(c.End-c.Start) * time.Millisecond
}

// SortCues orders cues by start time. Cues sharing a start keep their
// relative order.
func SortCues(cues []Cue) {
	sort.SliceStable(cues, func(i, j int) bool {
		return cues[i].Start < cues[j].Start
	})
}

// ValidateCues checks every cue and reports the first invalid entry.
func ValidateCues(cues []Cue) error {
	for i, cue := range cues {
		if err := cue.Validate(); err != nil {
			return fmt.Errorf("cue %d: %w", i+1, err)
		}
	}
	return nil
}

// Style describes how one language track is drawn over the video.
//
// FontSizePct and VerticalPosPct are percentages of the video height so the
// same style scales across resolutions. Color is packed ARGB with 0xFF alpha
// meaning fully opaque.
type Style struct {
	FontFamily     string
	FontSizePct    float64
	Color          uint32
	VerticalPosPct float64
	OutlineWidth   float64
}

// DefaultStyle is the fallback used when a language has no configured style:
// opaque white text at 5% of video height, positioned 85% down the frame.
func DefaultStyle() Style {
	return Style{
		FontFamily:     "Arial",
		FontSizePct:    5.0,
		Color:          0xFFFFFFFF,
		VerticalPosPct: 85.0,
		OutlineWidth:   4.0,
	}
}

// Track pairs a language code with its ordered cues and rendering style.
type Track struct {
	Lang  string
	Cues  []Cue
	Style Style
}

// Set is an ordered collection of language tracks. Insertion order is
// preserved so composed documents are deterministic.
type Set struct {
	tracks []Track
}

// Add appends a track, rejecting empty or duplicate language codes.
func (s *Set) Add(track Track) error {
	if track.Lang == "" {
		return errors.New("track language is empty")
	}
	for _, existing := range s.tracks {
		if existing.Lang == track.Lang {
			return fmt.Errorf("duplicate track language %q", track.Lang)
		}
	}
	s.tracks = append(s.tracks, track)
	return nil
}

// Track returns the track for the exact language code.
func (s *Set) Track(lang string) (Track, bool) {
	for _, track := range s.tracks {
		if track.Lang == lang {
			return track, true
		}
	}
	return Track{}, false
}

// Tracks returns the tracks in insertion order.
func (s *Set) Tracks() []Track {
	out := make([]Track, len(s.tracks))
	copy(out, s.tracks)
	return out
}

// Languages returns the track language codes in insertion order.
func (s *Set) Languages() []string {
	langs := make([]string, 0, len(s.tracks))
	for _, track := range s.tracks {
		langs = append(langs, track.Lang)
	}
	return langs
}

// Len reports the number of tracks.
func (s *Set) Len() int {
	return len(s.tracks)
}
