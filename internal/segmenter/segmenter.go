package segmenter

import (
	"strings"
	"time"
	"unicode/utf8"

	"captioner/internal/captions"
)

const (
	// DefaultMaxChars bounds cue text length including spaces.
	DefaultMaxChars = 42
	// DefaultMaxDuration bounds how long a single cue stays on screen.
	DefaultMaxDuration = 2500 * time.Millisecond
	// DefaultPunctuation lists the runes treated as punctuation-only tokens.
	DefaultPunctuation = ",.!?;:-–—"
)

// Option adjusts segmenter behavior.
type Option func(*Segmenter)

// WithPunctuation replaces the rune set used to recognize punctuation-only
// tokens.
func WithPunctuation(runes string) Option {
	return func(s *Segmenter) {
		s.punctuation = runeSet(runes)
	}
}

// Segmenter converts word streams into cues under fixed bounds.
type Segmenter struct {
	maxChars      int
	maxDurationMs int64
	punctuation   map[rune]struct{}
}

// New builds a Segmenter. Non-positive bounds fall back to the defaults.
func New(maxChars int, maxDuration time.Duration, opts ...Option) *Segmenter {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if maxDuration <= 0 {
		maxDuration = DefaultMaxDuration
	}
	s := &Segmenter{
		maxChars:      maxChars,
		maxDurationMs: maxDuration.Milliseconds(),
		punctuation:   runeSet(DefaultPunctuation),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Segment runs one greedy pass over the words and returns the resulting
// cues. Input order is preserved and no word is ever split across cues.
func (s *Segmenter) Segment(words []captions.Word) []captions.Cue {
	var (
		cues     []captions.Cue
		run      strings.Builder
		runChars int
		start    int64
		end      int64
	)

	flush := func() {
		if run.Len() == 0 {
			return
		}
		cues = append(cues, captions.Cue{Start: start, End: end, Text: run.String()})
		run.Reset()
		runChars = 0
	}

	for _, word := range words {
		text := strings.TrimSpace(word.Text)
		if text == "" {
			// Spacing tokens carry timing but no visible text.
			if run.Len() > 0 && word.End > end {
				end = word.End
			}
			continue
		}

		punct := s.isPunctuation(text)
		sep := 0
		if run.Len() > 0 && !punct {
			sep = 1
		}
		wouldChars := runChars + sep + utf8.RuneCountInString(text)
		wouldDuration := word.End - start

		if run.Len() > 0 && !punct && (wouldChars > s.maxChars || wouldDuration >= s.maxDurationMs) {
			flush()
			sep = 0
		}
		if run.Len() == 0 {
			start = word.Start
		}
		if sep == 1 {
			run.WriteByte(' ')
		}
		run.WriteString(text)
		runChars += sep + utf8.RuneCountInString(text)
		end = word.End
	}
	flush()
	return cues
}

// isPunctuation reports whether every rune of text is in the punctuation set.
func (s *Segmenter) isPunctuation(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if _, ok := s.punctuation[r]; !ok {
			return false
		}
	}
	return true
}

// Segment groups words into cues using the given bounds and the default
// punctuation set.
func Segment(words []captions.Word, maxChars int, maxDuration time.Duration) []captions.Cue {
	return New(maxChars, maxDuration).Segment(words)
}

func runeSet(runes string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		set[r] = struct{}{}
	}
	return set
}
