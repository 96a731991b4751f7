package captions

import (
	"context"
	"errors"
	"fmt"
)

// TranslateFunc converts segmented cues into another language. Implementations
// must return one output cue per input cue with identical timings; only the
// text may change. Cue boundaries are decided before translation so every
// language track stays aligned with the original timing.
type TranslateFunc func(ctx context.Context, cues []Cue, sourceLang, targetLang string) ([]Cue, error)

// Translate runs fn and enforces the cue-alignment contract, returning the
// translated cues with the source timings reasserted.
func Translate(ctx context.Context, fn TranslateFunc, cues []Cue, sourceLang, targetLang string) ([]Cue, error) {
	if fn == nil {
		return nil, fmt.Errorf("translate %s to %s: no translator configured", sourceLang, targetLang)
	}
	translated, err := fn(ctx, cues, sourceLang, targetLang)
	if err != nil {
		return nil, fmt.Errorf("translate %s to %s: %w", sourceLang, targetLang, err)
	}
	if len(translated) != len(cues) {
		return nil, fmt.Errorf("translate %s to %s: got %d cues, want %d", sourceLang, targetLang, len(translated), len(cues))
	}
	out := make([]Cue, len(translated))
	for i, cue := range translated {
		out[i] = Cue{Start: cues[i].Start, End: cues[i].End, Text: cue.Text}
	}
	return out, nil
}

// TranslateSet derives one track per target language from the set's source
// track and appends them in the given order. Timings carry over from the
// source. styleFor, when non-nil, picks each new track's style; the source
// style is reused otherwise.
func TranslateSet(ctx context.Context, fn TranslateFunc, set *Set, sourceLang string, targetLangs []string, styleFor func(lang string) Style) error {
	if set == nil {
		return errors.New("caption set is nil")
	}
	source, ok := set.Track(sourceLang)
	if !ok {
		return fmt.Errorf("source track %q not found", sourceLang)
	}
	for _, target := range targetLangs {
		cues, err := Translate(ctx, fn, source.Cues, sourceLang, target)
		if err != nil {
			return err
		}
		style := source.Style
		if styleFor != nil {
			style = styleFor(target)
		}
		if err := set.Add(Track{Lang: target, Cues: cues, Style: style}); err != nil {
			return err
		}
	}
	return nil
}
