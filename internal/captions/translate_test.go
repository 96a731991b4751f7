package captions_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"captioner/internal/captions"
)

func TestTranslateReassertsTimings(t *testing.T) {
	cues := []captions.Cue{
		{Start: 0, End: 950, Text: "Hello world!"},
		{Start: 1000, End: 2400, Text: "How are you?"},
	}
	fn := captions.TranslateFunc(func(_ context.Context, in []captions.Cue, _, _ string) ([]captions.Cue, error) {
		out := make([]captions.Cue, len(in))
		for i, cue := range in {
			// Sloppy translator: rewrites text and mangles timings.
			out[i] = captions.Cue{Start: cue.Start + 7, End: cue.End + 7, Text: strings.ToUpper(cue.Text)}
		}
		return out, nil
	})

	translated, err := captions.Translate(context.Background(), fn, cues, "en", "es")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	for i, cue := range translated {
		if cue.Start != cues[i].Start || cue.End != cues[i].End {
			t.Fatalf("cue %d timing drifted: %+v", i, cue)
		}
	}
	if translated[0].Text != "HELLO WORLD!" {
		t.Fatalf("text = %q", translated[0].Text)
	}
}

func TestTranslateRejectsCueCountMismatch(t *testing.T) {
	fn := captions.TranslateFunc(func(_ context.Context, in []captions.Cue, _, _ string) ([]captions.Cue, error) {
		return in[:len(in)-1], nil
	})
	cues := []captions.Cue{{Start: 0, End: 500, Text: "a"}, {Start: 600, End: 900, Text: "b"}}
	if _, err := captions.Translate(context.Background(), fn, cues, "en", "fr"); err == nil {
		t.Fatal("expected cue count mismatch error")
	}
}

func TestTranslatePropagatesErrors(t *testing.T) {
	sentinel := errors.New("provider unavailable")
	fn := captions.TranslateFunc(func(context.Context, []captions.Cue, string, string) ([]captions.Cue, error) {
		return nil, sentinel
	})
	if _, err := captions.Translate(context.Background(), fn, nil, "en", "fr"); !errors.Is(err, sentinel) {
		t.Fatalf("Translate error = %v, want wrapped sentinel", err)
	}
	if _, err := captions.Translate(context.Background(), nil, nil, "en", "fr"); err == nil {
		t.Fatal("expected error when translator is nil")
	}
}

func TestTranslateSetAppendsTargetTracks(t *testing.T) {
	var set captions.Set
	source := captions.Track{
		Lang: "en",
		Cues: []captions.Cue{
			{Start: 0, End: 950, Text: "Hello world!"},
			{Start: 1000, End: 2400, Text: "How are you?"},
		},
		Style: captions.DefaultStyle(),
	}
	if err := set.Add(source); err != nil {
		t.Fatalf("Add: %v", err)
	}
	fn := captions.TranslateFunc(func(_ context.Context, in []captions.Cue, _, target string) ([]captions.Cue, error) {
		out := make([]captions.Cue, len(in))
		for i, cue := range in {
			out[i] = captions.Cue{Start: cue.Start, End: cue.End, Text: target + ": " + cue.Text}
		}
		return out, nil
	})
	styleFor := func(lang string) captions.Style {
		return captions.Style{FontFamily: lang}
	}

	if err := captions.TranslateSet(context.Background(), fn, &set, "en", []string{"es", "fr"}, styleFor); err != nil {
		t.Fatalf("TranslateSet: %v", err)
	}
	langs := set.Languages()
	if len(langs) != 3 || langs[0] != "en" || langs[1] != "es" || langs[2] != "fr" {
		t.Fatalf("Languages() = %v", langs)
	}
	es, ok := set.Track("es")
	if !ok {
		t.Fatal("es track missing")
	}
	if es.Style.FontFamily != "es" {
		t.Fatalf("es style = %+v, want resolver style", es.Style)
	}
	for i, cue := range es.Cues {
		if cue.Start != source.Cues[i].Start || cue.End != source.Cues[i].End {
			t.Fatalf("es cue %d timing drifted: %+v", i, cue)
		}
	}
	if es.Cues[0].Text != "es: Hello world!" {
		t.Fatalf("es text = %q", es.Cues[0].Text)
	}
}

func TestTranslateSetReusesSourceStyleWithoutResolver(t *testing.T) {
	var set captions.Set
	style := captions.Style{FontFamily: "Futura", VerticalPosPct: 20}
	if err := set.Add(captions.Track{Lang: "en", Cues: []captions.Cue{{End: 500, Text: "hi"}}, Style: style}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	fn := captions.TranslateFunc(func(_ context.Context, in []captions.Cue, _, _ string) ([]captions.Cue, error) {
		return in, nil
	})
	if err := captions.TranslateSet(context.Background(), fn, &set, "en", []string{"de"}, nil); err != nil {
		t.Fatalf("TranslateSet: %v", err)
	}
	de, _ := set.Track("de")
	if de.Style != style {
		t.Fatalf("de style = %+v, want source style", de.Style)
	}
}

func TestTranslateSetErrors(t *testing.T) {
	fn := captions.TranslateFunc(func(_ context.Context, in []captions.Cue, _, _ string) ([]captions.Cue, error) {
		return in, nil
	})
	if err := captions.TranslateSet(context.Background(), fn, nil, "en", []string{"es"}, nil); err == nil {
		t.Fatal("expected error for nil set")
	}

	var set captions.Set
	if err := captions.TranslateSet(context.Background(), fn, &set, "en", []string{"es"}, nil); err == nil {
		t.Fatal("expected error for missing source track")
	}

	if err := set.Add(captions.Track{Lang: "en", Cues: []captions.Cue{{End: 500, Text: "hi"}}}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := captions.TranslateSet(context.Background(), fn, &set, "en", []string{"en"}, nil); err == nil {
		t.Fatal("expected duplicate target error")
	}

	sentinel := errors.New("provider unavailable")
	failing := captions.TranslateFunc(func(context.Context, []captions.Cue, string, string) ([]captions.Cue, error) {
		return nil, sentinel
	})
	if err := captions.TranslateSet(context.Background(), failing, &set, "en", []string{"fr"}, nil); !errors.Is(err, sentinel) {
		t.Fatalf("TranslateSet error = %v, want wrapped sentinel", err)
	}
}
