package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"captioner/internal/captions"
	"captioner/internal/config"
	"captioner/internal/language"
	"captioner/internal/segmenter"
	"captioner/internal/srt"
)

// parseTrackArg splits a "lang=path" argument into a normalized language
// code and an expanded subtitle path.
func parseTrackArg(arg string) (string, string, error) {
	trimmed := strings.TrimSpace(arg)
	eq := strings.Index(trimmed, "=")
	if eq < 0 {
		return "", "", fmt.Errorf("track %q must use lang=path form", arg)
	}
	lang := language.Normalize(trimmed[:eq])
	if lang == "" {
		return "", "", fmt.Errorf("track %q has an empty language code", arg)
	}
	rawPath := strings.TrimSpace(trimmed[eq+1:])
	if rawPath == "" {
		return "", "", fmt.Errorf("track %q has an empty path", arg)
	}
	path, err := config.ExpandPath(rawPath)
	if err != nil {
		return "", "", err
	}
	return lang, path, nil
}

// loadTrackSet assembles the caption tracks for compose and burn: an
// optional word-level transcript segmented on the fly, followed by any
// number of lang=path SRT files. Styles come from the configuration.
func loadTrackSet(cfg *config.Config, trackArgs []string, wordsPath, wordsLang string) (*captions.Set, error) {
	set := &captions.Set{}

	if strings.TrimSpace(wordsPath) != "" {
		expanded, err := config.ExpandPath(wordsPath)
		if err != nil {
			return nil, err
		}
		transcript, err := captions.ReadTranscript(expanded)
		if err != nil {
			return nil, err
		}
		lang := language.Normalize(wordsLang)
		if lang == "" {
			lang = language.Normalize(transcript.Language)
		}
		if lang == "" {
			lang = "en"
		}
		cues := newSegmenter(cfg).Segment(transcript.Words)
		if len(cues) == 0 {
			return nil, fmt.Errorf("transcript %s produced no cues", expanded)
		}
		if err := set.Add(captions.Track{Lang: lang, Cues: cues, Style: cfg.StyleFor(lang)}); err != nil {
			return nil, err
		}
	}

	for _, arg := range trackArgs {
		lang, path, err := parseTrackArg(arg)
		if err != nil {
			return nil, err
		}
		cues, err := srt.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if len(cues) == 0 {
			return nil, fmt.Errorf("no usable cues in %s", path)
		}
		if err := set.Add(captions.Track{Lang: lang, Cues: cues, Style: cfg.StyleFor(lang)}); err != nil {
			return nil, err
		}
	}

	return set, nil
}

var errNoTracks = errors.New("at least one --track or --words input is required")

func newSegmenter(cfg *config.Config) *segmenter.Segmenter {
	return segmenter.New(
		cfg.Subtitles.MaxChars,
		time.Duration(cfg.Subtitles.MaxDurationMs)*time.Millisecond,
		segmenter.WithPunctuation(cfg.Subtitles.Punctuation),
	)
}

// defaultOutputPath derives the burn output from the input path:
// movie.mkv becomes movie.captioned.mkv.
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".captioned" + ext
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
