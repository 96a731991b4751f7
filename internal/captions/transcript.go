package captions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Transcript is the word-level payload produced by a transcription provider.
type Transcript struct {
	Language string
	Words    []Word
}

type transcriptEnvelope struct {
	Language string           `json:"language"`
	Words    []transcriptWord `json:"words"`
}

// transcriptWord tolerates both timing conventions seen in provider exports:
// integer milliseconds (start_ms/end_ms) and float seconds (start/end).
type transcriptWord struct {
	Text    string   `json:"text"`
	StartMs *int64   `json:"start_ms"`
	EndMs   *int64   `json:"end_ms"`
	Start   *float64 `json:"start"`
	End     *float64 `json:"end"`
}

func (w transcriptWord) toWord() Word {
	word := Word{Text: w.Text}
	switch {
	case w.StartMs != nil:
		word.Start = *w.StartMs
	case w.Start != nil:
		word.Start = int64(math.Round(*w.Start * 1000))
	}
	switch {
	case w.EndMs != nil:
		word.End = *w.EndMs
	case w.End != nil:
		word.End = int64(math.Round(*w.End * 1000))
	}
	return word
}

// ParseTranscript decodes a transcript JSON document. Both the wrapped object
// form ({"language": ..., "words": [...]}) and a bare word array are
// accepted.
func ParseTranscript(data []byte) (Transcript, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Transcript{}, fmt.Errorf("transcript is empty")
	}

	var raw []transcriptWord
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return Transcript{}, fmt.Errorf("decode transcript words: %w", err)
		}
		return Transcript{Words: convertWords(raw)}, nil
	}

	var envelope transcriptEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return Transcript{}, fmt.Errorf("decode transcript: %w", err)
	}
	return Transcript{
		Language: envelope.Language,
		Words:    convertWords(envelope.Words),
	}, nil
}

// ReadTranscript loads and decodes a transcript file.
func ReadTranscript(path string) (Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Transcript{}, fmt.Errorf("read transcript: %w", err)
	}
	transcript, err := ParseTranscript(data)
	if err != nil {
		return Transcript{}, fmt.Errorf("parse transcript %s: %w", path, err)
	}
	return transcript, nil
}

func convertWords(raw []transcriptWord) []Word {
	words := make([]Word, 0, len(raw))
	for _, entry := range raw {
		words = append(words, entry.toWord())
	}
	return words
}
