package srt

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"captioner/internal/captions"
	"captioner/internal/fileutil"
	"captioner/internal/timecode"
)

// Parse decodes SubRip text into cues with a line-by-line scan. Blocks that
// cannot be parsed, and cues whose timing is not renderable, are dropped.
func Parse(text string) []captions.Cue {
	var cues []captions.Cue
	var block []string
	lines := strings.Split(normalizeNewlines(text), "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if cue, ok := parseBlock(block); ok {
				cues = append(cues, cue)
			}
			block = block[:0]
			continue
		}
		block = append(block, line)
	}
	if cue, ok := parseBlock(block); ok {
		cues = append(cues, cue)
	}
	return cues
}

// ParseBlocks decodes SubRip text by splitting on blank lines, for input
// already known to be well formed. It yields the same cues as Parse for
// canonical documents.
func ParseBlocks(text string) []captions.Cue {
	var cues []captions.Cue
	for _, chunk := range strings.Split(normalizeNewlines(text), "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if cue, ok := parseBlock(strings.Split(chunk, "\n")); ok {
			cues = append(cues, cue)
		}
	}
	return cues
}

// parseBlock interprets one subtitle block: an optional index line, a timing
// line, and zero or more text lines.
func parseBlock(block []string) (captions.Cue, bool) {
	if len(block) == 0 {
		return captions.Cue{}, false
	}
	idx := 0
	if _, err := strconv.Atoi(strings.TrimSpace(block[0])); err == nil {
		idx = 1
	}
	if idx >= len(block) {
		return captions.Cue{}, false
	}
	start, end, err := timecode.ParseSRTRange(block[idx])
	if err != nil {
		return captions.Cue{}, false
	}
	cue := captions.Cue{
		Start: start,
		End:   end,
		Text:  strings.Join(block[idx+1:], "\n"),
	}
	if err := cue.Validate(); err != nil {
		return captions.Cue{}, false
	}
	return cue, true
}

// Serialize renders cues as a canonical SubRip document.
func Serialize(cues []captions.Cue) string {
	var b strings.Builder
	for i, cue := range cues {
		fmt.Fprintf(&b, "%d\n", i+1)
		b.WriteString(timecode.FormatSRT(cue.Start))
		b.WriteString(" --> ")
		b.WriteString(timecode.FormatSRT(cue.End))
		b.WriteByte('\n')
		b.WriteString(cue.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// ReadFile loads and parses a SubRip file.
func ReadFile(path string) ([]captions.Cue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitle file: %w", err)
	}
	return Parse(string(data)), nil
}

// WriteFile serializes cues to path. The write is atomic so a concurrent
// reader never sees a truncated document.
func WriteFile(path string, cues []captions.Cue) error {
	if err := fileutil.WriteAtomic(path, []byte(Serialize(cues)), 0o644); err != nil {
		return fmt.Errorf("write subtitle file: %w", err)
	}
	return nil
}

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
