package ass

import (
	"fmt"
	"math"
	"strings"

	"captioner/internal/captions"
	"captioner/internal/timecode"
)

const (
	defaultWidth  = 1920
	defaultHeight = 1080

	minMarginV       = 10
	marginVHeadroom  = 50
	defaultAlignment = 2 // bottom center
)

const stylesFormat = "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, " +
	"Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, " +
	"BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding"

const eventsFormat = "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text"

// Compose renders the tracks as one subtitle document sized to the given
// canvas. Track order is preserved in both the style and event sections, and
// events within a track keep cue order. Non-positive dimensions fall back to
// 1920x1080.
func Compose(tracks []captions.Track, width, height int) string {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	var b strings.Builder
	b.WriteString("[Script Info]\n")
	b.WriteString("ScriptType: v4.00+\n")
	fmt.Fprintf(&b, "PlayResX: %d\n", width)
	fmt.Fprintf(&b, "PlayResY: %d\n", height)
	b.WriteString("WrapStyle: 2\n")
	b.WriteString("ScaledBorderAndShadow: yes\n")
	b.WriteString("\n")

	b.WriteString("[V4+ Styles]\n")
	b.WriteString(stylesFormat)
	b.WriteString("\n")
	for _, track := range tracks {
		writeStyle(&b, track, height)
	}
	b.WriteString("\n")

	b.WriteString("[Events]\n")
	b.WriteString(eventsFormat)
	b.WriteString("\n")
	for _, track := range tracks {
		writeEvents(&b, track, width, height)
	}
	return b.String()
}

func writeStyle(b *strings.Builder, track captions.Track, height int) {
	style := effectiveStyle(track.Style)
	fontSize := percentOf(style.FontSizePct, height)
	marginV := verticalMargin(style.VerticalPosPct, height)
	outline := int(math.Round(style.OutlineWidth))
	if outline < 0 {
		outline = 0
	}
	primary := formatColor(style.Color)
	fmt.Fprintf(b, "Style: %s,%s,%d,%s,%s,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,%d,0,%d,10,10,%d,1\n",
		styleName(track.Lang), style.FontFamily, fontSize, primary, primary, outline, defaultAlignment, marginV)
}

func writeEvents(b *strings.Builder, track captions.Track, width, height int) {
	style := effectiveStyle(track.Style)
	x := width / 2
	y := percentOf(style.VerticalPosPct, height)
	name := styleName(track.Lang)
	for _, cue := range track.Cues {
		if cue.Validate() != nil {
			continue
		}
		fmt.Fprintf(b, "Dialogue: 0,%s,%s,%s,,0,0,0,,{\\pos(%d,%d)}%s\n",
			timecode.FormatASS(cue.Start), timecode.FormatASS(cue.End), name, x, y, sanitizeText(cue.Text))
	}
}

// effectiveStyle fills unset style fields with the package defaults. The
// font name is stripped of characters that would break the style line.
func effectiveStyle(style captions.Style) captions.Style {
	def := captions.DefaultStyle()
	style.FontFamily = styleField(style.FontFamily)
	if style.FontFamily == "" {
		style.FontFamily = def.FontFamily
	}
	if style.FontSizePct <= 0 {
		style.FontSizePct = def.FontSizePct
	}
	if style.Color == 0 {
		style.Color = def.Color
	}
	if style.VerticalPosPct <= 0 {
		style.VerticalPosPct = def.VerticalPosPct
	}
	if style.VerticalPosPct > 100 {
		style.VerticalPosPct = 100
	}
	if style.OutlineWidth < 0 {
		style.OutlineWidth = def.OutlineWidth
	}
	return style
}

// percentOf converts a percentage of the video height to pixels.
func percentOf(pct float64, height int) int {
	return int(math.Round(pct * float64(height) / 100))
}

// verticalMargin converts a top-relative vertical position into the
// bottom-relative MarginV the format expects, clamped so text stays on
// screen.
func verticalMargin(pct float64, height int) int {
	margin := int(math.Round((100 - pct) * float64(height) / 100))
	if margin < minMarginV {
		margin = minMarginV
	}
	if limit := height - marginVHeadroom; margin > limit {
		margin = limit
	}
	return margin
}

// formatColor packs ARGB into the format's &HAABBGGRR notation. The format
// inverts alpha: 00 is opaque, FF is fully transparent.
func formatColor(argb uint32) string {
	alpha := 0xFF - byte(argb>>24)
	red := byte(argb >> 16)
	green := byte(argb >> 8)
	blue := byte(argb)
	return fmt.Sprintf("&H%02X%02X%02X%02X", alpha, blue, green, red)
}

// styleField strips the characters that would break a comma-separated style
// line.
func styleField(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ',', '\n', '\r':
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// styleName derives a style identifier from a language key.
func styleName(lang string) string {
	name := styleField(lang)
	if name == "" {
		return "Default"
	}
	return name
}

// sanitizeText keeps cue text from being interpreted as markup: braces
// become parentheses, backslashes are doubled, and line breaks flatten to
// spaces. Dialogue text is the final field of its line, so commas survive.
var textSanitizer = strings.NewReplacer(
	"\\", "\\\\",
	"{", "(",
	"}", ")",
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

func sanitizeText(text string) string {
	return textSanitizer.Replace(text)
}
