package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const marqueeGap = "   "

// pad fills s with spaces up to width terminal cells.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// marqueeText shows a width-cell window onto text that slides one rune
// per tick, wrapping around after a short gap.
func marqueeText(text string, width, tick int) string {
	text = strings.TrimSpace(text)
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	cycle := []rune(text + marqueeGap)
	offset := tick % len(cycle)
	var out strings.Builder
	for i, used := 0, 0; i < len(cycle); i++ {
		r := cycle[(offset+i)%len(cycle)]
		w := runewidth.RuneWidth(r)
		if used+w > width {
			break
		}
		out.WriteRune(r)
		used += w
	}
	return out.String()
}

// NonEmptyOrDash returns "-" for empty/whitespace strings.
func NonEmptyOrDash(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "-"
	}
	return value
}

// TruncateWithEllipsis shortens value to max terminal cells, ending in "..."
// when there is room for it. Runes are never split.
func TruncateWithEllipsis(value string, max int) string {
	if max <= 0 {
		return ""
	}
	value = strings.TrimSpace(value)
	if runewidth.StringWidth(value) <= max {
		return value
	}
	if max <= 3 {
		return runewidth.Truncate(value, max, "")
	}
	return runewidth.Truncate(value, max, "...")
}
