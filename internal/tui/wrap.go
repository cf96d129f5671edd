package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText wraps words to the given display width. Words wider than the
// limit are broken mid-word so no line ever exceeds it.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(paragraph, width)...)
	}
	return strings.Join(lines, "\n")
}

func wrapParagraph(paragraph string, width int) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	var line strings.Builder
	lineWidth := 0
	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineWidth = 0
	}
	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)
		if lineWidth > 0 && lineWidth+1+wordWidth > width {
			flush()
		}
		if wordWidth > width {
			for _, part := range breakWord(word, width-lineWidth, width) {
				if lineWidth > 0 {
					line.WriteByte(' ')
					lineWidth++
				}
				partWidth := runewidth.StringWidth(part)
				if lineWidth+partWidth > width {
					flush()
				}
				line.WriteString(part)
				lineWidth += partWidth
				if lineWidth >= width {
					flush()
				}
			}
			continue
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += wordWidth
	}
	if lineWidth > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

func breakWord(word string, first, width int) []string {
	if first <= 0 {
		first = width
	}
	var parts []string
	var part strings.Builder
	limit := first
	partWidth := 0
	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if partWidth+rw > limit && partWidth > 0 {
			parts = append(parts, part.String())
			part.Reset()
			partWidth = 0
			limit = width
		}
		part.WriteRune(r)
		partWidth += rw
	}
	if partWidth > 0 {
		parts = append(parts, part.String())
	}
	return parts
}
