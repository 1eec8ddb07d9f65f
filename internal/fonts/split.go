package fonts

import (
	"strings"

	"golang.org/x/image/font"
)

// Split wraps text into lines no wider than maxWidthPt at sizePt.
// Explicit newlines start new lines, runs of spaces collapse, and a word wider
// than the limit is broken between characters. Empty text yields no lines.
func Split(f *Font, text string, sizePt, maxWidthPt float64) ([]string, error) {
	if text == "" {
		return nil, nil
	}

	face, err := f.NewFace(sizePt)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	fits := func(s string) bool {
		return toPt(font.MeasureString(face, s)) <= maxWidthPt
	}

	var lines []string
	for _, paragraph := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		line := ""
		for _, word := range words {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if fits(candidate) {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			if fits(word) {
				line = word
				continue
			}
			chunks := breakWord(word, fits)
			lines = append(lines, chunks[:len(chunks)-1]...)
			line = chunks[len(chunks)-1]
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// breakWord cuts word into pieces that fit, keeping at least one rune per piece.
func breakWord(word string, fits func(string) bool) []string {
	var chunks []string
	var current []rune
	for _, r := range word {
		next := append(current, r)
		if len(current) > 0 && !fits(string(next)) {
			chunks = append(chunks, string(current))
			current = []rune{r}
			continue
		}
		current = next
	}
	return append(chunks, string(current))
}
