// Package textnorm normalizes raw document text before classification:
// whitespace collapses to single spaces and the result is clipped to a
// bounded prefix sized for the model context window.
package textnorm

import "strings"

const defaultMaxChars = 4000

type Normalizer struct {
	MaxChars int
}

func New(maxChars int) *Normalizer {
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}
	return &Normalizer{MaxChars: maxChars}
}

func (n *Normalizer) Normalize(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	return Clip(collapsed, n.MaxChars)
}

// Clip bounds text to max runes without splitting a multi-byte character.
func Clip(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
