package transform

import "strings"

// DigraphSubstitution replaces common letters with multi-rune glyph groups.
// Output length per rune varies between one and four runes, so it runs in
// the string fallback mode rather than declaring a wasteful worst case.
type DigraphSubstitution struct{}

var digraphTable = map[rune]string{
	'a': "qo",
	'e': "ch",
	'i': "aii",
	'n': "iin",
	'o': "ok",
	's': "sh",
	't': "cth",
	'u': "dy",
}

func (DigraphSubstitution) Name() string {
	return "digraphs"
}

func (DigraphSubstitution) CognitiveCost() int {
	return 5
}

func (DigraphSubstitution) ApplyText(text string) string {
	var b strings.Builder
	b.Grow(len(text) * 2)
	for _, r := range text {
		if sub, ok := digraphTable[r]; ok {
			b.WriteString(sub)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
