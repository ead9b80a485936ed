package analysis

import (
	"strings"
	"sync"
	"unicode"
)

// Text is a read-only statistical view over a finished pipeline output.
// Every derived table is computed lazily and at most once, so scoring rules
// can share one view without recomputing each other's inputs.
type Text struct {
	raw   string
	runes []rune

	wordsOnce sync.Once
	words     []string

	freqOnce   sync.Once
	freq       map[rune]int
	letterRuns int

	bigramOnce sync.Once
	bigrams    map[[2]rune]int
	bigramN    int
}

func New(text string) *Text {
	return &Text{raw: text, runes: []rune(text)}
}

// Raw returns the underlying text.
func (t *Text) Raw() string {
	return t.raw
}

// Length is the rune count of the text.
func (t *Text) Length() int {
	return len(t.runes)
}

// Words splits the text on whitespace, lowercased, punctuation trimmed.
func (t *Text) Words() []string {
	t.wordsOnce.Do(func() {
		fields := strings.Fields(t.raw)
		words := make([]string, 0, len(fields))
		for _, field := range fields {
			word := strings.TrimFunc(strings.ToLower(field), func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsNumber(r)
			})
			if word != "" {
				words = append(words, word)
			}
		}
		t.words = words
	})
	return t.words
}

// LetterFrequencies counts letters, lowercased. TotalLetters is the sum of
// all counts.
func (t *Text) LetterFrequencies() map[rune]int {
	t.computeFrequencies()
	return t.freq
}

func (t *Text) TotalLetters() int {
	t.computeFrequencies()
	return t.letterRuns
}

func (t *Text) computeFrequencies() {
	t.freqOnce.Do(func() {
		freq := make(map[rune]int)
		total := 0
		for _, r := range t.runes {
			if !unicode.IsLetter(r) {
				continue
			}
			freq[unicode.ToLower(r)]++
			total++
		}
		t.freq = freq
		t.letterRuns = total
	})
}

// Bigrams counts adjacent letter pairs within words (pairs spanning
// non-letters are skipped). TotalBigrams is the sum of all counts.
func (t *Text) Bigrams() map[[2]rune]int {
	t.computeBigrams()
	return t.bigrams
}

func (t *Text) TotalBigrams() int {
	t.computeBigrams()
	return t.bigramN
}

func (t *Text) computeBigrams() {
	t.bigramOnce.Do(func() {
		bigrams := make(map[[2]rune]int)
		total := 0
		var prev rune
		havePrev := false
		for _, r := range t.runes {
			if !unicode.IsLetter(r) {
				havePrev = false
				continue
			}
			r = unicode.ToLower(r)
			if havePrev {
				bigrams[[2]rune{prev, r}]++
				total++
			}
			prev = r
			havePrev = true
		}
		t.bigrams = bigrams
		t.bigramN = total
	})
}
