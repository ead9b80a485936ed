package transform

import (
	"fmt"
	"math/rand"
	"unicode"

	"github.com/jkendall327/VoynichBruteForce/internal/textbuf"
)

// NullInsertion inserts a fixed null rune after every interval runes,
// a classical technique for breaking up frequency patterns.
type NullInsertion struct {
	interval int
	null     rune
}

const (
	minNullInterval = 2
	maxNullInterval = 12
)

func NewNullInsertion(interval int, null rune) (NullInsertion, error) {
	if interval < minNullInterval || interval > maxNullInterval {
		return NullInsertion{}, fmt.Errorf("null interval must be in [%d, %d]: %d", minNullInterval, maxNullInterval, interval)
	}
	if null < 'a' || null > 'z' {
		return NullInsertion{}, fmt.Errorf("null rune must be a lowercase letter: %q", null)
	}
	return NullInsertion{interval: interval, null: null}, nil
}

func (t NullInsertion) Name() string {
	return fmt.Sprintf("nulls(%d,%c)", t.interval, t.null)
}

func (t NullInsertion) CognitiveCost() int {
	return 4
}

func (t NullInsertion) Apply(buf *textbuf.Buffer) {
	n := buf.Len()
	buf.EnsureCapacity(n + n/t.interval)

	src := buf.ReadView()
	dst := buf.WriteView()
	out := 0
	for i, r := range src {
		dst[out] = r
		out++
		if (i+1)%t.interval == 0 {
			dst[out] = t.null
			out++
		}
	}
	buf.Commit(out)
}

func (t NullInsertion) Perturb(rng *rand.Rand) Transform {
	next := t
	if rng.Intn(2) == 0 {
		// Nudge the interval.
		if rng.Intn(2) == 0 {
			next.interval--
		} else {
			next.interval++
		}
		if next.interval < minNullInterval {
			next.interval = minNullInterval
		}
		if next.interval > maxNullInterval {
			next.interval = maxNullInterval
		}
		return next
	}
	// Nudge the null rune, wrapping within a-z.
	if rng.Intn(2) == 0 {
		next.null = 'a' + (next.null-'a'+25)%26
	} else {
		next.null = 'a' + (next.null-'a'+1)%26
	}
	return next
}

// DoubleLetters writes every letter twice; other runes pass through once.
// Worst case output is exactly twice the input length.
type DoubleLetters struct{}

func (DoubleLetters) Name() string {
	return "double_letters"
}

func (DoubleLetters) CognitiveCost() int {
	return 3
}

func (DoubleLetters) Apply(buf *textbuf.Buffer) {
	n := buf.Len()
	buf.EnsureCapacity(2 * n)

	src := buf.ReadView()
	dst := buf.WriteView()
	out := 0
	for _, r := range src {
		dst[out] = r
		out++
		if unicode.IsLetter(r) {
			dst[out] = r
			out++
		}
	}
	buf.Commit(out)
}

// StripVowels removes aeiou in both cases. Output can only shrink.
type StripVowels struct{}

func (StripVowels) Name() string {
	return "strip_vowels"
}

func (StripVowels) CognitiveCost() int {
	return 2
}

func (StripVowels) Apply(buf *textbuf.Buffer) {
	src := buf.ReadView()
	dst := buf.WriteView()
	out := 0
	for _, r := range src {
		if isVowel(r) {
			continue
		}
		dst[out] = r
		out++
	}
	buf.Commit(out)
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}
