package transform

import (
	"fmt"
	"math/rand"

	"github.com/jkendall327/VoynichBruteForce/internal/textbuf"
)

// ShiftCipher rotates every letter forward through the alphabet, preserving
// case and leaving other runes untouched.
type ShiftCipher struct {
	shift int
}

func NewShiftCipher(shift int) (ShiftCipher, error) {
	if shift < 0 || shift > 25 {
		return ShiftCipher{}, fmt.Errorf("shift must be in [0, 25]: %d", shift)
	}
	return ShiftCipher{shift: shift}, nil
}

func (c ShiftCipher) Name() string {
	return fmt.Sprintf("shift(%d)", c.shift)
}

func (c ShiftCipher) CognitiveCost() int {
	return 2
}

func (c ShiftCipher) Apply(buf *textbuf.Buffer) {
	src := buf.ReadView()
	dst := buf.WriteView()
	for i, r := range src {
		dst[i] = shiftRune(r, c.shift)
	}
	buf.Commit(len(src))
}

func (c ShiftCipher) Perturb(rng *rand.Rand) Transform {
	delta := 1
	if rng.Intn(2) == 0 {
		delta = -1
	}
	return ShiftCipher{shift: (c.shift + delta + 26) % 26}
}

func shiftRune(r rune, shift int) rune {
	switch {
	case r >= 'a' && r <= 'z':
		return 'a' + (r-'a'+rune(shift))%26
	case r >= 'A' && r <= 'Z':
		return 'A' + (r-'A'+rune(shift))%26
	default:
		return r
	}
}

// Atbash mirrors every letter against the end of the alphabet (a<->z).
type Atbash struct{}

func (Atbash) Name() string {
	return "atbash"
}

func (Atbash) CognitiveCost() int {
	return 1
}

func (Atbash) Apply(buf *textbuf.Buffer) {
	src := buf.ReadView()
	dst := buf.WriteView()
	for i, r := range src {
		switch {
		case r >= 'a' && r <= 'z':
			dst[i] = 'a' + ('z' - r)
		case r >= 'A' && r <= 'Z':
			dst[i] = 'A' + ('Z' - r)
		default:
			dst[i] = r
		}
	}
	buf.Commit(len(src))
}

// ReverseText writes the text back to front.
type ReverseText struct{}

func (ReverseText) Name() string {
	return "reverse"
}

func (ReverseText) CognitiveCost() int {
	return 1
}

func (ReverseText) Apply(buf *textbuf.Buffer) {
	src := buf.ReadView()
	dst := buf.WriteView()
	n := len(src)
	for i, r := range src {
		dst[n-1-i] = r
	}
	buf.Commit(n)
}

// SkipCipher reads every step-th rune in repeated passes, one pass per
// starting offset. Any step >= 2 yields a permutation of the input.
type SkipCipher struct {
	step int
}

const (
	minSkipStep = 2
	maxSkipStep = 12
)

func NewSkipCipher(step int) (SkipCipher, error) {
	if step < minSkipStep || step > maxSkipStep {
		return SkipCipher{}, fmt.Errorf("skip step must be in [%d, %d]: %d", minSkipStep, maxSkipStep, step)
	}
	return SkipCipher{step: step}, nil
}

func (c SkipCipher) Name() string {
	return fmt.Sprintf("skip(%d)", c.step)
}

func (c SkipCipher) CognitiveCost() int {
	return 6
}

func (c SkipCipher) Apply(buf *textbuf.Buffer) {
	src := buf.ReadView()
	dst := buf.WriteView()
	n := len(src)
	out := 0
	for offset := 0; offset < c.step; offset++ {
		for i := offset; i < n; i += c.step {
			dst[out] = src[i]
			out++
		}
	}
	buf.Commit(n)
}

func (c SkipCipher) Perturb(rng *rand.Rand) Transform {
	step := c.step + 1
	if rng.Intn(2) == 0 {
		step = c.step - 1
	}
	if step < minSkipStep {
		step = minSkipStep
	}
	if step > maxSkipStep {
		step = maxSkipStep
	}
	return SkipCipher{step: step}
}
