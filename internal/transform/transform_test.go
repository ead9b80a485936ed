package transform

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/jkendall327/VoynichBruteForce/internal/textbuf"
)

func runBuffer(t *testing.T, tr BufferTransform, input string) string {
	t.Helper()
	buf := textbuf.New(textbuf.NewPool(), input, 0)
	defer buf.Release()
	tr.Apply(buf)
	return buf.String()
}

func TestShiftCipher(t *testing.T) {
	cipher, err := NewShiftCipher(3)
	if err != nil {
		t.Fatalf("new shift cipher: %v", err)
	}
	if got := runBuffer(t, cipher, "abc XYZ!"); got != "def ABC!" {
		t.Fatalf("shift(3) = %q, want %q", got, "def ABC!")
	}
}

func TestShiftCipherRejectsOutOfRange(t *testing.T) {
	for _, shift := range []int{-1, 26, 100} {
		if _, err := NewShiftCipher(shift); err == nil {
			t.Fatalf("expected error for shift %d", shift)
		}
	}
}

func TestShiftCipherPerturbMovesByOne(t *testing.T) {
	cipher, _ := NewShiftCipher(5)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		next := cipher.Perturb(rng).(ShiftCipher)
		if next.shift != 4 && next.shift != 6 {
			t.Fatalf("perturbed shift = %d, want 4 or 6", next.shift)
		}
	}
}

func TestAtbash(t *testing.T) {
	if got := runBuffer(t, Atbash{}, "abz YZ."); got != "zya BA." {
		t.Fatalf("atbash = %q, want %q", got, "zya BA.")
	}
	// Atbash is an involution.
	if got := runBuffer(t, Atbash{}, runBuffer(t, Atbash{}, "hello world")); got != "hello world" {
		t.Fatalf("atbash twice = %q, want identity", got)
	}
}

func TestReverseText(t *testing.T) {
	if got := runBuffer(t, ReverseText{}, "abcde"); got != "edcba" {
		t.Fatalf("reverse = %q, want %q", got, "edcba")
	}
}

func TestSkipCipherIsPermutation(t *testing.T) {
	cipher, err := NewSkipCipher(3)
	if err != nil {
		t.Fatalf("new skip cipher: %v", err)
	}
	input := "abcdefghij"
	got := runBuffer(t, cipher, input)
	if got != "adgjbehcfi" {
		t.Fatalf("skip(3) = %q, want %q", got, "adgjbehcfi")
	}
	if len(got) != len(input) {
		t.Fatalf("skip changed length: %d -> %d", len(input), len(got))
	}
}

func TestSkipCipherPerturbClamps(t *testing.T) {
	cipher := SkipCipher{step: minSkipStep}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		next := cipher.Perturb(rng).(SkipCipher)
		if next.step < minSkipStep || next.step > minSkipStep+1 {
			t.Fatalf("perturbed step = %d, want %d or %d", next.step, minSkipStep, minSkipStep+1)
		}
	}
}

func TestColumnarTransposition(t *testing.T) {
	columnar, err := NewColumnarTransposition([]int{2, 0, 1})
	if err != nil {
		t.Fatalf("new columnar: %v", err)
	}
	// Rows: abc / def / g. Columns read in order 2,0,1: cf, adg, be.
	if got := runBuffer(t, columnar, "abcdefg"); got != "cfadgbe" {
		t.Fatalf("columnar[2,0,1] = %q, want %q", got, "cfadgbe")
	}
}

func TestColumnarTranspositionValidation(t *testing.T) {
	cases := [][]int{
		{0},          // too few columns
		{0, 2},       // index out of range
		{1, 1},       // duplicate
		{0, 1, 3, 3}, // duplicate with gap
	}
	for _, order := range cases {
		if _, err := NewColumnarTransposition(order); err == nil {
			t.Fatalf("expected error for order %v", order)
		}
	}
}

func TestNullInsertion(t *testing.T) {
	nulls, err := NewNullInsertion(2, 'q')
	if err != nil {
		t.Fatalf("new null insertion: %v", err)
	}
	if got := runBuffer(t, nulls, "abcde"); got != "abqcdqe" {
		t.Fatalf("nulls(2,q) = %q, want %q", got, "abqcdqe")
	}
}

func TestNullInsertionPerturbStaysValid(t *testing.T) {
	nulls, _ := NewNullInsertion(2, 'a')
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		next := nulls.Perturb(rng).(NullInsertion)
		if next.interval < minNullInterval || next.interval > maxNullInterval {
			t.Fatalf("perturbed interval out of range: %d", next.interval)
		}
		if next.null < 'a' || next.null > 'z' {
			t.Fatalf("perturbed null out of range: %q", next.null)
		}
		nulls = next
	}
}

func TestDoubleLettersDoublesOnlyLetters(t *testing.T) {
	if got := runBuffer(t, DoubleLetters{}, "ab c!"); got != "aabb cc!" {
		t.Fatalf("double_letters = %q, want %q", got, "aabb cc!")
	}
}

func TestDoubleLettersGrowsBuffer(t *testing.T) {
	input := strings.Repeat("a", 50)
	buf := textbuf.New(textbuf.NewPool(), input, 50)
	defer buf.Release()

	DoubleLetters{}.Apply(buf)
	if buf.Len() != 100 {
		t.Fatalf("length after doubling = %d, want 100", buf.Len())
	}
	if buf.Cap() < 100 {
		t.Fatalf("capacity after doubling = %d, want >= 100", buf.Cap())
	}
}

func TestStripVowels(t *testing.T) {
	if got := runBuffer(t, StripVowels{}, "The quick brOwn fox"); got != "Th qck brwn fx" {
		t.Fatalf("strip_vowels = %q, want %q", got, "Th qck brwn fx")
	}
}

func TestDigraphSubstitution(t *testing.T) {
	got := DigraphSubstitution{}.ApplyText("ton b")
	if got != "cthokiin b" {
		t.Fatalf("digraphs = %q, want %q", got, "cthokiin b")
	}
}

func TestDefaultRegistryProducesValidTransforms(t *testing.T) {
	registry := DefaultRegistry()
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		tr := registry.Random(rng)
		if tr.Name() == "" {
			t.Fatal("transform with empty name")
		}
		if cost := tr.CognitiveCost(); cost < 0 || cost > 10 {
			t.Fatalf("cognitive cost out of range for %s: %d", tr.Name(), cost)
		}
		_, isBuffer := tr.(BufferTransform)
		_, isText := tr.(TextTransform)
		if !isBuffer && !isText {
			t.Fatalf("transform %s supports neither execution mode", tr.Name())
		}
	}
}

func TestNewRegistryValidation(t *testing.T) {
	if _, err := NewRegistry(); err == nil {
		t.Fatal("expected error for empty registry")
	}
	dup := Factory{Kind: "x", New: func(_ *rand.Rand) Transform { return Atbash{} }}
	if _, err := NewRegistry(dup, dup); err == nil {
		t.Fatal("expected error for duplicate kinds")
	}
	if _, err := NewRegistry(Factory{Kind: "y"}); err == nil {
		t.Fatal("expected error for nil constructor")
	}
}
