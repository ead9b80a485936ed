package transform

import (
	"math/rand"

	"github.com/jkendall327/VoynichBruteForce/internal/textbuf"
)

// Transform is one deterministic text-rewriting operation. Instances are
// immutable: construction validates parameters once and nothing mutates a
// transform afterwards, so the same instance is safe to share across genomes
// and evaluation workers.
type Transform interface {
	// Name identifies the transform including its parameters, e.g. "shift(3)".
	Name() string
	// CognitiveCost rates how hard a human scribe would find this operation,
	// on a 0-10 scale. The evaluator sums these into a plausibility penalty.
	CognitiveCost() int
}

// BufferTransform runs in the zero-allocation buffer mode. Implementations
// read buf.ReadView(), call buf.EnsureCapacity with their worst-case output
// length if it can exceed the current capacity, fill buf.WriteView(), and
// finish with buf.Commit.
type BufferTransform interface {
	Transform
	Apply(buf *textbuf.Buffer)
}

// TextTransform is the string-based fallback mode for transforms whose
// per-rune output length is variable enough that a conservative worst case
// is not worth declaring.
type TextTransform interface {
	Transform
	ApplyText(text string) string
}

// Perturber is implemented by transforms that support a small parameter
// nudge as a cheap alternative to full replacement during mutation.
type Perturber interface {
	Transform
	Perturb(rng *rand.Rand) Transform
}
