package transform

import (
	"fmt"
	"math/rand"
)

// Factory builds a randomized instance of one transform kind. Each kind owns
// its randomized-construction rule; the parameters it draws are always valid
// so the constructors cannot fail here.
type Factory struct {
	Kind string
	New  func(rng *rand.Rand) Transform
}

// Registry holds the transform kinds available to genome construction and
// mutation. Construction through factories replaces any need to dispatch on
// type names at runtime.
type Registry struct {
	factories []Factory
	byKind    map[string]Factory
}

func NewRegistry(factories ...Factory) (*Registry, error) {
	if len(factories) == 0 {
		return nil, fmt.Errorf("at least one transform factory is required")
	}
	byKind := make(map[string]Factory, len(factories))
	for i, factory := range factories {
		if factory.Kind == "" {
			return nil, fmt.Errorf("transform factory kind is required at index %d", i)
		}
		if factory.New == nil {
			return nil, fmt.Errorf("transform factory constructor is required for kind %s", factory.Kind)
		}
		if _, exists := byKind[factory.Kind]; exists {
			return nil, fmt.Errorf("duplicate transform factory kind: %s", factory.Kind)
		}
		byKind[factory.Kind] = factory
	}
	return &Registry{
		factories: append([]Factory(nil), factories...),
		byKind:    byKind,
	}, nil
}

// DefaultRegistry returns the full transform library.
func DefaultRegistry() *Registry {
	registry, err := NewRegistry(
		Factory{Kind: "shift", New: func(rng *rand.Rand) Transform {
			return ShiftCipher{shift: 1 + rng.Intn(25)}
		}},
		Factory{Kind: "atbash", New: func(_ *rand.Rand) Transform {
			return Atbash{}
		}},
		Factory{Kind: "reverse", New: func(_ *rand.Rand) Transform {
			return ReverseText{}
		}},
		Factory{Kind: "skip", New: func(rng *rand.Rand) Transform {
			return SkipCipher{step: minSkipStep + rng.Intn(8)}
		}},
		Factory{Kind: "columnar", New: func(rng *rand.Rand) Transform {
			return ColumnarTransposition{order: rng.Perm(3 + rng.Intn(4))}
		}},
		Factory{Kind: "nulls", New: func(rng *rand.Rand) Transform {
			return NullInsertion{
				interval: minNullInterval + rng.Intn(8),
				null:     rune('a' + rng.Intn(26)),
			}
		}},
		Factory{Kind: "double_letters", New: func(_ *rand.Rand) Transform {
			return DoubleLetters{}
		}},
		Factory{Kind: "strip_vowels", New: func(_ *rand.Rand) Transform {
			return StripVowels{}
		}},
		Factory{Kind: "digraphs", New: func(_ *rand.Rand) Transform {
			return DigraphSubstitution{}
		}},
	)
	if err != nil {
		panic(fmt.Sprintf("transform: default registry: %v", err))
	}
	return registry
}

// Random draws a kind uniformly and builds a randomized instance of it.
func (r *Registry) Random(rng *rand.Rand) Transform {
	factory := r.factories[rng.Intn(len(r.factories))]
	return factory.New(rng)
}

// Kinds lists the registered kinds in registration order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, len(r.factories))
	for i, factory := range r.factories {
		kinds[i] = factory.Kind
	}
	return kinds
}
