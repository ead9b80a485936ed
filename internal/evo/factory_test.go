package evo

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/jkendall327/VoynichBruteForce/internal/corpus"
	"github.com/jkendall327/VoynichBruteForce/internal/model"
	"github.com/jkendall327/VoynichBruteForce/internal/transform"
)

func newTestFactory(t *testing.T) *Factory {
	t.Helper()
	catalog, err := corpus.NewCatalog(map[string]string{
		"alpha": strings.Repeat("alpha text ", 30),
		"beta":  strings.Repeat("beta text ", 30),
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	factory, err := NewFactory(catalog, transform.DefaultRegistry())
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}
	return factory
}

func TestFactoryRandom(t *testing.T) {
	factory := newTestFactory(t)
	rng := rand.New(rand.NewSource(1))

	genome := factory.Random(rng, 4)
	if len(genome.Transforms) != 4 {
		t.Fatalf("transform count = %d, want 4", len(genome.Transforms))
	}
	if genome.SourceTextID != "alpha" && genome.SourceTextID != "beta" {
		t.Fatalf("unknown source text id %q", genome.SourceTextID)
	}
	for i, tr := range genome.Transforms {
		if tr == nil {
			t.Fatalf("nil transform at index %d", i)
		}
	}
}

func TestMutatePreservesOriginalAndLengthBounds(t *testing.T) {
	factory := newTestFactory(t)
	rng := rand.New(rand.NewSource(7))

	original := factory.Random(rng, 3)
	originalNames := strings.Join(original.TransformNames(), ",")
	originalID := original.SourceTextID

	for i := 0; i < 500; i++ {
		mutated := factory.Mutate(rng, original)

		delta := len(mutated.Transforms) - len(original.Transforms)
		if delta < -1 || delta > 1 {
			t.Fatalf("mutation changed length by %d", delta)
		}
		if original.SourceTextID != originalID {
			t.Fatal("mutation modified the original genome's source text")
		}
		if got := strings.Join(original.TransformNames(), ","); got != originalNames {
			t.Fatalf("mutation modified the original genome's transforms: %s", got)
		}
	}
}

func TestMutateNeverEmptiesTransformList(t *testing.T) {
	factory := newTestFactory(t)
	rng := rand.New(rand.NewSource(11))

	genome := factory.Random(rng, 1)
	for i := 0; i < 500; i++ {
		genome = factory.Mutate(rng, genome)
		if len(genome.Transforms) == 0 {
			t.Fatalf("transform list emptied after %d mutations", i+1)
		}
	}
}

func TestCrossoverChildLengthMatchesSecondParent(t *testing.T) {
	factory := newTestFactory(t)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 200; i++ {
		a := factory.Random(rng, 1+rng.Intn(5))
		b := factory.Random(rng, 1+rng.Intn(5))
		child := factory.Crossover(rng, a, b)
		if len(child.Transforms) != len(b.Transforms) {
			t.Fatalf("child length = %d, want second parent's %d", len(child.Transforms), len(b.Transforms))
		}
		if child.SourceTextID != a.SourceTextID && child.SourceTextID != b.SourceTextID {
			t.Fatalf("child source text %q from neither parent", child.SourceTextID)
		}
	}
}

func TestCrossoverSingleTransformParents(t *testing.T) {
	factory := newTestFactory(t)
	rng := rand.New(rand.NewSource(5))

	// With single-transform parents the split point is forced to zero, so
	// the child's transform list is exactly the second parent's.
	a := model.Genome{SourceTextID: "alpha", Transforms: []transform.Transform{transform.Atbash{}}}
	b := model.Genome{SourceTextID: "beta", Transforms: []transform.Transform{transform.ReverseText{}}}
	for i := 0; i < 50; i++ {
		child := factory.Crossover(rng, a, b)
		if len(child.Transforms) != 1 || child.Transforms[0].Name() != b.Transforms[0].Name() {
			t.Fatalf("child transforms = %v, want second parent's list", child.TransformNames())
		}
	}
}

func TestCrossoverChildSliceIsIndependent(t *testing.T) {
	factory := newTestFactory(t)
	rng := rand.New(rand.NewSource(9))

	a := factory.Random(rng, 4)
	b := factory.Random(rng, 4)
	aNames := strings.Join(a.TransformNames(), ",")
	bNames := strings.Join(b.TransformNames(), ",")

	child := factory.Crossover(rng, a, b)
	for i := range child.Transforms {
		child.Transforms[i] = transform.Atbash{}
	}

	if got := strings.Join(a.TransformNames(), ","); got != aNames {
		t.Fatalf("writing to child mutated parent a: %s", got)
	}
	if got := strings.Join(b.TransformNames(), ","); got != bNames {
		t.Fatalf("writing to child mutated parent b: %s", got)
	}
}

func TestRemoveStrategyKeepsAtLeastOneTransform(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	single := []transform.Transform{transform.Atbash{}}
	if got := (removeStrategy{}).apply(rng, nil, single); len(got) != 1 {
		t.Fatalf("remove on single-transform list left %d transforms", len(got))
	}
	pair := []transform.Transform{transform.Atbash{}, transform.ReverseText{}}
	if got := (removeStrategy{}).apply(rng, nil, pair); len(got) != 1 {
		t.Fatalf("remove on two-transform list left %d transforms", len(got))
	}
}

func TestReplaceStrategyPreservesLength(t *testing.T) {
	factory := newTestFactory(t)
	rng := rand.New(rand.NewSource(2))

	if got := (replaceStrategy{}).apply(rng, factory, nil); len(got) != 0 {
		t.Fatalf("replace on empty list left %d transforms, want 0", len(got))
	}

	transforms := []transform.Transform{transform.Atbash{}, transform.ReverseText{}, transform.StripVowels{}}
	got := (replaceStrategy{}).apply(rng, factory, transforms)
	if len(got) != 3 {
		t.Fatalf("replace left %d transforms, want 3", len(got))
	}
}

func TestPerturbStrategyFailsClosed(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	// Neither atbash nor reverse supports perturbation.
	transforms := []transform.Transform{transform.Atbash{}, transform.ReverseText{}}
	got := (perturbStrategy{}).apply(rng, nil, transforms)
	if len(got) != 2 || got[0].Name() != "atbash" || got[1].Name() != "reverse" {
		t.Fatalf("perturb with no candidates changed the list: %v", got)
	}
}

func TestPerturbStrategyNudgesParameters(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	shift := mustShift(t, 5)
	transforms := []transform.Transform{shift}
	got := (perturbStrategy{}).apply(rng, nil, transforms)
	if len(got) != 1 {
		t.Fatalf("perturb changed list length to %d", len(got))
	}
	if got[0].Name() == shift.Name() {
		t.Fatalf("perturb left shift parameter unchanged: %s", got[0].Name())
	}
}

func TestNewFactoryValidation(t *testing.T) {
	catalog, err := corpus.NewCatalog(map[string]string{"x": "text"})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if _, err := NewFactory(nil, transform.DefaultRegistry()); err == nil {
		t.Fatal("expected error for nil catalog")
	}
	if _, err := NewFactory(catalog, nil); err == nil {
		t.Fatal("expected error for nil registry")
	}
}
