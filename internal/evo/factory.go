package evo

import (
	"fmt"
	"math/rand"

	"github.com/jkendall327/VoynichBruteForce/internal/corpus"
	"github.com/jkendall327/VoynichBruteForce/internal/model"
	"github.com/jkendall327/VoynichBruteForce/internal/transform"
)

// Factory creates, mutates and recombines genomes. All randomness flows
// through the *rand.Rand passed by the caller, so the factory itself holds
// no mutable state and is safe to share.
type Factory struct {
	catalog  *corpus.Catalog
	registry *transform.Registry
}

func NewFactory(catalog *corpus.Catalog, registry *transform.Registry) (*Factory, error) {
	if catalog == nil {
		return nil, fmt.Errorf("source text catalog is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("transform registry is required")
	}
	return &Factory{catalog: catalog, registry: registry}, nil
}

// Random builds a genome with a random source text and transformCount
// randomized transforms.
func (f *Factory) Random(rng *rand.Rand, transformCount int) model.Genome {
	transforms := make([]transform.Transform, transformCount)
	for i := range transforms {
		transforms[i] = f.registry.Random(rng)
	}
	return model.Genome{
		SourceTextID: f.catalog.RandomID(rng),
		Transforms:   transforms,
	}
}

// Mutate returns a mutated copy of genome. The mutation target is the
// source text, the transform list, or both; transform-list mutations pick
// one strategy uniformly.
func (f *Factory) Mutate(rng *rand.Rand, genome model.Genome) model.Genome {
	mutated := model.Genome{
		SourceTextID: genome.SourceTextID,
		Transforms:   append([]transform.Transform(nil), genome.Transforms...),
	}

	const (
		targetText = iota
		targetTransforms
		targetBoth
	)
	target := rng.Intn(3)
	if target == targetText || target == targetBoth {
		mutated.SourceTextID = f.catalog.RandomID(rng)
	}
	if target == targetTransforms || target == targetBoth {
		strategy := transformStrategies[rng.Intn(len(transformStrategies))]
		mutated.Transforms = strategy.apply(rng, f, mutated.Transforms)
	}
	return mutated
}

// Crossover recombines two parents: the source text comes from either
// parent 50/50, and the transform list is parent A's head up to a split
// point drawn uniformly from [0, min(lenA, lenB)) joined with parent B's
// tail from that point. The asymmetry is intentional.
func (f *Factory) Crossover(rng *rand.Rand, a, b model.Genome) model.Genome {
	sourceTextID := a.SourceTextID
	if rng.Intn(2) == 1 {
		sourceTextID = b.SourceTextID
	}

	minLen := len(a.Transforms)
	if len(b.Transforms) < minLen {
		minLen = len(b.Transforms)
	}
	split := 0
	if minLen > 0 {
		split = rng.Intn(minLen)
	}

	child := make([]transform.Transform, 0, split+len(b.Transforms)-split)
	child = append(child, a.Transforms[:split]...)
	child = append(child, b.Transforms[split:]...)
	return model.Genome{SourceTextID: sourceTextID, Transforms: child}
}

// mutationStrategy is one way of rewriting a transform list. Each variant
// carries only the behavior it needs; apply operates on a copy the caller
// already owns and may return it modified or replaced.
type mutationStrategy interface {
	name() string
	apply(rng *rand.Rand, f *Factory, transforms []transform.Transform) []transform.Transform
}

var transformStrategies = []mutationStrategy{
	replaceStrategy{},
	swapStrategy{},
	removeStrategy{},
	insertStrategy{},
	perturbStrategy{},
}

// replaceStrategy swaps one random transform for a fresh random one. The
// list length never changes; an empty list stays empty.
type replaceStrategy struct{}

func (replaceStrategy) name() string { return "replace" }

func (replaceStrategy) apply(rng *rand.Rand, f *Factory, transforms []transform.Transform) []transform.Transform {
	if len(transforms) == 0 {
		return transforms
	}
	transforms[rng.Intn(len(transforms))] = f.registry.Random(rng)
	return transforms
}

// swapStrategy exchanges two positions.
type swapStrategy struct{}

func (swapStrategy) name() string { return "swap" }

func (swapStrategy) apply(rng *rand.Rand, _ *Factory, transforms []transform.Transform) []transform.Transform {
	if len(transforms) < 2 {
		return transforms
	}
	i := rng.Intn(len(transforms))
	j := rng.Intn(len(transforms))
	transforms[i], transforms[j] = transforms[j], transforms[i]
	return transforms
}

// removeStrategy drops one transform, but never the last one.
type removeStrategy struct{}

func (removeStrategy) name() string { return "remove" }

func (removeStrategy) apply(rng *rand.Rand, _ *Factory, transforms []transform.Transform) []transform.Transform {
	if len(transforms) < 2 {
		return transforms
	}
	idx := rng.Intn(len(transforms))
	return append(transforms[:idx], transforms[idx+1:]...)
}

// insertStrategy adds a fresh random transform at a random position.
type insertStrategy struct{}

func (insertStrategy) name() string { return "insert" }

func (insertStrategy) apply(rng *rand.Rand, f *Factory, transforms []transform.Transform) []transform.Transform {
	idx := rng.Intn(len(transforms) + 1)
	fresh := f.registry.Random(rng)
	transforms = append(transforms, nil)
	copy(transforms[idx+1:], transforms[idx:])
	transforms[idx] = fresh
	return transforms
}

// perturbStrategy nudges the parameters of one perturbable transform. When
// no transform supports perturbation the strategy is a no-op: mutation
// fails closed rather than erroring.
type perturbStrategy struct{}

func (perturbStrategy) name() string { return "perturb" }

func (perturbStrategy) apply(rng *rand.Rand, _ *Factory, transforms []transform.Transform) []transform.Transform {
	candidates := make([]int, 0, len(transforms))
	for i, t := range transforms {
		if _, ok := t.(transform.Perturber); ok {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return transforms
	}
	idx := candidates[rng.Intn(len(candidates))]
	transforms[idx] = transforms[idx].(transform.Perturber).Perturb(rng)
	return transforms
}
