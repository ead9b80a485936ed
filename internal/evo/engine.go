package evo

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/jkendall327/VoynichBruteForce/internal/corpus"
	"github.com/jkendall327/VoynichBruteForce/internal/model"
)

const (
	defaultSuccessThreshold   = 0.05
	defaultImprovementEpsilon = 1e-5
)

// GenerationStats is the per-generation snapshot handed to OnGeneration.
type GenerationStats struct {
	Generation      int
	BestScore       float64
	MeanScore       float64
	BestDescription string
	Stagnation      int
	Cataclysm       bool
}

type EngineConfig struct {
	Factory   *Factory
	Evaluator *Evaluator
	Catalog   *corpus.Catalog

	PopulationSize      int
	MaxGenerations      int
	MutationRate        float64
	StagnationThreshold int
	TransformCount      int

	// SuccessThreshold is the total error below which the run converges.
	SuccessThreshold float64
	// ImprovementEpsilon is the minimum score delta that counts as progress
	// for stagnation tracking.
	ImprovementEpsilon float64

	// Workers sizes the evaluation pool; defaults to GOMAXPROCS-ish.
	Workers int
	Seed    int64

	// OnGeneration, when set, fires after every generation is ranked.
	OnGeneration func(GenerationStats)
}

// Engine runs the generational loop: evaluate in parallel, rank, check for
// convergence, then either reproduce or trigger a cataclysm. All randomness
// is drawn on the engine goroutine from a single seeded source, so runs with
// the same seed and config reproduce exactly regardless of worker count.
type Engine struct {
	cfg EngineConfig
	rng *rand.Rand
}

func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Factory == nil {
		return nil, fmt.Errorf("genome factory is required")
	}
	if cfg.Evaluator == nil {
		return nil, fmt.Errorf("evaluator is required")
	}
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("source text catalog is required")
	}
	if cfg.PopulationSize <= 0 {
		return nil, fmt.Errorf("population size must be positive, got %d", cfg.PopulationSize)
	}
	if cfg.MaxGenerations <= 0 {
		return nil, fmt.Errorf("max generations must be positive, got %d", cfg.MaxGenerations)
	}
	if cfg.MutationRate < 0 || cfg.MutationRate > 1 {
		return nil, fmt.Errorf("mutation rate must be in [0,1], got %v", cfg.MutationRate)
	}
	if cfg.StagnationThreshold <= 0 {
		return nil, fmt.Errorf("stagnation threshold must be positive, got %d", cfg.StagnationThreshold)
	}
	if cfg.TransformCount <= 0 {
		return nil, fmt.Errorf("transform count must be positive, got %d", cfg.TransformCount)
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = defaultSuccessThreshold
	}
	if cfg.ImprovementEpsilon <= 0 {
		cfg.ImprovementEpsilon = defaultImprovementEpsilon
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Engine{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

type scoredGenome struct {
	Genome model.Genome
	Result model.PipelineResult
}

// Evolve runs until convergence, generation exhaustion, or ctx cancellation.
// A nil result with a nil error means the generation budget ran out without
// a pipeline beating the success threshold.
func (e *Engine) Evolve(ctx context.Context) (*model.EvolutionResult, error) {
	population := make([]model.Genome, e.cfg.PopulationSize)
	next := make([]model.Genome, e.cfg.PopulationSize)
	for i := range population {
		population[i] = e.cfg.Factory.Random(e.rng, e.cfg.TransformCount)
	}

	bestEver := math.Inf(1)
	stagnation := 0
	var evalTime time.Duration

	for gen := 0; gen < e.cfg.MaxGenerations; gen++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		scored, err := e.evaluatePopulation(ctx, population)
		if err != nil {
			return nil, err
		}
		evalTime += time.Since(start)

		sort.Slice(scored, func(i, j int) bool {
			return scored[i].Result.TotalErrorScore < scored[j].Result.TotalErrorScore
		})
		best := scored[0]

		if bestEver-best.Result.TotalErrorScore > e.cfg.ImprovementEpsilon {
			bestEver = best.Result.TotalErrorScore
			stagnation = 0
		} else {
			stagnation++
		}

		if best.Result.TotalErrorScore < e.cfg.SuccessThreshold {
			e.notify(gen, scored, stagnation, false)
			return &model.EvolutionResult{
				Genome:     best.Genome,
				Result:     best.Result,
				Generation: gen,
				EvalTime:   evalTime,
			}, nil
		}

		cataclysm := stagnation >= e.cfg.StagnationThreshold
		e.notify(gen, scored, stagnation, cataclysm)

		if gen == e.cfg.MaxGenerations-1 {
			break
		}

		if cataclysm {
			e.cataclysm(next, best.Genome)
			stagnation = 0
		} else {
			e.reproduce(next, scored)
		}
		population, next = next, population
	}
	return nil, nil
}

func (e *Engine) notify(gen int, scored []scoredGenome, stagnation int, cataclysm bool) {
	if e.cfg.OnGeneration == nil {
		return
	}
	mean := 0.0
	finite := 0
	for _, s := range scored {
		if !math.IsInf(s.Result.TotalErrorScore, 1) {
			mean += s.Result.TotalErrorScore
			finite++
		}
	}
	if finite > 0 {
		mean /= float64(finite)
	} else {
		mean = math.Inf(1)
	}
	e.cfg.OnGeneration(GenerationStats{
		Generation:      gen,
		BestScore:       scored[0].Result.TotalErrorScore,
		MeanScore:       mean,
		BestDescription: scored[0].Result.Description,
		Stagnation:      stagnation,
		Cataclysm:       cataclysm,
	})
}

// evaluatePopulation fans genome indices out to a worker pool. Workers write
// into a pre-sized slice by index, so no result ordering or locking is
// needed.
func (e *Engine) evaluatePopulation(ctx context.Context, population []model.Genome) ([]scoredGenome, error) {
	scored := make([]scoredGenome, len(population))
	jobs := make(chan int)
	errs := make(chan error, len(population))

	workers := e.cfg.Workers
	if workers > len(population) {
		workers = len(population)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Workers drain the jobs channel even after cancellation or a
			// failed job; a worker that returned early would leave the
			// producer blocked on an unbuffered send. errs holds one slot
			// per job, so error sends never block.
			for idx := range jobs {
				if ctx.Err() != nil {
					continue
				}
				genome := population[idx]
				text, err := e.cfg.Catalog.Text(genome.SourceTextID)
				if err != nil {
					errs <- err
					continue
				}
				result, err := e.cfg.Evaluator.Evaluate(genome, text)
				if err != nil {
					errs <- err
					continue
				}
				scored[idx] = scoredGenome{Genome: genome, Result: result}
			}
		}()
	}

	for idx := range population {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	select {
	case err := <-errs:
		return nil, err
	default:
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scored, nil
}

// cataclysm fills next with the single best genome plus fresh randoms,
// breaking out of a converged basin.
func (e *Engine) cataclysm(next []model.Genome, best model.Genome) {
	next[0] = best
	for i := 1; i < len(next); i++ {
		next[i] = e.cfg.Factory.Random(e.rng, e.cfg.TransformCount)
	}
}

// reproduce fills next: the top tenth survives unchanged, the rest are
// crossover children of parents drawn from the top half, mutated at the
// configured rate.
func (e *Engine) reproduce(next []model.Genome, scored []scoredGenome) {
	eliteCount := e.cfg.PopulationSize / 10
	if eliteCount < 1 {
		eliteCount = 1
	}
	filled := 0
	for ; filled < eliteCount && filled < len(scored); filled++ {
		next[filled] = scored[filled].Genome
	}

	parentPool := len(scored) / 2
	if parentPool < 2 {
		parentPool = len(scored)
	}

	for ; filled < e.cfg.PopulationSize; filled++ {
		a := scored[e.rng.Intn(parentPool)].Genome
		b := scored[e.rng.Intn(parentPool)].Genome
		// A handful of redraws to avoid self-crossing; give up quietly when
		// the pool has collapsed to duplicates.
		for retry := 0; retry < 5 && sameGenome(a, b); retry++ {
			b = scored[e.rng.Intn(parentPool)].Genome
		}

		child := e.cfg.Factory.Crossover(e.rng, a, b)
		if e.rng.Float64() < e.cfg.MutationRate {
			child = e.cfg.Factory.Mutate(e.rng, child)
		}
		next[filled] = child
	}
}

func sameGenome(a, b model.Genome) bool {
	if a.SourceTextID != b.SourceTextID || len(a.Transforms) != len(b.Transforms) {
		return false
	}
	for i := range a.Transforms {
		if a.Transforms[i].Name() != b.Transforms[i].Name() {
			return false
		}
	}
	return true
}
