package evo

import (
	"fmt"
	"math"
	"strings"

	"github.com/jkendall327/VoynichBruteForce/internal/analysis"
	"github.com/jkendall327/VoynichBruteForce/internal/model"
	"github.com/jkendall327/VoynichBruteForce/internal/rank"
	"github.com/jkendall327/VoynichBruteForce/internal/textbuf"
	"github.com/jkendall327/VoynichBruteForce/internal/transform"
)

// MinViableLength is the output floor below which a pipeline is scored as
// degenerate. Without it the search rewards pipelines that shrink the text
// to nothing, since tiny outputs can hit almost any statistical target.
const MinViableLength = 100

const (
	softWallFactor  = 0.15
	hardWallPenalty = 1e6
)

type EvaluatorConfig struct {
	Rankers []rank.Ranker
	// Pool is shared across evaluations; defaults to a fresh pool.
	Pool *textbuf.Pool
	// Cognitive-load walls. Beyond the soft wall the score is scaled up
	// per excess point; beyond the hard wall a disqualifying penalty is
	// added.
	SoftCognitiveWall int
	HardCognitiveWall int
}

// Evaluator turns one genome plus its resolved source text into a
// PipelineResult. Evaluation is deterministic and side-effect free beyond
// the buffer lease, so one evaluator serves all workers.
type Evaluator struct {
	cfg EvaluatorConfig
}

func NewEvaluator(cfg EvaluatorConfig) (*Evaluator, error) {
	if len(cfg.Rankers) == 0 {
		return nil, fmt.Errorf("at least one ranker is required")
	}
	if cfg.Pool == nil {
		cfg.Pool = textbuf.NewPool()
	}
	if cfg.SoftCognitiveWall <= 0 {
		cfg.SoftCognitiveWall = 20
	}
	if cfg.HardCognitiveWall <= 0 {
		cfg.HardCognitiveWall = 40
	}
	if cfg.HardCognitiveWall < cfg.SoftCognitiveWall {
		return nil, fmt.Errorf("hard cognitive wall %d below soft wall %d", cfg.HardCognitiveWall, cfg.SoftCognitiveWall)
	}
	return &Evaluator{cfg: cfg}, nil
}

// Evaluate runs the genome's pipeline over sourceText. Buffer-capable
// transforms run first against one pooled buffer, preserving their relative
// order; string-fallback transforms then run over a single materialized
// string, again in order. An error is returned only for a transform that
// supports neither execution mode, which is a malformed genome.
func (e *Evaluator) Evaluate(genome model.Genome, sourceText string) (model.PipelineResult, error) {
	load := 0
	var bufferSteps []transform.BufferTransform
	var textSteps []transform.TextTransform
	for _, t := range genome.Transforms {
		load += t.CognitiveCost()
		switch step := t.(type) {
		case transform.BufferTransform:
			bufferSteps = append(bufferSteps, step)
		case transform.TextTransform:
			textSteps = append(textSteps, step)
		default:
			return model.PipelineResult{}, fmt.Errorf("transform %s supports no execution mode", t.Name())
		}
	}

	description := genome.SourceTextID
	if len(genome.Transforms) > 0 {
		description += " | " + strings.Join(genome.TransformNames(), " -> ")
	}

	final := sourceText
	if len(bufferSteps) > 0 {
		buf := textbuf.New(e.cfg.Pool, sourceText, len(sourceText))
		defer buf.Release()
		for _, step := range bufferSteps {
			step.Apply(buf)
		}
		final = buf.String()
	}
	for _, step := range textSteps {
		final = step.ApplyText(final)
	}

	if len([]rune(final)) < MinViableLength {
		return model.PipelineResult{
			Description:        description,
			TotalErrorScore:    math.Inf(1),
			TotalCognitiveLoad: load,
		}, nil
	}

	view := analysis.New(final)
	results := make([]model.RankerResult, 0, len(e.cfg.Rankers))
	total := 0.0
	for _, ranker := range e.cfg.Rankers {
		result := ranker.Rank(view)
		results = append(results, result)
		total += result.NormalizedError * result.Weight
	}

	if load > e.cfg.SoftCognitiveWall {
		total *= 1 + softWallFactor*float64(load-e.cfg.SoftCognitiveWall)
	}
	if load > e.cfg.HardCognitiveWall {
		total += hardWallPenalty
	}

	return model.PipelineResult{
		Description:        description,
		TotalErrorScore:    total,
		TotalCognitiveLoad: load,
		RankerResults:      results,
	}, nil
}
