package model

import (
	"time"

	"github.com/jkendall327/VoynichBruteForce/internal/transform"
)

// Genome is the unit of evolution: a source-text choice plus an ordered
// transform list. Genomes are immutable values; factory operations always
// return a new genome and transforms themselves are immutable, so a shallow
// copy of the slice is a full copy.
type Genome struct {
	SourceTextID string
	Transforms   []transform.Transform
}

// TransformNames lists the parameterized transform names in pipeline order.
func (g Genome) TransformNames() []string {
	names := make([]string, len(g.Transforms))
	for i, t := range g.Transforms {
		names[i] = t.Name()
	}
	return names
}

// RankerResult is one scoring rule's verdict over a finished text.
type RankerResult struct {
	RuleName        string  `json:"rule_name"`
	RawValue        float64 `json:"raw_value"`
	TargetValue     float64 `json:"target_value"`
	NormalizedError float64 `json:"normalized_error"`
	Weight          float64 `json:"weight"`
}

// PipelineResult is the fitness outcome of evaluating one genome. Lower
// TotalErrorScore is better; +Inf marks a degenerate (collapsed) output.
type PipelineResult struct {
	Description        string         `json:"description"`
	TotalErrorScore    float64        `json:"total_error_score"`
	TotalCognitiveLoad int            `json:"total_cognitive_load"`
	RankerResults      []RankerResult `json:"ranker_results,omitempty"`
}

// EvolutionResult is the terminal output of a converged run. EvalTime is the
// cumulative wall time spent in parallel evaluation across all generations.
type EvolutionResult struct {
	Genome     Genome
	Result     PipelineResult
	Generation int
	EvalTime   time.Duration
}

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// WinnerRecord is the flat JSON form of a winning pipeline.
type WinnerRecord struct {
	VersionedRecord
	SourceTextID string         `json:"source_text_id"`
	Transforms   []string       `json:"transforms"`
	Generation   int            `json:"generation"`
	Result       PipelineResult `json:"result"`
}

// RunRecord is the persisted summary of one evolution run.
type RunRecord struct {
	VersionedRecord
	RunID               string        `json:"run_id"`
	CreatedAtUTC        string        `json:"created_at_utc"`
	Seed                int64         `json:"seed"`
	Population          int           `json:"population"`
	Generations         int           `json:"generations"`
	MutationRate        float64       `json:"mutation_rate"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	Workers             int           `json:"workers"`
	Converged           bool          `json:"converged"`
	EvalTime            time.Duration `json:"eval_time_ns"`
	Winner              *WinnerRecord `json:"winner,omitempty"`
}
