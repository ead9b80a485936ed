// Package voynich is the embedding API for the pipeline search: it wires the
// corpus, transform library, scoring rules and evolution engine together and
// persists run records through the configured store.
package voynich

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jkendall327/VoynichBruteForce/internal/corpus"
	"github.com/jkendall327/VoynichBruteForce/internal/evo"
	"github.com/jkendall327/VoynichBruteForce/internal/model"
	"github.com/jkendall327/VoynichBruteForce/internal/rank"
	"github.com/jkendall327/VoynichBruteForce/internal/storage"
	"github.com/jkendall327/VoynichBruteForce/internal/textbuf"
	"github.com/jkendall327/VoynichBruteForce/internal/transform"
)

const defaultDBPath = "voynich.db"

type Options struct {
	StoreKind string
	DBPath    string
}

type Client struct {
	store       storage.Store
	initialized bool
}

type RunRequest struct {
	RunID               string
	Population          int
	Generations         int
	MutationRate        float64
	StagnationThreshold int
	TransformCount      int
	Workers             int
	Seed                int64
	SoftCognitiveWall   int
	HardCognitiveWall   int

	// OnGeneration receives progress snapshots; nil disables reporting.
	OnGeneration func(evo.GenerationStats)
}

type RunSummary struct {
	RunID     string
	Seed      int64
	Converged bool
	// Generation is the winning generation, or the exhausted budget when the
	// run did not converge.
	Generation int
	Winner     *model.WinnerRecord
	EvalTime   time.Duration
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	return &Client{store: store}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) ensureStore(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

// Run executes one evolution run and persists its record, converged or not.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Population <= 0 {
		req.Population = 100
	}
	if req.Generations <= 0 {
		req.Generations = 500
	}
	if req.MutationRate <= 0 {
		req.MutationRate = 0.35
	}
	if req.StagnationThreshold <= 0 {
		req.StagnationThreshold = 15
	}
	if req.TransformCount <= 0 {
		req.TransformCount = 4
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}

	now := time.Now().UTC()
	runID := req.RunID
	if runID == "" {
		runID = fmt.Sprintf("run-%d-%d", req.Seed, now.Unix())
	}

	if err := c.ensureStore(ctx); err != nil {
		return RunSummary{}, err
	}

	catalog := corpus.Default()
	factory, err := evo.NewFactory(catalog, transform.DefaultRegistry())
	if err != nil {
		return RunSummary{}, err
	}
	evaluator, err := evo.NewEvaluator(evo.EvaluatorConfig{
		Rankers:           rank.DefaultSet(),
		Pool:              textbuf.NewPool(),
		SoftCognitiveWall: req.SoftCognitiveWall,
		HardCognitiveWall: req.HardCognitiveWall,
	})
	if err != nil {
		return RunSummary{}, err
	}
	engine, err := evo.NewEngine(evo.EngineConfig{
		Factory:             factory,
		Evaluator:           evaluator,
		Catalog:             catalog,
		PopulationSize:      req.Population,
		MaxGenerations:      req.Generations,
		MutationRate:        req.MutationRate,
		StagnationThreshold: req.StagnationThreshold,
		TransformCount:      req.TransformCount,
		Workers:             req.Workers,
		Seed:                req.Seed,
		OnGeneration:        req.OnGeneration,
	})
	if err != nil {
		return RunSummary{}, err
	}

	result, err := engine.Evolve(ctx)
	if err != nil {
		return RunSummary{}, err
	}

	record := model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		RunID:               runID,
		CreatedAtUTC:        now.Format(time.RFC3339),
		Seed:                req.Seed,
		Population:          req.Population,
		Generations:         req.Generations,
		MutationRate:        req.MutationRate,
		StagnationThreshold: req.StagnationThreshold,
		Workers:             req.Workers,
	}

	summary := RunSummary{
		RunID:      runID,
		Seed:       req.Seed,
		Generation: req.Generations,
	}
	if result != nil {
		record.Converged = true
		record.EvalTime = result.EvalTime
		record.Winner = &model.WinnerRecord{
			VersionedRecord: record.VersionedRecord,
			SourceTextID:    result.Genome.SourceTextID,
			Transforms:      result.Genome.TransformNames(),
			Generation:      result.Generation,
			Result:          result.Result,
		}
		summary.Converged = true
		summary.Generation = result.Generation
		summary.Winner = record.Winner
		summary.EvalTime = result.EvalTime
	}

	if err := c.store.SaveRun(ctx, record); err != nil {
		return RunSummary{}, fmt.Errorf("persist run %s: %w", runID, err)
	}
	return summary, nil
}

// Runs lists persisted run records, newest first.
func (c *Client) Runs(ctx context.Context) ([]model.RunRecord, error) {
	if err := c.ensureStore(ctx); err != nil {
		return nil, err
	}
	return c.store.ListRuns(ctx)
}

// Export writes a converged run's winning pipeline as indented JSON.
func (c *Client) Export(ctx context.Context, runID, path string) error {
	if err := c.ensureStore(ctx); err != nil {
		return err
	}
	record, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("unknown run id: %s", runID)
	}
	if record.Winner == nil {
		return errors.New("run did not converge; nothing to export")
	}

	data, err := storage.EncodeWinner(*record.Winner)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Texts lists the embedded source text ids.
func (c *Client) Texts() []string {
	return corpus.Default().IDs()
}

// Transforms lists the registered transform kinds.
func (c *Client) Transforms() []string {
	return transform.DefaultRegistry().Kinds()
}
