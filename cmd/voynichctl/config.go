package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jkendall327/VoynichBruteForce/pkg/voynich"
)

// runConfig is the JSON shape of an optional run config file. Zero fields
// fall through to the API defaults.
type runConfig struct {
	RunID               string  `json:"run_id"`
	Population          int     `json:"population"`
	Generations         int     `json:"generations"`
	MutationRate        float64 `json:"mutation_rate"`
	StagnationThreshold int     `json:"stagnation_threshold"`
	TransformCount      int     `json:"transform_count"`
	Workers             int     `json:"workers"`
	Seed                int64   `json:"seed"`
	SoftCognitiveWall   int     `json:"soft_cognitive_wall"`
	HardCognitiveWall   int     `json:"hard_cognitive_wall"`
}

func loadRunConfig(path string) (voynich.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return voynich.RunRequest{}, fmt.Errorf("read run config: %w", err)
	}
	var cfg runConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return voynich.RunRequest{}, fmt.Errorf("parse run config %s: %w", path, err)
	}
	return voynich.RunRequest{
		RunID:               cfg.RunID,
		Population:          cfg.Population,
		Generations:         cfg.Generations,
		MutationRate:        cfg.MutationRate,
		StagnationThreshold: cfg.StagnationThreshold,
		TransformCount:      cfg.TransformCount,
		Workers:             cfg.Workers,
		Seed:                cfg.Seed,
		SoftCognitiveWall:   cfg.SoftCognitiveWall,
		HardCognitiveWall:   cfg.HardCognitiveWall,
	}, nil
}
