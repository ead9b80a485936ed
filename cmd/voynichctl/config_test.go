package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRunConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	payload := `{
		"run_id": "configured",
		"population": 64,
		"generations": 200,
		"mutation_rate": 0.5,
		"stagnation_threshold": 12,
		"transform_count": 3,
		"seed": 99
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	req, err := loadRunConfig(path)
	if err != nil {
		t.Fatalf("loadRunConfig: %v", err)
	}
	if req.RunID != "configured" || req.Population != 64 || req.Seed != 99 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.MutationRate != 0.5 || req.StagnationThreshold != 12 || req.TransformCount != 3 {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestLoadRunConfigErrors(t *testing.T) {
	if _, err := loadRunConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadRunConfig(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
