package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jkendall327/VoynichBruteForce/internal/evo"
	"github.com/jkendall327/VoynichBruteForce/pkg/voynich"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one evolution search and persist its record",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		configPath, _ := cmd.Flags().GetString("config")
		var req voynich.RunRequest
		if configPath != "" {
			loaded, err := loadRunConfig(configPath)
			if err != nil {
				return err
			}
			req = loaded
		} else {
			req.RunID, _ = cmd.Flags().GetString("run-id")
			req.Population, _ = cmd.Flags().GetInt("population")
			req.Generations, _ = cmd.Flags().GetInt("generations")
			req.MutationRate, _ = cmd.Flags().GetFloat64("mutation-rate")
			req.StagnationThreshold, _ = cmd.Flags().GetInt("stagnation")
			req.TransformCount, _ = cmd.Flags().GetInt("transforms")
			req.Workers, _ = cmd.Flags().GetInt("workers")
			req.Seed, _ = cmd.Flags().GetInt64("seed")
			req.SoftCognitiveWall, _ = cmd.Flags().GetInt("soft-wall")
			req.HardCognitiveWall, _ = cmd.Flags().GetInt("hard-wall")
		}

		quiet, _ := cmd.Flags().GetBool("quiet")
		every, _ := cmd.Flags().GetInt("report-every")
		if every <= 0 {
			every = 1
		}
		if !quiet {
			req.OnGeneration = func(s evo.GenerationStats) {
				if s.Generation%every != 0 && !s.Cataclysm {
					return
				}
				line := fmt.Sprintf("gen=%d best=%.4f mean=%s stagnation=%d",
					s.Generation, s.BestScore, formatScore(s.MeanScore), s.Stagnation)
				if s.Cataclysm {
					line += " cataclysm=true"
				}
				fmt.Println(line)
			}
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		summary, err := client.Run(ctx, req)
		if err != nil {
			return err
		}

		fmt.Printf("run %s (seed %d)\n", summary.RunID, summary.Seed)
		if !summary.Converged {
			fmt.Println("no pipeline beat the success threshold; record saved without a winner")
			return nil
		}
		fmt.Printf("converged at generation %d (evaluation time %s)\n", summary.Generation, summary.EvalTime)
		fmt.Printf("  source text: %s\n", summary.Winner.SourceTextID)
		fmt.Printf("  pipeline:    %s\n", strings.Join(summary.Winner.Transforms, " -> "))
		fmt.Printf("  error score: %.4f (cognitive load %d)\n",
			summary.Winner.Result.TotalErrorScore, summary.Winner.Result.TotalCognitiveLoad)
		for _, r := range summary.Winner.Result.RankerResults {
			fmt.Printf("    %-28s %8.4f  (target %.4f, error %.4f x%g)\n",
				r.RuleName, r.RawValue, r.TargetValue, r.NormalizedError, r.Weight)
		}
		return nil
	},
}

func formatScore(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.4f", v)
}

func init() {
	runCmd.Flags().String("config", "", "optional run config JSON path")
	runCmd.Flags().String("run-id", "", "run identifier (defaults to seed and timestamp)")
	runCmd.Flags().Int("population", 100, "population size")
	runCmd.Flags().Int("generations", 500, "generation budget")
	runCmd.Flags().Float64("mutation-rate", 0.35, "per-child mutation probability")
	runCmd.Flags().Int("stagnation", 15, "generations without improvement before a cataclysm")
	runCmd.Flags().Int("transforms", 4, "initial transform count per genome")
	runCmd.Flags().Int("workers", 0, "evaluation workers (0 = all CPUs)")
	runCmd.Flags().Int64("seed", 0, "random seed (0 = time-based)")
	runCmd.Flags().Int("soft-wall", 0, "soft cognitive-load wall (0 = default)")
	runCmd.Flags().Int("hard-wall", 0, "hard cognitive-load wall (0 = default)")
	runCmd.Flags().Bool("quiet", false, "suppress per-generation progress")
	runCmd.Flags().Int("report-every", 1, "print progress every N generations")
}
