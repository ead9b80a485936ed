package main

import (
	"github.com/spf13/cobra"

	"github.com/jkendall327/VoynichBruteForce/internal/storage"
	"github.com/jkendall327/VoynichBruteForce/pkg/voynich"
)

var (
	storeKind string
	dbPath    string

	rootCmd = &cobra.Command{
		Use:   "voynichctl",
		Short: "Evolve classical text-transform pipelines toward Voynich-like statistics",
		Long: `voynichctl searches for pipelines of classical ciphers and text
manipulations that, applied to ordinary source texts, produce output
statistically resembling the Voynich manuscript. Runs are persisted and can
be listed and exported afterwards.`,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "voynich.db", "sqlite database path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(textsCmd)
	rootCmd.AddCommand(transformsCmd)
}

func newClient() (*voynich.Client, error) {
	return voynich.New(voynich.Options{StoreKind: storeKind, DBPath: dbPath})
}
