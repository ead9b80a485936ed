package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Write a converged run's winning pipeline as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = args[0] + ".json"
		}
		if err := client.Export(context.Background(), args[0], out); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("out", "", "output path (defaults to <run-id>.json)")
}
