package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var transformsCmd = &cobra.Command{
	Use:   "transforms",
	Short: "List the registered transform kinds",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		for _, kind := range client.Transforms() {
			fmt.Println(kind)
		}
		return nil
	},
}
