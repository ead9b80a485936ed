package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var textsCmd = &cobra.Command{
	Use:   "texts",
	Short: "List the embedded source texts",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		for _, id := range client.Texts() {
			fmt.Println(id)
		}
		return nil
	},
}
