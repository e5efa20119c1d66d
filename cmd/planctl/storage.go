package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	urlCmd := &cobra.Command{
		Use:   "url PATH",
		Short: "Resolve a stored object path to its public URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			url, err := client.PublicURL(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(url)
			return nil
		},
	}

	rootCmd.AddCommand(urlCmd)
}
