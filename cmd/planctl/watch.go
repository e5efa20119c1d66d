package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"planboard/internal/websocket"
)

func init() {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream change events from the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			st := newStore(client)
			fmt.Fprintln(os.Stderr, "Watching for changes, Ctrl-C to stop")
			return client.ListenChanges(cmd.Context(), func(ev websocket.ChangeEvent) {
				st.ApplyRemoteChange(ev)
				fmt.Fprintf(os.Stdout, "%s %s %s\n", ev.Entity, ev.Operation, ev.ID)
			})
		},
	}
	rootCmd.AddCommand(watchCmd)
}
