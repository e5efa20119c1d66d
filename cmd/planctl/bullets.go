package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	bulletsCmd := &cobra.Command{Use: "bullets", Short: "Bullet library operations"}

	var lang string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List bullet templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			st := newStore(client)
			if err := st.FetchBullets(cmd.Context()); err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTHEME\tTEXT")
			for _, b := range st.Snapshot().Bullets {
				text := b.FiText
				if lang == "en" {
					text = b.EnText
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", b.ID, b.Theme, text)
			}
			return w.Flush()
		},
	}
	listCmd.Flags().StringVarP(&lang, "lang", "l", "fi", "Language to display (fi or en)")
	bulletsCmd.AddCommand(listCmd)

	rootCmd.AddCommand(bulletsCmd)
}
