package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"planboard/internal/domain"
)

func init() {
	trashCmd := &cobra.Command{Use: "trash", Short: "Trash operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List trashed notes and versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			st := newStore(client)
			if err := st.FetchTrash(cmd.Context()); err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tID\tTITLE\tDELETED\tDAYS LEFT")
			for _, item := range st.TrashItems() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
					item.Kind, item.ID, item.Title,
					item.DeletedAt.Format("2006-01-02"), item.DaysRemaining)
			}
			return w.Flush()
		},
	}
	trashCmd.AddCommand(listCmd)

	restoreCmd := &cobra.Command{
		Use:   "restore KIND ID",
		Short: "Restore a trashed note or version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			st := newStore(client)
			switch domain.TrashKind(args[0]) {
			case domain.TrashKindNote:
				if _, err := st.RestoreNote(cmd.Context(), args[1]); err != nil {
					return err
				}
			case domain.TrashKindVersion:
				if _, err := st.RestoreVersion(cmd.Context(), args[1]); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown kind %q, want note or version", args[0])
			}
			fmt.Fprintf(os.Stdout, "Restored %s %s\n", args[0], args[1])
			return nil
		},
	}
	trashCmd.AddCommand(restoreCmd)

	purgeCmd := &cobra.Command{
		Use:   "purge KIND ID",
		Short: "Permanently delete a trashed note or version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("expected KIND ID")
			}
			client := newClient()
			st := newStore(client)
			switch domain.TrashKind(args[0]) {
			case domain.TrashKindNote:
				if err := st.PermanentDeleteNote(cmd.Context(), args[1]); err != nil {
					return err
				}
			case domain.TrashKindVersion:
				if err := st.PermanentDeleteVersion(cmd.Context(), args[1]); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown kind %q, want note or version", args[0])
			}
			fmt.Fprintf(os.Stdout, "Permanently deleted %s %s\n", args[0], args[1])
			return nil
		},
	}
	trashCmd.AddCommand(purgeCmd)

	rootCmd.AddCommand(trashCmd)
}
