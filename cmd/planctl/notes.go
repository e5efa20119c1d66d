package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"planboard/internal/domain"
)

func init() {
	notesCmd := &cobra.Command{Use: "notes", Short: "Planning note operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List active notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			st := newStore(client)
			if err := st.FetchNotes(cmd.Context()); err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tUPDATED")
			for _, n := range st.Snapshot().Notes {
				fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, n.Title, n.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
	notesCmd.AddCommand(listCmd)

	var title, content, summary string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			st := newStore(client)
			note, err := st.CreateNote(cmd.Context(), domain.CreateNoteRequest{
				Title:   title,
				Content: content,
				Summary: summary,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Created %s (%s)\n", note.Title, note.ID)
			return nil
		},
	}
	createCmd.Flags().StringVarP(&title, "title", "t", "", "Note title")
	createCmd.Flags().StringVarP(&content, "content", "c", "", "Note content")
	createCmd.Flags().StringVar(&summary, "summary", "", "Short summary")
	notesCmd.AddCommand(createCmd)

	showCmd := &cobra.Command{
		Use:   "show NOTE_ID",
		Short: "Show one note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			note, err := client.GetNote(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s\n\n%s\n", note.Title, note.Content)
			return nil
		},
	}
	notesCmd.AddCommand(showCmd)

	var editTitle, editContent, editSummary string
	editCmd := &cobra.Command{
		Use:   "edit NOTE_ID",
		Short: "Edit a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			st := newStore(client)
			if err := st.FetchNotes(cmd.Context()); err != nil {
				return err
			}
			var req domain.UpdateNoteRequest
			if cmd.Flags().Changed("title") {
				req.Title = &editTitle
			}
			if cmd.Flags().Changed("content") {
				req.Content = &editContent
			}
			if cmd.Flags().Changed("summary") {
				req.Summary = &editSummary
			}
			note, err := st.UpdateNote(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Updated %s\n", note.ID)
			return nil
		},
	}
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content")
	editCmd.Flags().StringVar(&editSummary, "summary", "", "New summary")
	notesCmd.AddCommand(editCmd)

	rmCmd := &cobra.Command{
		Use:   "rm NOTE_ID",
		Short: "Move a note to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			st := newStore(client)
			if err := st.FetchNotes(cmd.Context()); err != nil {
				return err
			}
			if err := st.SoftDeleteNote(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Trashed %s\n", args[0])
			return nil
		},
	}
	notesCmd.AddCommand(rmCmd)

	versionsCmd := &cobra.Command{
		Use:   "versions NOTE_ID",
		Short: "List a note's versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			st := newStore(client)
			versions, err := st.FetchVersions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tSUMMARY")
			for _, v := range versions {
				fmt.Fprintf(w, "%s\t%s\t%s\n", v.ID, v.CreatedAt.Format("2006-01-02 15:04"), v.Summary)
			}
			return w.Flush()
		},
	}
	notesCmd.AddCommand(versionsCmd)

	rootCmd.AddCommand(notesCmd)
}
