package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"planboard/internal/dashboard"
	"planboard/internal/domain"
)

func init() {
	boardCmd := &cobra.Command{Use: "board", Short: "Dashboard operations"}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the dashboard's tabs and widgets",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			coord := dashboard.NewCoordinator(client, logger())
			if err := coord.Load(cmd.Context()); err != nil {
				return err
			}
			board := coord.Dashboard()
			fmt.Fprintf(os.Stdout, "%s (%s)\n", board.Title, board.ID)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, tab := range coord.Tabs() {
				fmt.Fprintf(w, "tab\t%s\t%s\n", tab.ID, tab.Title)
				for _, widget := range tab.Widgets {
					fmt.Fprintf(w, "  widget\t%s\t%s\t(%d,%d %dx%d)\n",
						widget.ID, widget.Type,
						widget.Layout.X, widget.Layout.Y, widget.Layout.W, widget.Layout.H)
				}
			}
			return w.Flush()
		},
	}
	boardCmd.AddCommand(showCmd)

	var tabColor string
	var tabPresentation bool
	addTabCmd := &cobra.Command{
		Use:   "add-tab TITLE",
		Short: "Add a tab to the dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			coord := dashboard.NewCoordinator(client, logger())
			if err := coord.Load(cmd.Context()); err != nil {
				return err
			}
			tab, err := coord.AddTab(cmd.Context(), domain.CreateTabRequest{
				Title:        args[0],
				Color:        tabColor,
				Presentation: tabPresentation,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Created tab %s (%s)\n", tab.Title, tab.ID)
			return nil
		},
	}
	addTabCmd.Flags().StringVar(&tabColor, "color", "", "Tab color")
	addTabCmd.Flags().BoolVar(&tabPresentation, "presentation", false, "Mark the tab for presentation mode")
	boardCmd.AddCommand(addTabCmd)

	var widgetTab, widgetConfig string
	addWidgetCmd := &cobra.Command{
		Use:   "add-widget TYPE",
		Short: "Add a widget to a tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			coord := dashboard.NewCoordinator(client, logger())
			if err := coord.Load(cmd.Context()); err != nil {
				return err
			}
			if widgetTab != "" {
				coord.SelectTab(widgetTab)
			}
			req := domain.CreateWidgetRequest{Type: domain.WidgetType(args[0])}
			if widgetConfig != "" {
				req.Config = json.RawMessage(widgetConfig)
			}
			widget, err := coord.AddWidget(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Created %s widget %s\n", widget.Type, widget.ID)
			return nil
		},
	}
	addWidgetCmd.Flags().StringVar(&widgetTab, "tab", "", "Tab ID (defaults to the first tab)")
	addWidgetCmd.Flags().StringVar(&widgetConfig, "config", "", "Widget config as JSON")
	boardCmd.AddCommand(addWidgetCmd)

	rootCmd.AddCommand(boardCmd)
}
