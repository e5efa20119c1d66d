package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"planboard/internal/remote"
	"planboard/internal/store"
)

var (
	serverFlag  string
	verboseFlag bool
	rootCmd     = &cobra.Command{
		Use:   "planctl",
		Short: "CLI client for the Planboard server",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", envOr("PLANBOARD_SERVER", "http://localhost:8080"), "Planboard server base URL")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func logger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verboseFlag {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// newClient builds a remote client with any persisted session restored.
// Session changes (refresh, sign-out) are written back to disk.
func newClient() *remote.Client {
	client := remote.NewClient(serverFlag, logger())
	if session, err := loadSession(); err == nil && session != nil {
		client.RestoreSession(session)
	}
	client.OnSessionChange(persistSession)
	return client
}

func newStore(client *remote.Client) *store.Store {
	st := store.New(client, logger())
	st.BindSession(client)
	return st
}
