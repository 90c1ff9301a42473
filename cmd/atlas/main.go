package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/atlas/internal/app"
)

var opts app.Options

var rootCmd = &cobra.Command{
	Use:   "atlas",
	Short: "Browse the countries of the world from the terminal",
	Long: `atlas loads the country catalog, falling back to a bundled snapshot
when the catalog service is unreachable, and syncs saved countries, view
counts and user profiles with the profile service.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), opts)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the catalog sorted by name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		listOpts := opts
		listOpts.LogToStderr = false
		return app.List(cmd.Context(), listOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

var showCmd = &cobra.Command{
	Use:   "show CODE",
	Short: "Print one country and record a view for it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Show(cmd.Context(), opts, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the profile service backed by SQLite",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Serve(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "override atlas config path (optional)")
	rootCmd.PersistentFlags().StringVar(&opts.PrefsPath, "prefs", "", "override prefs path (optional)")
	rootCmd.Flags().StringVar(&opts.Country, "country", "", "open the detail view of this country code")

	rootCmd.AddCommand(listCmd, showCmd, serveCmd)
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "atlas: %v\n", err)
		return 1
	}
	return 0
}
