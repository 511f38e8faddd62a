// Package cli implements the nupull command-line interface.
//
// This package provides commands for resolving a package's transitive
// dependency closure against a remote feed, downloading the resulting
// archives, exporting the closure as a graph, serving resolution over HTTP,
// and managing the feed response cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
//   - fetch: resolve a closure and download every archive not yet on disk
//   - graph: export a resolved closure as DOT, SVG, or PNG
//   - serve: expose resolution as a small JSON API
//   - cache: manage the feed response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nupull/nupull/pkg/buildinfo"
)

// Execute runs the nupull CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "nupull",
		Short:        "nupull downloads a package and its full dependency closure",
		Long:         `nupull resolves the transitive dependency closure of a package against a remote feed, picks one concrete version per package, and downloads the archives to disk, skipping files already present.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newFetchCmd())
	root.AddCommand(newGraphCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
