package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nupull/nupull/pkg/config"
	"github.com/nupull/nupull/pkg/feed"
	"github.com/nupull/nupull/pkg/fetch"
	"github.com/nupull/nupull/pkg/resolve"
)

var summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)

// commonOptions are the flags shared by every command that resolves a
// closure. File config provides defaults; flags override.
type commonOptions struct {
	configPath string
	source     string
	version    string
	prerelease bool
	frameworks []string
	noCache    bool
	refresh    bool
}

func (o *commonOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/nupull/config.toml)")
	cmd.Flags().StringVar(&o.source, "source", "", "package feed base URL")
	cmd.Flags().StringVar(&o.version, "version", "", "exact package version (default: latest)")
	cmd.Flags().BoolVar(&o.prerelease, "prerelease", false, "include prerelease versions")
	cmd.Flags().StringSliceVar(&o.frameworks, "framework", nil, "accepted target framework (repeatable, default: all)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the feed response cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "bypass cached feed responses")
}

// load merges file config under the command-line flags.
func (o *commonOptions) load() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if o.source != "" {
		cfg.Source = o.source
	}
	if len(o.frameworks) > 0 {
		cfg.Frameworks = o.frameworks
	}
	return cfg, nil
}

func newFetchCmd() *cobra.Command {
	opts := &commonOptions{}
	var dir string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "fetch <package-id>",
		Short: "Resolve a package's dependency closure and download the archives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args[0], opts, dir, dryRun)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&dir, "dir", "", "download directory (default: ./download)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "resolve and report without downloading")

	return cmd
}

func runFetch(cmd *cobra.Command, id string, opts *commonOptions, dir string, dryRun bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	sink := func(format string, args ...any) { logger.Infof(format, args...) }

	cfg, err := opts.load()
	if err != nil {
		return err
	}
	if dir != "" {
		cfg.Dir = dir
	}

	logger.Debug("starting run", "run_id", uuid.NewString(), "package", id)
	track := newProgress(logger)

	set, err := buildClosure(ctx, cfg, id, opts, sink, nil)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			sink("Stopped.")
			return err
		}
		return err
	}

	// Checkpoint between the graph build and the download pass.
	if err := ctx.Err(); err != nil {
		sink("Stopped.")
		return err
	}

	if !dryRun {
		dl := fetch.NewDownloader(cfg.Dir, nil, sink)
		if err := dl.Run(ctx, set.Packages()); err != nil {
			if errors.Is(err, context.Canceled) {
				sink("Stopped.")
				return err
			}
			return err
		}
	}

	sink("Done.")
	track.done(fmt.Sprintf("Resolved %d packages", set.Len()))
	if !dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), summaryStyle.Render(fmt.Sprintf("%d package archives in %s", set.Len(), cfg.Dir)))
	}
	return nil
}

// buildClosure resolves the root package and walks its full dependency
// closure, emitting progress through sink. The context is consulted before
// the walk starts; the walker checks it before every dependency edge.
func buildClosure(ctx context.Context, cfg config.Config, id string, opts *commonOptions, sink func(string, ...any), onEdge func(from, to *resolve.Package)) (*resolve.Set, error) {
	if cfg.Source == "" {
		return nil, errors.New("no feed source configured (set source in config.toml or pass --source)")
	}

	backend, err := openCache(ctx, cfg, opts.noCache)
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	client := feed.NewClient(cfg.Source, backend, cfg.Cache.TTL.Std(), opts.refresh)
	resolver := resolve.NewResolver(client, opts.prerelease)

	var root *resolve.Package
	if opts.version == "" {
		root, err = resolver.Latest(ctx, id)
	} else {
		root, err = resolver.Exact(ctx, id, opts.version)
	}
	if err != nil {
		return nil, err
	}
	sink("%s", root.FullName())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	walker := resolve.NewWalker(resolver, resolve.Options{
		Frameworks: cfg.Frameworks,
		Logger:     sink,
		OnEdge:     onEdge,
	})
	return walker.Walk(ctx, root)
}
