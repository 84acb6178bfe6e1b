// Package cli implements the meander command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/meander/pkg/buildinfo"
	"github.com/matzehuels/meander/pkg/cache"
	"github.com/matzehuels/meander/pkg/tuning"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "meander"

	// envRedisURL and envMongoURI name the environment variables that select
	// the shared backends when the corresponding flags are not set.
	envRedisURL = "MEANDER_REDIS_URL"
	envMongoURI = "MEANDER_MONGO_URI"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Meander tunes PCB trace lengths with serpentine detours",
		Long:         `Meander places length tuning meanders along routed tracks and differential pairs, trims them to a target length and renders the result.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.tuneCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// backendFlags selects the cache backend shared by tune and serve.
type backendFlags struct {
	noCache  bool
	redisURL string
}

func (f *backendFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable result caching")
	cmd.Flags().StringVar(&f.redisURL, "redis", os.Getenv(envRedisURL), "redis URL for a shared cache (default: file cache)")
}

// newRunner creates a tuning runner. A non-empty scope prefixes every
// cache key so that several frontends can share one Redis instance.
func (c *CLI) newRunner(ctx context.Context, f backendFlags, scope string) (*tuning.Runner, error) {
	store, err := newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if scope != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), scope)
	}
	return tuning.NewRunner(store, keyer, c.Logger), nil
}

func newCache(ctx context.Context, f backendFlags) (cache.Cache, error) {
	if f.noCache {
		return cache.NewNullCache(), nil
	}
	if f.redisURL != "" {
		return cache.NewRedisCache(ctx, f.redisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/meander/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{tuning.FormatSVG}
	}
	return strings.Split(s, ",")
}

// trimExt strips the extension from a file path.
func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// outputPath builds the artifact path for one net: <base>_<net>.<format>.
// A base that already carries a format extension loses it first.
func outputPath(base, net, format string) string {
	if ext := filepath.Ext(base); ext != "" {
		if _, ok := tuning.ContentTypes[strings.TrimPrefix(ext, ".")]; ok {
			base = strings.TrimSuffix(base, ext)
		}
	}
	return base + "_" + net + "." + format
}
