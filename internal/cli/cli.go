// Package cli implements the caugraph command-line interface.
//
// This package provides commands for querying causal graphs (d-separation,
// minimal separators, active trails), transforming partially directed graphs
// (orient, extend), reasoning over independence assertions (closure), and
// rendering visualizations. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - dsep: Check d-separation between two variables
//   - trails: List variables reachable along active trails
//   - separator: Find a minimal d-separating set
//   - orient: Apply orientation rules to a partially directed graph
//   - extend: Find a consistent DAG extension
//   - closure: Compute the semi-graphoid closure of independence assertions
//   - identify: Check backdoor and frontdoor identification criteria
//   - render: Generate DOT, SVG, PDF, or PNG visualizations
//   - graphs: Manage stored graphs
//   - serve: Run the HTTP API server
//   - cache: Manage the query cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/caugraph/caugraph/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/caugraph/caugraph/pkg/buildinfo"
	"github.com/caugraph/caugraph/pkg/cache"
	"github.com/caugraph/caugraph/pkg/engine"
)

// appName is the application name used for directories and display.
const appName = "caugraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

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
		Short:        "Caugraph answers structural queries over causal graphs",
		Long:         `Caugraph is a CLI tool for causal graph analysis: d-separation queries, minimal separating sets, orientation of partially directed graphs, consistent DAG extensions, and independence reasoning.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.dsepCommand())
	root.AddCommand(c.trailsCommand())
	root.AddCommand(c.separatorCommand())
	root.AddCommand(c.orientCommand())
	root.AddCommand(c.extendCommand())
	root.AddCommand(c.closureCommand())
	root.AddCommand(c.identifyCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.graphsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a query runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*engine.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return engine.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/caugraph/).
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

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{engine.FormatSVG}
	}
	return strings.Split(s, ",")
}

// parseVars parses a comma-separated variable list, dropping empty entries.
func parseVars(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
