package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caugraph/caugraph/pkg/engine"
	"github.com/caugraph/caugraph/pkg/graph"
	"github.com/caugraph/caugraph/pkg/graphio"
)

// ===== Separator Command =====

func (c *CLI) separatorCommand() *cobra.Command {
	var (
		latents bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "separator <graph.json> <x> <y>",
		Short: "Find a minimal d-separating set for two variables",
		Long:  `Finds an inclusion-minimal set of observed variables that d-separates x and y, or reports that none exists. Adjacent variables cannot be separated.`,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			g, err := graphio.ReadDAGFile(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			q := engine.SeparatorQuery{X: args[1], Y: args[2], IncludeLatents: latents}
			res, hit, err := runner.MinimalSeparatorWithCacheInfo(ctx, g, q)
			if errors.Is(err, graph.ErrNoSeparator) {
				printError(fmt.Sprintf("%s and %s are adjacent and cannot be separated",
					StyleHighlight.Render(q.X), StyleHighlight.Render(q.Y)))
				return err
			}
			if err != nil {
				return err
			}

			if !res.Found {
				printWarning(fmt.Sprintf("no admissible separator exists for %s and %s",
					StyleHighlight.Render(q.X), StyleHighlight.Render(q.Y)))
			} else {
				printSuccess(fmt.Sprintf("minimal separator for %s and %s: {%s}",
					StyleHighlight.Render(q.X), StyleHighlight.Render(q.Y),
					strings.Join(res.Separator, ", ")))
			}
			printStats(g.NodeCount(), g.EdgeCount(), hit)
			return nil
		},
	}

	cmd.Flags().BoolVar(&latents, "latents", false, "allow latent variables in the separator")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the query cache")
	return cmd
}
