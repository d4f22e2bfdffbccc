package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/caugraph/caugraph/pkg/graphio"
)

// ===== Orient Command =====

func (c *CLI) orientCommand() *cobra.Command {
	var (
		applyR4 bool
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "orient <graph.json>",
		Short: "Apply Meek's orientation rules to a partially directed graph",
		Long:  `Applies Meek's rules R1-R3 (and optionally R4) to a PDAG until no further undirected edge can be oriented, and writes the resulting graph as JSON.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			prog := newProgress(c.Logger)

			p, err := graphio.ReadPDAGFile(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			oriented, hit, err := runner.OrientWithCacheInfo(ctx, p, applyR4)
			if err != nil {
				return err
			}
			prog.done("orientation")

			if output != "" {
				if err := graphio.WritePDAGFile(oriented, output); err != nil {
					return err
				}
				printSuccess("oriented graph written")
				printFile(output)
			} else if err := graphio.WritePDAG(oriented, os.Stdout); err != nil {
				return err
			}

			before := len(p.UndirectedEdges())
			after := len(oriented.UndirectedEdges())
			printDetail(fmt.Sprintf("%d of %d undirected edges oriented", before-after, before))
			printStats(oriented.NodeCount(), len(oriented.DirectedEdges())+after, hit)
			return nil
		},
	}

	cmd.Flags().BoolVar(&applyR4, "r4", false, "also apply Meek's rule R4")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write result to file instead of stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the query cache")
	return cmd
}

// ===== Extend Command =====

func (c *CLI) extendCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "extend <graph.json>",
		Short: "Find a consistent DAG extension of a partially directed graph",
		Long:  `Orients every undirected edge of a PDAG so that the result is acyclic and introduces no new immoralities, or reports that no such extension exists.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			prog := newProgress(c.Logger)

			p, err := graphio.ReadPDAGFile(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			dag, hit, err := runner.ExtendWithCacheInfo(ctx, p)
			if err != nil {
				return err
			}
			prog.done("extension")

			if output != "" {
				if err := graphio.WriteDAGFile(dag, output); err != nil {
					return err
				}
				printSuccess("consistent extension written")
				printFile(output)
			} else if err := graphio.WriteDAG(dag, os.Stdout); err != nil {
				return err
			}
			printStats(dag.NodeCount(), dag.EdgeCount(), hit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write result to file instead of stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the query cache")
	return cmd
}
