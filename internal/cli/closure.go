package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caugraph/caugraph/pkg/independence"
)

// ===== Closure Command =====

func (c *CLI) closureCommand() *cobra.Command {
	var (
		reduce  bool
		latex   bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "closure <assertion> [assertion...]",
		Short: "Compute the semi-graphoid closure of independence assertions",
		Long: `Computes all independence assertions implied by the given ones under the
semi-graphoid axioms (symmetry, decomposition, weak union, contraction).

Each assertion has the form "e1;e2" or "e1;e2;e3" where each event is a
comma-separated variable list. For example "A;B,C" states that A is
independent of {B, C}, and "A;B;C" states the same conditional on C.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			ind := independence.New()
			for _, arg := range args {
				a, err := parseAssertion(arg)
				if err != nil {
					return err
				}
				ind.Add(a)
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			spinner := newSpinnerWithContext(ctx, "computing closure")
			spinner.Start()
			result, err := runner.Closure(ctx, ind)
			if err == nil && reduce {
				result = result.Reduce(false)
			}
			spinner.Stop()
			if err != nil {
				return err
			}
			if spinner.Cancelled() {
				return ctx.Err()
			}

			if latex {
				for _, line := range result.Latex() {
					fmt.Println(line)
				}
			} else {
				for _, a := range result.Assertions() {
					fmt.Println(a.String())
				}
			}
			printDetail(fmt.Sprintf("%d assertions from %d inputs", result.Len(), ind.Len()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&reduce, "reduce", false, "reduce the closure to a minimal equivalent set")
	cmd.Flags().BoolVar(&latex, "latex", false, "print assertions in LaTeX form")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the query cache")
	return cmd
}

// parseAssertion parses "e1;e2" or "e1;e2;e3" with comma-separated events
// into an independence assertion.
func parseAssertion(s string) (*independence.Assertion, error) {
	parts := strings.Split(s, ";")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("assertion %q must have form \"e1;e2\" or \"e1;e2;e3\"", s)
	}
	var e3 []string
	if len(parts) == 3 {
		e3 = parseVars(parts[2])
	}
	return independence.NewAssertion(parseVars(parts[0]), parseVars(parts[1]), e3)
}
