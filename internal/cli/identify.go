package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caugraph/caugraph/pkg/causal"
	"github.com/caugraph/caugraph/pkg/graphio"
)

// ===== Identify Command =====

func (c *CLI) identifyCommand() *cobra.Command {
	var (
		exposure   string
		outcome    string
		adjustment string
		frontdoor  string
		find       bool
	)

	cmd := &cobra.Command{
		Use:   "identify <graph.json>",
		Short: "Check backdoor and frontdoor identification criteria",
		Long: `Checks whether a causal effect is identifiable in the DAG. With
--adjustment the given set is validated against the backdoor criterion.
With --frontdoor the given set is validated against the frontdoor
criterion, and with --find-frontdoor the smallest qualifying frontdoor
set is searched for instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graphio.ReadDAGFile(args[0])
			if err != nil {
				return err
			}

			m := causal.NewModel(g)
			if err := m.SetRole(causal.RoleExposure, exposure); err != nil {
				return err
			}
			if err := m.SetRole(causal.RoleOutcome, outcome); err != nil {
				return err
			}

			pair := fmt.Sprintf("%s on %s", StyleHighlight.Render(exposure), StyleHighlight.Render(outcome))

			if find {
				set, ok, err := m.FindFrontdoorSet()
				if err != nil {
					return err
				}
				if !ok {
					printWarning(fmt.Sprintf("no frontdoor set exists for the effect of %s", pair))
					return nil
				}
				printSuccess(fmt.Sprintf("frontdoor set for the effect of %s: {%s}",
					pair, strings.Join(set.Sorted(), ", ")))
				return nil
			}

			if frontdoor != "" {
				if err := m.SetRole(causal.RoleFrontdoor, parseVars(frontdoor)...); err != nil {
					return err
				}
				ok, err := m.ValidateFrontdoor()
				if err != nil {
					return err
				}
				if ok {
					printSuccess(fmt.Sprintf("{%s} satisfies the frontdoor criterion for %s", frontdoor, pair))
				} else {
					printError(fmt.Sprintf("{%s} does not satisfy the frontdoor criterion for %s", frontdoor, pair))
				}
				return nil
			}

			if vars := parseVars(adjustment); len(vars) > 0 {
				if err := m.SetRole(causal.RoleAdjustment, vars...); err != nil {
					return err
				}
			}
			ok, err := m.ValidateAdjustment()
			if err != nil {
				return err
			}
			given := "∅"
			if adjustment != "" {
				given = adjustment
			}
			if ok {
				printSuccess(fmt.Sprintf("{%s} satisfies the backdoor criterion for %s", given, pair))
			} else {
				printError(fmt.Sprintf("{%s} does not satisfy the backdoor criterion for %s", given, pair))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&exposure, "exposure", "x", "", "exposure variable")
	cmd.Flags().StringVarP(&outcome, "outcome", "y", "", "outcome variable")
	cmd.Flags().StringVar(&adjustment, "adjustment", "", "comma-separated backdoor adjustment set")
	cmd.Flags().StringVar(&frontdoor, "frontdoor", "", "comma-separated frontdoor set to validate")
	cmd.Flags().BoolVar(&find, "find-frontdoor", false, "search for a minimal frontdoor set")
	cmd.MarkFlagRequired("exposure")
	cmd.MarkFlagRequired("outcome")
	return cmd
}
