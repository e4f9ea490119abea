package main

import (
	"context"
	"fmt"

	"github.com/aretw0/automata/internal/demo"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/spf13/cobra"
)

func newAdderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adder [x y]",
		Short: "Run the serial adder automaton",
		Long: `Adds two bit streams one column at a time. The carry of each column selects
the next state (NonCarry or Carry). Without arguments a fixed sample stream is used.`,
		Args: cobra.MatchAll(cobra.RangeArgs(0, 2), func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return fmt.Errorf("adder takes zero or two numbers, got 1")
			}
			return nil
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			eng, err := newEngine[*demo.Bits, int](ctx, a)
			if err != nil {
				return err
			}
			defer eng.Close()

			delay := a.cfg.Engine.Delay
			if cmd.Flags().Changed("delay") {
				delay, _ = cmd.Flags().GetDuration("delay")
			}
			mermaid, _ := cmd.Flags().GetBool("mermaid")

			var steps []runner.Step
			adder := demo.NewSerialAdder(eng,
				demo.WithColumnDelay(delay),
				demo.WithColumnHook(func(state string, b demo.Bits) {
					step := runner.Step{Index: len(steps) + 1, State: state, Tracer: b.String()}
					steps = append(steps, step)
					if !mermaid {
						a.printer.Step(step)
					}
				}),
			)

			if len(args) == 2 {
				var x, y uint64
				if _, err := fmt.Sscan(args[0], &x); err != nil {
					return fmt.Errorf("invalid number %q: %w", args[0], err)
				}
				if _, err := fmt.Sscan(args[1], &y); err != nil {
					return fmt.Errorf("invalid number %q: %w", args[1], err)
				}
				sum, err := adder.Add(ctx, x, y)
				if err != nil {
					return err
				}
				a.printer.Info("%d + %d = %d", x, y, sum)
			} else {
				columns := demo.SampleColumns()
				carry, err := adder.Run(ctx, columns)
				if err != nil {
					return err
				}
				a.printer.Info("carry out: %t", carry)
			}

			if mermaid {
				fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(steps, nil))
			}
			return nil
		},
	}
	cmd.Flags().Duration("delay", 0, "Wait before every column (overrides engine.delay)")
	cmd.Flags().Bool("mermaid", false, "Print the visited states as a Mermaid diagram")
	return cmd
}
