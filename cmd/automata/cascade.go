package main

import (
	"context"
	"fmt"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/demo"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/aretw0/automata/pkg/transition"
	"github.com/spf13/cobra"
)

func newCascadeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cascade [inputs...]",
		Short: "Walk a cascading transition path",
		Long: `Queues one state per input on a cascading path and walks it until the
queue is empty. Each state echoes its input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			backing := transition.Backing(a.cfg.Cascade.Backing)
			if cmd.Flags().Changed("backing") {
				name, _ := cmd.Flags().GetString("backing")
				b, err := transition.ParseBacking(name)
				if err != nil {
					return err
				}
				backing = b
			}
			capacity := a.cfg.Cascade.Capacity
			if cmd.Flags().Changed("capacity") {
				capacity, _ = cmd.Flags().GetInt("capacity")
			}
			mermaid, _ := cmd.Flags().GetBool("mermaid")

			var steps []runner.Step
			eng, err := newEngine[string, string](ctx, a,
				automata.WithCascade(backing, capacity),
				automata.WithStepHook(func(s runner.Step) {
					steps = append(steps, s)
					if !mermaid {
						a.printer.Step(s)
					}
				}),
			)
			if err != nil {
				return err
			}
			defer eng.Close()

			inputs := args
			if len(inputs) == 0 {
				inputs = demo.DefaultCascadeInputs
			}
			path, err := eng.NewCascadingPath("Cascade")
			if err != nil {
				return err
			}
			if err := demo.FillCascade(path, inputs...); err != nil {
				return err
			}

			res, err := eng.Walk(ctx, path, nil)
			if err != nil {
				return err
			}

			if mermaid {
				fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(steps, nil))
				return nil
			}
			a.printer.Done(res)
			return nil
		},
	}
	cmd.Flags().String("backing", "", "Queue backing: ring, linked or fifo (overrides cascade.backing)")
	cmd.Flags().Int("capacity", 0, "Maximum number of queued states, 0 for no limit")
	cmd.Flags().Bool("mermaid", false, "Print the walk as a Mermaid diagram")
	return cmd
}
