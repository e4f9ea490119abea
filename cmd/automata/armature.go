package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/demo"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/spf13/cobra"
)

func newArmatureCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "armature",
		Short: "Replay a transition path on a deterministic engine",
		Long: `Transits the Idle -> Walking path on a deterministic engine and submits it
again from inside the transition. The engine rejects the replay.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			eng, err := newEngine[string, string](ctx, a, automata.WithDeterministic(true))
			if err != nil {
				return err
			}
			defer eng.Close()

			mermaid, _ := cmd.Flags().GetBool("mermaid")
			path := demo.ArmaturePath()
			var steps []runner.Step
			err = demo.RunArmature(ctx, eng, path, func(tracer string) {
				step := runner.Step{Index: len(steps) + 1, State: tracer, Tracer: tracer}
				steps = append(steps, step)
				if !mermaid {
					a.printer.Info("%s", tracer)
				}
			})

			var dup *domain.DuplicatePathError
			if !errors.As(err, &dup) {
				if err == nil {
					return errors.New("the replayed path was accepted")
				}
				return err
			}

			if mermaid {
				fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(steps, &graph.TraceOverlay{Rejected: dup.Name}))
				return nil
			}
			a.printer.Warn("%v", dup)
			return nil
		},
	}
	cmd.Flags().Bool("mermaid", false, "Print the run as a Mermaid diagram")
	return cmd
}
