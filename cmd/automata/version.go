package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata"
	"github.com/spf13/cobra"
)

func versionString() string {
	return strings.TrimSpace(automata.Version)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of automata",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "automata version %s\n", versionString())
		},
	}
}
