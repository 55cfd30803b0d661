package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-will/will/showcase"
)

func newDemosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demos",
		Short: "List the available demos",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, d := range showcase.Demos() {
				marker := " "
				if d.Name == currentDemo() {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-10s %-10s %s\n", marker, d.Name, d.Title, d.Subtitle)
			}
		},
	}
}

// currentDemo returns the demo run when no name is given.
func currentDemo() string {
	if cfg != nil && cfg.Demo != "" {
		return cfg.Demo
	}
	return showcase.DefaultDemo
}
