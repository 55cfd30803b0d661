package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-will/will/showcase"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show project status",
		Long: `Show the resolved settings of the current will project.

Displays the project root and module, the demo run by default, the engine
settings from will.yaml, and where logs are written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd.OutOrStdout())
		},
	}
}

func runStatus(out io.Writer) error {
	demo := cfg.Demo
	if demo == "" {
		demo = showcase.DefaultDemo + " (default)"
	}
	module := cfg.ModulePath
	if module == "" {
		module = "(no go.mod)"
	}
	logs := "disabled"
	if logPath != "" {
		logs = logPath
	}

	fmt.Fprintf(out, "Project: %s\n", cfg.AppName)
	fmt.Fprintf(out, "  %-8s %s\n", "root:", cfg.Root)
	fmt.Fprintf(out, "  %-8s %s\n", "module:", module)
	fmt.Fprintf(out, "  %-8s %s\n", "demo:", demo)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Engine:")
	fmt.Fprintf(out, "  %-8s %s\n", "root id:", cfg.RootID)
	fmt.Fprintf(out, "  %-8s %t\n", "prune:", cfg.PruneHooks)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Log:")
	fmt.Fprintf(out, "  %-8s %s\n", "level:", cfg.LogLevel)
	fmt.Fprintf(out, "  %-8s %s\n", "file:", logs)
	return nil
}
