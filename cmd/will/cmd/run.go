package cmd

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/go-will/will/cmd/will/internal/logger"
	"github.com/go-will/will/pkg/dom"
	"github.com/go-will/will/pkg/engine"
	"github.com/go-will/will/pkg/errors"
	"github.com/go-will/will/pkg/term"
)

func newRunCmd() *cobra.Command {
	var (
		noHelp    bool
		debugPort int
	)
	cmd := &cobra.Command{
		Use:   "run [demo]",
		Short: "Run a demo in the terminal",
		Long: `Run mounts a demo and hosts it in the terminal.

Tab and Shift-Tab move focus, typing edits the focused input, Enter or
Space activates buttons and checkboxes, and Esc quits.

Example:
  will run
  will run counter
  will run --debug-port 9229`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), args, noHelp, debugPort)
		},
	}
	cmd.Flags().BoolVar(&noHelp, "no-help", false, "Hide the key help line")
	cmd.Flags().IntVar(&debugPort, "debug-port", 0, "Serve render inspection over HTTP on this localhost port")
	return cmd
}

func runRun(ctx context.Context, args []string, noHelp bool, debugPort int) error {
	demo, err := selectDemo(args)
	if err != nil {
		return err
	}

	doc := dom.NewDocument()
	var extra []engine.Option
	if debugPort > 0 {
		extra = append(extra, engine.WithInspection())
	}
	root, err := mountDemo(doc, demo, extra...)
	if err != nil {
		return err
	}

	if debugPort > 0 {
		srv, err := engine.StartDebugServer(root, debugPort)
		if err != nil {
			return errors.New("cmd.run", errors.KindInit, err)
		}
		defer srv.Stop()
		logger.Info("debug server started", "port", srv.Port())
	}

	screen, err := term.NewScreen()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []term.Option{term.WithLogger(logger.L)}
	if noHelp {
		opts = append(opts, term.WithoutHelp())
	}
	err = term.New(screen, doc, opts...).Run(ctx)
	if stderrors.Is(err, context.Canceled) {
		err = nil
	}

	requests, frames := root.Scheduler().Stats()
	logger.Info("run finished",
		"demo", demo.Name,
		"renders", root.Renders(),
		"requests", requests,
		"frames", frames,
	)
	return err
}
