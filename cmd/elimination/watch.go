package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitrdm/elimination/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Solve a puzzle again every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd, args[0])
		},
	}
	cmd.Flags().Duration("debounce", 200*time.Millisecond, "quiet period before solving again")
	return cmd
}

func (a *app) watch(ctx context.Context, cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()
	resolve := func(p string) {
		res, err := a.solveFile(p)
		if err != nil {
			a.logger.WithField("file", p).Error(err)
			return
		}
		if err := printResult(out, res, a.styles(out)); err != nil {
			a.logger.WithField("file", p).Error(err)
		}
	}

	w, err := watch.New(a.logger, path, a.cfg.Debounce, resolve)
	if err != nil {
		return err
	}
	resolve(path)
	a.logger.WithField("file", path).Info("watching for changes")
	w.Run(ctx)
	return nil
}
