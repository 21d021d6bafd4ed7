package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gitrdm/elimination/internal/metrics"
	"github.com/gitrdm/elimination/internal/parallel"
	"github.com/gitrdm/elimination/internal/puzzlefile"
)

// report is the JSON document written by the batch command.
type report struct {
	Run     string        `json:"run"`
	Workers int           `json:"workers"`
	Elapsed time.Duration `json:"elapsed"`
	Entries []entry       `json:"entries"`
}

type entry struct {
	File   string             `json:"file"`
	Status string             `json:"status"`
	Error  string             `json:"error,omitempty"`
	Result *puzzlefile.Result `json:"result,omitempty"`
}

func newBatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch FILE...",
		Short: "Solve many puzzles concurrently and print a JSON report",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.batch(cmd.Context(), args)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return errors.Wrap(enc.Encode(rep), "writing report")
		},
	}
	cmd.Flags().IntP("workers", "w", 0, "puzzles solved at once")
	cmd.Flags().String("metrics-file", "", "write Prometheus metrics to this file")
	return cmd
}

func (a *app) batch(ctx context.Context, files []string) (*report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	run := uuid.New().String()
	log := a.logger.WithField("run", run)
	rec := metrics.New()

	pool := parallel.NewWorkerPool(a.cfg.Workers)
	defer pool.Shutdown()
	log.WithFields(logrus.Fields{"files": len(files), "workers": pool.Workers()}).Info("batch started")

	entries, err := parallel.Map(ctx, pool, len(files), func(i int) entry {
		return a.batchEntry(files[i], rec)
	})
	if err != nil {
		return nil, errors.Wrap(err, "batch interrupted")
	}

	rep := &report{Run: run, Workers: pool.Workers(), Elapsed: time.Since(start), Entries: entries}
	if a.cfg.MetricsFile != "" {
		if err := rec.WriteTextfile(a.cfg.MetricsFile); err != nil {
			return nil, err
		}
		log.WithField("path", a.cfg.MetricsFile).Debug("metrics written")
	}
	log.WithField("elapsed", rep.Elapsed).Info("batch finished")
	return rep, nil
}

func (a *app) batchEntry(file string, rec *metrics.Recorder) entry {
	res, err := a.solveFile(file)
	if err != nil {
		a.logger.WithField("file", file).Warn(err)
		rec.Failed()
		return entry{File: file, Status: metrics.StatusError, Error: err.Error()}
	}
	status := metrics.StatusUnsolved
	switch {
	case res.Contradicted():
		status = metrics.StatusContradiction
	case res.Solved:
		status = metrics.StatusSolved
	}
	rec.Observe(res.Name, status, res.Stats, res.Edges, res.Elapsed.Seconds())
	return entry{File: file, Status: status, Result: res}
}
