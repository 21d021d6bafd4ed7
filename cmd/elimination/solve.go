package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gitrdm/elimination/internal/puzzlefile"
	"github.com/gitrdm/elimination/internal/render"
)

var errContradiction = errors.New("puzzle is contradictory")

func newSolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "solve FILE",
		Short: "Apply the rules of a puzzle and print what they imply",
		Long: `Solve reads a puzzle document, applies its rules in order and prints
the remaining candidates of every item together with the answers to the
questions of the document.

    $ elimination solve examples/puzzles/zebra.yaml
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.solveFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := printResult(out, res, a.styles(out)); err != nil {
				return err
			}
			if res.Contradicted() {
				return errors.Wrap(errContradiction, res.Name)
			}
			return nil
		},
	}
}

// solveFile loads and solves one document, logging the outcome.
func (a *app) solveFile(path string) (*puzzlefile.Result, error) {
	log := a.logger.WithField("file", path)
	doc, err := puzzlefile.Load(path)
	if err != nil {
		return nil, err
	}
	res, err := puzzlefile.Solve(doc, a.options()...)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	log.WithFields(logrus.Fields{
		"edges":   res.Edges,
		"solved":  res.Solved,
		"elapsed": res.Elapsed,
	}).Info("puzzle processed")
	return res, nil
}

func printResult(w io.Writer, res *puzzlefile.Result, st render.Styles) error {
	grid, err := render.Grid(res.Solver, st)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, render.Summary(res.Name, res.Solver, st))
	fmt.Fprintln(w, grid)
	for _, ans := range res.Answers {
		if ans.Found {
			fmt.Fprintf(w, "%v -> %s: %v\n", ans.Item, ans.Category, ans.Label)
			continue
		}
		open := make([]string, len(ans.Candidates))
		for i, c := range ans.Candidates {
			open[i] = fmt.Sprint(c)
		}
		fmt.Fprintf(w, "%v -> %s: unresolved (%s)\n", ans.Item, ans.Category, strings.Join(open, "|"))
	}
	for _, p := range res.Problems {
		fmt.Fprintf(w, "problem: %s\n", p)
	}
	return nil
}
