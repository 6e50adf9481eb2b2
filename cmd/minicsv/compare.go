package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/oleg578/minicsv/internal/compare"
	"github.com/spf13/cobra"
)

var errMismatch = errors.New("output differs from encoding/csv")

func newCompareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare minicsv with encoding/csv",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reader <file>",
		Short: "Parse a file with both readers and compare the rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := compare.Reader(args[0])
			if err != nil {
				return err
			}
			return a.report(cmd.OutOrStdout(), "Reader comparison", []compare.Result{res})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "writer",
		Short: "Write the standard cases with both writers and compare the bytes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var results []compare.Result
			for _, c := range compare.Cases() {
				res, err := compare.Writer(c)
				if err != nil {
					return fmt.Errorf("case %q: %w", c.Name, err)
				}
				results = append(results, res)
			}
			return a.report(cmd.OutOrStdout(), "Writer comparison", results)
		},
	})
	return cmd
}

func (a *app) report(out io.Writer, title string, results []compare.Result) error {
	fmt.Fprintln(out, headerStyle.Render(title))

	failed := 0
	for _, res := range results {
		fmt.Fprintf(out, "%s %s %s\n", verdict(res.Match), res.Name, dimStyle.Render(fmt.Sprintf("(%d rows)", res.Rows)))
		if !res.Match {
			failed++
			fmt.Fprintf(out, "    %s\n", res.Detail)
		}
	}
	fmt.Fprintf(out, "\n%d/%d passed\n", len(results)-failed, len(results))

	a.logger.Info("comparison finished", "title", title, "cases", len(results), "failed", failed)
	if failed > 0 {
		return errMismatch
	}
	return nil
}
