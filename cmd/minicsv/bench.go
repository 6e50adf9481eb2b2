package main

import (
	"fmt"
	"io"

	"github.com/oleg578/minicsv/internal/bench"
	"github.com/spf13/cobra"
)

func newBenchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench <file>",
		Short: "Time minicsv against encoding/csv",
		Long: `Read the file and write its rows back out several times with each
implementation and print the total time per implementation.

Example usage:
  minicsv generate benchmark_data.csv
  minicsv bench benchmark_data.csv --iterations 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := bench.Run(cmd.Context(), args[0], a.v.GetInt("iterations"))
			if err != nil {
				return err
			}
			printBench(cmd.OutOrStdout(), rep)
			a.logger.Info("benchmark finished", "path", rep.Path, "rows", rep.Rows, "iterations", rep.Iterations)
			return nil
		},
	}

	cmd.Flags().IntP("iterations", "i", 5, "Runs per implementation")
	_ = a.v.BindPFlag("iterations", cmd.Flags().Lookup("iterations"))
	return cmd
}

func printBench(out io.Writer, rep bench.Report) {
	section := func(title string, timings []bench.Timing) {
		fmt.Fprintln(out, headerStyle.Render(title))
		for _, t := range timings {
			fmt.Fprintf(out, "  %-14s %.4f seconds\n", t.Name+":", t.Total.Seconds())
		}
	}
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%s: %d rows, %d iterations", rep.Path, rep.Rows, rep.Iterations)))
	section("Reader Benchmark", rep.Read)
	fmt.Fprintln(out)
	section("Writer Benchmark", rep.Write)
}
