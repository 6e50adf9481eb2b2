package main

import (
	"fmt"
	"os"

	"github.com/oleg578/minicsv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newWriteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "write <rows.yaml> <output.csv>",
		Short: "Write rows from a YAML or JSON file as CSV",
		Long: `Write rows described in a YAML (or JSON) file as CSV.

The input must be a sequence of sequences. Scalar values of any type are
converted to text; null becomes an empty field.

Example input:
  - [name, age]
  - [Alice, 30]
  - ["Bob, Jr.", 25]`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWrite(args[0], args[1])
		},
	}
}

func (a *app) runWrite(in, out string) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	var rows [][]any
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("parsing %s: %w", in, err)
	}

	if err := minicsv.OpenWriter(out).WriteValues(rows); err != nil {
		return err
	}
	a.logger.Info("write finished", "input", in, "output", out, "rows", len(rows))
	return nil
}
