package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/oleg578/minicsv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newReadCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "Parse a CSV file and print its rows",
		Long: `Parse a CSV file and print the rows it contains.

Formats:
  csv   re-serialize with minimal quoting and LF row endings
  json  one JSON array per row
  yaml  a single YAML sequence of rows

Example usage:
  minicsv read data.csv
  minicsv read data.csv --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRead(cmd.OutOrStdout(), args[0], a.v.GetString("format"))
		},
	}

	cmd.Flags().StringP("format", "f", "csv", "Output format: csv, json, yaml")
	_ = a.v.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

// rowSink receives rows one at a time and is finished once at the end.
type rowSink interface {
	add(row []string) error
	finish() error
}

func (a *app) runRead(out io.Writer, path, format string) error {
	sink, err := newSink(out, format)
	if err != nil {
		return err
	}

	n := 0
	err = minicsv.WithReader(path, func(r *minicsv.Reader) error {
		for row, err := range r.Rows() {
			if err != nil {
				return err
			}
			if err := sink.add(row); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			n++
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := sink.finish(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	a.logger.Info("read finished", "path", path, "rows", n, "format", format)
	return nil
}

func newSink(out io.Writer, format string) (rowSink, error) {
	switch format {
	case "csv":
		return &csvSink{w: minicsv.NewWriter(out)}, nil
	case "json":
		return &jsonSink{enc: json.NewEncoder(out)}, nil
	case "yaml":
		return &yamlSink{enc: yaml.NewEncoder(out)}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want csv, json or yaml)", format)
	}
}

type csvSink struct{ w *minicsv.Writer }

func (s *csvSink) add(row []string) error { return s.w.Write(row) }
func (s *csvSink) finish() error          { return s.w.Flush() }

type jsonSink struct{ enc *json.Encoder }

func (s *jsonSink) add(row []string) error { return s.enc.Encode(row) }
func (s *jsonSink) finish() error          { return nil }

// yamlSink collects the rows so they come out as one document.
type yamlSink struct {
	enc  *yaml.Encoder
	rows [][]string
}

func (s *yamlSink) add(row []string) error {
	s.rows = append(s.rows, row)
	return nil
}

func (s *yamlSink) finish() error {
	if s.rows == nil {
		s.rows = [][]string{}
	}
	if err := s.enc.Encode(s.rows); err != nil {
		return err
	}
	return s.enc.Close()
}
