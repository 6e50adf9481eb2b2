package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries what every subcommand needs: its configuration and logger.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: slog.New(slog.DiscardHandler)}

	rootCmd := &cobra.Command{
		Use:           "minicsv",
		Short:         "Read, write and cross-check CSV files",
		Long:          "minicsv parses and serializes comma-separated files in the conventional dialect and compares the results with encoding/csv.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(cmd); err != nil {
				return err
			}
			a.logger = newLogger(cmd.ErrOrStderr(), a.v.GetBool("verbose"), a.v.GetBool("debug"))
			a.logger.Debug("configuration loaded", "config", a.v.ConfigFileUsed())
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (yaml, toml or json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "Debug output")

	_ = a.v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = a.v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.AddCommand(
		newReadCmd(a),
		newWriteCmd(a),
		newGenerateCmd(a),
		newCompareCmd(a),
		newBenchCmd(a),
	)
	return rootCmd
}

func (a *app) initConfig(cmd *cobra.Command) error {
	a.v.SetEnvPrefix("MINICSV")
	a.v.AutomaticEnv()

	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile == "" {
		return nil
	}
	a.v.SetConfigFile(cfgFile)
	if err := a.v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func newLogger(w io.Writer, verbose, debug bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case debug:
		level = slog.LevelDebug
	case verbose:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
