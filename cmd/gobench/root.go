package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"gobench/internal/config"
	"gobench/internal/telemetry"
	"gobench/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string

// closeLog closes the log file opened by the last command, if any.
var closeLog = func() error { return nil }

// settings holds the configuration resolved before every command.
var settings config.Settings

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gobench",
	Short: "Run, collect and compare Go benchmarks",
	Long: `gobench runs the benchmarks of every directory under the benchmarks root
across a CPU ladder, turns the raw output into _bench.json groups and compares
the implementations of each group: who is fastest, by how much, and how the
numbers move with N, CPU count and behavior.`,
	SilenceErrors:      true,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return closeLog() },
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'gobench --help' for usage.")
		stop()
		exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringP("benchmarks", "d", "benchmarks", "Root directory holding one directory per benchmark group")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file")
	rootCmd.PersistentFlags().Bool("color", true, "Colorize terminal output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("benchmarks", rootCmd.PersistentFlags().Lookup("benchmarks"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
}

// setup reads the configuration, validates it and configures logging and
// the terminal color profile.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.Load(cfgFile); err != nil {
		return err
	}
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", used)
	}

	settings = config.Current()
	if err := config.ValidateConfig(settings); err != nil {
		return err
	}

	closeLog = telemetry.InitLogger(settings.Verbose, settings.LogFile)
	ui.SetColor(settings.Color)
	slog.Debug("configuration loaded", "benchmarks", settings.BenchmarksDir, "format", settings.Format, "store", settings.Store.Type)
	return nil
}
