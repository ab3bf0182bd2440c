package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/yurifrl/invoicer/pkg/config"
	"github.com/yurifrl/invoicer/pkg/parser"
	"github.com/yurifrl/invoicer/pkg/validation"
)

var (
	cliFilters filters
	cfgFile    string
	month      string
	format     string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "invoicer-cli",
	Short: "Invoice batch validation command-line interface",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [flags] <input_path>",
	Short: "Validate invoice batch spreadsheets and print the report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		if debug {
			level = log.DebugLevel
		}
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "invoicer-cli",
			Level:           level,
		})

		out, err := newPrinter(format, os.Stdout)
		if err != nil {
			return err
		}

		matches, err := filepath.Glob(args[0])
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return fmt.Errorf("no files found matching pattern %s", args[0])
		}

		p := parser.New(logger)
		for _, match := range matches {
			grid, err := p.ProcessFile(match)
			if err != nil {
				logger.Warn("failed to process file", "error", err, "file", match)
				continue
			}
			if debug {
				pp.Fprintln(os.Stderr, grid)
			}

			report := validation.Validate(grid, month)
			cliFilters.apply(report)
			if err := out.print(match, report); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Dump extracted grids to stderr")

	validateCmd.Flags().StringVarP(&month, "month", "m", "", "Invoicing month (Jan 2024 or 2024-01)")
	validateCmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, yaml, csv or text")
	validateCmd.Flags().StringVar(&cliFilters.customer, "customer", "", "Only invoices whose customer contains this text")
	validateCmd.Flags().StringVar(&cliFilters.status, "status", "", "Only invoices with this status")
	validateCmd.Flags().BoolVar(&cliFilters.onlyErrors, "only-errors", false, "Only invoices with validation errors")
	_ = validateCmd.MarkFlagRequired("month")

	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
