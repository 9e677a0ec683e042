package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/mqscaffold"
	"github.com/yacobolo/mqscaffold/internal/report"
)

var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"scaffold"},
	Short:   "Scan sources and update the media-query stylesheet",
	Long: `Collect class names from the configured CSS and HTML files and merge
an empty rule for each new class into every breakpoint block of the output.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runScaffold,
}

func init() {
	registerRunFlags(runCmd.Flags())
}

func registerRunFlags(f *pflag.FlagSet) {
	f.Bool("dry-run", false, "Print the stylesheet to stdout instead of writing it")
	f.Bool("check", false, "Exit 1 if the output file is out of date (CI mode)")
	f.String("output-format", "text", "Report format: text|json")
}

type runMode int

const (
	modeWrite runMode = iota
	modeDryRun
	modeCheck
)

func runScaffold(cmd *cobra.Command, _ []string) error {
	config, err := buildConfig()
	if err != nil {
		return err
	}

	format := k.String("output-format")
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown output format %q (want text or json)", format)
	}

	verbose := k.Bool("verbose")
	quiet := k.Bool("quiet")
	config.Logger = newLogger(cmd.ErrOrStderr(), verbose)

	mode := modeWrite
	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		mode = modeDryRun
	} else if check, _ := cmd.Flags().GetBool("check"); check {
		mode = modeCheck
	}

	var result *mqscaffold.Result
	switch mode {
	case modeDryRun:
		result, err = mqscaffold.Plan(config)
	case modeCheck:
		result, err = mqscaffold.Check(config)
	default:
		result, err = mqscaffold.Run(config)
	}
	if result == nil {
		return err
	}

	if format == "json" {
		if jsonErr := report.WriteJSON(cmd.OutOrStdout(), result, version, mode == modeDryRun); jsonErr != nil {
			return fmt.Errorf("writing json report: %w", jsonErr)
		}
		return err
	}

	if mode == modeDryRun {
		fmt.Fprint(cmd.OutOrStdout(), result.Stylesheet)
	}
	if quiet {
		return err
	}

	reporter := report.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), k.Bool("color"))
	reporter.Warnings(result)
	if err != nil {
		return err
	}
	if verbose {
		reporter.Summary(result)
	}

	switch mode {
	case modeCheck:
		reporter.UpToDate(result)
	case modeWrite:
		reporter.Updated(result)
	}
	return nil
}
