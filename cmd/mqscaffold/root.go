package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mqscaffold",
	Short: "Scaffold media-query blocks for every class in use",
	Long: `Scan CSS and HTML files for class names and write one
@media (max-width: ...) block per configured breakpoint, with an empty rule
for every class. Rules already written in the output file are kept.`,
	Args: cobra.NoArgs,
	// Default behavior: run the scaffold when no subcommand is given.
	// We must call loadConfig here because PreRunE of runCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runScaffold(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging and a per-breakpoint summary")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", defaultConfigFile, "Config file path (.json, .yaml or .yml)")

	registerRunFlags(rootCmd.Flags())

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
