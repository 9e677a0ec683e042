// Package main provides the mqscaffold CLI, which scaffolds a media-query
// stylesheet from the classes used across CSS and HTML files.
package main

import (
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/yacobolo/mqscaffold/internal/report"
)

func main() {
	// A .env file is optional; MQSCAFFOLD_* variables may come from either.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		errorReporter(os.Stderr).Error(err)
		os.Exit(1)
	}
}

// errorReporter colors the error line for the stream it goes to, or when
// --color was given.
func errorReporter(errOut io.Writer) *report.Reporter {
	force, _ := rootCmd.PersistentFlags().GetBool("color")
	return report.New(errOut, errOut, force)
}
