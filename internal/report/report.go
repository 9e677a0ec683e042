// Package report prints scaffolding results to the terminal.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/yacobolo/mqscaffold"
)

// Prefix starts every line the CLI prints.
const Prefix = "[mq-scaffold]"

// Reporter handles formatting and outputting scaffolding results
type Reporter struct {
	out       io.Writer
	errOut    io.Writer
	useColors bool
}

// New creates a reporter writing results to out and diagnostics to errOut.
func New(out, errOut io.Writer, forceColors bool) *Reporter {
	return &Reporter{
		out:       out,
		errOut:    errOut,
		useColors: shouldUseColors(out, forceColors),
	}
}

// shouldUseColors determines if colors should be enabled for out
func shouldUseColors(out io.Writer, force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if f, ok := out.(*os.File); ok {
		if fileInfo, err := f.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
			return true
		}
	}

	return false
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

func (r *Reporter) prefix() string {
	return r.paint(prefixStyle, Prefix)
}

// Updated prints the confirmation line after a write.
func (r *Reporter) Updated(result *mqscaffold.Result) {
	fmt.Fprintf(r.out, "%s Media queries updated safely at %s\n", r.prefix(), result.Output)
}

// UpToDate prints the confirmation line of a passing check.
func (r *Reporter) UpToDate(result *mqscaffold.Result) {
	fmt.Fprintf(r.out, "%s %s\n", r.prefix(),
		r.paint(okStyle, "Media queries are up to date at "+result.Output))
}

// Summary prints per-breakpoint counts.
func (r *Reporter) Summary(result *mqscaffold.Result) {
	fmt.Fprintf(r.out, "  Files scanned: %d (%d skipped)\n", result.Stats.FilesScanned, result.Stats.FilesSkipped)
	fmt.Fprintf(r.out, "  Classes found: %d\n", result.ClassesFound)
	fmt.Fprintf(r.out, "  Blocks recovered: %d\n", result.BlocksRecovered)

	for _, b := range result.Blocks {
		name := fmt.Sprintf("%s (%s)", b.Breakpoint.Label, b.Breakpoint.Width)
		kept := ""
		if b.Preserved {
			kept = ", existing rules kept"
		}
		fmt.Fprintf(r.out, "  %s: %s%s\n",
			r.paint(prefixStyle, name),
			r.paint(countStyle, pluralizeCount(b.Added, "new rule", "new rules")),
			kept)
	}
}

// Warnings prints one line per warning to the diagnostic stream.
func (r *Reporter) Warnings(result *mqscaffold.Result) {
	for _, w := range result.Warnings {
		fmt.Fprintf(r.errOut, "%s %s %s\n", r.prefix(), r.paint(warnStyle, "Warning:"), w)
	}
}

// Error prints a fatal error as a single diagnostic line.
func (r *Reporter) Error(err error) {
	fmt.Fprintf(r.errOut, "%s %s\n", r.prefix(), r.paint(errorStyle, err.Error()))
}

// pluralizeCount returns "1 item" or "N items" based on count
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
