package mqscaffold

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/yacobolo/mqscaffold/internal/mediaquery"
)

var (
	// ErrInvalidConfig is wrapped by every configuration error.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrOutOfDate is returned by Check when the output file would change.
	ErrOutOfDate = errors.New("media queries are out of date")
)

// Breakpoint is a named max-width threshold such as {"mobile", "480px"}.
type Breakpoint = mediaquery.Breakpoint

// Breakpoints is an ordered breakpoint list. It decodes from a JSON object
// or YAML mapping while keeping declaration order.
type Breakpoints = mediaquery.Breakpoints

// BlockStat describes the generated block of one breakpoint.
type BlockStat = mediaquery.BlockStat

// Config holds scaffolding configuration
type Config struct {
	CSSPatterns      []string     // ["src/**/*.css"]
	HTMLPatterns     []string     // ["src/**/*.html", "templates/*.html"]
	Output           string       // "src/responsive.css", read then overwritten
	Breakpoints      Breakpoints  // Output block order
	RespectGitignore bool         // Skip files matched by ./.gitignore
	SortClasses      bool         // Emit new stubs alphabetically
	Logger           *slog.Logger // Debug logging, nil discards
}

// Validate reports the first problem with the configuration.
func (c Config) Validate() error {
	if len(c.CSSPatterns) == 0 {
		return fmt.Errorf("%w: cssPath must name at least one pattern", ErrInvalidConfig)
	}
	for _, p := range c.CSSPatterns {
		if p == "" {
			return fmt.Errorf("%w: cssPath contains an empty pattern", ErrInvalidConfig)
		}
	}
	for _, p := range c.HTMLPatterns {
		if p == "" {
			return fmt.Errorf("%w: htmlPaths contains an empty pattern", ErrInvalidConfig)
		}
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output must be a file path", ErrInvalidConfig)
	}
	if err := c.Breakpoints.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CollectStats tracks file discovery statistics
type CollectStats struct {
	FilesDiscovered int // Files matched by the patterns
	FilesScanned    int // Files read and parsed
	FilesSkipped    int // Output file and gitignored files
}

// Result contains the outcome of one run
type Result struct {
	Output     string // Output path as configured
	Path       string // Absolute output path
	Stylesheet string // Generated text
	Previous   string // Output file content before the run, "" when absent

	Stats           CollectStats
	ClassesFound    int
	BlocksRecovered int
	Blocks          []BlockStat
	Warnings        []string
	Written         bool
}

// Changed reports whether the generated stylesheet differs from the file.
func (r *Result) Changed() bool {
	return r.Stylesheet != r.Previous
}

// StubsAdded returns the number of new stub rules across all blocks.
func (r *Result) StubsAdded() int {
	total := 0
	for _, b := range r.Blocks {
		total += b.Added
	}
	return total
}
