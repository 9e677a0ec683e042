package mqscaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/yacobolo/mqscaffold/internal/mediaquery"
)

// Run scaffolds the media queries and overwrites the output file.
func Run(config Config) (*Result, error) {
	result, err := Plan(config)
	if err != nil {
		return nil, err
	}

	if err := writeOutput(result.Path, result.Stylesheet); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	result.Written = true

	config.logger().Debug("wrote output",
		slog.String("path", result.Path),
		slog.Int("stubs", result.StubsAdded()))

	return result, nil
}

// Plan runs the whole pipeline without touching the output file.
func Plan(config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger := config.logger()

	outputPath, err := filepath.Abs(config.Output)
	if err != nil {
		return nil, fmt.Errorf("resolve output path: %w", err)
	}

	result := &Result{
		Output: config.Output,
		Path:   outputPath,
	}

	// 1. Collect classes
	all, stats, err := collect(config, outputPath)
	if err != nil {
		return nil, fmt.Errorf("collect classes: %w", err)
	}
	result.Stats = stats
	result.ClassesFound = all.Len()

	// 2. Recover blocks from the previous run
	previous, err := readExisting(outputPath)
	if err != nil {
		return nil, fmt.Errorf("read existing output: %w", err)
	}
	result.Previous = previous

	existing, warnings := mediaquery.ParseExisting(previous)
	result.BlocksRecovered = len(existing)
	result.Warnings = warnings
	logger.Debug("parsed existing output",
		slog.String("path", outputPath),
		slog.Int("blocks", len(existing)),
		slog.Int("dropped", len(warnings)))

	// 3. Generate
	result.Stylesheet, result.Blocks = mediaquery.Generate(all, config.Breakpoints, existing, mediaquery.Options{
		SortClasses: config.SortClasses,
	})

	return result, nil
}

// Check plans a run and returns ErrOutOfDate when the output would change.
func Check(config Config) (*Result, error) {
	result, err := Plan(config)
	if err != nil {
		return nil, err
	}
	if result.Changed() {
		return result, fmt.Errorf("%w: %s", ErrOutOfDate, config.Output)
	}
	return result, nil
}

func readExisting(path string) (string, error) {
	// #nosec G304 - path comes from trusted configuration
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func writeOutput(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
