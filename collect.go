package mqscaffold

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/yacobolo/mqscaffold/internal/classes"
)

// extractor turns one file's content into class names.
type extractor func(r io.Reader) (*classes.Set, error)

// Collect expands the CSS and HTML patterns, parses every matched file and
// returns the union of all class names. CSS files come first, then HTML
// files in pattern order. The output file itself is never scanned.
func Collect(config Config) (*classes.Set, CollectStats, error) {
	outputPath, err := filepath.Abs(config.Output)
	if err != nil {
		return nil, CollectStats{}, fmt.Errorf("resolve output path: %w", err)
	}
	return collect(config, outputPath)
}

func collect(config Config, outputPath string) (*classes.Set, CollectStats, error) {
	logger := config.logger()
	f := fileFilter{exclude: outputPath}
	if config.RespectGitignore {
		f.gitignore = loadGitIgnore(logger)
	}

	var stats CollectStats
	all := classes.NewSet()

	kinds := []struct {
		name     string
		patterns []string
		extract  extractor
	}{
		{name: "css", patterns: config.CSSPatterns, extract: classes.FromCSS},
		{name: "html", patterns: config.HTMLPatterns, extract: classes.FromHTML},
	}

	for _, kind := range kinds {
		files, err := f.expand(kind.patterns, &stats)
		if err != nil {
			return nil, stats, err
		}

		for _, file := range files {
			found, err := extractFile(file, kind.extract)
			if err != nil {
				return nil, stats, fmt.Errorf("parse %s %s: %w", kind.name, file, err)
			}
			logger.Debug("scanned file", slog.String("file", file), slog.Int("classes", found.Len()))
			all.Union(found)
			stats.FilesScanned++
		}
	}

	logger.Debug("collected classes",
		slog.Int("files", stats.FilesScanned),
		slog.Int("skipped", stats.FilesSkipped),
		slog.Int("classes", all.Len()))

	return all, stats, nil
}

func extractFile(path string, extract extractor) (*classes.Set, error) {
	// #nosec G304 - path comes from trusted configuration
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return extract(bytes.NewReader(content))
}

// fileFilter decides which glob matches get scanned.
type fileFilter struct {
	exclude   string // Absolute output path
	gitignore *ignore.GitIgnore
}

// expand expands glob patterns to regular files, deduplicated per call.
func (f fileFilter) expand(patterns []string, stats *CollectStats) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		// Use doublestar for ** glob support
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if f.skip(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
		}
	}

	return files, nil
}

// skip reports whether a matched file must not be scanned.
func (f fileFilter) skip(path string) bool {
	if abs, err := filepath.Abs(path); err == nil && abs == f.exclude {
		return true
	}

	// Only relative paths are checked against the project .gitignore.
	if f.gitignore != nil && !filepath.IsAbs(path) {
		return f.gitignore.MatchesPath(path)
	}

	return false
}

// loadGitIgnore loads ./.gitignore. A missing file means nothing is ignored.
func loadGitIgnore(logger *slog.Logger) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(".gitignore")
	if err != nil {
		logger.Debug("no .gitignore loaded", slog.Any("err", err))
		return nil
	}
	return gi
}
