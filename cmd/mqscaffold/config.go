package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/yacobolo/mqscaffold"
)

const (
	defaultConfigFile = "mqscaffold.config.json"
	envPrefix         = "MQSCAFFOLD_"
)

var (
	k = koanf.New(".")

	// breakpoints keeps declaration order, which koanf's flattened maps lose.
	breakpoints    mqscaffold.Breakpoints
	hasBreakpoints bool
)

// envKeys maps MQSCAFFOLD_* suffixes to config keys.
var envKeys = map[string]string{
	"CSS_PATH":          "cssPath",
	"OUTPUT":            "output",
	"VERBOSE":           "verbose",
	"RESPECT_GITIGNORE": "respectGitignore",
	"SORT_CLASSES":      "sortClasses",
}

var requiredKeys = []string{"cssPath", "htmlPaths", "output", "breakpoints"}

// loadConfig loads configuration with precedence: flags > env > file.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	if err := loadConfigFromPath(resolveConfigPath(cmd)); err != nil {
		return err
	}

	// CLI flags (highest precedence, only flags that were explicitly set)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}
	return nil
}

// resolveConfigPath returns the --config value when set, otherwise the
// default file in the working directory, otherwise the one in the install
// root (the parent of the directory holding the executable).
func resolveConfigPath(cmd *cobra.Command) string {
	if f := cmd.Flag("config"); f != nil && f.Changed {
		return f.Value.String()
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(filepath.Dir(exe)), defaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return defaultConfigFile
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	k = koanf.New(".")
	breakpoints, hasBreakpoints = nil, false

	isYAML := isYAMLPath(configPath)
	var parser koanf.Parser = kjson.Parser()
	if isYAML {
		parser = kyaml.Parser()
	}

	// 1. Config file, required
	provider := file.Provider(configPath)
	if err := k.Load(provider, parser); err != nil {
		return fmt.Errorf("%w: missing or invalid %s: %w", mqscaffold.ErrInvalidConfig, configPath, err)
	}

	raw, err := provider.ReadBytes()
	if err != nil {
		return fmt.Errorf("%w: reading %s: %w", mqscaffold.ErrInvalidConfig, configPath, err)
	}
	if err := decodeBreakpoints(raw, isYAML); err != nil {
		return fmt.Errorf("%w: %s: %w", mqscaffold.ErrInvalidConfig, configPath, err)
	}

	// 2. Environment variables (MQSCAFFOLD_* prefix)
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		// MQSCAFFOLD_OUTPUT -> output
		// MQSCAFFOLD_CSS_PATH -> cssPath
		// unknown suffixes map to "" and are skipped
		return envKeys[strings.TrimPrefix(s, envPrefix)]
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// decodeBreakpoints re-reads the breakpoints mapping in document order.
func decodeBreakpoints(raw []byte, isYAML bool) error {
	var doc struct {
		Breakpoints *mqscaffold.Breakpoints `json:"breakpoints" yaml:"breakpoints"`
	}

	var err error
	if isYAML {
		err = yaml.Unmarshal(raw, &doc)
	} else {
		err = json.Unmarshal(raw, &doc)
	}
	if err != nil {
		return err
	}

	if doc.Breakpoints != nil {
		breakpoints = *doc.Breakpoints
		hasBreakpoints = true
	}
	return nil
}

// buildConfig constructs the library's Config struct from koanf state.
func buildConfig() (mqscaffold.Config, error) {
	var missing []string
	for _, key := range requiredKeys {
		present := k.Exists(key)
		if key == "breakpoints" {
			present = hasBreakpoints
		}
		if !present {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return mqscaffold.Config{}, fmt.Errorf(
			"%w: make sure 'cssPath', 'htmlPaths', 'output', and 'breakpoints' are defined (missing %s)",
			mqscaffold.ErrInvalidConfig, strings.Join(missing, ", "))
	}

	config := mqscaffold.Config{
		CSSPatterns:      stringList("cssPath"),
		HTMLPatterns:     stringList("htmlPaths"),
		Output:           k.String("output"),
		Breakpoints:      breakpoints,
		RespectGitignore: k.Bool("respectGitignore"),
		SortClasses:      k.Bool("sortClasses"),
	}
	if err := config.Validate(); err != nil {
		return mqscaffold.Config{}, err
	}
	return config, nil
}

// stringList reads a key holding either one pattern or a list of patterns.
func stringList(key string) []string {
	switch v := k.Get(key).(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, "")
			}
		}
		return out
	}
	return nil
}

// newLogger returns a text logger at Warn, or Debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).With("app", "mqscaffold")
}
