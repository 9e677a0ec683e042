package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/mqscaffold"
	"github.com/yacobolo/mqscaffold/internal/report"
)

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
}

// resetFlags restores every flag of cmd and its children to its default,
// since rootCmd is shared between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the CLI with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("FORCE_COLOR", "")
	t.Setenv("GITHUB_ACTIONS", "")

	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// setupProject writes a config and sources into a fresh working directory.
func setupProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	for name, content := range files {
		require.NoError(t, os.MkdirAll(filepath.Dir(name), 0755))
		require.NoError(t, os.WriteFile(name, []byte(content), 0644))
	}
	return dir
}

func readFile(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	return string(data)
}

const projectConfig = `{
  "cssPath": "src/**/*.css",
  "htmlPaths": ["src/**/*.html"],
  "output": "src/responsive.css",
  "breakpoints": {"tablet": "768px", "mobile": "480px"}
}`

func TestRootCommandRunsScaffold(t *testing.T) {
	setupProject(t, map[string]string{
		"mqscaffold.config.json": projectConfig,
		"src/site.css":           ".card { padding: 1rem; }",
		"src/index.html":         `<div class="card hero"></div>`,
	})

	out, errOut, err := execute(t)
	require.NoError(t, err)
	assert.Equal(t, "[mq-scaffold] Media queries updated safely at src/responsive.css\n", out)
	assert.Empty(t, errOut)

	want := `/* tablet (768px) */
@media (max-width: 768px) {
  .card {
    /* responsive styles here */
  }
  .hero {
    /* responsive styles here */
  }
}

/* mobile (480px) */
@media (max-width: 480px) {
  .card {
    /* responsive styles here */
  }
  .hero {
    /* responsive styles here */
  }
}

`
	assert.Equal(t, want, readFile(t, "src/responsive.css"))
}

func TestRunCommandKeepsHandWrittenRules(t *testing.T) {
	setupProject(t, map[string]string{
		"mqscaffold.config.json": projectConfig,
		"src/site.css":           ".card {}",
	})

	_, _, err := execute(t, "run")
	require.NoError(t, err)

	edited := strings.Replace(readFile(t, "src/responsive.css"),
		"  .card {\n    /* responsive styles here */\n  }\n}\n\n/* mobile",
		"  .card {\n    padding: 0;\n  }\n}\n\n/* mobile", 1)
	require.NoError(t, os.WriteFile("src/responsive.css", []byte(edited), 0644))
	require.NoError(t, os.WriteFile("src/more.css", []byte(".extra {}"), 0644))

	_, _, err = execute(t, "scaffold")
	require.NoError(t, err)

	got := readFile(t, "src/responsive.css")
	assert.Contains(t, got, "  .card {\n    padding: 0;\n  }\n  .extra {")
	assert.Equal(t, 2, strings.Count(got, "  .extra {"))
}

func TestRunCommandQuiet(t *testing.T) {
	setupProject(t, map[string]string{
		"mqscaffold.config.json": projectConfig,
		"src/site.css":           ".a {}",
	})

	out, errOut, err := execute(t, "--quiet")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, errOut)
	assert.FileExists(t, "src/responsive.css")
}

func TestRunCommandVerbose(t *testing.T) {
	setupProject(t, map[string]string{
		"mqscaffold.config.json": projectConfig,
		"src/site.css":           ".a {}",
	})

	out, errOut, err := execute(t, "run", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "Files scanned: 1 (0 skipped)")
	assert.Contains(t, out, "tablet (768px): 1 new rule")
	assert.Contains(t, out, "Media queries updated safely at src/responsive.css")
	assert.Contains(t, errOut, "level=DEBUG")
}

func TestRunCommandMissingBreakpointsLeavesOutputUntouched(t *testing.T) {
	setupProject(t, map[string]string{
		"mqscaffold.config.json": `{"cssPath": "src/**/*.css", "htmlPaths": [], "output": "src/responsive.css"}`,
		"src/site.css":           ".a {}",
		"src/responsive.css":     "sentinel",
	})

	_, _, err := execute(t)
	require.ErrorIs(t, err, mqscaffold.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "breakpoints")
	assert.Equal(t, "sentinel", readFile(t, "src/responsive.css"))
}

func TestRunCommandMissingConfigFile(t *testing.T) {
	setupProject(t, nil)

	_, _, err := execute(t)
	require.ErrorIs(t, err, mqscaffold.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "mqscaffold.config.json")
}

func TestRunCommandExplicitConfig(t *testing.T) {
	setupProject(t, map[string]string{
		"config/mq.yaml": `
cssPath: "src/*.css"
htmlPaths: []
output: out/mq.css
breakpoints:
  phone: 375px
`,
		"src/a.css": ".a {}",
	})

	_, _, err := execute(t, "--config", "config/mq.yaml")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, "out/mq.css"), "/* phone (375px) */\n@media (max-width: 375px) {\n  .a {")
}

func TestRunCommandDryRun(t *testing.T) {
	setupProject(t, map[string]string{
		"mqscaffold.config.json": projectConfig,
		"src/site.css":           ".a {}",
	})

	out, _, err := execute(t, "--dry-run")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "/* tablet (768px) */\n@media (max-width: 768px) {\n  .a {"))
	assert.NoFileExists(t, "src/responsive.css")
}

func TestRunCommandCheck(t *testing.T) {
	setupProject(t, map[string]string{
		"mqscaffold.config.json": projectConfig,
		"src/site.css":           ".a {}",
	})

	_, _, err := execute(t, "run", "--check")
	require.ErrorIs(t, err, mqscaffold.ErrOutOfDate)
	assert.NoFileExists(t, "src/responsive.css")

	_, _, err = execute(t)
	require.NoError(t, err)

	out, _, err := execute(t, "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "Media queries are up to date at src/responsive.css")
}

func TestRunCommandReportsDroppedContent(t *testing.T) {
	setupProject(t, map[string]string{
		"mqscaffold.config.json": projectConfig,
		"src/site.css":           ".a {}",
		"src/responsive.css":     ".stray { color: red; }\n",
	})

	_, errOut, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, errOut, "[mq-scaffold] Warning: line 1:")
	assert.Contains(t, errOut, ".stray")
}

func TestRunCommandRejectsArgs(t *testing.T) {
	setupProject(t, map[string]string{"mqscaffold.config.json": projectConfig})

	_, _, err := execute(t, "run", "extra")
	require.Error(t, err)
}

func TestResolveConfigPath(t *testing.T) {
	setupProject(t, nil)
	resetFlags(rootCmd)
	assert.Equal(t, defaultConfigFile, resolveConfigPath(rootCmd))

	require.NoError(t, rootCmd.PersistentFlags().Set("config", "custom.yaml"))
	t.Cleanup(func() { resetFlags(rootCmd) })
	assert.Equal(t, "custom.yaml", resolveConfigPath(rootCmd))
}

func TestInitCommand(t *testing.T) {
	setupProject(t, map[string]string{"src/a.css": ".a {}"})

	out, _, err := execute(t, "init")
	require.NoError(t, err)
	assert.Equal(t, "Created mqscaffold.config.json\n", out)

	_, _, err = execute(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "init", "--force")
	require.NoError(t, err)

	// The generated config is immediately usable.
	_, _, err = execute(t)
	require.NoError(t, err)
	got := readFile(t, "src/responsive.css")
	assert.Contains(t, got, "/* desktop (1200px) */")
	assert.Less(t, strings.Index(got, "desktop"), strings.Index(got, "mobile"))
}

func TestInitCommandYAML(t *testing.T) {
	setupProject(t, nil)

	_, _, err := execute(t, "init", "--config", "mqscaffold.yaml")
	require.NoError(t, err)

	require.NoError(t, loadConfigFromPath("mqscaffold.yaml"))
	config, err := buildConfig()
	require.NoError(t, err)
	assert.Equal(t, "src/responsive.css", config.Output)
	assert.Len(t, config.Breakpoints, 3)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "mqscaffold dev\n", out)
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "mqscaffold")
}

func TestRunCommandJSONReport(t *testing.T) {
	setupProject(t, map[string]string{
		"mqscaffold.config.json": projectConfig,
		"src/site.css":           ".a {}",
	})

	out, _, err := execute(t, "--output-format", "json")
	require.NoError(t, err)

	var got report.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Written)
	assert.Equal(t, "src/responsive.css", got.Output)
	assert.Equal(t, 2, got.Summary.StubsAdded)
	assert.Len(t, got.Blocks, 2)

	out, _, err = execute(t, "--check", "--output-format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Changed)
	assert.False(t, got.Written)
}

func TestRunCommandUnknownOutputFormat(t *testing.T) {
	setupProject(t, map[string]string{
		"mqscaffold.config.json": projectConfig,
		"src/site.css":           ".a {}",
	})

	_, _, err := execute(t, "--output-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
	assert.NoFileExists(t, "src/responsive.css")
}

func TestErrorReporterHonorsColorFlag(t *testing.T) {
	setupProject(t, nil)

	_, _, err := execute(t)
	require.Error(t, err)
	var errOut bytes.Buffer
	assert.False(t, errorReporter(&errOut).UseColors())

	_, _, err = execute(t, "--color")
	require.Error(t, err)
	r := errorReporter(&errOut)
	assert.True(t, r.UseColors())

	r.Error(err)
	assert.Contains(t, errOut.String(), "mqscaffold.config.json")
}
