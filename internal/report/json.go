package report

import (
	"encoding/json"
	"io"

	"github.com/yacobolo/mqscaffold"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version    string      `json:"version"`
	Output     string      `json:"output"`
	Changed    bool        `json:"changed"`
	Written    bool        `json:"written"`
	Summary    JSONSummary `json:"summary"`
	Blocks     []JSONBlock `json:"blocks"`
	Warnings   []string    `json:"warnings"`
	Stylesheet string      `json:"stylesheet,omitempty"` // Dry runs only
}

// JSONSummary contains run-wide counts
type JSONSummary struct {
	FilesScanned    int `json:"files_scanned"`
	FilesSkipped    int `json:"files_skipped"`
	ClassesFound    int `json:"classes_found"`
	BlocksRecovered int `json:"blocks_recovered"`
	StubsAdded      int `json:"stubs_added"`
}

// JSONBlock describes one generated breakpoint block
type JSONBlock struct {
	Label     string `json:"label"`
	Width     string `json:"width"`
	Added     int    `json:"added"`
	Preserved bool   `json:"preserved"`
}

// WriteJSON writes the result as indented JSON. The stylesheet is included
// when withStylesheet is set.
func WriteJSON(w io.Writer, result *mqscaffold.Result, version string, withStylesheet bool) error {
	output := buildJSONOutput(result, version)
	if withStylesheet {
		output.Stylesheet = result.Stylesheet
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func buildJSONOutput(result *mqscaffold.Result, version string) JSONOutput {
	blocks := make([]JSONBlock, 0, len(result.Blocks))
	for _, b := range result.Blocks {
		blocks = append(blocks, JSONBlock{
			Label:     b.Breakpoint.Label,
			Width:     b.Breakpoint.Width,
			Added:     b.Added,
			Preserved: b.Preserved,
		})
	}

	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return JSONOutput{
		Version: version,
		Output:  result.Output,
		Changed: result.Changed(),
		Written: result.Written,
		Summary: JSONSummary{
			FilesScanned:    result.Stats.FilesScanned,
			FilesSkipped:    result.Stats.FilesSkipped,
			ClassesFound:    result.ClassesFound,
			BlocksRecovered: result.BlocksRecovered,
			StubsAdded:      result.StubsAdded(),
		},
		Blocks:   blocks,
		Warnings: warnings,
	}
}
