// Package mediaquery reads and writes breakpoint-organised media-query
// stylesheets.
package mediaquery

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"
)

// widthPattern is the only accepted breakpoint width form.
var widthPattern = regexp.MustCompile(`^[0-9]+px$`)

// Breakpoint is a named max-width threshold.
type Breakpoint struct {
	Label string // "mobile"
	Width string // "480px"
}

// Breakpoints keeps the order in which breakpoints were declared.
// Output blocks are emitted in this order.
type Breakpoints []Breakpoint

// Validate checks the label and width of a single breakpoint.
func (b Breakpoint) Validate() error {
	if strings.Contains(b.Label, "*/") {
		return fmt.Errorf("breakpoint %q: label must not contain \"*/\"", b.Label)
	}
	if !widthPattern.MatchString(b.Width) {
		return fmt.Errorf("breakpoint %q: width %q must be a pixel value like \"768px\"", b.Label, b.Width)
	}
	return nil
}

// Validate checks every breakpoint. An empty list is an error.
func (bs Breakpoints) Validate() error {
	if len(bs) == 0 {
		return errors.New("no breakpoints defined")
	}
	for _, b := range bs {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalJSON decodes a JSON object of label → width in document order.
func (bs *Breakpoints) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("breakpoints: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("breakpoints: expected an object of label to width")
	}

	var out Breakpoints
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("breakpoints: %w", err)
		}
		label, _ := tok.(string)

		var width string
		if err := dec.Decode(&width); err != nil {
			return fmt.Errorf("breakpoint %q: %w", label, err)
		}
		out = append(out, Breakpoint{Label: label, Width: width})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("breakpoints: %w", err)
	}

	*bs = out
	return nil
}

// UnmarshalYAML decodes a YAML mapping of label → width in document order.
func (bs *Breakpoints) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: breakpoints: expected a mapping of label to width", node.Line)
	}

	out := make(Breakpoints, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: breakpoint %q: width must be a string", value.Line, key.Value)
		}
		out = append(out, Breakpoint{Label: key.Value, Width: value.Value})
	}

	*bs = out
	return nil
}
