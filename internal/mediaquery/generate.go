package mediaquery

import (
	"fmt"
	"strings"

	"github.com/yacobolo/mqscaffold/internal/classes"
)

// StubComment fills every generated rule.
const StubComment = "/* responsive styles here */"

// Options tunes stylesheet generation.
type Options struct {
	SortClasses bool // Emit new stubs alphabetically instead of discovery order
}

// BlockStat describes what Generate did for one breakpoint.
type BlockStat struct {
	Breakpoint Breakpoint
	Preserved  bool // Previous content was carried over
	Added      int  // New stub rules
}

// Generate renders one media-query block per breakpoint, in declaration
// order. Each block reproduces the existing content for its width and
// appends a stub rule for every class not already declared there.
//
// Breakpoints sharing a width both merge against the same existing block.
func Generate(all *classes.Set, breakpoints Breakpoints, existing Existing, opts Options) (string, []BlockStat) {
	names := all.Names()
	if opts.SortClasses {
		names = all.Sorted()
	}

	var b strings.Builder
	stats := make([]BlockStat, 0, len(breakpoints))

	for _, bp := range breakpoints {
		prev := existing[bp.Width]
		stat := BlockStat{Breakpoint: bp, Preserved: prev.Content != ""}

		fmt.Fprintf(&b, "/* %s (%s) */\n", bp.Label, bp.Width)
		fmt.Fprintf(&b, "@media (max-width: %s) {\n", bp.Width)

		if prev.Content != "" {
			b.WriteString(prev.Content)
			b.WriteByte('\n')
		}

		for _, name := range names {
			if prev.Classes.Has(name) {
				continue
			}
			fmt.Fprintf(&b, "  .%s {\n    %s\n  }\n", classes.Escape(name), StubComment)
			stat.Added++
		}

		b.WriteString("}\n\n")
		stats = append(stats, stat)
	}

	return b.String(), stats
}
