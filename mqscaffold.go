// Package mqscaffold scaffolds breakpoint media queries for every CSS class
// a project uses.
//
// It collects class names from CSS selectors and HTML class attributes,
// then writes one max-width media query per configured breakpoint with an
// empty rule for each class. Rules already written into the output file are
// kept verbatim, so the tool can be re-run as the project grows.
//
// # Library
//
//	config := mqscaffold.Config{
//		CSSPatterns:  []string{"src/**/*.css"},
//		HTMLPatterns: []string{"src/**/*.html"},
//		Output:       "src/responsive.css",
//		Breakpoints: mqscaffold.Breakpoints{
//			{Label: "tablet", Width: "768px"},
//			{Label: "mobile", Width: "480px"},
//		},
//	}
//	result, err := mqscaffold.Run(config)
//
// Plan computes the same result without writing, and Check reports
// ErrOutOfDate when the output file would change.
//
// # Output format
//
//	/* mobile (480px) */
//	@media (max-width: 480px) {
//	  .card { padding: 0; }
//	  .nav {
//	    /* responsive styles here */
//	  }
//	}
//
// A block is recovered on the next run only when its header comment is
// directly followed by its media query. Anything else in the output file is
// reported in Result.Warnings and dropped by the next write.
//
// # CLI Tool
//
//	go install github.com/yacobolo/mqscaffold/cmd/mqscaffold@latest
package mqscaffold
