package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default mqscaffold.config.json",
	Long: `Create a configuration file with sensible defaults. The file is written
to the --config path, mqscaffold.config.json unless set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path, _ := cmd.Flags().GetString("config")

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		content := defaultConfig
		if isYAMLPath(path) {
			content = defaultYAMLConfig
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

const defaultConfig = `{
  "cssPath": "src/**/*.css",
  "htmlPaths": ["src/**/*.html"],
  "output": "src/responsive.css",
  "breakpoints": {
    "desktop": "1200px",
    "tablet": "768px",
    "mobile": "480px"
  },
  "respectGitignore": true,
  "sortClasses": false
}
`

const defaultYAMLConfig = `# mqscaffold configuration
cssPath: "src/**/*.css"
htmlPaths:
  - "src/**/*.html"
output: src/responsive.css

# One block per entry, written in this order.
breakpoints:
  desktop: 1200px
  tablet: 768px
  mobile: 480px

respectGitignore: true
sortClasses: false
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
