package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Example: `  # Show version
  traits version

  # Show version in JSON format
  traits version --output json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		versionInfo := map[string]string{
			"version":   version,
			"commit":    commit,
			"buildDate": buildDate,
			"goVersion": goVersion,
		}

		return render(cmd, versionInfo, func(w io.Writer) error {
			fmt.Fprintf(w, "traits version %s\n", version)
			if version != "dev" {
				fmt.Fprintf(w, "  commit:     %s\n", commit)
				fmt.Fprintf(w, "  built:      %s\n", buildDate)
				fmt.Fprintf(w, "  go version: %s\n", goVersion)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
