package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/agentstation/traits/manifest"
)

var runConcurrency int

// instanceStatus reports one built instance.
type instanceStatus struct {
	Name string `json:"name" yaml:"name"`
	Kind string `json:"kind" yaml:"kind"`
}

// runCmd builds every instance of a manifest.
var runCmd = &cobra.Command{
	Use:   "run <manifest.yaml>",
	Short: "Build every node instance of a manifest",
	Example: `  traits run sensors.yaml
  traits run sensors.yaml --concurrency 2 --output yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := manifest.ParseFile(args[0])
		if err != nil {
			return err
		}
		logger.Info(cmd.Context(), "manifest loaded", "name", m.Name, "nodes", len(m.Nodes))

		reg, err := newRegistry()
		if err != nil {
			return err
		}
		nodes, err := m.Build(cmd.Context(), reg, manifest.WithConcurrency(runConcurrency))
		if err != nil {
			return err
		}

		status := make([]instanceStatus, 0, len(nodes))
		for name, p := range nodes {
			status = append(status, instanceStatus{Name: name, Kind: p.Kind()})
		}
		sort.Slice(status, func(i, j int) bool { return status[i].Name < status[j].Name })

		return render(cmd, status, func(w io.Writer) error {
			fmt.Fprintf(w, "%s: %d nodes ready\n", m.Name, len(status))
			for _, s := range status {
				fmt.Fprintf(w, "  %-16s %s\n", s.Name, s.Kind)
			}
			return nil
		})
	},
}

func init() {
	runCmd.Flags().IntVar(&runConcurrency, "concurrency", 0, "Maximum number of instances built at once (0 = GOMAXPROCS)")
	rootCmd.AddCommand(runCmd)
}
