package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/traits"
)

// nodeSummary is one row of the nodes listing.
type nodeSummary struct {
	Kind     string `json:"kind" yaml:"kind"`
	Settings int    `json:"settings" yaml:"settings"`
	Inputs   int    `json:"inputs" yaml:"inputs"`
	Outputs  int    `json:"outputs" yaml:"outputs"`
}

// nodesCmd lists node kinds.
var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "List available node kinds",
	Example: `  # List all kinds
  traits nodes

  # Show a single kind
  traits nodes info threshold`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}

		schemas := reg.Schemas()
		rows := make([]nodeSummary, len(schemas))
		for i, s := range schemas {
			rows[i] = nodeSummary{Kind: s.Name, Settings: len(s.Settings), Inputs: len(s.Inputs), Outputs: len(s.Outputs)}
		}

		return render(cmd, rows, func(w io.Writer) error {
			fmt.Fprintf(w, "%-12s %8s %6s %7s\n", "KIND", "SETTINGS", "INPUTS", "OUTPUTS")
			for _, r := range rows {
				fmt.Fprintf(w, "%-12s %8d %6d %7d\n", r.Kind, r.Settings, r.Inputs, r.Outputs)
			}
			fmt.Fprintf(w, "\nTotal: %d node kinds\n", len(rows))
			fmt.Fprintln(w, "Use 'traits nodes info <kind>' for the full schema of a kind.")
			return nil
		})
	},
}

// nodesInfoCmd shows the schema of one kind.
var nodesInfoCmd = &cobra.Command{
	Use:   "info <kind>",
	Short: "Show the schema of a node kind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}
		schema, err := reg.Schema(args[0])
		if err != nil {
			return err
		}
		return render(cmd, schema, func(w io.Writer) error {
			return writeSchemaText(w, schema)
		})
	},
}

func init() {
	nodesCmd.AddCommand(nodesInfoCmd)
	rootCmd.AddCommand(nodesCmd)
}

func writeSchemaText(w io.Writer, schema traits.Function) error {
	fmt.Fprintf(w, "Kind: %s\n", schema.Name)

	fmt.Fprintln(w, "\nSettings:")
	if len(schema.Settings) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, name := range sortedKeys(schema.Settings) {
		st := schema.Settings[name]
		fmt.Fprintf(w, "  %-12s %s%s\n", name, st.Name, formatParams(st.Params))
	}

	for _, section := range []struct {
		title  string
		fields map[string]traits.Type
	}{
		{"Inputs", schema.Inputs},
		{"Outputs", schema.Outputs},
	} {
		fmt.Fprintf(w, "\n%s:\n", section.title)
		if len(section.fields) == 0 {
			fmt.Fprintln(w, "  (none)")
		}
		for _, name := range sortedKeys(section.fields) {
			fmt.Fprintf(w, "  %-12s %s\n", name, section.fields[name].Name)
		}
	}
	return nil
}

func formatParams(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, 0, len(params))
	for _, k := range sortedKeys(params) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, params[k]))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
