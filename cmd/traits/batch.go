package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/agentstation/traits/batch"
)

var (
	batchSettings    string
	batchConcurrency int
)

// batchCmd processes a JSON array of inputs.
var batchCmd = &cobra.Command{
	Use:   "batch <kind> <inputs.json>",
	Short: "Process a JSON array of inputs with a pool of nodes",
	Long: `Process every object of a JSON array with instances of one kind. Pass - to
read the array from stdin. With --concurrency above 1 the items are spread over
up to that many instances; outputs are printed in input order.`,
	Example: `  traits batch threshold readings.json --settings '{"threshold": 5}'
  cat readings.json | traits batch scale - -s '{"factor": 2, "offset": 0}' -c 4`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd, args[1])
		if err != nil {
			return err
		}

		reg, err := newRegistry()
		if err != nil {
			return err
		}
		schema, err := reg.Schema(args[0])
		if err != nil {
			return err
		}

		parsed, err := oj.Parse(data)
		if err != nil {
			return fmt.Errorf("parse inputs: %w", err)
		}
		list, ok := parsed.([]any)
		if !ok {
			return fmt.Errorf("inputs must be a JSON array, got %T", parsed)
		}

		items := make([]map[string]any, len(list))
		for i, raw := range list {
			obj, ok := raw.(map[string]any)
			if !ok {
				return fmt.Errorf("item %d: input must be a JSON object, got %T", i, raw)
			}
			if items[i], err = coerceValues(schema.Inputs, obj); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}

		p, err := batch.NewProcessor(reg, args[0], batchSettings, batch.WithConcurrency(batchConcurrency))
		if err != nil {
			return err
		}
		results, err := p.Process(cmd.Context(), items)
		if err != nil {
			return err
		}
		logger.Info(cmd.Context(), "batch processed", "kind", args[0], "items", len(items), "instances", p.Stats().News)

		return render(cmd, results, nil)
	},
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func init() {
	batchCmd.Flags().StringVarP(&batchSettings, "settings", "s", "{}", "Settings as a JSON object")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 1, "Maximum number of instances processing at once")
	rootCmd.AddCommand(batchCmd)
}
