package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	processSettings string
	processInput    string
	processTimes    int
)

// processCmd constructs an instance and runs it on one input.
var processCmd = &cobra.Command{
	Use:   "process <kind>",
	Short: "Construct a node and process one input",
	Long: `Construct a node from --settings and process --input with it. Input members
are converted to the static types named by the kind's input schema, so
'{"val": 13}' reaches a uint32 input as uint32(13).`,
	Example: `  traits process threshold --settings '{"threshold": 5}' --input '{"val": 13}'
  traits process counter --settings '{"step": 2, "limit": 5}' --times 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if processTimes < 1 {
			return errors.New("--times must be at least 1")
		}

		reg, err := newRegistry()
		if err != nil {
			return err
		}
		schema, err := reg.Schema(args[0])
		if err != nil {
			return err
		}

		p, err := reg.Make(cmd.Context(), args[0], processSettings)
		if err != nil {
			return err
		}

		results := make([]map[string]any, 0, processTimes)
		for i := 0; i < processTimes; i++ {
			values, err := coerceInput(schema.Inputs, processInput)
			if err != nil {
				return err
			}
			out, err := p.Process(cmd.Context(), values)
			if err != nil {
				return fmt.Errorf("call %d: %w", i+1, err)
			}
			results = append(results, out)
		}

		var v any = results
		if processTimes == 1 {
			v = results[0]
		}
		return render(cmd, v, nil)
	},
}

func init() {
	processCmd.Flags().StringVarP(&processSettings, "settings", "s", "{}", "Settings as a JSON object")
	processCmd.Flags().StringVarP(&processInput, "input", "i", "{}", "Input values as a JSON object")
	processCmd.Flags().IntVarP(&processTimes, "times", "n", 1, "Number of times to process the input")
	rootCmd.AddCommand(processCmd)
}
