package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/traits"
)

// makeResult reports the outcome of constructing an instance.
type makeResult struct {
	Kind  string `json:"kind" yaml:"kind"`
	Ready bool   `json:"ready" yaml:"ready"`
	Phase string `json:"phase,omitempty" yaml:"phase,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// makeCmd constructs an instance from settings.
var makeCmd = &cobra.Command{
	Use:   "make <kind> <settings>",
	Short: "Construct a node instance from JSON settings",
	Example: `  traits make threshold '{"threshold": 5}'
  traits make counter '{"step": 200, "limit": 10}' --output json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}

		kind, settings := args[0], args[1]
		_, err = reg.Make(cmd.Context(), kind, settings)

		result := makeResult{Kind: kind, Ready: err == nil}
		var ce *traits.CreationError
		if errors.As(err, &ce) {
			result.Phase = string(ce.Phase)
			result.Error = ce.Err.Error()
		} else if err != nil {
			return err
		}

		if renderErr := render(cmd, result, func(w io.Writer) error {
			if result.Ready {
				fmt.Fprintf(w, "%s: ready\n", kind)
				return nil
			}
			fmt.Fprintf(w, "%s: %s failed: %s\n", kind, result.Phase, result.Error)
			return nil
		}); renderErr != nil {
			return renderErr
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(makeCmd)
}
