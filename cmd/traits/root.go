package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agentstation/traits"
	"github.com/agentstation/traits/builtin"
	"github.com/agentstation/traits/logging"
	"github.com/agentstation/traits/middleware"
	"github.com/agentstation/traits/registry"
)

var (
	// Global flags.
	verbose bool
	output  string
	strict  bool

	logger traits.Logger = logging.Nop()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "traits",
	Short: "Inspect and run typed processing nodes",
	Long: `traits inspects the built-in node kinds, exports their schemas and
constructs or runs node instances from JSON settings and YAML manifests.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch output {
		case textFormat, jsonFormat, yamlFormat:
		default:
			return fmt.Errorf("unknown output format %q (want text, json or yaml)", output)
		}

		zl := zap.NewNop()
		if verbose {
			var err error
			if zl, err = zap.NewDevelopment(); err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
		}
		logger = logging.NewZap(zl)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", textFormat, "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Validate settings against their JSON Schema before construction")

	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// newRegistry returns a registry holding every built-in kind, configured
// from the global flags.
func newRegistry() (*registry.Registry, error) {
	opts := []registry.Option{registry.WithLogger(logger)}
	if strict {
		opts = append(opts, registry.WithSchemaValidation())
	}
	if verbose {
		opts = append(opts, registry.WithMiddleware(middleware.Logging(logger)))
	}

	reg := registry.New(opts...)
	if err := builtin.RegisterAll(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
