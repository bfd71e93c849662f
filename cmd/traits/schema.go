package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/traits"
)

var jsonSchema bool

// schemaCmd exports schemas.
var schemaCmd = &cobra.Command{
	Use:   "schema [kind]",
	Short: "Export node kind schemas",
	Long: `Export the schema of one node kind, or of every kind when none is given.
With --jsonschema the settings of the kind are exported as a draft-07 JSON Schema
document instead.`,
	Example: `  traits schema --output yaml
  traits schema clamp --output json
  traits schema counter --jsonschema`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}

		var schemas []traits.Function
		if len(args) == 1 {
			s, err := reg.Schema(args[0])
			if err != nil {
				return err
			}
			schemas = []traits.Function{s}
		} else {
			schemas = reg.Schemas()
		}

		if jsonSchema {
			docs := make(map[string]any, len(schemas))
			for _, s := range schemas {
				docs[s.Name] = traits.SettingsJSONSchema(s.Settings)
			}
			var v any = docs
			if len(args) == 1 {
				v = docs[args[0]]
			}
			return render(cmd, v, nil)
		}

		var v any = schemas
		if len(args) == 1 {
			v = schemas[0]
		}
		return render(cmd, v, func(w io.Writer) error {
			for i, s := range schemas {
				if i > 0 {
					fmt.Fprintln(w)
				}
				if err := writeSchemaText(w, s); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

func init() {
	schemaCmd.Flags().BoolVar(&jsonSchema, "jsonschema", false, "Export settings as JSON Schema")
	rootCmd.AddCommand(schemaCmd)
}
