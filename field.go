package traits

import (
	"fmt"
)

// FieldOption customizes a field declared in a settings, input or output table.
type FieldOption func(*fieldOptions)

type fieldOptions struct {
	renames []string
}

// Rename overrides the external name of a field. The default external name
// is the identifier passed when declaring the field. A field accepts at most
// one Rename.
func Rename(name string) FieldOption {
	return func(o *fieldOptions) {
		o.renames = append(o.renames, name)
	}
}

// resolveName applies field options to a declared identifier.
// Declaration mistakes panic since they are programming errors.
func resolveName(ident string, opts []FieldOption) string {
	var o fieldOptions
	for _, opt := range opts {
		opt(&o)
	}
	switch len(o.renames) {
	case 0:
	case 1:
		ident = o.renames[0]
	default:
		panic(fmt.Sprintf("traits: multiple name overrides on field %q", ident))
	}
	if ident == "" {
		panic("traits: field name must not be empty")
	}
	return ident
}

// checkUnique panics if two fields of one table share an external name.
func checkUnique(table string, names []string) {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			panic(fmt.Sprintf("traits: duplicate field %q in %s", n, table))
		}
		seen[n] = struct{}{}
	}
}
