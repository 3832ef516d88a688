package catalog

import _ "embed"

//go:embed kickboxing.json
var defaultDocument []byte

// DefaultName is the name under which the built-in catalog is addressed.
const DefaultName = "kickboxing"

// Default returns the built-in kickboxing catalog.
func Default() (Catalog, error) {
	c, err := Parse(defaultDocument, FormatJSON)
	if err != nil {
		return Catalog{}, &LoadError{Path: DefaultName, Err: err}
	}
	return c, nil
}
