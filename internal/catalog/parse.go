package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Format is a catalog document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatForExt maps a file extension to a document format.
func FormatForExt(ext string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		return FormatJSON, true
	case "toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// Parse decodes and validates a catalog document.
func Parse(data []byte, format Format) (Catalog, error) {
	var c Catalog
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&c); err != nil {
			return Catalog{}, fmt.Errorf("failed to decode json: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &c); err != nil {
			return Catalog{}, fmt.Errorf("failed to decode toml: %w", err)
		}
	default:
		return Catalog{}, fmt.Errorf("unsupported catalog format %q", format)
	}
	if err := Validate(c); err != nil {
		return Catalog{}, err
	}
	return c, nil
}
