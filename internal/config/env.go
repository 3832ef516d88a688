package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// EnvCatalog names the environment variable holding a catalog reference.
const EnvCatalog = "SHADOW_CATALOG"

// LoadEnv loads variables from a .env file at path without overriding the
// existing environment. A missing file is not an error.
func LoadEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// CatalogFromEnv returns the catalog reference from the environment, if set.
func CatalogFromEnv() (string, bool) {
	v, ok := os.LookupEnv(EnvCatalog)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
