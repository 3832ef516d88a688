package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/shadow/internal/catalog"
	"github.com/verte-zerg/shadow/internal/config"
	"github.com/verte-zerg/shadow/internal/loader"
	"github.com/verte-zerg/shadow/internal/report"
	"github.com/verte-zerg/shadow/internal/store"
)

var importName string

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and manage drill catalogs",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the selected catalog",
		Args:  cobra.NoArgs,
		RunE:  runCatalogShowCmd,
	})

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON or TOML catalog into the library",
		Args:  cobra.ExactArgs(1),
		RunE:  runCatalogImportCmd,
	}
	importCmd.Flags().StringVar(&importName, "name", "", "library name (default: file name)")
	cmd.AddCommand(importCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List catalogs in the library",
		Args:  cobra.NoArgs,
		RunE:  runCatalogListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a catalog from the library",
		Args:  cobra.ExactArgs(1),
		RunE:  runCatalogDeleteCmd,
	})
	return cmd
}

func runCatalogShowCmd(cmd *cobra.Command, _ []string) error {
	setup, err := resolveSession(cmd)
	if err != nil {
		return err
	}
	if err := report.RenderCatalog(cmd.OutOrStdout(), setup.catalog); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runCatalogImportCmd(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, ok := catalog.FormatForExt(filepath.Ext(path))
	if !ok {
		return fmt.Errorf("unsupported catalog file %q (want .json or .toml)", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	cat, err := catalog.Parse(data, format)
	if err != nil {
		return &catalog.LoadError{Path: path, Err: err}
	}

	name := strings.TrimSpace(importName)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	st, err := store.Open(config.DefaultLibraryPath())
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close library: %v\n", cerr)
		}
	}()

	if err := st.SaveCatalog(commandContext(cmd), name, cat); err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}
	logErrf("Imported %s as %q (%d exercises, %d drills)\n", path, name, len(cat.Exercises), cat.DrillCount())
	return nil
}

func runCatalogListCmd(cmd *cobra.Command, _ []string) error {
	path := config.DefaultLibraryPath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			logErrf("No catalogs imported. Import with: shadow catalog import <file>\n")
			return nil
		}
		return fmt.Errorf("failed to stat library: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close library: %v\n", cerr)
		}
	}()

	summaries, err := st.ListCatalogs(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list catalogs: %w", err)
	}
	if err := report.RenderLibrary(cmd.OutOrStdout(), summaries); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runCatalogDeleteCmd(cmd *cobra.Command, args []string) error {
	path := config.DefaultLibraryPath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("catalog %q is not in the library", args[0])
		}
		return fmt.Errorf("failed to stat library: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close library: %v\n", cerr)
		}
	}()

	if err := st.DeleteCatalog(commandContext(cmd), args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("catalog %q is not in the library", args[0])
		}
		return fmt.Errorf("failed to delete catalog: %w", err)
	}
	logErrf("Deleted %q\n", args[0])
	return nil
}

// libraryLoader returns a loader bound to the default library.
func libraryLoader() loader.Loader {
	return loader.Loader{LibraryPath: config.DefaultLibraryPath()}
}
