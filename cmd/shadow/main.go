// Package main provides the CLI entrypoint for shadow.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/shadow/internal/catalog"
	"github.com/verte-zerg/shadow/internal/config"
	"github.com/verte-zerg/shadow/internal/scheduler"
	"github.com/verte-zerg/shadow/internal/session"
	"github.com/verte-zerg/shadow/internal/tui"
)

const (
	defaultTickMs = 100
	envFile       = ".env"
)

var (
	sessionCatalog  string
	sessionDuration float64
	sessionPace     float64
	sessionDrills   []string
	sessionTickMs   int
	sessionSeed     int64
	debugLog        string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "shadow",
		Short:         "Shadowboxing drill caller",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runSessionCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&sessionCatalog, "catalog", "", "catalog file, library path or library name (default: built-in)")
	flags.Float64Var(&sessionDuration, "duration", 0, "round duration in minutes (must be listed in the catalog)")
	flags.Float64Var(&sessionPace, "pace", 0, "seconds per combo (must be listed in the catalog)")
	flags.StringArrayVar(&sessionDrills, "drill", nil, "exercise to preselect (repeatable)")
	flags.IntVar(&sessionTickMs, "tick-ms", defaultTickMs, "progress update interval in milliseconds")
	flags.Int64Var(&sessionSeed, "seed", 0, "random seed (0: time based)")
	flags.StringVar(&debugLog, "debug-log", "", "write debug log to file")

	rootCmd.AddCommand(newCallCmd())
	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// sessionSetup is the resolved input for a drill session.
type sessionSetup struct {
	catalog   catalog.Catalog
	duration  float64
	pace      float64
	exercises []int
	cadence   time.Duration
	source    scheduler.Source
}

func resolveSession(cmd *cobra.Command) (sessionSetup, error) {
	if err := config.LoadEnv(envFile); err != nil {
		return sessionSetup{}, err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return sessionSetup{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "catalog", &sessionCatalog, fileCfg.Session.Catalog)
	if !cmd.Flags().Changed("catalog") {
		if ref, ok := config.CatalogFromEnv(); ok {
			sessionCatalog = ref
		}
	}
	applyFloatConfig(cmd, "duration", &sessionDuration, fileCfg.Session.Duration)
	applyFloatConfig(cmd, "pace", &sessionPace, fileCfg.Session.Pace)
	applyStringsConfig(cmd, "drill", &sessionDrills, fileCfg.Session.Drills)
	applyIntConfig(cmd, "tick-ms", &sessionTickMs, fileCfg.Session.TickMs)
	applyInt64Config(cmd, "seed", &sessionSeed, fileCfg.Session.Seed)

	if sessionTickMs <= 0 {
		return sessionSetup{}, fmt.Errorf("--tick-ms must be > 0")
	}

	cat, err := libraryLoader().Load(commandContext(cmd), sessionCatalog)
	if err != nil {
		return sessionSetup{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	if err := validateDuration(cat, sessionDuration); err != nil {
		return sessionSetup{}, err
	}
	if err := validatePace(cat, sessionPace); err != nil {
		return sessionSetup{}, err
	}
	exercises, err := resolveDrills(cat, sessionDrills)
	if err != nil {
		return sessionSetup{}, err
	}

	return sessionSetup{
		catalog:   cat,
		duration:  sessionDuration,
		pace:      sessionPace,
		exercises: exercises,
		cadence:   time.Duration(sessionTickMs) * time.Millisecond,
		source:    scheduler.NewSource(sessionSeed),
	}, nil
}

// applyTo copies the preset choices into an idle controller.
func (s sessionSetup) applyTo(ctrl *session.Controller) error {
	if s.duration > 0 {
		if err := ctrl.SetDuration(s.duration); err != nil {
			return err
		}
	}
	if s.pace > 0 {
		if err := ctrl.SetPace(s.pace); err != nil {
			return err
		}
	}
	for _, idx := range s.exercises {
		if err := ctrl.Toggle(idx, true); err != nil {
			return fmt.Errorf("failed to select exercise: %w", err)
		}
	}
	return nil
}

func runSessionCmd(cmd *cobra.Command, _ []string) error {
	setup, err := resolveSession(cmd)
	if err != nil {
		return err
	}

	closeLog, err := setupDebugLog()
	if err != nil {
		return err
	}
	defer closeLog()

	model, err := tui.NewModel(setup.catalog, tui.Initial{
		Duration:  setup.duration,
		Pace:      setup.pace,
		Exercises: setup.exercises,
	}, setup.source, setup.cadence)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// setupDebugLog routes the std logger to --debug-log, or discards it.
func setupDebugLog() (func(), error) {
	if debugLog == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(debugLog, "shadow")
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close debug log: %v\n", cerr)
		}
	}, nil
}

func validateDuration(cat catalog.Catalog, minutes float64) error {
	if minutes == 0 {
		return nil
	}
	for _, p := range cat.PeriodsInMin {
		if p == minutes {
			return nil
		}
	}
	return fmt.Errorf("--duration must be one of: %s", joinNumbers(cat.SortedPeriods()))
}

func validatePace(cat catalog.Catalog, seconds float64) error {
	if seconds == 0 {
		return nil
	}
	values := make([]float64, 0, len(cat.Paces))
	for _, p := range cat.PacesSlowestFirst() {
		if p.TimeoutInSec == seconds {
			return nil
		}
		values = append(values, p.TimeoutInSec)
	}
	return fmt.Errorf("--pace must be one of: %s", joinNumbers(values))
}

func resolveDrills(cat catalog.Catalog, names []string) ([]int, error) {
	indices := make([]int, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		idx, ok := cat.ExerciseIndex(name)
		if !ok {
			available := make([]string, 0, len(cat.Exercises))
			for _, ex := range cat.Exercises {
				available = append(available, ex.Name)
			}
			return nil, fmt.Errorf("unknown drill %q (available: %s)", name, strings.Join(available, ", "))
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

func joinNumbers(values []float64) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, catalog.FormatNumber(v))
	}
	return strings.Join(parts, ", ")
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# shadow configuration
# Uncomment a value to enable it. CLI flags override config values.
# %s in the environment (or .env) overrides the catalog below.

[session]
# catalog = %q       # Catalog file, library path or library name
# duration = 3              # Round duration in minutes
# pace = 3                  # Seconds per combo
# drills = ["Punches"]      # Exercises to preselect
# tick-ms = %d             # Progress update interval in milliseconds
# seed = 0                  # Random seed (0: time based)
`,
		config.EnvCatalog,
		catalog.DefaultName,
		defaultTickMs,
	)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringsConfig(cmd *cobra.Command, name string, target *[]string, value []string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), value...)
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
