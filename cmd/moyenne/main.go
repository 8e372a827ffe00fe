// Package main provides the CLI entrypoint for moyenne.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/moyenne/internal/catalog"
	"github.com/verte-zerg/moyenne/internal/config"
	"github.com/verte-zerg/moyenne/internal/logging"
	"github.com/verte-zerg/moyenne/internal/model"
	"github.com/verte-zerg/moyenne/internal/report"
	"github.com/verte-zerg/moyenne/internal/store"
	"github.com/verte-zerg/moyenne/internal/tui"
)

const (
	minGaugeTermWidth = 100
	defaultGaugeWidth = 10
)

var (
	rootTDWeight float64
	rootScale    float64
	rootDBPath   string
	rootLogLevel string

	setTD   string
	setExam string

	resetYes bool
)

type settings struct {
	grading  model.Grading
	dbPath   string
	logLevel zerolog.Level
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "moyenne",
		Short:         "Weighted grade average calculator",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTUICmd,
	}

	rootCmd.PersistentFlags().Float64Var(&rootTDWeight, "td-weight", model.DefaultTDWeight, "TD share of a module mark in percent (0-100)")
	rootCmd.PersistentFlags().Float64Var(&rootScale, "scale", model.DefaultScale, "maximum mark")
	rootCmd.PersistentFlags().StringVar(&rootDBPath, "db", "", "path to the SQLite database")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newSetCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newModulesCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := logging.OpenFile(config.DefaultLogPath(), s.logLevel)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeLog(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()

	st, err := store.Open(s.dbPath, logging.Component(log, "store"))
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	m := tui.NewModel(st, catalog.Modules(), s.grading, logging.Component(log, "tui"))
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print marks and the overall average",
		Args:  cobra.NoArgs,
		RunE:  runShowCmd,
	}
}

func runShowCmd(cmd *cobra.Command, _ []string) error {
	s, st, err := openForCmd(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	r := report.Build(st.Load(context.Background()), catalog.Modules(), s.grading)
	opts := report.Options{Color: isTerminal(os.Stdout), GaugeWidth: gaugeWidth(os.Stdout)}
	if err := report.Render(cmd.OutOrStdout(), r, opts); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <module>",
		Short: "Set the raw TD and/or exam mark of a module",
		Args:  cobra.ExactArgs(1),
		RunE:  runSetCmd,
	}
	cmd.Flags().StringVar(&setTD, "td", "", "TD mark (empty to clear)")
	cmd.Flags().StringVar(&setExam, "exam", "", "exam mark (empty to clear)")
	return cmd
}

func runSetCmd(cmd *cobra.Command, args []string) error {
	mod, ok := catalog.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown module %q (available: %s)", args[0], strings.Join(catalog.IDs(), ", "))
	}
	tdChanged := cmd.Flags().Changed("td")
	examChanged := cmd.Flags().Changed("exam")
	if !tdChanged && !examChanged {
		return fmt.Errorf("nothing to set: pass --td and/or --exam")
	}

	s, st, err := openForCmd(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	state := st.Load(ctx)
	if tdChanged {
		state.Set(mod.ID, model.KindTD, strings.TrimSpace(setTD))
	}
	if examChanged {
		state.Set(mod.ID, model.KindExam, strings.TrimSpace(setExam))
	}
	if err := st.Save(ctx, state); err != nil {
		return fmt.Errorf("failed to save marks: %w", err)
	}

	r := report.Build(state, catalog.Modules(), s.grading)
	row, _ := r.Row(mod.ID)
	line := fmt.Sprintf("%s: %s (%s)", mod.Label(), r.MarkText(row), row.Mark.Mode)
	if row.Bad {
		line += " out of scale"
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Average: %s\n", r.AverageText()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all stored marks",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVar(&resetYes, "yes", false, "skip confirmation")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	if !resetYes {
		if !isTerminal(os.Stdin) {
			return fmt.Errorf("refusing to reset without --yes when stdin is not a terminal")
		}
		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Reset all marks and settings?")
		if err != nil {
			return err
		}
		if !ok {
			logErrln("Reset cancelled.")
			return nil
		}
	}

	_, st, err := openForCmd(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	if err := st.Clear(context.Background()); err != nil {
		return fmt.Errorf("failed to clear marks: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), "All marks cleared."); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List the module catalog",
		Args:  cobra.NoArgs,
		RunE:  runModulesCmd,
	}
}

func runModulesCmd(cmd *cobra.Command, _ []string) error {
	if err := report.RenderCatalog(cmd.OutOrStdout(), catalog.Modules()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
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
	envCfg, err := config.LoadEnv()
	if err != nil {
		return err
	}
	path := envCfg.ConfigPath
	if err := ensureConfigFile(path); err != nil {
		return err
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

func ensureConfigFile(path string) error {
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
	return nil
}

// resolveSettings merges flags, environment, config file and defaults, in that order.
func resolveSettings(cmd *cobra.Command) (settings, error) {
	envCfg, err := config.LoadEnv()
	if err != nil {
		return settings{}, err
	}
	fileCfg, err := config.LoadConfig(envCfg.ConfigPath)
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "td-weight", &rootTDWeight, fileCfg.Grading.TDWeight)
	applyFloatConfig(cmd, "scale", &rootScale, fileCfg.Grading.Scale)
	applyFloatConfig(cmd, "td-weight", &rootTDWeight, envCfg.TDWeight)
	applyFloatConfig(cmd, "scale", &rootScale, envCfg.Scale)

	levelName := rootLogLevel
	if !cmd.Flags().Changed("log-level") {
		switch {
		case envCfg.LogLevel != "":
			levelName = envCfg.LogLevel
		case fileCfg.Log.Level != nil:
			levelName = *fileCfg.Log.Level
		}
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return settings{}, err
	}

	dbPath := envCfg.DBPath
	if cmd.Flags().Changed("db") {
		dbPath = rootDBPath
	}

	g := model.Grading{TDWeight: rootTDWeight, Scale: rootScale}
	if err := validateGrading(g); err != nil {
		return settings{}, err
	}
	return settings{grading: g, dbPath: dbPath, logLevel: level}, nil
}

func openForCmd(cmd *cobra.Command) (settings, *store.Store, error) {
	s, err := resolveSettings(cmd)
	if err != nil {
		return settings{}, nil, err
	}
	log := logging.Component(logging.New(os.Stderr, s.logLevel), "store")
	st, err := store.Open(s.dbPath, log)
	if err != nil {
		return settings{}, nil, fmt.Errorf("failed to open db: %w", err)
	}
	return s, st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func validateGrading(g model.Grading) error {
	if g.TDWeight < 0 || g.TDWeight > 100 {
		return fmt.Errorf("--td-weight must be between 0 and 100")
	}
	if g.Scale <= 0 {
		return fmt.Errorf("--scale must be > 0")
	}
	return nil
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

func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N] ", question); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func isTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}

func gaugeWidth(file *os.File) int {
	if !isTerminal(file) {
		return 0
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width < minGaugeTermWidth {
		return 0
	}
	return defaultGaugeWidth
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# moyenne configuration
# Uncomment a value to enable it. CLI flags and MOYENNE_* variables override config values.

[grading]
# td-weight = %.1f        # TD share of a module mark in percent (0-100)
# scale = %.1f            # Maximum mark

[log]
# level = %q           # debug, info, warn or error
`,
		model.DefaultTDWeight,
		model.DefaultScale,
		logging.DefaultLevel,
	)
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
