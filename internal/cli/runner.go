package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/todomvc/internal/config"
	"github.com/idilsaglam/todomvc/internal/logging"
	"github.com/idilsaglam/todomvc/internal/store"
	"github.com/idilsaglam/todomvc/internal/store/backend"
	"github.com/idilsaglam/todomvc/internal/todo"
	"github.com/idilsaglam/todomvc/internal/ui"
)

// Options wire the runner to its environment.
type Options struct {
	Stdout, Stderr io.Writer
	// Context bounds interactive sessions; nil means context.Background().
	Context context.Context
}

// Exit codes: 0 ok, 1 runtime failure, 2 usage error.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// exitError carries the exit code a failure maps to.
type exitError struct {
	code int
	err  error
	hint string
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErr(format string, a ...any) error {
	return &exitError{code: ExitUsage, err: fmt.Errorf(format, a...)}
}

func runtimeErr(what string, err error) error {
	return &exitError{code: ExitError, err: fmt.Errorf("%s: %w", what, err)}
}

// globalFlags are the root flags shared by every subcommand.
type globalFlags struct {
	configPath string
	backend    string
	dataDir    string
	namespace  string
	theme      string
	verbose    bool
	group      bool
	noColor    bool
}

// app is the per-invocation session: configuration, logger, store and model.
type app struct {
	opt     Options
	flags   globalFlags
	cfg     *config.Config
	logger  *zap.Logger
	printer *ui.Printer
	store   store.Store
	model   *todo.Model
	closers []func() error
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if opt.Context == nil {
		opt.Context = context.Background()
	}

	a := &app{opt: opt, printer: ui.NewPrinter(opt.Stdout, opt.Stderr, ui.ThemeByName(""))}
	defer a.close()

	root := a.rootCmd()
	root.SetOut(opt.Stdout)
	root.SetErr(opt.Stderr)
	if len(args) == 0 {
		_ = root.Help()
		return ExitUsage
	}
	root.SetArgs(args)

	err := root.ExecuteContext(opt.Context)
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		a.printer.Fail(ee.Error())
		if ee.hint != "" {
			a.printer.Hint(ee.hint)
		}
		return ee.code
	}
	// flag and argument errors reported by cobra itself
	a.printer.Fail(err.Error())
	a.printer.Hint("Run `todo --help` for usage.")
	return ExitUsage
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "todo - a tiny todo list for the terminal",
		Long: `todo keeps a list of things to do, persisted under a namespace.

Items are referenced by their 1-based position in the full list (as shown by
"todo ls"), by id, or by a unique id prefix.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.configPath, "config", "c", "", "YAML config file")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: json, sqlite, bolt or memory")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "directory holding the stored lists")
	pf.StringVarP(&a.flags.namespace, "namespace", "n", "", "namespace the list is stored under")
	pf.StringVar(&a.flags.theme, "theme", "", "output theme: classic, neon or mono")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&a.flags.group, "group", false, "group output by pending/done")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.addCmd(),
		a.lsCmd(),
		a.toggleCmd(),
		a.editCmd(),
		a.rmCmd(),
		a.toggleAllCmd(),
		a.clearCompletedCmd(),
		a.tuiCmd(),
	)
	return root
}

// setup loads configuration, then opens the logger, the store and the model.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			return usageErr("config: %v", err)
		}
		return runtimeErr("config", err)
	}
	if a.flags.backend != "" {
		cfg.Storage.Backend = strings.ToLower(a.flags.backend)
	}
	if a.flags.dataDir != "" {
		cfg.Storage.DataDir = a.flags.dataDir
	}
	if a.flags.namespace != "" {
		cfg.Storage.Namespace = a.flags.namespace
	}
	if a.flags.theme != "" {
		cfg.UI.Theme = a.flags.theme
	}
	if a.flags.group {
		cfg.UI.Group = true
	}
	if a.flags.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return usageErr("%v", err)
	}
	a.cfg = cfg

	if a.flags.noColor {
		ui.DisableColor()
	}
	a.printer.Theme = ui.ThemeByName(cfg.UI.Theme)

	// The interactive shell owns the terminal: log to a file or nowhere.
	var fallback io.Writer = a.opt.Stderr
	if cmd.Name() == "tui" {
		fallback = nil
	}
	logger, closeLog, err := logging.Open(cfg.Logging.Level, cfg.Logging.File, fallback)
	if err != nil {
		return runtimeErr("logging", err)
	}
	a.closers = append(a.closers, closeLog)
	a.logger = logger

	st, closeStore, err := backend.Open(cfg.Storage, logger)
	if err != nil {
		return runtimeErr("open store", err)
	}
	a.closers = append(a.closers, closeStore)
	a.store = st
	a.model = todo.New(st, cfg.Storage.Namespace, todo.WithLogger(logger))

	logger.Debug("session ready",
		zap.String("command", cmd.Name()),
		zap.String("backend", cfg.Storage.Backend),
		zap.String("namespace", a.model.Namespace()),
	)
	return nil
}

// close releases resources in reverse order of acquisition.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && a.logger != nil {
			a.logger.Warn("close", zap.Error(err))
		}
	}
	a.closers = nil
}

// saved converts a failed save on the model into a runtime error.
func (a *app) saved() error {
	if err := a.model.Err(); err != nil {
		return runtimeErr("save", err)
	}
	return nil
}
