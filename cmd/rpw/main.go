package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"rpw/config"
	"rpw/misc"
	"rpw/render"
	"rpw/report"
	"rpw/state"
)

// initializeAppContext runs after command line has been parsed and before
// any command action.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)
	cfgFile := cmd.String("config")

	var err error
	if env.Cfg, err = config.LoadConfiguration(cfgFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		if cfgFile != "" {
			// secrets are masked on dump
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData("config/"+filepath.Base(cfgFile), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Run started",
		zap.String("run", env.RunID),
		zap.Strings("args", os.Args),
		zap.String("version", misc.GetVersion()),
		zap.String("git", misc.GetGitHash()),
		zap.String("go", runtime.Version()))

	if env.Rpt != nil {
		env.Log.Info("Collecting debug report", zap.String("archive", env.Rpt.Name()))
	}
	if cfgFile == "" {
		env.Log.Info("No configuration file, using built-in defaults")
	}
	return ctx, nil
}

// destroyAppContext closes everything initializeAppContext opened. Logger is
// gone after this point, so problems are returned rather than logged.
func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Debug("Run finished", zap.String("run", env.RunID), zap.Duration("elapsed", env.Uptime()))
	}
	env.RestoreStdLog()

	var err error
	if env.Rpt != nil {
		err = multierr.Append(err, env.Rpt.Close())
	}
	if env.Cfg != nil && env.Cfg.Logging.FileLogger.Destination != "" {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		crashLog := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
		if fi, e := os.Stat(crashLog); e == nil && fi.Size() == 0 {
			err = multierr.Append(err, os.Remove(crashLog))
		}
	}
	return err
}

// errLogged is set when command error already went to the log, main then
// only sets exit code.
var errLogged bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	if env := state.EnvFromContext(ctx); env.Log != nil {
		env.Log.Error("Run failed", zap.Error(err))
		errLogged = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

const renderHelp = `%s
SOURCE:
    path to rfxml form(s) to process, following formats are supported:
        path to a file: "[path_to_file]file.rfxml"
        path to a directory: "[path_to_directory]directory" - recursively process all forms and archives under directory
        path to archive with path inside archive to a particular form: "[path_to_archive]archive.zip[path_in_archive]/file.rfxml"
        path to archive with path inside archive: "[path_to_archive]archive.zip[path_in_archive]" - process all forms under archive path

    Images referenced by forms with relative paths are looked up next to
    the form, inside the archive when form comes from one.

DESTINATION:
    always a path, output file name(s) will be derived from form names or
    output name template, if absent - current working directory

Every form is rendered with the same data. Without --data and --test-cursor
forms are rendered with no records.
`

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:         "render",
		Usage:        "Renders report form(s) to PDF",
		OnUsageError: usageErrorHandler,
		Action:       render.Run,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "data", Usage: "read records from `FILE` (YAML, JSON, CSV, TSV or SQLite database)"},
			&cli.StringFlag{Name: "query", Usage: "`SQL` selecting records when data source is SQLite database"},
			&cli.BoolFlag{Name: "test-cursor", Aliases: []string{"tc"}, Usage: "render records embedded into the form instead of data source"},
			&cli.BoolFlag{Name: "outlines", Usage: "draw band outlines with captions"},
			&cli.BoolFlag{Name: "nodirs", Aliases: []string{"nd"}, Usage: "do not reproduce input directory structure under DESTINATION"},
			&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "replace existing PDF files"},
			&cli.StringFlag{Name: "force-zip-cp", Usage: "decode non UTF-8 file names in archives using `ENCODING` (IANA name)"},
		},
		ArgsUsage:          "SOURCE [DESTINATION]",
		CustomHelpTemplate: fmt.Sprintf(renderHelp, cli.CommandHelpTemplate),
	}
}

func dumpFormCommand() *cli.Command {
	return &cli.Command{
		Name:         "dumpform",
		Usage:        "Validates report form and writes it in normalized form",
		OnUsageError: usageErrorHandler,
		Action:       outputForm,
		ArgsUsage:    "SOURCE [DESTINATION]",
		CustomHelpTemplate: cli.CommandHelpTemplate + `
SOURCE:
    rfxml file

DESTINATION:
    file name to write form to, if absent - STDOUT
`,
	}
}

func dumpConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "dumpconfig",
		Usage: "Dumps either default or actual configuration (YAML)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
		},
		OnUsageError: usageErrorHandler,
		Action:       outputConfiguration,
		ArgsUsage:    "DESTINATION",
		CustomHelpTemplate: cli.CommandHelpTemplate + `
DESTINATION:
    file name to write configuration to, if absent - STDOUT

Active configuration is built-in defaults merged with configuration file.
Use --default to see defaults only.
`,
	}
}

func main() {
	// rendering may be interrupted between pages
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "banded report writer, renders rfxml report forms into PDF",
		Version:         fmt.Sprintf("%s (%s) : %s", misc.GetVersion(), runtime.Version(), misc.GetGitHash()),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "collect logs, inputs and results into report archive"},
		},
		Commands: []*cli.Command{renderCommand(), dumpFormCommand(), dumpConfigCommand()},
	}

	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		// logger may be not ready or already closed
		if !errLogged {
			fmt.Fprintf(os.Stderr, "%s: %v\n", misc.GetAppName(), err)
		}
		os.Exit(1)
	}
}

// destination opens named file for writing or returns STDOUT when name is
// empty. Returned name is suitable for logging.
func destination(name string) (io.WriteCloser, string, error) {
	if name == "" {
		return nopCloser{os.Stdout}, "STDOUT", nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, name, fmt.Errorf("unable to create destination file '%s': %w", name, err)
	}
	return f, name, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func warnExtraArgs(env *state.LocalEnv, cmd *cli.Command, limit int) {
	if cmd.Args().Len() > limit {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[limit:]))
	}
}

func outputForm(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	warnExtraArgs(env, cmd, 2)

	src := cmd.Args().Get(0)
	if src == "" {
		return errors.New("no input form has been specified")
	}
	rpt, err := report.DecodeFile(src)
	if err != nil {
		return fmt.Errorf("unable to read form: %w", err)
	}
	if err := report.Validate(rpt); err != nil {
		return fmt.Errorf("form is invalid: %w", err)
	}

	out, name, err := destination(cmd.Args().Get(1))
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, out.Close()) }()

	env.Log.Info("Writing normalized form", zap.String("source", src), zap.String("to", name))
	if err := report.Encode(out, rpt); err != nil {
		return fmt.Errorf("unable to write form: %w", err)
	}
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	warnExtraArgs(env, cmd, 1)

	kind, data := "actual", []byte(nil)
	if cmd.Bool("default") {
		kind = "default"
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	out, name, err := destination(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, out.Close()) }()

	env.Log.Info("Writing configuration", zap.String("kind", kind), zap.String("to", name))
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
