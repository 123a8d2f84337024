package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/you-not-fish/qasm/internal/check"
	"github.com/you-not-fish/qasm/internal/config"
	"github.com/you-not-fish/qasm/internal/frontend"
	"github.com/you-not-fish/qasm/internal/qelib"
	"github.com/you-not-fish/qasm/internal/syntax"
)

// globalState is everything a command touches outside its arguments.
// Tests swap in a memory fs and buffers.
type globalState struct {
	fs        afero.Fs
	stdout    io.Writer
	stderr    io.Writer
	stderrTTY bool
	logger    *logrus.Logger
}

func newGlobalState() *globalState {
	stderrTTY := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	stderr := colorable.NewColorableStderr()
	return &globalState{
		fs:        afero.NewOsFs(),
		stdout:    colorable.NewColorableStdout(),
		stderr:    stderr,
		stderrTTY: stderrTTY,
		logger: &logrus.Logger{
			Out:       stderr,
			Formatter: &logrus.TextFormatter{DisableColors: !stderrTTY},
			Hooks:     make(logrus.LevelHooks),
			Level:     logrus.WarnLevel,
		},
	}
}

// rootCommand holds the root flags and the configuration built from them.
type rootCommand struct {
	gs  *globalState
	cmd *cobra.Command

	configPath string
	includes   []string
	logLevel   string
	format     string
	noColor    bool
	noBuiltins bool

	conf config.Config

	errColor *color.Color
	posColor *color.Color
}

func newRootCommand(gs *globalState) *rootCommand {
	c := &rootCommand{
		gs:       gs,
		errColor: color.New(color.FgRed, color.Bold),
		posColor: color.New(color.Bold),
	}
	c.cmd = &cobra.Command{
		Use:               "qasmc",
		Short:             "OpenQASM 2.0 front end",
		Long:              "qasmc expands includes, tokenizes, parses and checks OpenQASM 2.0 programs.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.persistentPreRunE,
	}
	c.cmd.SetOut(gs.stdout)
	c.cmd.SetErr(gs.stderr)
	c.cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return exitCodeError{err, exitUsage}
	})
	c.cmd.PersistentFlags().AddFlagSet(c.rootCmdPersistentFlagSet())

	c.cmd.AddCommand(
		c.tokensCmd(),
		c.expandCmd(),
		c.astCmd(),
		c.fmtCmd(),
		c.checkCmd(),
		c.versionCmd(),
	)
	return c
}

func (c *rootCommand) rootCmdPersistentFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.StringVarP(&c.configPath, "config", "c", "", "config file (TOML, or YAML by extension); default "+config.DefaultFile+" if present")
	flags.StringArrayVarP(&c.includes, "include", "I", nil, "add a directory to the include search path")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: panic, fatal, error, warning, info, debug or trace")
	flags.StringVar(&c.format, "format", "", "ast output format: text, json or yaml")
	flags.BoolVar(&c.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&c.noBuiltins, "no-builtins", false, "do not fall back to the bundled "+qelib.Name)
	return flags
}

// persistentPreRunE consolidates defaults, config file, environment and
// flags, in increasing order of precedence.
func (c *rootCommand) persistentPreRunE(cmd *cobra.Command, _ []string) error {
	conf, err := config.Load(c.gs.fs, c.configPath)
	if err != nil {
		return exitCodeError{err, exitUsage}
	}

	flags := cmd.Flags()
	if flags.Changed("include") {
		conf.IncludePaths = append(conf.IncludePaths, c.includes...)
	}
	if flags.Changed("log-level") {
		conf.LogLevel = c.logLevel
	}
	if flags.Changed("format") {
		conf.Format = c.format
	}
	if flags.Changed("no-color") {
		conf.NoColor = c.noColor
	}
	if flags.Changed("no-builtins") {
		conf.Builtins = !c.noBuiltins
	}
	if err := conf.Validate(); err != nil {
		return exitCodeError{err, exitUsage}
	}
	c.conf = conf

	c.gs.logger.SetLevel(conf.Level())
	if conf.NoColor || !c.gs.stderrTTY {
		c.errColor.DisableColor()
		c.posColor.DisableColor()
	}
	if conf.NoColor {
		if f, ok := c.gs.stderr.(*os.File); ok {
			c.gs.stderr = colorable.NewNonColorable(f)
		}
	}

	c.gs.logger.WithFields(logrus.Fields{
		"include_paths": conf.IncludePaths,
		"format":        conf.Format,
		"builtins":      conf.Builtins,
	}).Debug("Configuration loaded")
	return nil
}

func (c *rootCommand) loader() *frontend.Loader {
	l := &frontend.Loader{
		Fs:          c.gs.fs,
		SearchPaths: c.conf.IncludePaths,
		Logger:      c.gs.logger,
	}
	if c.conf.Builtins {
		l.Builtins = qelib.Fs()
	}
	return l
}

// diag writes one positioned diagnostic to stderr.
func (c *rootCommand) diag(pos syntax.Pos, msg string) {
	fmt.Fprintf(c.gs.stderr, "%s %s %s\n", c.posColor.Sprint(pos.String()+":"), c.errColor.Sprint("error:"), msg)
}

// report prints err and returns it with an exit code attached.
func (c *rootCommand) report(err error) error {
	var (
		lexErr   *syntax.LexError
		parseErr *syntax.ParseError
		checkErr *check.Error
	)
	switch {
	case errors.As(err, &lexErr):
		c.diag(lexErr.Pos, lexErr.Msg)
	case errors.As(err, &parseErr):
		msg := parseErr.Msg
		if msg == "" {
			msg = "expected " + parseErr.Expected + ", found " + parseErr.Found
		}
		c.diag(parseErr.Pos, msg)
	case errors.As(err, &checkErr):
		c.diag(checkErr.Pos, checkErr.Msg)
	default:
		fmt.Fprintf(c.gs.stderr, "%s %v\n", c.errColor.Sprint("error:"), err)
	}
	return classify(err)
}

// execute runs the command line args and returns the process exit code.
func (c *rootCommand) execute(args []string) int {
	c.cmd.SetArgs(args)
	err := c.cmd.Execute()
	if err == nil {
		return 0
	}

	var ecerr hasExitCode
	if !errors.As(err, &ecerr) {
		// Errors from cobra itself: unknown command, wrong argument count.
		err = exitCodeError{err, exitUsage}
	}
	if exitCode(err) == exitUsage {
		fmt.Fprintf(c.gs.stderr, "%s %v\n", c.errColor.Sprint("error:"), err)
	}
	c.gs.logger.WithError(err).Debug("Exiting")
	return exitCode(err)
}
