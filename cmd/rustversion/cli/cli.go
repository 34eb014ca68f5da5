// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

// Package cli implements the rustversion command line interface.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/alecthomas/kong"
	"github.com/posener/complete"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/terramate-io/rustversion"
	"github.com/terramate-io/rustversion/buildscript"
	"github.com/terramate-io/rustversion/cmd/rustversion/cli/cliconfig"
	"github.com/terramate-io/rustversion/errors"
	"github.com/terramate-io/rustversion/errors/errlog"
	"github.com/terramate-io/rustversion/exit"
	"github.com/terramate-io/rustversion/printer"
	"github.com/terramate-io/rustversion/rustc"
	"github.com/willabides/kongplete"
)

const (
	// ErrNoPredicate indicates the check command was called without predicates.
	ErrNoPredicate errors.Kind = "no predicate given"

	// ErrInvalidLogLevel indicates the log level is not known by zerolog.
	ErrInvalidLogLevel errors.Kind = "invalid log level"
)

const (
	defaultLogLevel = "warn"
	defaultLogFmt   = "console"
)

type cliSpec struct {
	Version      struct{} `cmd:"" help:"rustversion version"`
	VersionFlag  bool     `name:"version" help:"rustversion version"`
	LogLevel     string   `optional:"true" help:"Log level to use: 'trace', 'debug', 'info', 'warn', 'error', or 'fatal'"`
	LogFmt       string   `optional:"true" default:"console" enum:"console,text,json" help:"Log format to use: 'console', 'text', or 'json'"`
	RustcWrapper string   `optional:"true" help:"Command wrapping rustc, like sccache (overrides RUSTC_WRAPPER)"`

	Detect struct {
		Format string   `default:"text" enum:"text,json,toml" help:"Output format: 'text', 'json' or 'toml'"`
		Rustc  []string `optional:"true" name:"rustc" predictor:"file" help:"rustc command to detect, can be given multiple times (overrides RUSTC)"`
	} `cmd:"" help:"Detect the version of the Rust toolchain"`

	Parse struct {
		Format string `default:"text" enum:"text,json,toml" help:"Output format: 'text', 'json' or 'toml'"`
	} `cmd:"" help:"Parse the output of rustc --version read from stdin"`

	Check struct {
		Rustc            string `optional:"true" predictor:"file" help:"rustc command to check (overrides RUSTC)"`
		Since            string `optional:"true" placeholder:"SPEC" help:"Toolchain is the same as or newer than the stable version, like 1.46 or 1.32.4"`
		Before           string `optional:"true" placeholder:"SPEC" help:"Toolchain is older than the stable version"`
		SinceNightly     string `optional:"true" placeholder:"DATE" help:"Toolchain is a nightly built on or after the date (YYYY-MM-DD)"`
		BeforeNightly    string `optional:"true" placeholder:"DATE" help:"Toolchain is a nightly built before the date (YYYY-MM-DD)"`
		Channel          string `optional:"true" placeholder:"NAME" help:"Toolchain release channel: 'stable', 'beta', 'nightly' or 'dev'"`
		Constraint       string `optional:"true" placeholder:"EXPR" help:"Semver constraint, like '>= 1.70, < 2'"`
		AllowPrereleases bool   `optional:"true" help:"Let beta, nightly and dev toolchains match the constraint"`
	} `cmd:"" help:"Check the toolchain version, exits with 2 if any predicate does not hold"`

	Cfg struct {
		Rustc string `optional:"true" predictor:"file" help:"rustc command to check (overrides RUSTC)"`
	} `cmd:"" help:"Print the capability flags enabled for the toolchain"`

	BuildScript struct{} `cmd:"" name:"build-script" help:"Run as a cargo build script"`

	InstallCompletions kongplete.InstallCompletions `cmd:"" help:"Install shell completions"`
}

// Option customizes the CLI.
type Option func(*cli)

// WithRunner sets the runner used to execute the toolchain.
func WithRunner(runner rustc.Runner) Option {
	return func(c *cli) {
		c.runner = runner
	}
}

// WithConfig sets the CLI configuration, skipping the loading of the
// configuration file.
func WithConfig(cfg cliconfig.Config) Option {
	return func(c *cli) {
		c.cfg = &cfg
	}
}

// Exec will execute rustversion with the provided flags defined on args.
//
// Results will be written on stdout, according to the command flags and
// errors/warnings written on stderr. The returned status is the exit code of
// the command.
//
// Each Exec call is isolated from each other as far as the parameters are
// not shared between the calls, except for the global logger configuration.
func Exec(
	args []string,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	opts ...Option,
) exit.Status {
	configureLogging(defaultLogLevel, defaultLogFmt, stderr)

	c := &cli{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		runner: rustc.ExecRunner{},
		output: printer.NewPrinter(stdout),
		errout: printer.NewPrinter(stderr),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c.exec(args)
}

type cli struct {
	ctx        *kong.Context
	parsedArgs *cliSpec
	cfg        *cliconfig.Config
	runner     rustc.Runner
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	output     *printer.Printer
	errout     *printer.Printer
}

func (c *cli) exec(args []string) exit.Status {
	if len(args) == 0 {
		// WHY: avoid default kong error, print help
		args = []string{"--help"}
	}

	logger := log.With().
		Str("action", "cli.exec()").
		Logger()

	kongExit := false
	kongExitStatus := 0

	parsedArgs := cliSpec{}
	parser, err := kong.New(&parsedArgs,
		kong.Name("rustversion"),
		kong.Description("Detect and check the version of the Rust toolchain"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Exit(func(status int) {
			// Avoid kong aborting entire process since we designed CLI as lib
			kongExit = true
			kongExitStatus = status
		}),
		kong.Writers(c.stdout, c.stderr),
	)
	if err != nil {
		c.errout.ErrorWithDetailsln("failed to create cli parser", err)
		return exit.Failed
	}

	kongplete.Complete(parser,
		kongplete.WithPredictor("file", complete.PredictFiles("*")),
	)

	ctx, err := parser.Parse(args)

	if kongExit && kongExitStatus == 0 {
		return exit.OK
	}

	// When we run rustversion --version the kong parser just fails
	// since no subcommand was provided.
	// So we check if the flag for version is present before checking the error.
	if parsedArgs.VersionFlag {
		logger.Debug().Msg("Get rustversion version using --version.")
		c.output.Println(rustversion.Version())
		return exit.OK
	}

	if err != nil {
		c.errout.ErrorWithDetailsln("failed to parse cli args", err)
		return exit.Failed
	}

	// Configuration file and flag problems are reported together.
	errs := errors.L()
	if c.cfg == nil {
		cfg, err := cliconfig.Load()
		errs.Append(err)
		c.cfg = &cfg
	}

	logLevel := parsedArgs.LogLevel
	if logLevel == "" {
		logLevel = c.cfg.LogLevel
	}
	if logLevel == "" {
		logLevel = defaultLogLevel
	}
	if _, err := zerolog.ParseLevel(logLevel); err != nil {
		errs.Append(errors.E(ErrInvalidLogLevel, err))
	}

	if err := errs.AsError(); err != nil {
		c.errout.ErrorWithDetailsln("invalid CLI configuration", err)
		return exit.Failed
	}

	configureLogging(logLevel, parsedArgs.LogFmt, c.stderr)
	// If we don't re-create the logger after configuring we get some
	// log entries with a mix of default fmt and selected fmt.
	logger = log.With().
		Str("action", "cli.exec()").
		Str("cmd", ctx.Command()).
		Logger()

	c.ctx = ctx
	c.parsedArgs = &parsedArgs

	logger.Debug().Msg("Handle command.")

	var runErr error
	status := exit.OK
	switch ctx.Command() {
	case "version":
		c.output.Println(rustversion.Version())
	case "install-completions":
		runErr = parsedArgs.InstallCompletions.Run(ctx)
	case "detect":
		runErr = c.detect()
	case "parse":
		runErr = c.parse()
	case "check":
		status, runErr = c.check()
	case "cfg":
		runErr = c.printCfg()
	case "build-script":
		runErr = c.buildScript()
	default:
		runErr = errors.E(errors.ErrInternal, "unexpected command sequence %q", ctx.Command())
	}

	if runErr != nil {
		errlog.Debug(logger, "command failed", runErr)
		c.errout.ErrorWithDetailsln(ctx.Command()+" failed", runErr)
		return exit.Failed
	}
	return status
}

// toolchain resolves the toolchain options. Flags override the environment,
// which overrides the configuration file.
func (c *cli) toolchain(rustcFlag string) rustc.Options {
	opts := rustc.Options{
		Rustc:   c.cfg.Rustc,
		Wrapper: c.cfg.RustcWrapper,
	}
	env := rustc.OptionsFromEnv()
	if env.Rustc != "" {
		opts.Rustc = env.Rustc
	}
	if env.Wrapper != "" {
		opts.Wrapper = env.Wrapper
	}
	if rustcFlag != "" {
		opts.Rustc = rustcFlag
	}
	if c.parsedArgs.RustcWrapper != "" {
		opts.Wrapper = c.parsedArgs.RustcWrapper
	}
	return opts
}

func (c *cli) buildScript() error {
	env := buildscript.EnvFromOS()
	if c.parsedArgs.RustcWrapper != "" {
		env.Rustc.Wrapper = c.parsedArgs.RustcWrapper
	}
	_, err := buildscript.Run(context.Background(), c.runner, env, c.stdout)
	return err
}

func configureLogging(logLevel string, logFmt string, output io.Writer) {
	zloglevel, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		zloglevel = zerolog.FatalLevel
	}

	zerolog.SetGlobalLevel(zloglevel)

	if logFmt == "json" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(output)
	} else if logFmt == "text" { // no color
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: output, NoColor: true, TimeFormat: time.RFC3339})
	} else { // default: console mode using color
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: output, NoColor: false, TimeFormat: time.RFC3339})
	}
}
