package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/modlink/internal/app"
	"github.com/urfave/cli/v2"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ExitCode implements cli.ExitCoder.
func (e *ExitError) ExitCode() int {
	return e.Code
}

var _ cli.ExitCoder = (*ExitError)(nil)

const (
	exitFailure = 1
	exitUsage   = 2
)

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "set logging `level` to debug, info, warn or error",
			Value:   "info",
			EnvVars: []string{"MODLINK_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "`format` logs as json or console",
			Value:   "json",
			EnvVars: []string{"MODLINK_LOG_FORMAT"},
		},
		&cli.StringSliceFlag{
			Name:    "exclude",
			Aliases: []string{"x"},
			Usage:   "skip declaration files matching `glob`",
			EnvVars: []string{"MODLINK_EXCLUDE"},
		},
		&cli.StringFlag{
			Name:    "root",
			Usage:   "`name` of the root container",
			Value:   "root",
			EnvVars: []string{"MODLINK_ROOT"},
		},
		&cli.BoolFlag{
			Name:    "allow-cycles",
			Usage:   "initialize cyclic modules together instead of failing",
			EnvVars: []string{"MODLINK_ALLOW_CYCLES"},
		},
		&cli.BoolFlag{
			Name:    "strict",
			Usage:   "abort on the first module that fails to assemble",
			EnvVars: []string{"MODLINK_STRICT"},
		},
		&cli.BoolFlag{
			Name:    "fail-on-unused",
			Usage:   "treat exports nobody imports as an error",
			EnvVars: []string{"MODLINK_FAIL_ON_UNUSED"},
		},
		&cli.IntFlag{
			Name:        "healthcheck-port",
			Usage:       "serve /health and /metrics on `port`",
			DefaultText: "disabled",
			EnvVars:     []string{"MODLINK_HEALTHCHECK_PORT"},
		},
	}
}

// NewApp builds the command surface. Command output goes to outW; logs and
// usage errors go to errW.
func NewApp(outW, errW io.Writer) *cli.App {
	return &cli.App{
		Name:      "modlink",
		Usage:     "assemble isolated modules through declared service imports and exports",
		UsageText: "modlink command [command options] PATH...",
		Writer:    outW,
		ErrWriter: errW,
		// Exit codes are handled by the caller.
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "validate the service contracts of all modules",
				ArgsUsage: "PATH...",
				Flags:     flags(),
				Action:    check,
			},
			{
				Name:      "order",
				Usage:     "print the module initialization order",
				ArgsUsage: "PATH...",
				Flags:     flags(),
				Action:    order,
			},
			{
				Name:      "graph",
				Usage:     "print the cross-module import graph in DOT format",
				ArgsUsage: "PATH...",
				Flags:     flags(),
				Action:    graph,
			},
			{
				Name:      "run",
				Usage:     "assemble all modules and serve until interrupted",
				ArgsUsage: "PATH...",
				Flags:     flags(),
				Action:    run,
			},
		},
	}
}

// Run parses args (without the program name) and executes the selected
// command.
func Run(ctx context.Context, args []string, outW, errW io.Writer) error {
	return NewApp(outW, errW).RunContext(ctx, append([]string{"modlink"}, args...))
}

// Parse maps the command flags onto a validated app.Config.
func Parse(c *cli.Context) (*app.Config, error) {
	cfg, err := app.NewConfig(app.Config{
		Paths:           c.Args().Slice(),
		Exclude:         c.StringSlice("exclude"),
		RootName:        c.String("root"),
		AllowCycles:     c.Bool("allow-cycles"),
		StrictErrors:    c.Bool("strict"),
		FailOnUnused:    c.Bool("fail-on-unused"),
		LogFormat:       strings.ToLower(c.String("log-format")),
		LogLevel:        strings.ToLower(c.String("log-level")),
		HealthcheckPort: c.Int("healthcheck-port"),
	})
	if err != nil {
		return nil, &ExitError{Code: exitUsage, Message: err.Error()}
	}
	return cfg, nil
}

func prepared(c *cli.Context) (*app.App, error) {
	cfg, err := Parse(c)
	if err != nil {
		return nil, err
	}
	a := app.NewApp(c.App.ErrWriter, cfg, nil)
	if err := a.Prepare(c.Context); err != nil {
		return nil, failure(err)
	}
	return a, nil
}

func failure(err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: exitFailure, Message: err.Error()}
}

func check(c *cli.Context) error {
	a, err := prepared(c)
	if err != nil {
		return err
	}
	reg := a.Registry()
	imports := 0
	for _, infos := range reg.Imports() {
		imports += len(infos)
	}
	if report := a.Report(); report.HasProblems() {
		for _, info := range report.Unused {
			fmt.Fprintf(c.App.Writer, "unused export '%s' in %s\n", info.ServiceName, info.Location)
		}
	}
	fmt.Fprintf(c.App.Writer, "OK: %d modules, %d exports, %d imports\n",
		len(a.Order()), len(reg.Exports()), imports)
	return nil
}

func order(c *cli.Context) error {
	a, err := prepared(c)
	if err != nil {
		return err
	}
	conflict := make(map[string]struct{})
	for _, loc := range a.ConflictGroup() {
		conflict[loc] = struct{}{}
	}
	for _, loc := range a.Order() {
		if _, ok := conflict[loc]; ok {
			fmt.Fprintf(c.App.Writer, "%s (cycle)\n", loc)
			continue
		}
		fmt.Fprintln(c.App.Writer, loc)
	}
	return nil
}

// graph prints the import graph even when validation or sorting failed,
// as long as the declarations were loaded. The failure is still returned.
func graph(c *cli.Context) error {
	cfg, err := Parse(c)
	if err != nil {
		return err
	}
	a := app.NewApp(c.App.ErrWriter, cfg, nil)
	prepareErr := a.Prepare(c.Context)

	g := a.Graph()
	if g == nil {
		return failure(prepareErr)
	}
	if err := g.WriteDOT(c.App.Writer); err != nil {
		return err
	}
	if prepareErr != nil {
		return failure(prepareErr)
	}
	return nil
}

func run(c *cli.Context) error {
	cfg, err := Parse(c)
	if err != nil {
		return err
	}
	a := app.NewApp(c.App.ErrWriter, cfg, nil)
	if err := a.Run(c.Context); err != nil {
		return failure(err)
	}
	return nil
}
