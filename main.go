package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"

	"github.com/wcharczuk/bitmath/pkg/bitmath"
	"github.com/wcharczuk/bitmath/pkg/config"
	"github.com/wcharczuk/bitmath/pkg/log"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := commandRoot().Run(ctx, os.Args); err != nil {
		logger := log.NewDefault()
		logger.Error().Err(err).Msg("Command failed")
		cancel()
		os.Exit(exitCode(err))
	}
}

func commandRoot() *cli.Command {
	return &cli.Command{
		Name:      "bitmath",
		Usage:     "Convert, parse and measure sizes in NIST and SI units.",
		ArgsUsage: "[VALUE...]",
		Version:   log.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the configuration file (default: " + config.DefaultFilename + ")",
				Sources: cli.EnvVars("BITMATH_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "from",
				Aliases: []string{"f"},
				Value:   bitmath.Byte.String(),
				Usage:   "The unit of the VALUE arguments",
			},
			&cli.StringFlag{
				Name:    "to",
				Aliases: []string{"t"},
				Usage:   "The unit to convert to (default: the best prefix)",
			},
			&cli.StringFlag{
				Name:    "system",
				Aliases: []string{"s"},
				Usage:   "The prefix system of best prefix conversions and lenient parsing: nist (binary, iec) or si (decimal)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "The output format, one of: " + strings.Join(config.Outputs, ", "),
			},
			&cli.StringFlag{
				Name:  "template",
				Usage: "The template sizes are printed with, e.g. '{value:.2f}{unit}'",
			},
			&cli.BoolFlag{
				Name:  "plural",
				Usage: "Pluralize unit names when the value is not 1",
			},
		},
		Commands: []*cli.Command{
			commandParse(),
			commandCalc(),
			commandSize(),
			commandListDir(),
			commandDiskUsage(),
			commandDevice(),
			commandCopy(),
			commandDuplicates(),
			commandUnits(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.Args().Present() {
				return cli.ShowAppHelp(cmd)
			}
			ctx, sess, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			from, err := unitFlag(cmd, "from")
			if err != nil {
				return err
			}
			var to bitmath.Unit
			if cmd.IsSet("to") {
				if to, err = unitFlag(cmd, "to"); err != nil {
					return err
				}
			}

			records := make([]record, 0, cmd.Args().Len())
			for _, arg := range cmd.Args().Slice() {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return usageErrorf("invalid value %q: must be a number", arg)
				}
				size := from.New(v)
				size = lo.TernaryF(cmd.IsSet("to"),
					func() bitmath.Size { return size.To(to) },
					func() bitmath.Size { return size.BestPrefixFor(sess.system) },
				)
				records = append(records, record{Input: arg, Size: size})
			}
			return sess.printer.print(ctx, records)
		},
	}
}

// session is the state every action shares once configuration is loaded.
type session struct {
	conf    *config.Config
	logger  zerolog.Logger
	system  bitmath.System
	printer *printer
}

// setup loads the .env and configuration files, applies the root flags over
// the configuration and builds the logger and printer of an action. The
// returned context carries the configured formatter.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, *session, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return ctx, nil, fmt.Errorf("failed to load .env file: %v", err)
	}

	conf, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to load configuration: %v", err)
	}
	if cmd.IsSet("system") {
		conf.Format.System = cmd.String("system")
	}
	if cmd.IsSet("output") {
		conf.Format.Output = cmd.String("output")
	}
	if cmd.IsSet("template") {
		conf.Format.Template = cmd.String("template")
	}
	if cmd.IsSet("plural") {
		conf.Format.Plural = cmd.Bool("plural")
	}
	if err := conf.Validate(); err != nil {
		return ctx, nil, &exitCodeError{code: exitUsage, err: err}
	}

	logger := log.FromConfig(conf.Log)
	logger.Debug().Dict("config", conf.ToDict()).Str("command", cmd.Name).Msg("Loaded configuration")

	ctx = bitmath.ContextWithFormatter(ctx, conf.Format.Formatter())
	sess := &session{
		conf:    conf,
		logger:  logger,
		system:  conf.Format.PrefixSystem(),
		printer: newPrinter(cmd.Root().Writer, conf.Format.Output),
	}
	return ctx, sess, nil
}

func unitFlag(cmd *cli.Command, name string) (bitmath.Unit, error) {
	value := cmd.String(name)
	u, ok := bitmath.LookupUnit(value)
	if !ok {
		names := lo.Map(bitmath.Units(), func(u bitmath.Unit, _ int) string { return u.String() })
		return 0, usageErrorf("invalid --%s unit %q, must be one of: %s", name, value, strings.Join(names, ", "))
	}
	return u, nil
}

const (
	exitFailure = 1
	exitUsage   = 2
)

type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }

func (e *exitCodeError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &exitCodeError{code: exitUsage, err: fmt.Errorf(format, args...)}
}

func exitCode(err error) int {
	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return exitFailure
}
