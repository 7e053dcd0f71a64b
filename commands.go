package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/urfave/cli/v3"

	"github.com/wcharczuk/bitmath/pkg/bitmath"
	"github.com/wcharczuk/bitmath/pkg/device"
	"github.com/wcharczuk/bitmath/pkg/filesize"
	"github.com/wcharczuk/bitmath/pkg/progress"
)

func commandParse() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse sizes like '1.5 MiB'. With --unsafe, also ' 1.5m' or '10 gb'.",
		ArgsUsage: "STRING...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "unsafe",
				Usage: "Accept any case, a missing 'B' and a missing 'i', reading prefixes in --system",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.Args().Present() {
				return usageErrorf("must provide at least one STRING")
			}
			ctx, sess, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			unsafe := cmd.Bool("unsafe")
			records := make([]record, 0, cmd.Args().Len())
			for _, arg := range cmd.Args().Slice() {
				var size bitmath.Size
				if unsafe {
					size, err = bitmath.ParseUnsafe(arg, sess.system)
				} else {
					size, err = bitmath.Parse(arg)
				}
				if err != nil {
					return &exitCodeError{code: exitUsage, err: err}
				}
				records = append(records, record{Input: arg, Size: size})
			}
			return sess.printer.print(ctx, records)
		},
	}
}

func commandCalc() *cli.Command {
	return &cli.Command{
		Name:      "calc",
		Usage:     "Evaluate LEFT OP RIGHT where each operand is a number or a size, e.g. '1GiB / 512MiB'.",
		ArgsUsage: "LEFT OP RIGHT",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) == 1 {
				args = strings.Fields(args[0])
			}
			if len(args) != 3 {
				return usageErrorf("must provide exactly LEFT OP RIGHT")
			}
			ctx, sess, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			left, err := parseOperand(args[0])
			if err != nil {
				return err
			}
			right, err := parseOperand(args[2])
			if err != nil {
				return err
			}
			result, err := bitmath.Eval(bitmath.Op(args[1]), left, right)
			if err != nil {
				return &exitCodeError{code: exitUsage, err: err}
			}

			input := strings.Join(args, " ")
			sess.logger.Debug().Str("expression", input).Stringer("result", result).Msg("Evaluated")
			if size, ok := result.Size(); ok {
				return sess.printer.print(ctx, []record{{Input: input, Size: size}})
			}
			if ok, isBool := result.Bool(); isBool {
				return sess.printer.printResult(input, ok, result.String())
			}
			n, _ := result.Number()
			return sess.printer.printResult(input, n, result.String())
		},
	}
}

func parseOperand(s string) (bitmath.Operand, error) {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return bitmath.NumberOperand(n), nil
	}
	size, err := bitmath.Parse(s)
	if err != nil {
		return bitmath.Operand{}, &exitCodeError{code: exitUsage, err: fmt.Errorf("operand %q is neither a number nor a size: %w", s, err)}
	}
	return bitmath.SizeOperand(size), nil
}

func commandSize() *cli.Command {
	return &cli.Command{
		Name:      "size",
		Usage:     "Print the size of files.",
		ArgsUsage: "PATH...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "bytes",
				Usage: "Print sizes in Bytes instead of the best prefix",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.Args().Present() {
				return usageErrorf("must provide at least one PATH")
			}
			ctx, sess, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			system := sess.system
			if cmd.Bool("bytes") {
				system = 0
			}
			records := make([]record, 0, cmd.Args().Len())
			for _, path := range cmd.Args().Slice() {
				size, err := filesize.GetSize(path, system)
				if err != nil {
					return err
				}
				records = append(records, record{Path: path, Size: size})
			}
			return sess.printer.print(ctx, records)
		},
	}
}

func listingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "filter",
			Usage: "Only include files whose name matches this glob (default: listing.filter or '*')",
		},
		&cli.BoolFlag{
			Name:  "follow",
			Usage: "Follow symbolic links (default: listing.follow_links)",
		},
	}
}

func listingOptions(cmd *cli.Command, sess *session) []filesize.Option {
	filter := sess.conf.Listing.Filter
	if cmd.IsSet("filter") {
		filter = cmd.String("filter")
	}
	follow := sess.conf.Listing.FollowLinks
	if cmd.IsSet("follow") {
		follow = cmd.Bool("follow")
	}
	return []filesize.Option{
		filesize.WithFilter(filter),
		filesize.WithFollowLinks(follow),
		filesize.WithBestPrefix(sess.system),
	}
}

// minSize reads a --min-size flag in the compound form, e.g. "1GiB512MiB",
// falling back to listing.min_size.
func minSize(cmd *cli.Command, sess *session) (bitmath.Size, error) {
	if !cmd.IsSet("min-size") {
		return sess.conf.Listing.MinSize, nil
	}
	size, err := filesize.ParseCompound(cmd.String("min-size"), sess.system)
	if err != nil {
		return bitmath.Size{}, &exitCodeError{code: exitUsage, err: fmt.Errorf("invalid --min-size: %w", err)}
	}
	return size, nil
}

func commandListDir() *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "List the files under a directory with their sizes.",
		ArgsUsage: "[ROOT]",
		Flags: append(listingFlags(),
			&cli.BoolFlag{
				Name:  "relative",
				Usage: "Print paths relative to the working directory",
			},
			&cli.StringFlag{
				Name:  "min-size",
				Usage: "Skip files smaller than this, e.g. 5MiB or 1MiB512KiB (default: listing.min_size)",
			},
			&cli.BoolFlag{
				Name:  "mime",
				Usage: "Detect and print the MIME type of every file",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() > 1 {
				return usageErrorf("must only provide a ROOT")
			}
			ctx, sess, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			root := cmd.Args().First()
			if root == "" {
				root = "."
			}
			if _, err := os.Stat(root); err != nil {
				return err
			}
			threshold, err := minSize(cmd, sess)
			if err != nil {
				return err
			}
			opts := append(listingOptions(cmd, sess), filesize.WithRelPath(cmd.Bool("relative")))

			var records []record
			for path, size := range filesize.ListDir(root, opts...) {
				if err := ctx.Err(); err != nil {
					return err
				}
				if size.Less(threshold) {
					continue
				}
				r := record{Path: path, Size: size}
				if cmd.Bool("mime") {
					mime, err := mimetype.DetectFile(path)
					if err != nil {
						sess.logger.Warn().Err(err).Str("path", path).Msg("Failed to detect MIME type")
					} else {
						r.Detail = mime.String()
					}
				}
				records = append(records, r)
			}
			sess.logger.Debug().Str("root", root).Int("files", len(records)).Msg("Listed directory")
			return sess.printer.print(ctx, records)
		},
	}
}

func commandDiskUsage() *cli.Command {
	return &cli.Command{
		Name:      "du",
		Usage:     "Print the total size of the files under each directory.",
		ArgsUsage: "ROOT...",
		Flags: append(listingFlags(),
			&cli.BoolFlag{
				Name:  "compound",
				Usage: "Print the exact total as whole units, e.g. 5MiB10KiB, instead of a byte count",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.Args().Present() {
				return usageErrorf("must provide at least one ROOT")
			}
			ctx, sess, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			roots := cmd.Args().Slice()
			started := time.Now()
			totals, err := filesize.Total(ctx, roots, listingOptions(cmd, sess)...)
			if err != nil {
				return err
			}
			sess.logger.Debug().Strs("roots", roots).Dur("elapsed", time.Since(started)).Msg("Summed directories")

			records := make([]record, len(roots))
			for i, total := range totals {
				detail := humanize.Comma(int64(total.Bytes()))
				if cmd.Bool("compound") {
					detail = filesize.FormatCompound(uint64(total.Bytes()), sess.system)
				}
				records[i] = record{Path: roots[i], Size: total, Detail: detail}
			}
			return sess.printer.print(ctx, records)
		},
	}
}

func commandDevice() *cli.Command {
	return &cli.Command{
		Name:      "device",
		Usage:     "Print the capacity of block devices, e.g. /dev/sda.",
		ArgsUsage: "PATH...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.Args().Present() {
				return usageErrorf("must provide at least one PATH")
			}
			ctx, sess, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			records := make([]record, 0, cmd.Args().Len())
			for _, path := range cmd.Args().Slice() {
				capacity, err := device.Capacity(path)
				if err != nil {
					return fmt.Errorf("failed to read capacity of %s: %w", path, err)
				}
				records = append(records, record{Path: path, Size: capacity.BestPrefixFor(sess.system)})
			}
			return sess.printer.print(ctx, records)
		},
	}
}

func commandCopy() *cli.Command {
	var limit bitmath.Size
	return &cli.Command{
		Name:      "copy",
		Usage:     "Copy a file, reporting the transfer speed.",
		ArgsUsage: "SOURCE_FILE DEST_FILE",
		Flags: []cli.Flag{
			&cli.GenericFlag{
				Name:  "limit",
				Usage: "Cap the copy at this much per second, e.g. 10MiB or 500k (default: no limit)",
				Value: &bitmath.FlagValue{Size: &limit, Lenient: true, System: bitmath.NIST},
			},
			&cli.DurationFlag{
				Name:  "interval",
				Value: time.Second,
				Usage: "How often progress is logged",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return usageErrorf("must provide exactly SOURCE_FILE and DEST_FILE")
			}
			ctx, sess, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			source, target := cmd.Args().Get(0), cmd.Args().Get(1)

			in, err := os.Open(source)
			if err != nil {
				return fmt.Errorf("copy failed: %w", err)
			}
			defer in.Close()
			out, err := os.Create(target)
			if err != nil {
				return fmt.Errorf("copy failed: %w", err)
			}

			speed := progress.TransferSpeed{System: sess.system}
			reader := progress.NewReader(ctx, in, limit)
			done := make(chan struct{})
			go func() {
				ticker := time.NewTicker(cmd.Duration("interval"))
				defer ticker.Stop()
				for {
					select {
					case <-done:
						return
					case <-ticker.C:
						sess.logger.Info().
							Stringer("transferred", reader.Transferred().BestPrefixFor(sess.system)).
							Str("speed", reader.Speed(speed)).
							Msg("Copying")
					}
				}
			}()
			_, err = io.Copy(out, reader)
			close(done)
			if closeErr := out.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return fmt.Errorf("copy failed: %w", err)
			}

			return sess.printer.print(ctx, []record{{
				Input:  source,
				Path:   target,
				Size:   reader.Transferred().BestPrefixFor(sess.system),
				Detail: reader.Speed(speed),
			}})
		},
	}
}

func commandUnits() *cli.Command {
	return &cli.Command{
		Name:  "units",
		Usage: "List the supported units.",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, sess, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			units := bitmath.Units()
			records := make([]record, len(units))
			for i, u := range units {
				records[i] = record{
					Input:  u.String(),
					Size:   u.New(1),
					Detail: fmt.Sprintf("%d^%d", u.Base(), u.Exponent()),
				}
			}
			return sess.printer.print(ctx, records)
		},
	}
}
