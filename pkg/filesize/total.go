package filesize

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/wcharczuk/bitmath/pkg/bitmath"
)

// Total sums the files under each root concurrently. Results are in the order
// of roots. ListDir options apply to every root; WithBestPrefix converts the
// totals rather than the individual files.
func Total(ctx context.Context, roots []string, opts ...Option) ([]bitmath.Size, error) {
	o := newOptions(opts)
	system := o.system
	walkOpts := append(opts[:len(opts):len(opts)], WithBestPrefix(0))

	totals := make([]bitmath.Size, len(roots))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, root := range roots {
		g.Go(func() error {
			if _, err := os.Stat(root); err != nil {
				return fmt.Errorf("filesize: %w", err)
			}
			var bytes float64
			for _, size := range ListDir(root, walkOpts...) {
				if err := ctx.Err(); err != nil {
					return err
				}
				bytes += size.Bytes()
			}
			totals[i] = bitmath.Byte.New(bytes)
			if system != 0 {
				totals[i] = totals[i].BestPrefixFor(system)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return totals, nil
}
