package progress

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/wcharczuk/bitmath/pkg/bitmath"
)

const burstSize = 16 * 1024

// Reader counts the bytes read through it and can cap the read rate.
type Reader struct {
	r       io.Reader
	ctx     context.Context
	limiter *rate.Limiter
	read    atomic.Int64
	started time.Time
	now     func() time.Time
}

// NewReader wraps r. A positive limit caps the throughput at limit per
// second; a zero limit leaves it uncapped.
func NewReader(ctx context.Context, r io.Reader, limit bitmath.Size) *Reader {
	pr := &Reader{r: r, ctx: ctx, now: time.Now}
	if bytes := limit.Bytes(); bytes > 0 {
		pr.limiter = rate.NewLimiter(rate.Limit(bytes), burstSize)
	}
	pr.started = pr.now()
	return pr
}

func (r *Reader) Read(p []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	default:
	}
	if r.limiter != nil && len(p) > burstSize {
		p = p[:burstSize]
	}
	n, err := r.r.Read(p)
	if n <= 0 {
		return n, err
	}
	r.read.Add(int64(n))
	if r.limiter != nil {
		if waitErr := r.limiter.WaitN(r.ctx, n); waitErr != nil {
			return n, waitErr
		}
	}
	return n, err
}

// Transferred is the amount read so far, in Bytes.
func (r *Reader) Transferred() bitmath.Size {
	return bitmath.Byte.New(float64(r.read.Load()))
}

func (r *Reader) Elapsed() time.Duration { return r.now().Sub(r.started) }

// Speed renders the average read speed since the reader was created.
func (r *Reader) Speed(ts TransferSpeed) string {
	return ts.Render(float64(r.read.Load()), r.Elapsed())
}
