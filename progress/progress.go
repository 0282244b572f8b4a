// Package progress counts bytes on their way to an image and reports the
// rate periodically.
package progress

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gokrazy/fat32/humanize"
)

// WriteSeeker counts the bytes written through it.
type WriteSeeker struct {
	io.WriteSeeker

	written uint64
}

func (w *WriteSeeker) Write(p []byte) (n int, err error) {
	n, err = w.WriteSeeker.Write(p)
	atomic.AddUint64(&w.written, uint64(n))
	return n, err
}

// Written returns the number of bytes written so far.
func (w *WriteSeeker) Written() uint64 {
	return atomic.LoadUint64(&w.written)
}

type Reporter struct {
	total uint64

	mu     sync.Mutex
	status string
}

func (p *Reporter) SetStatus(status string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = status
}

func (p *Reporter) SetTotal(total uint64) {
	atomic.StoreUint64(&p.total, total)
}

func (p *Reporter) getStatus() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Reporter) line(written, bytesPerS uint64) string {
	rate := humanize.BPS(bytesPerS)
	status := rate
	if total := atomic.LoadUint64(&p.total); total > 0 {
		pct := float64(written) / float64(total) * 100
		status = fmt.Sprintf("%02.2f%% of %s, writing at %s",
			pct,
			humanize.Bytes(total),
			rate)
	}
	return fmt.Sprintf("\r[%s] %s                 ", p.getStatus(), status)
}

// Report prints a status line for w to out every interval until ctx is done.
// The line is terminated once ctx is done, if anything was printed.
func (p *Reporter) Report(ctx context.Context, w *WriteSeeker, out io.Writer, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := w.Written()
	printed := false
	for {
		select {
		case <-ticker.C:
			written := w.Written()
			bytesPerS := uint64(float64(written-last) / interval.Seconds())
			last = written
			fmt.Fprint(out, p.line(written, bytesPerS))
			printed = true
		case <-ctx.Done():
			if printed {
				fmt.Fprintln(out)
			}
			return
		}
	}
}
