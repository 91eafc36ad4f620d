// Package romfile loads ROM images from disk and hands them to the header
// decoder. It is the only place in the module that touches the filesystem.
package romfile

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/FabianRolfMatthiasNoll/gbheader/internal/cart"
)

// Result is one decoded ROM. Err is set when the file is too short to hold
// a header; Header is nil then.
type Result struct {
	Path   string
	Size   int
	Header *cart.Header
	Err    error
}

// Inspect reads and decodes every path concurrently. Results keep the order
// of paths. An unreadable file aborts the whole run.
func Inspect(ctx context.Context, dec *cart.Decoder, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, p := range paths {
		i, p := i, p // per-iteration copies (go directive < 1.22)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rom, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("read %s: %w", p, err)
			}
			h, err := dec.Decode(rom)
			results[i] = Result{Path: p, Size: len(rom), Header: h, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
