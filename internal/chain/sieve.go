package chain

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// cancelCheckEvery is how many divisors a sieve worker handles between context checks.
const cancelCheckEvery = 4096

// Sums maps k to the sum of the proper divisors of k for 1 <= k <= Limit().
// Index 0 is unused.
type Sums []int

// Limit returns the largest k covered.
func (s Sums) Limit() int { return len(s) - 1 }

// Contains reports whether k lies in [1, Limit()].
func (s Sums) Contains(k int) bool { return k >= 1 && k < len(s) }

// Sieve computes divisor sums for 1..n by adding every f to each of its proper
// multiples. O(n log n).
func Sieve(n int) Sums {
	if n < 0 {
		n = 0
	}
	s := make(Sums, n+1)
	for f := 1; 2*f <= n; f++ {
		for m := 2 * f; m <= n; m += f {
			s[m] += f
		}
	}
	return s
}

// SieveParallel computes the same table as Sieve on up to workers goroutines.
// Each worker owns a contiguous block of targets and adds every divisor that lands
// in it, so the blocks are written without synchronization.
func SieveParallel(ctx context.Context, n, workers int) (Sums, error) {
	if workers <= 1 || n < 2 {
		return Sieve(n), nil
	}
	if workers > n {
		workers = n
	}
	s := make(Sums, n+1)
	block := (n + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for lo := 1; lo <= n; lo += block {
		lo := lo
		hi := min(lo+block-1, n)
		g.Go(func() error {
			return sieveBlock(gctx, s, lo, hi)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}

// sieveBlock accumulates into s[lo..hi] every proper divisor of every target in range.
func sieveBlock(ctx context.Context, s Sums, lo, hi int) error {
	for f := 1; 2*f <= hi; f++ {
		if f%cancelCheckEvery == 1 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		m := (lo + f - 1) / f * f
		if m < 2*f {
			m = 2 * f
		}
		for ; m <= hi; m += f {
			s[m] += f
		}
	}
	return nil
}
