// Package chain finds amicable chains: cycles of distinct integers under the
// sum-of-proper-divisors function.
package chain

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidArgument is returned when a limit or start value is not a positive integer
// inside the searched range.
var ErrInvalidArgument = errors.New("invalid argument")

// Chain is an ordered cycle: the successor of the last member is the first.
type Chain []int

// Options tunes LongestContext.
type Options struct {
	// Workers > 1 runs the sieve on that many goroutines.
	Workers int
}

// Longest returns the longest amicable chain with no member exceeding n, rotated so
// its least member is first. It returns an empty chain when no cycle exists below n.
func Longest(n int) (Chain, error) {
	return LongestContext(context.Background(), n, Options{})
}

// LongestContext is Longest with cancellation and a parallel sieve.
func LongestContext(ctx context.Context, n int, opts Options) (Chain, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidArgument, n)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sums, err := SieveParallel(ctx, n, opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("sieving divisor sums: %w", err)
	}
	return Trace(sums).Canonical(), nil
}

// Len returns the number of members.
func (c Chain) Len() int { return len(c) }

// Least returns the smallest member, or 0 for an empty chain.
func (c Chain) Least() int {
	if len(c) == 0 {
		return 0
	}
	return slices.Min(c)
}

// Canonical returns the rotation of c that starts at its least member.
func (c Chain) Canonical() Chain {
	if len(c) == 0 {
		return Chain{}
	}
	i := slices.Index(c, slices.Min(c))
	out := make(Chain, 0, len(c))
	out = append(out, c[i:]...)
	return append(out, c[:i]...)
}

// Format joins the members with sep.
func (c Chain) Format(sep string) string {
	parts := make([]string, len(c))
	for i, m := range c {
		parts[i] = strconv.Itoa(m)
	}
	return strings.Join(parts, sep)
}

// Verify checks that c is a genuine cycle inside [1, limit] using trial division,
// independently of any sieve. An empty chain is valid.
func (c Chain) Verify(limit int) error {
	seen := make(map[int]struct{}, len(c))
	for i, m := range c {
		if m < 1 || m > limit {
			return fmt.Errorf("member %d outside [1, %d]", m, limit)
		}
		if _, dup := seen[m]; dup {
			return fmt.Errorf("member %d repeated", m)
		}
		seen[m] = struct{}{}
		next := c[(i+1)%len(c)]
		if s := DivisorSum(m); s != next {
			return fmt.Errorf("divisor sum of %d is %d, chain continues with %d", m, s, next)
		}
	}
	return nil
}

// DivisorSum returns the sum of the proper divisors of k by trial division.
func DivisorSum(k int) int {
	if k <= 1 {
		return 0
	}
	sum := 1
	for d := 2; d*d <= k; d++ {
		if k%d != 0 {
			continue
		}
		sum += d
		if e := k / d; e != d {
			sum += e
		}
	}
	return sum
}
