package chain

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSieve_Small(t *testing.T) {
	want := Sums{0, 0, 1, 1, 3, 1, 6, 1, 7, 4, 8, 1, 16}
	if diff := cmp.Diff(want, Sieve(12)); diff != "" {
		t.Errorf("Sieve(12) mismatch (-want +got):\n%s", diff)
	}
}

func TestSieve_MatchesTrialDivision(t *testing.T) {
	s := Sieve(5000)
	require.Equal(t, 5000, s.Limit())
	for k := 1; k <= s.Limit(); k++ {
		if s[k] != DivisorSum(k) {
			t.Fatalf("Sieve[%d] = %d, DivisorSum = %d", k, s[k], DivisorSum(k))
		}
	}
}

func TestSieve_Degenerate(t *testing.T) {
	assert.Equal(t, Sums{0}, Sieve(0))
	assert.Equal(t, Sums{0}, Sieve(-3))
	assert.Equal(t, Sums{0, 0}, Sieve(1))
}

func TestSieveParallel_MatchesSieve(t *testing.T) {
	for _, n := range []int{1, 2, 3, 17, 100, 1000, 9973, 50000} {
		want := Sieve(n)
		for _, workers := range []int{0, 1, 2, 3, 7, 16, 200} {
			got, err := SieveParallel(context.Background(), n, workers)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("SieveParallel(%d, %d) mismatch (-want +got):\n%s", n, workers, diff)
			}
		}
	}
}

func TestSieveParallel_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SieveParallel(ctx, 100000, 4)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSumsContains(t *testing.T) {
	s := Sieve(10)
	assert.False(t, s.Contains(0))
	assert.True(t, s.Contains(1))
	assert.True(t, s.Contains(10))
	assert.False(t, s.Contains(11))
	assert.False(t, s.Contains(-1))
}
