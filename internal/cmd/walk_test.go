package cmd

import (
	"encoding/json"
	"testing"

	"github.com/sestinj/amicable/internal/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoWalk_Text(t *testing.T) {
	tests := []struct {
		name  string
		start string
		limit int
		want  string
	}{
		{
			"escapes_to_zero", "12", 100,
			"12 → 16 → 15 → 9 → 4 → 3 → 1 → 0\nEscapes: 0 is outside [1, 100] (path length 7)\n",
		},
		{
			"tail_into_perfect", "95", 100,
			"95 → 25 → 6 → 6\nLoops: length 1, least 6 (path length 3)\n",
		},
		{
			"amicable_pair", "284", 300,
			"284 → 220 → 284\nLoops: length 2, least 220 (path length 2)\n",
		},
		{
			"escapes_above_limit", "220", 250,
			"220 → 284\nEscapes: 284 is outside [1, 250] (path length 1)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, stdout, _ := testEnv(t)
			require.NoError(t, e.doWalk(tt.start, tt.limit))
			assert.Equal(t, tt.want, stdout.String())
		})
	}
}

func TestDoWalk_JSON(t *testing.T) {
	e, stdout, _ := testEnv(t)
	e.jsonOut = true

	require.NoError(t, e.doWalk("220", 250))

	var res walkResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &res))
	assert.Equal(t, 220, res.Start)
	assert.Equal(t, 250, res.Limit)
	assert.Equal(t, []int{220}, res.Path)
	assert.Nil(t, res.Loop)
	require.NotNil(t, res.Escaped)
	assert.Equal(t, 284, *res.Escaped)
}

func TestDoWalk_JSONLoop(t *testing.T) {
	e, stdout, _ := testEnv(t)
	e.jsonOut = true

	require.NoError(t, e.doWalk("95", 100))

	var res walkResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &res))
	assert.Equal(t, chain.Chain{6}, res.Loop)
	assert.Nil(t, res.Escaped)
}

func TestDoWalk_DefaultLimitCoversStart(t *testing.T) {
	e, stdout, _ := testEnv(t)
	e.cfg.Limit = 10

	require.NoError(t, e.doWalk("12", 0))
	assert.Equal(t, "12 → 16\nEscapes: 16 is outside [1, 12] (path length 1)\n", stdout.String())
}

func TestDoWalk_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		start string
		limit int
	}{
		{"not_integer", "x", 100},
		{"zero_start", "0", 100},
		{"limit_below_start", "220", 100},
		{"negative_limit", "5", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := testEnv(t)
			assert.ErrorIs(t, e.doWalk(tt.start, tt.limit), chain.ErrInvalidArgument)
		})
	}
}
