package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sestinj/amicable/internal/cache"
	"github.com/sestinj/amicable/internal/chain"
	"github.com/sestinj/amicable/internal/config"
	"github.com/sestinj/amicable/internal/lock"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env bundles dependencies for command execution.
// Production commands use newEnv(); tests construct directly.
type env struct {
	ctx       context.Context
	cfg       *config.Config
	logger    *zap.Logger
	cache     *cache.Cache // nil when caching is disabled
	lockLimit func(ctx context.Context, n int) (release func(), err error)
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	jsonOut   bool
}

func newEnv(cmd *cobra.Command) (*env, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if noCache {
		cfg.NoCache = true
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	l := logger
	if l == nil {
		l = zap.NewNop()
	}

	e := &env{
		ctx:       ctx,
		cfg:       cfg,
		logger:    l,
		lockLimit: lockLimit,
		stdin:     cmd.InOrStdin(),
		stdout:    cmd.OutOrStdout(),
		stderr:    cmd.ErrOrStderr(),
		jsonOut:   jsonOut,
	}
	if !cfg.NoCache {
		ttl, _ := cfg.TTL() // validated by config.Load
		e.cache = cache.New(ttl)
	}
	return e, nil
}

func lockLimit(ctx context.Context, n int) (func(), error) {
	lk := lock.New(fmt.Sprintf("limit-%d", n))
	if err := lk.Acquire(ctx, lock.DefaultTimeout); err != nil {
		return nil, err
	}
	return lk.Release, nil
}

// parseLimit parses a positive integer argument.
func parseLimit(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", chain.ErrInvalidArgument, s)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: must be positive, got %d", chain.ErrInvalidArgument, n)
	}
	return n, nil
}

// longest returns the longest chain for n, consulting the cache first. Computation
// and the cache write for a given limit are serialized across processes.
func (e *env) longest(n int) (chain.Chain, error) {
	if e.cache == nil {
		return e.compute(n)
	}

	key := fmt.Sprintf("chain-%d", n)
	if c, ok := e.cachedChain(key, n); ok {
		return c, nil
	}

	release, err := e.lockLimit(e.ctx, n)
	if err != nil {
		return nil, fmt.Errorf("acquiring lock: %w", err)
	}
	defer release()

	// Another process may have filled the entry while we waited.
	if c, ok := e.cachedChain(key, n); ok {
		return c, nil
	}

	c, err := e.compute(n)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(cachedResult{Limit: n, Length: c.Len(), Chain: c})
	if err == nil {
		err = e.cache.Set(key, data)
	}
	if err != nil {
		e.logger.Warn("Failed to cache chain", zap.Int("limit", n), zap.Error(err))
	}
	return c, nil
}

func (e *env) compute(n int) (chain.Chain, error) {
	start := time.Now()
	c, err := chain.LongestContext(e.ctx, n, chain.Options{Workers: e.cfg.Workers})
	if err != nil {
		return nil, err
	}
	e.logger.Debug("Computed longest chain",
		zap.Int("limit", n),
		zap.Int("length", c.Len()),
		zap.Int("workers", e.cfg.Workers),
		zap.Duration("elapsed", time.Since(start)))
	return c, nil
}

// cachedResult is the cache payload for a computed limit.
type cachedResult struct {
	Limit  int         `json:"limit"`
	Length int         `json:"length"`
	Chain  chain.Chain `json:"chain"`
}

// cachedChain returns a cached chain if the entry was written for n and still
// describes a genuine cycle of the recorded length. The entry is otherwise trusted.
func (e *env) cachedChain(key string, n int) (chain.Chain, bool) {
	data := e.cache.Get(key)
	if data == nil {
		return nil, false
	}
	var res cachedResult
	if err := json.Unmarshal(data, &res); err != nil {
		e.logger.Warn("Discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		e.cache.Evict(key)
		return nil, false
	}
	if err := res.check(n); err != nil {
		e.logger.Warn("Discarding invalid cache entry", zap.String("key", key), zap.Error(err))
		e.cache.Evict(key)
		return nil, false
	}
	c := res.Chain
	if c == nil {
		c = chain.Chain{}
	}
	e.logger.Debug("Using cached chain", zap.Int("limit", n), zap.Int("length", c.Len()))
	return c, true
}

func (r cachedResult) check(n int) error {
	if r.Limit != n {
		return fmt.Errorf("entry is for limit %d, want %d", r.Limit, n)
	}
	if r.Length != r.Chain.Len() {
		return fmt.Errorf("entry records length %d for a chain of %d", r.Length, r.Chain.Len())
	}
	return r.Chain.Verify(n)
}
