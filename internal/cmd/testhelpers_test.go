package cmd

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sestinj/amicable/internal/cache"
	"github.com/sestinj/amicable/internal/config"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// lockRecorder stands in for the filesystem lock and records requested limits.
type lockRecorder struct {
	mu     sync.Mutex
	limits []int
}

func (l *lockRecorder) lock(_ context.Context, n int) (func(), error) {
	l.mu.Lock()
	l.limits = append(l.limits, n)
	l.mu.Unlock()
	return func() {}, nil
}

// testEnv creates an env with a temp-dir cache and a recording lock.
// Returns the env, a buffer capturing stdout, and the lock recorder.
func testEnv(t *testing.T) (*env, *bytes.Buffer, *lockRecorder) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Workers = 2

	var stdout, stderr bytes.Buffer
	locks := &lockRecorder{}
	return &env{
		ctx:       context.Background(),
		cfg:       cfg,
		logger:    zaptest.NewLogger(t),
		cache:     cache.NewAt(t.TempDir(), time.Hour),
		lockLimit: locks.lock,
		stdin:     strings.NewReader(""),
		stdout:    &stdout,
		stderr:    &stderr,
	}, &stdout, locks
}
