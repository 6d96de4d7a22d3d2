package lock

import (
	"context"
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

const (
	DefaultTimeout = 30 * time.Second
	pollInterval   = 100 * time.Millisecond
)

// Lock represents a filesystem-based lock using mkdir atomicity.
type Lock struct {
	dir string
}

// New creates a lock named after key, e.g. "limit-1000000".
func New(key string) *Lock {
	hash := fmt.Sprintf("%x", md5.Sum([]byte(key)))
	return &Lock{dir: filepath.Join(os.TempDir(), "amicable-lock-"+hash)}
}

// Acquire attempts to acquire the lock, blocking up to timeout. A lock still held
// at the deadline is assumed abandoned and broken. Only ctx cancellation fails.
func (l *Lock) Acquire(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if err := os.Mkdir(l.dir, 0755); err == nil {
			_ = os.WriteFile(filepath.Join(l.dir, "pid"), []byte(strconv.Itoa(os.Getpid())), 0644)
			return nil
		}

		if l.isStale() || time.Now().After(deadline) {
			os.RemoveAll(l.dir)
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// Release releases the lock.
func (l *Lock) Release() {
	os.RemoveAll(l.dir)
}

// isStale checks if the lock holder PID is still alive.
func (l *Lock) isStale() bool {
	data, err := os.ReadFile(filepath.Join(l.dir, "pid"))
	if err != nil {
		return false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return true // corrupt PID file
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return true
	}
	// On Unix, signal 0 checks existence without sending a signal
	err = proc.Signal(syscall.Signal(0))
	return err != nil
}
