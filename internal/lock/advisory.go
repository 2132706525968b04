// Package lock provides MySQL advisory locks that serialize archive writes
// for the same build.
package lock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ErrLockTimeout is returned when another session holds the lock for longer
// than the acquisition timeout.
var ErrLockTimeout = errors.New("lock acquisition timed out")

// TimeoutInfinite waits until the lock is free. MySQL treats negative
// timeouts as infinite.
const TimeoutInfinite = -1

// maxLockNameLen is MySQL's limit for GET_LOCK names.
const maxLockNameLen = 64

const buildLockPrefix = "kojiimport:build:"

// Querier is satisfied by *sql.DB and *sql.Conn. Advisory locks belong to a
// session, so callers that issue further statements under the lock should
// pass a *sql.Conn.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// AdvisoryLock is a named MySQL lock taken with GET_LOCK and released with
// RELEASE_LOCK (or implicitly when the session ends).
type AdvisoryLock struct {
	q    Querier
	name string
	held bool
}

// NewAdvisoryLock creates a lock; nothing is acquired until Acquire.
func NewAdvisoryLock(q Querier, name string) *AdvisoryLock {
	return &AdvisoryLock{q: q, name: name}
}

// NewBuildLock creates the lock guarding archive writes for one build NVR.
func NewBuildLock(q Querier, nvr string) *AdvisoryLock {
	return NewAdvisoryLock(q, BuildLockName(nvr))
}

// BuildLockName returns "kojiimport:build:<nvr>:<hash>". The readable part
// has characters outside [A-Za-z0-9._-] replaced and is shortened to fit
// MySQL's limit; the hash of the raw NVR keeps distinct builds on distinct
// locks.
func BuildLockName(nvr string) string {
	sanitized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == '_' || r == '-' || r == '.' {
			return r
		}
		return '_'
	}, nvr)

	suffix := fmt.Sprintf(":%016x", xxhash.Sum64String(nvr))
	if room := maxLockNameLen - len(buildLockPrefix) - len(suffix); len(sanitized) > room {
		sanitized = sanitized[:room]
	}
	return buildLockPrefix + sanitized + suffix
}

// Name returns the lock name.
func (a *AdvisoryLock) Name() string { return a.name }

// IsHeld reports whether this instance holds the lock.
func (a *AdvisoryLock) IsHeld() bool { return a.held }

// Acquire waits up to timeoutSeconds for the lock. It returns false without
// error when the timeout expires.
//
// GET_LOCK returns 1 on success, 0 on timeout and NULL on error.
func (a *AdvisoryLock) Acquire(ctx context.Context, timeoutSeconds int) (bool, error) {
	if a.held {
		return true, nil
	}

	var result sql.NullInt64
	if err := a.q.QueryRowContext(ctx, "SELECT GET_LOCK(?, ?)", a.name, timeoutSeconds).Scan(&result); err != nil {
		return false, fmt.Errorf("failed to execute GET_LOCK: %w", err)
	}
	if !result.Valid {
		return false, fmt.Errorf("GET_LOCK returned NULL for lock %q", a.name)
	}

	switch result.Int64 {
	case 1:
		a.held = true
		return true, nil
	case 0:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected GET_LOCK return value: %d", result.Int64)
	}
}

// Release drops the lock. It returns false without error if the lock was
// not held by this session.
//
// RELEASE_LOCK returns 1 on success, 0 if another session holds it and NULL
// if no such lock exists.
func (a *AdvisoryLock) Release(ctx context.Context) (bool, error) {
	if !a.held {
		return false, nil
	}

	var result sql.NullInt64
	if err := a.q.QueryRowContext(ctx, "SELECT RELEASE_LOCK(?)", a.name).Scan(&result); err != nil {
		return false, fmt.Errorf("failed to execute RELEASE_LOCK: %w", err)
	}
	a.held = false

	if !result.Valid {
		return false, fmt.Errorf("RELEASE_LOCK returned NULL for lock %q", a.name)
	}
	return result.Int64 == 1, nil
}

// WithLock runs fn while holding the lock and releases it on every exit
// path, including panics. It returns ErrLockTimeout if the lock could not be
// acquired in time. A failed release is reported only when fn succeeded.
func (a *AdvisoryLock) WithLock(ctx context.Context, timeoutSeconds int, fn func() error) (err error) {
	acquired, err := a.Acquire(ctx, timeoutSeconds)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		return fmt.Errorf("%w: lock %q is held by another session", ErrLockTimeout, a.name)
	}

	defer func() {
		// Release on a fresh context so a cancelled caller still unlocks.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, releaseErr := a.Release(releaseCtx); releaseErr != nil && err == nil {
			err = fmt.Errorf("failed to release lock: %w", releaseErr)
		}
	}()

	return fn()
}
