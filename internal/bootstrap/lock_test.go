package bootstrap

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireInstallLockExclusive(t *testing.T) {
	origTimeout := lockWaitTimeout
	origSleep := lockSleep
	lockWaitTimeout = 20 * time.Millisecond
	lockSleep = func(time.Duration) { time.Sleep(time.Millisecond) }
	t.Cleanup(func() {
		lockWaitTimeout = origTimeout
		lockSleep = origSleep
	})

	path := filepath.Join(t.TempDir(), ".install.lock")
	first, err := acquireInstallLock(path)
	require.NoError(t, err)

	_, err = acquireInstallLock(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")

	require.NoError(t, first.release())
	second, err := acquireInstallLock(path)
	require.NoError(t, err)
	require.NoError(t, second.release())
}

func TestAcquireInstallLockWaitsForRelease(t *testing.T) {
	origSleep := lockSleep
	t.Cleanup(func() { lockSleep = origSleep })

	path := filepath.Join(t.TempDir(), ".install.lock")
	first, err := acquireInstallLock(path)
	require.NoError(t, err)

	polls := 0
	lockSleep = func(time.Duration) {
		polls++
		if polls == 2 {
			require.NoError(t, first.release())
		}
	}
	second, err := acquireInstallLock(path)
	require.NoError(t, err)
	assert.Equal(t, 2, polls)
	require.NoError(t, second.release())
}

func TestReleaseNilLock(t *testing.T) {
	var lock *installLock
	assert.NoError(t, lock.release())
}
