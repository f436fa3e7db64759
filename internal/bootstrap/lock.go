package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
)

// installLock is an advisory exclusive lock on a file under the install dir.
type installLock struct {
	file *os.File
}

// errLockBusy is returned by tryLock when another process holds the lock.
var errLockBusy = errors.New("install lock held by another process")

var lockSleep = time.Sleep

var (
	lockWaitTimeout = 30 * time.Second
	lockPollEvery   = 100 * time.Millisecond
)

// acquireInstallLock creates path if needed and takes an exclusive lock on it,
// polling until lockWaitTimeout elapses.
func acquireInstallLock(path string) (*installLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf(messages.LockCreateDirFmt, path, err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.LockOpenFmt, path, err)
	}
	if err := lockFile(file); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf(messages.LockAcquireFmt, path, err)
	}
	return &installLock{file: file}, nil
}

// release unlocks and closes the lock file.
func (l *installLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := unlock(l.file); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}

func lockFile(file *os.File) error {
	deadline := time.Now().Add(lockWaitTimeout)
	for {
		err := tryLock(file)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errLockBusy) {
			return err
		}
		if time.Now().After(deadline) {
			return fmt.Errorf(messages.LockTimeoutFmt, lockWaitTimeout)
		}
		lockSleep(lockPollEvery)
	}
}
