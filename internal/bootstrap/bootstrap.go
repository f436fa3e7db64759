// Package bootstrap provisions the pocketpaw package into a virtual environment,
// retrying with progressively smaller extras when an install attempt fails.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/pocketpaw/pocketpaw-installer/internal/config"
	"github.com/pocketpaw/pocketpaw-installer/internal/extras"
	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
)

// Options controls bootstrap behavior.
type Options struct {
	System System
	// MinPython is the lowest accepted interpreter version; defaults to config.DefaultMinPython.
	MinPython string
	// LockPath, when set, is locked for the duration of Run.
	LockPath string
	// Progress receives human-readable progress lines; nil discards them.
	Progress io.Writer
	Logger   *slog.Logger
}

// Bootstrap drives environment discovery and the install-with-fallback protocol.
// It keeps no state between Run calls.
type Bootstrap struct {
	sys       System
	minPython *version.Version
	lockPath  string
	progress  io.Writer
	log       *slog.Logger
}

// New validates opts and returns a Bootstrap.
func New(opts Options) (*Bootstrap, error) {
	if opts.System == nil {
		return nil, errors.New(messages.BootstrapSystemRequired)
	}
	raw := strings.TrimSpace(opts.MinPython)
	if raw == "" {
		raw = config.DefaultMinPython
	}
	minPython, err := version.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf(messages.BootstrapInvalidMinPythonFmt, raw, err)
	}
	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Bootstrap{
		sys:       opts.System,
		minPython: minPython,
		lockPath:  opts.LockPath,
		progress:  progress,
		log:       logger,
	}, nil
}

// Run installs the package with requested extras and reports a single outcome.
//
// Discovery failures end the run before any install attempt. Otherwise the full
// request is tried first, then each candidate of extras.BuildFallbackChain in
// order until one succeeds. When every attempt fails, Error carries the reason
// from the last attempt.
func (b *Bootstrap) Run(ctx context.Context, requested extras.FeatureSet) Status {
	status := Status{RequestedExtras: requested.Sorted()}

	if b.lockPath != "" {
		lock, err := acquireInstallLock(b.lockPath)
		if err != nil {
			b.log.Error("install lock unavailable", "path", b.lockPath, "err", err)
			return status.failed(err.Error())
		}
		defer func() {
			if err := lock.release(); err != nil {
				b.log.Warn("release install lock", "path", b.lockPath, "err", err)
			}
		}()
	}

	status, err := b.discover(ctx, status)
	if err != nil {
		b.log.Error("environment discovery failed", "err", err)
		return status.failed(err.Error())
	}

	installed, outcome := b.installWithFallback(ctx, requested)
	if !outcome.OK() {
		b.log.Error("all install attempts failed", "requested", requested.String(), "reason", outcome.Reason)
		return status.failed(outcome.Reason)
	}

	installedVersion, err := b.sys.InstalledVersion(ctx)
	if err != nil {
		b.log.Warn("could not read installed version", "err", err)
		installedVersion = ""
	}
	fallback := !installed.Equal(requested)
	b.log.Info("install succeeded", "extras", installed.String(), "version", installedVersion, "fallback", fallback)
	return status.succeeded(installedVersion, installed.Sorted(), fallback)
}

// discover resolves the interpreter, uv and the virtual environment, recording
// what it finds on status.
func (b *Bootstrap) discover(ctx context.Context, status Status) (Status, error) {
	python, err := b.sys.FindPython(ctx)
	if err != nil {
		return status, fmt.Errorf(messages.BootstrapPythonNotFoundFmt, err)
	}
	status.PythonPath = python

	raw, err := b.sys.PythonVersion(ctx, python)
	if err != nil {
		return status, fmt.Errorf(messages.BootstrapPythonVersionFmt, python, err)
	}
	status.PythonVersion = strings.TrimSpace(raw)
	if err := checkPythonVersion(python, status.PythonVersion, b.minPython); err != nil {
		return status, err
	}
	b.log.Debug("python found", "path", python, "version", status.PythonVersion)

	if err := b.sys.EnsureUV(ctx, python); err != nil {
		return status, fmt.Errorf(messages.BootstrapUVUnavailableFmt, err)
	}

	venvPython := b.sys.VenvPython()
	status.VenvPath = venvPython
	if !b.sys.Exists(venvPython) {
		_, _ = fmt.Fprintf(b.progress, messages.BootstrapCreatingVenvFmt, venvPython)
		if err := b.sys.CreateVenv(ctx, python); err != nil {
			return status, fmt.Errorf(messages.BootstrapCreateVenvFmt, err)
		}
		if !b.sys.Exists(venvPython) {
			return status, fmt.Errorf(messages.BootstrapVenvMissingFmt, venvPython)
		}
	}
	return status, nil
}

// CheckPythonVersion reports whether the interpreter at python, which reported
// raw as its version, satisfies minimum.
func CheckPythonVersion(python string, raw string, minimum string) error {
	minVersion, err := version.NewVersion(strings.TrimSpace(minimum))
	if err != nil {
		return fmt.Errorf(messages.BootstrapInvalidMinPythonFmt, minimum, err)
	}
	return checkPythonVersion(python, strings.TrimSpace(raw), minVersion)
}

// checkPythonVersion enforces the minimum interpreter version. Pre-release
// suffixes are ignored so 3.13.0rc1 satisfies >= 3.11.
func checkPythonVersion(python string, raw string, minimum *version.Version) error {
	found, err := version.NewVersion(raw)
	if err != nil {
		return fmt.Errorf(messages.BootstrapPythonVersionFmt, python, err)
	}
	if found.Core().LessThan(minimum) {
		return fmt.Errorf(messages.BootstrapPythonTooOldFmt, raw, python, minimum.Original())
	}
	return nil
}

// installWithFallback tries requested, then each fallback candidate, and returns
// the set that installed with its outcome, or the last failure.
func (b *Bootstrap) installWithFallback(ctx context.Context, requested extras.FeatureSet) (extras.FeatureSet, Outcome) {
	_, _ = fmt.Fprintf(b.progress, messages.BootstrapInstallingFmt, requested.String())
	outcome := b.attempt(ctx, requested)
	if outcome.OK() {
		return requested, outcome
	}
	b.log.Warn("install attempt failed", "extras", requested.String(), "reason", outcome.Reason)

	for _, candidate := range extras.BuildFallbackChain(requested) {
		_, _ = fmt.Fprintf(b.progress, messages.BootstrapFallingBackFmt, outcome.Reason, candidate.String())
		next := b.attempt(ctx, candidate)
		if next.OK() {
			return candidate, next
		}
		b.log.Warn("fallback attempt failed", "extras", candidate.String(), "reason", next.Reason)
		outcome = next
	}
	return nil, outcome
}
