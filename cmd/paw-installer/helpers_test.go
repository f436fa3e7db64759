package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/pocketpaw/pocketpaw-installer/internal/bootstrap"
	"github.com/pocketpaw/pocketpaw-installer/internal/config"
	"github.com/pocketpaw/pocketpaw-installer/internal/extras"
	"github.com/pocketpaw/pocketpaw-installer/internal/update"
	"github.com/pocketpaw/pocketpaw-installer/internal/updatewarn"
)

// stubSystem is a scripted bootstrap.System that also satisfies doctor.Environment.
type stubSystem struct {
	failFor   map[string]error
	installed string
	attempts  []string
	noUV      bool
}

func (s *stubSystem) FindPython(context.Context) (string, error) { return "/usr/bin/python3", nil }

func (s *stubSystem) PythonVersion(context.Context, string) (string, error) { return "3.12.3", nil }

func (s *stubSystem) EnsureUV(context.Context, string) error { return nil }

func (s *stubSystem) FindUV(context.Context, string) ([]string, error) {
	if s.noUV {
		return nil, errors.New("uv missing")
	}
	return []string{"/usr/bin/uv"}, nil
}

func (s *stubSystem) VenvPython() string { return "/tmp/pocketpaw/venv/bin/python" }

func (s *stubSystem) Exists(string) bool { return true }

func (s *stubSystem) CreateVenv(context.Context, string) error { return nil }

func (s *stubSystem) Install(_ context.Context, set extras.FeatureSet) error {
	s.attempts = append(s.attempts, set.String())
	if err, ok := s.failFor[set.String()]; ok {
		return err
	}
	return nil
}

func (s *stubSystem) InstalledVersion(context.Context) (string, error) {
	if s.installed == "" {
		return "", errors.New("not installed")
	}
	return s.installed, nil
}

type stubUpdates struct {
	result update.CheckResult
	err    error
}

func (s stubUpdates) Check(context.Context, string) (update.CheckResult, error) {
	return s.result, s.err
}

// withStubs swaps the process seams for the duration of t.
func withStubs(t *testing.T, sys *stubSystem, updates stubUpdates) {
	t.Helper()
	origSystem := newSystemFunc
	origInteractive := isInteractiveFunc
	origPicker := pickExtrasFunc
	origUpdates := newUpdateCheckerFunc
	newSystemFunc = func(*config.Config, config.Paths) bootstrap.System { return sys }
	isInteractiveFunc = func() bool { return false }
	pickExtrasFunc = func(extras.FeatureSet) (extras.FeatureSet, error) {
		t.Fatal("picker must not open")
		return nil, nil
	}
	newUpdateCheckerFunc = func(*config.Config) updatewarn.Checker { return updates }
	t.Cleanup(func() {
		newSystemFunc = origSystem
		isInteractiveFunc = origInteractive
		pickExtrasFunc = origPicker
		newUpdateCheckerFunc = origUpdates
	})
}

// run executes the CLI with args and returns stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := execute(append([]string{"paw-installer"}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}
