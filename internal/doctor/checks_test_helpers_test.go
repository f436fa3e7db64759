package doctor

import (
	"context"
	"testing"

	"github.com/pocketpaw/pocketpaw-installer/internal/update"
)

func requireResultByCheckName(t *testing.T, results []Result, checkName string) Result {
	t.Helper()
	var found *Result
	for _, result := range results {
		if result.CheckName == checkName {
			if found != nil {
				t.Fatalf("multiple %s results in %#v", checkName, results)
			}
			copyResult := result
			found = &copyResult
		}
	}
	if found == nil {
		t.Fatalf("missing %s result in %#v", checkName, results)
	}
	return *found
}

type fakeEnv struct {
	python        string
	findErr       error
	pythonVersion string
	versionErr    error
	uv            []string
	uvErr         error
	venvPython    string
	venvExists    bool
	installed     string
	installedErr  error
}

func healthyEnv() *fakeEnv {
	return &fakeEnv{
		python:        "/usr/bin/python3",
		pythonVersion: "3.12.1",
		uv:            []string{"/usr/local/bin/uv"},
		venvPython:    "/home/u/.pocketpaw/venv/bin/python",
		venvExists:    true,
		installed:     "0.3.0",
	}
}

func (f *fakeEnv) FindPython(context.Context) (string, error) { return f.python, f.findErr }

func (f *fakeEnv) PythonVersion(context.Context, string) (string, error) {
	return f.pythonVersion, f.versionErr
}

func (f *fakeEnv) FindUV(context.Context, string) ([]string, error) { return f.uv, f.uvErr }

func (f *fakeEnv) VenvPython() string { return f.venvPython }

func (f *fakeEnv) Exists(string) bool { return f.venvExists }

func (f *fakeEnv) InstalledVersion(context.Context) (string, error) {
	return f.installed, f.installedErr
}

type fakeUpdates struct {
	result update.CheckResult
	err    error
	calls  int
}

func (f *fakeUpdates) Check(context.Context, string) (update.CheckResult, error) {
	f.calls++
	return f.result, f.err
}
