package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pocketpaw/pocketpaw-installer/internal/config"
	"github.com/pocketpaw/pocketpaw-installer/internal/extras"
	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
)

// commandRunner executes name with args and returns combined output.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // args come from config and fixed flags
	return cmd.CombinedOutput()
}

// failureTailLines caps how much installer output is kept in a failure reason.
const failureTailLines = 5

// RealSystem implements System with python and uv subprocesses.
type RealSystem struct {
	candidates []string
	venvDir    string
	pkg        string
	indexURL   string
	timeout    time.Duration
	goos       string

	run      commandRunner
	lookPath func(file string) (string, error)
	stat     func(name string) (os.FileInfo, error)

	// uv is the argv prefix that invokes uv; set by EnsureUV.
	uv []string
}

// NewRealSystem returns a RealSystem configured from cfg, installing into paths.VenvDir.
func NewRealSystem(cfg *config.Config, paths config.Paths) *RealSystem {
	return &RealSystem{
		candidates: append([]string(nil), cfg.Python.Candidates...),
		venvDir:    paths.VenvDir,
		pkg:        cfg.Install.Package,
		indexURL:   cfg.Install.IndexURL,
		timeout:    time.Duration(cfg.Install.TimeoutSeconds) * time.Second,
		goos:       runtime.GOOS,
		run:        execRunner,
		lookPath:   exec.LookPath,
		stat:       os.Stat,
	}
}

// FindPython returns the first configured candidate found on PATH.
func (s *RealSystem) FindPython(_ context.Context) (string, error) {
	for _, candidate := range s.candidates {
		path, err := s.lookPath(candidate)
		if err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf(messages.SystemPythonNotOnPathFmt, strings.Join(s.candidates, ", "))
}

// PythonVersion asks the interpreter for its version.
func (s *RealSystem) PythonVersion(ctx context.Context, python string) (string, error) {
	out, err := s.run(ctx, python, "-c", "import platform; print(platform.python_version())")
	if err != nil {
		return "", fmt.Errorf(messages.SystemCommandFailedFmt, python, err, tail(out))
	}
	version := strings.TrimSpace(string(out))
	if version == "" {
		return "", errors.New(messages.SystemEmptyPythonVersion)
	}
	return version, nil
}

// FindUV returns the argv prefix of an existing uv: uv on PATH, or
// `python -m uv` when the module is importable. It installs nothing.
func (s *RealSystem) FindUV(ctx context.Context, python string) ([]string, error) {
	if path, err := s.lookPath("uv"); err == nil {
		return []string{path}, nil
	}
	out, err := s.run(ctx, python, "-m", "uv", "--version")
	if err != nil {
		return nil, fmt.Errorf(messages.SystemCommandFailedFmt, "uv", err, tail(out))
	}
	return []string{python, "-m", "uv"}, nil
}

// EnsureUV resolves uv with FindUV and falls back to installing it with pip.
func (s *RealSystem) EnsureUV(ctx context.Context, python string) error {
	if argv, err := s.FindUV(ctx, python); err == nil {
		s.uv = argv
		return nil
	}
	if out, err := s.run(ctx, python, "-m", "pip", "install", "--user", "--quiet", "uv"); err != nil {
		return fmt.Errorf(messages.SystemInstallUVFailedFmt, err, tail(out))
	}
	argv, err := s.FindUV(ctx, python)
	if err != nil {
		return err
	}
	s.uv = argv
	return nil
}

// VenvPython returns the interpreter path inside the virtual environment.
func (s *RealSystem) VenvPython() string {
	if s.goos == "windows" {
		return filepath.Join(s.venvDir, "Scripts", "python.exe")
	}
	return filepath.Join(s.venvDir, "bin", "python")
}

// Exists reports whether path exists.
func (s *RealSystem) Exists(path string) bool {
	_, err := s.stat(path)
	return err == nil
}

// CreateVenv runs `uv venv --python <python> <venv dir>`.
func (s *RealSystem) CreateVenv(ctx context.Context, python string) error {
	out, err := s.runUV(ctx, "venv", "--python", python, s.venvDir)
	if err != nil {
		return fmt.Errorf(messages.SystemCommandFailedFmt, "uv venv", err, tail(out))
	}
	return nil
}

// Install runs `uv pip install` for the package with set as extras, bounded by the
// configured timeout.
func (s *RealSystem) Install(ctx context.Context, set extras.FeatureSet) error {
	requirement := set.Requirement(s.pkg)
	args := []string{"pip", "install", "--python", s.VenvPython()}
	if s.indexURL != "" {
		args = append(args, "--index-url", s.indexURL)
	}
	args = append(args, requirement)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	out, err := s.runUV(ctx, args...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf(messages.SystemInstallTimedOutFmt, requirement, s.timeout)
		}
		return fmt.Errorf(messages.SystemInstallFailedFmt, requirement, tail(out))
	}
	return nil
}

// InstalledVersion reads the package version through importlib.metadata.
func (s *RealSystem) InstalledVersion(ctx context.Context) (string, error) {
	script := fmt.Sprintf("import importlib.metadata as m; print(m.version(%q))", s.pkg)
	out, err := s.run(ctx, s.VenvPython(), "-c", script)
	if err != nil {
		return "", fmt.Errorf(messages.SystemCommandFailedFmt, s.VenvPython(), err, tail(out))
	}
	return strings.TrimSpace(string(out)), nil
}

// runUV invokes uv with args using the prefix resolved by EnsureUV.
func (s *RealSystem) runUV(ctx context.Context, args ...string) ([]byte, error) {
	if len(s.uv) == 0 {
		return nil, errors.New(messages.SystemUVNotResolved)
	}
	argv := append(append([]string(nil), s.uv[1:]...), args...)
	return s.run(ctx, s.uv[0], argv...)
}

// tail returns the last few non-empty lines of command output, joined by " | ".
func tail(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	kept := make([]string, 0, failureTailLines)
	for i := len(lines) - 1; i >= 0 && len(kept) < failureTailLines; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		kept = append([]string{line}, kept...)
	}
	if len(kept) == 0 {
		return messages.SystemNoOutput
	}
	return strings.Join(kept, " | ")
}
