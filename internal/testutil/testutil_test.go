package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteStubCreatesExecutableThatSucceeds(t *testing.T) {
	dir := t.TempDir()
	stubPath := WriteStub(t, dir, "uv")

	info, err := os.Stat(stubPath)
	if err != nil {
		t.Fatalf("stat stub: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Fatalf("expected mode 0755, got %#o", info.Mode().Perm())
	}
	if err := exec.Command(stubPath).Run(); err != nil {
		t.Fatalf("expected success exit, got %v", err)
	}
}

func TestWriteStubWithExitReturnsRequestedCode(t *testing.T) {
	stubPath := WriteStubWithExit(t, t.TempDir(), "python3", 7)

	err := exec.Command(stubPath).Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T", err)
	}
	if exitErr.ExitCode() != 7 {
		t.Fatalf("expected exit code 7, got %d", exitErr.ExitCode())
	}
}

func TestWriteScriptRunsBody(t *testing.T) {
	dir := t.TempDir()
	stubPath := WriteScript(t, dir, "python3", `echo "3.12.4 $1"`)
	if filepath.Dir(stubPath) != dir {
		t.Fatalf("expected stub in %s, got %s", dir, stubPath)
	}

	out, err := exec.Command(stubPath, "-V").Output()
	if err != nil {
		t.Fatalf("run script: %v", err)
	}
	if got := strings.TrimSpace(string(out)); got != "3.12.4 -V" {
		t.Fatalf("unexpected output %q", got)
	}
}
