package bootstrap

import (
	"context"

	"github.com/pocketpaw/pocketpaw-installer/internal/extras"
)

// System abstracts the environment collaborators the orchestrator drives.
// This interface is intentionally package-local so Run can be unit-tested
// with fakes; RealSystem shells out to python and uv.
type System interface {
	// FindPython locates a usable interpreter binary.
	FindPython(ctx context.Context) (string, error)
	// PythonVersion returns the interpreter's version, e.g. "3.12.1".
	PythonVersion(ctx context.Context, python string) (string, error)
	// EnsureUV confirms the uv package manager is available, installing it if needed.
	EnsureUV(ctx context.Context, python string) error
	// VenvPython returns the path of the target virtual environment's interpreter.
	VenvPython() string
	// Exists reports whether path exists.
	Exists(path string) bool
	// CreateVenv creates the target virtual environment using python.
	CreateVenv(ctx context.Context, python string) error
	// Install installs the package with the given extras into the virtual environment.
	// A nil error means success; the error text is the human-readable failure reason.
	Install(ctx context.Context, set extras.FeatureSet) error
	// InstalledVersion reads the package version installed in the virtual environment.
	InstalledVersion(ctx context.Context) (string, error)
}
