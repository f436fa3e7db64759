package messages

// Bootstrap messages for discovery, install attempts and the fallback chain.
const (
	// BootstrapSystemRequired indicates a System implementation is required.
	BootstrapSystemRequired      = "bootstrap system is required"
	BootstrapInvalidMinPythonFmt = "invalid minimum python version %q: %w"

	// BootstrapPythonNotFoundFmt formats interpreter discovery failures.
	BootstrapPythonNotFoundFmt = "python interpreter not found: %w"
	BootstrapPythonVersionFmt  = "failed to read python version from %s: %w"
	BootstrapPythonTooOldFmt   = "python %s at %s is too old; %s or newer is required"
	BootstrapUVUnavailableFmt  = "uv is unavailable: %w"
	BootstrapCreateVenvFmt     = "failed to create virtual environment: %w"
	BootstrapVenvMissingFmt    = "virtual environment interpreter %s does not exist"

	// BootstrapInstallFailedGeneric replaces blank failure reasons.
	BootstrapInstallFailedGeneric = "install failed"

	BootstrapCreatingVenvFmt = "Creating virtual environment for %s...\n"
	BootstrapInstallingFmt   = "Installing pocketpaw (%s)...\n"
	BootstrapFallingBackFmt  = "Install failed: %s\n  retrying with %s...\n"

	// SystemPythonNotOnPathFmt lists the interpreter names that were probed.
	SystemPythonNotOnPathFmt = "none of %s found on PATH"
	SystemCommandFailedFmt   = "%s failed: %v (%s)"
	SystemEmptyPythonVersion = "python reported an empty version"
	SystemInstallUVFailedFmt = "pip install uv failed: %v (%s)"
	SystemUVNotResolved      = "uv has not been resolved; call EnsureUV first"
	SystemInstallFailedFmt   = "failed to install %s: %s"
	SystemInstallTimedOutFmt = "install of %s timed out after %s"
	SystemNoOutput           = "(no output)"

	// LockCreateDirFmt formats lock directory creation errors.
	LockCreateDirFmt = "create directory for lock %s: %w"
	LockOpenFmt      = "open lock %s: %w"
	LockAcquireFmt   = "lock %s: %w"
	LockTimeoutFmt   = "timed out waiting for another installer after %s"
)
