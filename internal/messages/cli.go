package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse   = "paw-installer"
	RootShort = "Install pocketpaw into an isolated Python environment"
	RootLong  = "paw-installer provisions pocketpaw into a virtual environment with uv.\n" +
		"When the requested extras fail to install it retries with smaller sets\n" +
		"so a working core install is always the outcome when one is possible."

	RootFlagConfig   = "Path to installer.toml (default <install dir>/installer.toml)"
	RootFlagDir      = "Install directory (default $POCKETPAW_HOME or ~/.pocketpaw)"
	RootFlagLogLevel = "Console log level: debug, info, warn, or error"
	RootFlagQuiet    = "Suppress progress output and console logs"
	RootVersionFlag  = "Print version and exit"

	RootInvalidLogLevelFmt = "invalid --log-level %q (expected debug, info, warn, or error)"
	RootOpenLogFmt         = "set up logging: %w"
	RootInstallDirFmt      = "resolve install directory: %w"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// InstallUse is the install command usage.
	InstallUse   = "install"
	InstallShort = "Install pocketpaw with the requested extras, falling back when they fail"

	InstallFlagExtras      = "Comma-separated extras to install (empty string installs the core package only)"
	InstallFlagJSON        = "Print the install status as JSON"
	InstallFlagNoWizard    = "Never open the extras picker; use configured default_extras"
	InstallFlagShowChanges = "Print a diff of the install receipt against the previous install"
	InstallFlagDiffLines   = "Maximum receipt diff lines to print"

	InstallSucceededFmt     = "pocketpaw %s installed with extras: %s\n"
	InstallFallbackFmt      = "Requested extras %s could not be installed; fell back to %s.\n"
	InstallFailedFmt        = "Install failed: %s\n"
	InstallInterpreterFmt   = "Run it with: %s -m pocketpaw\n"
	InstallReceiptWarnFmt   = "Warning: could not record install receipt: %v\n"
	InstallNoReceiptChanges = "Install receipt unchanged."
	InstallPickerFailedFmt  = "extras picker: %w"

	// ChainUse is the chain command usage.
	ChainUse      = "chain [extras...]"
	ChainShort    = "Show the fallback attempts for a set of extras without installing"
	ChainFlagJSON = "Print the chain as JSON"
	ChainTierFmt  = "Requested: %s (tier %s)\n"
	ChainStepFmt  = "  %d. %s\n"
)
