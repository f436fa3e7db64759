package messages

// Doctor messages for the doctor command.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check the Python toolchain, virtual environment and pocketpaw install"

	DoctorHealthCheckFmt = "Checking pocketpaw install in %s...\n"

	DoctorCheckNamePython        = "Python"
	DoctorCheckNamePythonVersion = "PythonVersion"
	DoctorCheckNameUV            = "uv"
	DoctorCheckNameVenv          = "Venv"
	DoctorCheckNamePackage       = "Package"
	DoctorCheckNameReceipt       = "Receipt"
	DoctorCheckNameExtras        = "Extras"
	DoctorCheckNameUpdate        = "Update"

	DoctorPythonMissingFmt          = "No Python interpreter found: %v"
	DoctorPythonMissingRecommendFmt = "Install Python %s or newer, or list its executable under [python] candidates in installer.toml."
	DoctorPythonFoundFmt            = "Interpreter found: %s"
	DoctorPythonVersionOKFmt        = "Python %s satisfies >= %s"

	DoctorUVMissing          = "uv is not installed"
	DoctorUVMissingRecommend = "paw-installer install will install uv with pip; install it yourself to skip that step."
	DoctorUVFoundFmt         = "uv available: %s"

	DoctorVenvMissingFmt      = "Virtual environment interpreter missing: %s"
	DoctorVenvFoundFmt        = "Virtual environment found: %s"
	DoctorRunInstallRecommend = "Run `paw-installer install`."

	DoctorPackageMissing      = "pocketpaw is not installed in the virtual environment"
	DoctorPackageInstalledFmt = "pocketpaw %s installed"

	DoctorReceiptMissingFmt          = "No install receipt at %s"
	DoctorReceiptFoundFmt            = "Last install: %s with extras %s on %s"
	DoctorReceiptCorruptRecommendFmt = "Delete %s and run `paw-installer install` to rewrite it."
	DoctorExtrasReducedFmt           = "Installed extras %s instead of the requested %s"
	DoctorExtrasReducedRecommendFmt  = "Retry the full set later with `paw-installer install --extras %s`."

	DoctorUpdateDisabled           = "Update check disabled in installer.toml"
	DoctorUpdateSkippedFmt         = "Update check skipped because %s is set"
	DoctorUpdateRateLimited        = "Update check skipped: package index rate limit reached"
	DoctorUpdateFailedFmt          = "Failed to check for updates: %v"
	DoctorUpdateFailedRecommend    = "Check your network connection or [update] index_url."
	DoctorUpdateAvailableFmt       = "Update available: %s (installed %s)"
	DoctorUpdateAvailableRecommend = "Run `paw-installer install` to upgrade."
	DoctorUpToDateFmt              = "pocketpaw is up to date (%s)"

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-14s %s\n"
	DoctorRecommendationPrefix = "       -> "
	DoctorRecommendationIndent = "          "
	DoctorFailureSummary       = "Some checks failed."
	DoctorSuccessSummary       = "All required checks passed."

	DoctorFlagJSON               = "Print check results as JSON"
	DoctorEnvironmentUnsupported = "the configured system does not support health checks"
)
