package messages

// Config messages for installer.toml loading and validation.
const (
	// ConfigReadFileFmt formats config read errors other than a missing file.
	ConfigReadFileFmt         = "failed to read config %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s: unrecognized keys: %w"
	ConfigResolveHomeFmt      = "resolve home dir: %w"
	ConfigExpandDirFmt        = "expand install dir %s: %w"

	ConfigPackageRequiredFmt      = "%s: install.package is required"
	ConfigTimeoutInvalidFmt       = "%s: install.timeout_seconds must be positive (got %d)"
	ConfigURLInvalidFmt           = "%s: %s is invalid: %w"
	ConfigURLSchemeFmt            = "scheme %q is not http or https"
	ConfigURLHostRequired         = "host is required"
	ConfigMinPythonInvalidFmt     = "%s: python.min_version %q is invalid: %w"
	ConfigDefaultExtrasInvalidFmt = "%s: install.default_extras: %w"
	ConfigCandidatesRequiredFmt   = "%s: python.candidates must list at least one interpreter"
	ConfigCandidateEmptyFmt       = "%s: python.candidates[%d] is empty"
	ConfigLogLevelInvalidFmt      = "%s: log.level %q must be one of debug, info, warn, error"
	ConfigLogFormatInvalidFmt     = "%s: log.format %q must be text or json"
)
