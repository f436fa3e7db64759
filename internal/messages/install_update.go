package messages

// Update check messages.
const (
	// UpdateCreateRequestErrFmt formats request creation errors.
	UpdateCreateRequestErrFmt      = "create update check request: %w"
	UpdateFetchLatestErrFmt        = "fetch latest release: %w"
	UpdateFetchLatestStatusFmt     = "fetch latest release: unexpected status %s"
	UpdatePackageNotFoundFmt       = "package %s not found on %s"
	UpdateDecodeLatestErrFmt       = "decode latest release: %w"
	UpdateLatestMissingVersion     = "latest release missing info.version"
	UpdateInvalidLatestVersionFmt  = "invalid latest version %q: %w"
	UpdateInvalidCurrentVersionFmt = "invalid installed version %q: %w"
	UpdateRateLimitedFmt           = "package index rate limit exceeded (%s, retry after %s)"

	// UpdateWarnCheckFailedFmt formats best-effort update check failures.
	UpdateWarnCheckFailedFmt = "Warning: failed to check for updates: %v\n"
	UpdateWarnPrereleaseFmt  = "Note: running pre-release %s; latest release is %s\n"
	UpdateWarnAvailableFmt   = "Update available: %s (installed %s)\n  Upgrade: paw-installer install --extras %s\n"
)
