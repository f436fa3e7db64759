package messages

// Extras picker prompts and summary text.
const (
	// WizardRequiresTerminal indicates the picker was opened without a TTY.
	WizardRequiresTerminal = "the extras picker requires an interactive terminal; pass --extras instead"
	WizardCancelled        = "extras selection cancelled"
	WizardNoOptions        = "the extras picker has no options to show"
	WizardUnknownModeFmt   = "unknown install profile %q"

	WizardModeTitle       = "Which pocketpaw features should be installed?"
	WizardModeRecommended = "Recommended (dashboard, browser, memory and common channels)"
	WizardModeAll         = "Everything"
	WizardModeMinimal     = "Minimal (core package only)"
	WizardModeCustom      = "Custom selection..."
	WizardCustomTitle     = "Select extras (space to toggle, enter to continue)"
	WizardChoiceLabelFmt  = "%-12s %s"
	WizardCustomChoice    = "from config"
	WizardConfirmTitle    = "Install with these extras?"

	WizardSummaryExtrasFmt   = "Extras: %s\n"
	WizardSummaryFallbackFmt = "If the install fails the installer retries with: %s\n"
	WizardSummaryHeavyNote   = "Heavy bundles build native dependencies and can take several minutes.\n"
)
