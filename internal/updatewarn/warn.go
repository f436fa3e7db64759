// Package updatewarn prints a best-effort notice when a newer pocketpaw
// release is available.
package updatewarn

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/pocketpaw/pocketpaw-installer/internal/config"
	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
	"github.com/pocketpaw/pocketpaw-installer/internal/update"
)

// Checker reports how an installed version compares with the latest release.
type Checker interface {
	Check(ctx context.Context, currentVersion string) (update.CheckResult, error)
}

// WarnIfOutdated writes an update notice to stderr when a newer release exists.
// extras is echoed in the upgrade hint. It never returns an error.
func WarnIfOutdated(ctx context.Context, checker Checker, currentVersion string, extras string, stderr io.Writer) {
	if strings.TrimSpace(os.Getenv(config.EnvNoNetwork)) != "" {
		return
	}
	if checker == nil || strings.TrimSpace(currentVersion) == "" {
		return
	}
	if stderr == nil {
		stderr = io.Discard
	}

	warnColor := color.New(color.FgYellow)
	result, err := checker.Check(ctx, currentVersion)
	if err != nil {
		if update.IsRateLimitError(err) {
			return
		}
		_, _ = warnColor.Fprintf(stderr, messages.UpdateWarnCheckFailedFmt, err)
		return
	}
	if result.Outdated {
		if extras == "" {
			extras = `""`
		}
		_, _ = warnColor.Fprintf(stderr, messages.UpdateWarnAvailableFmt, result.Latest, result.Current, extras)
		return
	}
	if result.Prerelease {
		_, _ = warnColor.Fprintf(stderr, messages.UpdateWarnPrereleaseFmt, result.Current, result.Latest)
	}
}
