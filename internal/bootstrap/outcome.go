package bootstrap

import (
	"context"
	"strings"

	"github.com/pocketpaw/pocketpaw-installer/internal/extras"
	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
)

// Outcome is the normalized result of a single install attempt.
// The zero value is a success.
type Outcome struct {
	// Reason is empty on success and holds the failure description otherwise.
	Reason string
	failed bool
}

// Success returns a successful outcome.
func Success() Outcome {
	return Outcome{}
}

// Failure returns a failed outcome. A blank reason is replaced with a generic one
// so a failure can never be mistaken for a success downstream.
func Failure(reason string) Outcome {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = messages.BootstrapInstallFailedGeneric
	}
	return Outcome{Reason: reason, failed: true}
}

// OK reports whether the attempt succeeded.
func (o Outcome) OK() bool {
	return !o.failed
}

// attempt runs the install collaborator once for set. No retries happen here.
func (b *Bootstrap) attempt(ctx context.Context, set extras.FeatureSet) Outcome {
	if err := b.sys.Install(ctx, set); err != nil {
		return Failure(err.Error())
	}
	return Success()
}
