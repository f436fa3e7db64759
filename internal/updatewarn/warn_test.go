package updatewarn

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pocketpaw/pocketpaw-installer/internal/config"
	"github.com/pocketpaw/pocketpaw-installer/internal/update"
)

type checkerFunc func(context.Context, string) (update.CheckResult, error)

func (f checkerFunc) Check(ctx context.Context, current string) (update.CheckResult, error) {
	return f(ctx, current)
}

func fixed(result update.CheckResult, err error) (Checker, *int) {
	calls := 0
	return checkerFunc(func(context.Context, string) (update.CheckResult, error) {
		calls++
		return result, err
	}), &calls
}

func TestWarnIfOutdated_SkipsWhenNoNetworkSet(t *testing.T) {
	t.Setenv(config.EnvNoNetwork, "1")
	checker, calls := fixed(update.CheckResult{}, nil)

	var stderr bytes.Buffer
	WarnIfOutdated(context.Background(), checker, "0.3.0", "dashboard", &stderr)
	if *calls != 0 {
		t.Fatalf("expected update check to be skipped, got %d calls", *calls)
	}
	if stderr.Len() != 0 {
		t.Fatalf("expected no output, got %q", stderr.String())
	}
}

func TestWarnIfOutdated_SkipsWithoutInstalledVersion(t *testing.T) {
	checker, calls := fixed(update.CheckResult{}, nil)

	WarnIfOutdated(context.Background(), checker, " ", "", nil)
	if *calls != 0 {
		t.Fatalf("expected update check to be skipped, got %d calls", *calls)
	}
}

func TestWarnIfOutdated_Outputs(t *testing.T) {
	cases := []struct {
		name   string
		result update.CheckResult
		err    error
		extras string
		want   string
	}{
		{name: "error", err: errors.New("boom"), want: "failed to check for updates: boom"},
		{name: "prerelease", result: update.CheckResult{Prerelease: true, Current: "0.4.0rc1", Latest: "0.3.0"}, want: "running pre-release 0.4.0rc1"},
		{name: "outdated", result: update.CheckResult{Outdated: true, Latest: "0.4.0", Current: "0.3.0"}, extras: "dashboard", want: "--extras dashboard"},
		{name: "outdated bare", result: update.CheckResult{Outdated: true, Latest: "0.4.0", Current: "0.3.0"}, want: `--extras ""`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checker, _ := fixed(tc.result, tc.err)

			var stderr bytes.Buffer
			WarnIfOutdated(context.Background(), checker, "0.3.0", tc.extras, &stderr)
			if !strings.Contains(stderr.String(), tc.want) {
				t.Fatalf("expected %q in output, got %q", tc.want, stderr.String())
			}
		})
	}
}

func TestWarnIfOutdated_RateLimitProducesNoOutput(t *testing.T) {
	checker, _ := fixed(update.CheckResult{}, &update.RateLimitError{StatusCode: 429, Status: "429 Too Many Requests"})

	var stderr bytes.Buffer
	WarnIfOutdated(context.Background(), checker, "0.3.0", "", &stderr)
	if stderr.Len() != 0 {
		t.Fatalf("expected no output, got %q", stderr.String())
	}
}

func TestWarnIfOutdated_NoOutputWhenUpToDate(t *testing.T) {
	checker, _ := fixed(update.CheckResult{Current: "0.3.0", Latest: "0.3.0"}, nil)

	var stderr bytes.Buffer
	WarnIfOutdated(context.Background(), checker, "0.3.0", "", &stderr)
	if stderr.Len() != 0 {
		t.Fatalf("expected no output, got %q", stderr.String())
	}
}

func TestWarnIfOutdated_NilWriterDoesNotPanic(t *testing.T) {
	checker, _ := fixed(update.CheckResult{Outdated: true, Current: "0.3.0", Latest: "0.4.0"}, nil)
	WarnIfOutdated(context.Background(), checker, "0.3.0", "", nil)
}
