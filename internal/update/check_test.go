package update

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func withClient(t *testing.T, client *http.Client) {
	t.Helper()
	origClient := httpClient
	origSleep := updateSleep
	httpClient = client
	updateSleep = func(time.Duration) {}
	t.Cleanup(func() {
		httpClient = origClient
		updateSleep = origSleep
	})
}

func withIndexServer(t *testing.T, handler http.HandlerFunc) Checker {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	withClient(t, server.Client())
	return Checker{IndexURL: server.URL, Package: "pocketpaw"}
}

func jsonVersion(v string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"info":{"name":"pocketpaw","version":"` + v + `"}}`))
	}
}

func TestCheckOutdated(t *testing.T) {
	var gotPath string
	checker := withIndexServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		jsonVersion("0.4.0")(w, r)
	})

	result, err := checker.Check(context.Background(), "0.3.1")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if gotPath != "/pypi/pocketpaw/json" {
		t.Fatalf("unexpected request path %q", gotPath)
	}
	if !result.Outdated {
		t.Fatalf("expected outdated, got %+v", result)
	}
	if result.Latest != "0.4.0" || result.Current != "0.3.1" {
		t.Fatalf("unexpected versions %+v", result)
	}
}

func TestCheckUpToDate(t *testing.T) {
	checker := withIndexServer(t, jsonVersion("0.3.1"))

	result, err := checker.Check(context.Background(), "0.3.1")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if result.Outdated {
		t.Fatalf("expected up-to-date, got %+v", result)
	}
}

func TestCheckNewerThanLatest(t *testing.T) {
	checker := withIndexServer(t, jsonVersion("0.3.0"))

	result, err := checker.Check(context.Background(), "0.4.0rc1")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if result.Outdated {
		t.Fatalf("expected not outdated, got %+v", result)
	}
	if !result.Prerelease {
		t.Fatalf("expected prerelease flag, got %+v", result)
	}
}

func TestCheckTrailingSlashIndex(t *testing.T) {
	var gotPath string
	checker := withIndexServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		jsonVersion("1.0.0")(w, r)
	})
	checker.IndexURL += "/"

	if _, err := checker.Check(context.Background(), "1.0.0"); err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if gotPath != "/pypi/pocketpaw/json" {
		t.Fatalf("unexpected request path %q", gotPath)
	}
}

func TestCheckInvalidLatest(t *testing.T) {
	checker := withIndexServer(t, jsonVersion("not a version"))

	if _, err := checker.Check(context.Background(), "1.0.0"); err == nil {
		t.Fatal("expected error for invalid latest version")
	}
}

func TestCheckInvalidCurrentVersion(t *testing.T) {
	checker := Checker{IndexURL: "https://pypi.org", Package: "pocketpaw"}
	if _, err := checker.Check(context.Background(), "garbage!"); err == nil {
		t.Fatal("expected error for invalid current version")
	}
}

func TestFetchLatestVersionRequestError(t *testing.T) {
	withClient(t, http.DefaultClient)
	checker := Checker{IndexURL: "http://[::1", Package: "pocketpaw"}

	if _, err := checker.fetchLatestVersion(context.Background()); err == nil {
		t.Fatal("expected error for invalid index URL")
	}
}

func TestFetchLatestVersionDoError(t *testing.T) {
	withClient(t, &http.Client{
		Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("boom")
		}),
	})
	checker := Checker{IndexURL: "https://example.com", Package: "pocketpaw"}

	if _, err := checker.fetchLatestVersion(context.Background()); err == nil {
		t.Fatal("expected error for failed request")
	}
}

func TestFetchLatestVersionRetriesOnTransientError(t *testing.T) {
	attempt := 0
	withClient(t, &http.Client{
		Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			attempt++
			if attempt == 1 {
				return nil, &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("temporary")}
			}
			return &http.Response{
				StatusCode: http.StatusOK,
				Status:     "200 OK",
				Header:     make(http.Header),
				Body:       io.NopCloser(strings.NewReader(`{"info":{"version":"1.2.3"}}`)),
			}, nil
		}),
	})
	sleepCalls := 0
	updateSleep = func(time.Duration) { sleepCalls++ }
	checker := Checker{IndexURL: "https://example.com", Package: "pocketpaw"}

	got, err := checker.fetchLatestVersion(context.Background())
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if got != "1.2.3" {
		t.Fatalf("expected 1.2.3, got %s", got)
	}
	if attempt != 2 || sleepCalls != 1 {
		t.Fatalf("expected 2 attempts and 1 sleep, got %d and %d", attempt, sleepCalls)
	}
}

func TestFetchLatestVersionRetriesServerErrorOnce(t *testing.T) {
	calls := 0
	checker := withIndexServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})

	if _, err := checker.fetchLatestVersion(context.Background()); err == nil {
		t.Fatal("expected error for non-200 status")
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestFetchLatestVersionNotFound(t *testing.T) {
	checker := withIndexServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := checker.fetchLatestVersion(context.Background())
	if err == nil || !strings.Contains(err.Error(), "package pocketpaw not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestFetchLatestVersionRateLimit(t *testing.T) {
	checker := withIndexServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := checker.fetchLatestVersion(context.Background())
	if !IsRateLimitError(err) {
		t.Fatalf("expected rate limit error, got %T: %v", err, err)
	}
	var rl *RateLimitError
	if !errors.As(err, &rl) || rl.RetryAfter == nil || *rl.RetryAfter != 30 {
		t.Fatalf("expected retry-after 30, got %#v", rl)
	}
	if !strings.Contains(err.Error(), "30s") {
		t.Fatalf("expected retry hint in %q", err.Error())
	}
}

func TestFetchLatestVersionRateLimitWithoutRetryAfter(t *testing.T) {
	checker := withIndexServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := checker.fetchLatestVersion(context.Background())
	if !IsRateLimitError(err) || !strings.Contains(err.Error(), "unknown") {
		t.Fatalf("expected rate limit error with unknown retry, got %v", err)
	}
}

func TestFetchLatestVersionDecodeError(t *testing.T) {
	checker := withIndexServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{"))
	})

	if _, err := checker.fetchLatestVersion(context.Background()); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestFetchLatestVersionMissingVersion(t *testing.T) {
	checker := withIndexServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"info":{}}`))
	})

	if _, err := checker.fetchLatestVersion(context.Background()); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestShouldRetryLatestCheck(t *testing.T) {
	if shouldRetryLatestCheck(context.Canceled, 0, 0) {
		t.Fatal("canceled requests must not retry")
	}
	if shouldRetryLatestCheck(nil, http.StatusBadRequest, 0) {
		t.Fatal("4xx must not retry")
	}
	if shouldRetryLatestCheck(nil, http.StatusServiceUnavailable, fetchLatestRetryCount) {
		t.Fatal("retry budget must be honored")
	}
}
