// Package update compares the installed pocketpaw version with the latest
// release published on the package index.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-version"

	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}
var retryDelay = 250 * time.Millisecond
var updateSleep = time.Sleep

const fetchLatestRetryCount = 1

// RateLimitError indicates the index throttled the update check.
//
// Callers should treat this as a best-effort failure and keep output quiet.
type RateLimitError struct {
	StatusCode int
	Status     string
	RetryAfter *int
}

func (e *RateLimitError) Error() string {
	retryText := "unknown"
	if e.RetryAfter != nil {
		retryText = fmt.Sprintf("%ds", *e.RetryAfter)
	}
	return fmt.Sprintf(messages.UpdateRateLimitedFmt, e.Status, retryText)
}

// IsRateLimitError reports whether err represents a rate-limit condition.
func IsRateLimitError(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// CheckResult captures the latest release check outcome.
type CheckResult struct {
	Current  string
	Latest   string
	Outdated bool
	// Prerelease is true when the installed version carries a pre-release suffix.
	Prerelease bool
}

// Checker looks up the latest release of one package on one index.
type Checker struct {
	// IndexURL is the index base URL, for example https://pypi.org.
	IndexURL string
	Package  string
}

// Check fetches the latest release and compares it to currentVersion.
func (c Checker) Check(ctx context.Context, currentVersion string) (CheckResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	current, err := version.NewVersion(strings.TrimSpace(currentVersion))
	if err != nil {
		return CheckResult{}, fmt.Errorf(messages.UpdateInvalidCurrentVersionFmt, currentVersion, err)
	}

	latestRaw, err := c.fetchLatestVersion(ctx)
	if err != nil {
		return CheckResult{}, err
	}
	latest, err := version.NewVersion(latestRaw)
	if err != nil {
		return CheckResult{}, fmt.Errorf(messages.UpdateInvalidLatestVersionFmt, latestRaw, err)
	}

	return CheckResult{
		Current:    current.Original(),
		Latest:     latest.Original(),
		Outdated:   current.LessThan(latest),
		Prerelease: current.Prerelease() != "",
	}, nil
}

type projectResponse struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
}

// projectURL returns the JSON API endpoint for the package.
func (c Checker) projectURL() (string, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(c.IndexURL), "/"))
	if err != nil {
		return "", fmt.Errorf(messages.UpdateCreateRequestErrFmt, err)
	}
	return base.JoinPath("pypi", c.Package, "json").String(), nil
}

// fetchLatestVersion returns the info.version field of the project document.
func (c Checker) fetchLatestVersion(ctx context.Context) (string, error) {
	endpoint, err := c.projectURL()
	if err != nil {
		return "", err
	}
	for attempt := 0; attempt <= fetchLatestRetryCount; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return "", fmt.Errorf(messages.UpdateCreateRequestErrFmt, err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "paw-installer")

		resp, err := httpClient.Do(req)
		if err != nil {
			if shouldRetryLatestCheck(err, 0, attempt) {
				updateSleep(retryDelay)
				continue
			}
			return "", fmt.Errorf(messages.UpdateFetchLatestErrFmt, err)
		}

		if resp.StatusCode != http.StatusOK {
			if rateLimitErr := rateLimitErrorFromResponse(resp); rateLimitErr != nil {
				_ = resp.Body.Close()
				return "", rateLimitErr
			}
			status := resp.StatusCode
			statusText := resp.Status
			_ = resp.Body.Close()
			if shouldRetryLatestCheck(nil, status, attempt) {
				updateSleep(retryDelay)
				continue
			}
			if status == http.StatusNotFound {
				return "", fmt.Errorf(messages.UpdatePackageNotFoundFmt, c.Package, c.IndexURL)
			}
			return "", fmt.Errorf(messages.UpdateFetchLatestStatusFmt, statusText)
		}

		var payload projectResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			_ = resp.Body.Close()
			return "", fmt.Errorf(messages.UpdateDecodeLatestErrFmt, err)
		}
		_ = resp.Body.Close()
		latest := strings.TrimSpace(payload.Info.Version)
		if latest == "" {
			return "", errors.New(messages.UpdateLatestMissingVersion)
		}
		return latest, nil
	}

	return "", fmt.Errorf(messages.UpdateFetchLatestErrFmt, errors.New("retry budget exhausted"))
}

func rateLimitErrorFromResponse(resp *http.Response) *RateLimitError {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return nil
	}
	rl := &RateLimitError{StatusCode: resp.StatusCode, Status: resp.Status}
	if raw := strings.TrimSpace(resp.Header.Get("Retry-After")); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil {
			rl.RetryAfter = &seconds
		}
	}
	return rl
}

func shouldRetryLatestCheck(err error, statusCode int, attempt int) bool {
	if attempt >= fetchLatestRetryCount {
		return false
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		var netErr net.Error
		return errors.As(err, &netErr)
	}
	return statusCode >= 500 && statusCode <= 599
}
