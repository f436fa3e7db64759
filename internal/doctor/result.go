// Package doctor inspects an install directory and reports what is healthy,
// what is degraded and what is broken.
package doctor

// Status is the severity of a check result.
type Status string

const (
	// StatusOK means the check passed.
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Result is the outcome of a single check.
type Result struct {
	Status         Status `json:"status"`
	CheckName      string `json:"check"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation,omitempty"`
}

// HasFailure reports whether any result failed.
func HasFailure(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
