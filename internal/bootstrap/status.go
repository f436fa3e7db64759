package bootstrap

// Status is the final result of one Run. It is returned by value and never
// modified afterwards; Installed is true exactly when Error is empty.
type Status struct {
	Installed        bool     `json:"pocketpaw_installed"`
	InstalledVersion string   `json:"installed_version,omitempty"`
	Error            string   `json:"error,omitempty"`
	PythonPath       string   `json:"python_path,omitempty"`
	PythonVersion    string   `json:"python_version,omitempty"`
	VenvPath         string   `json:"venv_path,omitempty"`
	RequestedExtras  []string `json:"requested_extras"`
	InstalledExtras  []string `json:"installed_extras,omitempty"`
	FallbackUsed     bool     `json:"fallback_used"`
}

// failed returns s marked as failed with reason. Success-only fields are cleared.
func (s Status) failed(reason string) Status {
	s.Installed = false
	s.InstalledVersion = ""
	s.InstalledExtras = nil
	s.FallbackUsed = false
	s.Error = reason
	return s
}

// succeeded returns s marked as installed with the given version and extras.
func (s Status) succeeded(version string, installed []string, fallback bool) Status {
	s.Installed = true
	s.InstalledVersion = version
	s.InstalledExtras = installed
	s.FallbackUsed = fallback
	s.Error = ""
	return s
}
