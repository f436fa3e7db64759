package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/pocketpaw/pocketpaw-installer/internal/extras"
	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
)

var validLogLevels = map[string]struct{}{
	"debug":   {},
	"info":    {},
	"warn":    {},
	"warning": {},
	"error":   {},
}

var validLogFormats = map[string]struct{}{
	LogFormatText: {},
	LogFormatJSON: {},
}

// Validate ensures the config is complete and consistent.
func (c *Config) Validate(path string) error {
	if strings.TrimSpace(c.Install.Package) == "" {
		return fmt.Errorf(messages.ConfigPackageRequiredFmt, path)
	}
	if c.Install.TimeoutSeconds <= 0 {
		return fmt.Errorf(messages.ConfigTimeoutInvalidFmt, path, c.Install.TimeoutSeconds)
	}
	if c.Install.IndexURL != "" {
		if err := validateURL(c.Install.IndexURL); err != nil {
			return fmt.Errorf(messages.ConfigURLInvalidFmt, path, "install.index_url", err)
		}
	}
	if err := extras.Parse(c.Install.DefaultExtras...).Validate(); err != nil {
		return fmt.Errorf(messages.ConfigDefaultExtrasInvalidFmt, path, err)
	}
	if _, err := version.NewVersion(strings.TrimSpace(c.Python.MinVersion)); err != nil {
		return fmt.Errorf(messages.ConfigMinPythonInvalidFmt, path, c.Python.MinVersion, err)
	}
	if len(c.Python.Candidates) == 0 {
		return fmt.Errorf(messages.ConfigCandidatesRequiredFmt, path)
	}
	for i, candidate := range c.Python.Candidates {
		if strings.TrimSpace(candidate) == "" {
			return fmt.Errorf(messages.ConfigCandidateEmptyFmt, path, i)
		}
	}
	if _, ok := validLogLevels[strings.ToLower(c.Log.Level)]; !ok {
		return fmt.Errorf(messages.ConfigLogLevelInvalidFmt, path, c.Log.Level)
	}
	if _, ok := validLogFormats[strings.ToLower(c.Log.Format)]; !ok {
		return fmt.Errorf(messages.ConfigLogFormatInvalidFmt, path, c.Log.Format)
	}
	if err := validateURL(c.Update.IndexURL); err != nil {
		return fmt.Errorf(messages.ConfigURLInvalidFmt, path, "update.index_url", err)
	}
	return nil
}

// validateURL requires an absolute http(s) URL.
func validateURL(raw string) error {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf(messages.ConfigURLSchemeFmt, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf(messages.ConfigURLHostRequired)
	}
	return nil
}
