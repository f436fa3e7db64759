package config

// Config is the installer configuration loaded from installer.toml.
type Config struct {
	Install InstallConfig `toml:"install"`
	Python  PythonConfig  `toml:"python"`
	Log     LogConfig     `toml:"log"`
	Update  UpdateConfig  `toml:"update"`
}

// InstallConfig controls what gets installed and where.
type InstallConfig struct {
	Dir            string   `toml:"dir"`
	Package        string   `toml:"package"`
	IndexURL       string   `toml:"index_url"`
	DefaultExtras  []string `toml:"default_extras"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

// PythonConfig controls interpreter discovery.
type PythonConfig struct {
	MinVersion string   `toml:"min_version"`
	Candidates []string `toml:"candidates"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   *bool  `toml:"file"`
}

// UpdateConfig controls the PyPI release check.
type UpdateConfig struct {
	Check    *bool  `toml:"check"`
	IndexURL string `toml:"index_url"`
}

// Defaults used when installer.toml omits a value.
const (
	DefaultPackage        = "pocketpaw"
	DefaultMinPython      = "3.11"
	DefaultTimeoutSeconds = 900
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = LogFormatText
	DefaultPyPIURL        = "https://pypi.org"
)

// Log formats accepted by log.format.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// DefaultPythonCandidates lists interpreter names probed in order.
var DefaultPythonCandidates = []string{"python3.13", "python3.12", "python3.11", "python3", "python"}

// Default returns the configuration used when no installer.toml exists.
func Default(dir string) Config {
	logToFile := true
	checkUpdates := true
	return Config{
		Install: InstallConfig{
			Dir:            dir,
			Package:        DefaultPackage,
			DefaultExtras:  []string{"recommended"},
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Python: PythonConfig{
			MinVersion: DefaultMinPython,
			Candidates: append([]string(nil), DefaultPythonCandidates...),
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			File:   &logToFile,
		},
		Update: UpdateConfig{
			Check:    &checkUpdates,
			IndexURL: DefaultPyPIURL,
		},
	}
}

// LogToFile reports whether logs are also written under the install dir.
func (c *Config) LogToFile() bool {
	return c.Log.File == nil || *c.Log.File
}

// UpdateCheckEnabled reports whether the PyPI release check should run.
func (c *Config) UpdateCheckEnabled() bool {
	return c.Update.Check == nil || *c.Update.Check
}
