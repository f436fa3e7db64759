package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
)

// ErrConfigValidation is a sentinel that wraps config validation failures
// (as opposed to TOML syntax or filesystem errors).
var ErrConfigValidation = errors.New("config validation failed")

// Load reads installer.toml at path. A missing file yields Default(dir);
// any other read, syntax or validation problem is returned.
func Load(path string, dir string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default(dir)
			return &cfg, nil
		}
		return nil, fmt.Errorf(messages.ConfigReadFileFmt, path, err)
	}
	cfg, err := ParseConfig(data, path, dir)
	if err != nil {
		return nil, err
	}
	cfg.Install.Dir = relativeToConfig(cfg.Install.Dir, dir, path)
	return cfg, nil
}

// relativeToConfig anchors a relative [install] dir at the directory holding
// the config file. The resolved dir and ~ paths are left alone.
func relativeToConfig(installDir string, dir string, path string) string {
	if installDir == dir || filepath.IsAbs(installDir) || strings.HasPrefix(installDir, "~") {
		return installDir
	}
	return filepath.Join(filepath.Dir(path), installDir)
}

// ParseConfig parses and validates config TOML data from a source identifier.
// Values absent from data keep their defaults for dir.
func ParseConfig(data []byte, source string, dir string) (*Config, error) {
	cfg := Default(dir)
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt, ErrConfigValidation, source, err)
	}
	if cfg.Install.Dir == "" {
		cfg.Install.Dir = dir
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	return &cfg, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}
