package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
)

// EnvInstallDir overrides the default install directory.
const EnvInstallDir = "POCKETPAW_HOME"

// EnvNoNetwork disables update checks when set to any non-empty value.
const EnvNoNetwork = "POCKETPAW_NO_NETWORK"

// defaultDirName is the install directory created under the user's home.
const defaultDirName = ".pocketpaw"

var homeDirFunc = homedir.Dir

// Paths holds resolved paths under an install directory.
type Paths struct {
	Dir         string
	ConfigPath  string
	VenvDir     string
	LockPath    string
	ReceiptPath string
	LogPath     string
}

// DefaultPaths returns the standard layout for an install directory.
func DefaultPaths(dir string) Paths {
	return Paths{
		Dir:         dir,
		ConfigPath:  filepath.Join(dir, "installer.toml"),
		VenvDir:     filepath.Join(dir, "venv"),
		LockPath:    filepath.Join(dir, ".install.lock"),
		ReceiptPath: filepath.Join(dir, "receipt.toml"),
		LogPath:     filepath.Join(dir, "logs", "install.log"),
	}
}

// ResolveDir returns the install directory: an explicit value first, then
// $POCKETPAW_HOME, then ~/.pocketpaw. A leading ~ is expanded.
func ResolveDir(explicit string) (string, error) {
	dir := strings.TrimSpace(explicit)
	if dir == "" {
		dir = strings.TrimSpace(os.Getenv(EnvInstallDir))
	}
	if dir == "" {
		home, err := homeDirFunc()
		if err != nil {
			return "", fmt.Errorf(messages.ConfigResolveHomeFmt, err)
		}
		return filepath.Join(home, defaultDirName), nil
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandDirFmt, dir, err)
	}
	return filepath.Clean(expanded), nil
}
