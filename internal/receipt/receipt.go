// Package receipt records what the last successful install put on disk.
package receipt

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/pocketpaw/pocketpaw-installer/internal/bootstrap"
	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
)

// Receipt is the on-disk record of a successful install.
type Receipt struct {
	Package         string    `toml:"package"`
	Version         string    `toml:"version"`
	Extras          []string  `toml:"extras"`
	RequestedExtras []string  `toml:"requested_extras"`
	FallbackUsed    bool      `toml:"fallback_used"`
	Python          string    `toml:"python"`
	PythonVersion   string    `toml:"python_version"`
	VenvPython      string    `toml:"venv_python"`
	InstalledAt     time.Time `toml:"installed_at"`
}

// FromStatus builds a receipt from a successful bootstrap status.
func FromStatus(pkg string, status bootstrap.Status, now time.Time) (Receipt, error) {
	if !status.Installed {
		return Receipt{}, errors.New(messages.ReceiptRequiresSuccess)
	}
	return Receipt{
		Package:         pkg,
		Version:         status.InstalledVersion,
		Extras:          nonNil(status.InstalledExtras),
		RequestedExtras: nonNil(status.RequestedExtras),
		FallbackUsed:    status.FallbackUsed,
		Python:          status.PythonPath,
		PythonVersion:   status.PythonVersion,
		VenvPython:      status.VenvPath,
		InstalledAt:     now.UTC().Truncate(time.Second),
	}, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string(nil), values...)
}

// Encode renders the receipt as TOML.
func Encode(r Receipt) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf(messages.ReceiptEncodeFmt, err)
	}
	return buf.Bytes(), nil
}

// Load reads the receipt at path. The bool is false when no receipt exists.
func Load(path string) (*Receipt, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf(messages.ReceiptReadFmt, path, err)
	}
	var out Receipt
	if err := toml.Unmarshal(data, &out); err != nil {
		return nil, true, fmt.Errorf(messages.ReceiptDecodeFmt, path, err)
	}
	return &out, true, nil
}

// Write stores the receipt at path by writing a temp file and renaming it into place.
func Write(path string, r Receipt) error {
	data, err := Encode(r)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.ReceiptWriteFmt, path, err)
	}
	tmp, err := os.CreateTemp(dir, ".receipt-*.toml")
	if err != nil {
		return fmt.Errorf(messages.ReceiptWriteFmt, path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.ReceiptWriteFmt, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf(messages.ReceiptWriteFmt, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf(messages.ReceiptWriteFmt, path, err)
	}
	return nil
}
