package receipt

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/aymanbagabas/go-udiff"

	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
)

// DefaultDiffMaxLines is the default maximum number of diff lines shown.
const DefaultDiffMaxLines = 40

// Diff renders a unified diff from previous to current. A nil previous diffs
// against an empty file. The diff is empty when only installed_at changed;
// the bool reports whether lines were cut at maxLines.
func Diff(previous *Receipt, current Receipt, maxLines int) (string, bool, error) {
	if previous != nil && sameInstall(*previous, current) {
		return "", false, nil
	}
	from := ""
	if previous != nil {
		data, err := Encode(*previous)
		if err != nil {
			return "", false, err
		}
		from = string(data)
	}
	data, err := Encode(current)
	if err != nil {
		return "", false, err
	}
	diff, truncated := renderTruncated("receipt.toml (previous)", "receipt.toml", from, string(data), maxLines)
	return diff, truncated, nil
}

// sameInstall compares two receipts field by field, ignoring InstalledAt.
func sameInstall(a Receipt, b Receipt) bool {
	for _, r := range []*Receipt{&a, &b} {
		r.InstalledAt = time.Time{}
		r.Extras = nonNil(r.Extras)
		r.RequestedExtras = nonNil(r.RequestedExtras)
	}
	return reflect.DeepEqual(a, b)
}

func renderTruncated(fromName string, toName string, from string, to string, maxLines int) (string, bool) {
	limit := maxLines
	if limit <= 0 {
		limit = DefaultDiffMaxLines
	}
	lines := strings.Split(strings.TrimRight(udiff.Unified(fromName, toName, from, to), "\n"), "\n")
	if len(lines) <= limit {
		return strings.Join(lines, "\n") + "\n", false
	}
	kept := append(lines[:limit:limit], fmt.Sprintf(messages.ReceiptDiffTruncatedFmt, limit))
	return strings.Join(kept, "\n") + "\n", true
}
