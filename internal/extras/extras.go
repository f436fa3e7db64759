// Package extras models the optional feature bundles ("extras") of the
// pocketpaw package and the fixed fallback policy used when they fail to install.
package extras

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
)

// Bundle names with a fixed tier. Any other name is treated as light.
const (
	Recommended = "recommended"
	All         = "all"
	Dashboard   = "dashboard"
)

// FeatureSet is an unordered set of bundle names. The empty set is the bare install.
type FeatureSet map[string]struct{}

// NewFeatureSet builds a FeatureSet from names, normalizing each one.
// Blank names are dropped and duplicates collapse.
func NewFeatureSet(names ...string) FeatureSet {
	set := make(FeatureSet, len(names))
	for _, name := range names {
		normalized := normalizeName(name)
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return set
}

// Parse splits comma-separated values (as accepted by --extras) into a FeatureSet.
// Each value may itself hold several names, e.g. "dashboard,browser".
func Parse(values ...string) FeatureSet {
	var names []string
	for _, value := range values {
		names = append(names, strings.Split(value, ",")...)
	}
	return NewFeatureSet(names...)
}

// normalizeName applies NFKC, trims whitespace and lower-cases a bundle name.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(name)))
}

// extraNamePattern is the PEP 508 extra name form after lower-casing.
var extraNamePattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9._-]*[a-z0-9])?$`)

// Validate rejects names that cannot appear in a pip requirement, reporting
// the first offending name in sorted order.
func (s FeatureSet) Validate() error {
	for _, name := range s.Sorted() {
		if !extraNamePattern.MatchString(name) {
			return fmt.Errorf(messages.ExtrasInvalidNameFmt, name)
		}
	}
	return nil
}

// Has reports whether name is a member of the set.
func (s FeatureSet) Has(name string) bool {
	_, ok := s[normalizeName(name)]
	return ok
}

// IsBare reports whether the set requests no bundles.
func (s FeatureSet) IsBare() bool {
	return len(s) == 0
}

// Sorted returns the bundle names in lexical order.
func (s FeatureSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold exactly the same bundles.
func (s FeatureSet) Equal(other FeatureSet) bool {
	if len(s) != len(other) {
		return false
	}
	for name := range s {
		if _, ok := other[name]; !ok {
			return false
		}
	}
	return true
}

// String renders the set as a comma-separated list, or "bare" when empty.
func (s FeatureSet) String() string {
	if len(s) == 0 {
		return "bare"
	}
	return strings.Join(s.Sorted(), ",")
}

// Requirement renders the pip requirement for pkg with this set of extras,
// e.g. "pocketpaw[browser,dashboard]". The bare set renders as pkg alone.
func (s FeatureSet) Requirement(pkg string) string {
	if len(s) == 0 {
		return pkg
	}
	return pkg + "[" + strings.Join(s.Sorted(), ",") + "]"
}

// Bundle describes a documented extra for the picker and help output.
type Bundle struct {
	Name        string
	Description string
}

// Known returns the documented bundles in display order.
func Known() []Bundle {
	return []Bundle{
		{Name: Recommended, Description: "Dashboard, browser control, memory and the common channels"},
		{Name: All, Description: "Every optional integration"},
		{Name: Dashboard, Description: "Web dashboard"},
		{Name: "browser", Description: "Browser automation"},
		{Name: "memory", Description: "Long-term memory backends"},
		{Name: "telegram", Description: "Telegram channel"},
		{Name: "discord", Description: "Discord channel"},
		{Name: "slack", Description: "Slack channel"},
		{Name: "whatsapp", Description: "WhatsApp channel"},
		{Name: "desktop", Description: "Desktop automation"},
	}
}
