// Package wizard lets the user choose pocketpaw extras interactively.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pocketpaw/pocketpaw-installer/internal/extras"
	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
)

// ErrCancelled is returned when the user aborts the picker.
var ErrCancelled = errors.New(messages.WizardCancelled)

var errBack = errors.New("picker back requested")

// Install profiles offered by the first prompt.
const (
	modeRecommended = "recommended"
	modeAll         = "all"
	modeMinimal     = "minimal"
	modeCustom      = "custom"
)

type step int

const (
	stepMode step = iota
	stepCustom
	stepConfirm
)

// PickExtras asks for an install profile, a custom selection when the profile
// is custom, and a final confirmation. defaults preselects every prompt.
//
// Esc returns to the previous prompt; on the first prompt it cancels. Ctrl+C
// cancels from anywhere. Cancellation is reported as ErrCancelled.
func PickExtras(ui UI, defaults extras.FeatureSet) (extras.FeatureSet, error) {
	mode := modeFor(defaults)
	selected := defaults.Sorted()
	custom := customChoices(defaults)
	if len(custom) == 0 {
		return nil, errors.New(messages.WizardNoOptions)
	}

	current := stepMode
	for {
		switch current {
		case stepMode:
			err := ui.Select(messages.WizardModeTitle, modeChoices(), &mode)
			if errors.Is(err, errBack) {
				return nil, ErrCancelled
			}
			if err != nil {
				return nil, err
			}
			current = stepConfirm
			if mode == modeCustom {
				current = stepCustom
			}
		case stepCustom:
			err := ui.MultiSelect(messages.WizardCustomTitle, custom, &selected)
			if errors.Is(err, errBack) {
				current = stepMode
				continue
			}
			if err != nil {
				return nil, err
			}
			current = stepConfirm
		case stepConfirm:
			chosen, err := resolveMode(mode, selected)
			if err != nil {
				return nil, err
			}
			confirmed := true
			err = ui.Confirm(messages.WizardConfirmTitle, buildSummary(chosen), &confirmed)
			if errors.Is(err, errBack) {
				current = stepMode
				if mode == modeCustom {
					current = stepCustom
				}
				continue
			}
			if err != nil {
				return nil, err
			}
			if confirmed {
				return chosen, nil
			}
			current = stepMode
		}
	}
}

func modeChoices() []Choice {
	return []Choice{
		{Label: messages.WizardModeRecommended, Value: modeRecommended},
		{Label: messages.WizardModeAll, Value: modeAll},
		{Label: messages.WizardModeMinimal, Value: modeMinimal},
		{Label: messages.WizardModeCustom, Value: modeCustom},
	}
}

// modeFor picks the profile that reproduces defaults exactly.
func modeFor(defaults extras.FeatureSet) string {
	switch {
	case defaults.IsBare():
		return modeMinimal
	case defaults.Equal(extras.NewFeatureSet(extras.Recommended)):
		return modeRecommended
	case defaults.Equal(extras.NewFeatureSet(extras.All)):
		return modeAll
	default:
		return modeCustom
	}
}

// customChoices lists every individual bundle, followed by any configured
// default that is not a known bundle. Profile bundles are left to the first
// prompt unless defaults already include them, so a preselected profile can
// be kept in a custom selection.
func customChoices(defaults extras.FeatureSet) []Choice {
	var choices []Choice
	known := make(map[string]bool)
	for _, bundle := range extras.Known() {
		known[bundle.Name] = true
		isProfile := bundle.Name == extras.Recommended || bundle.Name == extras.All
		if isProfile && !defaults.Has(bundle.Name) {
			continue
		}
		choices = append(choices, Choice{
			Label: fmt.Sprintf(messages.WizardChoiceLabelFmt, bundle.Name, bundle.Description),
			Value: bundle.Name,
		})
	}
	for _, name := range defaults.Sorted() {
		if known[name] {
			continue
		}
		choices = append(choices, Choice{
			Label: fmt.Sprintf(messages.WizardChoiceLabelFmt, name, messages.WizardCustomChoice),
			Value: name,
		})
	}
	return choices
}

func resolveMode(mode string, selected []string) (extras.FeatureSet, error) {
	switch mode {
	case modeRecommended:
		return extras.NewFeatureSet(extras.Recommended), nil
	case modeAll:
		return extras.NewFeatureSet(extras.All), nil
	case modeMinimal:
		return extras.NewFeatureSet(), nil
	case modeCustom:
		return extras.NewFeatureSet(selected...), nil
	default:
		return nil, fmt.Errorf(messages.WizardUnknownModeFmt, mode)
	}
}

// buildSummary describes the chosen set and what the installer falls back to.
func buildSummary(chosen extras.FeatureSet) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(messages.WizardSummaryExtrasFmt, chosen.String()))
	if extras.HighestTier(chosen) == extras.TierHeavy {
		builder.WriteString(messages.WizardSummaryHeavyNote)
	}
	chain := extras.BuildFallbackChain(chosen)
	builder.WriteString(fmt.Sprintf(messages.WizardSummaryFallbackFmt, strings.Join(chain.Strings(), " then ")))
	return builder.String()
}
