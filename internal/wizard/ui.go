package wizard

import (
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
	"github.com/pocketpaw/pocketpaw-installer/internal/terminal"
)

// Choice is one selectable option: Label is shown, Value is returned.
type Choice struct {
	Label string
	Value string
}

// UI is the set of prompts the extras picker needs.
type UI interface {
	Select(title string, choices []Choice, current *string) error
	MultiSelect(title string, choices []Choice, selected *[]string) error
	Confirm(title string, description string, value *bool) error
}

// HuhUI implements UI using charmbracelet/huh.
type HuhUI struct {
	isTerminal func() bool
	ctrlCAbort bool // set by the key filter while a form runs
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// maxFormWidth caps prompt width on wide terminals.
const maxFormWidth = 100

func formWidth(columns int) int {
	if columns <= 0 || columns > maxFormWidth {
		return maxFormWidth
	}
	return columns
}

// NewHuhUI creates a HuhUI that requires stdin and stdout to be terminals.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive}
}

func (ui *HuhUI) ensureInteractive() error {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return errors.New(messages.WizardRequiresTerminal)
}

// pickerKeyMap makes Esc and Ctrl+C abort the form. runForm tells them apart
// through ctrlCAbort. Prev and Next only carry the help hints.
func pickerKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))

	escBack := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	km.MultiSelect.Prev = escBack
	km.Select.Prev = escBack
	km.Confirm.Prev = escBack

	ctrlCExit := key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "exit"))
	km.MultiSelect.Next = ctrlCExit
	km.Select.Next = ctrlCExit
	km.Confirm.Next = ctrlCExit

	km.Select.Filter.SetEnabled(false)
	km.Select.SetFilter.SetEnabled(false)
	km.Select.ClearFilter.SetEnabled(false)
	return km
}

// hintField keeps the Prev and Next hints visible. huh disables both on the
// only field of a single-field form each time it calls WithPosition.
type hintField struct {
	huh.Field
	km *huh.KeyMap
}

func newHintField(field huh.Field) huh.Field {
	return &hintField{Field: field, km: pickerKeyMap()}
}

// Update keeps the wrapper in the group's field list.
func (f *hintField) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := f.Field.Update(msg)
	if field, ok := model.(huh.Field); ok {
		f.Field = field
	}
	return f, cmd
}

// WithPosition applies huh's positional state and then restores the hints.
func (f *hintField) WithPosition(p huh.FieldPosition) huh.Field {
	f.Field.WithPosition(p)
	f.WithKeyMap(f.km)
	return f
}

// formFilter records Ctrl+C key presses and turns InterruptMsg into QuitMsg
// so the renderer clears the form on abort. A lone Esc never sets the flag.
func (ui *HuhUI) formFilter() func(tea.Model, tea.Msg) tea.Msg {
	return func(_ tea.Model, msg tea.Msg) tea.Msg {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyCtrlC {
			ui.ctrlCAbort = true
		}
		if _, ok := msg.(tea.InterruptMsg); ok {
			return tea.QuitMsg{}
		}
		return msg
	}
}

// runForm runs form on stderr. Esc maps to errBack and Ctrl+C to ErrCancelled.
func (ui *HuhUI) runForm(form *huh.Form) error {
	if err := ui.ensureInteractive(); err != nil {
		return err
	}

	ui.ctrlCAbort = false
	form.WithKeyMap(pickerKeyMap())
	form.WithWidth(formWidth(terminal.Width(os.Stderr, maxFormWidth)))
	form.WithProgramOptions(
		tea.WithOutput(os.Stderr),
		tea.WithReportFocus(),
		tea.WithFilter(ui.formFilter()),
	)

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		if ui.ctrlCAbort {
			return ErrCancelled
		}
		return errBack
	}
	return err
}

func huhOptions(choices []Choice) []huh.Option[string] {
	opts := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		opts[i] = huh.NewOption(c.Label, c.Value)
	}
	return opts
}

// Select renders a single-choice prompt.
func (ui *HuhUI) Select(title string, choices []Choice, current *string) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			newHintField(huh.NewSelect[string]().
				Title(title).
				Options(huhOptions(choices)...).
				Value(current)),
		),
	))
}

// MultiSelect renders a multi-choice prompt.
func (ui *HuhUI) MultiSelect(title string, choices []Choice, selected *[]string) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			newHintField(huh.NewMultiSelect[string]().
				Title(title).
				Filterable(false).
				Options(huhOptions(choices)...).
				Value(selected)),
		),
	))
}

// Confirm renders a yes/no prompt with a description block.
func (ui *HuhUI) Confirm(title string, description string, value *bool) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			newHintField(huh.NewConfirm().
				Title(title).
				Description(description).
				Value(value)),
		),
	))
}
