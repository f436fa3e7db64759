package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pocketpaw/pocketpaw-installer/internal/bootstrap"
	"github.com/pocketpaw/pocketpaw-installer/internal/config"
	"github.com/pocketpaw/pocketpaw-installer/internal/extras"
	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
	"github.com/pocketpaw/pocketpaw-installer/internal/receipt"
	"github.com/pocketpaw/pocketpaw-installer/internal/terminal"
	"github.com/pocketpaw/pocketpaw-installer/internal/update"
	"github.com/pocketpaw/pocketpaw-installer/internal/updatewarn"
	"github.com/pocketpaw/pocketpaw-installer/internal/wizard"
)

var (
	newSystemFunc = func(cfg *config.Config, paths config.Paths) bootstrap.System {
		return bootstrap.NewRealSystem(cfg, paths)
	}
	isInteractiveFunc = terminal.IsInteractive
	pickExtrasFunc    = func(defaults extras.FeatureSet) (extras.FeatureSet, error) {
		return wizard.PickExtras(wizard.NewHuhUI(), defaults)
	}
	newUpdateCheckerFunc = func(cfg *config.Config) updatewarn.Checker {
		return update.Checker{IndexURL: cfg.Update.IndexURL, Package: cfg.Install.Package}
	}
	nowFunc = time.Now
)

type installOptions struct {
	extras      string
	json        bool
	noWizard    bool
	showChanges bool
	diffLines   int
}

func newInstallCmd(root *rootOptions) *cobra.Command {
	opts := &installOptions{}
	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.extras, "extras", "", messages.InstallFlagExtras)
	cmd.Flags().BoolVar(&opts.json, "json", false, messages.InstallFlagJSON)
	cmd.Flags().BoolVar(&opts.noWizard, "no-wizard", false, messages.InstallFlagNoWizard)
	cmd.Flags().BoolVar(&opts.showChanges, "show-changes", false, messages.InstallFlagShowChanges)
	cmd.Flags().IntVar(&opts.diffLines, "diff-lines", receipt.DefaultDiffMaxLines, messages.InstallFlagDiffLines)
	return cmd
}

func runInstall(cmd *cobra.Command, root *rootOptions, opts *installOptions) error {
	out := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	sess, err := root.openSession(stderr)
	if err != nil {
		return err
	}
	defer func() { _ = sess.close() }()

	requested, err := resolveExtras(cmd, opts, sess.cfg)
	if err != nil {
		if errors.Is(err, wizard.ErrCancelled) {
			_, _ = fmt.Fprintln(stderr, messages.WizardCancelled)
			return &SilentExitError{Code: 1}
		}
		return err
	}

	progress := stderr
	if root.quiet {
		progress = io.Discard
	}
	b, err := bootstrap.New(bootstrap.Options{
		System:    newSystemFunc(sess.cfg, sess.paths),
		MinPython: sess.cfg.Python.MinVersion,
		LockPath:  sess.paths.LockPath,
		Progress:  progress,
		Logger:    sess.logger,
	})
	if err != nil {
		return err
	}

	status := b.Run(cmd.Context(), requested)

	var diff string
	if status.Installed {
		diff = recordReceipt(sess, status, opts, stderr)
	}

	if opts.json {
		printStatusJSON(out, status)
	} else {
		printStatus(out, status)
		if diff != "" {
			_, _ = fmt.Fprint(out, diff)
		} else if opts.showChanges && status.Installed {
			_, _ = fmt.Fprintln(out, messages.InstallNoReceiptChanges)
		}
	}
	if !status.Installed {
		return &SilentExitError{Code: 1}
	}

	if sess.cfg.UpdateCheckEnabled() && !opts.json && !root.quiet {
		installed := strings.Join(status.InstalledExtras, ",")
		updatewarn.WarnIfOutdated(cmd.Context(), newUpdateCheckerFunc(sess.cfg), status.InstalledVersion, installed, stderr)
	}
	return nil
}

// resolveExtras picks the requested set: --extras wins, then the picker when
// running interactively, then [install] default_extras.
func resolveExtras(cmd *cobra.Command, opts *installOptions, cfg *config.Config) (extras.FeatureSet, error) {
	if cmd.Flags().Changed("extras") {
		requested := extras.Parse(opts.extras)
		if err := requested.Validate(); err != nil {
			return nil, err
		}
		return requested, nil
	}
	defaults := extras.Parse(cfg.Install.DefaultExtras...)
	if opts.noWizard || opts.json || !isInteractiveFunc() {
		return defaults, nil
	}
	picked, err := pickExtrasFunc(defaults)
	if err != nil {
		return nil, fmt.Errorf(messages.InstallPickerFailedFmt, err)
	}
	return picked, nil
}

// recordReceipt writes the receipt for a successful install and returns the
// diff against the previous one when --show-changes is set. Receipt problems
// never fail the install.
func recordReceipt(sess *session, status bootstrap.Status, opts *installOptions, stderr io.Writer) string {
	warn := color.New(color.FgYellow)
	previous, _, err := receipt.Load(sess.paths.ReceiptPath)
	if err != nil {
		sess.logger.Warn("previous receipt unreadable", "path", sess.paths.ReceiptPath, "err", err)
		previous = nil
	}
	current, err := receipt.FromStatus(sess.cfg.Install.Package, status, nowFunc())
	if err != nil {
		_, _ = warn.Fprintf(stderr, messages.InstallReceiptWarnFmt, err)
		return ""
	}
	if err := receipt.Write(sess.paths.ReceiptPath, current); err != nil {
		_, _ = warn.Fprintf(stderr, messages.InstallReceiptWarnFmt, err)
		return ""
	}
	if !opts.showChanges {
		return ""
	}
	diff, _, err := receipt.Diff(previous, current, opts.diffLines)
	if err != nil {
		_, _ = warn.Fprintf(stderr, messages.InstallReceiptWarnFmt, err)
		return ""
	}
	return diff
}

func printStatus(out io.Writer, status bootstrap.Status) {
	if !status.Installed {
		_, _ = color.New(color.FgRed).Fprintf(out, messages.InstallFailedFmt, status.Error)
		return
	}
	installed := extras.NewFeatureSet(status.InstalledExtras...).String()
	if status.FallbackUsed {
		requested := extras.NewFeatureSet(status.RequestedExtras...).String()
		_, _ = color.New(color.FgYellow).Fprintf(out, messages.InstallFallbackFmt, requested, installed)
	}
	versionLabel := status.InstalledVersion
	if versionLabel == "" {
		versionLabel = "(unknown version)"
	}
	_, _ = color.New(color.FgGreen).Fprintf(out, messages.InstallSucceededFmt, versionLabel, installed)
	if status.VenvPath != "" {
		_, _ = fmt.Fprintf(out, messages.InstallInterpreterFmt, status.VenvPath)
	}
}

func printStatusJSON(out io.Writer, status bootstrap.Status) {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(status); err != nil {
		_, _ = fmt.Fprintf(out, `{"pocketpaw_installed":%t}`+"\n", status.Installed)
	}
}
