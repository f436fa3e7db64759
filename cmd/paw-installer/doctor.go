package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pocketpaw/pocketpaw-installer/internal/bootstrap"
	"github.com/pocketpaw/pocketpaw-installer/internal/doctor"
	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
)

var newDoctorEnvFunc = func(sys bootstrap.System) (doctor.Environment, bool) {
	env, ok := sys.(doctor.Environment)
	return env, ok
}

func newDoctorCmd(root *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			sess, err := root.openSession(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = sess.close() }()

			env, ok := newDoctorEnvFunc(newSystemFunc(sess.cfg, sess.paths))
			if !ok {
				return errors.New(messages.DoctorEnvironmentUnsupported)
			}
			opts := doctor.Options{
				Env:         env,
				MinPython:   sess.cfg.Python.MinVersion,
				ReceiptPath: sess.paths.ReceiptPath,
			}
			if sess.cfg.UpdateCheckEnabled() {
				opts.Updates = newUpdateCheckerFunc(sess.cfg)
			}

			if !asJSON {
				_, _ = fmt.Fprintf(out, messages.DoctorHealthCheckFmt, sess.paths.Dir)
			}
			results := doctor.Run(cmd.Context(), opts)
			for _, r := range results {
				sess.logger.Debug("doctor check", "check", r.CheckName, "status", string(r.Status), "message", r.Message)
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					printResult(out, r)
				}
			}

			if doctor.HasFailure(results) {
				if !asJSON {
					_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
				}
				return &SilentExitError{Code: 1}
			}
			if !asJSON {
				_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, messages.DoctorFlagJSON)
	return cmd
}

func printResult(out io.Writer, r doctor.Result) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = color.GreenString(messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		status = color.YellowString(messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		status = color.RedString(messages.DoctorStatusFailLabel)
	}

	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		printRecommendation(out, r.Recommendation)
	}
}

// printRecommendation renders a multi-line recommendation with consistent indentation.
func printRecommendation(out io.Writer, recommendation string) {
	for i, line := range strings.Split(recommendation, "\n") {
		switch {
		case i == 0:
			_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationPrefix, line)
		case line == "":
			_, _ = fmt.Fprintf(out, "%s\n", messages.DoctorRecommendationIndent)
		default:
			_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationIndent, line)
		}
	}
}
