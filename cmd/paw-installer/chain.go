package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pocketpaw/pocketpaw-installer/internal/extras"
	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
)

type chainReport struct {
	Requested []string   `json:"requested"`
	Tier      string     `json:"tier"`
	Attempts  [][]string `json:"attempts"`
}

func newChainCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   messages.ChainUse,
		Short: messages.ChainShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			requested := extras.Parse(args...)
			if err := requested.Validate(); err != nil {
				return err
			}
			attempts := append(extras.FallbackChain{requested}, extras.BuildFallbackChain(requested)...)

			if asJSON {
				report := chainReport{
					Requested: requested.Sorted(),
					Tier:      extras.HighestTier(requested).String(),
					Attempts:  make([][]string, len(attempts)),
				}
				for i, set := range attempts {
					report.Attempts[i] = set.Sorted()
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			_, _ = fmt.Fprintf(out, messages.ChainTierFmt, requested.String(), extras.HighestTier(requested))
			for i, name := range attempts.Strings() {
				_, _ = fmt.Fprintf(out, messages.ChainStepFmt, i+1, name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, messages.ChainFlagJSON)
	return cmd
}
