package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"captioner/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Check the encoder binary and working directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := deps.RunAll(cfg)

			if asJSON {
				type depSummary struct {
					Name      string `json:"name"`
					Command   string `json:"command,omitempty"`
					Optional  bool   `json:"optional"`
					Available bool   `json:"available"`
					Detail    string `json:"detail,omitempty"`
				}
				summaries := make([]depSummary, 0, len(results))
				for _, status := range results {
					summaries = append(summaries, depSummary{
						Name:      status.Name,
						Command:   status.Command,
						Optional:  status.Optional,
						Available: status.Available,
						Detail:    status.Detail,
					})
				}
				if err := writeJSON(cmd, summaries); err != nil {
					return err
				}
			} else {
				headers := []string{"Dependency", "Status", "Command", "Detail"}
				rows := make([][]string, 0, len(results))
				for _, status := range results {
					state := "ok"
					if !status.Available {
						state = "missing"
						if status.Optional {
							state = "missing (optional)"
						}
					}
					rows = append(rows, []string{status.Name, state, status.Command, status.Detail})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows))
			}

			var missing []string
			for _, status := range results {
				if !status.Available && !status.Optional {
					missing = append(missing, status.Name)
				}
			}
			if len(missing) > 0 {
				return fmt.Errorf("missing required dependencies: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit dependency checks as JSON")
	return cmd
}
