package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"captioner/internal/language"
	"captioner/internal/srt"
	"captioner/internal/timecode"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tracks <lang=path.srt>...",
		Short: "Summarize caption tracks from SRT files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			type trackSummary struct {
				Lang     string `json:"lang"`
				Language string `json:"language"`
				Cues     int    `json:"cues"`
				FirstMs  int64  `json:"first_ms"`
				LastMs   int64  `json:"last_ms"`
			}

			summaries := make([]trackSummary, 0, len(args))
			for _, arg := range args {
				lang, path, err := parseTrackArg(arg)
				if err != nil {
					return err
				}
				cues, err := srt.ReadFile(path)
				if err != nil {
					return err
				}
				summary := trackSummary{
					Lang:     lang,
					Language: language.DisplayName(lang),
					Cues:     len(cues),
				}
				if len(cues) > 0 {
					summary.FirstMs = cues[0].Start
					summary.LastMs = cues[len(cues)-1].End
				}
				summaries = append(summaries, summary)
			}

			if asJSON {
				return writeJSON(cmd, summaries)
			}

			headers := []string{"Track", "Language", "Cues", "First Cue", "Last Cue"}
			rows := make([][]string, 0, len(summaries))
			for _, summary := range summaries {
				first, last := "-", "-"
				if summary.Cues > 0 {
					first = timecode.FormatSRT(summary.FirstMs)
					last = timecode.FormatSRT(summary.LastMs)
				}
				rows = append(rows, []string{
					summary.Lang,
					summary.Language,
					fmt.Sprintf("%d", summary.Cues),
					first,
					last,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, 2))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit track summaries as JSON")
	return cmd
}
