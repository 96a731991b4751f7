package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"captioner/internal/captions"
	"captioner/internal/config"
	"captioner/internal/segmenter"
	"captioner/internal/srt"
)

func newSegmentCommand(ctx *commandContext) *cobra.Command {
	var (
		outPath       string
		maxChars      int
		maxDurationMs int64
		punctuation   string
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "segment <transcript.json>",
		Short: "Segment a word-level transcript into subtitle cues",
		Long: `Segment reads a word-level transcript (JSON array of timed words, or an
envelope with a "words" field) and greedily packs the words into subtitle
cues bounded by character count and display duration. Clause punctuation
always attaches to the preceding word, even when that overflows a bound.

The result is written as SRT, or as a JSON cue list with --json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			transcript, err := captions.ReadTranscript(path)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("max-chars") {
				maxChars = cfg.Subtitles.MaxChars
			}
			if !cmd.Flags().Changed("max-duration-ms") {
				maxDurationMs = cfg.Subtitles.MaxDurationMs
			}
			if !cmd.Flags().Changed("punctuation") {
				punctuation = cfg.Subtitles.Punctuation
			}

			seg := segmenter.New(maxChars, time.Duration(maxDurationMs)*time.Millisecond,
				segmenter.WithPunctuation(punctuation))
			cues := seg.Segment(transcript.Words)
			if len(cues) == 0 {
				return errors.New("transcript produced no cues")
			}

			if asJSON {
				return writeJSON(cmd, cues)
			}
			target := strings.TrimSpace(outPath)
			if target == "" {
				fmt.Fprint(cmd.OutOrStdout(), srt.Serialize(cues))
				return nil
			}
			expanded, err := config.ExpandPath(target)
			if err != nil {
				return err
			}
			if err := srt.WriteFile(expanded, cues); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d cues to %s\n", len(cues), expanded)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write SRT to this path instead of stdout")
	cmd.Flags().IntVar(&maxChars, "max-chars", 0, "Maximum characters per cue (default from config)")
	cmd.Flags().Int64Var(&maxDurationMs, "max-duration-ms", 0, "Maximum cue duration in milliseconds (default from config)")
	cmd.Flags().StringVar(&punctuation, "punctuation", "", "Clause punctuation characters (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit cues as JSON instead of SRT")
	return cmd
}
