package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"captioner/internal/ass"
	"captioner/internal/config"
	"captioner/internal/fileutil"
)

func newComposeCommand(ctx *commandContext) *cobra.Command {
	var (
		outPath   string
		trackArgs []string
		wordsPath string
		wordsLang string
		width     int
		height    int
	)

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose a positioned subtitle document from caption tracks",
		Long: `Compose merges one or more caption tracks into a single positioned
subtitle document. Every track gets its own style record and every cue an
absolute position, so simultaneous captions in different languages never
collide or reflow.

Tracks come from --track lang=path.srt flags, plus optionally a word-level
transcript (--words) segmented on the fly for the original language.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			set, err := loadTrackSet(cfg, trackArgs, wordsPath, wordsLang)
			if err != nil {
				return err
			}
			if set.Len() == 0 {
				return errNoTracks
			}

			doc := ass.Compose(set.Tracks(), width, height)

			target := strings.TrimSpace(outPath)
			if target == "" {
				fmt.Fprint(cmd.OutOrStdout(), doc)
				return nil
			}
			expanded, err := config.ExpandPath(target)
			if err != nil {
				return err
			}
			if err := fileutil.WriteAtomic(expanded, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("write subtitle document: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Composed %d tracks (%s) into %s\n",
				set.Len(), strings.Join(set.Languages(), ", "), expanded)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the document to this path instead of stdout")
	cmd.Flags().StringArrayVarP(&trackArgs, "track", "t", nil, "Caption track as lang=path.srt (repeatable)")
	cmd.Flags().StringVarP(&wordsPath, "words", "w", "", "Word-level transcript JSON to segment into a track")
	cmd.Flags().StringVar(&wordsLang, "lang", "", "Language code for the --words track (default from transcript)")
	cmd.Flags().IntVar(&width, "width", 0, "Canvas width in pixels (default 1920)")
	cmd.Flags().IntVar(&height, "height", 0, "Canvas height in pixels (default 1080)")
	return cmd
}
