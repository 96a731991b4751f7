package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"captioner/internal/staging"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove stale staged subtitle documents",
		Long: `Clean removes subtitle documents left in paths.staging_dir by crashed
renders or --keep-subtitles runs. Documents younger than --older-than are
kept; they may belong to a render still in flight.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if dryRun {
				docs, err := staging.List(cfg.Paths.StagingDir)
				if err != nil {
					return err
				}
				cutoff := time.Now().Add(-olderThan)
				stale := 0
				for _, doc := range docs {
					if doc.ModTime.Before(cutoff) {
						fmt.Fprintln(out, doc.Path)
						stale++
					}
				}
				fmt.Fprintf(out, "%d stale documents (dry run, nothing removed)\n", stale)
				return nil
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			result := staging.Sweep(cfg.Paths.StagingDir, olderThan, logger)
			for _, sweepErr := range result.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed to remove %s: %v\n", sweepErr.Path, sweepErr.Err)
			}
			fmt.Fprintf(out, "Removed %d stale documents\n", len(result.Removed))
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d documents could not be removed", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", staging.DefaultMaxAge, "Remove documents older than this age")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List stale documents without removing them")
	return cmd
}
