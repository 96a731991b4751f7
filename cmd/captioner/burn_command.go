package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"captioner/internal/ass"
	"captioner/internal/config"
	"captioner/internal/deps"
	"captioner/internal/fileutil"
	"captioner/internal/logging"
	"captioner/internal/notifications"
	"captioner/internal/render"
	"captioner/internal/staging"
)

func newBurnCommand(ctx *commandContext) *cobra.Command {
	var (
		outPath    string
		trackArgs  []string
		wordsPath  string
		wordsLang  string
		resolution string
		keepSubs   bool
		noNotify   bool
	)

	cmd := &cobra.Command{
		Use:   "burn <video>",
		Short: "Burn caption tracks into a video",
		Long: `Burn composes the given caption tracks into a positioned subtitle
document sized to the probed video geometry, then re-encodes the video with
the captions rendered into the picture. Audio streams are copied untouched.

The composed document is staged under paths.staging_dir and removed after
the render unless --keep-subtitles is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			inputPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			if _, err := os.Stat(inputPath); err != nil {
				return fmt.Errorf("inspect input %q: %w", inputPath, err)
			}

			target, err := render.ParseResolution(resolution)
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

			status := deps.ResolveFFmpeg(cfg.Encoder.Binary)
			if !status.Available {
				return fmt.Errorf("encoder unavailable: %s", status.Detail)
			}

			opts := []render.Option{render.WithProbeTimeout(cfg.ProbeTimeout())}
			if timeout := cfg.EncodeTimeout(); timeout > 0 {
				opts = append(opts, render.WithEncodeTimeout(timeout))
			}
			client, err := render.New(status.Command, opts...)
			if err != nil {
				return err
			}

			output := strings.TrimSpace(outPath)
			if output == "" {
				output = defaultOutputPath(inputPath)
			} else {
				if output, err = config.ExpandPath(output); err != nil {
					return err
				}
			}

			signalCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// The subtitle canvas must match the displayed geometry or every
			// position lands in the wrong place.
			probe, probeErr := client.Probe(signalCtx, inputPath)
			if probeErr != nil {
				if !errors.Is(probeErr, render.ErrProbeFailed) {
					return probeErr
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Probe degraded; assuming %dx%d canvas\n", probe.Width, probe.Height)
			}

			staging.Sweep(cfg.Paths.StagingDir, staging.DefaultMaxAge, logger)

			doc := ass.Compose(set.Tracks(), probe.Width, probe.Height)
			subtitlePath := staging.NewDocumentPath(cfg.Paths.StagingDir)
			if err := fileutil.WriteAtomic(subtitlePath, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("stage subtitle document: %w", err)
			}
			if keepSubs {
				fmt.Fprintf(cmd.OutOrStdout(), "Subtitle document: %s\n", subtitlePath)
			} else {
				defer os.Remove(subtitlePath)
			}

			notifyCfg := *cfg
			if noNotify {
				notifyCfg.Notifications.NtfyTopic = ""
			}
			notifier := notifications.NewService(&notifyCfg)

			languages := set.Languages()
			if err := notifier.NotifyRenderStarted(signalCtx, filepath.Base(inputPath), languages); err != nil {
				logger.Warn("start notification failed", logging.Error(err))
			}

			runner := render.NewRunner(client, logger)
			job := render.Job{
				InputPath:    inputPath,
				OutputPath:   output,
				SubtitlePath: subtitlePath,
				FontsDir:     cfg.Paths.FontsDir,
				Target:       target,
			}

			onProgress, finish := newProgressDisplay(cmd.ErrOrStderr())
			result, runErr := runner.Run(signalCtx, job, onProgress)
			finish(runErr == nil)

			if runErr != nil {
				// Not the signal context: the failure push still has to go
				// out after Ctrl-C.
				if err := notifier.NotifyRenderFailed(context.Background(), filepath.Base(inputPath), runErr); err != nil {
					logger.Warn("failure notification failed", logging.Error(err))
				}
				return runErr
			}

			if err := notifier.NotifyRenderCompleted(context.Background(), output, result.Elapsed); err != nil {
				logger.Warn("completion notification failed", logging.Error(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Burned %d caption tracks (%s) into %s in %s\n",
				set.Len(), strings.Join(languages, ", "), output, result.Elapsed.Round(time.Second))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output video path (default <input>.captioned.<ext>)")
	cmd.Flags().StringArrayVarP(&trackArgs, "track", "t", nil, "Caption track as lang=path.srt (repeatable)")
	cmd.Flags().StringVarP(&wordsPath, "words", "w", "", "Word-level transcript JSON to segment into a track")
	cmd.Flags().StringVar(&wordsLang, "lang", "", "Language code for the --words track (default from transcript)")
	cmd.Flags().StringVarP(&resolution, "resolution", "r", "", "Target resolution: original, 4k, 1440p, 1080p, 720p, or 480p")
	cmd.Flags().BoolVar(&keepSubs, "keep-subtitles", false, "Keep the staged subtitle document after the render")
	cmd.Flags().BoolVar(&noNotify, "no-notify", false, "Skip ntfy notifications for this render")
	return cmd
}
