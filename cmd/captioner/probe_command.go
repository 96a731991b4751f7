package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"captioner/internal/config"
	"captioner/internal/deps"
	"captioner/internal/render"
	"captioner/internal/timecode"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "probe <video>",
		Short: "Show the displayed geometry and duration of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			status := deps.ResolveFFmpeg(cfg.Encoder.Binary)
			if !status.Available {
				return fmt.Errorf("encoder unavailable: %s", status.Detail)
			}
			client, err := render.New(status.Command, render.WithProbeTimeout(cfg.ProbeTimeout()))
			if err != nil {
				return err
			}

			probe, err := client.Probe(cmd.Context(), path)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, struct {
					Width      int   `json:"width"`
					Height     int   `json:"height"`
					DurationMs int64 `json:"duration_ms"`
					Rotation   int   `json:"rotation"`
					Portrait   bool  `json:"portrait"`
				}{probe.Width, probe.Height, probe.DurationMs, probe.Rotation, probe.Portrait()})
			}

			headers := []string{"Width", "Height", "Duration", "Rotation", "Portrait"}
			rows := [][]string{{
				fmt.Sprintf("%d", probe.Width),
				fmt.Sprintf("%d", probe.Height),
				timecode.FormatSRT(probe.DurationMs),
				fmt.Sprintf("%d°", probe.Rotation),
				yesNo(probe.Portrait()),
			}}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, 0, 1))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the probe result as JSON")
	return cmd
}
