package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"strmctl/internal/forms"
	"strmctl/internal/logging"
	"strmctl/internal/panel"
	"strmctl/internal/session"
)

func newTaskCommand(ctx *commandContext) *cobra.Command {
	var form forms.TaskForm

	cmd := &cobra.Command{
		Use:   "task",
		Short: "Update the on-screen task text",
		RunE: func(cmd *cobra.Command, args []string) error {
			form.BackgroundEnabled = cmd.Flags().Changed("background")
			req := form.Build()
			client, err := ctx.client()
			if err != nil {
				return err
			}
			if err := client.SubmitTask(cmd.Context(), req); err != nil {
				return err
			}
			ctx.loggerFor("cli").Info("task updated",
				logging.String("text", req.Text),
				logging.Bool("background", req.Background != nil),
			)
			fmt.Fprintln(cmd.OutOrStdout(), "Task updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Text, "text", "", "Task text")
	cmd.Flags().StringVar(&form.Width, "width", "", "Text box width in pixels")
	cmd.Flags().StringVar(&form.Height, "height", "", "Text box height in pixels")
	cmd.Flags().StringVar(&form.PosX, "posx", "", "Horizontal position in pixels")
	cmd.Flags().StringVar(&form.PosY, "posy", "", "Vertical position in pixels")
	cmd.Flags().StringVar(&form.Color, "color", "", "Text colour as #RRGGBB")
	cmd.Flags().StringVar(&form.BackgroundColor, "background", "", "Draw a background in this #RRGGBB colour")
	return cmd
}

func newOverlayCommand(ctx *commandContext) *cobra.Command {
	var form forms.OverlayForm

	cmd := &cobra.Command{
		Use:   "overlay",
		Short: "Update the overlay text",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := form.Build()
			client, err := ctx.client()
			if err != nil {
				return err
			}
			if err := client.SubmitOverlay(cmd.Context(), req); err != nil {
				return err
			}
			ctx.loggerFor("cli").Info("overlay updated", logging.Bool("enabled", req.Enabled))
			fmt.Fprintf(cmd.OutOrStdout(), "Overlay updated (%s)\n", enabledLabel(req.Enabled))
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Text, "text", "", "Overlay text")
	cmd.Flags().StringVar(&form.Width, "width", "", "Text width in pixels")
	cmd.Flags().StringVar(&form.Height, "height", "", "Text height in pixels")
	cmd.Flags().StringVar(&form.PosX, "posx", "", "Horizontal position in pixels")
	cmd.Flags().StringVar(&form.PosY, "posy", "", "Vertical position in pixels")
	cmd.Flags().StringVar(&form.TextColor, "text-color", "", "Text colour as #RRGGBB")
	cmd.Flags().StringVar(&form.BackgroundColor, "background-color", "", "Background colour as #RRGGBB")
	cmd.Flags().BoolVar(&form.Enabled, "enabled", false, "Show the overlay")
	return cmd
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func newStreamCommand(ctx *commandContext) *cobra.Command {
	var (
		form         forms.StreamForm
		wasRecording bool
	)

	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Switch streaming and recording on or off",
		Long: "Sends the desired stream and record state. When recording goes from on to off\n" +
			"the recording is saved under --output (default from stream.default_output_file).",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			form.DefaultOutputFile = cfg.Stream.DefaultOutputFile
			logger := ctx.loggerFor("cli")

			var ind session.Indicators
			err = ctx.withClientSession(cmd.Context(), func(client *panel.Client, store *session.Store) error {
				current, err := store.Indicators(cmd.Context())
				if err != nil {
					return err
				}
				prior := current.WasRecording
				if cmd.Flags().Changed("was-recording") {
					prior = wasRecording
				}
				req := form.Build(prior)
				if err := client.UpdateStream(cmd.Context(), req); err != nil {
					return err
				}
				ind, err = store.ApplyStreamUpdate(cmd.Context(), req)
				if err != nil {
					return err
				}
				attrs := []any{
					logging.Bool("stream", req.Stream),
					logging.Bool("record", req.Record),
				}
				if req.OutputFile != nil {
					attrs = append(attrs, logging.String("output_file", *req.OutputFile))
				}
				logger.Info("stream state updated", attrs...)
				return nil
			})
			if err != nil {
				return err
			}
			return printIndicators(cmd, ctx, ind)
		},
	}

	cmd.Flags().BoolVar(&form.Stream, "stream", false, "Stream enabled")
	cmd.Flags().BoolVar(&form.Record, "record", false, "Recording enabled")
	cmd.Flags().StringVar(&form.OutputName, "output", "", "File name for the recording being stopped")
	cmd.Flags().BoolVar(&wasRecording, "was-recording", false, "Override the remembered recording state")
	cmd.AddCommand(newStreamStatusCommand(ctx))
	return cmd
}

func newStreamStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stream and record indicators",
		RunE: func(cmd *cobra.Command, args []string) error {
			var ind session.Indicators
			err := ctx.withSession(cmd.Context(), func(store *session.Store) error {
				var err error
				ind, err = store.Indicators(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}
			return printIndicators(cmd, ctx, ind)
		},
	}
}

type indicatorsView struct {
	Streaming bool   `json:"streaming"`
	Recording bool   `json:"recording"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func printIndicators(cmd *cobra.Command, ctx *commandContext, ind session.Indicators) error {
	if ctx.jsonOutput() {
		view := indicatorsView{Streaming: ind.Streaming, Recording: ind.Recording}
		if !ind.UpdatedAt.IsZero() {
			view.UpdatedAt = ind.UpdatedAt.Format(time.RFC3339)
		}
		return writeJSON(cmd, view)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, strings.Join(renderIndicators(ind, shouldColorize(out)), "\n"))
	return nil
}
