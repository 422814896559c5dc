package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"strmctl/internal/forms"
	"strmctl/internal/logging"
)

func newYoutubeCommand(ctx *commandContext) *cobra.Command {
	youtubeCmd := &cobra.Command{
		Use:   "youtube",
		Short: "Upload recordings and correlate categories",
	}
	youtubeCmd.AddCommand(newYoutubeUploadCommand(ctx))
	youtubeCmd.AddCommand(newYoutubeCategoryCommand(ctx))
	return youtubeCmd
}

func newYoutubeUploadCommand(ctx *commandContext) *cobra.Command {
	var form forms.UploadForm

	cmd := &cobra.Command{
		Use:   "upload RECORDING_ID",
		Short: "Upload a stored recording to YouTube",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form.RecordingID = args[0]
			req := form.Build()
			client, err := ctx.client()
			if err != nil {
				return err
			}
			if err := client.UploadToYoutube(cmd.Context(), req); err != nil {
				return err
			}
			ctx.loggerFor("cli").Info("youtube upload requested",
				logging.Int64("recording_id", req.RecordingID),
				logging.String("playlist_id", req.PlaylistID),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Upload of recording %d requested\n", req.RecordingID)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.PlaylistID, "playlist", "", "Playlist to add the video to")
	return cmd
}

func newYoutubeCategoryCommand(ctx *commandContext) *cobra.Command {
	var form forms.CategoryForm

	cmd := &cobra.Command{
		Use:   "category",
		Short: "Map a used Twitch category to a YouTube category",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := form.Build()
			client, err := ctx.client()
			if err != nil {
				return err
			}
			if err := client.SetYoutubeCategory(cmd.Context(), req); err != nil {
				return err
			}
			ctx.loggerFor("cli").Info("youtube category set",
				logging.String("related_id", req.RelatedID),
				logging.String("category_name", req.CategoryName),
			)
			fmt.Fprintln(cmd.OutOrStdout(), "YouTube category set")
			return nil
		},
	}
	cmd.Flags().StringVar(&form.RelatedID, "related-id", "", "Identifier of the used Twitch category")
	cmd.Flags().StringVar(&form.CategoryName, "name", "", "YouTube category name")
	return cmd
}
