package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"strmctl/internal/logging"
)

func newAvatarCommand(ctx *commandContext) *cobra.Command {
	avatarCmd := &cobra.Command{
		Use:   "avatar",
		Short: "Make the avatar speak or check whether it is talking",
	}
	avatarCmd.AddCommand(newAvatarSayCommand(ctx))
	avatarCmd.AddCommand(newAvatarStatusCommand(ctx))
	return avatarCmd
}

func newAvatarSayCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "say TEXT...",
		Short: "Send text for the avatar to speak",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			client, err := ctx.client()
			if err != nil {
				return err
			}
			if err := client.SetAvatarStatus(cmd.Context(), text); err != nil {
				return err
			}
			ctx.loggerFor("cli").Info("avatar text sent", logging.Int("length", len(text)))
			fmt.Fprintln(cmd.OutOrStdout(), "Avatar text sent")
			return nil
		},
	}
}

func newAvatarStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the avatar is talking",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			talking, err := client.AvatarTalking(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]bool{"talking": talking})
			}
			state := "idle"
			if talking {
				state = "talking"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Avatar is %s\n", state)
			return nil
		},
	}
}
