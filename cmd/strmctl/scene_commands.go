package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"strmctl/internal/logging"
	"strmctl/internal/panel"
	"strmctl/internal/session"
)

func newSceneCommand(ctx *commandContext) *cobra.Command {
	sceneCmd := &cobra.Command{
		Use:   "scene",
		Short: "Create and list OBS scenes",
	}
	sceneCmd.AddCommand(newSceneCreateCommand(ctx))
	sceneCmd.AddCommand(newSceneListCommand(ctx))
	return sceneCmd
}

func newSceneCreateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create [NAME]",
		Short: "Create a scene and refresh the scene list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			logger := ctx.loggerFor("cli")
			var names []string
			err := ctx.withClientSession(cmd.Context(), func(client *panel.Client, store *session.Store) error {
				created, err := client.CreateScene(cmd.Context(), name)
				if err != nil {
					return err
				}
				names = created
				return store.SetScenes(cmd.Context(), created)
			})
			if err != nil {
				logger.Warn("scene create failed", logging.String("scene", name), logging.Error(err))
				return err
			}
			logger.Info("scene created", logging.String("scene", name), logging.Int("scene_count", len(names)))
			return printScenes(cmd, ctx, names)
		},
	}
}

func newSceneListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the scene list from the last scene create",
		RunE: func(cmd *cobra.Command, args []string) error {
			var names []string
			err := ctx.withSession(cmd.Context(), func(store *session.Store) error {
				var err error
				names, err = store.Scenes(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}
			return printScenes(cmd, ctx, names)
		},
	}
}

func printScenes(cmd *cobra.Command, ctx *commandContext, names []string) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, panel.SceneListResponse{Names: names})
	}
	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintln(out, "No scenes")
		return nil
	}
	rows := make([][]string, 0, len(names))
	for i, name := range names {
		rows = append(rows, []string{strconv.Itoa(i + 1), name})
	}
	fmt.Fprintln(out, renderTable([]string{"#", "Scene"}, rows, []columnAlignment{alignRight, alignLeft}))
	return nil
}
