package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"strmctl/internal/config"
	"strmctl/internal/forms"
	"strmctl/internal/logging"
	"strmctl/internal/panel"
	"strmctl/internal/session"
)

func newTwitchCommand(ctx *commandContext) *cobra.Command {
	twitchCmd := &cobra.Command{
		Use:   "twitch",
		Short: "Edit Twitch channel metadata",
	}
	twitchCmd.AddCommand(newTwitchTagCommand(ctx))
	twitchCmd.AddCommand(newTwitchSearchCommand(ctx))
	twitchCmd.AddCommand(newTwitchCategoryCommand(ctx))
	twitchCmd.AddCommand(newTwitchUpdateCommand(ctx))
	return twitchCmd
}

func newTwitchTagCommand(ctx *commandContext) *cobra.Command {
	tagCmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage the tag set sent with twitch update",
	}

	tagCmd.AddCommand(&cobra.Command{
		Use:   "add TAG...",
		Short: "Add tags (duplicates are ignored)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateTags(cmd, ctx, args, func(store *session.Store, tag string) (bool, error) {
				return store.AddTag(cmd.Context(), tag)
			})
		},
	})
	tagCmd.AddCommand(&cobra.Command{
		Use:     "rm TAG...",
		Aliases: []string{"remove"},
		Short:   "Remove tags",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateTags(cmd, ctx, args, func(store *session.Store, tag string) (bool, error) {
				return store.RemoveTag(cmd.Context(), tag)
			})
		},
	})
	tagCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tags in send order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateTags(cmd, ctx, nil, nil)
		},
	})
	return tagCmd
}

// mutateTags applies op to every tag in args and prints the resulting set.
func mutateTags(cmd *cobra.Command, ctx *commandContext, args []string, op func(*session.Store, string) (bool, error)) error {
	var tags []string
	err := ctx.withSession(cmd.Context(), func(store *session.Store) error {
		for _, tag := range args {
			if _, err := op(store, tag); err != nil {
				return err
			}
		}
		var err error
		tags, err = store.Tags(cmd.Context())
		return err
	})
	if err != nil {
		return err
	}
	if ctx.jsonOutput() {
		return writeJSON(cmd, map[string][]string{"tags": tags})
	}
	out := cmd.OutOrStdout()
	if len(tags) == 0 {
		fmt.Fprintln(out, "No tags")
		return nil
	}
	fmt.Fprintf(out, "Tags: %s\n", strings.Join(tags, ", "))
	return nil
}

func newTwitchSearchCommand(ctx *commandContext) *cobra.Command {
	var live bool

	cmd := &cobra.Command{
		Use:   "search [QUERY...]",
		Short: "Search Twitch categories",
		Long: "Searches categories and shows the result cards. With --live (or\n" +
			"twitch.search_mode = \"live\" and no query) one search runs per line read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if live || (len(args) == 0 && cfg.Twitch.SearchMode == config.SearchModeLive) {
				return runLiveSearch(cmd, ctx)
			}
			results, err := searchCategories(cmd.Context(), ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printCategoryCards(cmd, ctx, results)
		},
	}
	cmd.Flags().BoolVar(&live, "live", false, "Search once per stdin line")
	return cmd
}

func searchCategories(ctx context.Context, cc *commandContext, query string) ([]panel.Category, error) {
	var results []panel.Category
	err := cc.withClientSession(ctx, func(client *panel.Client, store *session.Store) error {
		found, err := client.SearchCategories(ctx, query)
		if err != nil {
			return err
		}
		results = found.Sorted()
		return store.ReplaceSearchResults(ctx, results)
	})
	if err != nil {
		return nil, err
	}
	cc.loggerFor("cli").Info("category search completed",
		logging.String("query", query),
		logging.Int("results", len(results)),
	)
	return results, nil
}

// runLiveSearch searches once per input line. Failures are reported and the
// loop keeps reading, like a search box that keeps accepting keystrokes.
func runLiveSearch(cmd *cobra.Command, ctx *commandContext) error {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		query := scanner.Text()
		results, err := searchCategories(cmd.Context(), ctx, query)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), formatError(err))
			continue
		}
		if err := printCategoryCards(cmd, ctx, results); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func printCategoryCards(cmd *cobra.Command, ctx *commandContext, results []panel.Category) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, results)
	}
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No categories found")
		return nil
	}
	rows := make([][]string, 0, len(results))
	for _, entry := range results {
		rows = append(rows, []string{entry.Name, entry.ID, entry.BoxArtURL})
	}
	fmt.Fprintln(out, renderTable([]string{"Category", "ID", "Box Art"}, rows, nil))
	fmt.Fprintln(out, "Add one with: strmctl twitch category select ID")
	return nil
}

func newTwitchCategoryCommand(ctx *commandContext) *cobra.Command {
	categoryCmd := &cobra.Command{
		Use:   "category",
		Short: "Pick the category sent with twitch update",
	}

	categoryCmd.AddCommand(&cobra.Command{
		Use:   "select ID",
		Short: "Add a category from the last search to the options",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var options []session.CategoryOption
			err := ctx.withSession(cmd.Context(), func(store *session.Store) error {
				entry, added, err := store.SelectCategory(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !added {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s is already an option\n", entry.Name)
				}
				options, err = store.CategoryOptions(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}
			return printCategoryOptions(cmd, ctx, options)
		},
	})
	categoryCmd.AddCommand(&cobra.Command{
		Use:   "choose ID",
		Short: "Choose which option twitch update sends",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var options []session.CategoryOption
			err := ctx.withSession(cmd.Context(), func(store *session.Store) error {
				if _, err := store.ChooseCategory(cmd.Context(), args[0]); err != nil {
					return err
				}
				var err error
				options, err = store.CategoryOptions(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}
			return printCategoryOptions(cmd, ctx, options)
		},
	})
	categoryCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List category options",
		RunE: func(cmd *cobra.Command, args []string) error {
			var options []session.CategoryOption
			err := ctx.withSession(cmd.Context(), func(store *session.Store) error {
				var err error
				options, err = store.CategoryOptions(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}
			return printCategoryOptions(cmd, ctx, options)
		},
	})
	return categoryCmd
}

type categoryOptionView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BoxArtURL string `json:"box_art_url"`
	Chosen    bool   `json:"chosen"`
}

func printCategoryOptions(cmd *cobra.Command, ctx *commandContext, options []session.CategoryOption) error {
	if ctx.jsonOutput() {
		views := make([]categoryOptionView, 0, len(options))
		for _, opt := range options {
			views = append(views, categoryOptionView{ID: opt.ID, Name: opt.Name, BoxArtURL: opt.BoxArtURL, Chosen: opt.Chosen})
		}
		return writeJSON(cmd, views)
	}
	out := cmd.OutOrStdout()
	if len(options) == 0 {
		fmt.Fprintln(out, "No category options")
		return nil
	}
	rows := make([][]string, 0, len(options))
	for _, opt := range options {
		marker := ""
		if opt.Chosen {
			marker = "*"
		}
		rows = append(rows, []string{marker, opt.Name, opt.ID})
	}
	fmt.Fprintln(out, renderTable([]string{"", "Category", "ID"}, rows, nil))
	return nil
}

func newTwitchUpdateCommand(ctx *commandContext) *cobra.Command {
	var form forms.TwitchForm

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Send title, description, chosen category and tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req panel.TwitchUpdateRequest
			err := ctx.withClientSession(cmd.Context(), func(client *panel.Client, store *session.Store) error {
				tags, err := store.Tags(cmd.Context())
				if err != nil {
					return err
				}
				chosen, ok, err := store.ChosenCategory(cmd.Context())
				if err != nil {
					return err
				}
				f := form
				if ok {
					f.CategoryID = chosen.ID
					f.CategoryName = chosen.Name
				}
				req = f.Build(tags)
				return client.UpdateTwitchMetadata(cmd.Context(), req)
			})
			if err != nil {
				return err
			}
			ctx.loggerFor("cli").Info("twitch metadata updated",
				logging.String("title", req.Title),
				logging.String("category_id", req.CategoryID),
				logging.Int("tags", len(req.Tags)),
			)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Twitch metadata updated")
			if req.CategoryName != "" {
				fmt.Fprintf(out, "  Category: %s\n", req.CategoryName)
			}
			if len(req.Tags) > 0 {
				fmt.Fprintf(out, "  Tags:     %s\n", strings.Join(req.Tags, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Title, "title", "", "Stream title")
	cmd.Flags().StringVar(&form.Description, "description", "", "Stream description")
	return cmd
}
