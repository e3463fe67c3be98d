package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/lazymemo/internal/model"
	"github.com/Joseda-hg/lazymemo/internal/tui"
)

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "lazymemo",
		Short:         "Terminal todo memo backed by a remote task collection",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()
			return tui.Run(a.service, a.store, a.logger)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file path")
	flags.StringVar(&opts.baseURL, "url", "", "task collection base url")
	flags.StringVar(&opts.dbPath, "db", "", "sqlite journal path")
	flags.StringVar(&opts.logPath, "log", "", "log file path")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.category, "category", "", "category to show (all, important, unfinished)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "also log to stderr")

	rootCmd.AddCommand(
		newListCmd(opts),
		newAddCmd(opts),
		newCheckCmd(opts),
		newMarkCmd(opts),
		newEditCmd(opts),
		newRemoveCmd(opts),
		newHistoryCmd(opts),
	)
	return rootCmd
}

// withLoadedApp opens the app, fetches the task collection and runs fn.
func withLoadedApp(opts *rootOptions, fn func(ctx context.Context, a *app) error) error {
	a, err := opts.openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if err := a.service.Load(ctx); err != nil {
		return err
	}
	return fn(ctx, a)
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks in the selected category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLoadedApp(opts, func(_ context.Context, a *app) error {
				printTasks(cmd.OutOrStdout(), a.service.Visible())
				return nil
			})
		},
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <content>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLoadedApp(opts, func(ctx context.Context, a *app) error {
				created, err := a.service.Create(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", created.ID)
				return nil
			})
		},
	}
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <id>",
		Short: "Toggle a task's done flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLoadedApp(opts, func(ctx context.Context, a *app) error {
				task, err := a.service.ToggleChecked(ctx, model.ParseID(args[0]))
				if err != nil {
					return err
				}
				printTasks(cmd.OutOrStdout(), []model.Task{task})
				return nil
			})
		},
	}
}

func newMarkCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mark <id>",
		Short: "Toggle a task's important flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLoadedApp(opts, func(ctx context.Context, a *app) error {
				task, err := a.service.ToggleMark(ctx, model.ParseID(args[0]))
				if err != nil {
					return err
				}
				printTasks(cmd.OutOrStdout(), []model.Task{task})
				return nil
			})
		},
	}
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <content>",
		Short: "Replace a task's content",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLoadedApp(opts, func(ctx context.Context, a *app) error {
				task, err := a.service.EditContent(ctx, model.ParseID(args[0]), strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				printTasks(cmd.OutOrStdout(), []model.Task{task})
				return nil
			})
		},
	}
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLoadedApp(opts, func(ctx context.Context, a *app) error {
				id := model.ParseID(args[0])
				if err := a.service.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
				return nil
			})
		},
	}
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "Show the local activity journal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := context.Background()
			var entries []model.HistoryEntry
			if len(args) == 1 {
				entries, err = a.store.ListHistory(ctx, model.ParseID(args[0]))
			} else {
				entries, err = a.store.ListRecent(ctx, limit)
			}
			if err != nil {
				return err
			}
			for _, entry := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", entry.CreatedAt.Local().Format("2006-01-02 15:04"), entry.TaskID, entry.EventType, entry.Details)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}

func printTasks(w io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No Task Now")
		return
	}
	for _, task := range tasks {
		check := " "
		if task.Checked {
			check = "x"
		}
		mark := " "
		if task.Mark {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t[%s] %s %s\n", task.ID, check, mark, task.Content)
	}
}
