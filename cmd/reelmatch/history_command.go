package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reelmatch/internal/config"
	"reelmatch/internal/history"
	"reelmatch/internal/media"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Query the Tautulli watch-history database",
	}
	historyCmd.AddCommand(newHistoryUsersCommand(ctx))
	historyCmd.AddCommand(newHistoryWatchedCommand(ctx))
	return historyCmd
}

func openHistory(cfg *config.Config) (*history.Reader, error) {
	if !cfg.History.Enabled {
		return nil, errors.New("history is disabled; set history.enabled in the config")
	}
	return history.Open(cfg.History.DBPath)
}

func newHistoryUsersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List active Tautulli users",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			reader, err := openHistory(cfg)
			if err != nil {
				return err
			}
			defer reader.Close()

			users, err := reader.Users(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(users))
			for _, user := range users {
				rows = append(rows, []string{
					strconv.FormatInt(user.UserID, 10),
					user.DisplayName(),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]tableColumn{{header: "User ID", numeric: true}, {header: "Name"}},
				rows,
			))
			return nil
		},
	}
}

func newHistoryWatchedCommand(ctx *commandContext) *cobra.Command {
	var (
		userID   int64
		kindFlag string
	)

	cmd := &cobra.Command{
		Use:   "watched",
		Short: "List distinct watched titles for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if userID <= 0 {
				return errors.New("--user is required")
			}
			kind, ok := media.ParseKind(kindFlag)
			if !ok {
				return fmt.Errorf("unknown media kind %q", kindFlag)
			}
			reader, err := openHistory(cfg)
			if err != nil {
				return err
			}
			defer reader.Close()

			titles, err := reader.WatchedTitles(cmd.Context(), userID, kind, historySections(cfg))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, title := range titles {
				fmt.Fprintln(out, title)
			}
			fmt.Fprintf(out, "%d watched %ss\n", len(titles), kind)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "Tautulli user ID")
	cmd.Flags().StringVar(&kindFlag, "kind", "movie", "Media kind: movie or show")
	return cmd
}
