package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/senseilabs/sensei/internal/learn"
	"github.com/senseilabs/sensei/internal/store"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved study sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		sessions, err := s.SessionRepo().List(context.Background(), defaultUserID)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if !all {
			sessions = learn.LatestPerTopic(sessions)
		}

		if len(sessions) == 0 {
			fmt.Println("No saved sessions.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-10s  %s\n", "ID", "Created", "Modules", "Topic")
		fmt.Println(strings.Repeat("─", 90))
		for _, sess := range sessions {
			opened := 0
			for _, m := range sess.Modules {
				if m.Open {
					opened++
				}
			}
			fmt.Printf("%-36s  %-19s  %4d/%-5d  %s\n",
				sess.ID,
				sess.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				opened, len(sess.Modules),
				sess.Topic,
			)
		}
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		if err := s.SessionRepo().Delete(context.Background(), args[0], defaultUserID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}

func init() {
	sessionsListCmd.Flags().BoolP("all", "a", false, "Show every saved version, not just the latest per topic")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}
