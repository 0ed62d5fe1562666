package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var conversationsCmd = &cobra.Command{
	Use:     "conversations",
	Aliases: []string{"conv"},
	Short:   "List, delete and clean up stored conversations",
}

var conversationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations, most recently active first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		conversations, err := a.store.Conversations(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tMESSAGES\tLAST MESSAGE")
		for _, c := range conversations {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", c.ID, c.CreatedAt, c.MessageCount, c.LastMessageAt)
		}
		return w.Flush()
	},
}

var conversationsDeleteCmd = &cobra.Command{
	Use:   "delete <conversation-id>",
	Short: "Delete a conversation and its messages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		deleted, err := a.store.Delete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("conversation %s not found", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Conversation %s deleted\n", args[0])
		return nil
	},
}

var conversationsCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete conversations older than a number of days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		flagDays, _ := cmd.Flags().GetInt("days")
		days, err := cleanupDays(cmd.Flags().Changed("days"), flagDays, a.cfg.RetentionDays)
		if err != nil {
			return err
		}

		n, err := a.store.Cleanup(cmd.Context(), time.Duration(days)*24*time.Hour)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d old conversations\n", n)
		return nil
	},
}

// defaultCleanupDays applies when neither --days nor a retention period is set.
const defaultCleanupDays = 30

// cleanupDays picks the cleanup age threshold. An explicit --days wins, then a
// positive RELAY_RETENTION_DAYS. Retention 0 only disables the scheduled job
// and falls back to the default here.
func cleanupDays(flagSet bool, flagDays, retentionDays int) (int, error) {
	switch {
	case flagSet:
		if flagDays < 0 {
			return 0, fmt.Errorf("--days must not be negative, got %d", flagDays)
		}
		return flagDays, nil
	case retentionDays > 0:
		return retentionDays, nil
	default:
		return defaultCleanupDays, nil
	}
}

func init() {
	conversationsCleanupCmd.Flags().Int("days", defaultCleanupDays, "age threshold in days (default RELAY_RETENTION_DAYS when positive, else 30)")
	conversationsCmd.AddCommand(conversationsListCmd, conversationsDeleteCmd, conversationsCleanupCmd)
}
