package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	ai "github.com/spetersoncode/relay"
)

var historyCmd = &cobra.Command{
	Use:   "history <conversation-id>",
	Short: "Print a conversation's messages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		messages, err := a.store.History(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(messages)
		}
		if len(messages) == 0 {
			fmt.Fprintln(out, "No messages.")
			return nil
		}
		for _, m := range messages {
			fmt.Fprintln(out, formatMessage(m))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Bool("json", false, "print messages as JSON")
}

func formatMessage(m ai.Message) string {
	author := string(m.Role)
	if m.Model != "" {
		author += " (" + m.Model + ")"
	}
	return fmt.Sprintf("[%s] %s: %s", m.Timestamp, author, m.Content)
}
