package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [prompt]",
	Short: "Send a prompt to one model",
	Long: `Send a prompt to the model an alias names and print the answer.

Aliases are provider families (openai, claude, gemini) or concrete models
such as gpt-4o or claude-3-5-haiku. Without --conversation a new
conversation is started and its id printed to stderr, so the exchange can be
continued later.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringP("model", "m", "openai", "model alias")
	askCmd.Flags().StringP("conversation", "c", "", "conversation id to continue")
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	alias, _ := cmd.Flags().GetString("model")
	conversationID, _ := cmd.Flags().GetString("conversation")
	prompt := strings.Join(args, " ")

	if conversationID == "" {
		conversationID = uuid.NewString()
		fmt.Fprintln(os.Stderr, "conversation:", conversationID)
	}

	resp, err := a.router.Ask(cmd.Context(), alias, prompt, conversationID)
	if err != nil {
		return userError(err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.Content)
	return nil
}
