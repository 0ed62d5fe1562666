package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spetersoncode/relay/compare"
)

var compareCmd = &cobra.Command{
	Use:   "compare [prompt]",
	Short: "Send one prompt to several models in parallel",
	Long: `Send the same prompt to every listed model concurrently and print each
answer. All answers are stored in one conversation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringSlice("models", nil, "comma separated model ids (required)")
	compareCmd.Flags().StringP("conversation", "c", "", "conversation id to continue")
	compareCmd.Flags().Bool("json", false, "print the result as JSON")
	_ = compareCmd.MarkFlagRequired("models")
}

func runCompare(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	models, _ := cmd.Flags().GetStringSlice("models")
	conversationID, _ := cmd.Flags().GetString("conversation")
	asJSON, _ := cmd.Flags().GetBool("json")

	result, err := a.comparer.Compare(cmd.Context(), compare.Request{
		Prompt:         strings.Join(args, " "),
		Models:         models,
		ConversationID: conversationID,
	})
	if err != nil {
		return userError(err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(out, "conversation: %s\n", result.ConversationID)
	for _, r := range result.Results {
		status := ""
		if r.Failed() {
			status = " [" + string(r.Error) + "]"
		}
		fmt.Fprintf(out, "\n=== %s%s ===\n%s\n", r.Model, status, r.Response)
	}
	return nil
}
