// Package anthropic provides an Anthropic Claude client implementing [relay.ChatProvider].
//
// Turns are sent as typed text blocks. Requests always carry a max token cap,
// [DefaultMaxTokens] unless the client or the request sets another.
//
// # Basic Usage
//
//	client := anthropic.New(os.Getenv("ANTHROPIC_API_KEY"))
//
//	resp, err := client.Chat(ctx, []relay.Message{relay.UserMessage("Explain quantum computing briefly.")})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.Content)
//
// # Model Selection
//
//	client := anthropic.New(apiKey, anthropic.WithModel(anthropic.Claude35HaikuLatest))
//
// Or per-request:
//
//	resp, err := client.Chat(ctx, messages, relay.WithModel("claude-3-7-sonnet-latest"))
package anthropic
