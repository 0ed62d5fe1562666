// Package client provides a unified multi-provider chat client.
//
// The Client wraps the provider adapters and provides:
//
//   - Lazy initialization: an adapter is built the first time its provider is used
//   - Credential checks: a provider without an API key fails as unconfigured
//   - Per-family default models
//   - Event emission: observable requests via channel
//
// # Basic Usage
//
//	c := client.New(client.Config{
//	    APIKeys: client.APIKeys{
//	        Anthropic: os.Getenv("ANTHROPIC_API_KEY"),
//	        OpenAI:    os.Getenv("OPENAI_API_KEY"),
//	    },
//	    Defaults: client.Defaults{OpenAI: "gpt-4o"},
//	})
//
//	resp, err := c.Chat(ctx, relay.ProviderOpenAI, []relay.Message{relay.UserMessage("Hello!")})
//
// # Events
//
//	events := make(chan client.Event, 100)
//	c := client.New(client.Config{Events: events})
//
//	go func() {
//	    for e := range events {
//	        fmt.Printf("[%s] %s %s took %v\n", e.Type, e.Provider, e.Model, e.Duration)
//	    }
//	}()
package client
