// Package relay provides a uniform interface for asking large-language-model
// providers a question, with conversation history threaded into every call.
//
// The root package holds the shared vocabulary: [Message], [Response],
// [Provider], the [ChatProvider] interface implemented by each provider adapter,
// the [HistoryStore] interface consumed by the routing layers, and the
// classified [Error] type.
//
// # Packages
//
//   - [github.com/spetersoncode/relay/client]: lazily configured provider adapters
//   - [github.com/spetersoncode/relay/router]: ask one model by alias
//   - [github.com/spetersoncode/relay/compare]: ask several models in parallel
//   - [github.com/spetersoncode/relay/session]: pause/resume relay state
//   - [github.com/spetersoncode/relay/mcp]: expose ask and compare as MCP tools
//
// # Basic Usage
//
// The router and orchestrator read and write history through any
// [HistoryStore] the caller supplies.
//
//	c := client.New(client.Config{
//	    APIKeys: client.APIKeys{OpenAI: os.Getenv("OPENAI_API_KEY")},
//	})
//	r := router.New(c, historyStore)
//
//	answer := r.Route(ctx, "gpt-4.1", "What is the capital of France?", "")
//	fmt.Println(answer)
//
// # Comparing Models
//
//	o := compare.New(c, historyStore)
//	res, err := o.Compare(ctx, compare.Request{
//	    Prompt: "What is the capital of France?",
//	    Models: []string{"gpt-4.1", "claude-3-5-sonnet-latest"},
//	})
//	if err != nil {
//	    log.Fatal(err) // invalid requests and history failures only
//	}
//	for _, r := range res.Results {
//	    fmt.Printf("%s: %s\n", r.Model, r.Response)
//	}
//
// # Errors
//
// Provider failures are classified by [ErrorKind] and surfaced to end users
// through [Error.UserMessage], which never includes raw provider output.
package relay
