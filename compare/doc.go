// Package compare sends one prompt to several models in parallel and collects
// a result per model.
//
//	o := compare.New(c, historyStore, compare.WithCallTimeout(30*time.Second))
//	res, err := o.Compare(ctx, compare.Request{
//	    Prompt: "What is the capital of France?",
//	    Models: []string{"gpt-4.1", "claude-3-5-sonnet-latest", "gemini-2.0-flash"},
//	})
//
// Results keep request order. A failing model never affects the others.
package compare
