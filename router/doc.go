// Package router resolves model aliases to provider families and dispatches
// single prompts with conversation history.
//
//	r := router.New(c, store.NewMemoryStore())
//	answer := r.Route(ctx, "claude", "Summarize this paragraph.", conversationID)
//
// [Router.Ask] returns the answer and a classified error separately, so
// callers can tell a model's text from a failure. [Router.Route] folds both
// into one string.
package router
