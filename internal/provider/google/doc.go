// Package google provides a Gemini client implementing [relay.ChatProvider]
// on top of the Google GenAI SDK with the Gemini API backend.
//
//	client, err := google.New(ctx, os.Getenv("GEMINI_API_KEY"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	resp, err := client.Chat(ctx, []relay.Message{relay.UserMessage("Hello")})
package google
