// Command relay sends prompts to OpenAI, Claude and Gemini, keeps the
// conversation history in SQLite and can compare models side by side.
//
// Usage:
//
//	relay ask --model claude "What is the capital of France?"
//	relay compare --models gpt-4o,claude-3-5-sonnet-latest "Explain CRDTs"
//	relay conversations list
//	relay serve
//	relay mcp
//
// API keys are read from the environment or a .env file:
//
//	OPENAI_API_KEY=sk-...
//	ANTHROPIC_API_KEY=sk-ant-...
//	GEMINI_API_KEY=...
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
