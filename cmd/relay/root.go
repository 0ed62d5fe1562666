package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	ai "github.com/spetersoncode/relay"
	"github.com/spetersoncode/relay/client"
	"github.com/spetersoncode/relay/compare"
	"github.com/spetersoncode/relay/config"
	"github.com/spetersoncode/relay/internal/store"
	"github.com/spetersoncode/relay/router"
)

var (
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "Relay prompts to OpenAI, Claude and Gemini",
	Long: `Relay sends prompts to several LLM providers behind one interface.

Conversations are stored in SQLite so follow-up prompts carry their history,
and the same prompt can be sent to several models at once for comparison.

Examples:
  relay ask --model claude "Summarize the CAP theorem"
  relay ask --conversation 3f2a... "And in one sentence?"
  relay compare --models gpt-4.1,claude-3-5-sonnet-latest,gemini-2.0-flash "Explain CRDTs"
  relay history 3f2a...
  relay serve --port 8000`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("db", "conversation.db", "SQLite database path")

	_ = v.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag(config.KeyDBPath, rootCmd.PersistentFlags().Lookup("db"))

	rootCmd.AddCommand(askCmd, compareCmd, historyCmd, conversationsCmd, serveCmd, mcpCmd)
}

// app holds the components shared by the subcommands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    store.Store
	client   *client.Client
	router   *router.Router
	comparer *compare.Orchestrator
}

// newApp loads configuration, opens the conversation store and wires the
// router and orchestrator over a lazily initialized provider client.
func newApp() (*app, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, err
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	cfg.WarnMissingKeys(logger)

	st, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open conversation store: %w", err)
	}
	logger.Debug("conversation store opened", "path", cfg.DBPath)

	events := make(chan client.Event, 64)
	go logEvents(events, logger)

	clientCfg := cfg.ClientConfig()
	clientCfg.Events = events
	return assemble(cfg, logger, st, client.New(clientCfg)), nil
}

// logEvents records provider calls at debug level and failures as warnings.
func logEvents(events <-chan client.Event, logger *slog.Logger) {
	log := logger.With("component", "client")
	for ev := range events {
		switch ev.Type {
		case client.EventRequestError:
			log.Warn("provider request failed",
				"provider", ev.Provider,
				"model", ev.Model,
				"duration_ms", ev.Duration.Milliseconds(),
				"kind", ai.KindOf(ev.Error),
			)
		case client.EventRequestComplete:
			log.Debug("provider request completed",
				"provider", ev.Provider,
				"model", ev.Model,
				"duration_ms", ev.Duration.Milliseconds(),
			)
		default:
			log.Debug("provider request started", "provider", ev.Provider, "model", ev.Model)
		}
	}
}

// assemble wires the router and orchestrator around an existing store and chatter.
func assemble(cfg *config.Config, logger *slog.Logger, st store.Store, c *client.Client) *app {
	return &app{
		cfg:    cfg,
		logger: logger,
		store:  st,
		client: c,
		router: router.New(c, st, router.WithLogger(logger)),
		comparer: compare.New(c, st,
			compare.WithLogger(logger),
			compare.WithMaxConcurrency(cfg.MaxConcurrency),
			compare.WithCallTimeout(cfg.CallTimeout),
		),
	}
}

// Close releases the conversation store.
func (a *app) Close() error {
	return a.store.Close()
}

// userError replaces classified errors with their user-facing sentence.
func userError(err error) error {
	var e *ai.Error
	if errors.As(err, &e) {
		return errors.New(e.UserMessage())
	}
	return err
}
