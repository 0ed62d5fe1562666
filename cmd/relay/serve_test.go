package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/relay/config"
	"github.com/spetersoncode/relay/internal/store"
)

func TestStartCleanup(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewMemoryStore()
	ctx := context.Background()

	t.Run("disabled when retention is zero", func(t *testing.T) {
		c, err := startCleanup(ctx, st, &config.Config{RetentionDays: 0, CleanupSchedule: "@daily"}, logger)

		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("schedules one job", func(t *testing.T) {
		c, err := startCleanup(ctx, st, &config.Config{RetentionDays: 30, CleanupSchedule: "@daily"}, logger)

		require.NoError(t, err)
		require.NotNil(t, c)
		t.Cleanup(func() { <-c.Stop().Done() })
		assert.Len(t, c.Entries(), 1)
	})

	t.Run("rejects an invalid schedule", func(t *testing.T) {
		_, err := startCleanup(ctx, st, &config.Config{RetentionDays: 30, CleanupSchedule: "every tuesday"}, logger)

		assert.ErrorContains(t, err, "every tuesday")
	})
}
