package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	ai "github.com/spetersoncode/relay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()

	t.Run("reopen keeps data", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "conversation.db")

		s, err := OpenSQLite(path)
		require.NoError(t, err)
		_, err = s.Append(ctx, "c1", ai.UserMessage("persisted"))
		require.NoError(t, err)
		require.NoError(t, s.Close())

		s, err = OpenSQLite(path)
		require.NoError(t, err)
		defer s.Close()

		history, err := s.History(ctx, "c1")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "persisted", history[0].Content)
	})

	t.Run("adds model column to older files", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "legacy.db")
		db, err := sql.Open("sqlite", path)
		require.NoError(t, err)
		_, err = db.Exec(`CREATE TABLE conversations (
			conversation_id TEXT PRIMARY KEY,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`)
		require.NoError(t, err)
		_, err = db.Exec(`CREATE TABLE messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			conversation_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`)
		require.NoError(t, err)
		require.NoError(t, db.Close())

		s, err := OpenSQLite(path)
		require.NoError(t, err)
		defer s.Close()

		has, err := s.hasColumn("messages", "model")
		require.NoError(t, err)
		assert.True(t, has)

		_, err = s.Append(ctx, "c1", ai.AssistantMessage("answer", "claude-3-5-sonnet-latest"))
		require.NoError(t, err)
		history, err := s.History(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, "claude-3-5-sonnet-latest", history[0].Model)
	})

	t.Run("in-memory database", func(t *testing.T) {
		s, err := OpenSQLite(":memory:")
		require.NoError(t, err)
		defer s.Close()

		_, err = s.Append(ctx, "c1", ai.UserMessage("x"))
		require.NoError(t, err)
		history, err := s.History(ctx, "c1")
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("close twice", func(t *testing.T) {
		s, err := OpenSQLite(":memory:")
		require.NoError(t, err)
		assert.NoError(t, s.Close())
		assert.NoError(t, s.Close())
	})
}
