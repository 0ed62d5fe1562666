package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	ai "github.com/spetersoncode/relay"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists conversations in a SQLite database.
// The schema matches the conversations/messages layout of earlier deployments,
// so existing database files open unchanged.
type SQLiteStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	now    func() time.Time
	closed bool
}

// OpenSQLite opens or creates the database at path and migrates the schema.
func OpenSQLite(path string, opts ...Option) (*SQLiteStore, error) {
	o := applyOptions(opts...)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	// One connection serializes writes and keeps ":memory:" databases alive.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		`PRAGMA journal_mode=WAL`,
		`PRAGMA busy_timeout=5000`,
		`PRAGMA foreign_keys=ON`,
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db, now: o.now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}

// migrate creates tables on first run and adds columns missing from older files.
func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			conversation_id TEXT PRIMARY KEY,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			conversation_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			model TEXT,
			timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (conversation_id) REFERENCES conversations(conversation_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, timestamp)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}

	hasModel, err := s.hasColumn("messages", "model")
	if err != nil {
		return err
	}
	if !hasModel {
		if _, err := s.db.Exec(`ALTER TABLE messages ADD COLUMN model TEXT`); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) hasColumn(table, column string) (bool, error) {
	rows, err := s.db.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// History returns the conversation's messages ordered by timestamp, then insertion.
func (s *SQLiteStore) History(ctx context.Context, conversationID string) ([]ai.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	// COALESCE keeps timestamps as stored text rather than driver-parsed times.
	rows, err := s.db.QueryContext(ctx, `
		SELECT role, content, COALESCE(model, ''), COALESCE(timestamp, '')
		FROM messages
		WHERE conversation_id = ?
		ORDER BY timestamp ASC, id ASC`, conversationID)
	if err != nil {
		return nil, &QueryError{Op: "history", Err: err}
	}
	defer rows.Close()

	messages := []ai.Message{}
	for rows.Next() {
		var msg ai.Message
		var role string
		if err := rows.Scan(&role, &msg.Content, &msg.Model, &msg.Timestamp); err != nil {
			return nil, &QueryError{Op: "history", Err: err}
		}
		msg.Role = ai.Role(role)
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Op: "history", Err: err}
	}
	return messages, nil
}

// Append inserts a message, creating the conversation row if absent.
func (s *SQLiteStore) Append(ctx context.Context, conversationID string, msg ai.Message) (string, error) {
	if conversationID == "" {
		return "", ErrEmptyConversationID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrClosed
	}

	ts := stamp(msg, s.now)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", &QueryError{Op: "append", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO conversations (conversation_id, created_at) VALUES (?, ?)`,
		conversationID, ai.FormatTimestamp(s.now()),
	); err != nil {
		return "", &QueryError{Op: "append", Err: err}
	}

	model := sql.NullString{String: msg.Model, Valid: msg.Model != ""}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO messages (conversation_id, role, content, model, timestamp) VALUES (?, ?, ?, ?, ?)`,
		conversationID, string(msg.Role), msg.Content, model, ts,
	); err != nil {
		return "", &QueryError{Op: "append", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return "", &QueryError{Op: "append", Err: err}
	}
	return ts, nil
}

// Conversations lists conversations with message counts, most recently active first.
func (s *SQLiteStore) Conversations(ctx context.Context) ([]Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT
			c.conversation_id,
			COALESCE(c.created_at, ''),
			COUNT(m.id),
			COALESCE(MAX(m.timestamp), '') AS last_message_at
		FROM conversations c
		LEFT JOIN messages m ON c.conversation_id = m.conversation_id
		GROUP BY c.conversation_id
		ORDER BY last_message_at DESC, c.conversation_id ASC`)
	if err != nil {
		return nil, &QueryError{Op: "list conversations", Err: err}
	}
	defer rows.Close()

	result := []Conversation{}
	for rows.Next() {
		var c Conversation
		if err := rows.Scan(&c.ID, &c.CreatedAt, &c.MessageCount, &c.LastMessageAt); err != nil {
			return nil, &QueryError{Op: "list conversations", Err: err}
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Op: "list conversations", Err: err}
	}
	return result, nil
}

// Delete removes a conversation's messages, then the conversation.
func (s *SQLiteStore) Delete(ctx context.Context, conversationID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, &QueryError{Op: "delete", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE conversation_id = ?`, conversationID); err != nil {
		return false, &QueryError{Op: "delete", Err: err}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM conversations WHERE conversation_id = ?`, conversationID)
	if err != nil {
		return false, &QueryError{Op: "delete", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, &QueryError{Op: "delete", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return false, &QueryError{Op: "delete", Err: err}
	}
	return n > 0, nil
}

// Cleanup removes conversations created before now minus olderThan.
// Messages go first so the foreign key holds throughout.
func (s *SQLiteStore) Cleanup(ctx context.Context, olderThan time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}

	cutoff := ai.FormatTimestamp(s.now().Add(-olderThan))
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &QueryError{Op: "cleanup", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM messages WHERE conversation_id IN (
			SELECT conversation_id FROM conversations WHERE created_at < ?
		)`, cutoff); err != nil {
		return 0, &QueryError{Op: "cleanup", Err: err}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM conversations WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, &QueryError{Op: "cleanup", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &QueryError{Op: "cleanup", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return 0, &QueryError{Op: "cleanup", Err: err}
	}
	return int(n), nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
