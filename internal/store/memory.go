package store

import (
	"context"
	"sort"
	"sync"
	"time"

	ai "github.com/spetersoncode/relay"
)

type memoryConversation struct {
	createdAt time.Time
	messages  []ai.Message
}

// MemoryStore keeps conversations in process memory.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[string]*memoryConversation
	now           func() time.Time
	closed        bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := applyOptions(opts...)
	return &MemoryStore{
		conversations: make(map[string]*memoryConversation),
		now:           o.now,
	}
}

// History returns a copy of the conversation's messages.
func (m *MemoryStore) History(_ context.Context, conversationID string) ([]ai.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}

	c, ok := m.conversations[conversationID]
	if !ok {
		return []ai.Message{}, nil
	}
	result := make([]ai.Message, len(c.messages))
	copy(result, c.messages)
	return result, nil
}

// Append adds a message, creating the conversation if absent.
func (m *MemoryStore) Append(_ context.Context, conversationID string, msg ai.Message) (string, error) {
	if conversationID == "" {
		return "", ErrEmptyConversationID
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", ErrClosed
	}

	c, ok := m.conversations[conversationID]
	if !ok {
		c = &memoryConversation{createdAt: m.now()}
		m.conversations[conversationID] = c
	}
	msg.Timestamp = stamp(msg, m.now)
	c.messages = append(c.messages, msg)
	return msg.Timestamp, nil
}

// Conversations lists conversations, most recently active first.
func (m *MemoryStore) Conversations(_ context.Context) ([]Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}

	result := make([]Conversation, 0, len(m.conversations))
	for id, c := range m.conversations {
		conv := Conversation{
			ID:           id,
			CreatedAt:    ai.FormatTimestamp(c.createdAt),
			MessageCount: len(c.messages),
		}
		for _, msg := range c.messages {
			if msg.Timestamp > conv.LastMessageAt {
				conv.LastMessageAt = msg.Timestamp
			}
		}
		result = append(result, conv)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].LastMessageAt != result[j].LastMessageAt {
			return result[i].LastMessageAt > result[j].LastMessageAt
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Delete removes a conversation.
func (m *MemoryStore) Delete(_ context.Context, conversationID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false, ErrClosed
	}

	_, ok := m.conversations[conversationID]
	delete(m.conversations, conversationID)
	return ok, nil
}

// Cleanup removes conversations created before now minus olderThan.
func (m *MemoryStore) Cleanup(_ context.Context, olderThan time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrClosed
	}

	cutoff := m.now().Add(-olderThan)
	removed := 0
	for id, c := range m.conversations {
		if c.createdAt.Before(cutoff) {
			delete(m.conversations, id)
			removed++
		}
	}
	return removed, nil
}

// Close drops all conversations.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.conversations = nil
	return nil
}

var _ Store = (*MemoryStore)(nil)
