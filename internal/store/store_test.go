package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	ai "github.com/spetersoncode/relay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock advances by a millisecond on every reading.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type storeFactory func(t *testing.T, clock *testClock) Store

func factories() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(t *testing.T, clock *testClock) Store {
			return NewMemoryStore(WithClock(clock.Now))
		},
		"sqlite": func(t *testing.T, clock *testClock) Store {
			s, err := OpenSQLite(filepath.Join(t.TempDir(), "conversation.db"), WithClock(clock.Now))
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, factory := range factories() {
		t.Run(name, func(t *testing.T) {
			t.Run("unknown conversation is empty", func(t *testing.T) {
				s := factory(t, newTestClock())

				history, err := s.History(ctx, "missing")

				require.NoError(t, err)
				assert.NotNil(t, history)
				assert.Empty(t, history)
			})

			t.Run("append then read in order", func(t *testing.T) {
				s := factory(t, newTestClock())

				ts1, err := s.Append(ctx, "c1", ai.UserMessage("hello"))
				require.NoError(t, err)
				ts2, err := s.Append(ctx, "c1", ai.AssistantMessage("hi", "gpt-4.1-mini"))
				require.NoError(t, err)
				assert.Less(t, ts1, ts2)

				history, err := s.History(ctx, "c1")
				require.NoError(t, err)
				require.Len(t, history, 2)
				assert.Equal(t, ai.RoleUser, history[0].Role)
				assert.Equal(t, "hello", history[0].Content)
				assert.Empty(t, history[0].Model)
				assert.Equal(t, ts1, history[0].Timestamp)
				assert.Equal(t, ai.RoleAssistant, history[1].Role)
				assert.Equal(t, "gpt-4.1-mini", history[1].Model)
				assert.Equal(t, ts2, history[1].Timestamp)
			})

			t.Run("keeps caller timestamp", func(t *testing.T) {
				s := factory(t, newTestClock())
				msg := ai.UserMessage("x")
				msg.Timestamp = "2024-01-01T00:00:00.000000Z"

				ts, err := s.Append(ctx, "c1", msg)

				require.NoError(t, err)
				assert.Equal(t, msg.Timestamp, ts)
			})

			t.Run("history is a copy", func(t *testing.T) {
				s := factory(t, newTestClock())
				_, err := s.Append(ctx, "c1", ai.UserMessage("original"))
				require.NoError(t, err)

				history, err := s.History(ctx, "c1")
				require.NoError(t, err)
				history[0].Content = "modified"

				again, err := s.History(ctx, "c1")
				require.NoError(t, err)
				assert.Equal(t, "original", again[0].Content)
			})

			t.Run("empty conversation id is rejected", func(t *testing.T) {
				s := factory(t, newTestClock())

				_, err := s.Append(ctx, "", ai.UserMessage("x"))

				assert.ErrorIs(t, err, ErrEmptyConversationID)
			})

			t.Run("conversations most recent first", func(t *testing.T) {
				s := factory(t, newTestClock())
				_, err := s.Append(ctx, "older", ai.UserMessage("a"))
				require.NoError(t, err)
				_, err = s.Append(ctx, "newer", ai.UserMessage("b"))
				require.NoError(t, err)
				_, err = s.Append(ctx, "newer", ai.AssistantMessage("c", "claude"))
				require.NoError(t, err)

				convs, err := s.Conversations(ctx)

				require.NoError(t, err)
				require.Len(t, convs, 2)
				assert.Equal(t, "newer", convs[0].ID)
				assert.Equal(t, 2, convs[0].MessageCount)
				assert.NotEmpty(t, convs[0].CreatedAt)
				assert.NotEmpty(t, convs[0].LastMessageAt)
				assert.Equal(t, "older", convs[1].ID)
				assert.Equal(t, 1, convs[1].MessageCount)
			})

			t.Run("delete", func(t *testing.T) {
				s := factory(t, newTestClock())
				_, err := s.Append(ctx, "c1", ai.UserMessage("a"))
				require.NoError(t, err)

				ok, err := s.Delete(ctx, "c1")
				require.NoError(t, err)
				assert.True(t, ok)

				history, err := s.History(ctx, "c1")
				require.NoError(t, err)
				assert.Empty(t, history)

				ok, err = s.Delete(ctx, "c1")
				require.NoError(t, err)
				assert.False(t, ok)
			})

			t.Run("cleanup removes only old conversations", func(t *testing.T) {
				clock := newTestClock()
				s := factory(t, clock)
				_, err := s.Append(ctx, "old", ai.UserMessage("a"))
				require.NoError(t, err)
				_, err = s.Append(ctx, "old", ai.AssistantMessage("b", "gemini"))
				require.NoError(t, err)

				clock.Advance(40 * 24 * time.Hour)
				_, err = s.Append(ctx, "fresh", ai.UserMessage("c"))
				require.NoError(t, err)
				// New messages do not refresh an old conversation's age.
				_, err = s.Append(ctx, "old", ai.UserMessage("d"))
				require.NoError(t, err)

				removed, err := s.Cleanup(ctx, 30*24*time.Hour)
				require.NoError(t, err)
				assert.Equal(t, 1, removed)

				history, err := s.History(ctx, "old")
				require.NoError(t, err)
				assert.Empty(t, history)

				convs, err := s.Conversations(ctx)
				require.NoError(t, err)
				require.Len(t, convs, 1)
				assert.Equal(t, "fresh", convs[0].ID)

				removed, err = s.Cleanup(ctx, 30*24*time.Hour)
				require.NoError(t, err)
				assert.Zero(t, removed)
			})

			t.Run("concurrent appends", func(t *testing.T) {
				s := factory(t, newTestClock())

				var wg sync.WaitGroup
				for i := 0; i < 20; i++ {
					wg.Add(1)
					go func(i int) {
						defer wg.Done()
						_, err := s.Append(ctx, "c1", ai.UserMessage(fmt.Sprintf("msg %d", i)))
						assert.NoError(t, err)
					}(i)
				}
				wg.Wait()

				history, err := s.History(ctx, "c1")
				require.NoError(t, err)
				assert.Len(t, history, 20)
			})

			t.Run("closed store", func(t *testing.T) {
				s := factory(t, newTestClock())
				require.NoError(t, s.Close())

				_, err := s.History(ctx, "c1")
				assert.ErrorIs(t, err, ErrClosed)
				_, err = s.Append(ctx, "c1", ai.UserMessage("x"))
				assert.ErrorIs(t, err, ErrClosed)
			})
		})
	}
}
