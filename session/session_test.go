package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	t.Run("new session is idle", func(t *testing.T) {
		s := New()
		assert.Equal(t, StateIdle, s.State())
		assert.Empty(t, s.ActiveTask())
		assert.Empty(t, s.Buffer())
		assert.False(t, s.Paused())
	})

	t.Run("zero value is usable", func(t *testing.T) {
		var s Session
		require.NoError(t, s.Start("t1"))
		assert.Equal(t, StateActive, s.State())
	})

	t.Run("start rejects an empty task id", func(t *testing.T) {
		s := New()
		assert.ErrorIs(t, s.Start(""), ErrEmptyTaskID)
		assert.Equal(t, StateIdle, s.State())

		require.NoError(t, s.Start("task-1"))
		require.NoError(t, s.Pause())
		assert.ErrorIs(t, s.Start(""), ErrEmptyTaskID)
		assert.Equal(t, StatePaused, s.State())
		assert.Equal(t, "task-1", s.ActiveTask())
	})

	t.Run("start activates", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Start("task-1"))
		assert.Equal(t, StateActive, s.State())
		assert.Equal(t, "task-1", s.ActiveTask())
	})

	t.Run("pause and resume", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Start("task-1"))
		s.buffer = "partial answer"

		require.NoError(t, s.Pause())
		assert.Equal(t, StatePaused, s.State())
		assert.True(t, s.Paused())

		buf, err := s.Resume()
		require.NoError(t, err)
		assert.Equal(t, "partial answer", buf)
		assert.Equal(t, StateActive, s.State())
		assert.Equal(t, "partial answer", s.Buffer())
	})

	t.Run("start resets buffer and pause", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Start("task-1"))
		s.buffer = "old"
		require.NoError(t, s.Pause())

		require.NoError(t, s.Start("task-2"))

		assert.Equal(t, StateActive, s.State())
		assert.Equal(t, "task-2", s.ActiveTask())
		assert.Empty(t, s.Buffer())
	})

	t.Run("invalid transitions", func(t *testing.T) {
		s := New()
		assert.ErrorIs(t, s.Pause(), ErrInvalidTransition)
		_, err := s.Resume()
		assert.ErrorIs(t, err, ErrInvalidTransition)

		require.NoError(t, s.Start("task-1"))
		_, err = s.Resume()
		assert.ErrorIs(t, err, ErrInvalidTransition)

		require.NoError(t, s.Pause())
		assert.ErrorIs(t, s.Pause(), ErrInvalidTransition)
		assert.Equal(t, StatePaused, s.State())
	})

	t.Run("independent sessions", func(t *testing.T) {
		a, b := New(), New()
		require.NoError(t, a.Start("a"))
		assert.Equal(t, StateIdle, b.State())
	})

	t.Run("concurrent use", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Start("task"))
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if s.Pause() == nil {
					_, _ = s.Resume()
				}
				_ = s.State()
			}()
		}
		wg.Wait()
		assert.NotEqual(t, StateIdle, s.State())
	})
}
