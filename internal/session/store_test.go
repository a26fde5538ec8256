package session

import (
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/blackholes/internal/board"
	"github.com/vancomm/blackholes/internal/game"
)

func newTestStore() *Store {
	return NewStore(rand.New(rand.NewPCG(1, 2)), time.Minute)
}

func TestCreateAndDo(t *testing.T) {
	s := newTestStore()

	id, err := s.Create(4, 0, false)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, s.Len())

	err = s.Do(id, func(e *Entry) error {
		assert.Equal(t, id, e.ID)
		assert.Nil(t, e.EndedAt)
		_, err := e.Reveal(0, 0)
		assert.NotNil(t, e.EndedAt)
		return err
	})
	require.NoError(t, err)

	err = s.Do(id, func(e *Entry) error {
		assert.Equal(t, game.Won, e.Game.State())
		assert.NotNil(t, e.EndedAt)
		return nil
	})
	require.NoError(t, err)
}

func TestGet(t *testing.T) {
	s := newTestStore()
	id, err := s.Create(3, 1, false)
	require.NoError(t, err)

	e, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, e.ID)
	assert.Equal(t, 3, e.Game.Board().Size())

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	s.Delete(id)
	_, err = s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateInvalid(t *testing.T) {
	s := newTestStore()
	_, err := s.Create(0, 0, false)
	assert.ErrorIs(t, err, board.ErrInvalidArgument)
	assert.Equal(t, 0, s.Len())
}

func TestQuitStampsEnd(t *testing.T) {
	s := newTestStore()
	id, err := s.Create(3, 1, false)
	require.NoError(t, err)

	err = s.Do(id, func(e *Entry) error {
		e.Quit()
		assert.Equal(t, game.Quit, e.Game.State())
		assert.NotNil(t, e.EndedAt)
		return nil
	})
	require.NoError(t, err)
}

func TestNotFound(t *testing.T) {
	s := newTestStore()
	err := s.Do("missing", func(e *Entry) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDoReturnsCallbackError(t *testing.T) {
	s := newTestStore()
	id, err := s.Create(2, 1, false)
	require.NoError(t, err)

	boom := errors.New("boom")
	assert.ErrorIs(t, s.Do(id, func(e *Entry) error { return boom }), boom)
}

func TestDelete(t *testing.T) {
	s := newTestStore()
	id, err := s.Create(2, 1, false)
	require.NoError(t, err)

	s.Delete(id)
	assert.Equal(t, 0, s.Len())
	assert.ErrorIs(t, s.Do(id, func(e *Entry) error { return nil }), ErrNotFound)
}

func TestSweep(t *testing.T) {
	s := newTestStore()
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := start
	s.now = func() time.Time { return clock }

	stale, err := s.Create(3, 1, false)
	require.NoError(t, err)

	clock = start.Add(time.Second * 50)
	fresh, err := s.Create(3, 1, false)
	require.NoError(t, err)

	assert.Equal(t, 0, s.Sweep(start.Add(time.Second*30)))
	assert.Equal(t, 1, s.Sweep(start.Add(time.Second*90)))
	assert.ErrorIs(t, s.Do(stale, func(e *Entry) error { return nil }), ErrNotFound)
	assert.NoError(t, s.Do(fresh, func(e *Entry) error { return nil }))
}

func TestConcurrentAccess(t *testing.T) {
	s := newTestStore()
	id, err := s.Create(20, 40, false)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 20 {
				_ = s.Do(id, func(e *Entry) error {
					_, err := e.Game.Reveal(i, j)
					if errors.Is(err, game.ErrGameOver) {
						return nil
					}
					return err
				})
			}
			_, _ = s.Create(3, 1, false)
		}()
	}
	wg.Wait()

	assert.Equal(t, 9, s.Len())
}
