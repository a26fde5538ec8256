// Package session keeps the games of the HTTP front end in memory for as
// long as the process runs.
package session

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/blackholes/internal/board"
	"github.com/vancomm/blackholes/internal/game"
)

var ErrNotFound = errors.New("session not found")

// Entry is one player's game. Its fields may only be touched inside
// [Store.Do].
type Entry struct {
	ID        string
	Game      *game.Game
	StartedAt time.Time
	EndedAt   *time.Time
	LastSeen  time.Time

	mu  sync.Mutex
	now func() time.Time
}

func (e *Entry) Reveal(x, y int) (board.Result, error) {
	res, err := e.Game.Reveal(x, y)
	e.settle()
	return res, err
}

func (e *Entry) Quit() {
	e.Game.Quit()
	e.settle()
}

// settle stamps the end time the first time the game is found finished.
func (e *Entry) settle() {
	if e.EndedAt == nil && e.Game.State().Over() {
		now := e.now().UTC()
		e.EndedAt = &now
	}
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	rnd     *rand.Rand
	ttl     time.Duration
	now     func() time.Time
}

func NewStore(rnd *rand.Rand, ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]*Entry),
		rnd:     rnd,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Create starts a new game and returns its session id.
func (s *Store) Create(n, k int, debug bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// rand.Rand is not safe for concurrent use; the write lock covers it
	g, err := game.New(n, k, debug, s.rnd)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	e := &Entry{
		ID:        uuid.New().String(),
		Game:      g,
		StartedAt: now,
		LastSeen:  now,
		now:       s.now,
	}
	s.entries[e.ID] = e

	return e.ID, nil
}

// Get looks the session up without locking it. Use [Store.Do] to touch its
// game.
func (s *Store) Get(id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

// Do runs fn with exclusive access to the session.
func (s *Store) Do(id string, fn func(e *Entry) error) error {
	e, err := s.Get(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	err = fn(e)
	e.settle()
	e.LastSeen = s.now().UTC()

	return err
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Sweep drops every session idle for longer than the store ttl and returns
// how many were dropped.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, e := range s.entries {
		e.mu.Lock()
		idle := now.Sub(e.LastSeen)
		e.mu.Unlock()
		if idle > s.ttl {
			delete(s.entries, id)
			dropped++
		}
	}
	return dropped
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
