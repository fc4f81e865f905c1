// Package session keeps per-session chat history so each question can be
// sent to the backend together with the exchanges that preceded it.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/dgallion1/vidbrief/internal/backend"
	"github.com/google/uuid"
)

// Session is the chat history of one viewer with one video.
type Session struct {
	mu sync.Mutex

	ID      string
	VideoID string

	CreatedAt time.Time
	UpdatedAt time.Time

	maxHistory int
	history    []backend.Exchange
}

// Snapshot is a read-only, JSON-safe copy of session state.
type Snapshot struct {
	ID        string             `json:"session_id"`
	VideoID   string             `json:"video_id"`
	History   []backend.Exchange `json:"history"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// History returns a copy of the recorded exchanges, oldest first.
func (s *Session) History() []backend.Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]backend.Exchange, len(s.history))
	copy(out, s.history)
	return out
}

// Append records an exchange, dropping the oldest ones beyond the limit.
func (s *Session) Append(ex backend.Exchange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, ex)
	if s.maxHistory > 0 && len(s.history) > s.maxHistory {
		s.history = append([]backend.Exchange(nil), s.history[len(s.history)-s.maxHistory:]...)
	}
	s.UpdatedAt = time.Now()
}

// Snapshot returns a JSON-safe copy of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	hist := make([]backend.Exchange, len(s.history))
	copy(hist, s.history)
	return Snapshot{
		ID:        s.ID,
		VideoID:   s.VideoID,
		History:   hist,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (s *Session) lastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.UpdatedAt
}

// Store is a thread-safe in-memory session registry with TTL eviction.
type Store struct {
	mu         sync.Mutex
	sessions   map[string]*Session
	ttl        time.Duration
	maxHistory int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewStore(ttl time.Duration, maxHistory int) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		sessions:   make(map[string]*Session),
		ttl:        ttl,
		maxHistory: maxHistory,
	}
}

// Get returns the session with the given ID, or nil.
func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// Resolve returns the session with the given id for videoID. An empty, unknown or expired
// id, or one that belongs to another video, starts a new session.
func (s *Store) Resolve(id, videoID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok && sess.VideoID == videoID && time.Since(sess.lastUsed()) <= s.ttl {
		return sess
	}

	now := time.Now()
	sess := &Session{
		ID:         uuid.NewString(),
		VideoID:    videoID,
		CreatedAt:  now,
		UpdatedAt:  now,
		maxHistory: s.maxHistory,
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Cleanup removes expired sessions and returns how many were removed.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastUsed()) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Start launches the janitor goroutine that evicts expired sessions.
func (s *Store) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	interval := s.ttl / 2
	if interval > 5*time.Minute {
		interval = 5 * time.Minute
	}
	if interval < 10*time.Millisecond {
		interval = 10 * time.Millisecond
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Cleanup()
			}
		}
	}()
}

// Stop halts the janitor and waits for it to exit.
func (s *Store) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}
