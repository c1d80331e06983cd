package handler

import (
	"fmt"
	"imghook/internal/adapters/notifier"
	"imghook/internal/core/service"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Session is the server side of one open form page.
type Session struct {
	ID         string
	Controller *service.Controller
	Toasts     *notifier.Toaster

	lastSeen time.Time
}

// SessionFactory wires a new form for the session with the given ID.
type SessionFactory func(id string) *Session

// Sessions keeps form sessions in memory. Sessions idle for longer than the TTL are removed by Sweep unless
// a submission is still running.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
	factory  SessionFactory
	ttl      time.Duration
	now      func() time.Time
}

func NewSessions(factory SessionFactory, ttl time.Duration) *Sessions {
	return &Sessions{
		sessions: make(map[string]*Session),
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session with the given ID and marks it as active.
func (s *Sessions) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if ok {
		session.lastSeen = s.now()
	}

	return session, ok
}

func (s *Sessions) Create() (*Session, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("error generating session id: %w", err)
	}

	session := s.factory(id.String())
	session.ID = id.String()

	s.mu.Lock()
	session.lastSeen = s.now()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	log.Debug().Str("session", session.ID).Msg("created form session")

	return session, nil
}

func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	log.Debug().Str("session", id).Msg("removed form session")
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if s.now().Sub(session.lastSeen) <= s.ttl {
			continue
		}

		if session.Controller.Form().Snapshot().Result.IsLoading() {
			continue
		}

		delete(s.sessions, id)
		removed++
	}

	return removed
}

// Schedule runs Sweep on the given cron spec until the returned cron is stopped.
func (s *Sessions) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		if removed := s.Sweep(); removed > 0 {
			log.Info().Int("removed", removed).Int("remaining", s.Len()).Msg("swept idle form sessions")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}

	c.Start()

	return c, nil
}
