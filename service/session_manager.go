package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	general_i "github.com/beka-birhanu/vinom-mazeviz/interfaces/general"
	"github.com/beka-birhanu/vinom-mazeviz/maze"
	"github.com/beka-birhanu/vinom-mazeviz/service/i"
	"github.com/beka-birhanu/vinom-mazeviz/solver"
	"github.com/google/uuid"
)

const (
	defaultIdleTTL   = 30 * time.Minute
	defaultMaxActive = 1024
)

var ErrTooManySessions = errors.New("session manager: too many active sessions")

// Config holds the settings shared by every session a manager creates.
type Config struct {
	Rows            int
	Cols            int
	WallProbability float64
	Algorithm       solver.Algorithm
	Solver          i.Solver
	Logger          general_i.Logger
	IdleTTL         time.Duration     // sessions unused for longer are swept
	MaxActive       int               // cap on concurrently live sessions
	NewRand         func() *rand.Rand // per-session random source
	Now             func() time.Time
}

// SessionManager keeps the live visualization sessions of the HTTP API.
type SessionManager struct {
	sessions map[uuid.UUID]*Session
	config   Config
	logger   general_i.Logger
	sync.RWMutex
}

// NewSessionManager validates c and returns an empty manager.
func NewSessionManager(c *Config) (*SessionManager, error) {
	if c.Solver == nil {
		return nil, ErrNilSolver
	}
	if c.Rows <= 0 || c.Cols <= 0 {
		return nil, maze.ErrInvalidDimensions
	}
	if c.WallProbability < 0 || c.WallProbability > 1 {
		return nil, maze.ErrInvalidWallProbability
	}

	cfg := *c
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = defaultIdleTTL
	}
	if cfg.MaxActive <= 0 {
		cfg.MaxActive = defaultMaxActive
	}
	if cfg.NewRand == nil {
		cfg.NewRand = maze.NewRandSource
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = nopLogger{}
	}

	return &SessionManager{
		sessions: make(map[uuid.UUID]*Session),
		config:   cfg,
		logger:   cfg.Logger,
	}, nil
}

// NewSession creates a session with a freshly generated maze.
func (m *SessionManager) NewSession() (*Session, error) {
	m.RLock()
	full := len(m.sessions) >= m.config.MaxActive
	m.RUnlock()
	if full {
		m.logger.Warning(fmt.Sprintf("rejecting new session: %d active", m.config.MaxActive))
		return nil, ErrTooManySessions
	}

	session, err := NewSession(&SessionConfig{
		ID:              m.newID(),
		Rows:            m.config.Rows,
		Cols:            m.config.Cols,
		WallProbability: m.config.WallProbability,
		Algorithm:       m.config.Algorithm,
		Rand:            m.config.NewRand(),
		Solver:          m.config.Solver,
		Logger:          m.logger,
		Now:             m.config.Now,
	})
	if err != nil {
		m.logger.Error(fmt.Sprintf("creating session: %s", err))
		return nil, err
	}

	if err := m.saveSession(session); err != nil {
		m.logger.Warning(fmt.Sprintf("rejecting new session: %d active", m.config.MaxActive))
		return nil, err
	}
	m.logger.Info(fmt.Sprintf("started session %s", session.ID()))
	return session, nil
}

// Session returns the live session with id.
func (m *SessionManager) Session(id uuid.UUID) (*Session, error) {
	m.RLock()
	defer m.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Remove ends the session with id.
func (m *SessionManager) Remove(id uuid.UUID) error {
	m.Lock()
	defer m.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	m.logger.Info(fmt.Sprintf("removed session %s", id))
	return nil
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.sessions)
}

// Sweep removes sessions idle for longer than the configured TTL and returns
// how many were removed.
func (m *SessionManager) Sweep() int {
	cutoff := m.config.Now().Add(-m.config.IdleTTL)

	m.Lock()
	defer m.Unlock()
	removed := 0
	for id, session := range m.sessions {
		if session.LastUsed().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info(fmt.Sprintf("swept %d idle sessions", removed))
	}
	return removed
}

// RunJanitor sweeps idle sessions every interval until ctx is done.
func (m *SessionManager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// saveSession stores s unless MaxActive sessions are already live.
func (m *SessionManager) saveSession(s *Session) error {
	m.Lock()
	defer m.Unlock()
	if len(m.sessions) >= m.config.MaxActive {
		return ErrTooManySessions
	}
	m.sessions[s.ID()] = s
	return nil
}

func (m *SessionManager) newID() uuid.UUID {
	m.RLock()
	defer m.RUnlock()
	id := uuid.New()
	for {
		if _, ok := m.sessions[id]; !ok {
			return id
		}
		id = uuid.New()
	}
}
