package session

import (
	"errors"
	"sync"
	"time"

	"github.com/Domenick1991/pestbooking/internal/domain"
	"github.com/Domenick1991/pestbooking/internal/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

// PackLookup resolves the service pack a session is opened for.
type PackLookup interface {
	Lookup(slug string) domain.Pack
}

// Manager keeps the live sessions in memory. Each session is owned by a
// single id and never shared.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Controller
	packs    PackLookup
	env      Env
	idleTTL  time.Duration
	newID    func() string
	log      *zap.Logger
}

func NewManager(packs PackLookup, env Env, idleTTL time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Controller),
		packs:    packs,
		env:      env,
		idleTTL:  idleTTL,
		newID:    uuid.NewString,
		log:      logging.OrNop(env.Logger),
	}
}

// Open starts a session for the pack named by slug. Unknown slugs get the
// default pack.
func (m *Manager) Open(slug string, showCompany bool) *Controller {
	pack := m.packs.Lookup(slug)
	c := NewController(m.newID(), pack, showCompany, m.env)

	m.mu.Lock()
	m.sessions[c.ID()] = c
	m.mu.Unlock()

	m.env.Metrics.SessionOpened()
	m.log.Debug("session opened", zap.String("session_id", c.ID()), zap.String("pack", pack.Slug))
	return c
}

func (m *Manager) Get(id string) (*Controller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return c, nil
}

// Discard drops a session and its draft.
func (m *Manager) Discard(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Sweep discards sessions idle for longer than the idle TTL. Sessions
// waiting on the submission boundary are kept.
func (m *Manager) Sweep() int {
	if m.idleTTL <= 0 {
		return 0
	}
	cutoff := m.env.now().Add(-m.idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, c := range m.sessions {
		last, state := c.idleSince()
		if state == StateSubmitting || !last.Before(cutoff) {
			continue
		}
		delete(m.sessions, id)
		removed++
	}
	if removed > 0 {
		m.log.Info("idle sessions discarded", zap.Int("count", removed))
	}
	return removed
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
