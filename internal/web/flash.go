package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "fyyur_session"

	sessionKey = "fyyur.session"
	flashesKey = "fyyur.flashes"
)

type FlashStore interface {
	PushFlash(ctx context.Context, sessionID, message string) error
	PopFlashes(ctx context.Context, sessionID string) ([]string, error)
}

// MemoryFlashStore keeps flashes in process. It serves single-instance
// deployments without redis. A session's flashes expire ttl after the last
// push, like the redis store.
type MemoryFlashStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*memoryFlashes
}

type memoryFlashes struct {
	messages []string
	expires  time.Time
}

func NewMemoryFlashStore(ttl time.Duration) *MemoryFlashStore {
	return &MemoryFlashStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*memoryFlashes),
	}
}

func (m *MemoryFlashStore) PushFlash(_ context.Context, sessionID, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.prune(now)
	entry, ok := m.sessions[sessionID]
	if !ok {
		entry = &memoryFlashes{}
		m.sessions[sessionID] = entry
	}
	entry.messages = append(entry.messages, message)
	entry.expires = now.Add(m.ttl)
	return nil
}

func (m *MemoryFlashStore) PopFlashes(_ context.Context, sessionID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prune(m.now())
	entry, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	delete(m.sessions, sessionID)
	return entry.messages, nil
}

// Len reports how many sessions have pending flashes.
func (m *MemoryFlashStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// prune drops sessions whose flashes were never collected. A non-positive
// ttl keeps flashes until they are popped.
func (m *MemoryFlashStore) prune(now time.Time) {
	if m.ttl <= 0 {
		return
	}
	for id, entry := range m.sessions {
		if !now.Before(entry.expires) {
			delete(m.sessions, id)
		}
	}
}

// Sessions makes sure every browser carries a session id and exposes the
// flash store to handlers.
func Sessions(store FlashStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sessionID, 0, "/", "", false, true)
		}
		c.Set(sessionKey, sessionID)
		c.Set(flashesKey, store)
		c.Next()
	}
}

// Flash queues a message for the next rendered page.
func Flash(c *gin.Context, message string) {
	store, sessionID, ok := flashSession(c)
	if !ok {
		return
	}
	if err := store.PushFlash(c.Request.Context(), sessionID, message); err != nil {
		logger.FromContext(c.Request.Context()).Warn().Err(err).Msg("failed to store flash")
	}
}

func popFlashes(c *gin.Context) []string {
	store, sessionID, ok := flashSession(c)
	if !ok {
		return nil
	}
	messages, err := store.PopFlashes(c.Request.Context(), sessionID)
	if err != nil {
		logger.FromContext(c.Request.Context()).Warn().Err(err).Msg("failed to load flashes")
		return nil
	}
	return messages
}

func flashSession(c *gin.Context) (FlashStore, string, bool) {
	value, _ := c.Get(flashesKey)
	store, ok := value.(FlashStore)
	if !ok {
		return nil, "", false
	}
	sessionID := c.GetString(sessionKey)
	return store, sessionID, sessionID != ""
}
