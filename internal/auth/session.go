package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"gamevault/pkg/rbac"
)

// Principal is the identity snapshot bound to a session token. It is
// captured at login time; role changes apply to new sessions and to
// authorization checks that re-read the store.
type Principal struct {
	UserID   int64
	Username string
	Role     rbac.Role
}

type session struct {
	principal Principal
	expiresAt time.Time
}

// Manager maps opaque session tokens to principal snapshots. Tokens are
// random and carry no identity themselves. Expired entries are reaped by
// a background goroutine; Resolve also checks expiry so a stale entry is
// never served between sweeps.
type Manager struct {
	ttl      time.Duration
	sessions sync.Map
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewManager(ttl time.Duration) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	m := &Manager{
		ttl:    ttl,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go m.cleanupLoop(ctx)
	return m
}

// Bind creates a new session for the principal and returns the opaque token.
func (m *Manager) Bind(p Principal) (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	token := hex.EncodeToString(buf)
	m.sessions.Store(token, &session{
		principal: p,
		expiresAt: time.Now().Add(m.ttl),
	})

	return token, nil
}

// Resolve returns the principal bound to the token, if the session exists
// and has not expired.
func (m *Manager) Resolve(token string) (Principal, bool) {
	value, ok := m.sessions.Load(token)
	if !ok {
		return Principal{}, false
	}

	s := value.(*session)
	if time.Now().After(s.expiresAt) {
		m.sessions.Delete(token)
		return Principal{}, false
	}

	return s.principal, true
}

// Clear removes the session. Clearing an unknown token is a no-op.
func (m *Manager) Clear(token string) {
	m.sessions.Delete(token)
}

// ClearUser removes every session bound to the given user ID. Used when a
// user is deleted or demoted so stale sessions cannot outlive the change.
func (m *Manager) ClearUser(userID int64) {
	m.sessions.Range(func(key, value any) bool {
		if value.(*session).principal.UserID == userID {
			m.sessions.Delete(key)
		}
		return true
	})
}

// Stop terminates the cleanup goroutine. The manager must not be used
// after Stop returns.
func (m *Manager) Stop() {
	m.cancel()
	<-m.done
}

func (m *Manager) cleanupLoop(ctx context.Context) {
	defer close(m.done)

	interval := m.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			m.sessions.Range(func(key, value any) bool {
				if now.After(value.(*session).expiresAt) {
					m.sessions.Delete(key)
				}
				return true
			})
		}
	}
}
