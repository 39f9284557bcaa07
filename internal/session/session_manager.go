// Package session holds the authenticated identity shared by every command.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"traveline/local-app/internal/event"
	"traveline/local-app/internal/log"
	"traveline/local-app/internal/model"
	"traveline/local-app/internal/storage"
)

// ErrNoToken is returned by Login when the server response carried no token.
var ErrNoToken = errors.New("login response has no token")

// Manager owns the current credentials and their durable copy.
type Manager struct {
	mu     sync.RWMutex
	creds  model.Credentials
	store  *storage.SessionStore
	events *event.EventManager
	logger *log.Logger
}

// NewManager creates a logged-out Manager. Call Initialize to restore a
// persisted session.
func NewManager(store *storage.SessionStore, events *event.EventManager, logger *log.Logger) *Manager {
	return &Manager{
		store:  store,
		events: events,
		logger: logger,
	}
}

// Initialize restores the persisted session. A stored token is trusted
// as-is; an expired one surfaces on the first rejected request.
func (m *Manager) Initialize(ctx context.Context) error {
	creds, err := m.store.Load()
	if err != nil {
		m.logger.Error(ctx, "Failed to restore session", log.Fields{"error": err})
		return fmt.Errorf("failed to restore session: %w", err)
	}

	m.mu.Lock()
	m.creds = creds
	m.mu.Unlock()

	m.logger.Info(ctx, "Session initialized", log.Fields{
		"authenticated": creds.Authenticated(),
		"username":      creds.Username,
	})
	return nil
}

// Login persists the credentials and then makes them current. If
// persisting fails the in-memory session is left as it was.
func (m *Manager) Login(ctx context.Context, creds model.Credentials) error {
	if creds.Token == "" {
		return ErrNoToken
	}

	m.mu.Lock()
	if err := m.store.Save(creds); err != nil {
		m.mu.Unlock()
		m.logger.Error(ctx, "Failed to persist session", log.Fields{"error": err, "username": creds.Username})
		return fmt.Errorf("failed to persist session: %w", err)
	}
	m.creds = creds
	m.mu.Unlock()

	m.logger.Info(ctx, "User logged in", log.Fields{
		"username":    creds.Username,
		"userId":      creds.UserID,
		"isAdmin":     creds.IsAdmin,
		"isSuperuser": creds.IsSuperuser,
	})
	m.events.Publish(event.Event{Type: event.SessionLoggedIn, Data: creds.Username})
	return nil
}

// Logout clears the persisted and in-memory session. Calling it while
// logged out is a no-op. The in-memory session is cleared even when the
// storage clear fails; that error is returned.
func (m *Manager) Logout(ctx context.Context) error {
	return m.clear(ctx, event.SessionLoggedOut)
}

// Expire logs out because the server rejected the token.
func (m *Manager) Expire(ctx context.Context) error {
	return m.clear(ctx, event.SessionExpired)
}

func (m *Manager) clear(ctx context.Context, reason event.EventType) error {
	m.mu.Lock()
	wasAuthenticated := m.creds.Authenticated()
	username := m.creds.Username
	err := m.store.ClearAll()
	m.creds = model.Credentials{}
	m.mu.Unlock()

	if err != nil {
		m.logger.Error(ctx, "Failed to clear persisted session", log.Fields{"error": err})
		err = fmt.Errorf("failed to clear persisted session: %w", err)
	}
	if !wasAuthenticated {
		return err
	}

	m.logger.Info(ctx, "Session cleared", log.Fields{"username": username, "reason": reason.String()})
	m.events.Publish(event.Event{Type: reason, Data: username})
	return err
}

// IsAuthenticated reports whether a token is held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds.Authenticated()
}

// IsAdmin reports the admin flag of the current user.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds.IsAdmin
}

// IsSuperuser reports the superuser flag of the current user.
func (m *Manager) IsSuperuser() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds.IsSuperuser
}

// Token returns the current token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds.Token
}

// Username returns the current username.
func (m *Manager) Username() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds.Username
}

// UserID returns the current user id, which may be empty for sessions
// created by the legacy token endpoint.
func (m *Manager) UserID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds.UserID
}

// Snapshot returns a copy of the current credentials.
func (m *Manager) Snapshot() model.Credentials {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds
}
