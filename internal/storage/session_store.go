package storage

import (
	"fmt"
	"strconv"

	"traveline/local-app/internal/model"
)

// Keys under which the session is persisted.
const (
	KeyToken       = "token"
	KeyUsername    = "username"
	KeyUserID      = "userId"
	KeyIsAdmin     = "is_admin"
	KeyIsSuperuser = "is_superuser"
)

var sessionKeys = []string{KeyToken, KeyUsername, KeyUserID, KeyIsAdmin, KeyIsSuperuser}

// SessionStore persists session credentials in a KeyValueStore.
type SessionStore struct {
	kv KeyValueStore
}

// NewSessionStore wraps kv.
func NewSessionStore(kv KeyValueStore) *SessionStore {
	return &SessionStore{kv: kv}
}

// TokenGet returns the stored token, or "" when none is stored.
func (s *SessionStore) TokenGet() (string, error) {
	token, _, err := s.kv.Get(KeyToken)
	return token, err
}

// TokenSet stores the token alone.
func (s *SessionStore) TokenSet(token string) error {
	return s.kv.Set(KeyToken, token)
}

// TokenClear removes the token alone.
func (s *SessionStore) TokenClear() error {
	return s.kv.Delete(KeyToken)
}

// UserGet returns the stored username and user id.
func (s *SessionStore) UserGet() (username, userID string, err error) {
	if username, _, err = s.kv.Get(KeyUsername); err != nil {
		return "", "", err
	}
	if userID, _, err = s.kv.Get(KeyUserID); err != nil {
		return "", "", err
	}
	return username, userID, nil
}

// UserSet stores the username and user id.
func (s *SessionStore) UserSet(username, userID string) error {
	return s.kv.SetMany(map[string]string{KeyUsername: username, KeyUserID: userID})
}

// RolesGet returns the stored role flags. Missing flags read as false.
func (s *SessionStore) RolesGet() (isAdmin, isSuperuser bool, err error) {
	if isAdmin, err = s.getBool(KeyIsAdmin); err != nil {
		return false, false, err
	}
	if isSuperuser, err = s.getBool(KeyIsSuperuser); err != nil {
		return false, false, err
	}
	return isAdmin, isSuperuser, nil
}

// RolesSet stores the role flags.
func (s *SessionStore) RolesSet(isAdmin, isSuperuser bool) error {
	return s.kv.SetMany(map[string]string{
		KeyIsAdmin:     strconv.FormatBool(isAdmin),
		KeyIsSuperuser: strconv.FormatBool(isSuperuser),
	})
}

// Save writes all credential fields in one atomic step.
func (s *SessionStore) Save(c model.Credentials) error {
	return s.kv.SetMany(map[string]string{
		KeyToken:       c.Token,
		KeyUsername:    c.Username,
		KeyUserID:      c.UserID,
		KeyIsAdmin:     strconv.FormatBool(c.IsAdmin),
		KeyIsSuperuser: strconv.FormatBool(c.IsSuperuser),
	})
}

// Load reads all credential fields.
func (s *SessionStore) Load() (model.Credentials, error) {
	token, err := s.TokenGet()
	if err != nil {
		return model.Credentials{}, err
	}
	username, userID, err := s.UserGet()
	if err != nil {
		return model.Credentials{}, err
	}
	isAdmin, isSuperuser, err := s.RolesGet()
	if err != nil {
		return model.Credentials{}, err
	}
	return model.Credentials{
		Token:       token,
		Username:    username,
		UserID:      userID,
		IsAdmin:     isAdmin,
		IsSuperuser: isSuperuser,
	}, nil
}

// ClearAll removes every session key in one atomic step.
func (s *SessionStore) ClearAll() error {
	return s.kv.Delete(sessionKeys...)
}

func (s *SessionStore) getBool(key string) (bool, error) {
	raw, ok, err := s.kv.Get(key)
	if err != nil || !ok || raw == "" {
		return false, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid value for %s: %q", key, raw)
	}
	return v, nil
}
