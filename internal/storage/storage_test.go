package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traveline/local-app/internal/log"
	"traveline/local-app/internal/model"
)

func sqliteConfig(t *testing.T) *model.Config {
	t.Helper()
	return &model.Config{StorageType: "sqlite", StorageDir: t.TempDir(), StorageFile: "session.db"}
}

func stores(t *testing.T) map[string]KeyValueStore {
	t.Helper()
	sqlStore, err := New(sqliteConfig(t), log.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlStore.Close() })

	return map[string]KeyValueStore{
		"sqlite": sqlStore,
		"memory": NewMemoryStore(),
	}
}

func TestKeyValueStore(t *testing.T) {
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set("a", "1"))
			require.NoError(t, kv.SetMany(map[string]string{"a": "2", "b": "3"}))

			v, ok, err := kv.Get("a")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "2", v)

			require.NoError(t, kv.Delete("a", "b", "never-set"))
			_, ok, err = kv.Get("b")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSessionStoreRoundTrip(t *testing.T) {
	creds := model.Credentials{Token: "abc123", Username: "ana", UserID: "7", IsAdmin: true}

	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s := NewSessionStore(kv)

			empty, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, model.Credentials{}, empty)

			require.NoError(t, s.Save(creds))
			got, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, creds, got)

			require.NoError(t, s.ClearAll())
			got, err = s.Load()
			require.NoError(t, err)
			assert.Equal(t, model.Credentials{}, got)
		})
	}
}

func TestSessionStoreTypedAccessors(t *testing.T) {
	s := NewSessionStore(NewMemoryStore())

	require.NoError(t, s.TokenSet("t1"))
	require.NoError(t, s.UserSet("ben", "12"))
	require.NoError(t, s.RolesSet(false, true))

	token, err := s.TokenGet()
	require.NoError(t, err)
	assert.Equal(t, "t1", token)

	username, userID, err := s.UserGet()
	require.NoError(t, err)
	assert.Equal(t, "ben", username)
	assert.Equal(t, "12", userID)

	isAdmin, isSuperuser, err := s.RolesGet()
	require.NoError(t, err)
	assert.False(t, isAdmin)
	assert.True(t, isSuperuser)

	require.NoError(t, s.TokenClear())
	token, err = s.TokenGet()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSessionStoreRejectsCorruptFlag(t *testing.T) {
	kv := NewMemoryStore()
	require.NoError(t, kv.Set(KeyIsAdmin, "maybe"))

	_, err := NewSessionStore(kv).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is_admin")
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	cfg := sqliteConfig(t)

	first, err := New(cfg, log.NewNop())
	require.NoError(t, err)
	require.NoError(t, NewSessionStore(first).Save(model.Credentials{Token: "persisted", Username: "ana"}))
	require.NoError(t, first.Close())

	second, err := New(cfg, log.NewNop())
	require.NoError(t, err)
	defer second.Close()

	got, err := NewSessionStore(second).Load()
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Token)
	assert.Equal(t, "ana", got.Username)
}

func TestNewRejectsUnknownStorage(t *testing.T) {
	_, err := New(&model.Config{StorageType: "postgres"}, log.NewNop())
	assert.Error(t, err)
}
