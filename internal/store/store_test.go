package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarhub/internal/db"
	"scholarhub/internal/models"
)

type recordStore interface {
	AccountStore
	ContactStore
}

func newFileStore(t *testing.T) recordStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewFileStore(filepath.Join(dir, "users.json"), filepath.Join(dir, "contact_data.json"))
	require.NoError(t, err)
	return s
}

func newSQLiteStore(t *testing.T) recordStore {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := db.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(conn) })
	return NewGormStore(conn)
}

var backends = map[string]func(t *testing.T) recordStore{
	"file":   newFileStore,
	"sqlite": newSQLiteStore,
}

func TestRegisterAndAuthenticate(t *testing.T) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			acc, err := Register(ctx, s, "Asha", "asha@example.com", "s3cret")
			require.NoError(t, err)
			assert.NotEqual(t, "s3cret", acc.Password, "plaintext must not be stored")

			got, err := Authenticate(ctx, s, "asha@example.com", "s3cret")
			require.NoError(t, err)
			assert.Equal(t, models.Profile{Name: "Asha", Email: "asha@example.com"}, got.Profile())

			_, err = Authenticate(ctx, s, "asha@example.com", "wrong")
			assert.ErrorIs(t, err, ErrInvalidPassword)

			_, err = Authenticate(ctx, s, "ASHA@example.com", "s3cret")
			assert.ErrorIs(t, err, ErrAccountNotFound, "email match is case-sensitive")
		})
	}
}

func TestRegister_DuplicateKeepsOriginalHash(t *testing.T) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			_, err := Register(ctx, s, "Asha", "asha@example.com", "first")
			require.NoError(t, err)
			before, err := s.FindAccountByEmail(ctx, "asha@example.com")
			require.NoError(t, err)

			_, err = Register(ctx, s, "Imposter", "asha@example.com", "second")
			assert.ErrorIs(t, err, ErrDuplicateKey)

			after, err := s.FindAccountByEmail(ctx, "asha@example.com")
			require.NoError(t, err)
			assert.Equal(t, before.Password, after.Password)
			assert.Equal(t, "Asha", after.Name)

			all, err := s.ListAccounts(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)

			_, err = Authenticate(ctx, s, "asha@example.com", "first")
			assert.NoError(t, err)
		})
	}
}

func TestRegister_MissingFields(t *testing.T) {
	s := newFileStore(t)
	_, err := Register(context.Background(), s, "x", " ", "pw")
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = Register(context.Background(), s, "x", "x@example.com", "")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestRegister_PasswordTooLong(t *testing.T) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			_, err := Register(ctx, s, "x", "x@example.com", strings.Repeat("p", MaxPasswordBytes+8))
			assert.ErrorIs(t, err, ErrInvalidField)

			all, err := s.ListAccounts(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)

			_, err = Register(ctx, s, "x", "x@example.com", strings.Repeat("p", MaxPasswordBytes))
			assert.NoError(t, err)
		})
	}
}

func TestFindAccountByEmail_Absent(t *testing.T) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			acc, err := open(t).FindAccountByEmail(context.Background(), "nobody@example.com")
			assert.NoError(t, err)
			assert.Nil(t, acc)
		})
	}
}

func TestContacts(t *testing.T) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			empty, err := s.ListContacts(ctx)
			require.NoError(t, err)
			assert.Empty(t, empty)

			first := map[string]any{"name": "Ravi", "message": "hello"}
			second := map[string]any{"name": "Ravi", "message": "hello"}
			require.NoError(t, s.CreateContact(ctx, first))
			require.NoError(t, s.CreateContact(ctx, second))

			all, err := s.ListContacts(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 2, "identical submissions are both kept")
			assert.Equal(t, "hello", all[0]["message"])
		})
	}
}

func TestFileStore_Format(t *testing.T) {
	dir := t.TempDir()
	users := filepath.Join(dir, "users.json")
	contacts := filepath.Join(dir, "contact_data.json")
	s, err := NewFileStore(users, contacts)
	require.NoError(t, err)

	b, err := os.ReadFile(contacts)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(b), "contact file is created on open")

	_, err = os.Stat(users)
	assert.True(t, os.IsNotExist(err), "users file is created lazily")

	ctx := context.Background()
	_, err = Register(ctx, s, "Asha", "asha@example.com", "pw")
	require.NoError(t, err)

	b, err = os.ReadFile(users)
	require.NoError(t, err)
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "asha@example.com", raw[0]["email"])
	assert.True(t, strings.HasPrefix(raw[0]["password"].(string), "$2"), "bcrypt hash stored")
	assert.NotContains(t, raw[0], "ID")

	// Existing files are reused as-is.
	s2, err := NewFileStore(users, contacts)
	require.NoError(t, err)
	got, err := s2.FindAccountByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	users := filepath.Join(dir, "users.json")
	require.NoError(t, os.WriteFile(users, []byte("{not json"), 0o600))
	s, err := NewFileStore(users, filepath.Join(dir, "c.json"))
	require.NoError(t, err)

	_, err = s.FindAccountByEmail(context.Background(), "a@b.c")
	assert.Error(t, err)
	_, err = Register(context.Background(), s, "a", "a@b.c", "pw")
	assert.Error(t, err)

	b, _ := os.ReadFile(users)
	assert.Equal(t, "{not json", string(b), "failed writes leave the file alone")
}
