package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"scholarhub/internal/models"
)

// jsonFile is a JSON array on disk. Every write reads the whole array,
// modifies it in memory and replaces the file via a temp file + rename.
type jsonFile[T any] struct {
	mu     sync.Mutex
	path   string
	indent string
}

func (f *jsonFile[T]) readLocked() ([]T, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	var items []T
	if len(b) == 0 {
		return []T{}, nil
	}
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (f *jsonFile[T]) writeLocked(items []T) error {
	b, err := json.MarshalIndent(items, "", f.indent)
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

func (f *jsonFile[T]) list() ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readLocked()
}

// update runs fn over the current contents and persists what it returns.
// Nothing is written when fn fails.
func (f *jsonFile[T]) update(fn func([]T) ([]T, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.readLocked()
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return f.writeLocked(items)
}

// ensure creates the file with an empty array if it does not exist.
func (f *jsonFile[T]) ensure() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := os.Stat(f.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return f.writeLocked([]T{})
}

// FileStore keeps accounts and contact submissions in two JSON files.
type FileStore struct {
	users    *jsonFile[models.Account]
	contacts *jsonFile[map[string]any]
}

// NewFileStore opens the store, creating the contact file if needed.
func NewFileStore(usersPath, contactPath string) (*FileStore, error) {
	s := &FileStore{
		users:    &jsonFile[models.Account]{path: usersPath, indent: "  "},
		contacts: &jsonFile[map[string]any]{path: contactPath, indent: "    "},
	}
	if err := s.contacts.ensure(); err != nil {
		return nil, fmt.Errorf("init contact file: %w", err)
	}
	return s, nil
}

func (s *FileStore) CreateAccount(ctx context.Context, a *models.Account) error {
	return s.users.update(func(users []models.Account) ([]models.Account, error) {
		for _, u := range users {
			if u.Email == a.Email {
				return nil, ErrDuplicateKey
			}
		}
		return append(users, *a), nil
	})
}

func (s *FileStore) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	users, err := s.users.list()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (s *FileStore) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.users.list()
}

func (s *FileStore) CreateContact(ctx context.Context, submission map[string]any) error {
	return s.contacts.update(func(items []map[string]any) ([]map[string]any, error) {
		return append(items, submission), nil
	})
}

func (s *FileStore) ListContacts(ctx context.Context) ([]map[string]any, error) {
	return s.contacts.list()
}
