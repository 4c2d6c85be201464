// Package store persists user accounts and contact-form submissions behind
// small interfaces so the flat-file default can be swapped for a database
// without touching the handlers.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"scholarhub/internal/models"
)

var (
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidField    = errors.New("invalid field")
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

type AccountStore interface {
	// CreateAccount fails with ErrDuplicateKey when the email is taken,
	// leaving the store untouched.
	CreateAccount(ctx context.Context, a *models.Account) error
	// FindAccountByEmail returns nil, nil when no account matches.
	FindAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
}

type ContactStore interface {
	CreateContact(ctx context.Context, submission map[string]any) error
	ListContacts(ctx context.Context) ([]map[string]any, error)
}

// Register hashes the password and creates the account.
func Register(ctx context.Context, accounts AccountStore, name, email, password string) (*models.Account, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrMissingField)
	}
	if len(password) > MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password longer than %d bytes", ErrInvalidField, MaxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	acc := &models.Account{Name: name, Email: email, Password: string(hash)}
	if err := accounts.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// Authenticate looks up the account by exact email and verifies the password.
func Authenticate(ctx context.Context, accounts AccountStore, email, password string) (*models.Account, error) {
	acc, err := accounts.FindAccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, ErrAccountNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return acc, nil
}
