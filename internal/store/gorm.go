package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"scholarhub/internal/models"
)

// GormStore keeps accounts and contacts in a relational database. The schema
// is migrated by db.Open.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateAccount(ctx context.Context, a *models.Account) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Account{}).Where("email = ?", a.Email).Count(&n).Error; err != nil {
			return fmt.Errorf("duplicate check: %w", err)
		}
		if n > 0 {
			return ErrDuplicateKey
		}
		if err := tx.Create(a).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateKey
			}
			return fmt.Errorf("create account: %w", err)
		}
		return nil
	})
}

func (s *GormStore) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acc models.Account
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &acc, nil
}

func (s *GormStore) ListAccounts(ctx context.Context) ([]models.Account, error) {
	accounts := []models.Account{}
	if err := s.db.WithContext(ctx).Order("id").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

func (s *GormStore) CreateContact(ctx context.Context, submission map[string]any) error {
	b, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("encode contact: %w", err)
	}
	c := models.Contact{ID: uuid.NewString(), Payload: string(b), CreatedAt: time.Now().UTC()}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

func (s *GormStore) ListContacts(ctx context.Context) ([]map[string]any, error) {
	var rows []models.Contact
	if err := s.db.WithContext(ctx).Order("created_at").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		var m map[string]any
		if err := json.Unmarshal([]byte(r.Payload), &m); err != nil {
			return nil, fmt.Errorf("decode contact %s: %w", r.ID, err)
		}
		out = append(out, m)
	}
	return out, nil
}
