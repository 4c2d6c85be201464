package models

import "time"

// Account is a registered user. Password holds the bcrypt hash, never the
// plaintext.
type Account struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"password" gorm:"not null"`
	CreatedAt time.Time `json:"-"`
}

// Profile is the public subset of an account returned to clients.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (a *Account) Profile() Profile {
	return Profile{Name: a.Name, Email: a.Email}
}
