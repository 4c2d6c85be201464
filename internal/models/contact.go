package models

import "time"

// Contact is a stored contact-form submission. Payload is the submitted JSON
// object, kept verbatim.
type Contact struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Payload   string    `json:"payload" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}
