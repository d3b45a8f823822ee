package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model ist die gemeinsame Basis aller Entitäten: opake UUID plus Zeitstempel.
type Model struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate vergibt die ID, damit Postgres und SQLite dasselbe Schema nutzen.
func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
