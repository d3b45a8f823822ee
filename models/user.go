package models

import "time"

// User ist ein Benutzerkonto. Ein Benutzer besitzt höchstens eine aktive Thesis.
type User struct {
	Model

	Email           string `json:"email" gorm:"uniqueIndex;size:320;not null"`
	PasswordHash    string `json:"-" gorm:"not null"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`

	StudyLevel          string `json:"studyLevel"` // masters, phd
	Field               string `json:"field"`
	Language            string `json:"language"`
	OnboardingCompleted bool   `json:"onboardingCompleted" gorm:"default:false"`
}

// TableName gibt explizit den Tabellennamen an.
func (User) TableName() string {
	return "users"
}

// Session referenziert eine angemeldete Sitzung. Gespeichert wird nur der SHA-256-Hash des Tokens.
type Session struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"size:36;not null;index"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;"`
	TokenHash string    `gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}

func (Session) TableName() string { return "sessions" }
