package models

import "time"

const (
	PermissionRead    = "read"
	PermissionComment = "comment"
)

// SharedAccess gewährt einer externen E-Mail-Adresse (z.B. Betreuer) Zugriff über ein Token.
type SharedAccess struct {
	Model

	ThesisID string  `json:"thesisId" gorm:"size:36;not null;index"`
	Thesis   *Thesis `json:"-" gorm:"constraint:OnDelete:CASCADE;"`

	Email           string     `json:"email" gorm:"not null"`
	Token           string     `json:"token" gorm:"size:64;not null;uniqueIndex"`
	PermissionLevel string     `json:"permissionLevel" gorm:"default:'read'"`
	Accepted        bool       `json:"accepted" gorm:"default:false"`
	ExpiresAt       *time.Time `json:"expiresAt"`
}

// TableName gibt explizit den Tabellennamen an.
func (SharedAccess) TableName() string {
	return "shared_access"
}

// Expired meldet, ob die Freigabe zum Zeitpunkt now abgelaufen ist.
func (s *SharedAccess) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !s.ExpiresAt.After(now)
}
