package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	JournalTypeThought    = "thought"
	JournalTypeMeeting    = "meeting"
	JournalTypeExperiment = "experiment"
	JournalTypeReading    = "reading"
)

// JournalEntry gehört dem Benutzer, nicht der Thesis.
type JournalEntry struct {
	Model

	UserID string `json:"userId" gorm:"size:36;not null;index"`
	User   *User  `json:"-" gorm:"constraint:OnDelete:CASCADE;"`

	Content string                      `json:"content" gorm:"type:text;not null"`
	Type    string                      `json:"type" gorm:"default:'thought'"`
	Tags    datatypes.JSONSlice[string] `json:"tags"`
	Date    time.Time                   `json:"date" gorm:"index"`
}

// TableName gibt explizit den Tabellennamen an.
func (JournalEntry) TableName() string {
	return "journal_entries"
}
