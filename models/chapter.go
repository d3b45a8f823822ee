package models

import "time"

const (
	ChapterStatusDraft       = "draft"
	ChapterStatusUnderReview = "under_review"
	ChapterStatusRevised     = "revised"
	ChapterStatusFinal       = "final"
)

// Chapter ist ein Abschnitt der Thesis. WordCount wird beim Speichern aus Content abgeleitet.
type Chapter struct {
	Model

	ThesisID string  `json:"thesisId" gorm:"size:36;not null;index"`
	Thesis   *Thesis `json:"-" gorm:"constraint:OnDelete:CASCADE;"`

	Title           string     `json:"title" gorm:"not null"`
	Content         string     `json:"content" gorm:"type:text"`
	WordCount       int        `json:"wordCount" gorm:"default:0"`
	TargetWordCount *int       `json:"targetWordCount"`
	OrderIndex      int        `json:"orderIndex" gorm:"not null"`
	Status          string     `json:"status" gorm:"default:'draft'"` // draft, under_review, revised, final
	Deadline        *time.Time `json:"deadline"`
}

// TableName gibt explizit den Tabellennamen an.
func (Chapter) TableName() string {
	return "chapters"
}
