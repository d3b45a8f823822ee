package models

import "gorm.io/datatypes"

const (
	ThesisStatusActive    = "active"
	ThesisStatusCompleted = "completed"
	ThesisStatusArchived  = "archived"
)

// Thesis ist das oberste Forschungsprojekt eines Benutzers.
type Thesis struct {
	Model

	UserID string `json:"userId" gorm:"size:36;not null;index"`
	User   *User  `json:"-" gorm:"constraint:OnDelete:CASCADE;"`

	Title             string                      `json:"title" gorm:"not null"`
	Topic             string                      `json:"topic"`
	Language          string                      `json:"language" gorm:"default:'english'"`
	ResearchQuestions datatypes.JSONSlice[string] `json:"researchQuestions"`
	Objectives        datatypes.JSONSlice[string] `json:"objectives"`
	Status            string                      `json:"status" gorm:"index;default:'active'"`

	// Spaltennamen der Literaturmatrix in Anzeigereihenfolge
	MatrixColumns datatypes.JSONSlice[string] `json:"matrixColumns"`

	MethodologyType     string `json:"methodologyType,omitempty"`
	SpecificMethodology string `json:"specificMethodology,omitempty"`
}

// TableName gibt explizit den Tabellennamen an.
func (Thesis) TableName() string {
	return "theses"
}
