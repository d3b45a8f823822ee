package models

// Flashcard ist eine Lernkarte für die Verteidigung.
// MasteryLevel wird im Client in new (0), learning (1-2) und mastered (>=3) eingeteilt.
type Flashcard struct {
	Model

	ThesisID string  `json:"thesisId" gorm:"size:36;not null;index"`
	Thesis   *Thesis `json:"-" gorm:"constraint:OnDelete:CASCADE;"`

	Front        string `json:"front" gorm:"type:text;not null"`
	Back         string `json:"back" gorm:"type:text;not null"`
	Category     string `json:"category" gorm:"index;default:'general'"`
	MasteryLevel int    `json:"masteryLevel" gorm:"default:0"`
}

// TableName gibt explizit den Tabellennamen an.
func (Flashcard) TableName() string {
	return "flashcards"
}
