package models

import "gorm.io/datatypes"

const (
	CitationStyleAPA     = "apa"
	CitationStyleMLA     = "mla"
	CitationStyleChicago = "chicago"
)

// Reference ist ein Literatureintrag der Thesis.
//
// MatrixData enthält die Zellen der Literaturmatrix, geschlüsselt nach den Spaltennamen
// der Thesis. Fehlende Schlüssel werden als leere Zelle dargestellt.
type Reference struct {
	Model

	ThesisID string  `json:"thesisId" gorm:"size:36;not null;index"`
	Thesis   *Thesis `json:"-" gorm:"constraint:OnDelete:CASCADE;"`

	Title   string                      `json:"title" gorm:"not null"`
	Authors datatypes.JSONSlice[string] `json:"authors"`
	Year    *int                        `json:"year"`
	Source  string                      `json:"source"` // Journal, Buch, Website ...
	URL     string                      `json:"url"`
	DOI     string                      `json:"doi" gorm:"column:doi;index"`
	Notes   string                      `json:"notes" gorm:"type:text"`
	Tags    datatypes.JSONSlice[string] `json:"tags"`

	CitationStyle     string `json:"citationStyle" gorm:"default:'apa'"`
	FormattedCitation string `json:"formattedCitation" gorm:"type:text"`

	MatrixData datatypes.JSONType[map[string]string] `json:"matrixData"`
}

// TableName gibt explizit den Tabellennamen an.
func (Reference) TableName() string {
	return "references"
}

// Cells liefert die Matrixzellen als nie-nil Map.
func (r *Reference) Cells() map[string]string {
	cells := r.MatrixData.Data()
	if cells == nil {
		return map[string]string{}
	}
	return cells
}
