package models

// Document hält den extrahierten Klartext einer hochgeladenen Datei als Kontext für KI-Prompts.
type Document struct {
	Model

	ThesisID string  `json:"thesisId" gorm:"size:36;not null;index"`
	Thesis   *Thesis `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	UserID   string  `json:"userId" gorm:"size:36;not null;index"`
	User     *User   `json:"-" gorm:"constraint:OnDelete:CASCADE;"`

	Title     string `json:"title" gorm:"not null"`
	Content   string `json:"content" gorm:"type:text;not null"`
	Filename  string `json:"filename" gorm:"not null"`
	MimeType  string `json:"mimeType" gorm:"not null"`
	SizeBytes int64  `json:"sizeBytes"`

	// S3-Key der Originaldatei, leer ohne konfiguriertes Objekt-Storage
	StorageKey string `json:"storageKey,omitempty"`
}

// TableName gibt explizit den Tabellennamen an.
func (Document) TableName() string {
	return "documents"
}
