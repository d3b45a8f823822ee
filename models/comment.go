package models

// Comment ist eine Anmerkung zu einem Kapitel, optional an einem Absatz verankert.
type Comment struct {
	Model

	ChapterID string   `json:"chapterId" gorm:"size:36;not null;index"`
	Chapter   *Chapter `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	UserID    string   `json:"userId" gorm:"size:36;not null;index"`
	User      *User    `json:"-" gorm:"constraint:OnDelete:CASCADE;"`

	Content        string `json:"content" gorm:"type:text;not null"`
	ParagraphIndex *int   `json:"paragraphIndex"`
	Resolved       bool   `json:"resolved" gorm:"default:false"`
}

// TableName gibt explizit den Tabellennamen an.
func (Comment) TableName() string {
	return "comments"
}
