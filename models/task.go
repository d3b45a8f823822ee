package models

import "time"

const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusReview     = "review"
	TaskStatusDone       = "done"
)

// Task ist eine Kanban-Karte. Status bestimmt die Spalte, Completed folgt Status == "done".
type Task struct {
	Model

	ThesisID  string   `json:"thesisId" gorm:"size:36;not null;index"`
	Thesis    *Thesis  `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	ChapterID *string  `json:"chapterId" gorm:"size:36;index"`
	Chapter   *Chapter `json:"-" gorm:"constraint:OnDelete:CASCADE;"`

	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Status      string     `json:"status" gorm:"index;default:'todo'"`
	Priority    string     `json:"priority" gorm:"default:'medium'"` // low, medium, high
	DueDate     *time.Time `json:"dueDate"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	OrderIndex  int        `json:"orderIndex" gorm:"default:0"`
}

// TableName gibt explizit den Tabellennamen an.
func (Task) TableName() string {
	return "tasks"
}
