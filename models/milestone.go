package models

import "time"

// Milestone ist ein datierter Kontrollpunkt im Zeitplan der Thesis.
type Milestone struct {
	Model

	ThesisID string  `json:"thesisId" gorm:"size:36;not null;index"`
	Thesis   *Thesis `json:"-" gorm:"constraint:OnDelete:CASCADE;"`

	Name          string     `json:"name" gorm:"not null"`
	Description   string     `json:"description"`
	TargetDate    *time.Time `json:"targetDate"`
	Completed     bool       `json:"completed" gorm:"default:false"`
	CompletedDate *time.Time `json:"completedDate"`
	OrderIndex    int        `json:"orderIndex" gorm:"not null"`
}

// TableName gibt explizit den Tabellennamen an.
func (Milestone) TableName() string {
	return "milestones"
}

// MilestoneTemplate ist ein Eintrag der Standardvorlage für die Erstinitialisierung.
type MilestoneTemplate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DefaultMilestones ist die feste Vorlage in Anzeigereihenfolge.
var DefaultMilestones = []MilestoneTemplate{
	{Name: "Proposal", Description: "Complete thesis proposal and get approval"},
	{Name: "Literature Review", Description: "Complete comprehensive literature review"},
	{Name: "Methodology", Description: "Finalize research methodology"},
	{Name: "Data Collection", Description: "Complete data collection phase"},
	{Name: "Analysis", Description: "Analyze collected data and findings"},
	{Name: "Results", Description: "Write up results chapter"},
	{Name: "Discussion", Description: "Complete discussion and conclusions"},
	{Name: "Submission", Description: "Final thesis submission"},
}
