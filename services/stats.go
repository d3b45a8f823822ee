package services

import (
	"math"
	"strings"

	"thesis-hand/models"
)

// CountWords zählt die durch Leerraum getrennten, nicht leeren Tokens.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// ProgressPercent liefert round(100*completed/total), bei total == 0 immer 0.
func ProgressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// DashboardStats sind die Kennzahlen der Übersichtsseite.
type DashboardStats struct {
	TotalWords          int `json:"totalWords"`
	TargetWords         int `json:"targetWords"`
	CompletedChapters   int `json:"completedChapters"`
	TotalChapters       int `json:"totalChapters"`
	ProgressPercent     int `json:"progressPercent"`
	PendingTasks        int `json:"pendingTasks"`
	CompletedTasks      int `json:"completedTasks"`
	UpcomingDeadlines   int `json:"upcomingDeadlines"`
	CompletedMilestones int `json:"completedMilestones"`
}

// ComputeDashboardStats aggregiert Kapitel, Aufgaben und Meilensteine.
// Ein Kapitel gilt mit Status "final" als abgeschlossen.
func ComputeDashboardStats(chapters []models.Chapter, tasks []models.Task, milestones []models.Milestone) DashboardStats {
	var st DashboardStats
	st.TotalChapters = len(chapters)
	for _, ch := range chapters {
		st.TotalWords += ch.WordCount
		if ch.TargetWordCount != nil {
			st.TargetWords += *ch.TargetWordCount
		}
		if ch.Status == models.ChapterStatusFinal {
			st.CompletedChapters++
		}
	}
	for _, t := range tasks {
		if t.Completed {
			st.CompletedTasks++
		} else {
			st.PendingTasks++
		}
	}
	for _, m := range milestones {
		if m.Completed {
			st.CompletedMilestones++
		} else {
			st.UpcomingDeadlines++
		}
	}
	st.ProgressPercent = ProgressPercent(st.CompletedChapters, st.TotalChapters)
	return st
}

// ChaptersByStatus gruppiert die Kapitel für die Planer-Ansicht.
func ChaptersByStatus(chapters []models.Chapter) map[string][]models.Chapter {
	out := map[string][]models.Chapter{
		models.ChapterStatusDraft:       {},
		models.ChapterStatusUnderReview: {},
		models.ChapterStatusRevised:     {},
		models.ChapterStatusFinal:       {},
	}
	for _, ch := range chapters {
		out[ch.Status] = append(out[ch.Status], ch)
	}
	return out
}

// TasksByStatus gruppiert die Aufgaben nach Kanban-Spalte.
func TasksByStatus(tasks []models.Task) map[string][]models.Task {
	out := map[string][]models.Task{
		models.TaskStatusTodo:       {},
		models.TaskStatusInProgress: {},
		models.TaskStatusReview:     {},
		models.TaskStatusDone:       {},
	}
	for _, t := range tasks {
		out[t.Status] = append(out[t.Status], t)
	}
	return out
}
