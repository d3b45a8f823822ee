package services

import (
	"testing"

	"thesis-hand/models"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	cases := map[string]int{
		"":                     0,
		"   ":                  0,
		"Hello   world":        2,
		"one\ntwo\tthree four": 4,
		" leading and trailing ": 3,
	}
	for in, want := range cases {
		assert.Equal(t, want, CountWords(in), "input %q", in)
	}
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 0, ProgressPercent(0, 0))
	assert.Equal(t, 43, ProgressPercent(3, 7))
	assert.Equal(t, 100, ProgressPercent(2, 2))
	assert.Equal(t, 67, ProgressPercent(2, 3))
}

func TestComputeDashboardStats(t *testing.T) {
	target := 5000
	chapters := []models.Chapter{
		{WordCount: 120, Status: models.ChapterStatusFinal, TargetWordCount: &target},
		{WordCount: 80, Status: models.ChapterStatusDraft},
		{WordCount: 0, Status: models.ChapterStatusFinal},
	}
	tasks := []models.Task{{Completed: true}, {Completed: false}, {Completed: false}}
	milestones := []models.Milestone{{Completed: true}, {Completed: false}}

	st := ComputeDashboardStats(chapters, tasks, milestones)
	assert.Equal(t, 200, st.TotalWords)
	assert.Equal(t, 5000, st.TargetWords)
	assert.Equal(t, 2, st.CompletedChapters)
	assert.Equal(t, 3, st.TotalChapters)
	assert.Equal(t, 67, st.ProgressPercent)
	assert.Equal(t, 2, st.PendingTasks)
	assert.Equal(t, 1, st.CompletedTasks)
	assert.Equal(t, 1, st.UpcomingDeadlines)
	assert.Equal(t, 1, st.CompletedMilestones)

	empty := ComputeDashboardStats(nil, nil, nil)
	assert.Zero(t, empty.ProgressPercent)
}

func TestTasksByStatusHasAllColumns(t *testing.T) {
	grouped := TasksByStatus([]models.Task{{Title: "a", Status: models.TaskStatusReview}})
	assert.Len(t, grouped, 4)
	assert.Len(t, grouped[models.TaskStatusReview], 1)
	assert.Empty(t, grouped[models.TaskStatusTodo])
}
