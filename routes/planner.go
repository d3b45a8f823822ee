package routes

import (
	"fmt"
	"net/http"
	"time"

	"thesis-hand/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func setupPlannerRoutes(rg *gin.RouterGroup, d *Deps) {
	log := d.Logger

	// Aufgaben (Kanban). completed folgt immer aus status.
	rg.POST("/tasks", func(c *gin.Context) {
		var req struct {
			Title       string  `json:"title" binding:"required,max=500"`
			Description string  `json:"description"`
			ChapterID   *string `json:"chapterId"`
			Status      string  `json:"status" binding:"omitempty,oneof=todo in_progress review done"`
			Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high"`
			DueDate     *string `json:"dueDate"`
		}
		if !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		due, err := optionalDate(Optional[string]{Set: req.DueDate != nil, Value: req.DueDate})
		if err != nil {
			fieldError(c, "dueDate", "must be a date")
			return
		}
		if req.ChapterID != nil && *req.ChapterID == "" {
			req.ChapterID = nil
		}
		task := &models.Task{
			ThesisID:    thesis.ID,
			ChapterID:   req.ChapterID,
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			Priority:    req.Priority,
			DueDate:     due,
		}
		if err := d.Store.CreateTask(c.Request.Context(), task); err != nil {
			respondChildError(c, log, err, "task")
			return
		}
		c.JSON(http.StatusCreated, task)
	})

	rg.PATCH("/tasks/:id", func(c *gin.Context) {
		var req struct {
			Title       *string          `json:"title" binding:"omitempty,min=1,max=500"`
			Description *string          `json:"description"`
			ChapterID   Optional[string] `json:"chapterId"`
			Status      *string          `json:"status" binding:"omitempty,oneof=todo in_progress review done"`
			Priority    *string          `json:"priority" binding:"omitempty,oneof=low medium high"`
			DueDate     Optional[string] `json:"dueDate"`
			Completed   *bool            `json:"completed"`
			OrderIndex  *int             `json:"orderIndex" binding:"omitempty,gte=0"`
		}
		if !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		id := c.Param("id")

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.ChapterID.Set {
			chapterID := req.ChapterID.Value
			if chapterID != nil && *chapterID == "" {
				chapterID = nil
			}
			updates["chapter_id"] = chapterID
		}
		if req.Priority != nil {
			updates["priority"] = *req.Priority
		}
		if req.DueDate.Set {
			due, err := optionalDate(req.DueDate)
			if err != nil {
				fieldError(c, "dueDate", "must be a date")
				return
			}
			updates["due_date"] = due
		}
		if req.OrderIndex != nil {
			updates["order_index"] = *req.OrderIndex
		}

		switch {
		case req.Status != nil:
			updates["status"] = *req.Status
			updates["completed"] = *req.Status == models.TaskStatusDone
		case req.Completed != nil:
			// Nur das Häkchen: Status wird nachgezogen
			current, err := d.Store.GetTask(ctx, thesis.ID, id)
			if err != nil {
				respondStoreError(c, log, err, "task")
				return
			}
			if *req.Completed {
				updates["status"] = models.TaskStatusDone
				updates["completed"] = true
			} else if current.Status == models.TaskStatusDone {
				updates["status"] = models.TaskStatusTodo
				updates["completed"] = false
			}
		}

		task, err := d.Store.UpdateTask(ctx, thesis.ID, id, updates)
		if err != nil {
			respondChildError(c, log, err, "task")
			return
		}
		c.JSON(http.StatusOK, task)
	})

	rg.DELETE("/tasks/:id", func(c *gin.Context) {
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		if err := d.Store.DeleteTask(c.Request.Context(), thesis.ID, c.Param("id")); err != nil {
			respondStoreError(c, log, err, "task")
			return
		}
		success(c)
	})

	// Meilensteine
	rg.GET("/milestones/template", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.DefaultMilestones)
	})

	rg.POST("/milestones", func(c *gin.Context) {
		var req struct {
			Name        string  `json:"name" binding:"required,max=255"`
			Description string  `json:"description"`
			TargetDate  *string `json:"targetDate"`
		}
		if !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		target, err := optionalDate(Optional[string]{Set: req.TargetDate != nil, Value: req.TargetDate})
		if err != nil {
			fieldError(c, "targetDate", "must be a date")
			return
		}
		m := &models.Milestone{
			ThesisID:    thesis.ID,
			Name:        req.Name,
			Description: req.Description,
			TargetDate:  target,
		}
		if err := d.Store.CreateMilestone(c.Request.Context(), m); err != nil {
			respondStoreError(c, log, err, "milestone")
			return
		}
		c.JSON(http.StatusCreated, m)
	})

	// Ohne Body wird die Standardvorlage verwendet.
	rg.POST("/milestones/initialize", func(c *gin.Context) {
		var req struct {
			Milestones []models.MilestoneTemplate `json:"milestones" binding:"dive"`
		}
		if c.Request.ContentLength != 0 {
			if !bindJSON(c, &req) {
				return
			}
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		templates := models.DefaultMilestones
		if len(req.Milestones) > 0 {
			templates = make([]models.MilestoneTemplate, 0, len(req.Milestones))
			for i, m := range req.Milestones {
				if m.Name == "" {
					fieldError(c, fmt.Sprintf("milestones[%d].name", i), "is required")
					return
				}
				templates = append(templates, m)
			}
		}
		created, err := d.Store.InitializeMilestones(c.Request.Context(), thesis.ID, templates)
		if err != nil {
			respondStoreError(c, log, err, "milestones")
			return
		}
		log.Info("Milestones initialized", zap.String("thesis_id", thesis.ID), zap.Int("count", len(created)))
		c.JSON(http.StatusCreated, created)
	})

	rg.PATCH("/milestones/:id", func(c *gin.Context) {
		var req struct {
			Name        *string          `json:"name" binding:"omitempty,min=1,max=255"`
			Description *string          `json:"description"`
			TargetDate  Optional[string] `json:"targetDate"`
			Completed   *bool            `json:"completed"`
		}
		if !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		updates := map[string]interface{}{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.TargetDate.Set {
			target, err := optionalDate(req.TargetDate)
			if err != nil {
				fieldError(c, "targetDate", "must be a date")
				return
			}
			updates["target_date"] = target
		}
		if req.Completed != nil {
			updates["completed"] = *req.Completed
			if *req.Completed {
				now := time.Now()
				updates["completed_date"] = &now
			} else {
				updates["completed_date"] = (*time.Time)(nil)
			}
		}
		m, err := d.Store.UpdateMilestone(c.Request.Context(), thesis.ID, c.Param("id"), updates)
		if err != nil {
			respondStoreError(c, log, err, "milestone")
			return
		}
		c.JSON(http.StatusOK, m)
	})

	rg.DELETE("/milestones/:id", func(c *gin.Context) {
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		if err := d.Store.DeleteMilestone(c.Request.Context(), thesis.ID, c.Param("id")); err != nil {
			respondStoreError(c, log, err, "milestone")
			return
		}
		success(c)
	})
}
