package routes

import (
	"net/http"

	"thesis-hand/models"
	"thesis-hand/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// setupAggregateRoutes: eine Antwort pro Seite der Oberfläche.
// Ohne Thesis liefern die Seiten leere Listen und "thesis": null.
func setupAggregateRoutes(rg *gin.RouterGroup, d *Deps) {
	log := d.Logger

	rg.GET("/dashboard", func(c *gin.Context) {
		thesis, found, ok := loadThesis(c, d)
		if !ok {
			return
		}
		chapters, tasks, milestones := []models.Chapter{}, []models.Task{}, []models.Milestone{}
		if found {
			ctx := c.Request.Context()
			var err error
			if chapters, err = d.Store.ListChapters(ctx, thesis.ID); err != nil {
				respondStoreError(c, log, err, "chapters")
				return
			}
			if tasks, err = d.Store.ListTasks(ctx, thesis.ID); err != nil {
				respondStoreError(c, log, err, "tasks")
				return
			}
			if milestones, err = d.Store.ListMilestones(ctx, thesis.ID); err != nil {
				respondStoreError(c, log, err, "milestones")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"thesis":     thesis,
			"chapters":   chapters,
			"tasks":      tasks,
			"milestones": milestones,
			"stats":      services.ComputeDashboardStats(chapters, tasks, milestones),
		})
	})

	rg.GET("/planner", func(c *gin.Context) {
		thesis, found, ok := loadThesis(c, d)
		if !ok {
			return
		}
		milestones, chapters := []models.Milestone{}, []models.Chapter{}
		if found {
			var err error
			if milestones, err = d.Store.ListMilestones(c.Request.Context(), thesis.ID); err != nil {
				respondStoreError(c, log, err, "milestones")
				return
			}
			if chapters, err = d.Store.ListChapters(c.Request.Context(), thesis.ID); err != nil {
				respondStoreError(c, log, err, "chapters")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"thesis":           thesis,
			"milestones":       milestones,
			"chaptersByStatus": services.ChaptersByStatus(chapters),
		})
	})

	rg.GET("/editor", func(c *gin.Context) {
		thesis, found, ok := loadThesis(c, d)
		if !ok {
			return
		}
		chapters := []models.Chapter{}
		if found {
			var err error
			if chapters, err = d.Store.ListChapters(c.Request.Context(), thesis.ID); err != nil {
				respondStoreError(c, log, err, "chapters")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"thesis": thesis, "chapters": chapters})
	})

	rg.GET("/tasks", func(c *gin.Context) {
		thesis, found, ok := loadThesis(c, d)
		if !ok {
			return
		}
		tasks, chapters := []models.Task{}, []models.Chapter{}
		if found {
			var err error
			if tasks, err = d.Store.ListTasks(c.Request.Context(), thesis.ID); err != nil {
				respondStoreError(c, log, err, "tasks")
				return
			}
			if chapters, err = d.Store.ListChapters(c.Request.Context(), thesis.ID); err != nil {
				respondStoreError(c, log, err, "chapters")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"tasks":    tasks,
			"chapters": chapters,
			"byStatus": services.TasksByStatus(tasks),
		})
	})

	rg.GET("/settings", func(c *gin.Context) {
		thesis, found, ok := loadThesis(c, d)
		if !ok {
			return
		}
		shares := []models.SharedAccess{}
		if found {
			var err error
			if shares, err = d.Store.ListShares(c.Request.Context(), thesis.ID); err != nil {
				respondStoreError(c, log, err, "shares")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"user": currentUser(c), "thesis": thesis, "sharedAccess": shares})
	})

	rg.GET("/thesis", func(c *gin.Context) {
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, thesis)
	})

	rg.DELETE("/thesis", func(c *gin.Context) {
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		if err := d.Store.DeleteThesis(c.Request.Context(), thesis.ID); err != nil {
			respondStoreError(c, log, err, "thesis")
			return
		}
		log.Info("Thesis deleted", zap.String("thesis_id", thesis.ID), zap.String("user_id", thesis.UserID))
		success(c)
	})
}
