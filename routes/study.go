package routes

import (
	"net/http"
	"strings"
	"time"

	"thesis-hand/models"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

func setupStudyRoutes(rg *gin.RouterGroup, d *Deps) {
	log := d.Logger

	// Forschungsjournal, pro Benutzer
	rg.GET("/journal", func(c *gin.Context) {
		entries, err := d.Store.ListJournalEntries(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondStoreError(c, log, err, "journal entries")
			return
		}
		c.JSON(http.StatusOK, entries)
	})

	rg.POST("/journal", func(c *gin.Context) {
		var req struct {
			Content string   `json:"content" binding:"required"`
			Type    string   `json:"type" binding:"omitempty,oneof=thought meeting experiment reading"`
			Tags    []string `json:"tags"`
			Date    *string  `json:"date"`
		}
		if !bindJSON(c, &req) {
			return
		}
		date := time.Now()
		if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
			t, err := parseDate(*req.Date)
			if err != nil {
				fieldError(c, "date", "must be a date")
				return
			}
			date = t
		}
		if req.Type == "" {
			req.Type = models.JournalTypeThought
		}
		entry := &models.JournalEntry{
			UserID:  currentUser(c).ID,
			Content: req.Content,
			Type:    req.Type,
			Tags:    cleanStrings(req.Tags),
			Date:    date,
		}
		if err := d.Store.CreateJournalEntry(c.Request.Context(), entry); err != nil {
			respondStoreError(c, log, err, "journal entry")
			return
		}
		c.JSON(http.StatusCreated, entry)
	})

	rg.PATCH("/journal/:id", func(c *gin.Context) {
		var req struct {
			Content *string   `json:"content" binding:"omitempty,min=1"`
			Type    *string   `json:"type" binding:"omitempty,oneof=thought meeting experiment reading"`
			Tags    *[]string `json:"tags"`
			Date    *string   `json:"date"`
		}
		if !bindJSON(c, &req) {
			return
		}
		updates := map[string]interface{}{}
		if req.Content != nil {
			updates["content"] = *req.Content
		}
		if req.Type != nil {
			updates["type"] = *req.Type
		}
		if req.Tags != nil {
			updates["tags"] = datatypes.JSONSlice[string](cleanStrings(*req.Tags))
		}
		if req.Date != nil {
			t, err := parseDate(*req.Date)
			if err != nil {
				fieldError(c, "date", "must be a date")
				return
			}
			updates["date"] = t
		}
		entry, err := d.Store.UpdateJournalEntry(c.Request.Context(), currentUser(c).ID, c.Param("id"), updates)
		if err != nil {
			respondStoreError(c, log, err, "journal entry")
			return
		}
		c.JSON(http.StatusOK, entry)
	})

	rg.DELETE("/journal/:id", func(c *gin.Context) {
		if err := d.Store.DeleteJournalEntry(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
			respondStoreError(c, log, err, "journal entry")
			return
		}
		success(c)
	})

	// Lernkarten für die Verteidigung
	rg.GET("/flashcards", func(c *gin.Context) {
		thesis, found, ok := loadThesis(c, d)
		if !ok {
			return
		}
		if !found {
			c.JSON(http.StatusOK, []models.Flashcard{})
			return
		}
		cards, err := d.Store.ListFlashcards(c.Request.Context(), thesis.ID, c.Query("category"))
		if err != nil {
			respondStoreError(c, log, err, "flashcards")
			return
		}
		c.JSON(http.StatusOK, cards)
	})

	rg.POST("/flashcards", func(c *gin.Context) {
		var req struct {
			Front    string `json:"front" binding:"required"`
			Back     string `json:"back" binding:"required"`
			Category string `json:"category"`
		}
		if !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		if req.Category == "" {
			req.Category = "general"
		}
		cards := []models.Flashcard{{ThesisID: thesis.ID, Front: req.Front, Back: req.Back, Category: req.Category}}
		if err := d.Store.CreateFlashcards(c.Request.Context(), cards); err != nil {
			respondStoreError(c, log, err, "flashcard")
			return
		}
		c.JSON(http.StatusCreated, cards[0])
	})

	rg.PATCH("/flashcards/:id", func(c *gin.Context) {
		var req struct {
			Front        *string `json:"front" binding:"omitempty,min=1"`
			Back         *string `json:"back" binding:"omitempty,min=1"`
			Category     *string `json:"category"`
			MasteryLevel *int    `json:"masteryLevel" binding:"omitempty,gte=0"`
		}
		if !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		updates := map[string]interface{}{}
		if req.Front != nil {
			updates["front"] = *req.Front
		}
		if req.Back != nil {
			updates["back"] = *req.Back
		}
		if req.Category != nil {
			updates["category"] = *req.Category
		}
		if req.MasteryLevel != nil {
			updates["mastery_level"] = *req.MasteryLevel
		}
		card, err := d.Store.UpdateFlashcard(c.Request.Context(), thesis.ID, c.Param("id"), updates)
		if err != nil {
			respondStoreError(c, log, err, "flashcard")
			return
		}
		c.JSON(http.StatusOK, card)
	})

	rg.DELETE("/flashcards/:id", func(c *gin.Context) {
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		if err := d.Store.DeleteFlashcard(c.Request.Context(), thesis.ID, c.Param("id")); err != nil {
			respondStoreError(c, log, err, "flashcard")
			return
		}
		success(c)
	})
}
