package routes

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"thesis-hand/providers"
	"thesis-hand/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondAIError bildet Fehler des Assistenten auf HTTP ab. Details landen nur im Log.
func respondAIError(c *gin.Context, d *Deps, action string, err error) {
	switch {
	case errors.Is(err, providers.ErrNotConfigured):
		aiGenerationsCounter.WithLabelValues(action, d.Assistant.ProviderName(), "not_configured").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI provider is not configured"})
	case errors.Is(err, services.ErrGenerationFailed), errors.Is(err, services.ErrMalformedOutput):
		aiGenerationsCounter.WithLabelValues(action, d.Assistant.ProviderName(), "error").Inc()
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate content"})
	default:
		aiGenerationsCounter.WithLabelValues(action, d.Assistant.ProviderName(), "error").Inc()
		d.Logger.Error("AI request failed", zap.String("action", action), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
	}
}

func setupAIRoutes(rg *gin.RouterGroup, d *Deps) {
	ai := rg.Group("/ai")

	// Vor jedem Aufruf prüfen, damit ohne Provider nichts geschrieben wird
	ai.Use(func(c *gin.Context) {
		if !d.Assistant.Configured() {
			respondAIError(c, d, path.Base(c.FullPath()), providers.ErrNotConfigured)
			c.Abort()
			return
		}
		c.Next()
	})

	ai.POST("/assist", func(c *gin.Context) {
		var req struct {
			Action       string   `json:"action" binding:"required"`
			ChapterTitle string   `json:"chapterTitle"`
			Content      string   `json:"content"`
			Prompt       string   `json:"prompt"`
			DocumentIDs  []string `json:"documentIds"`
		}
		if !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		result, err := d.Assistant.Assist(c.Request.Context(), thesis, services.AssistRequest{
			Action:       req.Action,
			ChapterTitle: req.ChapterTitle,
			Content:      req.Content,
			Prompt:       req.Prompt,
			DocumentIDs:  req.DocumentIDs,
		})
		if errors.Is(err, services.ErrUnknownAction) {
			fieldError(c, "action", "must be one of: "+strings.Join(services.AssistActions, ", "))
			return
		}
		if err != nil {
			respondAIError(c, d, req.Action, err)
			return
		}
		aiGenerationsCounter.WithLabelValues(req.Action, d.Assistant.ProviderName(), "success").Inc()
		c.JSON(http.StatusOK, result)
	})

	ai.POST("/generate-flashcards", func(c *gin.Context) {
		var req struct {
			Amount   int    `json:"amount" binding:"omitempty,gte=1,lte=20"`
			Category string `json:"category"`
		}
		if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		cards, err := d.Assistant.GenerateFlashcards(c.Request.Context(), thesis, req.Amount, req.Category)
		if err != nil {
			respondAIError(c, d, "flashcards", err)
			return
		}
		aiGenerationsCounter.WithLabelValues("flashcards", d.Assistant.ProviderName(), "success").Inc()
		c.JSON(http.StatusCreated, cards)
	})

	ai.POST("/generate-methodology", func(c *gin.Context) {
		var req struct {
			MethodologyType     string `json:"methodologyType" binding:"required"`
			SpecificMethodology string `json:"specificMethodology"`
		}
		if !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		result, err := d.Assistant.GenerateMethodology(c.Request.Context(), thesis, req.MethodologyType, req.SpecificMethodology)
		if err != nil {
			respondAIError(c, d, "methodology", err)
			return
		}
		aiGenerationsCounter.WithLabelValues("methodology", d.Assistant.ProviderName(), "success").Inc()
		c.JSON(http.StatusOK, result)
	})
}
