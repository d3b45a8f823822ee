package routes

import (
	"net/http"

	"thesis-hand/models"
	"thesis-hand/services"

	"github.com/gin-gonic/gin"
)

func setupChapterRoutes(rg *gin.RouterGroup, d *Deps) {
	log := d.Logger

	rg.POST("/chapters", func(c *gin.Context) {
		var req struct {
			Title           string  `json:"title" binding:"required,max=500"`
			Content         string  `json:"content"`
			TargetWordCount *int    `json:"targetWordCount" binding:"omitempty,gte=0"`
			Status          string  `json:"status" binding:"omitempty,oneof=draft under_review revised final"`
			Deadline        *string `json:"deadline"`
		}
		if !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		deadline, err := optionalDate(Optional[string]{Set: req.Deadline != nil, Value: req.Deadline})
		if err != nil {
			fieldError(c, "deadline", "must be a date")
			return
		}
		ch := &models.Chapter{
			ThesisID:        thesis.ID,
			Title:           req.Title,
			Content:         req.Content,
			WordCount:       services.CountWords(req.Content),
			TargetWordCount: req.TargetWordCount,
			Status:          req.Status,
			Deadline:        deadline,
		}
		if err := d.Store.CreateChapter(c.Request.Context(), ch); err != nil {
			respondStoreError(c, log, err, "chapter")
			return
		}
		c.JSON(http.StatusCreated, ch)
	})

	rg.GET("/chapters/:id", func(c *gin.Context) {
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		ch, err := d.Store.GetChapter(c.Request.Context(), thesis.ID, c.Param("id"))
		if err != nil {
			respondStoreError(c, log, err, "chapter")
			return
		}
		c.JSON(http.StatusOK, ch)
	})

	rg.PATCH("/chapters/:id", func(c *gin.Context) {
		var req struct {
			Title           *string          `json:"title" binding:"omitempty,min=1,max=500"`
			Content         *string          `json:"content"`
			TargetWordCount Optional[int]    `json:"targetWordCount"`
			Status          *string          `json:"status" binding:"omitempty,oneof=draft under_review revised final"`
			Deadline        Optional[string] `json:"deadline"`
		}
		if !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Content != nil {
			updates["content"] = *req.Content
			updates["word_count"] = services.CountWords(*req.Content)
		}
		if req.TargetWordCount.Set {
			if v := req.TargetWordCount.Value; v != nil && *v < 0 {
				fieldError(c, "targetWordCount", "must be greater than or equal to 0")
				return
			}
			updates["target_word_count"] = req.TargetWordCount.Value
		}
		if req.Status != nil {
			updates["status"] = *req.Status
		}
		if req.Deadline.Set {
			deadline, err := optionalDate(req.Deadline)
			if err != nil {
				fieldError(c, "deadline", "must be a date")
				return
			}
			updates["deadline"] = deadline
		}

		ch, err := d.Store.UpdateChapter(c.Request.Context(), thesis.ID, c.Param("id"), updates)
		if err != nil {
			respondStoreError(c, log, err, "chapter")
			return
		}
		c.JSON(http.StatusOK, ch)
	})

	rg.DELETE("/chapters/:id", func(c *gin.Context) {
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		if err := d.Store.DeleteChapter(c.Request.Context(), thesis.ID, c.Param("id")); err != nil {
			respondStoreError(c, log, err, "chapter")
			return
		}
		success(c)
	})

	// Kommentare
	rg.GET("/chapters/:id/comments", func(c *gin.Context) {
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		comments, err := d.Store.ListComments(c.Request.Context(), thesis.ID, c.Param("id"))
		if err != nil {
			respondStoreError(c, log, err, "chapter")
			return
		}
		c.JSON(http.StatusOK, comments)
	})

	rg.POST("/chapters/:id/comments", func(c *gin.Context) {
		var req struct {
			Content        string `json:"content" binding:"required"`
			ParagraphIndex *int   `json:"paragraphIndex" binding:"omitempty,gte=0"`
		}
		if !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		cm := &models.Comment{
			ChapterID:      c.Param("id"),
			UserID:         currentUser(c).ID,
			Content:        req.Content,
			ParagraphIndex: req.ParagraphIndex,
		}
		if err := d.Store.CreateComment(c.Request.Context(), thesis.ID, cm); err != nil {
			respondChildError(c, log, err, "comment")
			return
		}
		c.JSON(http.StatusCreated, cm)
	})

	rg.PATCH("/comments/:id", func(c *gin.Context) {
		var req struct {
			Content        *string       `json:"content" binding:"omitempty,min=1"`
			ParagraphIndex Optional[int] `json:"paragraphIndex"`
			Resolved       *bool         `json:"resolved"`
		}
		if !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		updates := map[string]interface{}{}
		if req.Content != nil {
			updates["content"] = *req.Content
		}
		if req.ParagraphIndex.Set {
			updates["paragraph_index"] = req.ParagraphIndex.Value
		}
		if req.Resolved != nil {
			updates["resolved"] = *req.Resolved
		}
		cm, err := d.Store.UpdateComment(c.Request.Context(), thesis.ID, c.Param("id"), updates)
		if err != nil {
			respondStoreError(c, log, err, "comment")
			return
		}
		c.JSON(http.StatusOK, cm)
	})

	rg.DELETE("/comments/:id", func(c *gin.Context) {
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		if err := d.Store.DeleteComment(c.Request.Context(), thesis.ID, c.Param("id")); err != nil {
			respondStoreError(c, log, err, "comment")
			return
		}
		success(c)
	})
}
