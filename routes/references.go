package routes

import (
	"fmt"
	"net/http"

	"thesis-hand/models"
	"thesis-hand/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

func setupReferenceRoutes(rg *gin.RouterGroup, d *Deps) {
	log := d.Logger

	rg.GET("/references", func(c *gin.Context) {
		thesis, found, ok := loadThesis(c, d)
		if !ok {
			return
		}
		if !found {
			c.JSON(http.StatusOK, []models.Reference{})
			return
		}
		refs, err := d.Store.ListReferences(c.Request.Context(), thesis.ID)
		if err != nil {
			respondStoreError(c, log, err, "references")
			return
		}
		c.JSON(http.StatusOK, refs)
	})

	// Alle Einträge als Textdatei im gewünschten Stil
	rg.GET("/references/export", func(c *gin.Context) {
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		refs, err := d.Store.ListReferences(c.Request.Context(), thesis.ID)
		if err != nil {
			respondStoreError(c, log, err, "references")
			return
		}
		style := services.NormalizeStyle(c.Query("style"))
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="references-%s.txt"`, style))
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(services.ExportReferences(refs, style)))
	})

	// Metadatensuche zum Vorbefüllen eines neuen Eintrags, nichts wird gespeichert
	rg.GET("/references/search", func(c *gin.Context) {
		var req struct {
			Q     string `form:"q" binding:"required,min=2"`
			Limit int    `form:"limit" binding:"omitempty,gte=1,lte=25"`
		}
		if !bindQuery(c, &req) {
			return
		}
		if d.Literature == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "literature search is disabled"})
			return
		}
		refs, err := d.Literature.Search(c.Request.Context(), req.Q, req.Limit)
		if err != nil {
			log.Warn("Literature search failed", zap.String("source", d.Literature.Name()), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "literature search failed"})
			return
		}
		for i := range refs {
			refs[i].CitationStyle = models.CitationStyleAPA
			refs[i].FormattedCitation = services.FormatCitation(refs[i], models.CitationStyleAPA)
		}
		c.JSON(http.StatusOK, refs)
	})

	rg.GET("/references/:id/citation", func(c *gin.Context) {
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		ref, err := d.Store.GetReference(c.Request.Context(), thesis.ID, c.Param("id"))
		if err != nil {
			respondStoreError(c, log, err, "reference")
			return
		}
		style := ref.CitationStyle
		if q := c.Query("style"); q != "" {
			style = q
		}
		style = services.NormalizeStyle(style)
		c.JSON(http.StatusOK, gin.H{"style": style, "citation": services.FormatCitation(*ref, style)})
	})

	rg.POST("/references", func(c *gin.Context) {
		var req struct {
			Title         string   `json:"title" binding:"required"`
			Authors       []string `json:"authors"`
			Year          *int     `json:"year" binding:"omitempty,gte=0,lte=9999"`
			Source        string   `json:"source"`
			URL           string   `json:"url" binding:"omitempty,url"`
			DOI           string   `json:"doi"`
			Notes         string   `json:"notes"`
			Tags          []string `json:"tags"`
			CitationStyle string   `json:"citationStyle" binding:"omitempty,oneof=apa mla chicago"`
		}
		if !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		ref := &models.Reference{
			ThesisID:      thesis.ID,
			Title:         req.Title,
			Authors:       cleanStrings(req.Authors),
			Year:          req.Year,
			Source:        req.Source,
			URL:           req.URL,
			DOI:           req.DOI,
			Notes:         req.Notes,
			Tags:          cleanStrings(req.Tags),
			CitationStyle: services.NormalizeStyle(req.CitationStyle),
		}
		ref.FormattedCitation = services.FormatCitation(*ref, ref.CitationStyle)
		if err := d.Store.CreateReference(c.Request.Context(), ref); err != nil {
			respondStoreError(c, log, err, "reference")
			return
		}
		c.JSON(http.StatusCreated, ref)
	})

	rg.PATCH("/references/:id", func(c *gin.Context) {
		var req struct {
			Title         *string       `json:"title" binding:"omitempty,min=1"`
			Authors       *[]string     `json:"authors"`
			Year          Optional[int] `json:"year"`
			Source        *string       `json:"source"`
			URL           *string       `json:"url" binding:"omitempty,url"`
			DOI           *string       `json:"doi"`
			Notes         *string       `json:"notes"`
			Tags          *[]string     `json:"tags"`
			CitationStyle *string       `json:"citationStyle" binding:"omitempty,oneof=apa mla chicago"`
		}
		if !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		ref, err := d.Store.GetReference(ctx, thesis.ID, c.Param("id"))
		if err != nil {
			respondStoreError(c, log, err, "reference")
			return
		}

		// Änderungen auf die geladene Zeile anwenden, damit die Zitation neu gerendert werden kann
		updates := map[string]interface{}{}
		if req.Title != nil {
			ref.Title = *req.Title
			updates["title"] = ref.Title
		}
		if req.Authors != nil {
			ref.Authors = cleanStrings(*req.Authors)
			updates["authors"] = ref.Authors
		}
		if req.Year.Set {
			if v := req.Year.Value; v != nil && (*v < 0 || *v > 9999) {
				fieldError(c, "year", "must be between 0 and 9999")
				return
			}
			ref.Year = req.Year.Value
			updates["year"] = ref.Year
		}
		if req.Source != nil {
			ref.Source = *req.Source
			updates["source"] = ref.Source
		}
		if req.URL != nil {
			updates["url"] = *req.URL
		}
		if req.DOI != nil {
			updates["doi"] = *req.DOI
		}
		if req.Notes != nil {
			updates["notes"] = *req.Notes
		}
		if req.Tags != nil {
			updates["tags"] = datatypes.JSONSlice[string](cleanStrings(*req.Tags))
		}
		if req.CitationStyle != nil {
			ref.CitationStyle = *req.CitationStyle
			updates["citation_style"] = ref.CitationStyle
		}
		updates["formatted_citation"] = services.FormatCitation(*ref, ref.CitationStyle)

		updated, err := d.Store.UpdateReference(ctx, thesis.ID, ref.ID, updates)
		if err != nil {
			respondStoreError(c, log, err, "reference")
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	rg.DELETE("/references/:id", func(c *gin.Context) {
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		if err := d.Store.DeleteReference(c.Request.Context(), thesis.ID, c.Param("id")); err != nil {
			respondStoreError(c, log, err, "reference")
			return
		}
		success(c)
	})
}
