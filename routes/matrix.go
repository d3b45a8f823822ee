package routes

import (
	"errors"
	"net/http"
	"strings"

	"thesis-hand/models"
	"thesis-hand/services"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// setupMatrixRoutes: Literaturmatrix als Sicht auf die Literatureinträge und die Spaltenliste der Thesis.
func setupMatrixRoutes(rg *gin.RouterGroup, d *Deps) {
	log := d.Logger

	renderMatrix := func(c *gin.Context, status int, thesis *models.Thesis) {
		refs, err := d.Store.ListReferences(c.Request.Context(), thesis.ID)
		if err != nil {
			respondStoreError(c, log, err, "references")
			return
		}
		c.JSON(status, services.BuildMatrix(thesis.MatrixColumns, refs))
	}

	rg.GET("/matrix", func(c *gin.Context) {
		thesis, found, ok := loadThesis(c, d)
		if !ok {
			return
		}
		if !found {
			c.JSON(http.StatusOK, services.BuildMatrix(nil, nil))
			return
		}
		renderMatrix(c, http.StatusOK, thesis)
	})

	rg.POST("/matrix/columns", func(c *gin.Context) {
		var req struct {
			Name string `json:"name" binding:"required,max=200"`
		}
		if !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		columns, err := services.AddColumn(thesis.MatrixColumns, req.Name)
		switch {
		case errors.Is(err, services.ErrDuplicateColumn):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		case err != nil:
			fieldError(c, "name", err.Error())
			return
		}
		updated, err := d.Store.UpdateThesis(c.Request.Context(), thesis.ID, map[string]interface{}{
			"matrix_columns": datatypes.JSONSlice[string](columns),
		})
		if err != nil {
			respondStoreError(c, log, err, "thesis")
			return
		}
		renderMatrix(c, http.StatusCreated, updated)
	})

	// Catch-all, weil Spaltennamen "/" enthalten dürfen ("Sample/Size").
	rg.DELETE("/matrix/columns/*name", func(c *gin.Context) {
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		name := strings.TrimPrefix(c.Param("name"), "/")
		if q, ok := c.GetQuery("name"); ok {
			name = q
		}
		if !services.HasColumn(thesis.MatrixColumns, name) {
			c.JSON(http.StatusNotFound, gin.H{"error": "column not found"})
			return
		}
		updated, err := d.Store.UpdateThesis(c.Request.Context(), thesis.ID, map[string]interface{}{
			"matrix_columns": datatypes.JSONSlice[string](services.RemoveColumn(thesis.MatrixColumns, name)),
		})
		if err != nil {
			respondStoreError(c, log, err, "thesis")
			return
		}
		renderMatrix(c, http.StatusOK, updated)
	})

	// Eine Zelle setzen; ein leerer Wert leert die Zelle.
	rg.PUT("/matrix/cells", func(c *gin.Context) {
		var req struct {
			ReferenceID string `json:"referenceId" binding:"required"`
			Column      string `json:"column" binding:"required"`
			Value       string `json:"value"`
		}
		if !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		if !services.HasColumn(thesis.MatrixColumns, req.Column) {
			fieldError(c, "column", services.ErrUnknownColumn.Error())
			return
		}
		ctx := c.Request.Context()
		ref, err := d.Store.GetReference(ctx, thesis.ID, req.ReferenceID)
		if err != nil {
			respondStoreError(c, log, err, "reference")
			return
		}
		ref, err = d.Store.SetMatrixData(ctx, thesis.ID, ref.ID, services.SetCell(ref.Cells(), req.Column, req.Value))
		if err != nil {
			respondStoreError(c, log, err, "reference")
			return
		}
		c.JSON(http.StatusOK, ref)
	})
}
