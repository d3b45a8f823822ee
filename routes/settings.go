package routes

import (
	"net/http"

	"thesis-hand/models"
	"thesis-hand/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

func setupSettingsRoutes(rg *gin.RouterGroup, d *Deps) {
	log := d.Logger

	rg.PATCH("/settings/profile", func(c *gin.Context) {
		var req struct {
			FirstName       *string `json:"firstName" binding:"omitempty,max=100"`
			LastName        *string `json:"lastName" binding:"omitempty,max=100"`
			StudyLevel      *string `json:"studyLevel"`
			Field           *string `json:"field"`
			Language        *string `json:"language"`
			ProfileImageURL *string `json:"profileImageUrl" binding:"omitempty,url"`
		}
		if !bindJSON(c, &req) {
			return
		}
		updates := map[string]interface{}{}
		for column, v := range map[string]*string{
			"first_name":        req.FirstName,
			"last_name":         req.LastName,
			"study_level":       req.StudyLevel,
			"field":             req.Field,
			"language":          req.Language,
			"profile_image_url": req.ProfileImageURL,
		} {
			if v != nil {
				updates[column] = *v
			}
		}
		user, err := d.Store.UpdateUser(c.Request.Context(), currentUser(c).ID, updates)
		if err != nil {
			respondStoreError(c, log, err, "user")
			return
		}
		c.JSON(http.StatusOK, user)
	})

	rg.PATCH("/settings/thesis", func(c *gin.Context) {
		var req struct {
			Title               *string   `json:"title" binding:"omitempty,min=1,max=500"`
			Topic               *string   `json:"topic"`
			Language            *string   `json:"language"`
			ResearchQuestions   *[]string `json:"researchQuestions"`
			Objectives          *[]string `json:"objectives"`
			Status              *string   `json:"status" binding:"omitempty,oneof=active completed archived"`
			MatrixColumns       *[]string `json:"matrixColumns"`
			MethodologyType     *string   `json:"methodologyType"`
			SpecificMethodology *string   `json:"specificMethodology"`
		}
		if !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}

		updates := map[string]interface{}{}
		for column, v := range map[string]*string{
			"title":                req.Title,
			"topic":                req.Topic,
			"language":             req.Language,
			"status":               req.Status,
			"methodology_type":     req.MethodologyType,
			"specific_methodology": req.SpecificMethodology,
		} {
			if v != nil {
				updates[column] = *v
			}
		}
		if req.ResearchQuestions != nil {
			updates["research_questions"] = datatypes.JSONSlice[string](cleanStrings(*req.ResearchQuestions))
		}
		if req.Objectives != nil {
			updates["objectives"] = datatypes.JSONSlice[string](cleanStrings(*req.Objectives))
		}
		if req.MatrixColumns != nil {
			columns, err := services.ValidateColumns(*req.MatrixColumns)
			if err != nil {
				fieldError(c, "matrixColumns", err.Error())
				return
			}
			updates["matrix_columns"] = datatypes.JSONSlice[string](columns)
		}

		updated, err := d.Store.UpdateThesis(c.Request.Context(), thesis.ID, updates)
		if err != nil {
			respondStoreError(c, log, err, "thesis")
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	// Freigabe für Betreuer
	rg.POST("/settings/share", func(c *gin.Context) {
		var req struct {
			Email           string  `json:"email" binding:"required,email"`
			PermissionLevel string  `json:"permissionLevel" binding:"omitempty,oneof=read comment"`
			ExpiresAt       *string `json:"expiresAt"`
		}
		if !bindJSON(c, &req) {
			return
		}
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		expires, err := optionalDate(Optional[string]{Set: req.ExpiresAt != nil, Value: req.ExpiresAt})
		if err != nil {
			fieldError(c, "expiresAt", "must be a date")
			return
		}
		share := &models.SharedAccess{
			ThesisID:        thesis.ID,
			Email:           req.Email,
			PermissionLevel: req.PermissionLevel,
			ExpiresAt:       expires,
		}
		if err := d.Store.CreateShare(c.Request.Context(), share); err != nil {
			respondStoreError(c, log, err, "share")
			return
		}
		log.Info("Thesis shared", zap.String("thesis_id", thesis.ID), zap.String("permission", share.PermissionLevel))
		c.JSON(http.StatusCreated, share)
	})

	rg.DELETE("/settings/share/:id", func(c *gin.Context) {
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		if err := d.Store.DeleteShare(c.Request.Context(), thesis.ID, c.Param("id")); err != nil {
			respondStoreError(c, log, err, "share")
			return
		}
		success(c)
	})
}
