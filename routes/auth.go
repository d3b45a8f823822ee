package routes

import (
	"errors"
	"net/http"
	"time"

	"thesis-hand/models"
	"thesis-hand/services"
	"thesis-hand/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionCookie = "thesis_session"

func setSessionCookie(c *gin.Context, d *Deps, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(d.Auth.TTL()/time.Second), "/", "", d.Config.SessionSecureCookie, true)
}

func clearSessionCookie(c *gin.Context, d *Deps) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", d.Config.SessionSecureCookie, true)
}

// sessionMiddleware verlangt eine gültige Sitzung und legt den Benutzer im Context ab.
func sessionMiddleware(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(sessionCookie)
		user, err := d.Auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, services.ErrUnauthorized) {
				d.Logger.Error("Session lookup failed", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

func setupAuthRoutes(rg *gin.RouterGroup, d *Deps) {
	log := d.Logger

	rg.GET("/health", func(c *gin.Context) {
		if err := d.Store.Ping(c.Request.Context()); err != nil {
			log.Error("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "desktop": d.Config.IsDesktop, "aiConfigured": d.Assistant.Configured()})
	})

	rg.POST("/register", func(c *gin.Context) {
		var req struct {
			Email     string `json:"email" binding:"required,email"`
			Password  string `json:"password" binding:"required,min=6,max=72"`
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
		}
		if !bindJSON(c, &req) {
			return
		}
		user, token, err := d.Auth.Register(c.Request.Context(), services.RegisterInput{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		})
		if errors.Is(err, services.ErrPasswordTooLong) {
			fieldError(c, "password", "must be at most 72 bytes")
			return
		}
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		if err != nil {
			log.Error("Registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		setSessionCookie(c, d, token)
		c.JSON(http.StatusCreated, user)
	})

	rg.POST("/login", func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if !bindJSON(c, &req) {
			return
		}
		user, token, err := d.Auth.Login(c.Request.Context(), req.Email, req.Password)
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		if err != nil {
			log.Error("Login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		setSessionCookie(c, d, token)
		c.JSON(http.StatusOK, user)
	})

	rg.POST("/logout", func(c *gin.Context) {
		token, _ := c.Cookie(sessionCookie)
		if err := d.Auth.Logout(c.Request.Context(), token); err != nil {
			log.Error("Logout failed", zap.Error(err))
		}
		clearSessionCookie(c, d)
		success(c)
	})
}

func setupAccountRoutes(rg *gin.RouterGroup, d *Deps) {
	log := d.Logger

	me := func(c *gin.Context) {
		c.JSON(http.StatusOK, currentUser(c))
	}
	rg.GET("/user", me)
	rg.GET("/auth/user", me)

	// Konto löschen inklusive aller Daten
	rg.DELETE("/user", func(c *gin.Context) {
		user := currentUser(c)
		if err := d.Store.DeleteUser(c.Request.Context(), user.ID); err != nil {
			respondStoreError(c, log, err, "user")
			return
		}
		clearSessionCookie(c, d)
		log.Info("Account deleted", zap.String("user_id", user.ID))
		success(c)
	})

	rg.POST("/onboarding/complete", func(c *gin.Context) {
		var req struct {
			StudyLevel        string   `json:"studyLevel" binding:"required"`
			Field             string   `json:"field" binding:"required"`
			Language          string   `json:"language"`
			ThesisTitle       string   `json:"thesisTitle" binding:"required"`
			Topic             string   `json:"topic"`
			ResearchQuestions []string `json:"researchQuestions"`
			Objectives        []string `json:"objectives"`
		}
		if !bindJSON(c, &req) {
			return
		}
		ctx := c.Request.Context()
		user := currentUser(c)

		thesis := &models.Thesis{
			UserID:            user.ID,
			Title:             req.ThesisTitle,
			Topic:             req.Topic,
			Language:          req.Language,
			ResearchQuestions: cleanStrings(req.ResearchQuestions),
			Objectives:        cleanStrings(req.Objectives),
			Status:            models.ThesisStatusActive,
		}
		if err := d.Store.CreateThesis(ctx, thesis); err != nil {
			respondStoreError(c, log, err, "thesis")
			return
		}

		updates := map[string]interface{}{
			"study_level":          req.StudyLevel,
			"field":                req.Field,
			"onboarding_completed": true,
		}
		if req.Language != "" {
			updates["language"] = req.Language
		}
		if _, err := d.Store.UpdateUser(ctx, user.ID, updates); err != nil {
			respondStoreError(c, log, err, "user")
			return
		}
		log.Info("Onboarding completed", zap.String("user_id", user.ID), zap.String("thesis_id", thesis.ID))
		c.JSON(http.StatusOK, gin.H{"success": true, "thesis": thesis})
	})
}

// setupSharedRoutes: Lesezugriff für Betreuer über ein Freigabe-Token, ohne Anmeldung.
func setupSharedRoutes(rg *gin.RouterGroup, d *Deps) {
	log := d.Logger

	rg.GET("/shared/:token", func(c *gin.Context) {
		ctx := c.Request.Context()
		share, err := d.Store.GetShareByToken(ctx, c.Param("token"))
		if err == nil && share.Expired(time.Now()) {
			err = storage.ErrNotFound
		}
		if err != nil {
			respondStoreError(c, log, err, "share")
			return
		}
		thesis, err := d.Store.GetThesis(ctx, share.ThesisID)
		if err != nil {
			respondStoreError(c, log, err, "thesis")
			return
		}
		chapters, err := d.Store.ListChapters(ctx, thesis.ID)
		if err != nil {
			respondStoreError(c, log, err, "chapters")
			return
		}
		milestones, err := d.Store.ListMilestones(ctx, thesis.ID)
		if err != nil {
			respondStoreError(c, log, err, "milestones")
			return
		}
		if !share.Accepted {
			if err := d.Store.MarkShareAccepted(ctx, share.ID); err != nil {
				log.Warn("Could not mark share as accepted", zap.String("share_id", share.ID), zap.Error(err))
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"thesis":          thesis,
			"chapters":        chapters,
			"milestones":      milestones,
			"permissionLevel": share.PermissionLevel,
			"email":           share.Email,
		})
	})
}
