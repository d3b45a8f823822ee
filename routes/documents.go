package routes

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"thesis-hand/models"
	"thesis-hand/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Spielraum für Multipart-Grenzen und Formularfelder neben der eigentlichen Datei
const multipartOverhead = 64 << 10

func uploadLimitMiddleware(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit+multipartOverhead {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)
		c.Next()
	}
}

func documentStorageKey(doc *models.Document) string {
	return fmt.Sprintf("documents/%s/%s/%s", doc.ThesisID, doc.ID, filepath.Base(doc.Filename))
}

func setupDocumentRoutes(rg *gin.RouterGroup, d *Deps) {
	log := d.Logger
	limit := d.Config.UploadMaxBytes

	rg.GET("/documents", func(c *gin.Context) {
		thesis, found, ok := loadThesis(c, d)
		if !ok {
			return
		}
		if !found {
			c.JSON(http.StatusOK, []models.Document{})
			return
		}
		docs, err := d.Store.ListDocuments(c.Request.Context(), thesis.ID)
		if err != nil {
			respondStoreError(c, log, err, "documents")
			return
		}
		c.JSON(http.StatusOK, docs)
	})

	rg.POST("/documents/upload", uploadLimitMiddleware(limit), func(c *gin.Context) {
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		fileHeader, err := c.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
				return
			}
			fieldError(c, "file", "is required")
			return
		}
		if fileHeader.Size > limit {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		f, err := fileHeader.Open()
		if err != nil {
			log.Error("Failed to open uploaded file", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, limit+1))
		f.Close()
		if err != nil {
			log.Error("Failed to read uploaded file", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
			return
		}

		extracted, err := d.Extractor.Extract(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
		switch {
		case errors.Is(err, services.ErrUnsupportedType):
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
			return
		case errors.Is(err, services.ErrUnparseablePDF), errors.Is(err, services.ErrEmptyDocument):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		case err != nil:
			log.Error("Document extraction failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process document"})
			return
		}

		title := strings.TrimSpace(c.PostForm("title"))
		if title == "" {
			title = fileHeader.Filename
		}
		doc := &models.Document{
			Model:     models.Model{ID: uuid.NewString()},
			ThesisID:  thesis.ID,
			UserID:    currentUser(c).ID,
			Title:     title,
			Content:   extracted.Text,
			Filename:  fileHeader.Filename,
			MimeType:  extracted.MimeType,
			SizeBytes: int64(len(data)),
		}

		// Archivierung der Originaldatei ist optional und blockiert den Upload nicht
		if d.Objects != nil {
			key := documentStorageKey(doc)
			if err := d.Objects.Put(c.Request.Context(), key, extracted.MimeType, data); err != nil {
				log.Warn("Archiving original upload failed", zap.String("key", key), zap.Error(err))
			} else {
				doc.StorageKey = key
			}
		}

		if err := d.Store.CreateDocument(c.Request.Context(), doc); err != nil {
			respondStoreError(c, log, err, "document")
			return
		}
		documentsCounter.WithLabelValues(doc.MimeType).Inc()
		log.Info("Document uploaded",
			zap.String("document_id", doc.ID),
			zap.String("mime", doc.MimeType),
			zap.Int("pages", extracted.Pages),
			zap.Int("chars", len(doc.Content)))

		doc.Content = ""
		c.JSON(http.StatusCreated, doc)
	})

	rg.DELETE("/documents/:id", func(c *gin.Context) {
		thesis, ok := requireThesis(c, d)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		doc, err := d.Store.GetDocument(ctx, thesis.ID, c.Param("id"))
		if err != nil {
			respondStoreError(c, log, err, "document")
			return
		}
		if err := d.Store.DeleteDocument(ctx, thesis.ID, doc.ID); err != nil {
			respondStoreError(c, log, err, "document")
			return
		}
		if d.Objects != nil && doc.StorageKey != "" {
			if err := d.Objects.Delete(ctx, doc.StorageKey); err != nil {
				log.Warn("Deleting archived upload failed", zap.String("key", doc.StorageKey), zap.Error(err))
			}
		}
		success(c)
	})
}
