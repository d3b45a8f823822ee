package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"thesis-hand/models"
	"thesis-hand/storage"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	}
}

// FieldError beschreibt eine einzelne Validierungsverletzung.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Optional unterscheidet ein fehlendes JSON-Feld von einem explizit auf null gesetzten.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// bindJSON bindet und validiert den Body. Im Fehlerfall ist die Antwort bereits geschrieben.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	respondBindError(c, err)
	return false
}

// bindQuery bindet und validiert Query-Parameter mit derselben Fehlerform wie bindJSON.
func bindQuery(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindQuery(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		respondBindError(c, err)
		return false
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
	return false
}

func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fieldPath(fe), Message: validationMessage(fe)})
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid data", "fields": fields})
		return
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid data", "fields": []FieldError{
			{Field: typeErr.Field, Message: "must be of type " + typeErr.Type.String()},
		}})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

// fieldPath entfernt den Namen einer benannten Request-Struktur ("createRequest.title" -> "title").
// Bei anonymen Strukturen beginnt der Namespace bereits mit dem Feld.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	head, rest, ok := strings.Cut(ns, ".")
	structHead, _, _ := strings.Cut(fe.StructNamespace(), ".")
	if ok && head == structHead {
		return rest
	}
	return ns
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}

func fieldError(c *gin.Context, field, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid data", "fields": []FieldError{{Field: field, Message: message}}})
}

// respondChildError meldet ein fehlendes referenziertes Kapitel als solches, alles andere unter what.
func respondChildError(c *gin.Context, log *zap.Logger, err error, what string) {
	if errors.Is(err, storage.ErrChapterNotFound) {
		what = "chapter"
	}
	respondStoreError(c, log, err, what)
}

// respondStoreError übersetzt Store-Fehler in HTTP-Status. Unerwartete Fehler werden geloggt.
func respondStoreError(c *gin.Context, log *zap.Logger, err error, what string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
	case errors.Is(err, storage.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": what + " already exists"})
	default:
		log.Error("Database operation failed", zap.String("resource", what), zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
	}
}

const userKey = "user"

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(userKey).(*models.User)
}

// loadThesis löst die Thesis des angemeldeten Benutzers auf.
// found == false ohne Fehler heißt: der Benutzer hat (noch) keine Thesis.
func loadThesis(c *gin.Context, d *Deps) (thesis *models.Thesis, found bool, ok bool) {
	t, err := d.Store.GetThesisByUser(c.Request.Context(), currentUser(c).ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, true
	}
	if err != nil {
		respondStoreError(c, d.Logger, err, "thesis")
		return nil, false, false
	}
	return t, true, true
}

// requireThesis schreibt 404, wenn der Benutzer keine Thesis hat.
func requireThesis(c *gin.Context, d *Deps) (*models.Thesis, bool) {
	t, found, ok := loadThesis(c, d)
	if !ok {
		return nil, false
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "thesis not found"})
		return nil, false
	}
	return t, true
}

// parseDate akzeptiert RFC 3339 und reine Datumsangaben (YYYY-MM-DD).
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// optionalDate wandelt ein Optional[string] in einen Update-Wert (nil löscht das Datum).
func optionalDate(o Optional[string]) (*time.Time, error) {
	if o.Value == nil || strings.TrimSpace(*o.Value) == "" {
		return nil, nil
	}
	t, err := parseDate(*o.Value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
