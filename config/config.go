package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	HTTPPort  string `envconfig:"HTTP_PORT" default:"5000"`
	IsDesktop bool   `envconfig:"IS_DESKTOP" default:"false"`
	StaticDir string `envconfig:"STATIC_DIR"`

	// Datenbank: "postgres" (Server) oder "sqlite" (Desktop-Modus)
	DBDriver    string `envconfig:"DB_DRIVER" default:"postgres"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBPort      int    `envconfig:"DB_PORT" default:"5432"`
	DBUser      string `envconfig:"DB_USER"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME" default:"thesis"`
	DBSSLMode   string `envconfig:"DB_SSLMODE" default:"disable"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"./database.db"`

	SessionTTL          time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	SessionSecureCookie bool          `envconfig:"SESSION_SECURE_COOKIE" default:"false"`
	UploadMaxBytes      int64         `envconfig:"UPLOAD_MAX_BYTES" default:"5242880"`

	MetricsAPIKey   string `envconfig:"METRICS_API_KEY"`
	CleanupSchedule string `envconfig:"CLEANUP_SCHEDULE" default:"@hourly"`

	// KI-Provider: gemini, openai oder local (OpenAI-kompatibler Server, z.B. Ollama)
	AIProvider       string `envconfig:"AI_PROVIDER" default:"gemini"`
	AIModelName      string `envconfig:"AI_MODEL_NAME"`
	AIBaseURL        string `envconfig:"AI_BASE_URL"`
	GeminiAPIKey     string `envconfig:"GEMINI_API_KEY"`
	OpenAIAPIKey     string `envconfig:"OPENAI_API_KEY"`
	AIMaxTokens      int    `envconfig:"AI_MAX_TOKENS" default:"2048"`
	AIDocContextChar int    `envconfig:"AI_DOC_CONTEXT_CHARS" default:"1500"`

	// Literatursuche zum Vorbefüllen von Einträgen (Europe PMC)
	LiteratureSearch    bool   `envconfig:"LITERATURE_SEARCH" default:"true"`
	LiteratureSearchURL string `envconfig:"LITERATURE_SEARCH_URL"`

	// Optionales Objekt-Storage für hochgeladene Originaldateien
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`
}

// Driver liefert den effektiven Datenbanktreiber. Der Desktop-Modus erzwingt SQLite.
func (c *Config) Driver() string {
	if c.IsDesktop || strings.HasPrefix(c.DatabaseURL, "sqlite:") {
		return "sqlite"
	}
	return strings.ToLower(strings.TrimSpace(c.DBDriver))
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" && !strings.HasPrefix(c.DatabaseURL, "sqlite:") {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// SQLiteFile gibt den Pfad der eingebetteten Datenbankdatei zurück.
// DATABASE_URL=sqlite:<pfad> hat Vorrang vor SQLITE_PATH.
func (c *Config) SQLiteFile() string {
	if p, ok := strings.CutPrefix(c.DatabaseURL, "sqlite:"); ok && p != "" {
		return p
	}
	return c.SQLitePath
}

// ObjectStorageEnabled meldet, ob ein S3-Bucket vollständig konfiguriert ist.
func (c *Config) ObjectStorageEnabled() bool {
	return c.S3Endpoint != "" && c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// Validate prüft die Kombinationen, die envconfig allein nicht abbilden kann.
func (c *Config) Validate() error {
	switch c.Driver() {
	case "postgres":
		if c.DatabaseURL == "" && c.DBUser == "" {
			return fmt.Errorf("either DATABASE_URL or DB_USER must be set for postgres")
		}
	case "sqlite":
		if c.SQLiteFile() == "" {
			return fmt.Errorf("SQLITE_PATH must not be empty")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.UploadMaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, c.Validate()
}
