package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"thesis-hand/config"
	"thesis-hand/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

const backupPrefix = "backups/"

// BackupConfig ergänzt die App-Konfiguration (Datenbank) um das Backup-Ziel.
type BackupConfig struct {
	BackupBucket    string `envconfig:"BACKUP_S3_BUCKET" required:"true"`
	BackupEndpoint  string `envconfig:"BACKUP_S3_ENDPOINT" required:"true"`
	BackupAccessKey string `envconfig:"BACKUP_S3_ACCESS_KEY" required:"true"`
	BackupSecretKey string `envconfig:"BACKUP_S3_SECRET_KEY" required:"true"`
	BackupRegion    string `envconfig:"BACKUP_S3_REGION" default:"us-east-1"`
	KeepBackups     int    `envconfig:"KEEP_BACKUPS" default:"4"`
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()
	logging.Info("Starte Backup-Prozess...")

	appCfg, err := config.Load()
	if err != nil {
		logging.Fatal("Fehler beim Laden der Konfiguration", zap.Error(err))
	}
	var cfg BackupConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logging.Fatal("Fehler beim Laden der Backup-Konfiguration", zap.Error(err))
	}

	ctx := context.Background()

	// 1. Datenbank-Dump erstellen
	dumpData, ext, err := createDump(appCfg)
	if err != nil {
		logging.Fatal("Fehler beim Erstellen des DB-Dumps", zap.String("driver", appCfg.Driver()), zap.Error(err))
	}

	// 2. S3-Client erstellen
	s3Client, err := storage.NewS3Client(ctx, cfg.BackupEndpoint, cfg.BackupRegion, cfg.BackupAccessKey, cfg.BackupSecretKey)
	if err != nil {
		logging.Fatal("Fehler beim Erstellen des S3-Clients", zap.Error(err))
	}

	// 3. Backup nach S3 hochladen
	key := backupKey(time.Now(), ext)
	if err := uploadToS3(ctx, s3Client, cfg, key, dumpData); err != nil {
		logging.Fatal("Fehler beim Hochladen nach S3", zap.Error(err))
	}
	logging.Info("Backup hochgeladen", zap.String("bucket", cfg.BackupBucket), zap.String("key", key), zap.Int("bytes", len(dumpData)))

	// 4. Alte Backups rotieren
	if err := rotateBackups(ctx, s3Client, cfg, logging); err != nil {
		logging.Fatal("Fehler bei der Rotation alter Backups", zap.Error(err))
	}

	logging.Info("Backup-Prozess erfolgreich abgeschlossen.")
}

func backupKey(now time.Time, ext string) string {
	return fmt.Sprintf("%sbackup-%s.%s.gz", backupPrefix, now.UTC().Format("2006-01-02T15-04-05Z"), ext)
}

// createDump liefert den gzip-komprimierten Dump und die Dateiendung vor ".gz".
func createDump(cfg *config.Config) ([]byte, string, error) {
	if cfg.Driver() == "sqlite" {
		data, err := gzipFile(cfg.SQLiteFile())
		return data, "db", err
	}
	data, err := pgDump(cfg)
	return data, "sql", err
}

func pgDump(cfg *config.Config) ([]byte, error) {
	var cmd *exec.Cmd
	if cfg.DatabaseURL != "" {
		cmd = exec.Command("pg_dump", "-w", "--dbname", cfg.DatabaseURL)
	} else {
		cmd = exec.Command("pg_dump",
			"-h", cfg.DBHost,
			"-p", fmt.Sprint(cfg.DBPort),
			"-U", cfg.DBUser,
			"-d", cfg.DBName,
			"-w", // Passwort wird über PGPASSWORD bereitgestellt
		)
		cmd.Env = append(os.Environ(), fmt.Sprintf("PGPASSWORD=%s", cfg.DBPassword))
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	data, err := gzipReader(stdout)
	if err != nil {
		return nil, err
	}
	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("pg_dump: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return data, nil
}

// gzipFile komprimiert die SQLite-Datei. Im WAL-Modus sollte vorher ein Checkpoint gelaufen sein.
func gzipFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return gzipReader(f)
}

func gzipReader(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	if _, err := io.Copy(gzipWriter, r); err != nil {
		return nil, err
	}
	if err := gzipWriter.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func uploadToS3(ctx context.Context, client *s3.Client, cfg BackupConfig, key string, data []byte) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(cfg.BackupBucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/gzip"),
	})
	return err
}

// expiredBackups liefert alles jenseits der neuesten keep Objekte.
func expiredBackups(objects []types.Object, keep int) []types.Object {
	if keep < 0 {
		keep = 0
	}
	if len(objects) <= keep {
		return nil
	}
	sorted := append([]types.Object(nil), objects...)
	sort.Slice(sorted, func(i, j int) bool {
		return aws.ToTime(sorted[i].LastModified).After(aws.ToTime(sorted[j].LastModified))
	})
	return sorted[keep:]
}

func rotateBackups(ctx context.Context, client *s3.Client, cfg BackupConfig, logging *zap.Logger) error {
	var objects []types.Object
	paginator := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: aws.String(cfg.BackupBucket),
		Prefix: aws.String(backupPrefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		objects = append(objects, page.Contents...)
	}

	expired := expiredBackups(objects, cfg.KeepBackups)
	if len(expired) == 0 {
		logging.Info("Keine Rotation nötig", zap.Int("backups", len(objects)), zap.Int("keep", cfg.KeepBackups))
		return nil
	}
	for _, obj := range expired {
		logging.Info("Lösche altes Backup", zap.String("key", aws.ToString(obj.Key)))
		_, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(cfg.BackupBucket),
			Key:    obj.Key,
		})
		if err != nil {
			logging.Warn("Fehler beim Löschen", zap.String("key", aws.ToString(obj.Key)), zap.Error(err))
		}
	}
	return nil
}
