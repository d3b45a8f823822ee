package main

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupKey(t *testing.T) {
	now := time.Date(2025, 3, 1, 4, 5, 6, 0, time.FixedZone("CET", 3600))
	assert.Equal(t, "backups/backup-2025-03-01T03-05-06Z.sql.gz", backupKey(now, "sql"))
}

func TestExpiredBackupsKeepsNewest(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	objects := []types.Object{
		{Key: aws.String("a"), LastModified: aws.Time(base)},
		{Key: aws.String("c"), LastModified: aws.Time(base.Add(2 * time.Hour))},
		{Key: aws.String("b"), LastModified: aws.Time(base.Add(time.Hour))},
	}

	expired := expiredBackups(objects, 2)
	require.Len(t, expired, 1)
	assert.Equal(t, "a", aws.ToString(expired[0].Key))

	assert.Empty(t, expiredBackups(objects, 3))
	assert.Len(t, expiredBackups(objects, 0), 3)
}

func TestGzipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thesis.db")
	require.NoError(t, os.WriteFile(path, []byte("SQLite format 3"), 0o600))

	data, err := gzipFile(path)
	require.NoError(t, err)

	zr, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "SQLite format 3", string(plain))
}
