package storage

import (
	"context"
	"errors"
	"fmt"

	"thesis-hand/models"

	"gorm.io/gorm"
)

var (
	// ErrNotFound wird für fehlende und für fremde Datensätze gleichermaßen geliefert.
	ErrNotFound = errors.New("record not found")
	// ErrConflict signalisiert eine Verletzung einer Eindeutigkeitsregel.
	ErrConflict = errors.New("conflict")
	// ErrChapterNotFound meldet ein fehlendes Kapitel, auf das ein anderer Datensatz verweist.
	ErrChapterNotFound = fmt.Errorf("chapter: %w", ErrNotFound)
)

// Store kapselt alle Datenbankzugriffe. Jede Methode nimmt einen Context entgegen.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB gibt die zugrunde liegende Verbindung zurück (Health-Check, Backups).
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Ping prüft die Erreichbarkeit der Datenbank.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	}
	return err
}

// chapterRef prüft, ob das referenzierte Kapitel zur Thesis gehört.
func chapterRef(ctx context.Context, db *gorm.DB, thesisID, chapterID string) error {
	if _, err := getOwned[models.Chapter](ctx, db, thesisID, chapterID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrChapterNotFound
		}
		return err
	}
	return nil
}

// getOwned lädt einen Datensatz über id und thesis_id, damit fremde IDs wie fehlende aussehen.
func getOwned[T any](ctx context.Context, db *gorm.DB, thesisID, id string) (*T, error) {
	var row T
	err := db.WithContext(ctx).Where("id = ? AND thesis_id = ?", id, thesisID).First(&row).Error
	if err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

func updateOwned[T any](ctx context.Context, db *gorm.DB, thesisID, id string, updates map[string]interface{}) (*T, error) {
	if len(updates) > 0 {
		res := db.WithContext(ctx).Model(new(T)).Where("id = ? AND thesis_id = ?", id, thesisID).Updates(updates)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return getOwned[T](ctx, db, thesisID, id)
}

func deleteOwned[T any](ctx context.Context, db *gorm.DB, thesisID, id string) error {
	res := db.WithContext(ctx).Where("id = ? AND thesis_id = ?", id, thesisID).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func listOwned[T any](ctx context.Context, db *gorm.DB, thesisID, order string) ([]T, error) {
	rows := make([]T, 0)
	err := db.WithContext(ctx).Where("thesis_id = ?", thesisID).Order(order).Find(&rows).Error
	return rows, err
}

func countOwned[T any](tx *gorm.DB, thesisID string) (int, error) {
	var n int64
	err := tx.Model(new(T)).Where("thesis_id = ?", thesisID).Count(&n).Error
	return int(n), err
}
