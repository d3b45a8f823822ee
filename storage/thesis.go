package storage

import (
	"context"

	"thesis-hand/models"

	"gorm.io/gorm"
)

// GetThesisByUser liefert die aktuelle Thesis des Benutzers (die zuletzt angelegte).
func (s *Store) GetThesisByUser(ctx context.Context, userID string) (*models.Thesis, error) {
	var t models.Thesis
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").First(&t).Error
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (s *Store) GetThesis(ctx context.Context, id string) (*models.Thesis, error) {
	var t models.Thesis
	if err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// CreateThesis legt eine Thesis an. Existiert für den Benutzer bereits eine, gibt es ErrConflict.
func (s *Store) CreateThesis(ctx context.Context, t *models.Thesis) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Thesis{}).Where("user_id = ?", t.UserID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrConflict
		}
		if t.Status == "" {
			t.Status = models.ThesisStatusActive
		}
		if t.Language == "" {
			t.Language = "english"
		}
		if t.ResearchQuestions == nil {
			t.ResearchQuestions = []string{}
		}
		if t.Objectives == nil {
			t.Objectives = []string{}
		}
		if t.MatrixColumns == nil {
			t.MatrixColumns = []string{}
		}
		return tx.Create(t).Error
	})
}

func (s *Store) UpdateThesis(ctx context.Context, id string, updates map[string]interface{}) (*models.Thesis, error) {
	if len(updates) > 0 {
		res := s.db.WithContext(ctx).Model(&models.Thesis{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.GetThesis(ctx, id)
}

// DeleteThesis entfernt die Thesis und alle abhängigen Datensätze in einer Transaktion.
func (s *Store) DeleteThesis(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteThesisTree(tx, id)
	})
}

func deleteThesisTree(tx *gorm.DB, thesisID string) error {
	chapterIDs := tx.Model(&models.Chapter{}).Select("id").Where("thesis_id = ?", thesisID)
	if err := tx.Where("chapter_id IN (?)", chapterIDs).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	for _, child := range []interface{}{
		&models.Task{},
		&models.Chapter{},
		&models.Milestone{},
		&models.Reference{},
		&models.SharedAccess{},
		&models.Document{},
		&models.Flashcard{},
	} {
		if err := tx.Where("thesis_id = ?", thesisID).Delete(child).Error; err != nil {
			return err
		}
	}
	res := tx.Where("id = ?", thesisID).Delete(&models.Thesis{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
