package storage

import (
	"context"

	"thesis-hand/models"

	"gorm.io/gorm"
)

func (s *Store) ListChapters(ctx context.Context, thesisID string) ([]models.Chapter, error) {
	return listOwned[models.Chapter](ctx, s.db, thesisID, "order_index asc")
}

func (s *Store) GetChapter(ctx context.Context, thesisID, id string) (*models.Chapter, error) {
	return getOwned[models.Chapter](ctx, s.db, thesisID, id)
}

// CreateChapter hängt das Kapitel hinten an. Der Index ist die Anzahl der bestehenden Kapitel.
func (s *Store) CreateChapter(ctx context.Context, ch *models.Chapter) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := countOwned[models.Chapter](tx, ch.ThesisID)
		if err != nil {
			return err
		}
		ch.OrderIndex = n
		if ch.Status == "" {
			ch.Status = models.ChapterStatusDraft
		}
		return tx.Create(ch).Error
	})
}

func (s *Store) UpdateChapter(ctx context.Context, thesisID, id string, updates map[string]interface{}) (*models.Chapter, error) {
	return updateOwned[models.Chapter](ctx, s.db, thesisID, id, updates)
}

// DeleteChapter entfernt das Kapitel mit seinen Aufgaben und Kommentaren.
func (s *Store) DeleteChapter(ctx context.Context, thesisID, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getOwned[models.Chapter](ctx, tx, thesisID, id); err != nil {
			return err
		}
		if err := tx.Where("chapter_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("chapter_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return deleteOwned[models.Chapter](ctx, tx, thesisID, id)
	})
}

// FindChapterByTitle sucht ein Kapitel ohne Beachtung der Groß-/Kleinschreibung.
func (s *Store) FindChapterByTitle(ctx context.Context, thesisID, title string) (*models.Chapter, error) {
	var ch models.Chapter
	err := s.db.WithContext(ctx).
		Where("thesis_id = ? AND LOWER(title) = LOWER(?)", thesisID, title).
		Order("order_index asc").
		First(&ch).Error
	if err != nil {
		return nil, translate(err)
	}
	return &ch, nil
}

func (s *Store) ListComments(ctx context.Context, thesisID, chapterID string) ([]models.Comment, error) {
	if _, err := s.GetChapter(ctx, thesisID, chapterID); err != nil {
		return nil, err
	}
	comments := make([]models.Comment, 0)
	err := s.db.WithContext(ctx).Where("chapter_id = ?", chapterID).Order("created_at asc").Find(&comments).Error
	return comments, err
}

func (s *Store) CreateComment(ctx context.Context, thesisID string, cm *models.Comment) error {
	if err := chapterRef(ctx, s.db, thesisID, cm.ChapterID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(cm).Error
}

// commentScope beschränkt Kommentare auf die Kapitel der angegebenen Thesis.
func (s *Store) commentScope(ctx context.Context, thesisID, id string) *gorm.DB {
	chapterIDs := s.db.Model(&models.Chapter{}).Select("id").Where("thesis_id = ?", thesisID)
	return s.db.WithContext(ctx).Where("id = ? AND chapter_id IN (?)", id, chapterIDs)
}

func (s *Store) GetComment(ctx context.Context, thesisID, id string) (*models.Comment, error) {
	var cm models.Comment
	if err := s.commentScope(ctx, thesisID, id).First(&cm).Error; err != nil {
		return nil, translate(err)
	}
	return &cm, nil
}

func (s *Store) UpdateComment(ctx context.Context, thesisID, id string, updates map[string]interface{}) (*models.Comment, error) {
	if len(updates) > 0 {
		res := s.commentScope(ctx, thesisID, id).Model(&models.Comment{}).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.GetComment(ctx, thesisID, id)
}

func (s *Store) DeleteComment(ctx context.Context, thesisID, id string) error {
	res := s.commentScope(ctx, thesisID, id).Delete(&models.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
