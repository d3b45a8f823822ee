package storage

import (
	"context"

	"thesis-hand/models"

	"gorm.io/gorm"
)

func (s *Store) ListJournalEntries(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	entries := make([]models.JournalEntry, 0)
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("date desc, created_at desc").Find(&entries).Error
	return entries, err
}

func (s *Store) CreateJournalEntry(ctx context.Context, e *models.JournalEntry) error {
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return s.db.WithContext(ctx).Create(e).Error
}

// journalScope: Journaleinträge gehören dem Benutzer, nicht der Thesis.
func (s *Store) journalScope(ctx context.Context, userID, id string) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.JournalEntry{}).Where("id = ? AND user_id = ?", id, userID)
}

func (s *Store) UpdateJournalEntry(ctx context.Context, userID, id string, updates map[string]interface{}) (*models.JournalEntry, error) {
	if len(updates) > 0 {
		res := s.journalScope(ctx, userID, id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	var e models.JournalEntry
	if err := s.journalScope(ctx, userID, id).First(&e).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (s *Store) DeleteJournalEntry(ctx context.Context, userID, id string) error {
	res := s.journalScope(ctx, userID, id).Delete(&models.JournalEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFlashcards filtert optional nach Kategorie.
func (s *Store) ListFlashcards(ctx context.Context, thesisID, category string) ([]models.Flashcard, error) {
	cards := make([]models.Flashcard, 0)
	q := s.db.WithContext(ctx).Where("thesis_id = ?", thesisID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("created_at asc").Find(&cards).Error
	return cards, err
}

func (s *Store) CreateFlashcards(ctx context.Context, cards []models.Flashcard) error {
	if len(cards) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&cards).Error
}

func (s *Store) UpdateFlashcard(ctx context.Context, thesisID, id string, updates map[string]interface{}) (*models.Flashcard, error) {
	return updateOwned[models.Flashcard](ctx, s.db, thesisID, id, updates)
}

func (s *Store) DeleteFlashcard(ctx context.Context, thesisID, id string) error {
	return deleteOwned[models.Flashcard](ctx, s.db, thesisID, id)
}
