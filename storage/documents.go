package storage

import (
	"context"

	"thesis-hand/models"
)

// ListDocuments liefert die Dokumente ohne den (potenziell großen) Textinhalt.
func (s *Store) ListDocuments(ctx context.Context, thesisID string) ([]models.Document, error) {
	docs := make([]models.Document, 0)
	err := s.db.WithContext(ctx).
		Omit("content").
		Where("thesis_id = ?", thesisID).
		Order("created_at desc").
		Find(&docs).Error
	return docs, err
}

// GetDocumentsByIDs lädt die angegebenen Dokumente der Thesis in der Reihenfolge der IDs.
// Fremde oder unbekannte IDs werden übersprungen.
func (s *Store) GetDocumentsByIDs(ctx context.Context, thesisID string, ids []string) ([]models.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Document
	if err := s.db.WithContext(ctx).Where("thesis_id = ? AND id IN ?", thesisID, ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]models.Document, len(rows))
	for _, d := range rows {
		byID[d.ID] = d
	}
	ordered := make([]models.Document, 0, len(rows))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			ordered = append(ordered, d)
			delete(byID, id)
		}
	}
	return ordered, nil
}

func (s *Store) GetDocument(ctx context.Context, thesisID, id string) (*models.Document, error) {
	return getOwned[models.Document](ctx, s.db, thesisID, id)
}

func (s *Store) CreateDocument(ctx context.Context, d *models.Document) error {
	return s.db.WithContext(ctx).Create(d).Error
}

func (s *Store) DeleteDocument(ctx context.Context, thesisID, id string) error {
	return deleteOwned[models.Document](ctx, s.db, thesisID, id)
}

// ListDocumentsWithContent liefert alle Dokumente inklusive Text, älteste zuerst (stabile Nummerierung im Prompt).
func (s *Store) ListDocumentsWithContent(ctx context.Context, thesisID string) ([]models.Document, error) {
	return listOwned[models.Document](ctx, s.db, thesisID, "created_at asc")
}
