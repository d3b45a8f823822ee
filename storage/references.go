package storage

import (
	"context"

	"thesis-hand/models"

	"gorm.io/datatypes"
)

func (s *Store) ListReferences(ctx context.Context, thesisID string) ([]models.Reference, error) {
	return listOwned[models.Reference](ctx, s.db, thesisID, "created_at asc")
}

func (s *Store) GetReference(ctx context.Context, thesisID, id string) (*models.Reference, error) {
	return getOwned[models.Reference](ctx, s.db, thesisID, id)
}

func (s *Store) CreateReference(ctx context.Context, r *models.Reference) error {
	if r.Authors == nil {
		r.Authors = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if r.MatrixData.Data() == nil {
		r.MatrixData = datatypes.NewJSONType(map[string]string{})
	}
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *Store) UpdateReference(ctx context.Context, thesisID, id string, updates map[string]interface{}) (*models.Reference, error) {
	return updateOwned[models.Reference](ctx, s.db, thesisID, id, updates)
}

// SetMatrixData ersetzt die Matrixzellen eines Literatureintrags.
func (s *Store) SetMatrixData(ctx context.Context, thesisID, id string, cells map[string]string) (*models.Reference, error) {
	if cells == nil {
		cells = map[string]string{}
	}
	return s.UpdateReference(ctx, thesisID, id, map[string]interface{}{
		"matrix_data": datatypes.NewJSONType(cells),
	})
}

func (s *Store) DeleteReference(ctx context.Context, thesisID, id string) error {
	return deleteOwned[models.Reference](ctx, s.db, thesisID, id)
}
