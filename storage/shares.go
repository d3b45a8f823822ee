package storage

import (
	"context"

	"thesis-hand/models"

	"github.com/google/uuid"
)

func (s *Store) ListShares(ctx context.Context, thesisID string) ([]models.SharedAccess, error) {
	return listOwned[models.SharedAccess](ctx, s.db, thesisID, "created_at asc")
}

// CreateShare vergibt ein zufälliges, eindeutiges Token.
func (s *Store) CreateShare(ctx context.Context, share *models.SharedAccess) error {
	share.Token = uuid.NewString()
	if share.PermissionLevel == "" {
		share.PermissionLevel = models.PermissionRead
	}
	return translate(s.db.WithContext(ctx).Create(share).Error)
}

func (s *Store) GetShareByToken(ctx context.Context, token string) (*models.SharedAccess, error) {
	var share models.SharedAccess
	if err := s.db.WithContext(ctx).First(&share, "token = ?", token).Error; err != nil {
		return nil, translate(err)
	}
	return &share, nil
}

func (s *Store) MarkShareAccepted(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Model(&models.SharedAccess{}).Where("id = ?", id).Update("accepted", true).Error
}

func (s *Store) DeleteShare(ctx context.Context, thesisID, id string) error {
	return deleteOwned[models.SharedAccess](ctx, s.db, thesisID, id)
}
