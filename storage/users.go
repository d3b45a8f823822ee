package storage

import (
	"context"
	"strings"
	"time"

	"thesis-hand/models"

	"gorm.io/gorm"
)

// CreateUser legt ein Konto an. Eine bereits vergebene E-Mail-Adresse ergibt ErrConflict.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("email = ?", u.Email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrConflict
		}
		return translate(tx.Create(u).Error)
	})
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// GetUserByEmail sucht ohne Beachtung der Groß-/Kleinschreibung.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).First(&u, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, updates map[string]interface{}) (*models.User, error) {
	if len(updates) > 0 {
		res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.GetUser(ctx, id)
}

// DeleteUser entfernt das Konto samt Sitzungen, Journal und dem kompletten Thesis-Baum.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var thesisIDs []string
		if err := tx.Model(&models.Thesis{}).Where("user_id = ?", id).Pluck("id", &thesisIDs).Error; err != nil {
			return err
		}
		for _, thesisID := range thesisIDs {
			if err := deleteThesisTree(tx, thesisID); err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.JournalEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *Store) CreateSession(ctx context.Context, sess *models.Session) error {
	return s.db.WithContext(ctx).Create(sess).Error
}

func (s *Store) GetSessionByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	var sess models.Session
	if err := s.db.WithContext(ctx).First(&sess, "token_hash = ?", tokenHash).Error; err != nil {
		return nil, translate(err)
	}
	return &sess, nil
}

func (s *Store) DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error {
	return s.db.WithContext(ctx).Where("token_hash = ?", tokenHash).Delete(&models.Session{}).Error
}

// PurgeExpired löscht abgelaufene Sitzungen und Freigaben und liefert deren Anzahl.
func (s *Store) PurgeExpired(ctx context.Context, now time.Time) (sessions int64, shares int64, err error) {
	res := s.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.Session{})
	if res.Error != nil {
		return 0, 0, res.Error
	}
	sessions = res.RowsAffected

	res = s.db.WithContext(ctx).Where("expires_at IS NOT NULL AND expires_at < ?", now).Delete(&models.SharedAccess{})
	if res.Error != nil {
		return sessions, 0, res.Error
	}
	return sessions, res.RowsAffected, nil
}
