package storage

import (
	"context"

	"thesis-hand/models"

	"gorm.io/gorm"
)

func (s *Store) ListTasks(ctx context.Context, thesisID string) ([]models.Task, error) {
	return listOwned[models.Task](ctx, s.db, thesisID, "order_index asc")
}

func (s *Store) GetTask(ctx context.Context, thesisID, id string) (*models.Task, error) {
	return getOwned[models.Task](ctx, s.db, thesisID, id)
}

func (s *Store) CreateTask(ctx context.Context, t *models.Task) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if t.ChapterID != nil {
			if err := chapterRef(ctx, tx, t.ThesisID, *t.ChapterID); err != nil {
				return err
			}
		}
		n, err := countOwned[models.Task](tx, t.ThesisID)
		if err != nil {
			return err
		}
		t.OrderIndex = n
		if t.Status == "" {
			t.Status = models.TaskStatusTodo
		}
		if t.Priority == "" {
			t.Priority = "medium"
		}
		t.Completed = t.Status == models.TaskStatusDone
		return tx.Create(t).Error
	})
}

func (s *Store) UpdateTask(ctx context.Context, thesisID, id string, updates map[string]interface{}) (*models.Task, error) {
	if chapterID, ok := updates["chapter_id"].(*string); ok && chapterID != nil {
		if err := chapterRef(ctx, s.db, thesisID, *chapterID); err != nil {
			return nil, err
		}
	}
	return updateOwned[models.Task](ctx, s.db, thesisID, id, updates)
}

func (s *Store) DeleteTask(ctx context.Context, thesisID, id string) error {
	return deleteOwned[models.Task](ctx, s.db, thesisID, id)
}

func (s *Store) ListMilestones(ctx context.Context, thesisID string) ([]models.Milestone, error) {
	return listOwned[models.Milestone](ctx, s.db, thesisID, "order_index asc")
}

func (s *Store) GetMilestone(ctx context.Context, thesisID, id string) (*models.Milestone, error) {
	return getOwned[models.Milestone](ctx, s.db, thesisID, id)
}

func (s *Store) CreateMilestone(ctx context.Context, m *models.Milestone) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := countOwned[models.Milestone](tx, m.ThesisID)
		if err != nil {
			return err
		}
		m.OrderIndex = n
		return tx.Create(m).Error
	})
}

// InitializeMilestones legt die Vorlage in Reihenfolge an. Bestehen bereits Meilensteine, gibt es ErrConflict.
func (s *Store) InitializeMilestones(ctx context.Context, thesisID string, templates []models.MilestoneTemplate) ([]models.Milestone, error) {
	created := make([]models.Milestone, 0, len(templates))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := countOwned[models.Milestone](tx, thesisID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrConflict
		}
		for i, tpl := range templates {
			created = append(created, models.Milestone{
				ThesisID:    thesisID,
				Name:        tpl.Name,
				Description: tpl.Description,
				OrderIndex:  i,
			})
		}
		if len(created) == 0 {
			return nil
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Store) UpdateMilestone(ctx context.Context, thesisID, id string, updates map[string]interface{}) (*models.Milestone, error) {
	return updateOwned[models.Milestone](ctx, s.db, thesisID, id, updates)
}

func (s *Store) DeleteMilestone(ctx context.Context, thesisID, id string) error {
	return deleteOwned[models.Milestone](ctx, s.db, thesisID, id)
}
