package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain/notification"
	reponotification "github.com/piolcm/piol/pkg/repository/notification"
	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a notification repository on the given session.
func NewNotificationRepository(db *gorm.DB) reponotification.Repository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	m := Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		RelatedID: n.RelatedID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

func (r *notificationRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	unreadOnly bool,
	limit int,
) ([]*notification.Notification, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var models []Notification
	if err := q.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*notification.Notification, 0, len(models))
	for _, m := range models {
		out = append(out, &notification.Notification{
			ID:        m.ID,
			UserID:    m.UserID,
			Type:      notification.Type(m.Type),
			Title:     m.Title,
			Message:   m.Message,
			RelatedID: m.RelatedID,
			Read:      m.Read,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return MapGormErrorToDomain(gorm.ErrRecordNotFound)
	}
	return nil
}

var _ reponotification.Repository = (*notificationRepository)(nil)
