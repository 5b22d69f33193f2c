// Package notifyrepo persists in-app notifications. Writes are best-effort by
// contract: emitters log and swallow failures, so this adapter never needs a
// transaction.
package notifyrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/notification"
)

// NotificationDTO represents the database structure for persisting notifications.
type NotificationDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;index"`
	Type          string    `gorm:"size:32"`
	Title         string
	Message       string
	RelatedKind   string     `gorm:"size:16"`
	RelatedID     *uuid.UUID `gorm:"type:uuid"`
	RelatedNumber string     `gorm:"size:16"`
	Priority      string     `gorm:"size:16"`
	ActionURL     string
	Read          bool `gorm:"index"`
	CreatedAt     time.Time
	ExpiresAt     *time.Time
}

// TableName specifies the database table name for notification entities.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// GormNotificationSink implements NotificationSink using GORM.
type GormNotificationSink struct {
	db *gorm.DB
}

// NewGormNotificationSink creates a notification store over the given connection.
func NewGormNotificationSink(db *gorm.DB) *GormNotificationSink {
	return &GormNotificationSink{db: db}
}

// Create stores one notification.
func (r *GormNotificationSink) Create(ctx context.Context, n notification.Notification) error {
	dto := NotificationDTO{
		ID:            n.ID.Bytes(),
		UserID:        n.UserID.Bytes(),
		Type:          string(n.Type),
		Title:         n.Title,
		Message:       n.Message,
		RelatedKind:   n.Related.Kind,
		RelatedNumber: n.Related.Number,
		Priority:      string(n.Priority),
		ActionURL:     n.ActionURL,
		Read:          n.Read,
		CreatedAt:     n.CreatedAt,
		ExpiresAt:     n.ExpiresAt,
	}
	if n.Related.ID.Validate() == nil {
		raw := n.Related.ID.Bytes()
		dto.RelatedID = &raw
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}
