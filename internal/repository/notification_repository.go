package repository

import (
	"context"
	"fmt"
	"time"

	"examen_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const unreadCountTTL = 5 * time.Minute

// NotificationRepository persists notifications and keeps a short-lived
// unread counter in redis for the navbar badge. A nil redis client
// disables the cache.
type NotificationRepository struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewNotificationRepository(db *gorm.DB, rdb *redis.Client) *NotificationRepository {
	return &NotificationRepository{DB: db, RDB: rdb}
}

func unreadCountKey(userID uint) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	if err := r.DB.Create(n).Error; err != nil {
		return err
	}
	r.invalidateUnreadCount(n.UserID)
	return nil
}

func (r *NotificationRepository) FindByID(id uint) (*model.Notification, error) {
	var n model.Notification
	err := r.DB.First(&n, id).Error
	return &n, err
}

func (r *NotificationRepository) ListByUser(userID uint) ([]model.Notification, error) {
	var ns []model.Notification
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&ns).Error
	return ns, err
}

func (r *NotificationRepository) ListUnread(userID uint, limit int) ([]model.Notification, error) {
	var ns []model.Notification
	q := r.DB.Where("user_id = ? AND `read` = ?", userID, false).
		Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&ns).Error
	return ns, err
}

func (r *NotificationRepository) MarkRead(id uint) error {
	var n model.Notification
	if err := r.DB.First(&n, id).Error; err != nil {
		return err
	}
	if err := r.DB.Model(&n).Update("read", true).Error; err != nil {
		return err
	}
	r.invalidateUnreadCount(n.UserID)
	return nil
}

func (r *NotificationRepository) UnreadCount(userID uint) (int64, error) {
	if r.RDB != nil {
		if cached, err := r.RDB.Get(context.Background(), unreadCountKey(userID)).Int64(); err == nil {
			return cached, nil
		}
	}

	var count int64
	err := r.DB.Model(&model.Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	if r.RDB != nil {
		r.RDB.Set(context.Background(), unreadCountKey(userID), count, unreadCountTTL)
	}
	return count, nil
}

func (r *NotificationRepository) invalidateUnreadCount(userID uint) {
	if r.RDB != nil {
		r.RDB.Del(context.Background(), unreadCountKey(userID))
	}
}
