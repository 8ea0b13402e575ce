package service

import (
	"errors"

	"examen_backend/internal/model"
	"examen_backend/internal/repository"
	"examen_backend/internal/util"

	"gorm.io/gorm"
)

type NotificationService struct {
	Repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{Repo: repo}
}

// Send persists a notification addressed to one user. Fire and forget:
// delivery is the recipient polling their mailbox.
func (s *NotificationService) Send(recipientID uint, kind model.NotificationKind, title, message, link string) (*model.Notification, error) {
	n := &model.Notification{
		UserID:  recipientID,
		Kind:    kind,
		Title:   title,
		Message: message,
		Link:    link,
	}
	if err := s.Repo.Create(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) ListForUser(userID uint) ([]model.Notification, int64, error) {
	ns, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.Repo.UnreadCount(userID)
	if err != nil {
		return nil, 0, err
	}
	return ns, unread, nil
}

func (s *NotificationService) ListUnread(userID uint, limit int) ([]model.Notification, error) {
	return s.Repo.ListUnread(userID, limit)
}

// MarkRead flips the read flag. Only the addressee may do it; read state
// is the sole mutation notifications ever see.
func (s *NotificationService) MarkRead(notificationID, actorID uint) error {
	n, err := s.Repo.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotFound
		}
		return err
	}
	if n.UserID != actorID {
		return util.ErrForbidden
	}
	return s.Repo.MarkRead(notificationID)
}
