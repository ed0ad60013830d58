package service

import (
	"time"

	"github.com/google/uuid"

	"inkwell/internal/apperr"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

// notificationListCap bounds one notifications page.
const notificationListCap = 50

// ActivityService serves the follow-based feed and per-user notifications.
type ActivityService struct {
	activity      *store.ActivityStore
	notifications *store.NotificationStore
}

// NewActivityService wires an ActivityService.
func NewActivityService(activity *store.ActivityStore, notifications *store.NotificationStore) *ActivityService {
	return &ActivityService{activity: activity, notifications: notifications}
}

// Feed returns recent activity from the users the viewer follows plus the
// viewer's own, newest first.
func (s *ActivityService) Feed(viewerID uuid.UUID, page, limit int) ([]models.ActivityLog, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.activity.FeedFor(viewerID, limit, (page-1)*limit)
}

// ForUser returns one user's own activity, newest first. Backs the public
// profile activity tab.
func (s *ActivityService) ForUser(userID uuid.UUID, page, limit int) ([]models.ActivityLog, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.activity.ListByUser(userID, limit, (page-1)*limit)
}

// Notifications lists the viewer's notifications, optionally unread only.
func (s *ActivityService) Notifications(viewerID uuid.UUID, unreadOnly bool) ([]models.Notification, int, error) {
	list, err := s.notifications.ListByUser(viewerID, unreadOnly, notificationListCap)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.notifications.UnreadCount(viewerID)
	if err != nil {
		return nil, 0, err
	}
	return list, unread, nil
}

// MarkRead marks one of the viewer's notifications read. Reading someone
// else's notification reports not-found.
func (s *ActivityService) MarkRead(notificationID, viewerID uuid.UUID) error {
	n, err := s.notifications.FindByID(notificationID)
	if err != nil {
		return err
	}
	if n == nil || n.UserID != viewerID {
		return apperr.NotFound("notification not found")
	}
	return s.notifications.MarkRead(notificationID, time.Now())
}

// MarkAllRead marks all the viewer's notifications read and returns the
// number affected.
func (s *ActivityService) MarkAllRead(viewerID uuid.UUID) (int, error) {
	return s.notifications.MarkAllRead(viewerID, time.Now())
}
