package service

import (
	"context"
	"database/sql"
	"errors"

	"feedbackManagement/internal/apperr"
	"feedbackManagement/internal/auth"
	"feedbackManagement/models"
	"feedbackManagement/repository"
)

// ListNotifications returns the caller's notifications, newest first.
func (s *Service) ListNotifications(ctx context.Context, caller auth.Identity) ([]models.Notification, error) {
	var out []models.Notification
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		out, err = st.Notifications.ListByUser(ctx, caller.UserID)
		return wrap("list notifications", err)
	})
	return out, err
}

// MarkNotificationRead flags one of the caller's notifications as read.
func (s *Service) MarkNotificationRead(ctx context.Context, caller auth.Identity, id int64) (*models.Notification, error) {
	var n *models.Notification
	err := s.inTx(ctx, func(st *repository.Store) error {
		if err := st.Notifications.MarkRead(ctx, id, caller.UserID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("Notification not found")
			}
			return wrap("mark notification read", err)
		}
		var err error
		n, err = st.Notifications.GetForUser(ctx, id, caller.UserID)
		return wrap("reload notification", err)
	})
	return n, err
}

// ClearNotifications deletes all of the caller's notifications and reports how many were removed.
func (s *Service) ClearNotifications(ctx context.Context, caller auth.Identity) (int64, error) {
	return s.PurgeNotifications(ctx, caller.UserID)
}

// PurgeNotifications deletes every notification owned by userID.
func (s *Service) PurgeNotifications(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		n, err = st.Notifications.DeleteByUser(ctx, userID)
		return wrap("delete notifications", err)
	})
	return n, err
}
