package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"feedbackManagement/models"
)

// NotificationRepository stores in-app notifications. It is the only
// repository that deletes rows.
type NotificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if n == nil {
		return nil, errors.New("notification is nil")
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `INSERT INTO notifications (user_id, message, type, is_read, created_at) VALUES (?,?,?,0,?)`,
		n.UserID, n.Message, n.Type, n.CreatedAt)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	n.ID = id
	n.Read = false
	return n, nil
}

// GetForUser fetches a notification only if userID owns it.
func (r *NotificationRepository) GetForUser(ctx context.Context, id, userID int64) (*models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	var n models.Notification
	err := r.db.QueryRowContext(ctx, `SELECT id, user_id, message, type, is_read, created_at FROM notifications WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.Read, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

// ListByUser returns userID's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, longTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT id, user_id, message, type, is_read, created_at FROM notifications WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flags a notification owned by userID as read.
// It returns sql.ErrNoRows when no such notification exists for that user.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByUser removes every notification owned by userID and returns how many were removed.
func (r *NotificationRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, longTimeout)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
