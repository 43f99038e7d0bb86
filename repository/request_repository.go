package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"feedbackManagement/models"
)

// RequestRepository stores feedback requests.
type RequestRepository struct {
	db DBTX
}

// NewRequestRepository creates a new RequestRepository.
func NewRequestRepository(db DBTX) *RequestRepository {
	return &RequestRepository{db: db}
}

const requestSelect = `
SELECT r.id, r.requester_id, r.target_id, r.message, r.status, r.created_at, r.updated_at, rq.name, tg.name
FROM feedback_requests r
JOIN users rq ON rq.id = r.requester_id
JOIN users tg ON tg.id = r.target_id`

// Create inserts a request in the pending state.
func (r *RequestRepository) Create(ctx context.Context, fr *models.FeedbackRequest) (*models.FeedbackRequest, error) {
	if fr == nil {
		return nil, errors.New("request is nil")
	}
	if fr.CreatedAt.IsZero() {
		fr.CreatedAt = time.Now().UTC()
	}
	fr.UpdatedAt = fr.CreatedAt
	fr.Status = models.RequestPending
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	var msg any
	if fr.Message != nil {
		msg = *fr.Message
	}
	res, err := r.db.ExecContext(ctx, `INSERT INTO feedback_requests (requester_id, target_id, message, status, created_at, updated_at) VALUES (?,?,?,?,?,?)`,
		fr.RequesterID, fr.TargetID, msg, string(fr.Status), fr.CreatedAt, fr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a request, or nil when it does not exist.
func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*models.FeedbackRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	fr, err := scanRequest(r.db.QueryRowContext(ctx, requestSelect+` WHERE r.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return fr, err
}

// UpdateStatus sets the status of a request.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id int64, status models.RequestStatus, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE feedback_requests SET status = ?, updated_at = ? WHERE id = ?`, string(status), at, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListByRequester returns requests made by userID, newest first.
func (r *RequestRepository) ListByRequester(ctx context.Context, userID int64) ([]models.FeedbackRequest, error) {
	return r.list(ctx, requestSelect+` WHERE r.requester_id = ? ORDER BY r.created_at DESC, r.id DESC`, userID)
}

// ListByTarget returns requests addressed to userID, newest first.
func (r *RequestRepository) ListByTarget(ctx context.Context, userID int64) ([]models.FeedbackRequest, error) {
	return r.list(ctx, requestSelect+` WHERE r.target_id = ? ORDER BY r.created_at DESC, r.id DESC`, userID)
}

// CountPending returns how many pending requests are addressed to userID.
func (r *RequestRepository) CountPending(ctx context.Context, userID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback_requests WHERE target_id = ? AND status = ?`, userID, string(models.RequestPending)).Scan(&n)
	return n, err
}

func (r *RequestRepository) list(ctx context.Context, query string, args ...any) ([]models.FeedbackRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, longTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.FeedbackRequest{}
	for rows.Next() {
		fr, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *fr)
	}
	return out, rows.Err()
}

func scanRequest(row rowScanner) (*models.FeedbackRequest, error) {
	var fr models.FeedbackRequest
	var msg sql.NullString
	var status string
	if err := row.Scan(&fr.ID, &fr.RequesterID, &fr.TargetID, &msg, &status, &fr.CreatedAt, &fr.UpdatedAt, &fr.RequesterName, &fr.TargetName); err != nil {
		return nil, err
	}
	if msg.Valid {
		m := msg.String
		fr.Message = &m
	}
	fr.Status = models.RequestStatus(status)
	return &fr, nil
}
