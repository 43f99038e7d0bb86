package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"feedbackManagement/models"
)

// FeedbackRepository stores manager-to-employee feedback.
type FeedbackRepository struct {
	db DBTX
}

// NewFeedbackRepository creates a new FeedbackRepository.
func NewFeedbackRepository(db DBTX) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

const feedbackColumns = `f.id, f.manager_id, f.employee_id, f.strengths, f.areas_to_improve, f.sentiment, f.acknowledged, f.created_at, f.updated_at`

// Create inserts f. Acknowledged is always stored false; timestamps default to now.
func (r *FeedbackRepository) Create(ctx context.Context, f *models.Feedback) (*models.Feedback, error) {
	if f == nil {
		return nil, errors.New("feedback is nil")
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	f.UpdatedAt = f.CreatedAt
	f.Acknowledged = false
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO feedback (manager_id, employee_id, strengths, areas_to_improve, sentiment, acknowledged, created_at, updated_at) VALUES (?,?,?,?,?,0,?,?)`,
		f.ManagerID, f.EmployeeID, f.Strengths, f.AreasToImprove, string(f.Sentiment), f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	f.ID = id
	f.Tags = []models.Tag{}
	return f, nil
}

// GetByID fetches a feedback item with its tags, or nil when it does not exist.
func (r *FeedbackRepository) GetByID(ctx context.Context, id int64) (*models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	var f models.Feedback
	var sentiment string
	err := r.db.QueryRowContext(ctx, `SELECT `+feedbackColumns+` FROM feedback f WHERE f.id = ?`, id).
		Scan(&f.ID, &f.ManagerID, &f.EmployeeID, &f.Strengths, &f.AreasToImprove, &sentiment, &f.Acknowledged, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	f.Sentiment = models.Sentiment(sentiment)
	items := []models.Feedback{f}
	if err := attachTags(ctx, r.db, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Update applies the non-nil fields of p and bumps updated_at.
func (r *FeedbackRepository) Update(ctx context.Context, id int64, p models.FeedbackPatch, at time.Time) error {
	sets := []string{"updated_at = ?"}
	args := []any{at}
	if p.Strengths != nil {
		sets = append(sets, "strengths = ?")
		args = append(args, *p.Strengths)
	}
	if p.AreasToImprove != nil {
		sets = append(sets, "areas_to_improve = ?")
		args = append(args, *p.AreasToImprove)
	}
	if p.Sentiment != nil {
		sets = append(sets, "sentiment = ?")
		args = append(args, string(*p.Sentiment))
	}
	args = append(args, id)

	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE feedback SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Acknowledge marks the feedback as acknowledged. Already acknowledged rows are left as they are.
func (r *FeedbackRepository) Acknowledge(ctx context.Context, id int64, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE feedback SET acknowledged = 1, updated_at = ? WHERE id = ? AND acknowledged = 0`, at, id)
	return err
}

// ListForEmployee returns feedback received by employeeID, newest first, with the author's name.
func (r *FeedbackRepository) ListForEmployee(ctx context.Context, employeeID int64) ([]models.Feedback, error) {
	return r.list(ctx, `
SELECT `+feedbackColumns+`, m.name, '', ''
FROM feedback f
JOIN users m ON m.id = f.manager_id
WHERE f.employee_id = ?
ORDER BY f.created_at DESC, f.id DESC`, employeeID)
}

// ListForManager returns feedback written by managerID, newest first, with employee name and email.
func (r *FeedbackRepository) ListForManager(ctx context.Context, managerID int64) ([]models.Feedback, error) {
	return r.list(ctx, `
SELECT `+feedbackColumns+`, '', e.name, e.email
FROM feedback f
JOIN users e ON e.id = f.employee_id
WHERE f.manager_id = ?
ORDER BY f.created_at DESC, f.id DESC`, managerID)
}

func (r *FeedbackRepository) list(ctx context.Context, query string, args ...any) ([]models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, longTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	out := []models.Feedback{}
	for rows.Next() {
		var f models.Feedback
		var sentiment string
		if err := rows.Scan(&f.ID, &f.ManagerID, &f.EmployeeID, &f.Strengths, &f.AreasToImprove, &sentiment, &f.Acknowledged, &f.CreatedAt, &f.UpdatedAt,
			&f.ManagerName, &f.EmployeeName, &f.EmployeeEmail); err != nil {
			_ = rows.Close()
			return nil, err
		}
		f.Sentiment = models.Sentiment(sentiment)
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	// Close before issuing the tag query on the same handle.
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := attachTags(ctx, r.db, out); err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	return out, nil
}
