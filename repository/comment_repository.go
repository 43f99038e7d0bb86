package repository

import (
	"context"
	"time"

	"feedbackManagement/models"
)

type CommentRepository struct {
	db DBTX
}

func NewCommentRepository(db DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `INSERT INTO feedback_comments (feedback_id, user_id, content, created_at) VALUES (?,?,?,?)`,
		c.FeedbackID, c.UserID, c.Content, c.CreatedAt)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	c.ID = id
	return c, nil
}

// ListByFeedback returns the comments on a feedback item, oldest first, with author names.
func (r *CommentRepository) ListByFeedback(ctx context.Context, feedbackID int64) ([]models.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, longTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `
SELECT c.id, c.feedback_id, c.user_id, c.content, c.created_at, u.name
FROM feedback_comments c
JOIN users u ON u.id = c.user_id
WHERE c.feedback_id = ?
ORDER BY c.created_at ASC, c.id ASC`, feedbackID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.FeedbackID, &c.UserID, &c.Content, &c.CreatedAt, &c.AuthorName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
