package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"feedbackManagement/models"
)

type TagRepository struct {
	db DBTX
}

func NewTagRepository(db DBTX) *TagRepository {
	return &TagRepository{db: db}
}

// Create inserts a tag. Names are unique regardless of case.
func (r *TagRepository) Create(ctx context.Context, name string, at time.Time) (*models.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `INSERT INTO tags (name, created_at) VALUES (?, ?)`, name, at)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Tag{ID: id, Name: name, CreatedAt: at}, nil
}

func (r *TagRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	return r.get(ctx, `SELECT id, name, created_at FROM tags WHERE id = ?`, id)
}

// GetByName looks a tag up ignoring case.
func (r *TagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	return r.get(ctx, `SELECT id, name, created_at FROM tags WHERE name = ? COLLATE NOCASE`, name)
}

func (r *TagRepository) get(ctx context.Context, query string, arg any) (*models.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	var t models.Tag
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// List returns all tags alphabetically.
func (r *TagRepository) List(ctx context.Context) ([]models.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, longTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM tags ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Attach links a tag to a feedback item. Linking twice keeps a single association.
func (r *TagRepository) Attach(ctx context.Context, feedbackID, tagID int64) error {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO feedback_tags (feedback_id, tag_id) VALUES (?, ?)`, feedbackID, tagID)
	return err
}

// Detach removes the association if present.
func (r *TagRepository) Detach(ctx context.Context, feedbackID, tagID int64) error {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `DELETE FROM feedback_tags WHERE feedback_id = ? AND tag_id = ?`, feedbackID, tagID)
	return err
}

// attachTags fills Tags on every item with one query.
func attachTags(ctx context.Context, db DBTX, items []models.Feedback) error {
	if len(items) == 0 {
		return nil
	}
	index := make(map[int64]int, len(items))
	placeholders := make([]string, len(items))
	args := make([]any, len(items))
	for i := range items {
		items[i].Tags = []models.Tag{}
		index[items[i].ID] = i
		placeholders[i] = "?"
		args[i] = items[i].ID
	}
	rows, err := db.QueryContext(ctx, `
SELECT ft.feedback_id, t.id, t.name, t.created_at
FROM feedback_tags ft
JOIN tags t ON t.id = ft.tag_id
WHERE ft.feedback_id IN (`+strings.Join(placeholders, ",")+`)
ORDER BY t.name COLLATE NOCASE, t.id`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var feedbackID int64
		var t models.Tag
		if err := rows.Scan(&feedbackID, &t.ID, &t.Name, &t.CreatedAt); err != nil {
			return err
		}
		if i, ok := index[feedbackID]; ok {
			items[i].Tags = append(items[i].Tags, t)
		}
	}
	return rows.Err()
}
