package repository

import (
	"context"
	"errors"
	"time"

	"feedbackManagement/models"
)

// PeerFeedbackRepository stores feedback exchanged between colleagues.
// It always returns the author; anonymisation is applied by the caller
// before the recipient sees a record.
type PeerFeedbackRepository struct {
	db DBTX
}

func NewPeerFeedbackRepository(db DBTX) *PeerFeedbackRepository {
	return &PeerFeedbackRepository{db: db}
}

func (r *PeerFeedbackRepository) Create(ctx context.Context, p *models.PeerFeedback) (*models.PeerFeedback, error) {
	if p == nil || p.FromUserID == nil {
		return nil, errors.New("peer feedback requires an author")
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `INSERT INTO peer_feedback (from_user_id, to_user_id, strengths, areas_to_improve, sentiment, is_anonymous, created_at) VALUES (?,?,?,?,?,?,?)`,
		*p.FromUserID, p.ToUserID, p.Strengths, p.AreasToImprove, string(p.Sentiment), p.IsAnonymous, p.CreatedAt)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

// ListGiven returns peer feedback written by userID, newest first.
func (r *PeerFeedbackRepository) ListGiven(ctx context.Context, userID int64) ([]models.PeerFeedback, error) {
	return r.list(ctx, `WHERE from_user_id = ?`, userID)
}

// ListReceived returns peer feedback addressed to userID, newest first, authors included.
func (r *PeerFeedbackRepository) ListReceived(ctx context.Context, userID int64) ([]models.PeerFeedback, error) {
	return r.list(ctx, `WHERE to_user_id = ?`, userID)
}

func (r *PeerFeedbackRepository) list(ctx context.Context, where string, args ...any) ([]models.PeerFeedback, error) {
	ctx, cancel := context.WithTimeout(ctx, longTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT id, from_user_id, to_user_id, strengths, areas_to_improve, sentiment, is_anonymous, created_at FROM peer_feedback `+
		where+` ORDER BY created_at DESC, id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.PeerFeedback{}
	for rows.Next() {
		var p models.PeerFeedback
		var from int64
		var sentiment string
		if err := rows.Scan(&p.ID, &from, &p.ToUserID, &p.Strengths, &p.AreasToImprove, &sentiment, &p.IsAnonymous, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.FromUserID = &from
		p.Sentiment = models.Sentiment(sentiment)
		out = append(out, p)
	}
	return out, rows.Err()
}
