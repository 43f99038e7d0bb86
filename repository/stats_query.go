package repository

import (
	"context"
	"time"

	"feedbackManagement/models"
)

// StatsQuery holds the read-only aggregate queries behind the dashboards.
type StatsQuery struct {
	db DBTX
}

// NewStatsQuery creates a new StatsQuery.
func NewStatsQuery(db DBTX) *StatsQuery {
	return &StatsQuery{db: db}
}

// SentimentCounts is the number of feedback items per sentiment plus how many were acknowledged.
type SentimentCounts struct {
	BySentiment  map[models.Sentiment]int
	Acknowledged int
}

// MemberFeedbackCount is the feedback received by one team member.
type MemberFeedbackCount struct {
	UserID        int64  `json:"user_id"`
	Name          string `json:"name"`
	FeedbackCount int    `json:"feedback_count"`
}

// SentimentPoint is a single feedback item reduced to what trend charts need.
type SentimentPoint struct {
	CreatedAt time.Time
	Sentiment models.Sentiment
}

// CountsByManager counts feedback authored by managerID.
func (q *StatsQuery) CountsByManager(ctx context.Context, managerID int64) (SentimentCounts, error) {
	return q.counts(ctx, `WHERE manager_id = ?`, managerID)
}

// CountsByManagerForEmployee counts feedback managerID authored for employeeID.
func (q *StatsQuery) CountsByManagerForEmployee(ctx context.Context, managerID, employeeID int64) (SentimentCounts, error) {
	return q.counts(ctx, `WHERE manager_id = ? AND employee_id = ?`, managerID, employeeID)
}

func (q *StatsQuery) counts(ctx context.Context, where string, args ...any) (SentimentCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, longTimeout)
	defer cancel()
	out := SentimentCounts{BySentiment: map[models.Sentiment]int{}}
	rows, err := q.db.QueryContext(ctx, `SELECT sentiment, COUNT(*), COALESCE(SUM(CASE WHEN acknowledged THEN 1 ELSE 0 END), 0) FROM feedback `+where+` GROUP BY sentiment`, args...)
	if err != nil {
		return out, err
	}
	defer rows.Close()
	for rows.Next() {
		var sentiment string
		var n, acked int
		if err := rows.Scan(&sentiment, &n, &acked); err != nil {
			return out, err
		}
		out.BySentiment[models.Sentiment(sentiment)] = n
		out.Acknowledged += acked
	}
	return out, rows.Err()
}

// TeamFeedbackCounts returns, for each member of managerID's team, how much feedback they have received.
func (q *StatsQuery) TeamFeedbackCounts(ctx context.Context, managerID int64) ([]MemberFeedbackCount, error) {
	ctx, cancel := context.WithTimeout(ctx, longTimeout)
	defer cancel()
	rows, err := q.db.QueryContext(ctx, `
SELECT u.id, u.name, COUNT(f.id)
FROM users u
LEFT JOIN feedback f ON f.employee_id = u.id
WHERE u.manager_id = ?
GROUP BY u.id, u.name
ORDER BY u.name, u.id`, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []MemberFeedbackCount{}
	for rows.Next() {
		var m MemberFeedbackCount
		if err := rows.Scan(&m.UserID, &m.Name, &m.FeedbackCount); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// TeamFeedbackBetween returns feedback received by managerID's team members created in [from, to).
func (q *StatsQuery) TeamFeedbackBetween(ctx context.Context, managerID int64, from, to time.Time) ([]SentimentPoint, error) {
	ctx, cancel := context.WithTimeout(ctx, longTimeout)
	defer cancel()
	rows, err := q.db.QueryContext(ctx, `
SELECT f.created_at, f.sentiment
FROM feedback f
JOIN users u ON u.id = f.employee_id
WHERE u.manager_id = ? AND f.created_at >= ? AND f.created_at < ?
ORDER BY f.created_at`, managerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []SentimentPoint{}
	for rows.Next() {
		var p SentimentPoint
		var sentiment string
		if err := rows.Scan(&p.CreatedAt, &sentiment); err != nil {
			return nil, err
		}
		p.Sentiment = models.Sentiment(sentiment)
		out = append(out, p)
	}
	return out, rows.Err()
}
