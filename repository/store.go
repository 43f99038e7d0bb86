package repository

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx. Repositories are built over the
// handle of the request they serve, normally a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store bundles every repository over a single handle.
type Store struct {
	Users         *UserRepository
	Feedback      *FeedbackRepository
	Tags          *TagRepository
	Requests      *RequestRepository
	Peer          *PeerFeedbackRepository
	Comments      *CommentRepository
	Notifications *NotificationRepository
	Stats         *StatsQuery
}

// New returns a Store whose repositories all run on q.
func New(q DBTX) *Store {
	return &Store{
		Users:         NewUserRepository(q),
		Feedback:      NewFeedbackRepository(q),
		Tags:          NewTagRepository(q),
		Requests:      NewRequestRepository(q),
		Peer:          NewPeerFeedbackRepository(q),
		Comments:      NewCommentRepository(q),
		Notifications: NewNotificationRepository(q),
		Stats:         NewStatsQuery(q),
	}
}

const (
	shortTimeout = 3 * time.Second
	longTimeout  = 5 * time.Second
)
