// Package service implements the feedback operations. Every call runs inside
// its own database transaction; role checks come first, ownership checks are
// made against rows read in that transaction.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"feedbackManagement/internal/auth"
	"feedbackManagement/internal/db"
	"feedbackManagement/internal/markdown"
	"feedbackManagement/models"
	"feedbackManagement/repository"
)

// Mailer schedules an email without waiting for delivery.
type Mailer interface {
	SendAsync(to, subject, html string)
}

type nopMailer struct{}

func (nopMailer) SendAsync(string, string, string) {}

// Deps are the collaborators of a Service. Only DB and Codec are required.
type Deps struct {
	DB       *sql.DB
	Codec    *auth.TokenCodec
	Mailer   Mailer
	Markdown *markdown.Renderer
	Log      zerolog.Logger
	Now      func() time.Time

	// RequireTeamMember restricts feedback creation to the manager's own reports.
	RequireTeamMember bool
}

type Service struct {
	db    *sql.DB
	codec *auth.TokenCodec
	mail  Mailer
	md    *markdown.Renderer
	log   zerolog.Logger
	clock func() time.Time

	requireTeamMember bool
}

func New(d Deps) *Service {
	if d.DB == nil || d.Codec == nil {
		panic("service: DB and Codec are required")
	}
	s := &Service{
		db:                d.DB,
		codec:             d.Codec,
		mail:              d.Mailer,
		md:                d.Markdown,
		log:               d.Log,
		clock:             d.Now,
		requireTeamMember: d.RequireTeamMember,
	}
	if s.mail == nil {
		s.mail = nopMailer{}
	}
	if s.md == nil {
		s.md = markdown.NewRenderer()
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return s
}

// Gate returns an authorization gate backed by the service's database.
func (s *Service) Gate() *auth.Gate {
	return auth.NewGate(s.codec, repository.NewUserRepository(s.db))
}

func (s *Service) now() time.Time { return s.clock().UTC() }

func (s *Service) inTx(ctx context.Context, fn func(st *repository.Store) error) error {
	return db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(repository.New(tx))
	})
}

// notify stores an in-app notification after the originating transaction has
// committed. Failures are logged and do not affect the caller.
func (s *Service) notify(ctx context.Context, userID int64, typ, message string) {
	err := s.inTx(ctx, func(st *repository.Store) error {
		_, err := st.Notifications.Create(ctx, &models.Notification{
			UserID: userID, Message: message, Type: typ, CreatedAt: s.now(),
		})
		return err
	})
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", userID).Str("type", typ).Msg("create notification")
	}
}

// email renders a markdown body and hands it to the mailer.
func (s *Service) email(to, subject, body string) {
	if to == "" {
		return
	}
	s.mail.SendAsync(to, subject, s.md.MustHTML(body))
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
