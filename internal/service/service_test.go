package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"feedbackManagement/internal/auth"
	"feedbackManagement/internal/testutil"
	"feedbackManagement/models"
	"feedbackManagement/repository"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type sentMail struct{ to, subject, html string }

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recordingMailer) SendAsync(to, subject, html string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to, subject, html})
}

func (m *recordingMailer) all() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

type fixture struct {
	svc    *Service
	db     *sql.DB
	mailer *recordingMailer
}

func newFixture(t *testing.T, opts ...func(*Deps)) *fixture {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, t.Name())
	m := &recordingMailer{}
	deps := Deps{
		DB:     d,
		Codec:  auth.NewTokenCodec(testutil.TestSecret, time.Hour),
		Mailer: m,
		Now:    func() time.Time { return fixedNow },
	}
	for _, o := range opts {
		o(&deps)
	}
	return &fixture{svc: New(deps), db: d, mailer: m}
}

func (f *fixture) user(t *testing.T, name string, role models.Role, managerID *int64) auth.Identity {
	t.Helper()
	return auth.IdentityOf(testutil.CreateUser(t, f.db, name, role, managerID))
}

func (f *fixture) store() *repository.Store {
	return repository.New(f.db)
}

func positive(s, a string) models.FeedbackContent {
	return models.FeedbackContent{Strengths: s, AreasToImprove: a, Sentiment: models.SentimentPositive}
}

func ctx() context.Context { return context.Background() }

func requireKind(t *testing.T, err error, kind error) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, kind)
}
