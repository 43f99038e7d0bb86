package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedbackManagement/models"
)

func TestRequestRepository_Lifecycle(t *testing.T) {
	s := New(openTestDB(t, "requestrepo"))
	ctx := context.Background()
	mgr := mustUser(t, s, "maria", models.RoleManager, nil)
	emp := mustUser(t, s, "erik", models.RoleEmployee, &mgr.ID)

	msg := "please review Q3"
	r, err := s.Requests.Create(ctx, &models.FeedbackRequest{RequesterID: emp.ID, TargetID: mgr.ID, Message: &msg, CreatedAt: t0})
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, r.Status)
	require.NotNil(t, r.Message)
	assert.Equal(t, msg, *r.Message)
	assert.Equal(t, "erik", r.RequesterName)
	assert.Equal(t, "maria", r.TargetName)

	_, err = s.Requests.Create(ctx, &models.FeedbackRequest{RequesterID: emp.ID, TargetID: mgr.ID, CreatedAt: t0.Add(time.Minute)})
	require.NoError(t, err)

	pending, err := s.Requests.CountPending(ctx, mgr.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, pending)

	require.NoError(t, s.Requests.UpdateStatus(ctx, r.ID, models.RequestRejected, t0.Add(time.Hour)))
	got, err := s.Requests.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, got.Status)

	made, err := s.Requests.ListByRequester(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, made, 2)
	assert.Nil(t, made[0].Message, "newest first, message optional")

	received, err := s.Requests.ListByTarget(ctx, mgr.ID)
	require.NoError(t, err)
	assert.Len(t, received, 2)

	assert.ErrorIs(t, s.Requests.UpdateStatus(ctx, 999, models.RequestCompleted, t0), sql.ErrNoRows)
	missing, err := s.Requests.GetByID(ctx, 999)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPeerFeedbackRepository_KeepsAuthor(t *testing.T) {
	s := New(openTestDB(t, "peerrepo"))
	ctx := context.Background()
	a := mustUser(t, s, "ann", models.RoleEmployee, nil)
	b := mustUser(t, s, "ben", models.RoleEmployee, nil)

	_, err := s.Peer.Create(ctx, &models.PeerFeedback{FromUserID: &a.ID, ToUserID: b.ID, Strengths: "s", AreasToImprove: "a", Sentiment: models.SentimentPositive, IsAnonymous: true, CreatedAt: t0})
	require.NoError(t, err)

	received, err := s.Peer.ListReceived(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	require.NotNil(t, received[0].FromUserID)
	assert.Equal(t, a.ID, *received[0].FromUserID)
	assert.True(t, received[0].IsAnonymous)
	assert.Nil(t, received[0].Anonymized().FromUserID)

	given, err := s.Peer.ListGiven(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, given, 1)

	_, err = s.Peer.Create(ctx, &models.PeerFeedback{ToUserID: b.ID})
	assert.Error(t, err)
}

func TestCommentRepository_OrderedWithAuthors(t *testing.T) {
	s := New(openTestDB(t, "commentrepo"))
	ctx := context.Background()
	mgr := mustUser(t, s, "maria", models.RoleManager, nil)
	emp := mustUser(t, s, "erik", models.RoleEmployee, &mgr.ID)
	f := mustFeedback(t, s, mgr.ID, emp.ID, models.SentimentPositive, t0)

	_, err := s.Comments.Create(ctx, &models.Comment{FeedbackID: f.ID, UserID: emp.ID, Content: "thanks", CreatedAt: t0.Add(time.Minute)})
	require.NoError(t, err)
	_, err = s.Comments.Create(ctx, &models.Comment{FeedbackID: f.ID, UserID: mgr.ID, Content: "**welcome**", CreatedAt: t0.Add(2 * time.Minute)})
	require.NoError(t, err)

	list, err := s.Comments.ListByFeedback(ctx, f.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "thanks", list[0].Content)
	assert.Equal(t, "erik", list[0].AuthorName)
	assert.Equal(t, "maria", list[1].AuthorName)
}

func TestNotificationRepository_OwnershipAndPurge(t *testing.T) {
	s := New(openTestDB(t, "notifrepo"))
	ctx := context.Background()
	a := mustUser(t, s, "ann", models.RoleEmployee, nil)
	b := mustUser(t, s, "ben", models.RoleEmployee, nil)

	n1, err := s.Notifications.Create(ctx, &models.Notification{UserID: a.ID, Message: "one", Type: models.NotifyFeedback, CreatedAt: t0})
	require.NoError(t, err)
	_, err = s.Notifications.Create(ctx, &models.Notification{UserID: a.ID, Message: "two", Type: models.NotifyComment, CreatedAt: t0.Add(time.Minute)})
	require.NoError(t, err)
	_, err = s.Notifications.Create(ctx, &models.Notification{UserID: b.ID, Message: "other", Type: models.NotifyComment, CreatedAt: t0})
	require.NoError(t, err)

	list, err := s.Notifications.ListByUser(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "two", list[0].Message)

	assert.ErrorIs(t, s.Notifications.MarkRead(ctx, n1.ID, b.ID), sql.ErrNoRows)
	foreign, err := s.Notifications.GetForUser(ctx, n1.ID, b.ID)
	require.NoError(t, err)
	assert.Nil(t, foreign)

	require.NoError(t, s.Notifications.MarkRead(ctx, n1.ID, a.ID))
	own, err := s.Notifications.GetForUser(ctx, n1.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, own.Read)

	removed, err := s.Notifications.DeleteByUser(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	left, err := s.Notifications.ListByUser(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, left, 1)
}
