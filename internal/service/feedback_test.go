package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedbackManagement/internal/apperr"
	"feedbackManagement/internal/auth"
	"feedbackManagement/internal/stats"
	"feedbackManagement/models"
)

func TestCreateAcknowledgeOverview(t *testing.T) {
	f := newFixture(t)
	m := f.user(t, "maria", models.RoleManager, nil)
	e := f.user(t, "erik", models.RoleEmployee, &m.UserID)

	fb, err := f.svc.CreateFeedback(ctx(), m, e.UserID, positive("ships", "docs"))
	require.NoError(t, err)
	assert.Equal(t, m.UserID, fb.ManagerID)

	timeline, err := f.svc.EmployeeTimeline(ctx(), e)
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	assert.False(t, timeline[0].Acknowledged)
	assert.Equal(t, "maria", timeline[0].ManagerName)

	_, err = f.svc.AcknowledgeFeedback(ctx(), e, fb.ID)
	require.NoError(t, err)
	timeline, err = f.svc.EmployeeTimeline(ctx(), e)
	require.NoError(t, err)
	assert.True(t, timeline[0].Acknowledged)

	ov, err := f.svc.ManagerOverview(ctx(), m)
	require.NoError(t, err)
	assert.Equal(t, 1, ov.Total)
	assert.Equal(t, 100.0, ov.Percentages[models.SentimentPositive])
	assert.Equal(t, 0.0, ov.Percentages[models.SentimentNeutral])
	assert.Equal(t, 0.0, ov.Percentages[models.SentimentNegative])
	assert.Equal(t, 1, ov.AcknowledgedCount)
	assert.Equal(t, 1, ov.TeamSize)
	assert.Equal(t, 1, ov.TeamFeedbackCounts[e.UserID].FeedbackCount)
}

func TestCreateFeedback_SideEffects(t *testing.T) {
	f := newFixture(t)
	m := f.user(t, "maria", models.RoleManager, nil)
	e := f.user(t, "erik", models.RoleEmployee, &m.UserID)

	_, err := f.svc.CreateFeedback(ctx(), m, e.UserID, positive("ships", "docs"))
	require.NoError(t, err)

	notes, err := f.svc.ListNotifications(ctx(), e)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotifyFeedback, notes[0].Type)
	assert.Contains(t, notes[0].Message, "maria")

	sent := f.mailer.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "erik@example.com", sent[0].to)
	assert.Contains(t, sent[0].html, "<strong>maria</strong>")
}

func TestCreateFeedback_Rules(t *testing.T) {
	f := newFixture(t)
	m := f.user(t, "maria", models.RoleManager, nil)
	outsider := f.user(t, "olga", models.RoleEmployee, nil)

	_, err := f.svc.CreateFeedback(ctx(), outsider, m.UserID, positive("a", "b"))
	requireKind(t, err, apperr.ErrForbidden)

	_, err = f.svc.CreateFeedback(ctx(), m, 9999, positive("a", "b"))
	requireKind(t, err, apperr.ErrNotFound)

	_, err = f.svc.CreateFeedback(ctx(), m, outsider.UserID, models.FeedbackContent{Strengths: "a", AreasToImprove: "b", Sentiment: "great"})
	requireKind(t, err, apperr.ErrValidation)

	_, err = f.svc.CreateFeedback(ctx(), m, outsider.UserID, models.FeedbackContent{Strengths: " ", AreasToImprove: "b", Sentiment: models.SentimentNeutral})
	requireKind(t, err, apperr.ErrValidation)

	// Team membership is not checked by default.
	_, err = f.svc.CreateFeedback(ctx(), m, outsider.UserID, positive("a", "b"))
	require.NoError(t, err)
}

func TestCreateFeedback_RequireTeamMember(t *testing.T) {
	f := newFixture(t, func(d *Deps) { d.RequireTeamMember = true })
	m := f.user(t, "maria", models.RoleManager, nil)
	mine := f.user(t, "erik", models.RoleEmployee, &m.UserID)
	outsider := f.user(t, "olga", models.RoleEmployee, nil)

	_, err := f.svc.CreateFeedback(ctx(), m, outsider.UserID, positive("a", "b"))
	requireKind(t, err, apperr.ErrNotFoundOrForbidden)
	_, err = f.svc.CreateFeedback(ctx(), m, mine.UserID, positive("a", "b"))
	require.NoError(t, err)
}

func TestUpdateFeedback_OnlyAuthor(t *testing.T) {
	f := newFixture(t)
	m1 := f.user(t, "maria", models.RoleManager, nil)
	m2 := f.user(t, "mario", models.RoleManager, nil)
	e := f.user(t, "erik", models.RoleEmployee, &m1.UserID)
	fb, err := f.svc.CreateFeedback(ctx(), m1, e.UserID, positive("ships", "docs"))
	require.NoError(t, err)

	neg := models.SentimentNegative
	text := "tests"
	patch := models.FeedbackPatch{Sentiment: &neg, AreasToImprove: &text}

	_, err = f.svc.UpdateFeedback(ctx(), m2, fb.ID, patch)
	requireKind(t, err, apperr.ErrNotFoundOrForbidden)
	// The target employee fails the role check before ownership is looked up.
	_, err = f.svc.UpdateFeedback(ctx(), e, fb.ID, patch)
	requireKind(t, err, apperr.ErrForbidden)
	// A manager-role impostor with the employee's id is still not the author.
	_, err = f.svc.UpdateFeedback(ctx(), auth.Identity{UserID: e.UserID, Role: models.RoleManager}, fb.ID, patch)
	requireKind(t, err, apperr.ErrNotFoundOrForbidden)
	_, err = f.svc.UpdateFeedback(ctx(), m1, 9999, patch)
	requireKind(t, err, apperr.ErrNotFoundOrForbidden)

	bad := models.Sentiment("meh")
	_, err = f.svc.UpdateFeedback(ctx(), m1, fb.ID, models.FeedbackPatch{Sentiment: &bad})
	requireKind(t, err, apperr.ErrValidation)

	updated, err := f.svc.UpdateFeedback(ctx(), m1, fb.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, models.SentimentNegative, updated.Sentiment)
	assert.Equal(t, "tests", updated.AreasToImprove)
	assert.Equal(t, "ships", updated.Strengths)

	got, err := f.svc.GetFeedback(ctx(), e, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SentimentNegative, got.Sentiment)
	_, err = f.svc.GetFeedback(ctx(), m2, fb.ID)
	requireKind(t, err, apperr.ErrNotFoundOrForbidden)
}

func TestAcknowledgeFeedback_OnlyTargetAndIdempotent(t *testing.T) {
	f := newFixture(t)
	m := f.user(t, "maria", models.RoleManager, nil)
	e := f.user(t, "erik", models.RoleEmployee, &m.UserID)
	other := f.user(t, "emma", models.RoleEmployee, &m.UserID)
	fb, err := f.svc.CreateFeedback(ctx(), m, e.UserID, positive("ships", "docs"))
	require.NoError(t, err)

	_, err = f.svc.AcknowledgeFeedback(ctx(), other, fb.ID)
	requireKind(t, err, apperr.ErrNotFoundOrForbidden)
	_, err = f.svc.AcknowledgeFeedback(ctx(), m, fb.ID)
	requireKind(t, err, apperr.ErrForbidden)

	for i := 0; i < 2; i++ {
		got, err := f.svc.AcknowledgeFeedback(ctx(), e, fb.ID)
		require.NoError(t, err)
		assert.True(t, got.Acknowledged)
	}
}

func TestListFeedbackForManager(t *testing.T) {
	f := newFixture(t)
	m := f.user(t, "maria", models.RoleManager, nil)
	e := f.user(t, "erik", models.RoleEmployee, &m.UserID)
	first, err := f.svc.CreateFeedback(ctx(), m, e.UserID, positive("one", "a"))
	require.NoError(t, err)
	second, err := f.svc.CreateFeedback(ctx(), m, e.UserID, positive("two", "b"))
	require.NoError(t, err)

	list, err := f.svc.ListFeedbackForManager(ctx(), m)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, "erik@example.com", list[0].EmployeeEmail)

	_, err = f.svc.ListFeedbackForManager(ctx(), e)
	requireKind(t, err, apperr.ErrForbidden)
	_, err = f.svc.ListFeedbackForEmployee(ctx(), m)
	requireKind(t, err, apperr.ErrForbidden)
}

func TestOverview_EmptyHasZeroPercentages(t *testing.T) {
	f := newFixture(t)
	m := f.user(t, "maria", models.RoleManager, nil)
	ov, err := f.svc.ManagerOverview(ctx(), m)
	require.NoError(t, err)
	assert.Equal(t, 0, ov.Total)
	for _, s := range models.Sentiments {
		assert.Equal(t, 0.0, ov.Percentages[s])
	}
	assert.Equal(t, stats.NewBreakdown(nil), ov.Breakdown)
}
