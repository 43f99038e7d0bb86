package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedbackManagement/internal/apperr"
	"feedbackManagement/internal/testutil"
	"feedbackManagement/models"
)

func TestFeedbackRequestLifecycle(t *testing.T) {
	f := newFixture(t)
	m := f.user(t, "maria", models.RoleManager, nil)
	m2 := f.user(t, "mario", models.RoleManager, nil)
	e1 := f.user(t, "erik", models.RoleEmployee, &m.UserID)
	e2 := f.user(t, "emma", models.RoleEmployee, &m.UserID)

	req, err := f.svc.CreateFeedbackRequest(ctx(), e1, m.UserID, testutil.Ptr("please review Q3"))
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, req.Status)
	require.NotNil(t, req.Message)
	assert.Equal(t, "please review Q3", *req.Message)

	received, err := f.svc.ListRequestsReceived(ctx(), m)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "erik", received[0].RequesterName)

	rejected, err := f.svc.UpdateRequestStatus(ctx(), m, req.ID, models.RequestRejected)
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, rejected.Status)

	_, err = f.svc.UpdateRequestStatus(ctx(), m2, req.ID, models.RequestCompleted)
	requireKind(t, err, apperr.ErrNotFoundOrForbidden)

	_, err = f.svc.UpdateRequestStatus(ctx(), m, req.ID, models.RequestCompleted)
	requireKind(t, err, apperr.ErrConflict)

	_, err = f.svc.UpdateRequestStatus(ctx(), m, req.ID, models.RequestPending)
	requireKind(t, err, apperr.ErrValidation)

	made, err := f.svc.ListRequestsMade(ctx(), e1)
	require.NoError(t, err)
	require.Len(t, made, 1)
	assert.Equal(t, models.RequestRejected, made[0].Status)

	requesterNotes, err := f.svc.ListNotifications(ctx(), e1)
	require.NoError(t, err)
	require.Len(t, requesterNotes, 1)
	assert.Equal(t, models.NotifyRequestStatus, requesterNotes[0].Type)

	_, err = f.svc.CreateFeedbackRequest(ctx(), e1, e2.UserID, nil)
	requireKind(t, err, apperr.ErrValidation)
	_, err = f.svc.CreateFeedbackRequest(ctx(), e1, 9999, nil)
	requireKind(t, err, apperr.ErrNotFound)
	_, err = f.svc.CreateFeedbackRequest(ctx(), m2, m.UserID, nil)
	requireKind(t, err, apperr.ErrForbidden)
}

func TestAnonymousPeerFeedback(t *testing.T) {
	f := newFixture(t)
	e2 := f.user(t, "emma", models.RoleEmployee, nil)
	e3 := f.user(t, "eric", models.RoleEmployee, nil)

	given, err := f.svc.CreatePeerFeedback(ctx(), e2, e3.UserID, positive("helpful", "focus"), true)
	require.NoError(t, err)
	require.NotNil(t, given.FromUserID)

	_, err = f.svc.CreatePeerFeedback(ctx(), e2, e3.UserID, positive("named", "x"), false)
	require.NoError(t, err)

	received, err := f.svc.ListPeerReceived(ctx(), e3)
	require.NoError(t, err)
	require.Len(t, received, 2)
	for _, p := range received {
		if p.IsAnonymous {
			assert.Nil(t, p.FromUserID)
		} else {
			require.NotNil(t, p.FromUserID)
			assert.Equal(t, e2.UserID, *p.FromUserID)
		}
	}

	mine, err := f.svc.ListPeerGiven(ctx(), e2)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, p := range mine {
		require.NotNil(t, p.FromUserID)
		assert.Equal(t, e2.UserID, *p.FromUserID)
	}

	notes, err := f.svc.ListNotifications(ctx(), e3)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.NotContains(t, notes[1].Message, "emma", "anonymous notification must not name the author")

	_, err = f.svc.CreatePeerFeedback(ctx(), e2, e2.UserID, positive("a", "b"), false)
	requireKind(t, err, apperr.ErrValidation)
	_, err = f.svc.CreatePeerFeedback(ctx(), e2, 9999, positive("a", "b"), false)
	requireKind(t, err, apperr.ErrNotFound)
}

func TestComments(t *testing.T) {
	f := newFixture(t)
	m := f.user(t, "maria", models.RoleManager, nil)
	e := f.user(t, "erik", models.RoleEmployee, &m.UserID)
	fb, err := f.svc.CreateFeedback(ctx(), m, e.UserID, positive("a", "b"))
	require.NoError(t, err)

	c, err := f.svc.CreateComment(ctx(), e, fb.ID, "Thanks, **really** useful <script>x</script>")
	require.NoError(t, err)
	assert.Equal(t, "erik", c.AuthorName)
	assert.Contains(t, c.ContentHTML, "<strong>really</strong>")
	assert.NotContains(t, c.ContentHTML, "<script>")

	_, err = f.svc.CreateComment(ctx(), m, fb.ID, "You're welcome")
	require.NoError(t, err)

	list, err := f.svc.ListComments(ctx(), m, fb.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "erik", list[0].AuthorName)
	assert.NotEmpty(t, list[1].ContentHTML)

	_, err = f.svc.CreateComment(ctx(), e, fb.ID, "   ")
	requireKind(t, err, apperr.ErrValidation)
	_, err = f.svc.CreateComment(ctx(), e, 9999, "hi")
	requireKind(t, err, apperr.ErrNotFound)
	_, err = f.svc.ListComments(ctx(), e, 9999)
	requireKind(t, err, apperr.ErrNotFound)

	// Manager gets one comment notification; the employee gets the feedback one plus the manager's comment.
	mgrNotes, err := f.svc.ListNotifications(ctx(), m)
	require.NoError(t, err)
	assert.Len(t, mgrNotes, 1)
	empNotes, err := f.svc.ListNotifications(ctx(), e)
	require.NoError(t, err)
	assert.Len(t, empNotes, 2)
}

func TestTags_IdempotentAttachDetach(t *testing.T) {
	f := newFixture(t)
	m := f.user(t, "maria", models.RoleManager, nil)
	e := f.user(t, "erik", models.RoleEmployee, &m.UserID)
	fb, err := f.svc.CreateFeedback(ctx(), m, e.UserID, positive("a", "b"))
	require.NoError(t, err)

	tag, err := f.svc.CreateTag(ctx(), m, "  Leadership ")
	require.NoError(t, err)
	assert.Equal(t, "Leadership", tag.Name)
	_, err = f.svc.CreateTag(ctx(), m, "leadership")
	requireKind(t, err, apperr.ErrConflict)
	_, err = f.svc.CreateTag(ctx(), e, "other")
	requireKind(t, err, apperr.ErrForbidden)
	_, err = f.svc.CreateTag(ctx(), m, "")
	requireKind(t, err, apperr.ErrValidation)

	for i := 0; i < 2; i++ {
		got, err := f.svc.AttachTag(ctx(), m, fb.ID, tag.ID)
		require.NoError(t, err)
		require.Len(t, got.Tags, 1)
	}
	var n int
	require.NoError(t, f.db.QueryRow(`SELECT COUNT(*) FROM feedback_tags WHERE feedback_id = ? AND tag_id = ?`, fb.ID, tag.ID).Scan(&n))
	assert.Equal(t, 1, n)

	for i := 0; i < 2; i++ {
		got, err := f.svc.DetachTag(ctx(), m, fb.ID, tag.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Tags)
	}

	_, err = f.svc.AttachTag(ctx(), m, 9999, tag.ID)
	requireKind(t, err, apperr.ErrNotFound)
	_, err = f.svc.AttachTag(ctx(), m, fb.ID, 9999)
	requireKind(t, err, apperr.ErrNotFound)
	_, err = f.svc.AttachTag(ctx(), e, fb.ID, tag.ID)
	requireKind(t, err, apperr.ErrForbidden)

	tags, err := f.svc.ListTags(ctx(), e)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestNotifications_OwnershipAndClear(t *testing.T) {
	f := newFixture(t)
	m := f.user(t, "maria", models.RoleManager, nil)
	e := f.user(t, "erik", models.RoleEmployee, &m.UserID)
	_, err := f.svc.CreateFeedback(ctx(), m, e.UserID, positive("a", "b"))
	require.NoError(t, err)
	_, err = f.svc.CreateFeedback(ctx(), m, e.UserID, positive("c", "d"))
	require.NoError(t, err)

	notes, err := f.svc.ListNotifications(ctx(), e)
	require.NoError(t, err)
	require.Len(t, notes, 2)

	_, err = f.svc.MarkNotificationRead(ctx(), m, notes[0].ID)
	requireKind(t, err, apperr.ErrNotFound)

	read, err := f.svc.MarkNotificationRead(ctx(), e, notes[0].ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	n, err := f.svc.ClearNotifications(ctx(), e)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	notes, err = f.svc.ListNotifications(ctx(), e)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
