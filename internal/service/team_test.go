package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedbackManagement/internal/apperr"
	"feedbackManagement/models"
)

func TestTeamManagement(t *testing.T) {
	f := newFixture(t)
	m1 := f.user(t, "maria", models.RoleManager, nil)
	m2 := f.user(t, "mario", models.RoleManager, nil)
	e := f.user(t, "erik", models.RoleEmployee, nil)

	avail, err := f.svc.ListAvailableEmployees(ctx(), m1)
	require.NoError(t, err)
	require.Len(t, avail, 1)

	_, err = f.svc.ListTeam(ctx(), e)
	requireKind(t, err, apperr.ErrForbidden)

	_, err = f.svc.MyManager(ctx(), e)
	requireKind(t, err, apperr.ErrNotFound)

	added, err := f.svc.AddTeamMember(ctx(), m1, e.UserID)
	require.NoError(t, err)
	assert.True(t, added.ReportsTo(m1.UserID))

	_, err = f.svc.AddTeamMember(ctx(), m1, e.UserID)
	requireKind(t, err, apperr.ErrConflict)
	_, err = f.svc.AddTeamMember(ctx(), m2, e.UserID)
	requireKind(t, err, apperr.ErrConflict)
	_, err = f.svc.AddTeamMember(ctx(), m1, m2.UserID)
	requireKind(t, err, apperr.ErrValidation)
	_, err = f.svc.AddTeamMember(ctx(), m1, 9999)
	requireKind(t, err, apperr.ErrNotFound)

	team, err := f.svc.ListTeam(ctx(), m1)
	require.NoError(t, err)
	require.Len(t, team, 1)

	mgr, err := f.svc.MyManager(ctx(), e)
	require.NoError(t, err)
	assert.Equal(t, m1.UserID, mgr.ID)

	requireKind(t, f.svc.RemoveTeamMember(ctx(), m2, e.UserID), apperr.ErrNotFoundOrForbidden)
	require.NoError(t, f.svc.RemoveTeamMember(ctx(), m1, e.UserID))
	team, err = f.svc.ListTeam(ctx(), m1)
	require.NoError(t, err)
	assert.Empty(t, team)

	notes, err := f.svc.ListNotifications(ctx(), e)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotifyTeam, notes[0].Type)
}
