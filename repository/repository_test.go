package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"feedbackManagement/internal/db"
	"feedbackManagement/models"
)

var t0 = time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func mustUser(t *testing.T, s *Store, name string, role models.Role, managerID *int64) *models.User {
	t.Helper()
	u, err := s.Users.Create(context.Background(), &models.User{
		Name: name, Email: name + "@example.com", PasswordHash: "h", Role: role, ManagerID: managerID,
	})
	require.NoError(t, err)
	return u
}

func mustFeedback(t *testing.T, s *Store, managerID, employeeID int64, sentiment models.Sentiment, at time.Time) *models.Feedback {
	t.Helper()
	f, err := s.Feedback.Create(context.Background(), &models.Feedback{
		ManagerID: managerID, EmployeeID: employeeID,
		Strengths: "ships", AreasToImprove: "docs", Sentiment: sentiment, CreatedAt: at,
	})
	require.NoError(t, err)
	return f
}
