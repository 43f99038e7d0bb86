package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedbackManagement/internal/auth"
	"feedbackManagement/internal/db"
	"feedbackManagement/internal/service"
	"feedbackManagement/internal/testutil"
	"feedbackManagement/models"
)

func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	var out bytes.Buffer
	code := Execute(args, &out)
	return out.String(), code
}

// seed creates a manager and an employee with one feedback item from the manager.
func seed(t *testing.T, path string) (mgr, emp *models.User, fb *models.Feedback) {
	t.Helper()
	d, err := db.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	mgr = testutil.CreateUser(t, d, "mgr", models.RoleManager, nil)
	emp = testutil.CreateUser(t, d, "emp", models.RoleEmployee, &mgr.ID)
	svc := service.New(service.Deps{DB: d, Codec: auth.NewTokenCodec(testutil.TestSecret, time.Hour)})
	fb, err = svc.CreateFeedback(context.Background(), auth.IdentityOf(mgr), emp.ID, models.FeedbackContent{
		Strengths: "Thorough code reviews", AreasToImprove: "Speaking up in planning", Sentiment: models.SentimentPositive,
	})
	require.NoError(t, err)
	return mgr, emp, fb
}

func commentAs(t *testing.T, path string, u *models.User, feedbackID int64, content string) (*models.Comment, error) {
	t.Helper()
	d, err := db.Open(path)
	require.NoError(t, err)
	defer d.Close()
	svc := service.New(service.Deps{DB: d, Codec: auth.NewTokenCodec(testutil.TestSecret, time.Hour)})
	return svc.CreateComment(context.Background(), auth.IdentityOf(u), feedbackID, content)
}

func TestMigrateAndRollback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fb.db")

	out, code := run(t, "--db", path, "migrate")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "APPLIED 0001")
	assert.Contains(t, out, "APPLIED 0003")

	out, code = run(t, "--db", path, "migrate")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "schema is up to date")

	out, code = run(t, "--db", path, "rollback")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "ROLLED BACK 0003")

	out, code = run(t, "--db", path, "migrate")
	require.Equal(t, 0, code, out)
	assert.Equal(t, "APPLIED 0003\n", out)
}

func TestPurgeNotifications(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fb.db")
	_, emp, _ := seed(t, path)

	out, code := run(t, "--db", path, "purge-notifications", "--user", itoa(emp.ID))
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "PURGED 1 notification(s)")

	out, code = run(t, "--db", path, "purge-notifications", "--user", itoa(emp.ID))
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "PURGED 0 notification(s)")
}

func TestExportPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fb.db")
	mgr, emp, _ := seed(t, path)
	pdfPath := filepath.Join(dir, "report.pdf")

	out, code := run(t, "--db", path, "export-pdf", "--employee", itoa(emp.ID), "--out", pdfPath)
	require.Equal(t, 0, code, out)
	raw, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	out, code = run(t, "--db", path, "export-pdf", "--employee", itoa(mgr.ID), "--out", filepath.Join(dir, "mgr.pdf"))
	assert.Equal(t, 1, code)
	_, err = os.Stat(filepath.Join(dir, "mgr.pdf"))
	assert.True(t, os.IsNotExist(err), out)
}

func TestShowFeedback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fb.db")
	_, emp, fb := seed(t, path)

	_, err := commentAs(t, path, emp, fb.ID, "Thanks, will do.")
	require.NoError(t, err)

	out, code := run(t, "--db", path, "show-feedback", itoa(fb.ID))
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Thorough code reviews")
	assert.Contains(t, out, "Thanks, will do.")
	assert.Contains(t, out, "mgr")

	out, code = run(t, "--db", path, "show-feedback", "999")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "feedback 999 not found")
}

func TestRequiredFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fb.db")
	for _, cmd := range []string{"purge-notifications", "export-pdf"} {
		out, code := run(t, "--db", path, cmd)
		assert.Equal(t, 1, code, cmd)
		assert.Contains(t, out, "ERROR:", cmd)
	}
}

func TestFeedbackMarkdown(t *testing.T) {
	f := &models.Feedback{
		ID: 7, Strengths: "Calm", AreasToImprove: "Docs", Sentiment: models.SentimentNeutral,
		Acknowledged: true, Tags: []models.Tag{{Name: "q3"}},
	}
	md := feedbackMarkdown(f, "Mia", "Sam", nil)
	assert.Contains(t, md, "# Feedback #7")
	assert.Contains(t, md, "Mia for Sam")
	assert.Contains(t, md, "neutral, acknowledged")
	assert.Contains(t, md, "Tags: `q3`")
	assert.Contains(t, md, "_No comments yet._")
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
