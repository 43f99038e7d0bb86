package service

import (
	"context"
	"fmt"
	"strings"

	"feedbackManagement/internal/apperr"
	"feedbackManagement/internal/auth"
	"feedbackManagement/models"
	"feedbackManagement/repository"
)

// CreateComment adds a markdown comment to a feedback item. The author and
// target of the feedback are notified unless they wrote the comment.
func (s *Service) CreateComment(ctx context.Context, caller auth.Identity, feedbackID int64, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("Comment content cannot be empty")
	}
	var (
		c  *models.Comment
		fb *models.Feedback
	)
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		fb, err = st.Feedback.GetByID(ctx, feedbackID)
		if err != nil {
			return wrap("get feedback", err)
		}
		if fb == nil {
			return apperr.NotFound("Feedback not found")
		}
		c, err = st.Comments.Create(ctx, &models.Comment{
			FeedbackID: fb.ID, UserID: caller.UserID, Content: content, CreatedAt: s.now(),
		})
		return wrap("create comment", err)
	})
	if err != nil {
		return nil, err
	}
	c.AuthorName = caller.Name
	c.ContentHTML = s.md.MustHTML(c.Content)

	msg := fmt.Sprintf("%s commented on feedback #%d", caller.Name, fb.ID)
	for _, uid := range []int64{fb.ManagerID, fb.EmployeeID} {
		if uid != caller.UserID {
			s.notify(ctx, uid, models.NotifyComment, msg)
		}
	}
	return c, nil
}

// ListComments returns the comments on a feedback item, oldest first.
func (s *Service) ListComments(ctx context.Context, caller auth.Identity, feedbackID int64) ([]models.Comment, error) {
	var out []models.Comment
	err := s.inTx(ctx, func(st *repository.Store) error {
		fb, err := st.Feedback.GetByID(ctx, feedbackID)
		if err != nil {
			return wrap("get feedback", err)
		}
		if fb == nil {
			return apperr.NotFound("Feedback not found")
		}
		out, err = st.Comments.ListByFeedback(ctx, fb.ID)
		return wrap("list comments", err)
	})
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].ContentHTML = s.md.MustHTML(out[i].Content)
	}
	return out, nil
}
