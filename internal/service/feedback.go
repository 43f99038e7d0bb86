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

const feedbackNotPermitted = "Feedback not found or not permitted"

func validateContent(c models.FeedbackContent) error {
	if strings.TrimSpace(c.Strengths) == "" || strings.TrimSpace(c.AreasToImprove) == "" {
		return apperr.Validation("Strengths and areas to improve are required")
	}
	if !c.Sentiment.Valid() {
		return apperr.Validation("Sentiment must be positive, neutral or negative")
	}
	return nil
}

// CreateFeedback records feedback from the calling manager for employeeID.
// The employee is notified in-app and by email once the feedback is stored.
func (s *Service) CreateFeedback(ctx context.Context, caller auth.Identity, employeeID int64, content models.FeedbackContent) (*models.Feedback, error) {
	if err := auth.RequireManager(caller); err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	var (
		fb  *models.Feedback
		emp *models.User
	)
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		emp, err = st.Users.GetByID(ctx, employeeID)
		if err != nil {
			return wrap("get employee", err)
		}
		if emp == nil {
			return apperr.NotFound("Employee not found")
		}
		if s.requireTeamMember && !emp.ReportsTo(caller.UserID) {
			return apperr.NotFoundOrForbidden("Employee not found in your team")
		}
		fb, err = st.Feedback.Create(ctx, &models.Feedback{
			ManagerID:      caller.UserID,
			EmployeeID:     emp.ID,
			Strengths:      content.Strengths,
			AreasToImprove: content.AreasToImprove,
			Sentiment:      content.Sentiment,
			CreatedAt:      s.now(),
		})
		return wrap("create feedback", err)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, emp.ID, models.NotifyFeedback, fmt.Sprintf("You received new feedback from %s", caller.Name))
	s.email(emp.Email, "New feedback received", fmt.Sprintf(
		"Hi %s,\n\n**%s** shared new feedback with you.\n\n- Sentiment: %s\n\nSign in to read and acknowledge it.",
		emp.Name, caller.Name, fb.Sentiment))
	return fb, nil
}

// GetFeedback returns a feedback item visible to the caller: its author or its target.
func (s *Service) GetFeedback(ctx context.Context, caller auth.Identity, feedbackID int64) (*models.Feedback, error) {
	var fb *models.Feedback
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		fb, err = st.Feedback.GetByID(ctx, feedbackID)
		if err != nil {
			return wrap("get feedback", err)
		}
		if fb == nil || (fb.ManagerID != caller.UserID && fb.EmployeeID != caller.UserID) {
			return apperr.NotFoundOrForbidden(feedbackNotPermitted)
		}
		return nil
	})
	return fb, err
}

// UpdateFeedback applies a partial update to feedback the caller authored.
func (s *Service) UpdateFeedback(ctx context.Context, caller auth.Identity, feedbackID int64, patch models.FeedbackPatch) (*models.Feedback, error) {
	if err := auth.RequireManager(caller); err != nil {
		return nil, err
	}
	if patch.Sentiment != nil && !patch.Sentiment.Valid() {
		return nil, apperr.Validation("Sentiment must be positive, neutral or negative")
	}
	var fb *models.Feedback
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		fb, err = st.Feedback.GetByID(ctx, feedbackID)
		if err != nil {
			return wrap("get feedback", err)
		}
		if fb == nil || fb.ManagerID != caller.UserID {
			return apperr.NotFoundOrForbidden(feedbackNotPermitted)
		}
		if patch.Empty() {
			return nil
		}
		if err := st.Feedback.Update(ctx, fb.ID, patch, s.now()); err != nil {
			return wrap("update feedback", err)
		}
		fb, err = st.Feedback.GetByID(ctx, fb.ID)
		return wrap("reload feedback", err)
	})
	if err != nil {
		return nil, err
	}
	return fb, nil
}

// AcknowledgeFeedback marks feedback addressed to the caller as acknowledged.
// Acknowledging twice is harmless.
func (s *Service) AcknowledgeFeedback(ctx context.Context, caller auth.Identity, feedbackID int64) (*models.Feedback, error) {
	if err := auth.RequireEmployee(caller); err != nil {
		return nil, err
	}
	var fb *models.Feedback
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		fb, err = st.Feedback.GetByID(ctx, feedbackID)
		if err != nil {
			return wrap("get feedback", err)
		}
		if fb == nil || fb.EmployeeID != caller.UserID {
			return apperr.NotFoundOrForbidden(feedbackNotPermitted)
		}
		if fb.Acknowledged {
			return nil
		}
		if err := st.Feedback.Acknowledge(ctx, fb.ID, s.now()); err != nil {
			return wrap("acknowledge feedback", err)
		}
		fb, err = st.Feedback.GetByID(ctx, fb.ID)
		return wrap("reload feedback", err)
	})
	if err != nil {
		return nil, err
	}
	return fb, nil
}

// ListFeedbackForEmployee returns feedback received by the calling employee, newest first.
func (s *Service) ListFeedbackForEmployee(ctx context.Context, caller auth.Identity) ([]models.Feedback, error) {
	if err := auth.RequireEmployee(caller); err != nil {
		return nil, err
	}
	return s.receivedFeedback(ctx, caller.UserID)
}

func (s *Service) receivedFeedback(ctx context.Context, employeeID int64) ([]models.Feedback, error) {
	var out []models.Feedback
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		out, err = st.Feedback.ListForEmployee(ctx, employeeID)
		return wrap("list feedback for employee", err)
	})
	return out, err
}

// ListFeedbackForManager returns feedback written by the calling manager, newest first.
func (s *Service) ListFeedbackForManager(ctx context.Context, caller auth.Identity) ([]models.Feedback, error) {
	if err := auth.RequireManager(caller); err != nil {
		return nil, err
	}
	var out []models.Feedback
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		out, err = st.Feedback.ListForManager(ctx, caller.UserID)
		return wrap("list feedback for manager", err)
	})
	return out, err
}
