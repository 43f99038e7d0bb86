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

// CreateFeedbackRequest lets an employee ask a manager for feedback.
func (s *Service) CreateFeedbackRequest(ctx context.Context, caller auth.Identity, targetID int64, message *string) (*models.FeedbackRequest, error) {
	if err := auth.RequireEmployee(caller); err != nil {
		return nil, err
	}
	if message != nil {
		m := strings.TrimSpace(*message)
		if m == "" {
			message = nil
		} else {
			message = &m
		}
	}
	var (
		req    *models.FeedbackRequest
		target *models.User
	)
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		target, err = st.Users.GetByID(ctx, targetID)
		if err != nil {
			return wrap("get target", err)
		}
		if target == nil {
			return apperr.NotFound("Target user not found")
		}
		if !target.IsManager() {
			return apperr.Validation("Feedback can only be requested from a manager")
		}
		req, err = st.Requests.Create(ctx, &models.FeedbackRequest{
			RequesterID: caller.UserID, TargetID: target.ID, Message: message, CreatedAt: s.now(),
		})
		return wrap("create feedback request", err)
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, target.ID, models.NotifyFeedbackRequest, fmt.Sprintf("%s requested feedback from you", caller.Name))
	s.email(target.Email, "Feedback requested", fmt.Sprintf("Hi %s,\n\n**%s** has asked you for feedback.", target.Name, caller.Name))
	return req, nil
}

// ListRequestsMade returns requests the caller created, newest first.
func (s *Service) ListRequestsMade(ctx context.Context, caller auth.Identity) ([]models.FeedbackRequest, error) {
	var out []models.FeedbackRequest
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		out, err = st.Requests.ListByRequester(ctx, caller.UserID)
		return wrap("list requests made", err)
	})
	return out, err
}

// ListRequestsReceived returns requests addressed to the caller, newest first.
func (s *Service) ListRequestsReceived(ctx context.Context, caller auth.Identity) ([]models.FeedbackRequest, error) {
	var out []models.FeedbackRequest
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		out, err = st.Requests.ListByTarget(ctx, caller.UserID)
		return wrap("list requests received", err)
	})
	return out, err
}

// UpdateRequestStatus completes or rejects a pending request addressed to the caller.
func (s *Service) UpdateRequestStatus(ctx context.Context, caller auth.Identity, requestID int64, status models.RequestStatus) (*models.FeedbackRequest, error) {
	if !status.Final() {
		return nil, apperr.Validation("Status must be completed or rejected")
	}
	var req *models.FeedbackRequest
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		req, err = st.Requests.GetByID(ctx, requestID)
		if err != nil {
			return wrap("get feedback request", err)
		}
		if req == nil || req.TargetID != caller.UserID {
			return apperr.NotFoundOrForbidden("Feedback request not found or not permitted")
		}
		if req.Status != models.RequestPending {
			return apperr.Conflict(fmt.Sprintf("Feedback request is already %s", req.Status))
		}
		if err := st.Requests.UpdateStatus(ctx, req.ID, status, s.now()); err != nil {
			return wrap("update feedback request", err)
		}
		req, err = st.Requests.GetByID(ctx, req.ID)
		return wrap("reload feedback request", err)
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, req.RequesterID, models.NotifyRequestStatus,
		fmt.Sprintf("%s marked your feedback request as %s", caller.Name, req.Status))
	return req, nil
}
