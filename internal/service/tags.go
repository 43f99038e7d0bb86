package service

import (
	"context"
	"strings"

	"feedbackManagement/internal/apperr"
	"feedbackManagement/internal/auth"
	"feedbackManagement/models"
	"feedbackManagement/repository"
)

const maxTagLen = 50

// CreateTag adds a tag. Names are trimmed and unique ignoring case.
func (s *Service) CreateTag(ctx context.Context, caller auth.Identity, name string) (*models.Tag, error) {
	if err := auth.RequireManager(caller); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxTagLen {
		return nil, apperr.Validation("Tag name must be between 1 and 50 characters")
	}
	var tag *models.Tag
	err := s.inTx(ctx, func(st *repository.Store) error {
		existing, err := st.Tags.GetByName(ctx, name)
		if err != nil {
			return wrap("lookup tag", err)
		}
		if existing != nil {
			return apperr.Conflict("Tag already exists")
		}
		tag, err = st.Tags.Create(ctx, name, s.now())
		return wrap("create tag", err)
	})
	return tag, err
}

// ListTags returns every tag alphabetically.
func (s *Service) ListTags(ctx context.Context, caller auth.Identity) ([]models.Tag, error) {
	var out []models.Tag
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		out, err = st.Tags.List(ctx)
		return wrap("list tags", err)
	})
	return out, err
}

// AttachTag links a tag to feedback and returns the feedback with its tags.
// Attaching an already linked tag changes nothing.
func (s *Service) AttachTag(ctx context.Context, caller auth.Identity, feedbackID, tagID int64) (*models.Feedback, error) {
	return s.changeTag(ctx, caller, feedbackID, tagID, func(st *repository.Store) error {
		return st.Tags.Attach(ctx, feedbackID, tagID)
	})
}

// DetachTag unlinks a tag from feedback. Detaching a tag that is not linked is a no-op.
func (s *Service) DetachTag(ctx context.Context, caller auth.Identity, feedbackID, tagID int64) (*models.Feedback, error) {
	return s.changeTag(ctx, caller, feedbackID, tagID, func(st *repository.Store) error {
		return st.Tags.Detach(ctx, feedbackID, tagID)
	})
}

func (s *Service) changeTag(ctx context.Context, caller auth.Identity, feedbackID, tagID int64, change func(st *repository.Store) error) (*models.Feedback, error) {
	if err := auth.RequireManager(caller); err != nil {
		return nil, err
	}
	var fb *models.Feedback
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		fb, err = st.Feedback.GetByID(ctx, feedbackID)
		if err != nil {
			return wrap("get feedback", err)
		}
		if fb == nil {
			return apperr.NotFound("Feedback not found")
		}
		tag, err := st.Tags.GetByID(ctx, tagID)
		if err != nil {
			return wrap("get tag", err)
		}
		if tag == nil {
			return apperr.NotFound("Tag not found")
		}
		if err := change(st); err != nil {
			return wrap("change tag association", err)
		}
		fb, err = st.Feedback.GetByID(ctx, feedbackID)
		return wrap("reload feedback", err)
	})
	if err != nil {
		return nil, err
	}
	return fb, nil
}
