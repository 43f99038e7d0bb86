package service

import (
	"context"
	"fmt"

	"feedbackManagement/internal/apperr"
	"feedbackManagement/internal/auth"
	"feedbackManagement/models"
	"feedbackManagement/repository"
)

// CreatePeerFeedback sends feedback from the caller to a colleague. The
// returned record is the author's view and always names the author.
func (s *Service) CreatePeerFeedback(ctx context.Context, caller auth.Identity, toUserID int64, content models.FeedbackContent, anonymous bool) (*models.PeerFeedback, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}
	if toUserID == caller.UserID {
		return nil, apperr.Validation("You cannot give peer feedback to yourself")
	}
	var (
		pf *models.PeerFeedback
		to *models.User
	)
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		to, err = st.Users.GetByID(ctx, toUserID)
		if err != nil {
			return wrap("get recipient", err)
		}
		if to == nil {
			return apperr.NotFound("Recipient not found")
		}
		from := caller.UserID
		pf, err = st.Peer.Create(ctx, &models.PeerFeedback{
			FromUserID:     &from,
			ToUserID:       to.ID,
			Strengths:      content.Strengths,
			AreasToImprove: content.AreasToImprove,
			Sentiment:      content.Sentiment,
			IsAnonymous:    anonymous,
			CreatedAt:      s.now(),
		})
		return wrap("create peer feedback", err)
	})
	if err != nil {
		return nil, err
	}

	sender := caller.Name
	if anonymous {
		sender = "A colleague"
	}
	s.notify(ctx, to.ID, models.NotifyPeerFeedback, fmt.Sprintf("%s sent you peer feedback", sender))
	s.email(to.Email, "New peer feedback", fmt.Sprintf("Hi %s,\n\n%s sent you peer feedback.", to.Name, sender))
	return pf, nil
}

// ListPeerGiven returns peer feedback the caller wrote.
func (s *Service) ListPeerGiven(ctx context.Context, caller auth.Identity) ([]models.PeerFeedback, error) {
	var out []models.PeerFeedback
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		out, err = st.Peer.ListGiven(ctx, caller.UserID)
		return wrap("list peer feedback given", err)
	})
	return out, err
}

// ListPeerReceived returns peer feedback addressed to the caller with the
// author withheld on anonymous items.
func (s *Service) ListPeerReceived(ctx context.Context, caller auth.Identity) ([]models.PeerFeedback, error) {
	var out []models.PeerFeedback
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		out, err = st.Peer.ListReceived(ctx, caller.UserID)
		return wrap("list peer feedback received", err)
	})
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i] = out[i].Anonymized()
	}
	return out, nil
}
