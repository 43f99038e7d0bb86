package service

import (
	"context"
	"time"

	"feedbackManagement/internal/apperr"
	"feedbackManagement/internal/auth"
	"feedbackManagement/internal/stats"
	"feedbackManagement/models"
	"feedbackManagement/repository"
)

// Overview summarises the feedback a manager has written.
type Overview struct {
	stats.Breakdown
	AcknowledgedCount  int                                      `json:"acknowledged_count"`
	TeamSize           int                                      `json:"team_size"`
	PendingRequests    int                                      `json:"pending_requests"`
	TeamFeedbackCounts map[int64]repository.MemberFeedbackCount `json:"team_feedback_counts"`
}

// MemberStats is a manager's view of one team member.
type MemberStats struct {
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	stats.Breakdown
	AcknowledgedCount int     `json:"acknowledged_count"`
	SatisfactionScore float64 `json:"satisfaction_score"`
}

// ManagerOverview aggregates all feedback authored by the calling manager.
func (s *Service) ManagerOverview(ctx context.Context, caller auth.Identity) (*Overview, error) {
	if err := auth.RequireManager(caller); err != nil {
		return nil, err
	}
	var out Overview
	err := s.inTx(ctx, func(st *repository.Store) error {
		counts, err := st.Stats.CountsByManager(ctx, caller.UserID)
		if err != nil {
			return wrap("count feedback", err)
		}
		members, err := st.Stats.TeamFeedbackCounts(ctx, caller.UserID)
		if err != nil {
			return wrap("count team feedback", err)
		}
		pending, err := st.Requests.CountPending(ctx, caller.UserID)
		if err != nil {
			return wrap("count pending requests", err)
		}
		out.Breakdown = stats.NewBreakdown(counts.BySentiment)
		out.AcknowledgedCount = counts.Acknowledged
		out.TeamSize = len(members)
		out.PendingRequests = pending
		out.TeamFeedbackCounts = make(map[int64]repository.MemberFeedbackCount, len(members))
		for _, m := range members {
			out.TeamFeedbackCounts[m.UserID] = m
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// TeamMemberStats reports on the feedback the caller wrote for one of their reports.
func (s *Service) TeamMemberStats(ctx context.Context, caller auth.Identity, employeeID int64) (*MemberStats, error) {
	if err := auth.RequireManager(caller); err != nil {
		return nil, err
	}
	var out MemberStats
	err := s.inTx(ctx, func(st *repository.Store) error {
		emp, err := st.Users.GetByID(ctx, employeeID)
		if err != nil {
			return wrap("get employee", err)
		}
		if emp == nil || !emp.ReportsTo(caller.UserID) {
			return apperr.NotFound("Employee not found in your team")
		}
		counts, err := st.Stats.CountsByManagerForEmployee(ctx, caller.UserID, emp.ID)
		if err != nil {
			return wrap("count feedback", err)
		}
		out.EmployeeID = emp.ID
		out.EmployeeName = emp.Name
		out.Breakdown = stats.NewBreakdown(counts.BySentiment)
		out.AcknowledgedCount = counts.Acknowledged
		out.SatisfactionScore = out.Share(models.SentimentPositive)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SentimentTrends groups this year's feedback for the manager's team by month.
// Months without feedback are absent from the result.
func (s *Service) SentimentTrends(ctx context.Context, caller auth.Identity) (stats.Trend, error) {
	if err := auth.RequireManager(caller); err != nil {
		return nil, err
	}
	now := s.now()
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var points []repository.SentimentPoint
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		points, err = st.Stats.TeamFeedbackBetween(ctx, caller.UserID, from, to)
		return wrap("load team feedback", err)
	})
	if err != nil {
		return nil, err
	}
	trend := stats.Trend{}
	for _, p := range points {
		trend.Add(int(p.CreatedAt.UTC().Month()), p.Sentiment)
	}
	return trend, nil
}

// EmployeeTimeline returns the calling employee's received feedback, newest first.
func (s *Service) EmployeeTimeline(ctx context.Context, caller auth.Identity) ([]models.Feedback, error) {
	if err := auth.RequireEmployee(caller); err != nil {
		return nil, err
	}
	return s.receivedFeedback(ctx, caller.UserID)
}
