package service

import (
	"context"
	"io"

	"feedbackManagement/internal/auth"
	"feedbackManagement/internal/pdf"
)

// ExportFeedbackPDF writes the calling employee's feedback report to w.
func (s *Service) ExportFeedbackPDF(ctx context.Context, caller auth.Identity, w io.Writer) error {
	if err := auth.RequireEmployee(caller); err != nil {
		return err
	}
	items, err := s.receivedFeedback(ctx, caller.UserID)
	if err != nil {
		return err
	}
	records := make([]pdf.Record, 0, len(items))
	for _, f := range items {
		records = append(records, pdf.Record{
			Date:           f.CreatedAt,
			Author:         f.ManagerName,
			Strengths:      f.Strengths,
			AreasToImprove: f.AreasToImprove,
			Sentiment:      string(f.Sentiment),
			Acknowledged:   f.Acknowledged,
		})
	}
	return wrap("render report", pdf.RenderFeedbackReport(w, "Feedback report for "+caller.Name, records))
}
