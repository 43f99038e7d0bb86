package httpapi

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"feedbackManagement/models"
)

type feedbackCreateRequest struct {
	EmployeeID     int64  `json:"employee_id" binding:"required,gt=0"`
	Strengths      string `json:"strengths" binding:"required"`
	AreasToImprove string `json:"areas_to_improve" binding:"required"`
	Sentiment      string `json:"sentiment" binding:"required,oneof=positive neutral negative"`
}

type feedbackUpdateRequest struct {
	Strengths      *string `json:"strengths" binding:"omitempty,min=1"`
	AreasToImprove *string `json:"areas_to_improve" binding:"omitempty,min=1"`
	Sentiment      *string `json:"sentiment" binding:"omitempty,oneof=positive neutral negative"`
}

func (r feedbackUpdateRequest) patch() models.FeedbackPatch {
	p := models.FeedbackPatch{Strengths: r.Strengths, AreasToImprove: r.AreasToImprove}
	if r.Sentiment != nil {
		s := models.Sentiment(*r.Sentiment)
		p.Sentiment = &s
	}
	return p
}

func (h *handler) createFeedback(c *gin.Context) {
	var req feedbackCreateRequest
	if !h.bind(c, &req) {
		return
	}
	fb, err := h.svc.CreateFeedback(c.Request.Context(), identity(c), req.EmployeeID, models.FeedbackContent{
		Strengths: req.Strengths, AreasToImprove: req.AreasToImprove, Sentiment: models.Sentiment(req.Sentiment),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}

func (h *handler) feedbackForEmployee(c *gin.Context) {
	list, err := h.svc.ListFeedbackForEmployee(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) feedbackForManager(c *gin.Context) {
	list, err := h.svc.ListFeedbackForManager(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) getFeedback(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	fb, err := h.svc.GetFeedback(c.Request.Context(), identity(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}

func (h *handler) updateFeedback(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req feedbackUpdateRequest
	if !h.bind(c, &req) {
		return
	}
	fb, err := h.svc.UpdateFeedback(c.Request.Context(), identity(c), id, req.patch())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}

func (h *handler) acknowledgeFeedback(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	fb, err := h.svc.AcknowledgeFeedback(c.Request.Context(), identity(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}

func (h *handler) exportPDF(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.ExportFeedbackPDF(c.Request.Context(), identity(c), &buf); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="feedback_report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
