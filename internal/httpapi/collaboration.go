package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"feedbackManagement/models"
)

type requestCreateRequest struct {
	TargetID int64   `json:"target_id" binding:"required,gt=0"`
	Message  *string `json:"message"`
}

type peerCreateRequest struct {
	ToUserID       int64  `json:"to_user_id" binding:"required,gt=0"`
	Strengths      string `json:"strengths" binding:"required"`
	AreasToImprove string `json:"areas_to_improve" binding:"required"`
	Sentiment      string `json:"sentiment" binding:"required,oneof=positive neutral negative"`
	IsAnonymous    bool   `json:"is_anonymous"`
}

type commentCreateRequest struct {
	Content string `json:"content" binding:"required"`
}

type tagCreateRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

func (h *handler) createRequest(c *gin.Context) {
	var req requestCreateRequest
	if !h.bind(c, &req) {
		return
	}
	fr, err := h.svc.CreateFeedbackRequest(c.Request.Context(), identity(c), req.TargetID, req.Message)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fr)
}

func (h *handler) requestsMade(c *gin.Context) {
	list, err := h.svc.ListRequestsMade(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) requestsReceived(c *gin.Context) {
	list, err := h.svc.ListRequestsReceived(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) updateRequestStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	fr, err := h.svc.UpdateRequestStatus(c.Request.Context(), identity(c), id, models.RequestStatus(c.Query("status")))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fr)
}

func (h *handler) createPeerFeedback(c *gin.Context) {
	var req peerCreateRequest
	if !h.bind(c, &req) {
		return
	}
	pf, err := h.svc.CreatePeerFeedback(c.Request.Context(), identity(c), req.ToUserID, models.FeedbackContent{
		Strengths: req.Strengths, AreasToImprove: req.AreasToImprove, Sentiment: models.Sentiment(req.Sentiment),
	}, req.IsAnonymous)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pf)
}

func (h *handler) peerGiven(c *gin.Context) {
	list, err := h.svc.ListPeerGiven(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) peerReceived(c *gin.Context) {
	list, err := h.svc.ListPeerReceived(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) listComments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.svc.ListComments(c.Request.Context(), identity(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) createComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req commentCreateRequest
	if !h.bind(c, &req) {
		return
	}
	cm, err := h.svc.CreateComment(c.Request.Context(), identity(c), id, req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cm)
}

func (h *handler) createTag(c *gin.Context) {
	var req tagCreateRequest
	if !h.bind(c, &req) {
		return
	}
	t, err := h.svc.CreateTag(c.Request.Context(), identity(c), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handler) listTags(c *gin.Context) {
	list, err := h.svc.ListTags(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) attachTag(c *gin.Context) { h.changeTag(c, true) }
func (h *handler) detachTag(c *gin.Context) { h.changeTag(c, false) }

func (h *handler) changeTag(c *gin.Context, attach bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tagID, ok := pathID(c, "tag_id")
	if !ok {
		return
	}
	change := h.svc.DetachTag
	if attach {
		change = h.svc.AttachTag
	}
	fb, err := change(c.Request.Context(), identity(c), id, tagID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}

func (h *handler) listNotifications(c *gin.Context) {
	list, err := h.svc.ListNotifications(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) markNotificationRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	n, err := h.svc.MarkNotificationRead(c.Request.Context(), identity(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *handler) clearNotifications(c *gin.Context) {
	n, err := h.svc.ClearNotifications(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}
