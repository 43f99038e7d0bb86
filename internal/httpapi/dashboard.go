package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handler) managerOverview(c *gin.Context) {
	ov, err := h.svc.ManagerOverview(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

func (h *handler) sentimentTrends(c *gin.Context) {
	trend, err := h.svc.SentimentTrends(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sentiment_trends": trend})
}

func (h *handler) teamMemberStats(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	st, err := h.svc.TeamMemberStats(c.Request.Context(), identity(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *handler) employeeTimeline(c *gin.Context) {
	list, err := h.svc.EmployeeTimeline(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
