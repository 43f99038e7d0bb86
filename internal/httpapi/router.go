// Package httpapi exposes the feedback service over a JSON REST API.
package httpapi

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"feedbackManagement/internal/auth"
	"feedbackManagement/internal/service"
)

// Options configures the router.
type Options struct {
	// CORSOrigins lists allowed browser origins. Empty allows any origin without credentials.
	CORSOrigins []string
	// Ping checks the backing store for /healthz. Optional.
	Ping func(ctx context.Context) error
}

type handler struct {
	svc  *service.Service
	gate *auth.Gate
	log  zerolog.Logger
	ping func(ctx context.Context) error
}

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors report json field names.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
}

// NewRouter builds the gin engine with every route mounted under /api.
func NewRouter(svc *service.Service, log zerolog.Logger, opts Options) *gin.Engine {
	useJSONFieldNames()
	h := &handler{svc: svc, gate: svc.Gate(), log: log, ping: opts.Ping}

	r := gin.New()
	r.Use(requestID(), accessLog(log), recovery(log), corsMiddleware(opts.CORSOrigins))
	r.GET("/healthz", h.health)

	api := r.Group("/api")
	{
		a := api.Group("/auth")
		a.POST("/register", h.register)
		a.POST("/login", h.login)
	}

	protected := api.Group("/")
	protected.Use(h.requireAuth())

	users := protected.Group("/users")
	{
		users.GET("/me", h.me)
		users.GET("/team", h.listTeam)
		users.GET("/manager", h.myManager)
		users.GET("/available-employees", h.availableEmployees)
		users.POST("/team/add", h.addTeamMember)
		users.DELETE("/team/remove/:id", h.removeTeamMember)
	}

	fb := protected.Group("/feedback")
	{
		fb.POST("", h.createFeedback)
		fb.GET("/employee", h.feedbackForEmployee)
		fb.GET("/employee/pdf", h.exportPDF)
		fb.GET("/manager", h.feedbackForManager)
		fb.GET("/:id", h.getFeedback)
		fb.PATCH("/:id", h.updateFeedback)
		fb.POST("/:id/acknowledge", h.acknowledgeFeedback)

		fb.POST("/request", h.createRequest)
		fb.GET("/requests/made", h.requestsMade)
		fb.GET("/requests/received", h.requestsReceived)
		fb.PATCH("/request/:id/status", h.updateRequestStatus)

		fb.POST("/peer", h.createPeerFeedback)
		fb.GET("/peer/given", h.peerGiven)
		fb.GET("/peer/received", h.peerReceived)

		fb.GET("/:id/comments", h.listComments)
		fb.POST("/:id/comments", h.createComment)

		fb.POST("/tags", h.createTag)
		fb.GET("/tags", h.listTags)
		fb.POST("/:id/tags/:tag_id", h.attachTag)
		fb.DELETE("/:id/tags/:tag_id", h.detachTag)

		fb.GET("/notifications", h.listNotifications)
		fb.POST("/notifications/:id/read", h.markNotificationRead)
		fb.DELETE("/notifications/clear-all", h.clearNotifications)
	}

	dash := protected.Group("/dashboard")
	{
		dash.GET("/manager/overview", h.managerOverview)
		dash.GET("/manager/sentiment_trends", h.sentimentTrends)
		dash.GET("/manager/team-member-stats/:id", h.teamMemberStats)
		dash.GET("/employee/timeline", h.employeeTimeline)
	}
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

func (h *handler) health(c *gin.Context) {
	if h.ping != nil {
		if err := h.ping(c.Request.Context()); err != nil {
			h.log.Error().Err(err).Msg("health check")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
