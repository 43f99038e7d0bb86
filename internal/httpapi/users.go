package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"feedbackManagement/internal/service"
	"feedbackManagement/models"
)

type registerRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role" binding:"required,oneof=manager employee"`
	ManagerID *int64 `json:"manager_id" binding:"omitempty,gt=0"`
}

type loginJSON struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type teamAddRequest struct {
	EmployeeID int64 `json:"employee_id" binding:"required,gt=0"`
}

func (h *handler) register(c *gin.Context) {
	var req registerRequest
	if !h.bind(c, &req) {
		return
	}
	u, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Name: req.Name, Email: req.Email, Password: req.Password, Role: models.Role(req.Role), ManagerID: req.ManagerID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// login accepts an OAuth2 password form (username, password) or a JSON body.
func (h *handler) login(c *gin.Context) {
	var email, password string
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req loginJSON
		if !h.bind(c, &req) {
			return
		}
		email, password = req.Email, req.Password
		if email == "" {
			email = req.Username
		}
	} else {
		email, password = c.PostForm("username"), c.PostForm("password")
	}
	if email == "" || password == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "username and password are required"})
		return
	}
	tok, err := h.svc.Login(c.Request.Context(), email, password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tok)
}

func (h *handler) me(c *gin.Context) {
	u, err := h.svc.Me(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *handler) listTeam(c *gin.Context) {
	team, err := h.svc.ListTeam(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

func (h *handler) myManager(c *gin.Context) {
	m, err := h.svc.MyManager(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *handler) availableEmployees(c *gin.Context) {
	list, err := h.svc.ListAvailableEmployees(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) addTeamMember(c *gin.Context) {
	var req teamAddRequest
	if !h.bind(c, &req) {
		return
	}
	u, err := h.svc.AddTeamMember(c.Request.Context(), identity(c), req.EmployeeID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *handler) removeTeamMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.RemoveTeamMember(c.Request.Context(), identity(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Employee removed from team"})
}
