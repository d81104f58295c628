package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-user-post-api/internal/application"
	"github.com/oksasatya/go-user-post-api/pkg/response"
)

type UserHandler struct {
	Svc    *userapp.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// List GET /users (POST /users is kept as a legacy alias)
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "users", toUserResponses(users))
}

// Get GET /user/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "user not found")
	if !ok {
		return
	}
	u, err := h.Svc.GetUser(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "user", toUserResponse(u))
}

// Create POST /user
func (h *UserHandler) Create(c *gin.Context) {
	var req userapp.CreateUserInput
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, "usuario", toUserResponse(u))
}

// Update PUT /user/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "user not found")
	if !ok {
		return
	}
	var req userapp.UpdateUserInput
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.UpdateUserEmail(c.Request.Context(), id, req)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "user", toUserResponse(u))
}

// Delete DELETE /user/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "user not found")
	if !ok {
		return
	}
	if err := h.Svc.DeleteUser(c.Request.Context(), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusOK, "user deleted")
}
