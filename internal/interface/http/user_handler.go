package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-clinic-api/internal/application"
	"github.com/oksasatya/go-clinic-api/pkg/response"
)

type UserHandler struct {
	base
	Svc *application.UserService
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{base: base{Logger: logger, entity: "user"}, Svc: svc}
}

type userRequest struct {
	Name     *string `json:"nombre"`
	Email    *string `json:"email"`
	Password *string `json:"contraseña"`
}

func (r userRequest) input() application.UserInput {
	return application.UserInput{Name: r.Name, Email: r.Email, Password: r.Password}
}

// Register is public: it is how accounts get created.
func (h *UserHandler) Register(c *gin.Context) {
	var req userRequest
	if !h.bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": "user created", "usuario": toUserDTO(u)})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]userDTO, 0, len(users))
	for i := range users {
		out = append(out, toUserDTO(&users[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"usuarios": out})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	u, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"usuario": toUserDTO(u)})
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req userRequest
	if !h.bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "user updated", "usuario": toUserDTO(u)})
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "user deleted"})
}
