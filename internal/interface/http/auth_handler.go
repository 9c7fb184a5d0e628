package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-clinic-api/internal/application"
	"github.com/oksasatya/go-clinic-api/pkg/response"
)

type AuthHandler struct {
	base
	Svc *application.AuthService
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{base: base{Logger: logger, entity: "user"}, Svc: svc}
}

type loginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"contraseña"`
	// PasswordAlt accepts clients that send the ASCII key.
	PasswordAlt *string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.Password == nil {
		req.Password = req.PasswordAlt
	}
	sess, err := h.Svc.Login(c.Request.Context(), application.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"token":      sess.Token,
		"username":   sess.Username,
		"expires_at": sess.ExpiresAt,
	})
}
