package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-clinic-api/internal/interface/http"
)

// AuthModule exposes POST /auth/login, throttled per IP.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Limit   gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, limit gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Limit: limit}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/login", m.Limit, m.Handler.Login)
}
