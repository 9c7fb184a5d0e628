package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-clinic-api/internal/interface/http"
)

// UserModule wires /usuarios.
// Public: POST /usuarios (registration, rate limited)
// Protected: GET /usuarios, GET|PUT|DELETE /usuarios/:id
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
	Limit   gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, auth, limit gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Auth: auth, Limit: limit}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/usuarios")
	g.POST("", m.Limit, m.Handler.Register)

	auth := g.Group("", m.Auth)
	{
		auth.GET("", m.Handler.List)
		auth.GET("/:id", m.Handler.Get)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
