package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-clinic-api/config"
	"github.com/oksasatya/go-clinic-api/internal/interface/middleware"
)

// NewEngine builds the Gin engine with the global middleware chain. Client
// addresses come from the TCP peer unless it is one of cfg's trusted proxies.
func NewEngine(cfg *config.Config) (*gin.Engine, error) {
	proxies := cfg.TrustedProxyList()

	r := gin.New()
	if err := r.SetTrustedProxies(proxies); err != nil {
		return nil, err
	}
	realIP, err := middleware.RealIP(proxies)
	if err != nil {
		return nil, err
	}

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(realIP)
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  origins,
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
			MaxAge:        12 * time.Hour,
		}))
	}
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}
	return r, nil
}
