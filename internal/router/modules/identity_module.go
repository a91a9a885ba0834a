package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"devconnect/internal/container"
	handlers "devconnect/internal/interface/http"
	"devconnect/internal/interface/middleware"
	"devconnect/pkg/helpers"
)

// IdentityModule wires registration, login and the authenticated user's own
// account routes.
// Public: POST /api/users, POST /api/auth
// Protected: GET /api/auth, POST /api/users/me/avatar
type IdentityModule struct {
	Handler *handlers.IdentityHandler
	JWT     *helpers.JWTManager
}

func NewIdentityModule(h *handlers.IdentityHandler, jwt *helpers.JWTManager) *IdentityModule {
	return &IdentityModule{Handler: h, JWT: jwt}
}

func (m *IdentityModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/users", registerLimiter, m.Handler.Register)
	rg.POST("/auth", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/auth", m.Handler.CurrentUser)
		auth.POST("/users/me/avatar", m.Handler.UploadAvatar)
	}
}
