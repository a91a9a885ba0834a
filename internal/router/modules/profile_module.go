package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"devconnect/internal/container"
	handlers "devconnect/internal/interface/http"
	"devconnect/internal/interface/middleware"
	"devconnect/pkg/helpers"
)

// ProfileModule wires the profile lifecycle routes.
// Public: GET /api/profile, GET /api/profile/search, GET /api/profile/user/:user_id
// Protected: GET /api/profile/me, POST /api/profile, DELETE /api/profile,
// PUT /api/profile/experience
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	publicLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/profile", publicLimiter, m.Handler.List)
	rg.GET("/profile/search", publicLimiter, m.Handler.Search)
	rg.GET("/profile/user/:user_id", publicLimiter, m.Handler.ByUser)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/profile/me", m.Handler.Me)
		auth.POST("/profile", m.Handler.Upsert)
		auth.DELETE("/profile", m.Handler.Delete)
		auth.PUT("/profile/experience", m.Handler.AddExperience)
	}
}
