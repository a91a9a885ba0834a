package router

import (
	"devconnect/internal/application"
	"devconnect/internal/container"
	"devconnect/internal/infrastructure/mongodb"
	handlers "devconnect/internal/interface/http"
	"devconnect/internal/router/modules"
)

// InitModules builds the repositories, services and handlers from the
// container singletons and registers every feature module with the registry.
// Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	userRepo := mongodb.NewUserRepository(container.GetMongo())
	profileRepo := mongodb.NewProfileRepository(container.GetMongo())

	identitySvc := application.NewIdentityService(
		userRepo,
		container.GetJWT(),
		cfg.BcryptCost,
		container.GetLogger(),
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
		container.GetGCS(),
		cfg.GCSBucket,
	)
	profileSvc := application.NewProfileService(
		profileRepo,
		userRepo,
		container.GetLogger(),
		container.GetRedis(),
		cfg.ProfileListCacheTTL,
		container.GetES(),
		cfg.ESProfilesIndex,
	)

	identityHandler := handlers.NewIdentityHandler(identitySvc, container.GetLogger())
	profileHandler := handlers.NewProfileHandler(profileSvc, container.GetLogger())

	r.Add(modules.NewIdentityModule(identityHandler, container.GetJWT()))
	r.Add(modules.NewProfileModule(profileHandler, container.GetJWT()))
}
