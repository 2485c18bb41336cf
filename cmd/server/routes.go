package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/naulin/internal/config"
	"github.com/Nixie-Tech-LLC/naulin/internal/contact"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/api"
	authapi "github.com/Nixie-Tech-LLC/naulin/internal/http/api/admin/auth/endpoints"
	adminapi "github.com/Nixie-Tech-LLC/naulin/internal/http/api/admin/control/endpoints"
	publicapi "github.com/Nixie-Tech-LLC/naulin/internal/http/api/public/endpoints"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/web"
	"github.com/Nixie-Tech-LLC/naulin/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Dependencies, storageSystem storage.Storage) {
	r.SetHTMLTemplate(LoadTemplates())
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
			"If-None-Match",
			"X-If-None-Match",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"ETag",
		},
		AllowCredentials: false,
	}))

	// one limiter for both the form post and the JSON endpoint
	limiter := middleware.NewRateLimiter(cfg.ContactRate, cfg.ContactBurst)
	contactOpts := contact.DefaultOptions()

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		publicapi.ContentModule(deps.Conn),
		publicapi.ContactModule(contactOpts, limiter),
	)

	api.MountGroup(r, api.GroupConfig{},
		publicapi.HealthModule(deps.Conn),
		web.WebModule(deps.Conn, web.Options{
			FetchTimeout:  cfg.ProviderTimeout,
			RenderTimeout: cfg.RenderTimeout,
			SiteURL:       cfg.SiteURL,
			Contact:       contactOpts,
			Limiter:       limiter,
		}),
	)

	switch {
	case deps.Store == nil:
		log.Info().Msg("[admin] admin API disabled: content is read from a remote API")
	case !cfg.AdminEnabled():
		log.Info().Msg("[admin] admin API disabled: JWT_SECRET, ADMIN_EMAIL and ADMIN_PASSWORD_HASH are required")
	default:
		creds := authapi.Credentials{
			JWTSecret:    cfg.JWTSecret,
			Email:        cfg.AdminEmail,
			PasswordHash: cfg.AdminPasswordHash,
		}

		api.MountGroup(r, api.GroupConfig{
			Prefix: "/api/admin",
			Auth:   false,
		},
			authapi.AuthPublicModule(creds),
		)

		api.MountGroup(r, api.GroupConfig{
			Prefix:     "/api/admin",
			Auth:       true,
			SecretKey:  cfg.JWTSecret,
			AdminEmail: cfg.AdminEmail,
		},
			// control modules
			adminapi.ContentModule(deps.Store, deps.Cache, deps.Notifier),
			adminapi.AssetModule(storageSystem),
			// session endpoints that require auth
			authapi.AuthSessionModule(creds),
		)
	}

	// Static content
	r.StaticFS("/static", web.Static())
	r.Static("/assets", cfg.AssetsDir)
	if !cfg.UseSpaces {
		r.Static("/uploads", cfg.UploadDir)
	}
}
