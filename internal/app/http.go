package app

import (
	"context"
	"net/http"

	"github.com/lucas-hallgren/automatizador-backend/internal/api"
	"github.com/lucas-hallgren/automatizador-backend/internal/auth"
	"github.com/lucas-hallgren/automatizador-backend/internal/auth/handler"
	"github.com/lucas-hallgren/automatizador-backend/internal/auth/provider/facebook"
	"github.com/lucas-hallgren/automatizador-backend/internal/config"
	"github.com/lucas-hallgren/automatizador-backend/internal/graph"
	"github.com/lucas-hallgren/automatizador-backend/internal/middleware"
	"github.com/lucas-hallgren/automatizador-backend/internal/session"

	"github.com/gin-gonic/gin"
)

func setupHTTP(_ context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	serializer := auth.JSONSerializer{}

	facebookProvider, err := facebook.New(facebook.Config{
		ClientID:     cfg.FacebookClientID,
		ClientSecret: cfg.FacebookClientSecret,
		RedirectURL:  cfg.FacebookRedirectURL,
		GraphBaseURL: cfg.GraphBaseURL,
	})
	if err != nil {
		return nil, nil, err
	}

	cookieOpts := session.CookieOptions{
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if cfg.CookieCrossSite {
		// SameSite=None is only honored over secure transport.
		cookieOpts.Secure = true
		cookieOpts.SameSite = http.SameSiteNoneMode
	}

	authHandler := handler.NewHandler(
		facebookProvider,
		infra.SessionStore,
		serializer,
		cookieOpts,
		cfg.SessionTTL,
		cfg.UpstreamTimeout,
	)

	graphClient := graph.NewClient(cfg.GraphBaseURL, cfg.UpstreamTimeout)
	apiHandler := api.NewHandler(graphClient)

	authMiddleware := middleware.NewAuthMiddleware(infra.SessionStore, serializer)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	// Trust exactly one reverse-proxy hop for X-Forwarded-* headers.
	trusted := []string(nil)
	if cfg.TrustedProxy != "" {
		trusted = []string{cfg.TrustedProxy}
	}
	if err := router.SetTrustedProxies(trusted); err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	v := views{
		sessionStore: infra.SessionStore,
		serializer:   serializer,
	}
	v.registerRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	apiGroup := router.Group("/api")
	apiGroup.Use(middleware.GinRequireAuth(authMiddleware))

	apiHandler.RegisterRoutes(apiGroup)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, infra.cleanup, nil
}
