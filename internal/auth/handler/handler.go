package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/lucas-hallgren/automatizador-backend/internal/auth"
	"github.com/lucas-hallgren/automatizador-backend/internal/auth/provider"
	"github.com/lucas-hallgren/automatizador-backend/internal/logger"
	"github.com/lucas-hallgren/automatizador-backend/internal/session"

	"github.com/gin-gonic/gin"
)

const errorRedirect = "/auth/error"

// Handler drives the redirect-based OAuth flow: initiate, callback,
// logout. OAuth failures never reach the browser as raw provider
// payloads; they land on the generic error view.
type Handler struct {
	provider        provider.OAuthProvider
	sessionStore    session.Store
	serializer      auth.Serializer
	cookieOpts      session.CookieOptions
	sessionTTL      time.Duration
	upstreamTimeout time.Duration
}

func NewHandler(
	p provider.OAuthProvider,
	sessionStore session.Store,
	serializer auth.Serializer,
	cookieOpts session.CookieOptions,
	sessionTTL time.Duration,
	upstreamTimeout time.Duration,
) *Handler {
	return &Handler{
		provider:        p,
		sessionStore:    sessionStore,
		serializer:      serializer,
		cookieOpts:      cookieOpts,
		sessionTTL:      sessionTTL,
		upstreamTimeout: upstreamTimeout,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/auth/login", h.login)
	r.GET("/auth/login/callback", h.callback)
	r.GET("/auth/logout", h.logout)
}

func (h *Handler) login(c *gin.Context) {
	state := h.generateState(c)

	authURL := h.provider.AuthCodeURL(state)
	c.Redirect(http.StatusFound, authURL)
}

func (h *Handler) callback(c *gin.Context) {
	stateOK := validateState(c)

	// State is single-use regardless of the outcome below. Cleared up
	// front: redirects flush headers, so it cannot wait until after.
	h.clearState(c)

	if !stateOK {
		logger.Warn("oauth callback state mismatch", map[string]any{
			"provider": h.provider.Name(),
			"error":    auth.ErrStateMismatch.Error(),
		})
		c.Redirect(http.StatusFound, errorRedirect)
		return
	}

	// Provider redirected back with an error instead of a code
	// (user denied the dialog, app in restricted mode, ...).
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": h.provider.Name(),
			"error":    auth.ErrProviderDenied.Error(),
			"code":     errParam,
			"desc":     c.Query("error_description"),
		})
		c.Redirect(http.StatusFound, errorRedirect)
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oauth callback missing code and error", nil)
		c.Redirect(http.StatusFound, errorRedirect)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.upstreamTimeout)
	defer cancel()

	identity, err := h.provider.ExchangeCode(ctx, code)
	if err != nil {
		logger.Error("oauth code exchange failed", map[string]any{
			"provider": h.provider.Name(),
			"timeout":  errors.Is(err, auth.ErrTimeout),
		})
		c.Redirect(http.StatusFound, errorRedirect)
		return
	}

	payload, err := h.serializer.Serialize(identity)
	if err != nil {
		logger.Error("identity serialization failed", map[string]any{
			"error": err.Error(),
		})
		c.Redirect(http.StatusFound, errorRedirect)
		return
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		logger.Error("session id generation failed", map[string]any{
			"error": err.Error(),
		})
		c.Redirect(http.StatusFound, errorRedirect)
		return
	}

	now := time.Now()

	sess := session.Session{
		SessionID: sessionID,
		CreatedAt: now,
		ExpiresAt: now.Add(h.sessionTTL),
		Identity:  payload,
	}

	if err := h.sessionStore.Create(c.Request.Context(), sess); err != nil {
		logger.Error("session persist failed", map[string]any{
			"error": err.Error(),
		})
		c.Redirect(http.StatusFound, errorRedirect)
		return
	}

	session.SetCookie(c.Writer, sessionID, h.cookieOpts)

	logger.Info("login succeeded", map[string]any{
		"provider": h.provider.Name(),
		"user_id":  identity.Profile.ID,
		"ip":       c.ClientIP(),
	})

	c.Redirect(http.StatusFound, "/")
}

// logout is idempotent: with no cookie, a stale cookie, or repeated
// calls it still clears the cookie and redirects to the landing view.
func (h *Handler) logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		// Store failures must not hang the response; surface them to the
		// fallback error log and keep going.
		if err := h.sessionStore.Delete(c.Request.Context(), cookie.Value); err != nil {
			logger.Error("session delete failed on logout", map[string]any{
				"error": err.Error(),
			})
		}
	}

	session.ClearCookie(c.Writer, h.cookieOpts)

	c.Redirect(http.StatusFound, "/")
}
