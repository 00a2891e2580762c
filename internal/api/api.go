package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lucas-hallgren/automatizador-backend/internal/graph"
	"github.com/lucas-hallgren/automatizador-backend/internal/logger"
	"github.com/lucas-hallgren/automatizador-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handler serves the authenticated JSON API. Every route here sits
// behind the auth guard, so the identity is always present in context.
type Handler struct {
	graph *graph.Client
}

func NewHandler(graphClient *graph.Client) *Handler {
	return &Handler{graph: graphClient}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.profile)
	rg.GET("/ad-accounts", h.adAccounts)
}

// profile returns the session identity verbatim.
func (h *Handler) profile(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, identity)
}

// adAccounts relays the upstream ad-accounts listing. A 2xx upstream
// body passes through unmodified; upstream failures come back as a local
// 500 embedding the upstream error object when one was present.
func (h *Handler) adAccounts(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	body, err := h.graph.ListAdAccounts(c.Request.Context(), identity)
	if err != nil {
		var upstream *graph.UpstreamError
		if errors.As(err, &upstream) && len(upstream.Raw) > 0 {
			logger.Error("ad accounts listing rejected upstream", map[string]any{
				"status": upstream.Status,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "failed to fetch ad accounts",
				"error":   json.RawMessage(upstream.Raw),
			})
			return
		}

		logger.Error("ad accounts listing failed", map[string]any{
			"timeout": errors.Is(err, graph.ErrTimeout),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to fetch ad accounts",
		})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
