// Package server exposes the backend HTTP API: remote store CRUD for
// the sync coordinator plus the AI generation endpoints.
package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"omenu/internal/clipper"
	"omenu/internal/metrics"
	"omenu/internal/planner"
	"omenu/internal/storage"
)

const tokenAudience = "omenu-api"

// Handler handles all API requests.
type Handler struct {
	store      *storage.Store
	planner    *planner.Service
	clipper    *clipper.Clipper
	metrics    *metrics.Store
	authSecret string
	dataDir    string
	version    string
}

// NewHandler creates a new API handler. An empty authSecret disables
// request authentication.
func NewHandler(store *storage.Store, plannerSvc *planner.Service, clipperSvc *clipper.Clipper, metricsStore *metrics.Store, authSecret, dataDir, version string) *Handler {
	return &Handler{
		store:      store,
		planner:    plannerSvc,
		clipper:    clipperSvc,
		metrics:    metricsStore,
		authSecret: authSecret,
		dataDir:    dataDir,
		version:    version,
	}
}

// SetupRoutes configures all API routes.
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.GET("/api/health", h.GetHealth)

	api := router.Group("/api")
	api.Use(h.requireAuth())
	{
		api.GET("/profile", h.GetProfile)
		api.PUT("/profile", h.PutProfile)

		api.GET("/menu-books", h.ListMenuBooks)
		api.POST("/menu-books", h.CreateMenuBook)
		api.PUT("/menu-books/:id", h.UpdateMenuBook)
		api.DELETE("/menu-books/:id", h.DeleteMenuBook)

		api.GET("/ui-state", h.GetUIState)
		api.PUT("/ui-state", h.PutUIState)

		api.GET("/draft", h.GetDraft)
		api.PUT("/draft", h.PutDraft)
		api.DELETE("/draft", h.DeleteDraft)

		api.GET("/menu-extras", h.GetExtras)
		api.PUT("/menu-extras", h.PutExtras)

		api.POST("/menu-books/generate", h.GenerateMenuBook)
		api.POST("/menu-books/:id/modify", h.ModifyMenuBook)
		api.POST("/shopping-lists/generate", h.GenerateShoppingList)
		api.POST("/clip", h.ClipDish)
	}
}

// requireAuth validates the HS256 bearer token minted by the client.
// With no secret configured the server runs open, for local setups.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.authSecret == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing bearer token"})
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(h.authSecret), nil
		}, jwt.WithAudience(tokenAudience), jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		c.Next()
	}
}

// GetHealth handles the unauthenticated health probe.
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"sys":       metrics.GetSysHealth(h.dataDir),
	})
}

// serverError logs the error and responds with a structured payload the
// client's message extraction understands.
func serverError(c *gin.Context, status int, message string, err error) {
	log.Printf("Error: %s: %v", message, err)
	c.JSON(status, gin.H{"message": message})
}
