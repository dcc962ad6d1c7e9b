package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"omenu/internal/menu"
	"omenu/internal/shared"
)

// GenerateMenuBook creates a fresh menu book from a preferences
// snapshot. The result is returned, not persisted: the client decides
// whether to keep it, and its sync layer creates it remotely.
func (h *Handler) GenerateMenuBook(c *gin.Context) {
	var prefs menu.UserPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid preferences payload"})
		return
	}

	book, meta, err := h.planner.Generate(c.Request.Context(), prefs)
	h.recordMeta(meta)
	if err != nil {
		serverError(c, http.StatusBadGateway, "Menu generation failed", err)
		return
	}
	c.JSON(http.StatusOK, book)
}

type modifyRequest struct {
	Modification string        `json:"modification"`
	CurrentBook  menu.MenuBook `json:"currentBook"`
}

// ModifyMenuBook reworks a book following a natural language
// instruction.
func (h *Handler) ModifyMenuBook(c *gin.Context) {
	var req modifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid modify payload"})
		return
	}
	if req.Modification == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Modification instruction is required"})
		return
	}
	req.CurrentBook.ID = c.Param("id")

	book, meta, err := h.planner.Modify(c.Request.Context(), req.Modification, req.CurrentBook)
	h.recordMeta(meta)
	if err != nil {
		serverError(c, http.StatusBadGateway, "Menu modification failed", err)
		return
	}
	c.JSON(http.StatusOK, book)
}

type shoppingListRequest struct {
	MenuBookID string         `json:"menuBookId"`
	Menus      menu.WeekMenus `json:"menus"`
}

// GenerateShoppingList consolidates a week's menus into a shopping
// list.
func (h *Handler) GenerateShoppingList(c *gin.Context) {
	var req shoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid shopping list payload"})
		return
	}

	list, meta, err := h.planner.GenerateShoppingList(c.Request.Context(), req.MenuBookID, req.Menus)
	h.recordMeta(meta)
	if err != nil {
		serverError(c, http.StatusBadGateway, "Shopping list generation failed", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type clipRequest struct {
	URL string `json:"url"`
}

// ClipDish imports a dish from a recipe web page.
func (h *Handler) ClipDish(c *gin.Context) {
	var req clipRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A url is required"})
		return
	}

	dish, err := h.clipper.ClipURL(c.Request.Context(), req.URL)
	if err != nil {
		serverError(c, http.StatusBadGateway, "Recipe import failed", err)
		return
	}
	c.JSON(http.StatusOK, dish)
}

// recordMeta persists stage metrics. Metric failures never fail the
// request.
func (h *Handler) recordMeta(meta shared.StageMeta) {
	if h.metrics == nil {
		return
	}
	if err := h.metrics.RecordMeta(meta); err != nil {
		log.Printf("Warning: failed to record %s metrics: %v", meta.Stage, err)
	}
}
