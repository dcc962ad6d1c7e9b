package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"omenu/internal/menu"
)

// GetProfile returns the saved preferences, or JSON null when none were
// saved yet.
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.store.Profile()
	if err != nil {
		serverError(c, http.StatusInternalServerError, "Failed to load profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PutProfile overwrites the preferences snapshot.
func (h *Handler) PutProfile(c *gin.Context) {
	var profile menu.UserPreferences
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid profile payload"})
		return
	}
	if err := h.store.SaveProfile(profile); err != nil {
		serverError(c, http.StatusInternalServerError, "Failed to save profile", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMenuBooks returns every stored menu book, newest first.
func (h *Handler) ListMenuBooks(c *gin.Context) {
	books, err := h.store.ListMenuBooks()
	if err != nil {
		serverError(c, http.StatusInternalServerError, "Failed to list menu books", err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// CreateMenuBook stores a new menu book.
func (h *Handler) CreateMenuBook(c *gin.Context) {
	var book menu.MenuBook
	if err := c.ShouldBindJSON(&book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid menu book payload"})
		return
	}
	if book.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Menu book id is required"})
		return
	}
	if err := h.store.SaveMenuBook(book); err != nil {
		serverError(c, http.StatusInternalServerError, "Failed to save menu book", err)
		return
	}
	c.Status(http.StatusCreated)
}

// UpdateMenuBook overwrites a stored menu book.
func (h *Handler) UpdateMenuBook(c *gin.Context) {
	var book menu.MenuBook
	if err := c.ShouldBindJSON(&book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid menu book payload"})
		return
	}
	book.ID = c.Param("id")
	if err := h.store.SaveMenuBook(book); err != nil {
		serverError(c, http.StatusInternalServerError, "Failed to save menu book", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteMenuBook removes a stored menu book. Deleting an absent book
// succeeds, so retried deletes stay idempotent.
func (h *Handler) DeleteMenuBook(c *gin.Context) {
	if err := h.store.DeleteMenuBook(c.Param("id")); err != nil {
		serverError(c, http.StatusInternalServerError, "Failed to delete menu book", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetUIState returns the persisted screen state, defaulting when none
// was saved yet.
func (h *Handler) GetUIState(c *gin.Context) {
	state, err := h.store.UIState()
	if err != nil {
		serverError(c, http.StatusInternalServerError, "Failed to load ui state", err)
		return
	}
	if state == nil {
		state = &menu.UIState{CurrentDayIndex: 0, IsMenuOpen: true}
	}
	c.JSON(http.StatusOK, state)
}

// PutUIState overwrites the screen state.
func (h *Handler) PutUIState(c *gin.Context) {
	var state menu.UIState
	if err := c.ShouldBindJSON(&state); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ui state payload"})
		return
	}
	if err := h.store.SaveUIState(state); err != nil {
		serverError(c, http.StatusInternalServerError, "Failed to save ui state", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetDraft returns the saved draft snapshot, or JSON null when none
// exists.
func (h *Handler) GetDraft(c *gin.Context) {
	draft, err := h.store.Draft()
	if err != nil {
		serverError(c, http.StatusInternalServerError, "Failed to load draft", err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// PutDraft overwrites the draft snapshot.
func (h *Handler) PutDraft(c *gin.Context) {
	var draft menu.DraftState
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid draft payload"})
		return
	}
	if err := h.store.SaveDraft(draft); err != nil {
		serverError(c, http.StatusInternalServerError, "Failed to save draft", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteDraft removes the stored draft snapshot.
func (h *Handler) DeleteDraft(c *gin.Context) {
	if err := h.store.ClearDraft(); err != nil {
		serverError(c, http.StatusInternalServerError, "Failed to clear draft", err)
		return
	}
	c.Status(http.StatusNoContent)
}

type extrasEnvelope struct {
	Extras menu.MenuExtras `json:"extras"`
}

// GetExtras returns the extras side map.
func (h *Handler) GetExtras(c *gin.Context) {
	extras, err := h.store.Extras()
	if err != nil {
		serverError(c, http.StatusInternalServerError, "Failed to load menu extras", err)
		return
	}
	c.JSON(http.StatusOK, extrasEnvelope{Extras: extras})
}

// PutExtras overwrites the extras side map.
func (h *Handler) PutExtras(c *gin.Context) {
	var envelope extrasEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid menu extras payload"})
		return
	}
	if envelope.Extras == nil {
		envelope.Extras = menu.MenuExtras{}
	}
	if err := h.store.SaveExtras(envelope.Extras); err != nil {
		serverError(c, http.StatusInternalServerError, "Failed to save menu extras", err)
		return
	}
	c.Status(http.StatusNoContent)
}
