package api

import (
	"context"
	"net/http"

	"omenu/internal/menu"
)

// HealthStatus is the /api/health response.
type HealthStatus struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// Health checks the backend.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/api/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchProfile returns the saved preferences snapshot, or nil when none
// is saved yet.
func (c *Client) FetchProfile(ctx context.Context) (*menu.UserPreferences, error) {
	var out *menu.UserPreferences
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/api/profile", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveProfile stores the preferences snapshot.
func (c *Client) SaveProfile(ctx context.Context, profile menu.UserPreferences) error {
	return c.do(ctx, c.httpClient, http.MethodPut, "/api/profile", profile, nil)
}

// FetchMenuBooks returns every stored menu book, newest first.
func (c *Client) FetchMenuBooks(ctx context.Context) ([]menu.MenuBook, error) {
	var out []menu.MenuBook
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/api/menu-books", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMenuBook stores a new menu book.
func (c *Client) CreateMenuBook(ctx context.Context, book menu.MenuBook) error {
	return c.do(ctx, c.httpClient, http.MethodPost, "/api/menu-books", book, nil)
}

// UpdateMenuBook overwrites a stored menu book.
func (c *Client) UpdateMenuBook(ctx context.Context, book menu.MenuBook) error {
	return c.do(ctx, c.httpClient, http.MethodPut, "/api/menu-books/"+book.ID, book, nil)
}

// DeleteMenuBook removes a stored menu book.
func (c *Client) DeleteMenuBook(ctx context.Context, id string) error {
	return c.do(ctx, c.httpClient, http.MethodDelete, "/api/menu-books/"+id, nil, nil)
}

// FetchUIState returns the persisted screen state.
func (c *Client) FetchUIState(ctx context.Context) (*menu.UIState, error) {
	var out menu.UIState
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/api/ui-state", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveUIState stores the screen state.
func (c *Client) SaveUIState(ctx context.Context, state menu.UIState) error {
	return c.do(ctx, c.httpClient, http.MethodPut, "/api/ui-state", state, nil)
}

// FetchDraft returns the saved draft snapshot, or nil when none exists.
func (c *Client) FetchDraft(ctx context.Context) (*menu.DraftState, error) {
	var out *menu.DraftState
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/api/draft", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveDraft stores the draft snapshot.
func (c *Client) SaveDraft(ctx context.Context, draft menu.DraftState) error {
	return c.do(ctx, c.httpClient, http.MethodPut, "/api/draft", draft, nil)
}

// ClearDraft removes the stored draft snapshot.
func (c *Client) ClearDraft(ctx context.Context) error {
	return c.do(ctx, c.httpClient, http.MethodDelete, "/api/draft", nil, nil)
}

type extrasEnvelope struct {
	Extras menu.MenuExtras `json:"extras"`
}

// FetchMenuExtras returns the extras side map.
func (c *Client) FetchMenuExtras(ctx context.Context) (menu.MenuExtras, error) {
	var out extrasEnvelope
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/api/menu-extras", nil, &out); err != nil {
		return nil, err
	}
	if out.Extras == nil {
		out.Extras = menu.MenuExtras{}
	}
	return out.Extras, nil
}

// SaveMenuExtras stores the extras side map.
func (c *Client) SaveMenuExtras(ctx context.Context, extras menu.MenuExtras) error {
	return c.do(ctx, c.httpClient, http.MethodPut, "/api/menu-extras", extrasEnvelope{Extras: extras}, nil)
}

// GenerateMenuBook asks the AI service for a fresh weekly menu book.
// Long-running; carries the generation timeout.
func (c *Client) GenerateMenuBook(ctx context.Context, preferences menu.UserPreferences) (*menu.MenuBook, error) {
	var out menu.MenuBook
	if err := c.do(ctx, c.genClient, http.MethodPost, "/api/menu-books/generate", preferences, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type modifyRequest struct {
	Modification string        `json:"modification"`
	CurrentBook  menu.MenuBook `json:"currentBook"`
}

// ModifyMenuBook asks the AI service to rework a book given a natural
// language instruction. currentBook must carry AI-only menus; callers
// merge manual dishes back afterwards.
func (c *Client) ModifyMenuBook(ctx context.Context, id, modification string, currentBook menu.MenuBook) (*menu.MenuBook, error) {
	var out menu.MenuBook
	req := modifyRequest{Modification: modification, CurrentBook: currentBook}
	if err := c.do(ctx, c.genClient, http.MethodPost, "/api/menu-books/"+id+"/modify", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type shoppingListRequest struct {
	MenuBookID string         `json:"menuBookId"`
	Menus      menu.WeekMenus `json:"menus"`
}

// GenerateShoppingList asks the AI service to consolidate a week's
// AI-only menus into a shopping list.
func (c *Client) GenerateShoppingList(ctx context.Context, menuBookID string, menus menu.WeekMenus) (*menu.ShoppingList, error) {
	var out menu.ShoppingList
	req := shoppingListRequest{MenuBookID: menuBookID, Menus: menus}
	if err := c.do(ctx, c.genClient, http.MethodPost, "/api/shopping-lists/generate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type clipRequest struct {
	URL string `json:"url"`
}

// ClipDish imports a dish from a recipe web page, returned tagged as
// manually added.
func (c *Client) ClipDish(ctx context.Context, url string) (*menu.Dish, error) {
	var out menu.Dish
	if err := c.do(ctx, c.genClient, http.MethodPost, "/api/clip", clipRequest{URL: url}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
