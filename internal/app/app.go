// Package app wires the client together: local stores, the backend API
// and the user-facing menu operations. Store mutations here are picked
// up by the sync coordinator and replicated to the backend.
package app

import (
	"context"
	"fmt"
	"log"

	"omenu/internal/api"
	"omenu/internal/menu"
	"omenu/internal/store"
)

// Backend is the slice of the API client the app uses directly. The
// remote store CRUD is driven by the sync coordinator, not by the app.
type Backend interface {
	GenerateMenuBook(ctx context.Context, preferences menu.UserPreferences) (*menu.MenuBook, error)
	ModifyMenuBook(ctx context.Context, id, modification string, currentBook menu.MenuBook) (*menu.MenuBook, error)
	GenerateShoppingList(ctx context.Context, menuBookID string, menus menu.WeekMenus) (*menu.ShoppingList, error)
	ClipDish(ctx context.Context, url string) (*menu.Dish, error)
	Health(ctx context.Context) (*api.HealthStatus, error)
}

// App holds the client's dependencies.
type App struct {
	backend Backend
	draft   *store.DraftStore
	books   *store.AppStore
	extras  *store.MenuExtrasStore
}

// NewApp creates and initializes a new App instance.
func NewApp(backend Backend, draft *store.DraftStore, books *store.AppStore, extras *store.MenuExtrasStore) *App {
	return &App{
		backend: backend,
		draft:   draft,
		books:   books,
		extras:  extras,
	}
}

// CreateMenu generates a menu book from the current draft answers and
// parks it as the draft's pending result, awaiting confirmation.
func (a *App) CreateMenu(ctx context.Context) (*menu.MenuBook, error) {
	a.books.SetGenerating(true)
	defer a.books.SetGenerating(false)

	book, err := a.backend.GenerateMenuBook(ctx, a.draft.Preferences())
	if err != nil {
		a.books.SetError(userMessage(err))
		return nil, fmt.Errorf("failed to generate menu: %w", err)
	}

	a.books.ClearError()
	a.draft.SetPendingResult(book)
	return book, nil
}

// ConfirmPendingMenu promotes the draft's pending result into the book
// collection and resets the wizard. No-op when nothing is pending.
func (a *App) ConfirmPendingMenu() (*menu.MenuBook, bool) {
	state := a.draft.State()
	if state.PendingResult == nil {
		return nil, false
	}
	book := *state.PendingResult
	a.books.AddMenuBook(book)
	a.draft.ResetDraft()
	return &book, true
}

// UpdateMenu reworks a book with a natural language instruction. Only
// the AI-authored dishes are sent to the model; manual dishes are merged
// back untouched afterwards. When the book was deleted locally while
// the request ran, the result is dropped.
func (a *App) UpdateMenu(ctx context.Context, bookID, instruction string) (*menu.MenuBook, error) {
	current, ok := a.bookByID(bookID)
	if !ok {
		return nil, fmt.Errorf("menu book %s not found", bookID)
	}

	a.books.SetGenerating(true)
	defer a.books.SetGenerating(false)

	aiOnly := current
	aiOnly.Menus = menu.ExtractAIOnly(current.Menus)

	reworked, err := a.backend.ModifyMenuBook(ctx, bookID, instruction, aiOnly)
	if err != nil {
		a.books.SetError(userMessage(err))
		return nil, fmt.Errorf("failed to modify menu: %w", err)
	}
	a.books.ClearError()

	merged := menu.MergeMenus(reworked.Menus, current.Menus)
	if !a.books.HasMenuBook(bookID) {
		log.Printf("Warning: menu book %s was deleted during modification, dropping result", bookID)
		return nil, nil
	}
	status := reworked.Status
	a.books.UpdateMenuBook(bookID, store.BookUpdate{Menus: merged, Status: &status})

	updated, _ := a.bookByID(bookID)
	return &updated, nil
}

// GenerateList builds the shopping list for a book from its AI-authored
// dishes and attaches it to the book.
func (a *App) GenerateList(ctx context.Context, bookID string) (*menu.ShoppingList, error) {
	current, ok := a.bookByID(bookID)
	if !ok {
		return nil, fmt.Errorf("menu book %s not found", bookID)
	}

	list, err := a.backend.GenerateShoppingList(ctx, bookID, menu.ExtractAIOnly(current.Menus))
	if err != nil {
		a.books.SetError(userMessage(err))
		return nil, fmt.Errorf("failed to generate shopping list: %w", err)
	}
	a.books.ClearError()

	if a.books.HasMenuBook(bookID) {
		a.books.UpdateMenuBook(bookID, store.BookUpdate{ShoppingList: list})
	}
	return list, nil
}

// Clip imports a dish from a recipe URL into a book's meal slot.
func (a *App) Clip(ctx context.Context, bookID string, day menu.Weekday, meal menu.MealType, url string) (*menu.Dish, error) {
	if _, ok := a.bookByID(bookID); !ok {
		return nil, fmt.Errorf("menu book %s not found", bookID)
	}

	dish, err := a.backend.ClipDish(ctx, url)
	if err != nil {
		a.books.SetError(userMessage(err))
		return nil, fmt.Errorf("failed to clip recipe: %w", err)
	}
	a.books.ClearError()

	a.books.AddDish(bookID, day, meal, *dish)
	return dish, nil
}

// Health probes the backend.
func (a *App) Health(ctx context.Context) (*api.HealthStatus, error) {
	return a.backend.Health(ctx)
}

func (a *App) bookByID(id string) (menu.MenuBook, bool) {
	for _, b := range a.books.MenuBooks() {
		if b.ID == id {
			return b, true
		}
	}
	return menu.MenuBook{}, false
}

// userMessage maps transport failures onto the messages shown in the
// error slot. Server errors already carry an extracted message.
func userMessage(err error) string {
	switch {
	case api.IsTimeout(err):
		return "The kitchen is taking too long. Please try again."
	case api.IsUnreachable(err):
		return "Cannot reach the menu service. Check your connection."
	default:
		return err.Error()
	}
}
