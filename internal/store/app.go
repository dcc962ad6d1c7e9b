package store

import (
	"log"
	"sync"

	"omenu/internal/menu"
)

const appSnapshotKey = "app"

// BookUpdate is a partial menu book update; nil fields are left alone.
type BookUpdate struct {
	CreatedAt    *string
	Status       *menu.BookStatus
	Preferences  *menu.UserPreferences
	Menus        menu.WeekMenus
	ShoppingList *menu.ShoppingList
}

// ItemUpdate is a partial shopping item update; nil fields are left
// alone.
type ItemUpdate struct {
	Name          *string
	Category      *menu.IngredientCategory
	TotalQuantity *float64
	Unit          *string
	Purchased     *bool
}

// ActiveDishRef points at one dish within one book's menus.
type ActiveDishRef struct {
	BookID string
	Day    menu.Weekday
	Meal   menu.MealType
	DishID string
}

// appPersisted is the projection of AppStore state saved locally.
// Transient fields (error, isGenerating, activeDish) are excluded.
type appPersisted struct {
	MenuBooks       []menu.MenuBook `json:"menuBooks"`
	CurrentWeekID   string          `json:"currentWeekId"`
	CurrentDayIndex int             `json:"currentDayIndex"`
	IsMenuOpen      bool            `json:"isMenuOpen"`
}

// AppStore is the authoritative client-side collection of menu books
// plus the currently focused week and day.
type AppStore struct {
	notifier

	mu              sync.Mutex
	books           []menu.MenuBook
	currentWeekID   string
	currentDayIndex int
	isMenuOpen      bool
	isGenerating    bool
	lastError       string
	activeDish      *ActiveDishRef
	persist         *Snapshots
}

// NewAppStore creates an app store, rehydrating the persisted projection
// from the local snapshot when one exists.
func NewAppStore(persist *Snapshots) *AppStore {
	s := &AppStore{isMenuOpen: true, persist: persist}

	if persist != nil {
		var saved appPersisted
		ok, err := persist.Load(appSnapshotKey, &saved)
		if err != nil {
			log.Printf("Warning: failed to load app snapshot: %v", err)
		} else if ok {
			s.books = normalizeBooks(saved.MenuBooks)
			s.currentWeekID = saved.CurrentWeekID
			s.currentDayIndex = clampDayIndex(saved.CurrentDayIndex)
			s.isMenuOpen = saved.IsMenuOpen
		}
	}
	return s
}

func normalizeBooks(books []menu.MenuBook) []menu.MenuBook {
	out := make([]menu.MenuBook, len(books))
	for i, b := range books {
		b.Menus = menu.NormalizeWeek(b.Menus)
		out[i] = b
	}
	return out
}

func clampDayIndex(index int) int {
	if index < 0 {
		return 0
	}
	if index > 6 {
		return 6
	}
	return index
}

func (s *AppStore) mutate(fn func()) {
	s.mu.Lock()
	fn()
	s.saveLocked()
	s.mu.Unlock()
	s.notify()
}

func (s *AppStore) saveLocked() {
	if s.persist == nil {
		return
	}
	snapshot := appPersisted{
		MenuBooks:       s.books,
		CurrentWeekID:   s.currentWeekID,
		CurrentDayIndex: s.currentDayIndex,
		IsMenuOpen:      s.isMenuOpen,
	}
	if err := s.persist.Save(appSnapshotKey, snapshot); err != nil {
		log.Printf("Warning: failed to persist app snapshot: %v", err)
	}
}

// MenuBooks returns a deep copy of the book collection.
func (s *AppStore) MenuBooks() []menu.MenuBook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return menu.CloneBooks(s.books)
}

// UIState returns the remote-synced screen state projection.
func (s *AppStore) UIState() menu.UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return menu.UIState{
		CurrentWeekID:   s.currentWeekID,
		CurrentDayIndex: s.currentDayIndex,
		IsMenuOpen:      s.isMenuOpen,
	}
}

// AddMenuBook appends a book and makes it current.
func (s *AppStore) AddMenuBook(book menu.MenuBook) {
	s.mutate(func() {
		book = menu.CloneBook(book)
		book.Menus = menu.NormalizeWeek(book.Menus)
		s.books = append(s.books, book)
		s.currentWeekID = book.ID
	})
}

// UpdateMenuBook merges non-nil fields into the matching book. No-op if
// the id is not found.
func (s *AppStore) UpdateMenuBook(id string, updates BookUpdate) {
	s.mutate(func() {
		for i := range s.books {
			if s.books[i].ID != id {
				continue
			}
			if updates.CreatedAt != nil {
				s.books[i].CreatedAt = *updates.CreatedAt
			}
			if updates.Status != nil {
				s.books[i].Status = *updates.Status
			}
			if updates.Preferences != nil {
				s.books[i].Preferences = menu.ClonePreferences(*updates.Preferences)
			}
			if updates.Menus != nil {
				s.books[i].Menus = menu.NormalizeWeek(menu.CloneWeekMenus(updates.Menus))
			}
			if updates.ShoppingList != nil {
				s.books[i].ShoppingList = menu.CloneShoppingList(*updates.ShoppingList)
			}
			return
		}
	})
}

// DeleteMenuBook removes a book. If it was current, no current book
// remains; callers pick a new one.
func (s *AppStore) DeleteMenuBook(id string) {
	s.mutate(func() {
		out := s.books[:0]
		for _, b := range s.books {
			if b.ID != id {
				out = append(out, b)
			}
		}
		s.books = out
		if s.currentWeekID == id {
			s.currentWeekID = ""
		}
	})
}

// SetMenuBooks replaces the whole collection, used when rehydrating from
// the remote snapshot. An empty currentWeekID falls back to the first
// book.
func (s *AppStore) SetMenuBooks(books []menu.MenuBook, currentWeekID string) {
	s.mutate(func() {
		s.books = normalizeBooks(menu.CloneBooks(books))
		if currentWeekID == "" && len(s.books) > 0 {
			currentWeekID = s.books[0].ID
		}
		s.currentWeekID = currentWeekID
	})
}

// SetCurrentWeekID switches the focused week.
func (s *AppStore) SetCurrentWeekID(id string) {
	s.mutate(func() { s.currentWeekID = id })
}

// CurrentMenuBook returns a copy of the book matching the current week,
// or false when none matches.
func (s *AppStore) CurrentMenuBook() (menu.MenuBook, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.books {
		if b.ID == s.currentWeekID {
			return menu.CloneBook(b), true
		}
	}
	return menu.MenuBook{}, false
}

// HasMenuBook reports whether a book with the given id exists.
func (s *AppStore) HasMenuBook(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.books {
		if b.ID == id {
			return true
		}
	}
	return false
}

// SetCurrentDayIndex moves the focused day, clamped to [0, 6].
func (s *AppStore) SetCurrentDayIndex(index int) {
	s.mutate(func() { s.currentDayIndex = clampDayIndex(index) })
}

// SetIsMenuOpen sets the menu-open flag.
func (s *AppStore) SetIsMenuOpen(open bool) {
	s.mutate(func() { s.isMenuOpen = open })
}

// ToggleMenuView flips the menu-open flag.
func (s *AppStore) ToggleMenuView() {
	s.mutate(func() { s.isMenuOpen = !s.isMenuOpen })
}

// SetGenerating sets the transient generation-in-progress flag.
func (s *AppStore) SetGenerating(generating bool) {
	s.mutate(func() { s.isGenerating = generating })
}

// IsGenerating reports whether a generation call is in flight.
func (s *AppStore) IsGenerating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isGenerating
}

// SetError fills the global last-error slot consumed by the active
// screen.
func (s *AppStore) SetError(message string) {
	s.mutate(func() { s.lastError = message })
}

// ClearError empties the last-error slot.
func (s *AppStore) ClearError() {
	s.mutate(func() { s.lastError = "" })
}

// LastError returns the global last-error slot.
func (s *AppStore) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// SetActiveDish points the detail view at one dish, or clears it with
// nil.
func (s *AppStore) SetActiveDish(ref *ActiveDishRef) {
	s.mutate(func() {
		if ref == nil {
			s.activeDish = nil
			return
		}
		r := *ref
		s.activeDish = &r
	})
}

// ActiveDish resolves the active dish reference against the current
// collection, returning false when the reference is unset or dangling.
func (s *AppStore) ActiveDish() (menu.Dish, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeDish == nil {
		return menu.Dish{}, false
	}
	for _, b := range s.books {
		if b.ID != s.activeDish.BookID {
			continue
		}
		for _, d := range b.Menus[s.activeDish.Day].Slot(s.activeDish.Meal) {
			if d.ID == s.activeDish.DishID {
				return d, true
			}
		}
	}
	return menu.Dish{}, false
}

// AddDish prepends a dish to one meal slot of one book. No-op if the
// book is absent.
func (s *AppStore) AddDish(bookID string, day menu.Weekday, meal menu.MealType, dish menu.Dish) {
	s.mutateSlot(bookID, day, meal, func(dishes []menu.Dish) []menu.Dish {
		return append([]menu.Dish{dish}, dishes...)
	})
}

// UpdateDishNotes sets the notes of one dish.
func (s *AppStore) UpdateDishNotes(bookID string, day menu.Weekday, meal menu.MealType, dishID, notes string) {
	s.mutateSlot(bookID, day, meal, func(dishes []menu.Dish) []menu.Dish {
		for i := range dishes {
			if dishes[i].ID == dishID {
				dishes[i].Notes = notes
			}
		}
		return dishes
	})
}

// RemoveDish removes one dish from one meal slot.
func (s *AppStore) RemoveDish(bookID string, day menu.Weekday, meal menu.MealType, dishID string) {
	s.mutateSlot(bookID, day, meal, func(dishes []menu.Dish) []menu.Dish {
		out := dishes[:0]
		for _, d := range dishes {
			if d.ID != dishID {
				out = append(out, d)
			}
		}
		return out
	})
}

func (s *AppStore) mutateSlot(bookID string, day menu.Weekday, meal menu.MealType, fn func([]menu.Dish) []menu.Dish) {
	s.mutate(func() {
		for i := range s.books {
			if s.books[i].ID != bookID {
				continue
			}
			dm := s.books[i].Menus[day]
			s.books[i].Menus[day] = dm.WithSlot(meal, fn(dm.Slot(meal)))
			return
		}
	})
}

// UpdateShoppingItem merges non-nil fields into one shopping item.
// No-op if the book or item is absent.
func (s *AppStore) UpdateShoppingItem(bookID, itemID string, updates ItemUpdate) {
	s.mutate(func() {
		for i := range s.books {
			if s.books[i].ID != bookID {
				continue
			}
			items := s.books[i].ShoppingList.Items
			for j := range items {
				if items[j].ID != itemID {
					continue
				}
				if updates.Name != nil {
					items[j].Name = *updates.Name
				}
				if updates.Category != nil {
					items[j].Category = *updates.Category
				}
				if updates.TotalQuantity != nil {
					items[j].TotalQuantity = *updates.TotalQuantity
				}
				if updates.Unit != nil {
					items[j].Unit = *updates.Unit
				}
				if updates.Purchased != nil {
					items[j].Purchased = *updates.Purchased
				}
				return
			}
			return
		}
	})
}

// AddShoppingItem appends an item to one book's shopping list. No-op if
// the book is absent.
func (s *AppStore) AddShoppingItem(bookID string, item menu.ShoppingItem) {
	s.mutate(func() {
		for i := range s.books {
			if s.books[i].ID == bookID {
				s.books[i].ShoppingList.Items = append(s.books[i].ShoppingList.Items, item)
				return
			}
		}
	})
}

// RemoveShoppingItem removes an item from one book's shopping list.
func (s *AppStore) RemoveShoppingItem(bookID, itemID string) {
	s.mutate(func() {
		for i := range s.books {
			if s.books[i].ID != bookID {
				continue
			}
			items := s.books[i].ShoppingList.Items
			out := items[:0]
			for _, it := range items {
				if it.ID != itemID {
					out = append(out, it)
				}
			}
			s.books[i].ShoppingList.Items = out
			return
		}
	})
}
