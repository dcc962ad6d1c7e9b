package store

import (
	"sync"

	"omenu/internal/menu"
)

// CategoryAll widens the shopping filter to every category.
const CategoryAll = "all"

// ShoppingUIStore holds the transient shopping screen state: category
// filter, collapsed groups, search, the item being edited and modal
// visibility. Nothing here is persisted, locally or remotely.
type ShoppingUIStore struct {
	mu                  sync.Mutex
	selectedCategory    string
	collapsedCategories map[menu.IngredientCategory]bool
	searchTerm          string
	editingItem         *menu.ShoppingItem
	showAddItemModal    bool
}

// NewShoppingUIStore creates the shopping screen store with every
// category expanded and the filter set to all.
func NewShoppingUIStore() *ShoppingUIStore {
	collapsed := make(map[menu.IngredientCategory]bool, len(menu.IngredientCategories))
	for _, c := range menu.IngredientCategories {
		collapsed[c] = false
	}
	return &ShoppingUIStore{
		selectedCategory:    CategoryAll,
		collapsedCategories: collapsed,
	}
}

// SetSelectedCategory sets the category filter; use CategoryAll to
// clear it.
func (s *ShoppingUIStore) SetSelectedCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCategory = category
}

// SelectedCategory returns the active category filter.
func (s *ShoppingUIStore) SelectedCategory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedCategory
}

// ToggleCategoryCollapse flips one category group open or closed.
func (s *ShoppingUIStore) ToggleCategoryCollapse(category menu.IngredientCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collapsedCategories[category] = !s.collapsedCategories[category]
}

// IsCategoryCollapsed reports whether a category group is collapsed.
func (s *ShoppingUIStore) IsCategoryCollapsed(category menu.IngredientCategory) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collapsedCategories[category]
}

// SetSearchTerm sets the item search filter.
func (s *ShoppingUIStore) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = term
}

// SearchTerm returns the item search filter.
func (s *ShoppingUIStore) SearchTerm() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchTerm
}

// SetEditingItem marks an item as being edited, or clears it with nil.
func (s *ShoppingUIStore) SetEditingItem(item *menu.ShoppingItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item == nil {
		s.editingItem = nil
		return
	}
	it := *item
	s.editingItem = &it
}

// EditingItem returns a copy of the item being edited, or false.
func (s *ShoppingUIStore) EditingItem() (menu.ShoppingItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editingItem == nil {
		return menu.ShoppingItem{}, false
	}
	return *s.editingItem, true
}

// SetShowAddItemModal sets the add-item modal visibility.
func (s *ShoppingUIStore) SetShowAddItemModal(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showAddItemModal = visible
}

// ShowAddItemModal reports the add-item modal visibility.
func (s *ShoppingUIStore) ShowAddItemModal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showAddItemModal
}
