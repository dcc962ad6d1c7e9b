package store

import (
	"testing"

	"omenu/internal/menu"
)

func TestShoppingUIDefaults(t *testing.T) {
	s := NewShoppingUIStore()

	if s.SelectedCategory() != CategoryAll {
		t.Errorf("Expected filter %q, got %q", CategoryAll, s.SelectedCategory())
	}
	for _, c := range menu.IngredientCategories {
		if s.IsCategoryCollapsed(c) {
			t.Errorf("Category %s collapsed by default", c)
		}
	}
	if _, ok := s.EditingItem(); ok {
		t.Error("Expected no editing item by default")
	}
	if s.ShowAddItemModal() {
		t.Error("Add-item modal visible by default")
	}
}

func TestShoppingUICategoryCollapse(t *testing.T) {
	s := NewShoppingUIStore()

	s.ToggleCategoryCollapse(menu.CategoryDairy)
	if !s.IsCategoryCollapsed(menu.CategoryDairy) {
		t.Error("Toggle did not collapse the category")
	}
	if s.IsCategoryCollapsed(menu.CategoryGrains) {
		t.Error("Unrelated category collapsed")
	}
	s.ToggleCategoryCollapse(menu.CategoryDairy)
	if s.IsCategoryCollapsed(menu.CategoryDairy) {
		t.Error("Double toggle did not expand the category")
	}
}

func TestShoppingUIEditingItemIsCopied(t *testing.T) {
	s := NewShoppingUIStore()

	item := menu.ShoppingItem{ID: "item_1", Name: "Pasta"}
	s.SetEditingItem(&item)
	item.Name = "changed"

	got, ok := s.EditingItem()
	if !ok || got.Name != "Pasta" {
		t.Errorf("Editing item not isolated from the caller: %+v", got)
	}

	s.SetEditingItem(nil)
	if _, ok := s.EditingItem(); ok {
		t.Error("Editing item not cleared")
	}
}

func TestShoppingUISearchAndModal(t *testing.T) {
	s := NewShoppingUIStore()

	s.SetSearchTerm("tomato")
	if s.SearchTerm() != "tomato" {
		t.Errorf("Unexpected search term %q", s.SearchTerm())
	}
	s.SetShowAddItemModal(true)
	if !s.ShowAddItemModal() {
		t.Error("Modal not shown")
	}
}
