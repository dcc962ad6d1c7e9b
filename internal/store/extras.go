package store

import (
	"sync"

	"omenu/internal/menu"
)

// MenuExtrasStore holds the side map of additionally added dishes keyed
// by book, day and meal, kept outside the menu book structure. It is
// synced remotely but never persisted locally.
type MenuExtrasStore struct {
	notifier

	mu     sync.Mutex
	extras menu.MenuExtras
}

// NewMenuExtrasStore creates an empty extras store.
func NewMenuExtrasStore() *MenuExtrasStore {
	return &MenuExtrasStore{extras: menu.MenuExtras{}}
}

// Extras returns a deep copy of the extras map.
func (s *MenuExtrasStore) Extras() menu.MenuExtras {
	s.mu.Lock()
	defer s.mu.Unlock()
	return menu.CloneExtras(s.extras)
}

// SetExtras replaces the whole map, used when rehydrating from the
// remote snapshot.
func (s *MenuExtrasStore) SetExtras(extras menu.MenuExtras) {
	s.mu.Lock()
	s.extras = menu.CloneExtras(extras)
	s.mu.Unlock()
	s.notify()
}

// AddExtra appends a dish under book/day/meal, creating nested maps as
// needed.
func (s *MenuExtrasStore) AddExtra(bookID string, day menu.Weekday, meal menu.MealType, dish menu.Dish) {
	s.mu.Lock()
	days, ok := s.extras[bookID]
	if !ok {
		days = make(map[menu.Weekday]map[menu.MealType][]menu.Dish)
		s.extras[bookID] = days
	}
	meals, ok := days[day]
	if !ok {
		meals = make(map[menu.MealType][]menu.Dish)
		days[day] = meals
	}
	meals[meal] = append(meals[meal], dish)
	s.mu.Unlock()
	s.notify()
}

// UpdateExtraNotes sets the notes of one extra dish. No-op when the
// path or dish is absent.
func (s *MenuExtrasStore) UpdateExtraNotes(bookID string, day menu.Weekday, meal menu.MealType, dishID, notes string) {
	s.mu.Lock()
	changed := false
	if meals, ok := s.extras[bookID]; ok {
		if dishes, ok := meals[day]; ok {
			for i := range dishes[meal] {
				if dishes[meal][i].ID == dishID {
					dishes[meal][i].Notes = notes
					changed = true
				}
			}
		}
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// RemoveExtra removes one extra dish. No-op when the path or dish is
// absent.
func (s *MenuExtrasStore) RemoveExtra(bookID string, day menu.Weekday, meal menu.MealType, dishID string) {
	s.mu.Lock()
	changed := false
	if days, ok := s.extras[bookID]; ok {
		if meals, ok := days[day]; ok {
			dishes := meals[meal]
			out := dishes[:0]
			for _, d := range dishes {
				if d.ID != dishID {
					out = append(out, d)
				} else {
					changed = true
				}
			}
			meals[meal] = out
		}
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}
