package store

import (
	"log"
	"strings"
	"sync"
	"time"

	"omenu/internal/menu"
)

const (
	draftSnapshotKey = "draft"

	defaultNumPeople = 2
	defaultBudget    = 120
	minNumPeople     = 1
	maxNumPeople     = 10
	minBudget        = 50
)

// DraftStore holds exactly one in-progress plan questionnaire plus the
// wizard step cursor. All inputs are clamped or sanitized rather than
// rejected; every mutation stamps LastUpdated and notifies subscribers.
type DraftStore struct {
	notifier

	mu       sync.Mutex
	state    menu.DraftState
	persist  *Snapshots
	now      func() time.Time
}

// NewDraftStore creates a draft store, rehydrating from the local
// snapshot when one exists. persist may be nil for a purely in-memory
// store.
func NewDraftStore(persist *Snapshots) *DraftStore {
	s := &DraftStore{persist: persist, now: time.Now}
	s.state = defaultDraft(s.now())

	if persist != nil {
		var saved menu.DraftState
		ok, err := persist.Load(draftSnapshotKey, &saved)
		if err != nil {
			log.Printf("Warning: failed to load draft snapshot: %v", err)
		} else if ok {
			saved.CookSchedule = menu.NormalizeSchedule(saved.CookSchedule)
			if saved.CurrentStep < 1 {
				saved.CurrentStep = 1
			}
			s.state = saved
		}
	}
	return s
}

func defaultDraft(now time.Time) menu.DraftState {
	return menu.DraftState{
		CurrentStep:   1,
		Keywords:      []string{},
		MustHaveItems: []string{},
		DislikedItems: []string{},
		NumPeople:     defaultNumPeople,
		Budget:        defaultBudget,
		Difficulty:    menu.DifficultyMedium,
		CookSchedule:  menu.NewCookSchedule(false),
		LastUpdated:   now.UTC().Format(time.RFC3339),
	}
}

// State returns a deep copy of the full draft snapshot.
func (s *DraftStore) State() menu.DraftState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return menu.CloneDraft(s.state)
}

// Preferences returns the questionnaire fields as a preferences
// snapshot, ready to feed into generation.
func (s *DraftStore) Preferences() menu.UserPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return menu.ClonePreferences(menu.UserPreferences{
		Keywords:      s.state.Keywords,
		MustHaveItems: s.state.MustHaveItems,
		DislikedItems: s.state.DislikedItems,
		NumPeople:     s.state.NumPeople,
		Budget:        s.state.Budget,
		Difficulty:    s.state.Difficulty,
		CookSchedule:  s.state.CookSchedule,
	})
}

// mutate runs fn under the lock, stamps LastUpdated, persists the
// snapshot and notifies subscribers.
func (s *DraftStore) mutate(fn func(*menu.DraftState)) {
	s.mu.Lock()
	fn(&s.state)
	s.state.LastUpdated = s.now().UTC().Format(time.RFC3339)
	s.saveLocked()
	s.mu.Unlock()
	s.notify()
}

func (s *DraftStore) saveLocked() {
	if s.persist == nil {
		return
	}
	if err := s.persist.Save(draftSnapshotKey, s.state); err != nil {
		log.Printf("Warning: failed to persist draft snapshot: %v", err)
	}
}

// SetStep moves the wizard cursor. Steps below 1 clamp to 1.
func (s *DraftStore) SetStep(step int) {
	s.mutate(func(d *menu.DraftState) {
		if step < 1 {
			step = 1
		}
		d.CurrentStep = step
	})
}

// addUnique appends a trimmed value unless it is empty or already
// present, keeping adds idempotent under duplicate input.
func addUnique(list []string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return list
	}
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}

func removeValue(list []string, value string) []string {
	out := list[:0]
	for _, existing := range list {
		if existing != value {
			out = append(out, existing)
		}
	}
	return out
}

// SetKeywords replaces the keyword list.
func (s *DraftStore) SetKeywords(keywords []string) {
	s.mutate(func(d *menu.DraftState) { d.Keywords = menu.CloneStrings(keywords) })
}

// AddKeyword appends a keyword; duplicates are not appended.
func (s *DraftStore) AddKeyword(keyword string) {
	s.mutate(func(d *menu.DraftState) { d.Keywords = addUnique(d.Keywords, keyword) })
}

// RemoveKeyword removes a keyword by value.
func (s *DraftStore) RemoveKeyword(keyword string) {
	s.mutate(func(d *menu.DraftState) { d.Keywords = removeValue(d.Keywords, keyword) })
}

// SetMustHaveItems replaces the must-have list.
func (s *DraftStore) SetMustHaveItems(items []string) {
	s.mutate(func(d *menu.DraftState) { d.MustHaveItems = menu.CloneStrings(items) })
}

// AddMustHaveItem appends a must-have item; duplicates are not appended.
func (s *DraftStore) AddMustHaveItem(item string) {
	s.mutate(func(d *menu.DraftState) { d.MustHaveItems = addUnique(d.MustHaveItems, item) })
}

// RemoveMustHaveItem removes a must-have item by value.
func (s *DraftStore) RemoveMustHaveItem(item string) {
	s.mutate(func(d *menu.DraftState) { d.MustHaveItems = removeValue(d.MustHaveItems, item) })
}

// SetDislikedItems replaces the disliked list.
func (s *DraftStore) SetDislikedItems(items []string) {
	s.mutate(func(d *menu.DraftState) { d.DislikedItems = menu.CloneStrings(items) })
}

// AddDislikedItem appends a disliked item; duplicates are not appended.
func (s *DraftStore) AddDislikedItem(item string) {
	s.mutate(func(d *menu.DraftState) { d.DislikedItems = addUnique(d.DislikedItems, item) })
}

// RemoveDislikedItem removes a disliked item by value.
func (s *DraftStore) RemoveDislikedItem(item string) {
	s.mutate(func(d *menu.DraftState) { d.DislikedItems = removeValue(d.DislikedItems, item) })
}

// SetNumPeople sets the household size, clamped to [1, 10].
func (s *DraftStore) SetNumPeople(count int) {
	s.mutate(func(d *menu.DraftState) {
		if count < minNumPeople {
			count = minNumPeople
		}
		if count > maxNumPeople {
			count = maxNumPeople
		}
		d.NumPeople = count
	})
}

// SetBudget sets the weekly budget, clamped to the configured minimum.
func (s *DraftStore) SetBudget(budget int) {
	s.mutate(func(d *menu.DraftState) {
		if budget < minBudget {
			budget = minBudget
		}
		d.Budget = budget
	})
}

// SetDifficulty sets the cooking difficulty.
func (s *DraftStore) SetDifficulty(difficulty menu.Difficulty) {
	s.mutate(func(d *menu.DraftState) { d.Difficulty = difficulty })
}

// SetCookSchedule replaces the whole schedule.
func (s *DraftStore) SetCookSchedule(schedule menu.CookSchedule) {
	s.mutate(func(d *menu.DraftState) { d.CookSchedule = menu.CloneSchedule(schedule) })
}

// ToggleMeal flips a single day+meal cell.
func (s *DraftStore) ToggleMeal(day menu.Weekday, meal menu.MealType) {
	s.mutate(func(d *menu.DraftState) {
		sel := d.CookSchedule[day]
		switch meal {
		case menu.Breakfast:
			sel.Breakfast = !sel.Breakfast
		case menu.Lunch:
			sel.Lunch = !sel.Lunch
		case menu.Dinner:
			sel.Dinner = !sel.Dinner
		}
		d.CookSchedule[day] = sel
	})
}

// SelectAllMeals enables every cell of the schedule grid.
func (s *DraftStore) SelectAllMeals() {
	s.mutate(func(d *menu.DraftState) { d.CookSchedule = menu.NewCookSchedule(true) })
}

// DeselectAllMeals clears every cell of the schedule grid.
func (s *DraftStore) DeselectAllMeals() {
	s.mutate(func(d *menu.DraftState) { d.CookSchedule = menu.NewCookSchedule(false) })
}

// SetPreferences overwrites the questionnaire fields from a saved
// profile, leaving the wizard cursor alone.
func (s *DraftStore) SetPreferences(p menu.UserPreferences) {
	s.mutate(func(d *menu.DraftState) {
		d.Keywords = menu.CloneStrings(p.Keywords)
		d.MustHaveItems = menu.CloneStrings(p.MustHaveItems)
		d.DislikedItems = menu.CloneStrings(p.DislikedItems)
		d.NumPeople = p.NumPeople
		d.Budget = p.Budget
		d.Difficulty = p.Difficulty
		d.CookSchedule = menu.CloneSchedule(p.CookSchedule)
	})
}

// SetState overwrites the whole draft from a remote snapshot.
func (s *DraftStore) SetState(state menu.DraftState) {
	s.mutate(func(d *menu.DraftState) {
		*d = menu.CloneDraft(state)
		d.CookSchedule = menu.NormalizeSchedule(d.CookSchedule)
		if d.CurrentStep < 1 {
			d.CurrentStep = 1
		}
	})
}

// SetPendingResult stashes a generated book awaiting confirmation, so a
// reload can resume the wizard at the review step.
func (s *DraftStore) SetPendingResult(book *menu.MenuBook) {
	s.mutate(func(d *menu.DraftState) {
		if book == nil {
			d.PendingResult = nil
			return
		}
		b := menu.CloneBook(*book)
		d.PendingResult = &b
	})
}

// ClearPendingResult drops the stashed generation result.
func (s *DraftStore) ClearPendingResult() {
	s.SetPendingResult(nil)
}

// SelectedMealCount returns the number of enabled cells across the 7x3
// schedule grid.
func (s *DraftStore) SelectedMealCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, day := range menu.Weekdays {
		sel := s.state.CookSchedule[day]
		for _, meal := range menu.MealTypes {
			if sel.Selected(meal) {
				count++
			}
		}
	}
	return count
}

// ResetDraft restores every field to defaults and stamps a fresh
// timestamp.
func (s *DraftStore) ResetDraft() {
	s.mutate(func(d *menu.DraftState) { *d = defaultDraft(s.now()) })
}

// ResetProgress rewinds the wizard to step 1 and drops any pending
// result while keeping the questionnaire answers.
func (s *DraftStore) ResetProgress() {
	s.mutate(func(d *menu.DraftState) {
		d.CurrentStep = 1
		d.PendingResult = nil
	})
}
