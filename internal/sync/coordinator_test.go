package sync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"omenu/internal/menu"
	"omenu/internal/store"
)

// fakeRemote records every call so tests can assert exactly which
// pushes the coordinator issued.
type fakeRemote struct {
	mu sync.Mutex

	profile *menu.UserPreferences
	books   []menu.MenuBook
	uiState *menu.UIState
	draft   *menu.DraftState
	extras  menu.MenuExtras

	fetchErr error
	saveErr  error

	savedProfiles []menu.UserPreferences
	savedUIStates []menu.UIState
	savedDrafts   []menu.DraftState
	savedExtras   []menu.MenuExtras
	createdBooks  []menu.MenuBook
	updatedBooks  []menu.MenuBook
	deletedIDs    []string
}

func (f *fakeRemote) FetchProfile(ctx context.Context) (*menu.UserPreferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile, f.fetchErr
}

func (f *fakeRemote) SaveProfile(ctx context.Context, profile menu.UserPreferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.savedProfiles = append(f.savedProfiles, profile)
	return f.saveErr
}

func (f *fakeRemote) FetchMenuBooks(ctx context.Context) ([]menu.MenuBook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return menu.CloneBooks(f.books), f.fetchErr
}

func (f *fakeRemote) CreateMenuBook(ctx context.Context, book menu.MenuBook) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdBooks = append(f.createdBooks, book)
	return f.saveErr
}

func (f *fakeRemote) UpdateMenuBook(ctx context.Context, book menu.MenuBook) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updatedBooks = append(f.updatedBooks, book)
	return f.saveErr
}

func (f *fakeRemote) DeleteMenuBook(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedIDs = append(f.deletedIDs, id)
	return f.saveErr
}

func (f *fakeRemote) FetchUIState(ctx context.Context) (*menu.UIState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uiState, f.fetchErr
}

func (f *fakeRemote) SaveUIState(ctx context.Context, state menu.UIState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.savedUIStates = append(f.savedUIStates, state)
	return f.saveErr
}

func (f *fakeRemote) FetchDraft(ctx context.Context) (*menu.DraftState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft, f.fetchErr
}

func (f *fakeRemote) SaveDraft(ctx context.Context, draft menu.DraftState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.savedDrafts = append(f.savedDrafts, draft)
	return f.saveErr
}

func (f *fakeRemote) FetchMenuExtras(ctx context.Context) (menu.MenuExtras, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.extras, f.fetchErr
}

func (f *fakeRemote) SaveMenuExtras(ctx context.Context, extras menu.MenuExtras) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.savedExtras = append(f.savedExtras, extras)
	return f.saveErr
}

func (f *fakeRemote) counts() (created, updated, deleted int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.createdBooks), len(f.updatedBooks), len(f.deletedIDs)
}

func syncBook(id string) menu.MenuBook {
	return menu.MenuBook{
		ID:        id,
		CreatedAt: "2026-08-24T10:00:00Z",
		Status:    menu.StatusReady,
		Preferences: menu.UserPreferences{
			NumPeople:  2,
			Budget:     120,
			Difficulty: menu.DifficultyMedium,
		},
		Menus: menu.WeekMenus{
			menu.Monday: menu.DayMenu{
				Lunch: []menu.Dish{{ID: "d1", Name: "Lentil soup", Source: menu.SourceAI}},
			},
		},
	}
}

// newTestCoordinator wires stores without local persistence and a long
// debounce, so pending pushes only ever fire through Flush.
func newTestCoordinator(t *testing.T, remote *fakeRemote) (*Coordinator, *store.DraftStore, *store.AppStore, *store.MenuExtrasStore) {
	t.Helper()
	draft := store.NewDraftStore(nil)
	app := store.NewAppStore(nil)
	extras := store.NewMenuExtrasStore()
	c := NewCoordinator(remote, draft, app, extras, Options{Debounce: time.Minute})
	c.Start(context.Background())
	t.Cleanup(c.Stop)
	return c, draft, app, extras
}

func TestInitialLoadAppliesSnapshot(t *testing.T) {
	remote := &fakeRemote{
		books:   []menu.MenuBook{syncBook("mb_a"), syncBook("mb_b")},
		uiState: &menu.UIState{CurrentWeekID: "mb_b", CurrentDayIndex: 3, IsMenuOpen: false},
		profile: &menu.UserPreferences{NumPeople: 4, Budget: 200, Difficulty: menu.DifficultyHard},
	}
	c, draft, app, _ := newTestCoordinator(t, remote)

	if !c.Ready() {
		t.Fatal("Coordinator not ready after Start")
	}
	current, ok := app.CurrentMenuBook()
	if !ok || current.ID != "mb_b" {
		t.Errorf("Expected current book mb_b, got %v (ok=%v)", current.ID, ok)
	}
	state := app.UIState()
	if state.CurrentDayIndex != 3 || state.IsMenuOpen {
		t.Errorf("UI state not applied: %+v", state)
	}
	if got := draft.Preferences().NumPeople; got != 4 {
		t.Errorf("Expected profile applied to draft, got numPeople %d", got)
	}

	// Applying the snapshot must not echo it back as pushes.
	c.Flush()
	if created, updated, deleted := remote.counts(); created+updated+deleted != 0 {
		t.Errorf("Snapshot apply triggered pushes: %d created, %d updated, %d deleted", created, updated, deleted)
	}
	if len(remote.savedProfiles) != 0 || len(remote.savedDrafts) != 0 {
		t.Error("Snapshot apply triggered profile or draft pushes")
	}
}

func TestInitialLoadDegradesPerFetch(t *testing.T) {
	remote := &fakeRemote{fetchErr: errors.New("backend down")}
	c, draft, app, extras := newTestCoordinator(t, remote)

	if !c.Ready() {
		t.Fatal("Load failures must not block readiness")
	}
	if len(app.MenuBooks()) != 0 {
		t.Error("Expected empty book collection after failed load")
	}
	if state := app.UIState(); !state.IsMenuOpen || state.CurrentDayIndex != 0 {
		t.Errorf("Expected default UI state, got %+v", state)
	}
	if len(extras.Extras()) != 0 {
		t.Error("Expected empty extras after failed load")
	}
	if got := draft.Preferences().NumPeople; got != 2 {
		t.Errorf("Expected default draft preferences, got numPeople %d", got)
	}
}

func TestMenuBookDiff(t *testing.T) {
	t.Run("CreateOnly", func(t *testing.T) {
		remote := &fakeRemote{}
		c, _, app, _ := newTestCoordinator(t, remote)

		app.AddMenuBook(syncBook("mb_new"))
		c.Flush()

		created, updated, deleted := remote.counts()
		if created != 1 || updated != 0 || deleted != 0 {
			t.Fatalf("Expected create only, got %d created, %d updated, %d deleted", created, updated, deleted)
		}
		if remote.createdBooks[0].ID != "mb_new" {
			t.Errorf("Wrong book created: %s", remote.createdBooks[0].ID)
		}
	})

	t.Run("UpdateOnly", func(t *testing.T) {
		remote := &fakeRemote{books: []menu.MenuBook{syncBook("mb_a")}}
		c, _, app, _ := newTestCoordinator(t, remote)

		app.UpdateDishNotes("mb_a", menu.Monday, menu.Lunch, "d1", "less salt")
		c.Flush()

		created, updated, deleted := remote.counts()
		if created != 0 || updated != 1 || deleted != 0 {
			t.Fatalf("Expected update only, got %d created, %d updated, %d deleted", created, updated, deleted)
		}
		notes := remote.updatedBooks[0].Menus[menu.Monday].Lunch[0].Notes
		if notes != "less salt" {
			t.Errorf("Pushed book missing the mutation, notes %q", notes)
		}
	})

	t.Run("DeleteOnly", func(t *testing.T) {
		remote := &fakeRemote{books: []menu.MenuBook{syncBook("mb_a"), syncBook("mb_b")}}
		c, _, app, _ := newTestCoordinator(t, remote)

		app.DeleteMenuBook("mb_a")
		c.Flush()

		created, updated, deleted := remote.counts()
		if created != 0 || updated != 0 || deleted != 1 {
			t.Fatalf("Expected delete only, got %d created, %d updated, %d deleted", created, updated, deleted)
		}
		if remote.deletedIDs[0] != "mb_a" {
			t.Errorf("Wrong book deleted: %s", remote.deletedIDs[0])
		}
	})

	t.Run("UntouchedBooksNotPushed", func(t *testing.T) {
		remote := &fakeRemote{books: []menu.MenuBook{syncBook("mb_a"), syncBook("mb_b")}}
		c, _, app, _ := newTestCoordinator(t, remote)

		app.AddMenuBook(syncBook("mb_c"))
		c.Flush()

		created, updated, deleted := remote.counts()
		if created != 1 || updated != 0 || deleted != 0 {
			t.Fatalf("Untouched books leaked into the diff: %d created, %d updated, %d deleted", created, updated, deleted)
		}
	})
}

func TestDiffBooksClassification(t *testing.T) {
	unchanged := syncBook("mb_same")
	changed := syncBook("mb_changed")
	changedAfter := syncBook("mb_changed")
	changedAfter.Status = menu.StatusError
	gone := syncBook("mb_gone")
	fresh := syncBook("mb_fresh")

	prev := []menu.MenuBook{unchanged, changed, gone}
	current := []menu.MenuBook{unchanged, changedAfter, fresh}

	created, updated, removed := DiffBooks(prev, current)
	if len(created) != 1 || created[0].ID != "mb_fresh" {
		t.Errorf("Unexpected created set: %v", created)
	}
	if len(updated) != 1 || updated[0].ID != "mb_changed" {
		t.Errorf("Unexpected updated set: %v", updated)
	}
	if len(removed) != 1 || removed[0] != "mb_gone" {
		t.Errorf("Unexpected removed set: %v", removed)
	}
}

func TestDebounceCoalescesBursts(t *testing.T) {
	remote := &fakeRemote{}
	draft := store.NewDraftStore(nil)
	app := store.NewAppStore(nil)
	extras := store.NewMenuExtrasStore()
	c := NewCoordinator(remote, draft, app, extras, Options{Debounce: 20 * time.Millisecond})
	c.Start(context.Background())
	defer c.Stop()

	for i := 0; i < 5; i++ {
		draft.AddKeyword("keyword-" + string(rune('a'+i)))
	}
	time.Sleep(150 * time.Millisecond)

	remote.mu.Lock()
	drafts := len(remote.savedDrafts)
	var keywords []string
	if drafts > 0 {
		keywords = remote.savedDrafts[drafts-1].Keywords
	}
	remote.mu.Unlock()

	if drafts != 1 {
		t.Fatalf("Expected burst to coalesce into 1 draft push, got %d", drafts)
	}
	if len(keywords) != 5 {
		t.Errorf("Push did not carry the final state, got %d keywords", len(keywords))
	}
}

func TestPushFailureIsSwallowed(t *testing.T) {
	remote := &fakeRemote{saveErr: errors.New("backend down")}
	c, _, app, _ := newTestCoordinator(t, remote)

	app.AddMenuBook(syncBook("mb_a"))
	c.Flush()

	// Local state survives the failed push.
	if !app.HasMenuBook("mb_a") {
		t.Fatal("Failed push must not touch local state")
	}

	// The baseline advanced anyway, so the next change produces an
	// update for the same book, not a duplicate create.
	app.UpdateDishNotes("mb_a", menu.Monday, menu.Lunch, "d1", "note")
	c.Flush()
	created, updated, _ := remote.counts()
	if created != 1 || updated != 1 {
		t.Errorf("Expected 1 create then 1 update, got %d created, %d updated", created, updated)
	}
}

func TestStopCancelsPendingPushes(t *testing.T) {
	remote := &fakeRemote{}
	c, draft, _, _ := newTestCoordinator(t, remote)

	draft.SetNumPeople(6)
	c.Stop()
	c.Flush()

	remote.mu.Lock()
	defer remote.mu.Unlock()
	if len(remote.savedDrafts) != 0 || len(remote.savedProfiles) != 0 {
		t.Error("Pushes fired after Stop")
	}
}
