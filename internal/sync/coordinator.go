// Package sync keeps the local stores and the remote store eventually
// consistent. On start it pulls the full remote snapshot in parallel;
// afterwards it watches the stores and pushes changes back, debounced
// per concern. Pushes are best-effort: a failed call is logged and
// swallowed, and is retried only when local state changes again.
package sync

import (
	"context"
	"log"
	"sync"
	"time"

	"omenu/internal/menu"
	"omenu/internal/store"
)

// DefaultDebounce is the quiet period after the last change before a
// pending push fires. Every new change within the window restarts it.
const DefaultDebounce = 600 * time.Millisecond

// RemoteStore is the persistence backend contract the coordinator
// mirrors store state into. Implemented by api.Client.
type RemoteStore interface {
	FetchProfile(ctx context.Context) (*menu.UserPreferences, error)
	SaveProfile(ctx context.Context, profile menu.UserPreferences) error

	FetchMenuBooks(ctx context.Context) ([]menu.MenuBook, error)
	CreateMenuBook(ctx context.Context, book menu.MenuBook) error
	UpdateMenuBook(ctx context.Context, book menu.MenuBook) error
	DeleteMenuBook(ctx context.Context, id string) error

	FetchUIState(ctx context.Context) (*menu.UIState, error)
	SaveUIState(ctx context.Context, state menu.UIState) error

	FetchDraft(ctx context.Context) (*menu.DraftState, error)
	SaveDraft(ctx context.Context, draft menu.DraftState) error

	FetchMenuExtras(ctx context.Context) (menu.MenuExtras, error)
	SaveMenuExtras(ctx context.Context, extras menu.MenuExtras) error
}

// concern is one independently debounced sync channel.
type concern string

const (
	concernProfile   concern = "profile"
	concernUIState   concern = "uiState"
	concernDraft     concern = "draft"
	concernExtras    concern = "extras"
	concernMenuBooks concern = "menuBooks"
)

// Coordinator observes the stores and mirrors them to the remote store.
// It never owns data: the stores stay authoritative, and local state may
// run ahead of remote when pushes fail.
type Coordinator struct {
	remote   RemoteStore
	draft    *store.DraftStore
	app      *store.AppStore
	extras   *store.MenuExtrasStore
	debounce time.Duration

	mu        sync.Mutex
	timers    map[concern]*time.Timer
	prevBooks []menu.MenuBook
	ready     bool
	stopped   bool
}

// Options tunes the coordinator. The zero value uses defaults.
type Options struct {
	// Debounce overrides the per-concern quiet period. Tests shrink it.
	Debounce time.Duration
}

// NewCoordinator wires a coordinator to its stores and remote backend.
// Call Start to load the remote snapshot and begin watching.
func NewCoordinator(remote RemoteStore, draft *store.DraftStore, app *store.AppStore, extras *store.MenuExtrasStore, opts Options) *Coordinator {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Coordinator{
		remote:   remote,
		draft:    draft,
		app:      app,
		extras:   extras,
		debounce: debounce,
		timers:   make(map[concern]*time.Timer),
	}
}

// Start loads the remote snapshot and begins watching the stores. The
// five fetches run in parallel; each one degrades independently to a
// documented default instead of aborting the others. Pushes are
// suppressed until the load completes so the just-loaded snapshot is
// never echoed back as a write.
func (c *Coordinator) Start(ctx context.Context) {
	var (
		wg      sync.WaitGroup
		profile *menu.UserPreferences
		books   []menu.MenuBook
		uiState = menu.UIState{CurrentDayIndex: 0, IsMenuOpen: true}
		draft   *menu.DraftState
		extras  = menu.MenuExtras{}
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		if p, err := c.remote.FetchProfile(ctx); err != nil {
			log.Printf("sync: profile load failed, using empty profile: %v", err)
		} else {
			profile = p
		}
	}()
	go func() {
		defer wg.Done()
		if b, err := c.remote.FetchMenuBooks(ctx); err != nil {
			log.Printf("sync: menu books load failed, starting empty: %v", err)
		} else {
			books = b
		}
	}()
	go func() {
		defer wg.Done()
		if s, err := c.remote.FetchUIState(ctx); err != nil {
			log.Printf("sync: ui state load failed, using defaults: %v", err)
		} else if s != nil {
			uiState = *s
		}
	}()
	go func() {
		defer wg.Done()
		if d, err := c.remote.FetchDraft(ctx); err != nil {
			log.Printf("sync: draft load failed, keeping local draft: %v", err)
		} else {
			draft = d
		}
	}()
	go func() {
		defer wg.Done()
		if e, err := c.remote.FetchMenuExtras(ctx); err != nil {
			log.Printf("sync: menu extras load failed, starting empty: %v", err)
		} else if e != nil {
			extras = e
		}
	}()
	wg.Wait()

	// Discard results when stopped during the load, so store state is
	// never touched after shutdown.
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if len(books) > 0 {
		c.app.SetMenuBooks(books, uiState.CurrentWeekID)
	}
	c.app.SetCurrentDayIndex(uiState.CurrentDayIndex)
	c.app.SetIsMenuOpen(uiState.IsMenuOpen)
	if profile != nil {
		c.draft.SetPreferences(*profile)
	}
	if len(extras) > 0 {
		c.extras.SetExtras(extras)
	}
	if draft != nil {
		c.draft.SetState(*draft)
	}

	c.mu.Lock()
	c.prevBooks = menu.CloneBooks(books)
	c.ready = true
	c.mu.Unlock()

	// Subscribing after the snapshot is applied means the apply itself
	// never schedules a push.
	c.draft.Subscribe(func() {
		c.schedule(concernDraft)
		c.schedule(concernProfile)
	})
	c.app.Subscribe(func() {
		c.schedule(concernUIState)
		c.schedule(concernMenuBooks)
	})
	c.extras.Subscribe(func() {
		c.schedule(concernExtras)
	})
}

// Ready reports whether the initial load has completed.
func (c *Coordinator) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// schedule restarts the concern's debounce timer. Only the final state
// within a window is ever pushed.
func (c *Coordinator) schedule(cn concern) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready || c.stopped {
		return
	}
	if t, ok := c.timers[cn]; ok {
		t.Stop()
	}
	c.timers[cn] = time.AfterFunc(c.debounce, func() {
		c.push(cn)
	})
}

// Flush fires every pending push immediately. Used at shutdown so the
// last debounce window is not lost.
func (c *Coordinator) Flush() {
	c.mu.Lock()
	pending := make([]concern, 0, len(c.timers))
	for cn, t := range c.timers {
		t.Stop()
		pending = append(pending, cn)
	}
	c.mu.Unlock()

	for _, cn := range pending {
		c.push(cn)
	}
}

// Stop cancels pending timers and prevents further pushes. In-flight
// initial load results are discarded.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	for cn, t := range c.timers {
		t.Stop()
		delete(c.timers, cn)
	}
}

// push sends one concern's current state to the remote store. Failures
// are logged and swallowed: sync is background replication, not a
// user-facing operation, and the next local change retries naturally.
func (c *Coordinator) push(cn concern) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	delete(c.timers, cn)
	c.mu.Unlock()

	ctx := context.Background()
	switch cn {
	case concernProfile:
		if err := c.remote.SaveProfile(ctx, c.draft.Preferences()); err != nil {
			log.Printf("sync: profile push failed: %v", err)
		}
	case concernUIState:
		if err := c.remote.SaveUIState(ctx, c.app.UIState()); err != nil {
			log.Printf("sync: ui state push failed: %v", err)
		}
	case concernDraft:
		if err := c.remote.SaveDraft(ctx, c.draft.State()); err != nil {
			log.Printf("sync: draft push failed: %v", err)
		}
	case concernExtras:
		if err := c.remote.SaveMenuExtras(ctx, c.extras.Extras()); err != nil {
			log.Printf("sync: menu extras push failed: %v", err)
		}
	case concernMenuBooks:
		c.pushMenuBooks(ctx)
	}
}

// pushMenuBooks diffs the current collection against the last pushed
// baseline and issues create/update/delete calls. The baseline advances
// only here, so every mutation inside one debounce window collapses
// into a single diff. One book's failure never blocks the others.
func (c *Coordinator) pushMenuBooks(ctx context.Context) {
	current := c.app.MenuBooks()

	c.mu.Lock()
	prev := c.prevBooks
	c.prevBooks = current
	c.mu.Unlock()

	created, updated, removedIDs := DiffBooks(prev, current)

	for _, book := range created {
		if err := c.remote.CreateMenuBook(ctx, book); err != nil {
			log.Printf("sync: create of book %s failed: %v", book.ID, err)
		}
	}
	for _, id := range removedIDs {
		if err := c.remote.DeleteMenuBook(ctx, id); err != nil {
			log.Printf("sync: delete of book %s failed: %v", id, err)
		}
	}
	for _, book := range updated {
		if err := c.remote.UpdateMenuBook(ctx, book); err != nil {
			log.Printf("sync: update of book %s failed: %v", book.ID, err)
		}
	}
}

// DiffBooks classifies the current collection against a previous
// snapshot: books with new ids are created, ids that vanished are
// removed, and books present in both whose content changed structurally
// are updated. The three groups are disjoint by construction.
func DiffBooks(prev, current []menu.MenuBook) (created, updated []menu.MenuBook, removedIDs []string) {
	prevByID := make(map[string]menu.MenuBook, len(prev))
	for _, b := range prev {
		prevByID[b.ID] = b
	}
	currentIDs := make(map[string]struct{}, len(current))
	for _, b := range current {
		currentIDs[b.ID] = struct{}{}
	}

	for _, b := range current {
		prevBook, existed := prevByID[b.ID]
		switch {
		case !existed:
			created = append(created, b)
		case !menu.EqualBook(prevBook, b):
			updated = append(updated, b)
		}
	}
	for _, b := range prev {
		if _, stillThere := currentIDs[b.ID]; !stillThere {
			removedIDs = append(removedIDs, b.ID)
		}
	}
	return created, updated, removedIDs
}
