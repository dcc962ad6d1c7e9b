package acceptance_tests

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"omenu/internal/api"
	"omenu/internal/app"
	"omenu/internal/clipper"
	"omenu/internal/database"
	"omenu/internal/llm"
	"omenu/internal/menu"
	"omenu/internal/metrics"
	"omenu/internal/planner"
	"omenu/internal/server"
	"omenu/internal/storage"
	"omenu/internal/store"
	"omenu/internal/sync"
)

// --- Mock LLM Client ---

type mockLLMClient struct {
	generateContentCalls int
}

func (m *mockLLMClient) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.generateContentCalls++
	if strings.Contains(prompt, "Shopping List Consolidator") {
		return llm.ContentResponse{
			Content: `{"items": [{"name": "Pasta", "category": "grains", "totalQuantity": 400, "unit": "g"}]}`,
		}, nil
	}
	if strings.Contains(prompt, "Weekly Menu Modifier") {
		return llm.ContentResponse{
			Content: `{"menus": {"monday": {"lunch": [{"name": "Veggie Risotto"}]}}}`,
		}, nil
	}
	return llm.ContentResponse{
		Content: `{"menus": {"monday": {"lunch": [{"name": "Pasta al Pomodoro", "ingredients": [{"name": "Pasta", "quantity": 200, "unit": "g", "category": "grains"}], "instructions": "Boil and toss.", "estimatedTime": 25, "servings": 2, "difficulty": "easy", "totalCalories": 600}]}}}`,
	}, nil
}

func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDB(filepath.Join(t.TempDir(), "acceptance.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	textGen := &mockLLMClient{}
	handler := server.NewHandler(
		storage.NewStore(db.SQL),
		planner.NewService(textGen),
		clipper.NewClipper(textGen),
		metrics.NewStore(db.SQL),
		"",
		t.TempDir(),
		"acceptance",
	)
	router := gin.New()
	handler.SetupRoutes(router)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

type clientStack struct {
	app         *app.App
	draft       *store.DraftStore
	books       *store.AppStore
	coordinator *sync.Coordinator
}

func startClient(t *testing.T, baseURL, dataDir string) clientStack {
	t.Helper()

	snapshots, err := store.NewSnapshots(dataDir)
	if err != nil {
		t.Fatalf("Failed to create snapshots: %v", err)
	}
	draft := store.NewDraftStore(snapshots)
	books := store.NewAppStore(snapshots)
	extras := store.NewMenuExtrasStore()
	client := api.NewClient(baseURL, "")

	coordinator := sync.NewCoordinator(client, draft, books, extras, sync.Options{Debounce: time.Minute})
	coordinator.Start(context.Background())
	t.Cleanup(coordinator.Stop)

	return clientStack{
		app:         app.NewApp(client, draft, books, extras),
		draft:       draft,
		books:       books,
		coordinator: coordinator,
	}
}

// --- Acceptance Test ---

func TestFullWorkflow(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t)
	client := startClient(t, ts.URL, t.TempDir())

	// 1. Answer the wizard and generate a menu.
	client.draft.SetNumPeople(2)
	client.draft.SetBudget(120)
	client.draft.ToggleMeal(menu.Monday, menu.Lunch)

	if _, err := client.app.CreateMenu(ctx); err != nil {
		t.Fatalf("CreateMenu failed: %v", err)
	}
	book, ok := client.app.ConfirmPendingMenu()
	if !ok {
		t.Fatal("No pending menu after generation")
	}
	lunch := book.Menus[menu.Monday].Lunch
	if len(lunch) != 1 || lunch[0].Source != menu.SourceAI {
		t.Fatalf("Unexpected generated lunch: %v", lunch)
	}

	// 2. Add a manual dish, then rework the menu. The manual dish must
	// survive and the payload sent to the model must not include it.
	client.books.AddDish(book.ID, menu.Monday, menu.Lunch, menu.Dish{
		ID: "man1", Name: "Family lasagna", Source: menu.SourceManual,
	})
	updated, err := client.app.UpdateMenu(ctx, book.ID, "make it vegetarian")
	if err != nil {
		t.Fatalf("UpdateMenu failed: %v", err)
	}
	lunch = updated.Menus[menu.Monday].Lunch
	if len(lunch) != 2 {
		t.Fatalf("Expected manual + AI dish after modify, got %v", lunch)
	}
	if lunch[0].Name != "Family lasagna" || lunch[1].Name != "Veggie Risotto" {
		t.Errorf("Merge order wrong: %v", lunch)
	}
	if lunch[1].Source != menu.SourceAI {
		t.Errorf("Reworked dish not tagged AI: %v", lunch[1])
	}

	// 3. Build the shopping list.
	list, err := client.app.GenerateList(ctx, book.ID)
	if err != nil {
		t.Fatalf("GenerateList failed: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].Name != "Pasta" {
		t.Errorf("Unexpected shopping list: %v", list.Items)
	}

	// 4. Push everything to the backend and start a second client from
	// a clean data directory: it must see the same state.
	client.coordinator.Flush()

	second := startClient(t, ts.URL, t.TempDir())
	if !second.coordinator.Ready() {
		t.Fatal("Second client did not finish its initial load")
	}
	books := second.books.MenuBooks()
	if len(books) != 1 || books[0].ID != book.ID {
		t.Fatalf("Second client missing the synced book: %v", books)
	}
	lunch = books[0].Menus[menu.Monday].Lunch
	if len(lunch) != 2 || lunch[0].Name != "Family lasagna" {
		t.Errorf("Synced book lost the manual dish: %v", lunch)
	}
	if books[0].ShoppingList.ID != list.ID {
		t.Errorf("Synced book lost its shopping list")
	}

	// 5. Delete on the second client, push, and confirm the first
	// client's next load sees an empty collection.
	second.books.DeleteMenuBook(book.ID)
	second.coordinator.Flush()

	third := startClient(t, ts.URL, t.TempDir())
	if got := third.books.MenuBooks(); len(got) != 0 {
		t.Errorf("Expected empty collection after synced delete, got %v", got)
	}
}
