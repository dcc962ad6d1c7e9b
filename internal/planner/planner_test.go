package planner

import (
	"context"
	"strings"
	"testing"
	"time"

	"omenu/internal/llm"
	"omenu/internal/menu"
)

type MockTextGenerator struct {
	lastPrompt string
	response   string
	err        error
}

func (m *MockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.lastPrompt = prompt
	if m.err != nil {
		return llm.ContentResponse{}, m.err
	}
	return llm.ContentResponse{Content: m.response}, nil
}

func newTestService(gen *MockTextGenerator) *Service {
	counter := 0
	return &Service{
		textGen: gen,
		now:     func() time.Time { return time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC) },
		newID: func(prefix string) string {
			counter++
			return prefix + "_" + strings.Repeat("0", 11) + string(rune('0'+counter%10))
		},
	}
}

func lunchOnlyMonday() menu.UserPreferences {
	schedule := menu.NewCookSchedule(false)
	schedule[menu.Monday] = menu.MealSelection{Lunch: true}
	return menu.UserPreferences{
		Keywords:     []string{"italian"},
		NumPeople:    2,
		Budget:       120,
		Difficulty:   menu.DifficultyMedium,
		CookSchedule: schedule,
	}
}

func TestGenerate(t *testing.T) {
	gen := &MockTextGenerator{
		response: `{"menus": {"monday": {"lunch": [{"name": "Pasta", "ingredients": [{"name": "Pasta", "quantity": 200, "unit": "g", "category": "grains"}], "instructions": "Boil.", "estimatedTime": 20, "servings": 2, "difficulty": "easy", "totalCalories": 600}], "dinner": [{"name": "Sneaky dinner"}]}}}`,
	}
	svc := newTestService(gen)

	book, meta, err := svc.Generate(context.Background(), lunchOnlyMonday())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if meta.Stage != "Generate" {
		t.Errorf("Unexpected stage %q", meta.Stage)
	}
	if !strings.HasPrefix(book.ID, "mb_") {
		t.Errorf("Unexpected book id %q", book.ID)
	}
	if book.CreatedAt != "2026-08-24T10:00:00Z" {
		t.Errorf("Unexpected createdAt %q", book.CreatedAt)
	}
	if book.Status != menu.StatusReady {
		t.Errorf("Unexpected status %q", book.Status)
	}

	lunch := book.Menus[menu.Monday].Lunch
	if len(lunch) != 1 || lunch[0].Name != "Pasta" {
		t.Fatalf("Unexpected Monday lunch: %v", lunch)
	}
	if lunch[0].Source != menu.SourceAI {
		t.Errorf("Generated dish not tagged as AI, got %q", lunch[0].Source)
	}
	if lunch[0].ID == "" {
		t.Error("Generated dish missing an id")
	}

	// Dinner was not in the cook schedule, so the hallucinated dish is
	// dropped.
	if len(book.Menus[menu.Monday].Dinner) != 0 {
		t.Error("Unscheduled meal slot was populated")
	}
	for _, day := range menu.Weekdays {
		dm, ok := book.Menus[day]
		if !ok {
			t.Fatalf("Day %s missing from normalized menus", day)
		}
		if dm.Breakfast == nil || dm.Lunch == nil || dm.Dinner == nil {
			t.Errorf("Day %s has nil meal slots", day)
		}
	}

	if book.ShoppingList.MenuBookID != book.ID || len(book.ShoppingList.Items) != 0 {
		t.Errorf("Expected empty placeholder shopping list, got %+v", book.ShoppingList)
	}
}

func TestGenerateParsesFencedResponse(t *testing.T) {
	gen := &MockTextGenerator{
		response: "Here is your menu:\n```json\n{\"menus\": {\"monday\": {\"lunch\": [{\"name\": \"Soup\"}]}}}\n```\nEnjoy!",
	}
	svc := newTestService(gen)

	book, _, err := svc.Generate(context.Background(), lunchOnlyMonday())
	if err != nil {
		t.Fatalf("Generate failed on fenced response: %v", err)
	}
	if got := book.Menus[menu.Monday].Lunch; len(got) != 1 || got[0].Name != "Soup" {
		t.Errorf("Fenced payload not extracted: %v", got)
	}
}

func TestGenerateRejectsGarbageResponse(t *testing.T) {
	gen := &MockTextGenerator{response: "I cannot help with that."}
	svc := newTestService(gen)

	_, _, err := svc.Generate(context.Background(), lunchOnlyMonday())
	if err == nil {
		t.Fatal("Expected parse error for non-JSON response")
	}
}

func TestGeneratePromptCarriesPreferences(t *testing.T) {
	gen := &MockTextGenerator{response: `{"menus": {}}`}
	svc := newTestService(gen)

	prefs := lunchOnlyMonday()
	prefs.DislikedItems = []string{"cilantro"}
	if _, _, err := svc.Generate(context.Background(), prefs); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, want := range []string{"italian", "cilantro", "monday: lunch", "tuesday: no meals"} {
		if !strings.Contains(gen.lastPrompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}

func TestModify(t *testing.T) {
	gen := &MockTextGenerator{
		response: `{"menus": {"monday": {"lunch": [{"id": "dish_aaaaaaaaaaaa", "name": "Risotto"}]}}}`,
	}
	svc := newTestService(gen)

	current := menu.MenuBook{
		ID:          "mb_existing0000",
		CreatedAt:   "2026-08-20T09:00:00Z",
		Status:      menu.StatusReady,
		Preferences: lunchOnlyMonday(),
		Menus: menu.WeekMenus{
			menu.Monday: menu.DayMenu{Lunch: []menu.Dish{{ID: "dish_aaaaaaaaaaaa", Name: "Pasta", Source: menu.SourceAI}}},
		},
	}

	book, meta, err := svc.Modify(context.Background(), "make monday vegetarian", current)
	if err != nil {
		t.Fatalf("Modify failed: %v", err)
	}
	if meta.Stage != "Modify" {
		t.Errorf("Unexpected stage %q", meta.Stage)
	}
	if book.ID != current.ID || book.CreatedAt != current.CreatedAt {
		t.Error("Modify must preserve book identity")
	}
	lunch := book.Menus[menu.Monday].Lunch
	if len(lunch) != 1 || lunch[0].Name != "Risotto" {
		t.Fatalf("Unexpected reworked lunch: %v", lunch)
	}
	if lunch[0].ID != "dish_aaaaaaaaaaaa" {
		t.Errorf("Preserved dish id lost, got %q", lunch[0].ID)
	}
	if !strings.Contains(gen.lastPrompt, "make monday vegetarian") {
		t.Error("Prompt missing the modification instruction")
	}
	if !strings.Contains(gen.lastPrompt, "Pasta") {
		t.Error("Prompt missing the current menu")
	}
}

func TestGenerateShoppingList(t *testing.T) {
	gen := &MockTextGenerator{
		response: `{"items": [{"name": "Pasta", "category": "grains", "totalQuantity": 400, "unit": "g"}, {"name": "Mystery", "category": "nonsense", "totalQuantity": 1, "unit": "pcs", "purchased": true}]}`,
	}
	svc := newTestService(gen)

	menus := menu.WeekMenus{
		menu.Monday: menu.DayMenu{Lunch: []menu.Dish{{ID: "d1", Name: "Pasta", Source: menu.SourceAI}}},
	}
	list, meta, err := svc.GenerateShoppingList(context.Background(), "mb_existing0000", menus)
	if err != nil {
		t.Fatalf("GenerateShoppingList failed: %v", err)
	}
	if meta.Stage != "ShoppingList" {
		t.Errorf("Unexpected stage %q", meta.Stage)
	}
	if !strings.HasPrefix(list.ID, "sl_") || list.MenuBookID != "mb_existing0000" {
		t.Errorf("Unexpected list identity: %+v", list)
	}
	if len(list.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(list.Items))
	}
	if list.Items[0].ID == "" {
		t.Error("Item missing generated id")
	}
	if list.Items[1].Category != menu.CategoryOthers {
		t.Errorf("Invalid category not normalized, got %q", list.Items[1].Category)
	}
	if list.Items[1].Purchased {
		t.Error("Fresh list items must start unpurchased")
	}
}

func TestNewIDShape(t *testing.T) {
	id := menu.NewID("mb")
	if !strings.HasPrefix(id, "mb_") || len(id) != len("mb_")+12 {
		t.Errorf("Unexpected id shape %q", id)
	}
}
