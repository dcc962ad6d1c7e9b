package clipper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"omenu/internal/llm"
	"omenu/internal/menu"
)

// --- Mocks ---

type MockTextGenerator struct {
	Response    string
	LastPrompt  string
	ShouldError bool
}

func (m *MockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.LastPrompt = prompt
	if m.ShouldError {
		return llm.ContentResponse{}, fmt.Errorf("mock ai error")
	}
	return llm.ContentResponse{Content: m.Response}, nil
}

// --- Tests ---

func TestFetchAndCleanHTML(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		html := `
		<html>
			<head><script>alert('bad');</script></head>
			<body>
				<h1>Tasty Recipe</h1>
				<div class="ads">Buy stuff!</div>
				<p>Mix flour and water.</p>
				<script>more_bad_stuff()</script>
				<footer>Copyright 2024</footer>
			</body>
		</html>`
		w.Write([]byte(html))
	}))
	defer ts.Close()

	c := NewClipper(&MockTextGenerator{})

	cleanText, err := c.fetchAndCleanHTML(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if strings.Contains(cleanText, "alert('bad')") {
		t.Error("Failed to remove <script> tags")
	}
	if strings.Contains(cleanText, "Buy stuff!") {
		t.Error("Failed to remove .ads class")
	}
	if strings.Contains(cleanText, "Copyright 2024") {
		t.Error("Failed to remove <footer>")
	}
	if !strings.Contains(cleanText, "Tasty Recipe") {
		t.Error("Expected to find 'Tasty Recipe'")
	}
	if !strings.Contains(cleanText, "Mix flour and water.") {
		t.Error("Expected to find body content")
	}
}

func TestClipURL_Success(t *testing.T) {
	aiResponse := `{"name": "Mock Pie", "ingredients": [{"name": "Apple", "quantity": 4, "unit": "pcs", "category": "fruits"}], "instructions": "Bake.", "estimatedTime": 60, "servings": 8, "difficulty": "easy", "totalCalories": 320}`

	mockAI := &MockTextGenerator{Response: aiResponse}
	c := NewClipper(mockAI)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>Apple pie recipe here</body></html>"))
	}))
	defer ts.Close()

	dish, err := c.ClipURL(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("ClipURL failed: %v", err)
	}

	if dish.Name != "Mock Pie" {
		t.Errorf("Expected name 'Mock Pie', got '%s'", dish.Name)
	}
	if dish.Source != menu.SourceManual {
		t.Errorf("Clipped dish must be tagged manual, got '%s'", dish.Source)
	}
	if !strings.HasPrefix(dish.ID, "dish_") {
		t.Errorf("Expected generated dish id, got '%s'", dish.ID)
	}
	if !strings.Contains(mockAI.LastPrompt, "Apple pie recipe here") {
		t.Error("Expected prompt to contain the page text")
	}
}

func TestClipURL_InvalidCategoryNormalized(t *testing.T) {
	aiResponse := `{"name": "Odd Dish", "ingredients": [{"name": "Thing", "quantity": 1, "unit": "pcs", "category": "exotic"}]}`
	c := NewClipper(&MockTextGenerator{Response: aiResponse})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>recipe</body></html>"))
	}))
	defer ts.Close()

	dish, err := c.ClipURL(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("ClipURL failed: %v", err)
	}
	if dish.Ingredients[0].Category != menu.CategoryOthers {
		t.Errorf("Invalid category not normalized, got '%s'", dish.Ingredients[0].Category)
	}
}

func TestClipURL_NoRecipe(t *testing.T) {
	c := NewClipper(&MockTextGenerator{Response: `{}`})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>nothing here</body></html>"))
	}))
	defer ts.Close()

	if _, err := c.ClipURL(context.Background(), ts.URL); err == nil {
		t.Fatal("Expected error for page without a recipe")
	}
}
