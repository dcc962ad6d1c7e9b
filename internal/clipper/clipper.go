// Package clipper imports dishes from recipe web pages: it fetches the
// page, strips it down to readable text and asks the model to structure
// it as a dish.
package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"omenu/internal/llm"
	"omenu/internal/menu"
)

// Clipper handles fetching and extracting dishes from URLs.
type Clipper struct {
	textGen    llm.TextGenerator
	httpClient *http.Client
	newID      func(prefix string) string
}

// NewClipper creates a new Clipper instance.
func NewClipper(textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		textGen:    textGen,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		newID:      menu.NewID,
	}
}

// ClipURL fetches the URL, extracts the recipe using AI and returns it
// as a dish tagged as manually added, so it survives menu regeneration.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*menu.Dish, error) {
	content, err := c.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a recipe extraction expert. Extract the recipe from the following page text.
Return the result strictly as a JSON object with this structure:
{
  "name": "Recipe Title",
  "ingredients": [{"name": "item", "quantity": 2, "unit": "pcs", "category": "vegetables"}],
  "instructions": "Step by step instructions as one text.",
  "estimatedTime": 30,
  "servings": 4,
  "difficulty": "easy",
  "totalCalories": 500
}
Category must be one of: proteins, vegetables, fruits, grains, dairy, seasonings, pantry_staples, others.

Page Text:
%s
`, content)

	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai extraction failed: %w", err)
	}

	var dish menu.Dish
	if err := json.Unmarshal(llm.ExtractJSON(resp.Content), &dish); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, resp.Content)
	}
	if dish.Name == "" {
		return nil, fmt.Errorf("no recipe found at %s", url)
	}

	dish.ID = c.newID("dish")
	dish.Source = menu.SourceManual
	if dish.Ingredients == nil {
		dish.Ingredients = []menu.Ingredient{}
	}
	for i := range dish.Ingredients {
		dish.Ingredients[i].Category = validCategory(dish.Ingredients[i].Category)
	}
	return &dish, nil
}

func (c *Clipper) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}

func validCategory(c menu.IngredientCategory) menu.IngredientCategory {
	for _, valid := range menu.IngredientCategories {
		if c == valid {
			return c
		}
	}
	return menu.CategoryOthers
}
