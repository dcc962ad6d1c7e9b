package planner

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"omenu/internal/llm"
	"omenu/internal/menu"
	"omenu/internal/shared"
)

//go:embed shopping_prompt.md
var shoppingPrompt string

type shoppingPromptData struct {
	Menus string
}

type rawShoppingResult struct {
	Items []menu.ShoppingItem `json:"items"`
}

// GenerateShoppingList consolidates a week's menus into one shopping
// list. Callers pass AI-only menus; manually added dishes are shopped
// for by hand.
func (s *Service) GenerateShoppingList(ctx context.Context, menuBookID string, menus menu.WeekMenus) (*menu.ShoppingList, shared.StageMeta, error) {
	start := time.Now()

	menusJSON, err := json.Marshal(menu.NormalizeWeek(menus))
	if err != nil {
		return nil, shared.StageMeta{Stage: "ShoppingList"}, fmt.Errorf("failed to marshal menus: %w", err)
	}

	prompt, err := buildPrompt("shopping", shoppingPrompt, shoppingPromptData{Menus: string(menusJSON)})
	if err != nil {
		return nil, shared.StageMeta{Stage: "ShoppingList"}, err
	}

	resp, err := s.textGen.GenerateContent(ctx, prompt)
	meta := shared.StageMeta{Stage: "ShoppingList", Usage: resp.Usage, Latency: time.Since(start)}
	if err != nil {
		return nil, meta, fmt.Errorf("failed to generate shopping list: %w", err)
	}

	raw := &rawShoppingResult{}
	if err := json.Unmarshal(llm.ExtractJSON(resp.Content), raw); err != nil {
		return nil, meta, fmt.Errorf("failed to parse shopping list response %w: %s", err, resp.Content)
	}

	items := raw.Items
	if items == nil {
		items = []menu.ShoppingItem{}
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = s.newID("item")
		}
		items[i].Category = normalizeCategory(items[i].Category)
		items[i].Purchased = false
		items[i].IsManuallyAdded = false
	}

	list := &menu.ShoppingList{
		ID:         s.newID("sl"),
		MenuBookID: menuBookID,
		CreatedAt:  s.now().UTC().Format(time.RFC3339),
		Items:      items,
	}
	meta.Latency = time.Since(start)
	return list, meta, nil
}
