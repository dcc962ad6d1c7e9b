// Package planner turns user preferences into weekly menu books using a
// text generation model. It owns the three generation stages: fresh menu
// creation, instruction-driven modification and shopping list
// consolidation.
package planner

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"text/template"
	"time"

	"omenu/internal/llm"
	"omenu/internal/menu"
	"omenu/internal/shared"
)

//go:embed menu_prompt.md
var menuPrompt string

// Service generates menu books and shopping lists from an LLM.
type Service struct {
	textGen llm.TextGenerator
	now     func() time.Time
	newID   func(prefix string) string
}

// NewService creates a planner backed by the given text generator.
func NewService(textGen llm.TextGenerator) *Service {
	return &Service{
		textGen: textGen,
		now:     time.Now,
		newID:   menu.NewID,
	}
}

type menuPromptData struct {
	Keywords      []string
	MustHaveItems []string
	DislikedItems []string
	NumPeople     int
	Budget        int
	Difficulty    menu.Difficulty
	Schedule      string
}

// rawMenuResult is the JSON envelope the model is instructed to return.
type rawMenuResult struct {
	Menus menu.WeekMenus `json:"menus"`
}

// Generate creates a fresh menu book from a preferences snapshot. Every
// dish comes back tagged as AI-authored and only the meals selected in
// the cook schedule are populated. The shopping list starts empty; it is
// generated separately on demand.
func (s *Service) Generate(ctx context.Context, prefs menu.UserPreferences) (*menu.MenuBook, shared.StageMeta, error) {
	start := time.Now()
	schedule := menu.NormalizeSchedule(prefs.CookSchedule)

	prompt, err := buildPrompt("menu", menuPrompt, menuPromptData{
		Keywords:      prefs.Keywords,
		MustHaveItems: prefs.MustHaveItems,
		DislikedItems: prefs.DislikedItems,
		NumPeople:     prefs.NumPeople,
		Budget:        prefs.Budget,
		Difficulty:    prefs.Difficulty,
		Schedule:      describeSchedule(schedule),
	})
	if err != nil {
		return nil, shared.StageMeta{Stage: "Generate"}, err
	}

	resp, err := s.textGen.GenerateContent(ctx, prompt)
	meta := shared.StageMeta{Stage: "Generate", Usage: resp.Usage, Latency: time.Since(start)}
	if err != nil {
		return nil, meta, fmt.Errorf("failed to generate menu: %w", err)
	}

	raw := &rawMenuResult{}
	if err := json.Unmarshal(llm.ExtractJSON(resp.Content), raw); err != nil {
		return nil, meta, fmt.Errorf("failed to parse menu response %w: %s", err, resp.Content)
	}

	bookID := s.newID("mb")
	createdAt := s.now().UTC().Format(time.RFC3339)
	book := &menu.MenuBook{
		ID:          bookID,
		CreatedAt:   createdAt,
		Status:      menu.StatusReady,
		Preferences: prefs,
		Menus:       s.normalizeMenus(raw.Menus, schedule),
		ShoppingList: menu.ShoppingList{
			ID:         s.newID("sl"),
			MenuBookID: bookID,
			CreatedAt:  createdAt,
			Items:      []menu.ShoppingItem{},
		},
	}
	meta.Latency = time.Since(start)
	return book, meta, nil
}

// normalizeMenus cleans a model-produced week: all 7 days present,
// unscheduled slots emptied, dishes tagged as AI-authored with ids and
// valid categories.
func (s *Service) normalizeMenus(menus menu.WeekMenus, schedule menu.CookSchedule) menu.WeekMenus {
	out := menu.NormalizeWeek(menus)
	for _, day := range menu.Weekdays {
		dm := out[day]
		for _, meal := range menu.MealTypes {
			dishes := dm.Slot(meal)
			if !schedule[day].Selected(meal) {
				dm = dm.WithSlot(meal, []menu.Dish{})
				continue
			}
			for i := range dishes {
				if dishes[i].ID == "" {
					dishes[i].ID = s.newID("dish")
				}
				dishes[i].Source = menu.SourceAI
				for j := range dishes[i].Ingredients {
					dishes[i].Ingredients[j].Category = normalizeCategory(dishes[i].Ingredients[j].Category)
				}
			}
			dm = dm.WithSlot(meal, dishes)
		}
		out[day] = dm
	}
	return out
}

// describeSchedule renders the cook schedule as prompt-friendly lines,
// one per day, listing only the selected meals.
func describeSchedule(schedule menu.CookSchedule) string {
	var buf bytes.Buffer
	for _, day := range menu.Weekdays {
		sel := schedule[day]
		meals := []string{}
		for _, meal := range menu.MealTypes {
			if sel.Selected(meal) {
				meals = append(meals, string(meal))
			}
		}
		if len(meals) == 0 {
			fmt.Fprintf(&buf, "- %s: no meals\n", day)
			continue
		}
		fmt.Fprintf(&buf, "- %s: ", day)
		for i, m := range meals {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(m)
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

func normalizeCategory(c menu.IngredientCategory) menu.IngredientCategory {
	for _, valid := range menu.IngredientCategories {
		if c == valid {
			return c
		}
	}
	return menu.CategoryOthers
}

func buildPrompt(name, promptText string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(promptText)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
