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

//go:embed modify_prompt.md
var modifyPrompt string

type modifyPromptData struct {
	Modification string
	CurrentMenus string
	NumPeople    int
	Budget       int
	Difficulty   menu.Difficulty
	Schedule     string
}

// Modify reworks an existing book following a natural language
// instruction. The incoming book is expected to carry AI-only menus;
// callers merge manual dishes back into the result themselves. Identity
// and preferences are preserved so the result can replace the original
// in place.
func (s *Service) Modify(ctx context.Context, modification string, current menu.MenuBook) (*menu.MenuBook, shared.StageMeta, error) {
	start := time.Now()
	schedule := menu.NormalizeSchedule(current.Preferences.CookSchedule)

	currentJSON, err := json.Marshal(current.Menus)
	if err != nil {
		return nil, shared.StageMeta{Stage: "Modify"}, fmt.Errorf("failed to marshal current menus: %w", err)
	}

	prompt, err := buildPrompt("modify", modifyPrompt, modifyPromptData{
		Modification: modification,
		CurrentMenus: string(currentJSON),
		NumPeople:    current.Preferences.NumPeople,
		Budget:       current.Preferences.Budget,
		Difficulty:   current.Preferences.Difficulty,
		Schedule:     describeSchedule(schedule),
	})
	if err != nil {
		return nil, shared.StageMeta{Stage: "Modify"}, err
	}

	resp, err := s.textGen.GenerateContent(ctx, prompt)
	meta := shared.StageMeta{Stage: "Modify", Usage: resp.Usage, Latency: time.Since(start)}
	if err != nil {
		return nil, meta, fmt.Errorf("failed to modify menu: %w", err)
	}

	raw := &rawMenuResult{}
	if err := json.Unmarshal(llm.ExtractJSON(resp.Content), raw); err != nil {
		return nil, meta, fmt.Errorf("failed to parse modify response %w: %s", err, resp.Content)
	}

	reworked := current
	reworked.Status = menu.StatusReady
	reworked.Menus = s.normalizeMenus(raw.Menus, schedule)
	meta.Latency = time.Since(start)
	return &reworked, meta, nil
}
