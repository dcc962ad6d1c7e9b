package menu

// ExtractAIOnly filters week menus down to AI-authored dishes. The result
// is what a regeneration or shopping-list round trip sends to the AI
// service: manual dishes never leave the client.
func ExtractAIOnly(menus WeekMenus) WeekMenus {
	out := make(WeekMenus, len(Weekdays))
	for _, day := range Weekdays {
		dm := menus[day]
		out[day] = DayMenu{
			Breakfast: filterBySource(dm.Breakfast, SourceAI),
			Lunch:     filterBySource(dm.Lunch, SourceAI),
			Dinner:    filterBySource(dm.Dinner, SourceAI),
		}
	}
	return out
}

// MergeMenus combines an AI response with the current menus. Per day and
// meal slot the result is the current manual dishes unchanged, followed
// by every dish from the AI result force-tagged as AI-authored. The slot
// is replaced wholesale: AI dishes from before the round trip are gone.
func MergeMenus(aiMenus, currentMenus WeekMenus) WeekMenus {
	out := make(WeekMenus, len(Weekdays))
	for _, day := range Weekdays {
		ai := aiMenus[day]
		current := currentMenus[day]
		out[day] = DayMenu{
			Breakfast: mergeSlot(ai.Breakfast, current.Breakfast),
			Lunch:     mergeSlot(ai.Lunch, current.Lunch),
			Dinner:    mergeSlot(ai.Dinner, current.Dinner),
		}
	}
	return out
}

func mergeSlot(aiDishes, currentDishes []Dish) []Dish {
	manual := filterBySource(currentDishes, SourceManual)
	merged := make([]Dish, 0, len(manual)+len(aiDishes))
	merged = append(merged, manual...)
	for _, d := range aiDishes {
		// Re-tag defensively: the AI response may omit or mutate the field.
		d.Source = SourceAI
		merged = append(merged, d)
	}
	return merged
}

func filterBySource(dishes []Dish, source DishSource) []Dish {
	out := make([]Dish, 0, len(dishes))
	for _, d := range dishes {
		if d.Source == source {
			out = append(out, d)
		}
	}
	return out
}
