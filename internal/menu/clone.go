package menu

// Deep copy helpers. Stores hand out copies so callers can never mutate
// shared state behind the store's back, and the sync baseline snapshot
// stays isolated from later mutations.

// CloneStrings copies a string slice, mapping nil to an empty slice.
func CloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// CloneDishes copies a dish list including each dish's ingredients.
func CloneDishes(in []Dish) []Dish {
	out := make([]Dish, len(in))
	for i, d := range in {
		ings := make([]Ingredient, len(d.Ingredients))
		copy(ings, d.Ingredients)
		d.Ingredients = ings
		out[i] = d
	}
	return out
}

// CloneWeekMenus deep-copies week menus, normalizing to all 7 days.
func CloneWeekMenus(in WeekMenus) WeekMenus {
	out := make(WeekMenus, len(Weekdays))
	for _, day := range Weekdays {
		dm := in[day]
		out[day] = DayMenu{
			Breakfast: CloneDishes(dm.Breakfast),
			Lunch:     CloneDishes(dm.Lunch),
			Dinner:    CloneDishes(dm.Dinner),
		}
	}
	return out
}

// CloneSchedule copies a cook schedule, normalizing to all 7 days.
func CloneSchedule(in CookSchedule) CookSchedule {
	out := make(CookSchedule, len(Weekdays))
	for _, day := range Weekdays {
		out[day] = in[day]
	}
	return out
}

// ClonePreferences deep-copies a preferences snapshot.
func ClonePreferences(in UserPreferences) UserPreferences {
	in.Keywords = CloneStrings(in.Keywords)
	in.MustHaveItems = CloneStrings(in.MustHaveItems)
	in.DislikedItems = CloneStrings(in.DislikedItems)
	in.CookSchedule = CloneSchedule(in.CookSchedule)
	return in
}

// CloneShoppingList deep-copies a shopping list.
func CloneShoppingList(in ShoppingList) ShoppingList {
	items := make([]ShoppingItem, len(in.Items))
	copy(items, in.Items)
	in.Items = items
	return in
}

// CloneBook deep-copies a menu book.
func CloneBook(in MenuBook) MenuBook {
	in.Preferences = ClonePreferences(in.Preferences)
	in.Menus = CloneWeekMenus(in.Menus)
	in.ShoppingList = CloneShoppingList(in.ShoppingList)
	return in
}

// CloneBooks deep-copies a menu book collection.
func CloneBooks(in []MenuBook) []MenuBook {
	out := make([]MenuBook, len(in))
	for i, b := range in {
		out[i] = CloneBook(b)
	}
	return out
}

// CloneDraft deep-copies a draft snapshot.
func CloneDraft(in DraftState) DraftState {
	in.Keywords = CloneStrings(in.Keywords)
	in.MustHaveItems = CloneStrings(in.MustHaveItems)
	in.DislikedItems = CloneStrings(in.DislikedItems)
	in.CookSchedule = CloneSchedule(in.CookSchedule)
	if in.PendingResult != nil {
		book := CloneBook(*in.PendingResult)
		in.PendingResult = &book
	}
	return in
}

// CloneExtras deep-copies a menu extras map.
func CloneExtras(in MenuExtras) MenuExtras {
	out := make(MenuExtras, len(in))
	for bookID, days := range in {
		outDays := make(map[Weekday]map[MealType][]Dish, len(days))
		for day, meals := range days {
			outMeals := make(map[MealType][]Dish, len(meals))
			for meal, dishes := range meals {
				outMeals[meal] = CloneDishes(dishes)
			}
			outDays[day] = outMeals
		}
		out[bookID] = outDays
	}
	return out
}
