package menu

// Structural equality over the data model, written field-wise rather than
// by serialize-and-compare so key ordering can never produce a spurious
// difference. Slice order is significant: dish lists and shopping items
// are ordered collections.

// EqualStrings compares two string slices element-wise.
func EqualStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EqualIngredients compares two ingredient lists element-wise.
func EqualIngredients(a, b []Ingredient) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EqualDish compares two dishes including ingredients.
func EqualDish(a, b Dish) bool {
	if a.ID != b.ID || a.Name != b.Name || a.Instructions != b.Instructions {
		return false
	}
	if a.EstimatedTime != b.EstimatedTime || a.Servings != b.Servings {
		return false
	}
	if a.Difficulty != b.Difficulty || a.TotalCalories != b.TotalCalories {
		return false
	}
	if a.Source != b.Source || a.Notes != b.Notes {
		return false
	}
	return EqualIngredients(a.Ingredients, b.Ingredients)
}

// EqualDishes compares two dish lists element-wise.
func EqualDishes(a, b []Dish) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualDish(a[i], b[i]) {
			return false
		}
	}
	return true
}

// EqualWeekMenus compares week menus over the fixed weekday list, so an
// absent day and an empty day compare equal.
func EqualWeekMenus(a, b WeekMenus) bool {
	for _, day := range Weekdays {
		da, db := a[day], b[day]
		if !EqualDishes(da.Breakfast, db.Breakfast) ||
			!EqualDishes(da.Lunch, db.Lunch) ||
			!EqualDishes(da.Dinner, db.Dinner) {
			return false
		}
	}
	return true
}

// EqualSchedule compares cook schedules over the fixed weekday list.
func EqualSchedule(a, b CookSchedule) bool {
	for _, day := range Weekdays {
		if a[day] != b[day] {
			return false
		}
	}
	return true
}

// EqualPreferences compares two preference snapshots.
func EqualPreferences(a, b UserPreferences) bool {
	if a.NumPeople != b.NumPeople || a.Budget != b.Budget || a.Difficulty != b.Difficulty {
		return false
	}
	if !EqualStrings(a.Keywords, b.Keywords) ||
		!EqualStrings(a.MustHaveItems, b.MustHaveItems) ||
		!EqualStrings(a.DislikedItems, b.DislikedItems) {
		return false
	}
	return EqualSchedule(a.CookSchedule, b.CookSchedule)
}

// EqualShoppingList compares two shopping lists element-wise.
func EqualShoppingList(a, b ShoppingList) bool {
	if a.ID != b.ID || a.MenuBookID != b.MenuBookID || a.CreatedAt != b.CreatedAt {
		return false
	}
	if len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if a.Items[i] != b.Items[i] {
			return false
		}
	}
	return true
}

// EqualBook reports whether two menu books have identical content. The
// sync coordinator uses this to classify a book as updated.
func EqualBook(a, b MenuBook) bool {
	if a.ID != b.ID || a.CreatedAt != b.CreatedAt || a.Status != b.Status {
		return false
	}
	return EqualPreferences(a.Preferences, b.Preferences) &&
		EqualWeekMenus(a.Menus, b.Menus) &&
		EqualShoppingList(a.ShoppingList, b.ShoppingList)
}
