package menu

// Weekday is one of the seven fixed day keys used across menus and schedules.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists the day keys in calendar order. All WeekMenus and
// CookSchedule iteration goes through this slice so ordering is stable.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// MealType is a meal slot within a day.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
)

// MealTypes lists the meal slots in day order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner}

// Difficulty is a coarse cooking difficulty level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IngredientCategory classifies shopping list items and ingredients.
type IngredientCategory string

const (
	CategoryProteins      IngredientCategory = "proteins"
	CategoryVegetables    IngredientCategory = "vegetables"
	CategoryFruits        IngredientCategory = "fruits"
	CategoryGrains        IngredientCategory = "grains"
	CategoryDairy         IngredientCategory = "dairy"
	CategorySeasonings    IngredientCategory = "seasonings"
	CategoryPantryStaples IngredientCategory = "pantry_staples"
	CategoryOthers        IngredientCategory = "others"
)

// IngredientCategories lists every valid category.
var IngredientCategories = []IngredientCategory{
	CategoryProteins,
	CategoryVegetables,
	CategoryFruits,
	CategoryGrains,
	CategoryDairy,
	CategorySeasonings,
	CategoryPantryStaples,
	CategoryOthers,
}

// DishSource marks who authored a dish. The AI/manual merge keys on it:
// manual dishes survive every regeneration untouched.
type DishSource string

const (
	SourceAI     DishSource = "ai"
	SourceManual DishSource = "manual"
)

// Ingredient is a single recipe ingredient.
type Ingredient struct {
	Name     string             `json:"name"`
	Quantity float64            `json:"quantity"`
	Unit     string             `json:"unit"`
	Category IngredientCategory `json:"category"`
}

// Dish is a single meal entry. The ID is unique within its meal slot.
type Dish struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Ingredients   []Ingredient `json:"ingredients"`
	Instructions  string       `json:"instructions"`
	EstimatedTime int          `json:"estimatedTime"`
	Servings      int          `json:"servings"`
	Difficulty    Difficulty   `json:"difficulty"`
	TotalCalories int          `json:"totalCalories"`
	Source        DishSource   `json:"source"`
	Notes         string       `json:"notes,omitempty"`
}

// DayMenu holds the dish lists for one day. Each slot is a list, not a
// single value, so a meal can carry multiple dishes.
type DayMenu struct {
	Breakfast []Dish `json:"breakfast"`
	Lunch     []Dish `json:"lunch"`
	Dinner    []Dish `json:"dinner"`
}

// Slot returns the dish list for a meal type.
func (m DayMenu) Slot(meal MealType) []Dish {
	switch meal {
	case Breakfast:
		return m.Breakfast
	case Lunch:
		return m.Lunch
	case Dinner:
		return m.Dinner
	}
	return nil
}

// WithSlot returns a copy of the day menu with one slot replaced.
func (m DayMenu) WithSlot(meal MealType, dishes []Dish) DayMenu {
	switch meal {
	case Breakfast:
		m.Breakfast = dishes
	case Lunch:
		m.Lunch = dishes
	case Dinner:
		m.Dinner = dishes
	}
	return m
}

// WeekMenus maps every weekday to its day menu. Normalized week menus
// always carry all 7 keys with non-nil slot slices.
type WeekMenus map[Weekday]DayMenu

// MealSelection marks which meals of a day are cooked at home.
type MealSelection struct {
	Breakfast bool `json:"breakfast"`
	Lunch     bool `json:"lunch"`
	Dinner    bool `json:"dinner"`
}

// Selected reports whether a meal slot is enabled.
func (s MealSelection) Selected(meal MealType) bool {
	switch meal {
	case Breakfast:
		return s.Breakfast
	case Lunch:
		return s.Lunch
	case Dinner:
		return s.Dinner
	}
	return false
}

// CookSchedule maps every weekday to its meal selection. Always carries
// all 7 keys, never partial.
type CookSchedule map[Weekday]MealSelection

// NewCookSchedule builds a full 7-day schedule with every meal set to
// the given value.
func NewCookSchedule(selected bool) CookSchedule {
	s := make(CookSchedule, len(Weekdays))
	for _, day := range Weekdays {
		s[day] = MealSelection{Breakfast: selected, Lunch: selected, Dinner: selected}
	}
	return s
}

// UserPreferences is the questionnaire snapshot a menu book is generated
// from.
type UserPreferences struct {
	Keywords      []string     `json:"keywords"`
	MustHaveItems []string     `json:"mustHaveItems"`
	DislikedItems []string     `json:"dislikedItems"`
	NumPeople     int          `json:"numPeople"`
	Budget        int          `json:"budget"`
	Difficulty    Difficulty   `json:"difficulty"`
	CookSchedule  CookSchedule `json:"cookSchedule"`
}

// BookStatus is the lifecycle state of a menu book.
type BookStatus string

const (
	StatusGenerating BookStatus = "generating"
	StatusReady      BookStatus = "ready"
	StatusError      BookStatus = "error"
)

// ShoppingItem is a single consolidated shopping list entry.
type ShoppingItem struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Category        IngredientCategory `json:"category"`
	TotalQuantity   float64            `json:"totalQuantity"`
	Unit            string             `json:"unit"`
	Purchased       bool               `json:"purchased"`
	IsManuallyAdded bool               `json:"isManuallyAdded,omitempty"`
}

// ShoppingList is the derived shopping list for one menu book. MenuBookID
// is a back-reference only, never an ownership pointer.
type ShoppingList struct {
	ID         string         `json:"id"`
	MenuBookID string         `json:"menuBookId"`
	CreatedAt  string         `json:"createdAt"`
	Items      []ShoppingItem `json:"items"`
}

// MenuBook is one generated weekly meal plan plus its shopping list.
// Identity is the ID; equality for sync purposes is structural.
type MenuBook struct {
	ID           string          `json:"id"`
	CreatedAt    string          `json:"createdAt"`
	Status       BookStatus      `json:"status"`
	Preferences  UserPreferences `json:"preferences"`
	Menus        WeekMenus       `json:"menus"`
	ShoppingList ShoppingList    `json:"shoppingList"`
}

// UIState is the remote-persisted screen state. An empty CurrentWeekID
// means no week is selected.
type UIState struct {
	CurrentWeekID   string `json:"currentWeekId"`
	CurrentDayIndex int    `json:"currentDayIndex"`
	IsMenuOpen      bool   `json:"isMenuOpen"`
}

// DraftState is the full in-progress questionnaire snapshot, including
// the wizard cursor and any generated book awaiting confirmation.
type DraftState struct {
	CurrentStep   int          `json:"currentStep"`
	Keywords      []string     `json:"keywords"`
	MustHaveItems []string     `json:"mustHaveItems"`
	DislikedItems []string     `json:"dislikedItems"`
	NumPeople     int          `json:"numPeople"`
	Budget        int          `json:"budget"`
	Difficulty    Difficulty   `json:"difficulty"`
	CookSchedule  CookSchedule `json:"cookSchedule"`
	LastUpdated   string       `json:"lastUpdated"`
	PendingResult *MenuBook    `json:"pendingResult,omitempty"`
}

// MenuExtras is a side map of additionally added dishes keyed by
// book id, day and meal, kept outside the MenuBook structure.
type MenuExtras map[string]map[Weekday]map[MealType][]Dish

// NormalizeWeek returns week menus with all 7 day keys present and every
// meal slot a non-nil list. Input days outside the fixed key set are
// dropped.
func NormalizeWeek(menus WeekMenus) WeekMenus {
	out := make(WeekMenus, len(Weekdays))
	for _, day := range Weekdays {
		dm := menus[day]
		if dm.Breakfast == nil {
			dm.Breakfast = []Dish{}
		}
		if dm.Lunch == nil {
			dm.Lunch = []Dish{}
		}
		if dm.Dinner == nil {
			dm.Dinner = []Dish{}
		}
		out[day] = dm
	}
	return out
}

// NormalizeSchedule returns a cook schedule with all 7 day keys present.
func NormalizeSchedule(schedule CookSchedule) CookSchedule {
	out := make(CookSchedule, len(Weekdays))
	for _, day := range Weekdays {
		out[day] = schedule[day]
	}
	return out
}
