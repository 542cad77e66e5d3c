package food

import "time"

// MealType identifies which meal of the day an entry was logged under.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Item is a saved catalog food. Identity is the ID; names are not unique.
// Macro fields are per serving.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ServingSize float64 `json:"serving_size"`
	ServingUnit string  `json:"serving_unit"`
	Calories    float64 `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
	IsFavorite  bool    `json:"is_favorite"`
}

// LoggedEntry records a consumption of a catalog item. Servings scales all
// macro fields of the referenced item linearly.
type LoggedEntry struct {
	ID        string    `json:"id"`
	FoodID    string    `json:"food_id"`
	Servings  float64   `json:"servings"`
	MealType  MealType  `json:"meal_type"`
	Date      string    `json:"date"` // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`
}

// LoggedFood is a logged entry joined with its catalog item. Item is nil when
// the referenced food could not be resolved; consumers must not assume it is
// populated.
type LoggedFood struct {
	Entry LoggedEntry
	Item  *Item
}
