package nutrition

import "macrolog/internal/food"

// Totals is a running sum of consumed (or remaining) macros for a day.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// SumConsumed totals the macros of a day's logged entries. Entries without a
// joined catalog item contribute zero. A zero servings value counts as one
// serving.
func SumConsumed(entries []food.LoggedFood) Totals {
	var t Totals
	for _, e := range entries {
		if e.Item == nil {
			continue
		}
		servings := e.Entry.Servings
		if servings == 0 {
			servings = 1
		}
		t.Calories += e.Item.Calories * servings
		t.Protein += e.Item.ProteinG * servings
		t.Carbs += e.Item.CarbsG * servings
		t.Fat += e.Item.FatG * servings
	}
	return t
}

// Remaining returns the macro budget left for the day, clamped at zero per
// component. Going over target is only visible by comparing consumed against
// targets directly.
func Remaining(targets DailyTargets, consumed Totals) Totals {
	return Totals{
		Calories: clampZero(float64(targets.Calories) - consumed.Calories),
		Protein:  clampZero(float64(targets.ProteinG) - consumed.Protein),
		Carbs:    clampZero(float64(targets.CarbsG) - consumed.Carbs),
		Fat:      clampZero(float64(targets.FatG) - consumed.Fat),
	}
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
