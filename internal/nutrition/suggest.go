package nutrition

import (
	"sort"

	"macrolog/internal/food"
)

// Suggestion is a catalog food that fits the remaining macro budget, with a
// human-readable reason.
type Suggestion struct {
	Food   food.Item
	Reason string
	Score  int
}

const maxSuggestions = 5

// Suggest ranks catalog foods against what is left of the day's budget.
// Foods that would push consumption more than 50 kcal past the remaining
// budget are skipped. High-protein foods are favored when protein intake
// lags calorie intake.
func Suggest(catalog []food.Item, consumed Totals, targets DailyTargets) []Suggestion {
	remaining := Remaining(targets, consumed)

	var suggestions []Suggestion
	for _, f := range catalog {
		if f.Calories > remaining.Calories+50 {
			continue
		}

		var reason string
		score := 0

		proteinPercent := consumed.Protein / float64(targets.ProteinG)
		calPercent := consumed.Calories / float64(targets.Calories)
		if proteinPercent < calPercent && f.ProteinG >= 10 {
			score += 10
			reason = "High protein"
		}

		if f.Calories <= remaining.Calories*0.5 {
			score += 5
			if reason == "" {
				reason = "Fits your remaining calories"
			}
		}

		if f.Calories > 0 && f.ProteinG*4/f.Calories > 0.3 {
			score += 3
		}

		if score > 0 {
			suggestions = append(suggestions, Suggestion{Food: f, Reason: reason, Score: score})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
