package foodparse

import "strings"

// DefaultUnit is assumed when input carries no recognizable unit.
const DefaultUnit = "serving"

// unitAliases maps every accepted spelling to its canonical unit.
var unitAliases = map[string]string{
	"oz":          "oz",
	"ounce":       "oz",
	"ounces":      "oz",
	"g":           "g",
	"gram":        "g",
	"grams":       "g",
	"lb":          "lb",
	"lbs":         "lb",
	"pound":       "lb",
	"pounds":      "lb",
	"cup":         "cup",
	"cups":        "cup",
	"c":           "cup",
	"tbsp":        "tbsp",
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"tsp":         "tsp",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"slice":       "slice",
	"slices":      "slice",
	"piece":       "piece",
	"pieces":      "piece",
	"serving":     "serving",
	"servings":    "serving",
	"scoop":       "scoop",
	"scoops":      "scoop",
	"ml":          "ml",
	"milliliter":  "ml",
	"milliliters": "ml",
	"l":           "l",
	"liter":       "l",
	"liters":      "l",
}

// NormalizeUnit resolves a raw unit token to its canonical form. Unknown
// tokens pass through unchanged rather than being rejected.
func NormalizeUnit(raw string) string {
	if canonical, ok := unitAliases[strings.ToLower(raw)]; ok {
		return canonical
	}
	return raw
}
