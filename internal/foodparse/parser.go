package foodparse

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedEntry is the structured form of a single free-text food entry. It is
// ephemeral: produced here, consumed immediately by the matcher or a
// manual-add flow.
type ParsedEntry struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	FoodName string  `json:"food_name"`
	Original string  `json:"original"`
}

// unitPattern lists every unit spelling accepted inline. Order matters: it is
// shared verbatim by both quantity+unit patterns.
const unitPattern = `oz|ounce|ounces|g|gram|grams|cup|cups|tbsp|tsp|slice|slices|ml|l|lb|lbs|serving|servings|scoop|scoops|piece|pieces`

var (
	// Entries separate on commas, semicolons, newlines or the word "and".
	entrySplitRe = regexp.MustCompile(`(?i)[,;\n]|\band\b`)

	// "2 eggs" or "2x eggs": bare quantity at the start.
	leadingQtyRe = regexp.MustCompile(`^(\d+\.?\d*)\s*x?\s+(.+)$`)

	// "chicken 6oz" or "rice 1 cup": quantity+unit at the end.
	trailingQtyUnitRe = regexp.MustCompile(`^(.+?)\s+(\d+\.?\d*)\s*(` + unitPattern + `)s?$`)

	// "1 cup rice": quantity+unit at the start.
	leadingQtyUnitRe = regexp.MustCompile(`^(\d+\.?\d*)\s*(` + unitPattern + `)s?\s+(.+)$`)
)

// ParseEntry parses one food entry line. The three patterns run in order and
// each later pattern re-matches against the food name the previous pattern
// left behind, so a later match overwrites the earlier quantity/unit
// ("2 chicken 6oz" ends up as 6 oz of chicken). Downstream behavior depends
// on this cascade; do not reorder or short-circuit it.
func ParseEntry(input string) ParsedEntry {
	input = strings.ToLower(strings.TrimSpace(input))

	entry := ParsedEntry{
		Quantity: 1,
		Unit:     DefaultUnit,
		FoodName: input,
		Original: input,
	}

	if m := leadingQtyRe.FindStringSubmatch(input); m != nil {
		entry.Quantity = parseNumber(m[1])
		entry.FoodName = m[2]
	}

	if m := trailingQtyUnitRe.FindStringSubmatch(entry.FoodName); m != nil {
		entry.FoodName = m[1]
		entry.Quantity = parseNumber(m[2])
		entry.Unit = NormalizeUnit(m[3])
	}

	if m := leadingQtyUnitRe.FindStringSubmatch(entry.FoodName); m != nil {
		entry.Quantity = parseNumber(m[1])
		entry.Unit = NormalizeUnit(m[2])
		entry.FoodName = m[3]
	}

	entry.FoodName = strings.TrimSpace(entry.FoodName)
	return entry
}

// ParseAll splits a free-text blob into entries and parses each one,
// preserving input order. Empty segments are dropped.
func ParseAll(input string) []ParsedEntry {
	var entries []ParsedEntry
	for _, segment := range entrySplitRe.Split(input, -1) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		entries = append(entries, ParseEntry(segment))
	}
	return entries
}

func parseNumber(s string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSuffix(s, "."), 64)
	if err != nil {
		return 1
	}
	return n
}
