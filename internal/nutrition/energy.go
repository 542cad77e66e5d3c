package nutrition

import (
	"math"

	"macrolog/internal/profile"
)

// Sex selects the Mifflin-St Jeor constant.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel keys the TDEE multiplier table.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

const (
	lbsToKg    = 0.453592
	inchesToCm = 2.54

	// 1 lb of body fat ≈ 3500 kcal. Treated as exact.
	KcalPerPoundFat = 3500.0

	// Hard safety floor for the daily calorie target. Applied silently even
	// when it makes the requested deficit unreachable.
	MinDailyCalories = 1200

	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// activityMultipliers maps activity levels to their TDEE multiplier.
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,   // little or no exercise
	ActivityLight:      1.375, // light exercise 1-3 days/week
	ActivityModerate:   1.55,  // moderate exercise 3-5 days/week
	ActivityActive:     1.725, // hard exercise 6-7 days/week
	ActivityVeryActive: 1.9,   // very hard exercise, physical job
}

// BMR computes Basal Metabolic Rate via Mifflin-St Jeor, in kcal/day.
// Inputs are not validated; callers must supply positive finite values.
func BMR(weightLbs, heightInches float64, age int, sex Sex) float64 {
	weightKg := weightLbs * lbsToKg
	heightCm := heightInches * inchesToCm

	if sex == SexFemale {
		return 10*weightKg + 6.25*heightCm - 5*float64(age) - 161
	}
	// Male or default
	return 10*weightKg + 6.25*heightCm - 5*float64(age) + 5
}

// TDEE computes Total Daily Energy Expenditure, rounded to the nearest kcal.
// Unknown activity levels fall back to the moderate multiplier.
func TDEE(bmr float64, level ActivityLevel) int {
	mult, ok := activityMultipliers[level]
	if !ok {
		mult = activityMultipliers[ActivityModerate]
	}
	return int(math.Round(bmr * mult))
}

// CalorieTarget computes the daily calorie target for a weekly loss rate,
// clamped to MinDailyCalories.
func CalorieTarget(tdee int, weeklyLossRate float64) int {
	dailyDeficit := weeklyLossRate * KcalPerPoundFat / 7
	target := int(math.Round(float64(tdee) - dailyDeficit))
	if target < MinDailyCalories {
		return MinDailyCalories
	}
	return target
}

// MacroSplit is the fraction of calories assigned to each macro. Fractions
// are not validated to sum to 1; if they don't, total grams under- or
// overshoot the calorie budget.
type MacroSplit struct {
	Protein float64
	Carbs   float64
	Fat     float64
}

// DefaultMacroSplit matches the default settings: 40/30/30.
var DefaultMacroSplit = MacroSplit{Protein: 0.4, Carbs: 0.3, Fat: 0.3}

// MacroGrams holds daily macro targets in grams.
type MacroGrams struct {
	ProteinG int
	CarbsG   int
	FatG     int
}

// MacroTargets converts a calorie budget into gram targets using the fixed
// 4/4/9 kcal-per-gram factors.
func MacroTargets(calories int, split MacroSplit) MacroGrams {
	c := float64(calories)
	return MacroGrams{
		ProteinG: int(math.Round(c * split.Protein / kcalPerGramProtein)),
		CarbsG:   int(math.Round(c * split.Carbs / kcalPerGramCarbs)),
		FatG:     int(math.Round(c * split.Fat / kcalPerGramFat)),
	}
}

// DailyTargets is the full derived target set. Always recomputed from
// Settings on demand, never persisted.
type DailyTargets struct {
	BMR      int `json:"bmr"`
	TDEE     int `json:"tdee"`
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
	Deficit  int `json:"deficit"`
}

// fallbackTargets is the degraded-mode default returned when settings are
// absent or incomplete. Not an error.
var fallbackTargets = DailyTargets{
	BMR:      1800,
	TDEE:     2200,
	Calories: 1700,
	ProteinG: 170,
	CarbsG:   128,
	FatG:     57,
	Deficit:  500,
}

// ComputeTargets chains BMR → TDEE → calorie target → macro grams from the
// user's settings. Missing weight, height or age yields fallbackTargets.
// Absent optional fields default to male, moderate activity, 1 lb/week and
// the 40/30/30 split.
func ComputeTargets(s *profile.Settings) DailyTargets {
	if s == nil || s.CurrentWeightLbs == 0 || s.HeightInches == 0 || s.Age == 0 {
		return fallbackTargets
	}

	sex := Sex(s.Sex)
	if sex == "" {
		sex = SexMale
	}
	bmr := BMR(s.CurrentWeightLbs, s.HeightInches, s.Age, sex)

	tdee := TDEE(bmr, ActivityLevel(s.ActivityLevel))

	rate := s.WeeklyLossRate
	if rate == 0 {
		rate = 1.0
	}
	calories := CalorieTarget(tdee, rate)

	split := MacroSplit{Protein: s.ProteinRatio, Carbs: s.CarbsRatio, Fat: s.FatRatio}
	if split.Protein == 0 {
		split.Protein = DefaultMacroSplit.Protein
	}
	if split.Carbs == 0 {
		split.Carbs = DefaultMacroSplit.Carbs
	}
	if split.Fat == 0 {
		split.Fat = DefaultMacroSplit.Fat
	}
	grams := MacroTargets(calories, split)

	return DailyTargets{
		BMR:      int(math.Round(bmr)),
		TDEE:     tdee,
		Calories: calories,
		ProteinG: grams.ProteinG,
		CarbsG:   grams.CarbsG,
		FatG:     grams.FatG,
		Deficit:  tdee - calories,
	}
}
