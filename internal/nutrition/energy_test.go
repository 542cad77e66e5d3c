package nutrition

import (
	"math"
	"testing"

	"macrolog/internal/profile"
)

func TestBMR(t *testing.T) {
	t.Run("MaleFormula", func(t *testing.T) {
		// 180 lbs, 70 in, 30 years: 10·81.65 + 6.25·177.8 − 150 + 5
		got := BMR(180, 70, 30, SexMale)
		want := 10*180*0.453592 + 6.25*70*2.54 - 5*30 + 5
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Expected %g, got %g", want, got)
		}
	})

	t.Run("FemaleLowerThanMale", func(t *testing.T) {
		male := BMR(150, 65, 35, SexMale)
		female := BMR(150, 65, 35, SexFemale)
		if female >= male {
			t.Errorf("Expected female BMR below male, got %g >= %g", female, male)
		}
		if math.Abs((male-female)-166) > 1e-9 {
			t.Errorf("Expected a 166 kcal constant gap, got %g", male-female)
		}
	})

	t.Run("UnknownSexUsesMaleFormula", func(t *testing.T) {
		if got, want := BMR(180, 70, 30, "other"), BMR(180, 70, 30, SexMale); got != want {
			t.Errorf("Expected %g, got %g", want, got)
		}
	})
}

func TestTDEE(t *testing.T) {
	bmr := 1800.0

	tests := []struct {
		level ActivityLevel
		want  int
	}{
		{ActivitySedentary, 2160},
		{ActivityLight, 2475},
		{ActivityModerate, 2790},
		{ActivityActive, 3105},
		{ActivityVeryActive, 3420},
		{"couch_potato", 2790}, // unknown falls back to moderate
	}
	for _, tc := range tests {
		if got := TDEE(bmr, tc.level); got != tc.want {
			t.Errorf("TDEE(%g, %q): expected %d, got %d", bmr, tc.level, tc.want, got)
		}
	}
}

func TestCalorieTarget(t *testing.T) {
	t.Run("OnePoundPerWeek", func(t *testing.T) {
		if got := CalorieTarget(2700, 1.0); got != 2200 {
			t.Errorf("Expected 2200, got %d", got)
		}
	})

	t.Run("FlooredAtMinimum", func(t *testing.T) {
		if got := CalorieTarget(2000, 10); got != MinDailyCalories {
			t.Errorf("Expected floor of %d, got %d", MinDailyCalories, got)
		}
	})

	t.Run("ZeroRateIsMaintenance", func(t *testing.T) {
		if got := CalorieTarget(2500, 0); got != 2500 {
			t.Errorf("Expected 2500, got %d", got)
		}
	})
}

func TestMacroTargets(t *testing.T) {
	t.Run("DefaultSplit", func(t *testing.T) {
		grams := MacroTargets(1700, DefaultMacroSplit)
		if grams.ProteinG != 170 {
			t.Errorf("Expected 170g protein, got %d", grams.ProteinG)
		}
		if grams.CarbsG != 128 {
			t.Errorf("Expected 128g carbs, got %d", grams.CarbsG)
		}
		if grams.FatG != 57 {
			t.Errorf("Expected 57g fat, got %d", grams.FatG)
		}
	})

	t.Run("RoundTripWithinRoundingError", func(t *testing.T) {
		for _, calories := range []int{1200, 1700, 2200, 2750} {
			grams := MacroTargets(calories, DefaultMacroSplit)
			back := grams.ProteinG*4 + grams.CarbsG*4 + grams.FatG*9
			// Each macro rounds independently, so the reconstruction can be
			// off by a few kcal but never more.
			if diff := back - calories; diff < -12 || diff > 12 {
				t.Errorf("Round trip for %d kcal gave %d (diff %d)", calories, back, diff)
			}
		}
	})
}

func TestComputeTargets(t *testing.T) {
	t.Run("NilSettingsFallsBack", func(t *testing.T) {
		got := ComputeTargets(nil)
		if got != fallbackTargets {
			t.Errorf("Expected fallback targets, got %+v", got)
		}
	})

	t.Run("IncompleteSettingsFallBack", func(t *testing.T) {
		got := ComputeTargets(&profile.Settings{CurrentWeightLbs: 180})
		if got != fallbackTargets {
			t.Errorf("Expected fallback targets for missing height/age, got %+v", got)
		}
	})

	t.Run("CompleteSettings", func(t *testing.T) {
		s := &profile.Settings{
			CurrentWeightLbs: 180,
			HeightInches:     70,
			Age:              30,
			Sex:              "male",
			ActivityLevel:    "moderate",
			WeeklyLossRate:   1.0,
		}
		got := ComputeTargets(s)

		bmr := BMR(180, 70, 30, SexMale)
		tdee := TDEE(bmr, ActivityModerate)
		calories := CalorieTarget(tdee, 1.0)

		if got.BMR != int(math.Round(bmr)) {
			t.Errorf("Expected BMR %d, got %d", int(math.Round(bmr)), got.BMR)
		}
		if got.TDEE != tdee {
			t.Errorf("Expected TDEE %d, got %d", tdee, got.TDEE)
		}
		if got.Calories != calories {
			t.Errorf("Expected %d kcal, got %d", calories, got.Calories)
		}
		if got.Deficit != tdee-calories {
			t.Errorf("Expected deficit %d, got %d", tdee-calories, got.Deficit)
		}
	})

	t.Run("DefaultsForOptionalFields", func(t *testing.T) {
		// No sex, activity, rate or split: male, moderate, 1 lb/week, 40/30/30.
		s := &profile.Settings{CurrentWeightLbs: 180, HeightInches: 70, Age: 30}
		got := ComputeTargets(s)

		explicit := ComputeTargets(&profile.Settings{
			CurrentWeightLbs: 180, HeightInches: 70, Age: 30,
			Sex: "male", ActivityLevel: "moderate", WeeklyLossRate: 1.0,
			ProteinRatio: 0.4, CarbsRatio: 0.3, FatRatio: 0.3,
		})
		if got != explicit {
			t.Errorf("Expected defaults to match explicit settings:\n got %+v\nwant %+v", got, explicit)
		}
	})

	t.Run("FloorAppliesThroughSettings", func(t *testing.T) {
		s := &profile.Settings{
			CurrentWeightLbs: 120, HeightInches: 60, Age: 60,
			Sex: "female", ActivityLevel: "sedentary", WeeklyLossRate: 2.0,
		}
		got := ComputeTargets(s)
		if got.Calories < MinDailyCalories {
			t.Errorf("Calorie target %d fell below the %d floor", got.Calories, MinDailyCalories)
		}
	})
}
