package profile

// Settings holds the user's biometrics and macro preferences. It is the
// source of truth for daily targets, which are always recomputed from it and
// never stored. The three ratios should sum to 1.0; this is not enforced
// here, the caller owns it.
type Settings struct {
	CurrentWeightLbs float64 `json:"current_weight_lbs"`
	TargetWeightLbs  float64 `json:"target_weight_lbs"`
	HeightInches     float64 `json:"height_inches"`
	Age              int     `json:"age"`
	Sex              string  `json:"sex"`            // "male" or "female"
	ActivityLevel    string  `json:"activity_level"` // sedentary..very_active
	WeeklyLossRate   float64 `json:"weekly_loss_rate"`
	ProteinRatio     float64 `json:"protein_ratio"`
	CarbsRatio       float64 `json:"carbs_ratio"`
	FatRatio         float64 `json:"fat_ratio"`
}

// WeightSample is one weight measurement per calendar date. A later write for
// the same date overwrites the earlier one.
type WeightSample struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	WeightLbs float64 `json:"weight_lbs"`
}
