package nutrition

// runningMETs maps running speed in mph to MET values.
var runningMETs = map[float64]float64{
	5:   8.3,  // 12 min/mile
	5.5: 9.0,  // 11 min/mile
	6:   9.8,  // 10 min/mile
	6.5: 10.5, // 9:15 min/mile
	7:   11.0, // 8:30 min/mile
	8:   11.8, // 7:30 min/mile
	9:   12.8, // 6:40 min/mile
}

// defaultRunningMET is used for speeds outside the table (10 min/mile pace).
const defaultRunningMET = 9.8

// RunningCalories estimates kcal burned: MET × weight(kg) × time(hours).
func RunningCalories(weightLbs, minutes, mph float64) float64 {
	weightKg := weightLbs * lbsToKg
	hours := minutes / 60
	return runningMET(mph) * weightKg * hours
}

// RunMinutesToBurn inverts RunningCalories: how long to run at mph to burn
// off an excess.
func RunMinutesToBurn(excessCalories, weightLbs, mph float64) float64 {
	weightKg := weightLbs * lbsToKg
	caloriesPerMinute := runningMET(mph) * weightKg / 60
	return excessCalories / caloriesPerMinute
}

func runningMET(mph float64) float64 {
	if met, ok := runningMETs[mph]; ok {
		return met
	}
	return defaultRunningMET
}
