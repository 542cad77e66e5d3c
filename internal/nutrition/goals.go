package nutrition

import (
	"math"
	"time"
)

// MinProjectedWeightLbs is the floor below which weight projections are
// silently truncated rather than extended into nonsense.
const MinProjectedWeightLbs = 100.0

const week = 7 * 24 * time.Hour

// WeightPoint is one step of a projected weight trajectory.
type WeightPoint struct {
	Date      time.Time `json:"date"`
	WeightLbs float64   `json:"weight_lbs"`
}

// EndOfYear returns Dec 31 of t's year, the default projection horizon.
func EndOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, t.Location())
}

// ProjectWeight produces weekly weight points from start to end inclusive,
// losing weeklyRate lbs per step, each point rounded to one decimal. A zero
// end defaults to Dec 31 of start's year. The series truncates once the next
// weight would fall below MinProjectedWeightLbs.
func ProjectWeight(startWeight, weeklyRate float64, start, end time.Time) []WeightPoint {
	if end.IsZero() {
		end = EndOfYear(start)
	}

	var points []WeightPoint
	date := start
	weight := startWeight
	for !date.After(end) {
		points = append(points, WeightPoint{
			Date:      date,
			WeightLbs: round1(weight),
		})
		date = date.AddDate(0, 0, 7)
		weight -= weeklyRate
		if weight < MinProjectedWeightLbs {
			break
		}
	}
	return points
}

// ProjectedTotalLoss is the loss implied by holding weeklyRate from start to
// end, rounded to one decimal. Pure arithmetic: it ignores the projection
// floor, so it can overstate loss relative to a truncated ProjectWeight
// series.
func ProjectedTotalLoss(weeklyRate float64, start, end time.Time) float64 {
	if end.IsZero() {
		end = EndOfYear(start)
	}
	weeks := end.Sub(start).Hours() / (24 * 7)
	return round1(weeks * weeklyRate)
}

// RateStatus reports whether a required pace could be computed.
type RateStatus string

const (
	RateOK            RateStatus = "ok"
	RateAlreadyAtGoal RateStatus = "already_at_goal"
	RateDateInPast    RateStatus = "date_in_past"
)

// RateResult is the outcome of RequiredRate. LbsPerWeek is meaningful only
// when Status is RateOK.
type RateResult struct {
	Status     RateStatus
	LbsPerWeek float64
}

// RequiredRate computes the weekly loss pace needed to reach targetWeight by
// targetDate. Already-at-goal and past-date inputs are reported as explicit
// variants, not errors.
func RequiredRate(currentWeight, targetWeight float64, targetDate, now time.Time) RateResult {
	if currentWeight <= targetWeight {
		return RateResult{Status: RateAlreadyAtGoal}
	}
	weeksUntil := targetDate.Sub(now).Hours() / (24 * 7)
	if weeksUntil <= 0 {
		return RateResult{Status: RateDateInPast}
	}
	return RateResult{
		Status:     RateOK,
		LbsPerWeek: (currentWeight - targetWeight) / weeksUntil,
	}
}

// PaceClass flags how demanding a weekly loss rate is.
type PaceClass string

const (
	PaceAggressive  PaceClass = "aggressive"  // > 2 lbs/week
	PaceChallenging PaceClass = "challenging" // > 1.5 lbs/week
	PaceSteady      PaceClass = ""
)

// ClassifyRate applies the pace policy. Pure classification, no side effects.
func ClassifyRate(lbsPerWeek float64) PaceClass {
	switch {
	case lbsPerWeek > 2:
		return PaceAggressive
	case lbsPerWeek > 1.5:
		return PaceChallenging
	default:
		return PaceSteady
	}
}

// ReachDate estimates when the target weight is reached at the given rate.
// ok is false when the user is already at or below target, or the rate is
// not positive.
func ReachDate(currentWeight, targetWeight, weeklyRate float64, now time.Time) (time.Time, bool) {
	if currentWeight <= targetWeight || weeklyRate <= 0 {
		return time.Time{}, false
	}
	weeksNeeded := (currentWeight - targetWeight) / weeklyRate
	return now.AddDate(0, 0, int(weeksNeeded*7)), true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
