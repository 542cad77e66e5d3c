package app

import (
	"context"
	"fmt"
	"time"

	"macrolog/internal/food"
	"macrolog/internal/foodparse"
	"macrolog/internal/nutrition"
	"macrolog/internal/profile"

	"github.com/google/uuid"
)

// FoodStore is the persistence surface the tracker needs for the catalog and
// the daily log.
type FoodStore interface {
	Save(ctx context.Context, item food.Item) error
	Get(ctx context.Context, id string) (*food.Item, error)
	List(ctx context.Context) ([]food.Item, error)
	LogEntry(ctx context.Context, entry food.LoggedEntry) error
	DayLog(ctx context.Context, date string) ([]food.LoggedFood, error)
}

// ProfileStore is the persistence surface for user settings and weight
// history.
type ProfileStore interface {
	GetSettings(ctx context.Context) (*profile.Settings, error)
	SaveSettings(ctx context.Context, s profile.Settings) error
	SetCurrentWeight(ctx context.Context, weightLbs float64) error
	UpsertWeight(ctx context.Context, sample profile.WeightSample) error
	ListWeights(ctx context.Context) ([]profile.WeightSample, error)
}

// Tracker ties parsing, matching, target math, and persistence together. It
// is the single entry point the CLI and the bot call into.
type Tracker struct {
	foods   FoodStore
	profile ProfileStore
	matcher *foodparse.Matcher
}

// NewTracker creates a new Tracker.
func NewTracker(foods FoodStore, profileStore ProfileStore) *Tracker {
	return &Tracker{
		foods:   foods,
		profile: profileStore,
		matcher: foodparse.NewMatcher(foodparse.DefaultThreshold),
	}
}

// LogResult reports what happened to one parsed entry of a free-text log
// attempt. Logged is set when a confident match was written to the day's log;
// otherwise Candidates carries the near-misses for the caller to disambiguate.
type LogResult struct {
	Entry      foodparse.ParsedEntry
	Logged     *food.LoggedEntry
	Food       *food.Item
	Candidates []foodparse.Match
}

// LogFreeText parses a natural-language food description, matches each entry
// against the saved catalog, and logs every confident match under the given
// date and meal. Entries without a confident match come back with their
// candidate list instead of being logged.
func (t *Tracker) LogFreeText(ctx context.Context, date, text string, meal food.MealType) ([]LogResult, error) {
	entries := foodparse.ParseAll(text)
	if len(entries) == 0 {
		return nil, fmt.Errorf("nothing to log in %q", text)
	}

	catalog, err := t.foods.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load food catalog: %w", err)
	}

	results := make([]LogResult, 0, len(entries))
	for _, em := range t.matcher.MatchAll(entries, catalog) {
		result := LogResult{Entry: em.Entry, Candidates: em.Matches}

		if em.Best != nil {
			entry := food.LoggedEntry{
				ID:        uuid.NewString(),
				FoodID:    em.Best.Food.ID,
				Servings:  em.Entry.Quantity,
				MealType:  meal,
				Date:      date,
				CreatedAt: time.Now().UTC(),
			}
			if err := t.foods.LogEntry(ctx, entry); err != nil {
				return nil, fmt.Errorf("failed to log %q: %w", em.Entry.FoodName, err)
			}
			matched := em.Best.Food
			result.Logged = &entry
			result.Food = &matched
		}

		results = append(results, result)
	}
	return results, nil
}

// SaveFood adds a food to the catalog, assigning an ID when the caller did
// not.
func (t *Tracker) SaveFood(ctx context.Context, item food.Item) (food.Item, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if err := t.foods.Save(ctx, item); err != nil {
		return food.Item{}, err
	}
	return item, nil
}

// DaySummary is everything the day views show: targets, what was eaten, what
// is left, and what to eat next.
type DaySummary struct {
	Date        string
	Targets     nutrition.DailyTargets
	Consumed    nutrition.Totals
	Remaining   nutrition.Totals
	Suggestions []nutrition.Suggestion
	Entries     []food.LoggedFood
}

// Summary assembles the full picture for one date. Targets are always
// recomputed from the current settings, never cached.
func (t *Tracker) Summary(ctx context.Context, date string) (*DaySummary, error) {
	settings, err := t.profile.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	targets := nutrition.ComputeTargets(settings)

	entries, err := t.foods.DayLog(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load day log: %w", err)
	}
	consumed := nutrition.SumConsumed(entries)

	catalog, err := t.foods.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load food catalog: %w", err)
	}

	return &DaySummary{
		Date:        date,
		Targets:     targets,
		Consumed:    consumed,
		Remaining:   nutrition.Remaining(targets, consumed),
		Suggestions: nutrition.Suggest(catalog, consumed, targets),
		Entries:     entries,
	}, nil
}

// Targets returns the current daily targets from the saved settings.
func (t *Tracker) Targets(ctx context.Context) (nutrition.DailyTargets, error) {
	settings, err := t.profile.GetSettings(ctx)
	if err != nil {
		return nutrition.DailyTargets{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return nutrition.ComputeTargets(settings), nil
}

// LogWeight records a weight measurement for a date and syncs the settings'
// current weight, so targets immediately reflect the new weight. Settings are
// created on the fly when the user logs a weight before setting up a profile.
func (t *Tracker) LogWeight(ctx context.Context, date string, weightLbs float64) error {
	if weightLbs <= 0 {
		return fmt.Errorf("weight must be positive, got %.1f", weightLbs)
	}

	if err := t.profile.UpsertWeight(ctx, profile.WeightSample{Date: date, WeightLbs: weightLbs}); err != nil {
		return err
	}
	if err := t.profile.SetCurrentWeight(ctx, weightLbs); err != nil {
		return err
	}
	return nil
}

// Projection is the weekly weight trajectory from now at the configured loss
// rate, with the implied total loss over the same horizon.
type Projection struct {
	Points    []nutrition.WeightPoint
	TotalLoss float64
}

// ProjectWeight projects the user's weight forward at their configured rate.
// A zero until date projects through the end of the current year.
func (t *Tracker) ProjectWeight(ctx context.Context, now, until time.Time) (*Projection, error) {
	settings, err := t.profile.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings == nil || settings.CurrentWeightLbs <= 0 {
		return nil, fmt.Errorf("no current weight on file; log a weight first")
	}

	rate := settings.WeeklyLossRate
	if rate == 0 {
		rate = 1.0
	}

	return &Projection{
		Points:    nutrition.ProjectWeight(settings.CurrentWeightLbs, rate, now, until),
		TotalLoss: nutrition.ProjectedTotalLoss(rate, now, until),
	}, nil
}

// GoalPlan is the outcome of asking to reach the target weight by a date.
type GoalPlan struct {
	Result nutrition.RateResult
	Pace   nutrition.PaceClass
}

// PlanGoalByDate computes the weekly rate needed to hit the target weight by
// targetDate, classifies its pace, and persists it as the active loss rate
// when it is computable. The rate is saved even when aggressive; the pace
// flag is the caller's cue to warn, not a veto.
func (t *Tracker) PlanGoalByDate(ctx context.Context, targetDate, now time.Time) (*GoalPlan, error) {
	settings, err := t.profile.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings == nil {
		return nil, fmt.Errorf("no profile on file; set up your profile first")
	}

	result := nutrition.RequiredRate(settings.CurrentWeightLbs, settings.TargetWeightLbs, targetDate, now)
	plan := &GoalPlan{Result: result}

	if result.Status == nutrition.RateOK {
		plan.Pace = nutrition.ClassifyRate(result.LbsPerWeek)
		settings.WeeklyLossRate = result.LbsPerWeek
		if err := t.profile.SaveSettings(ctx, *settings); err != nil {
			return nil, fmt.Errorf("failed to save loss rate: %w", err)
		}
	}
	return plan, nil
}

// WeightHistory returns all recorded weight samples in chronological order.
func (t *Tracker) WeightHistory(ctx context.Context) ([]profile.WeightSample, error) {
	return t.profile.ListWeights(ctx)
}
