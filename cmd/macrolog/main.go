package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"macrolog/internal/app"
	"macrolog/internal/config"
	"macrolog/internal/database"
	"macrolog/internal/food"
	"macrolog/internal/nutrition"
	"macrolog/internal/profile"
	"macrolog/internal/usda"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	foodRepo := food.NewRepository(db.SQL)
	profileRepo := profile.NewRepository(db.SQL)
	tracker := app.NewTracker(foodRepo, profileRepo)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "log":
		runLog(ctx, tracker)
	case "today":
		runToday(ctx, tracker)
	case "targets":
		runTargets(ctx, tracker)
	case "weight":
		runWeight(ctx, tracker)
	case "goal":
		runGoal(ctx, tracker)
	case "project":
		runProject(ctx, tracker)
	case "lookup":
		runLookup(ctx, cfg, tracker)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: macrolog <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  log \"<text>\"       Log food from a natural-language description")
	fmt.Println("  today              Show today's totals, remaining budget, and suggestions")
	fmt.Println("  targets            Show daily calorie and macro targets")
	fmt.Println("  weight <lbs>       Record today's weight")
	fmt.Println("  goal <YYYY-MM-DD>  Plan a weekly loss rate to hit your goal by a date")
	fmt.Println("  project            Project weight through the end of the year")
	fmt.Println("  lookup \"<food>\"    Look up a food in the USDA database and save it")
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

func runLog(ctx context.Context, tracker *app.Tracker) {
	logCmd := flag.NewFlagSet("log", flag.ExitOnError)
	meal := logCmd.String("meal", "snack", "Meal type: breakfast, lunch, dinner, or snack")
	date := logCmd.String("date", today(), "Date to log under (YYYY-MM-DD)")
	logCmd.Parse(os.Args[2:])

	if logCmd.NArg() < 1 {
		log.Fatal("Usage: macrolog log [-meal=snack] [-date=YYYY-MM-DD] \"<text>\"")
	}

	results, err := tracker.LogFreeText(ctx, *date, logCmd.Arg(0), food.MealType(*meal))
	if err != nil {
		log.Fatalf("Logging failed: %v", err)
	}

	for _, r := range results {
		if r.Logged != nil {
			fmt.Printf("Logged %s x%g\n", r.Food.Name, r.Logged.Servings)
			continue
		}
		if len(r.Candidates) == 0 {
			fmt.Printf("No match for %q — add it with 'macrolog lookup' first\n", r.Entry.FoodName)
			continue
		}
		fmt.Printf("Not confident about %q, candidates:\n", r.Entry.FoodName)
		for _, c := range r.Candidates {
			fmt.Printf("  %s (%.0f%%)\n", c.Food.Name, c.Score*100)
		}
	}
}

func runToday(ctx context.Context, tracker *app.Tracker) {
	summary, err := tracker.Summary(ctx, today())
	if err != nil {
		log.Fatalf("Failed to build summary: %v", err)
	}

	fmt.Printf("=== %s ===\n\n", summary.Date)
	if len(summary.Entries) == 0 {
		fmt.Println("Nothing logged yet.")
	}
	for _, e := range summary.Entries {
		name := "(deleted food)"
		if e.Item != nil {
			name = e.Item.Name
		}
		fmt.Printf("  %-30s x%g  [%s]\n", name, e.Entry.Servings, e.Entry.MealType)
	}

	fmt.Printf("\nConsumed:  %.0f kcal  P %.0fg  C %.0fg  F %.0fg\n",
		summary.Consumed.Calories, summary.Consumed.Protein, summary.Consumed.Carbs, summary.Consumed.Fat)
	fmt.Printf("Remaining: %.0f kcal  P %.0fg  C %.0fg  F %.0fg\n",
		summary.Remaining.Calories, summary.Remaining.Protein, summary.Remaining.Carbs, summary.Remaining.Fat)

	if len(summary.Suggestions) > 0 {
		fmt.Println("\nSuggestions:")
		for _, s := range summary.Suggestions {
			if s.Reason != "" {
				fmt.Printf("  - %s (%.0f kcal) — %s\n", s.Food.Name, s.Food.Calories, s.Reason)
			} else {
				fmt.Printf("  - %s (%.0f kcal)\n", s.Food.Name, s.Food.Calories)
			}
		}
	}
}

func runTargets(ctx context.Context, tracker *app.Tracker) {
	targets, err := tracker.Targets(ctx)
	if err != nil {
		log.Fatalf("Failed to compute targets: %v", err)
	}

	fmt.Println("=== Daily Targets ===")
	fmt.Printf("Calories: %d kcal\n", targets.Calories)
	fmt.Printf("Protein:  %d g\n", targets.ProteinG)
	fmt.Printf("Carbs:    %d g\n", targets.CarbsG)
	fmt.Printf("Fat:      %d g\n", targets.FatG)
	fmt.Printf("\nBMR %d kcal, TDEE %d kcal, deficit %d kcal/day\n", targets.BMR, targets.TDEE, targets.Deficit)
}

func runWeight(ctx context.Context, tracker *app.Tracker) {
	if len(os.Args) < 3 {
		log.Fatal("Usage: macrolog weight <lbs>")
	}
	var lbs float64
	if _, err := fmt.Sscanf(os.Args[2], "%f", &lbs); err != nil {
		log.Fatalf("Invalid weight %q: %v", os.Args[2], err)
	}

	if err := tracker.LogWeight(ctx, today(), lbs); err != nil {
		log.Fatalf("Failed to log weight: %v", err)
	}
	fmt.Printf("Logged %g lbs for %s.\n", lbs, today())
}

func runGoal(ctx context.Context, tracker *app.Tracker) {
	if len(os.Args) < 3 {
		log.Fatal("Usage: macrolog goal <YYYY-MM-DD>")
	}
	targetDate, err := time.Parse("2006-01-02", os.Args[2])
	if err != nil {
		log.Fatalf("Invalid date %q: %v", os.Args[2], err)
	}

	plan, err := tracker.PlanGoalByDate(ctx, targetDate, time.Now().UTC())
	if err != nil {
		log.Fatalf("Failed to plan goal: %v", err)
	}

	switch plan.Result.Status {
	case nutrition.RateAlreadyAtGoal:
		fmt.Println("You're already at (or below) your goal weight.")
	case nutrition.RateDateInPast:
		fmt.Println("That date is in the past — pick a future date.")
	default:
		fmt.Printf("Required pace: %.1f lbs/week (saved as your active rate)\n", plan.Result.LbsPerWeek)
		switch plan.Pace {
		case nutrition.PaceAggressive:
			fmt.Println("Warning: that pace is aggressive (>2 lbs/week).")
		case nutrition.PaceChallenging:
			fmt.Println("Note: that's a challenging pace (>1.5 lbs/week).")
		}
	}
}

func runProject(ctx context.Context, tracker *app.Tracker) {
	now := time.Now().UTC()
	projection, err := tracker.ProjectWeight(ctx, now, time.Time{})
	if err != nil {
		log.Fatalf("Failed to project weight: %v", err)
	}

	fmt.Println("=== Weight Projection ===")
	for _, p := range projection.Points {
		fmt.Printf("  %s  %.1f lbs\n", p.Date.Format("2006-01-02"), p.WeightLbs)
	}
	fmt.Printf("\nProjected loss by year end: %.1f lbs\n", projection.TotalLoss)
}

func runLookup(ctx context.Context, cfg *config.Config, tracker *app.Tracker) {
	lookupCmd := flag.NewFlagSet("lookup", flag.ExitOnError)
	save := lookupCmd.Bool("save", false, "Save the best match to your food catalog")
	lookupCmd.Parse(os.Args[2:])

	if lookupCmd.NArg() < 1 {
		log.Fatal("Usage: macrolog lookup [-save] \"<food name>\"")
	}
	if cfg.USDAAPIKey == "" {
		log.Fatal("USDA_API_KEY is not set")
	}

	client := usda.NewClient(cfg.USDAAPIKey, "")
	query := lookupCmd.Arg(0)

	if *save {
		result, err := client.QuickLookup(ctx, query)
		if err != nil {
			log.Fatalf("Lookup failed: %v", err)
		}
		if result == nil {
			fmt.Printf("No USDA results for %q.\n", query)
			return
		}
		item, err := tracker.SaveFood(ctx, result.Item(""))
		if err != nil {
			log.Fatalf("Failed to save food: %v", err)
		}
		fmt.Printf("Saved %q (%.0f kcal per %g %s) to your catalog.\n",
			item.Name, item.Calories, item.ServingSize, item.ServingUnit)
		return
	}

	results, err := client.Search(ctx, query, 10)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}
	if len(results) == 0 {
		fmt.Printf("No USDA results for %q.\n", query)
		return
	}
	for _, r := range results {
		fmt.Printf("  %-50s %4.0f kcal  P %5.1fg  C %5.1fg  F %5.1fg  per %g %s [%s]\n",
			r.Name, r.Calories, r.ProteinG, r.CarbsG, r.FatG, r.ServingSize, r.ServingUnit, r.DataType)
	}
}
