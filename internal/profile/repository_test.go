package profile

import (
	"context"
	"path/filepath"
	"testing"

	"macrolog/internal/database"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.SQL)
}

func TestSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	t.Run("UnsetReturnsNil", func(t *testing.T) {
		got, err := repo.GetSettings(ctx)
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil before first save, got %+v", got)
		}
	})

	settings := Settings{
		CurrentWeightLbs: 200,
		TargetWeightLbs:  180,
		HeightInches:     70,
		Age:              30,
		Sex:              "male",
		ActivityLevel:    "moderate",
		WeeklyLossRate:   1.0,
		ProteinRatio:     0.4,
		CarbsRatio:       0.3,
		FatRatio:         0.3,
	}
	if err := repo.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, err := repo.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected settings, got nil")
	}
	if *got != settings {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", *got, settings)
	}

	t.Run("SecondSaveOverwrites", func(t *testing.T) {
		settings.WeeklyLossRate = 1.5
		if err := repo.SaveSettings(ctx, settings); err != nil {
			t.Fatalf("SaveSettings failed: %v", err)
		}
		got, err := repo.GetSettings(ctx)
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if got.WeeklyLossRate != 1.5 {
			t.Errorf("Expected rate 1.5, got %g", got.WeeklyLossRate)
		}
	})
}

func TestSetCurrentWeight(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	t.Run("CreatesRowWhenAbsent", func(t *testing.T) {
		if err := repo.SetCurrentWeight(ctx, 195); err != nil {
			t.Fatalf("SetCurrentWeight failed: %v", err)
		}
		got, err := repo.GetSettings(ctx)
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if got == nil || got.CurrentWeightLbs != 195 {
			t.Errorf("Expected settings created with weight 195, got %+v", got)
		}
	})

	t.Run("PreservesOtherFields", func(t *testing.T) {
		if err := repo.SaveSettings(ctx, Settings{CurrentWeightLbs: 195, TargetWeightLbs: 180, HeightInches: 70, Age: 30}); err != nil {
			t.Fatalf("SaveSettings failed: %v", err)
		}
		if err := repo.SetCurrentWeight(ctx, 192); err != nil {
			t.Fatalf("SetCurrentWeight failed: %v", err)
		}
		got, err := repo.GetSettings(ctx)
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if got.CurrentWeightLbs != 192 {
			t.Errorf("Expected weight 192, got %g", got.CurrentWeightLbs)
		}
		if got.TargetWeightLbs != 180 || got.HeightInches != 70 || got.Age != 30 {
			t.Errorf("Expected other fields untouched, got %+v", got)
		}
	})
}

func TestWeightHistory(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	samples := []WeightSample{
		{Date: "2024-06-03", WeightLbs: 198.5},
		{Date: "2024-06-01", WeightLbs: 200},
		{Date: "2024-06-02", WeightLbs: 199.2},
	}
	for _, s := range samples {
		if err := repo.UpsertWeight(ctx, s); err != nil {
			t.Fatalf("UpsertWeight failed: %v", err)
		}
	}

	got, err := repo.ListWeights(ctx)
	if err != nil {
		t.Fatalf("ListWeights failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 samples, got %d", len(got))
	}
	if got[0].Date != "2024-06-01" || got[1].Date != "2024-06-02" || got[2].Date != "2024-06-03" {
		t.Errorf("Expected chronological order, got %s, %s, %s", got[0].Date, got[1].Date, got[2].Date)
	}

	t.Run("SameDateOverwrites", func(t *testing.T) {
		if err := repo.UpsertWeight(ctx, WeightSample{Date: "2024-06-03", WeightLbs: 198.0}); err != nil {
			t.Fatalf("UpsertWeight failed: %v", err)
		}
		got, err := repo.ListWeights(ctx)
		if err != nil {
			t.Fatalf("ListWeights failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("Expected still 3 samples, got %d", len(got))
		}
		if got[2].WeightLbs != 198.0 {
			t.Errorf("Expected 2024-06-03 overwritten to 198.0, got %g", got[2].WeightLbs)
		}
	})
}
