package food

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository is a database-backed store for the food catalog and the daily
// log.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts a catalog item, or updates it when the ID already exists.
func (r *Repository) Save(ctx context.Context, item Item) error {
	query := `
    INSERT INTO foods (id, name, serving_size, serving_unit, calories, protein_g, carbs_g, fat_g, is_favorite, created_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    ON CONFLICT(id) DO UPDATE SET
        name = excluded.name,
        serving_size = excluded.serving_size,
        serving_unit = excluded.serving_unit,
        calories = excluded.calories,
        protein_g = excluded.protein_g,
        carbs_g = excluded.carbs_g,
        fat_g = excluded.fat_g,
        is_favorite = excluded.is_favorite
    `
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.ServingSize, item.ServingUnit,
		item.Calories, item.ProteinG, item.CarbsG, item.FatG,
		item.IsFavorite, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save food item: %w", err)
	}
	return nil
}

// Get retrieves a catalog item by ID. Returns nil when not found.
func (r *Repository) Get(ctx context.Context, id string) (*Item, error) {
	query := `
    SELECT id, name, serving_size, serving_unit, calories, protein_g, carbs_g, fat_g, is_favorite
    FROM foods
    WHERE id = ?
    `
	var item Item
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.ServingSize, &item.ServingUnit,
		&item.Calories, &item.ProteinG, &item.CarbsG, &item.FatG, &item.IsFavorite)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get food item: %w", err)
	}
	return &item, nil
}

// List returns the whole catalog, favorites first, then by name.
func (r *Repository) List(ctx context.Context) ([]Item, error) {
	query := `
    SELECT id, name, serving_size, serving_unit, calories, protein_g, carbs_g, fat_g, is_favorite
    FROM foods
    ORDER BY is_favorite DESC, name COLLATE NOCASE
    `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.ID, &item.Name, &item.ServingSize, &item.ServingUnit,
			&item.Calories, &item.ProteinG, &item.CarbsG, &item.FatG, &item.IsFavorite); err != nil {
			return nil, fmt.Errorf("failed to scan food item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Delete removes a catalog item. Logged entries cascade via the schema.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM foods WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete food item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no food item found with id %s", id)
	}
	return nil
}

// SetFavorite toggles the favorite flag on a catalog item.
func (r *Repository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	result, err := r.db.ExecContext(ctx, "UPDATE foods SET is_favorite = ? WHERE id = ?", favorite, id)
	if err != nil {
		return fmt.Errorf("failed to update favorite flag: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no food item found with id %s", id)
	}
	return nil
}

// LogEntry records a consumption of a catalog item.
func (r *Repository) LogEntry(ctx context.Context, entry LoggedEntry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	query := `
    INSERT INTO logged_entries (id, food_id, servings, meal_type, date, created_at)
    VALUES (?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.FoodID, entry.Servings, string(entry.MealType), entry.Date, createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert logged entry: %w", err)
	}
	return nil
}

// DeleteEntry removes a single logged entry.
func (r *Repository) DeleteEntry(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM logged_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete logged entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no logged entry found with id %s", id)
	}
	return nil
}

// DayLog returns a date's logged entries joined with their catalog items.
// The join is explicit and LEFT so orphaned entries still come back, with a
// nil Item.
func (r *Repository) DayLog(ctx context.Context, date string) ([]LoggedFood, error) {
	query := `
    SELECT e.id, e.food_id, e.servings, e.meal_type, e.date, e.created_at,
           f.id, f.name, f.serving_size, f.serving_unit, f.calories, f.protein_g, f.carbs_g, f.fat_g, f.is_favorite
    FROM logged_entries e
    LEFT JOIN foods f ON e.food_id = f.id
    WHERE e.date = ?
    ORDER BY e.created_at
    `
	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query day log: %w", err)
	}
	defer rows.Close()

	var logged []LoggedFood
	for rows.Next() {
		var lf LoggedFood
		var mealType string
		var itemID, itemName, itemUnit sql.NullString
		var servingSize, calories, proteinG, carbsG, fatG sql.NullFloat64
		var isFavorite sql.NullBool

		if err := rows.Scan(
			&lf.Entry.ID, &lf.Entry.FoodID, &lf.Entry.Servings, &mealType,
			&lf.Entry.Date, &lf.Entry.CreatedAt,
			&itemID, &itemName, &servingSize, &itemUnit,
			&calories, &proteinG, &carbsG, &fatG, &isFavorite); err != nil {
			return nil, fmt.Errorf("failed to scan logged entry: %w", err)
		}
		lf.Entry.MealType = MealType(mealType)

		if itemID.Valid {
			lf.Item = &Item{
				ID:          itemID.String,
				Name:        itemName.String,
				ServingSize: servingSize.Float64,
				ServingUnit: itemUnit.String,
				Calories:    calories.Float64,
				ProteinG:    proteinG.Float64,
				CarbsG:      carbsG.Float64,
				FatG:        fatG.Float64,
				IsFavorite:  isFavorite.Bool,
			}
		}
		logged = append(logged, lf)
	}
	return logged, rows.Err()
}
