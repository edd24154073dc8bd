package database

import (
	"context"
	"time"
)

const recordColumns = `id, user_id, recall_date, eating_window_start, eating_window_end,
eating_window_hours, skipped_breakfast, late_night_eating, total_calories, carb_percent,
protein_percent, fat_percent, saturated_fat_g, trans_fat_g, fiber_g, added_sugar_g,
sodium_mg, omega3_g, ultra_processed_percent, glycemic_load, fruit_veg_servings,
dietary_inflammatory_score, chrononutrition_score, diet_quality_score, created_at`

func scanRecord(row interface{ Scan(dest ...any) error }) (DietaryRecord, error) {
	var r DietaryRecord
	err := row.Scan(
		&r.ID, &r.UserID, &r.RecallDate, &r.EatingWindowStart, &r.EatingWindowEnd,
		&r.EatingWindowHours, &r.SkippedBreakfast, &r.LateNightEating, &r.TotalCalories, &r.CarbPercent,
		&r.ProteinPercent, &r.FatPercent, &r.SaturatedFatG, &r.TransFatG, &r.FiberG, &r.AddedSugarG,
		&r.SodiumMg, &r.Omega3G, &r.UltraProcessedPercent, &r.GlycemicLoad, &r.FruitVegServings,
		&r.DietaryInflammatoryScore, &r.ChrononutritionScore, &r.DietQualityScore, &r.CreatedAt,
	)
	return r, err
}

const createDietaryRecord = `
INSERT INTO dietary_records (
	user_id, recall_date, eating_window_start, eating_window_end, eating_window_hours,
	skipped_breakfast, late_night_eating, total_calories, carb_percent, protein_percent,
	fat_percent, saturated_fat_g, trans_fat_g, fiber_g, added_sugar_g, sodium_mg,
	omega3_g, ultra_processed_percent, glycemic_load, fruit_veg_servings,
	dietary_inflammatory_score, chrononutrition_score, diet_quality_score
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
RETURNING ` + recordColumns

func (q *Queries) CreateDietaryRecord(ctx context.Context, r DietaryRecord) (DietaryRecord, error) {
	row := q.db.QueryRow(ctx, createDietaryRecord,
		r.UserID, r.RecallDate, r.EatingWindowStart, r.EatingWindowEnd, r.EatingWindowHours,
		r.SkippedBreakfast, r.LateNightEating, r.TotalCalories, r.CarbPercent, r.ProteinPercent,
		r.FatPercent, r.SaturatedFatG, r.TransFatG, r.FiberG, r.AddedSugarG, r.SodiumMg,
		r.Omega3G, r.UltraProcessedPercent, r.GlycemicLoad, r.FruitVegServings,
		r.DietaryInflammatoryScore, r.ChrononutritionScore, r.DietQualityScore,
	)
	return scanRecord(row)
}

const dietaryRecordExists = `
SELECT EXISTS (SELECT 1 FROM dietary_records WHERE user_id = $1 AND recall_date = $2)
`

func (q *Queries) DietaryRecordExists(ctx context.Context, userID string, recallDate time.Time) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, dietaryRecordExists, userID, recallDate).Scan(&exists)
	return exists, err
}

const getDietaryRecord = `
SELECT ` + recordColumns + ` FROM dietary_records WHERE id = $1 AND user_id = $2
`

func (q *Queries) GetDietaryRecord(ctx context.Context, id int32, userID string) (DietaryRecord, error) {
	return scanRecord(q.db.QueryRow(ctx, getDietaryRecord, id, userID))
}

const listDietaryRecords = `
SELECT ` + recordColumns + ` FROM dietary_records
WHERE user_id = $1 ORDER BY recall_date DESC OFFSET $2 LIMIT $3
`

func (q *Queries) ListDietaryRecords(ctx context.Context, userID string, skip, limit int32) ([]DietaryRecord, error) {
	rows, err := q.db.Query(ctx, listDietaryRecords, userID, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []DietaryRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

const latestDietaryRecord = `
SELECT ` + recordColumns + ` FROM dietary_records
WHERE user_id = $1 ORDER BY recall_date DESC LIMIT 1
`

func (q *Queries) LatestDietaryRecord(ctx context.Context, userID string) (DietaryRecord, error) {
	return scanRecord(q.db.QueryRow(ctx, latestDietaryRecord, userID))
}

const deleteDietaryRecord = `
DELETE FROM dietary_records WHERE id = $1 AND user_id = $2
`

func (q *Queries) DeleteDietaryRecord(ctx context.Context, id int32, userID string) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteDietaryRecord, id, userID)
	return tag.RowsAffected(), err
}

const createDietaryFoodItem = `
INSERT INTO dietary_food_items (
	dietary_record_id, food_code, food_description, quantity_grams, meal_type, meal_time,
	calories, carbs_g, protein_g, fat_g, fiber_g, sodium_mg, is_ultra_processed
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id
`

func (q *Queries) CreateDietaryFoodItem(ctx context.Context, it DietaryFoodItem) (int32, error) {
	var id int32
	err := q.db.QueryRow(ctx, createDietaryFoodItem,
		it.DietaryRecordID, it.FoodCode, it.FoodDescription, it.QuantityGrams, it.MealType, it.MealTime,
		it.Calories, it.CarbsG, it.ProteinG, it.FatG, it.FiberG, it.SodiumMg, it.IsUltraProcessed,
	).Scan(&id)
	return id, err
}

const listFoodItems = `
SELECT id, dietary_record_id, food_code, food_description, quantity_grams, meal_type, meal_time,
	calories, carbs_g, protein_g, fat_g, fiber_g, sodium_mg, is_ultra_processed
FROM dietary_food_items WHERE dietary_record_id = $1 ORDER BY id
`

func (q *Queries) ListFoodItems(ctx context.Context, recordID int32) ([]DietaryFoodItem, error) {
	rows, err := q.db.Query(ctx, listFoodItems, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DietaryFoodItem
	for rows.Next() {
		var it DietaryFoodItem
		if err := rows.Scan(&it.ID, &it.DietaryRecordID, &it.FoodCode, &it.FoodDescription,
			&it.QuantityGrams, &it.MealType, &it.MealTime, &it.Calories, &it.CarbsG,
			&it.ProteinG, &it.FatG, &it.FiberG, &it.SodiumMg, &it.IsUltraProcessed); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

const ffqColumns = `id, user_id, assessment_date, red_meat_servings_week, processed_meat_servings_week,
fish_servings_week, poultry_servings_week, eggs_servings_week, dairy_servings_week,
legumes_servings_week, nuts_seeds_servings_week, whole_grains_servings_week,
refined_grains_servings_week, vegetables_servings_day, fruits_servings_day,
fried_foods_servings_week, sweets_servings_week, sugary_beverages_servings_day,
alcohol_servings_week, olive_oil_tbsp_day, fast_food_servings_week, created_at`

func scanFFQ(row interface{ Scan(dest ...any) error }) (FFQResponse, error) {
	var f FFQResponse
	err := row.Scan(
		&f.ID, &f.UserID, &f.AssessmentDate, &f.RedMeatServingsWeek, &f.ProcessedMeatServingsWeek,
		&f.FishServingsWeek, &f.PoultryServingsWeek, &f.EggsServingsWeek, &f.DairyServingsWeek,
		&f.LegumesServingsWeek, &f.NutsSeedsServingsWeek, &f.WholeGrainsServingsWeek,
		&f.RefinedGrainsServingsWeek, &f.VegetablesServingsDay, &f.FruitsServingsDay,
		&f.FriedFoodsServingsWeek, &f.SweetsServingsWeek, &f.SugaryBeveragesServingsDay,
		&f.AlcoholServingsWeek, &f.OliveOilTbspDay, &f.FastFoodServingsWeek, &f.CreatedAt,
	)
	return f, err
}

const createFFQResponse = `
INSERT INTO ffq_responses (
	user_id, assessment_date, red_meat_servings_week, processed_meat_servings_week,
	fish_servings_week, poultry_servings_week, eggs_servings_week, dairy_servings_week,
	legumes_servings_week, nuts_seeds_servings_week, whole_grains_servings_week,
	refined_grains_servings_week, vegetables_servings_day, fruits_servings_day,
	fried_foods_servings_week, sweets_servings_week, sugary_beverages_servings_day,
	alcohol_servings_week, olive_oil_tbsp_day, fast_food_servings_week
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
RETURNING ` + ffqColumns

func (q *Queries) CreateFFQResponse(ctx context.Context, f FFQResponse) (FFQResponse, error) {
	row := q.db.QueryRow(ctx, createFFQResponse,
		f.UserID, f.AssessmentDate, f.RedMeatServingsWeek, f.ProcessedMeatServingsWeek,
		f.FishServingsWeek, f.PoultryServingsWeek, f.EggsServingsWeek, f.DairyServingsWeek,
		f.LegumesServingsWeek, f.NutsSeedsServingsWeek, f.WholeGrainsServingsWeek,
		f.RefinedGrainsServingsWeek, f.VegetablesServingsDay, f.FruitsServingsDay,
		f.FriedFoodsServingsWeek, f.SweetsServingsWeek, f.SugaryBeveragesServingsDay,
		f.AlcoholServingsWeek, f.OliveOilTbspDay, f.FastFoodServingsWeek,
	)
	return scanFFQ(row)
}

const listFFQResponses = `
SELECT ` + ffqColumns + ` FROM ffq_responses
WHERE user_id = $1 ORDER BY assessment_date DESC
`

func (q *Queries) ListFFQResponses(ctx context.Context, userID string) ([]FFQResponse, error) {
	rows, err := q.db.Query(ctx, listFFQResponses, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var responses []FFQResponse
	for rows.Next() {
		f, err := scanFFQ(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, f)
	}
	return responses, rows.Err()
}

const latestFFQResponse = `
SELECT ` + ffqColumns + ` FROM ffq_responses
WHERE user_id = $1 ORDER BY assessment_date DESC LIMIT 1
`

func (q *Queries) LatestFFQResponse(ctx context.Context, userID string) (FFQResponse, error) {
	return scanFFQ(q.db.QueryRow(ctx, latestFFQResponse, userID))
}
