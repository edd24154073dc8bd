package database

import (
	"context"
	"encoding/json"
	"fmt"
)

const planColumns = `id, user_id, source, target_calories, target_carb_percent,
target_protein_percent, target_fat_percent, target_fiber_g, target_sodium_mg,
target_added_sugar_g, target_omega3_g, triggered_rules, food_recommendations,
lifestyle_reminders, meal_pattern, low_gi_plan, calorie_deficit_plan,
anti_inflammatory_diet, omega3_emphasis, mufa_emphasis, soluble_fiber_emphasis,
time_restricted_eating, portion_control, carb_distribution, ml_confidence_score,
ml_predicted_risk_reduction, ml_recommended_plan_type, summary, created_at`

func scanPlan(row interface{ Scan(dest ...any) error }) (DietPlan, error) {
	var p DietPlan
	var rules, recs, reminders []byte
	var pattern []byte
	err := row.Scan(
		&p.ID, &p.UserID, &p.Source, &p.TargetCalories, &p.TargetCarbPercent,
		&p.TargetProteinPercent, &p.TargetFatPercent, &p.TargetFiberG, &p.TargetSodiumMg,
		&p.TargetAddedSugarG, &p.TargetOmega3G, &rules, &recs,
		&reminders, &pattern, &p.LowGiPlan, &p.CalorieDeficitPlan,
		&p.AntiInflammatoryDiet, &p.Omega3Emphasis, &p.MufaEmphasis, &p.SolubleFiberEmphasis,
		&p.TimeRestrictedEating, &p.PortionControl, &p.CarbDistribution, &p.MlConfidenceScore,
		&p.MlPredictedRiskReduction, &p.MlRecommendedPlanType, &p.Summary, &p.CreatedAt,
	)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(rules, &p.TriggeredRules); err != nil {
		return p, fmt.Errorf("decode triggered_rules: %w", err)
	}
	if err := json.Unmarshal(recs, &p.FoodRecommendations); err != nil {
		return p, fmt.Errorf("decode food_recommendations: %w", err)
	}
	if err := json.Unmarshal(reminders, &p.LifestyleReminders); err != nil {
		return p, fmt.Errorf("decode lifestyle_reminders: %w", err)
	}
	if len(pattern) > 0 {
		p.MealPattern = &MealPattern{}
		if err := json.Unmarshal(pattern, p.MealPattern); err != nil {
			return p, fmt.Errorf("decode meal_pattern: %w", err)
		}
	}
	return p, nil
}

const createDietPlan = `
INSERT INTO diet_plans (
	user_id, source, target_calories, target_carb_percent, target_protein_percent,
	target_fat_percent, target_fiber_g, target_sodium_mg, target_added_sugar_g,
	target_omega3_g, triggered_rules, food_recommendations, lifestyle_reminders,
	meal_pattern, low_gi_plan, calorie_deficit_plan, anti_inflammatory_diet,
	omega3_emphasis, mufa_emphasis, soluble_fiber_emphasis, time_restricted_eating,
	portion_control, carb_distribution, ml_confidence_score, ml_predicted_risk_reduction,
	ml_recommended_plan_type, summary
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
	$18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
RETURNING ` + planColumns

func (q *Queries) CreateDietPlan(ctx context.Context, p DietPlan) (DietPlan, error) {
	if p.TriggeredRules == nil {
		p.TriggeredRules = []TriggeredRule{}
	}
	if p.FoodRecommendations == nil {
		p.FoodRecommendations = []FoodRecommendation{}
	}
	if p.LifestyleReminders == nil {
		p.LifestyleReminders = []string{}
	}
	rules, err := json.Marshal(p.TriggeredRules)
	if err != nil {
		return DietPlan{}, fmt.Errorf("encode triggered_rules: %w", err)
	}
	recs, err := json.Marshal(p.FoodRecommendations)
	if err != nil {
		return DietPlan{}, fmt.Errorf("encode food_recommendations: %w", err)
	}
	reminders, err := json.Marshal(p.LifestyleReminders)
	if err != nil {
		return DietPlan{}, fmt.Errorf("encode lifestyle_reminders: %w", err)
	}
	var pattern []byte
	if p.MealPattern != nil {
		pattern, err = json.Marshal(p.MealPattern)
		if err != nil {
			return DietPlan{}, fmt.Errorf("encode meal_pattern: %w", err)
		}
	}
	row := q.db.QueryRow(ctx, createDietPlan,
		p.UserID, p.Source, p.TargetCalories, p.TargetCarbPercent, p.TargetProteinPercent,
		p.TargetFatPercent, p.TargetFiberG, p.TargetSodiumMg, p.TargetAddedSugarG,
		p.TargetOmega3G, rules, recs, reminders,
		pattern, p.LowGiPlan, p.CalorieDeficitPlan, p.AntiInflammatoryDiet,
		p.Omega3Emphasis, p.MufaEmphasis, p.SolubleFiberEmphasis, p.TimeRestrictedEating,
		p.PortionControl, p.CarbDistribution, p.MlConfidenceScore, p.MlPredictedRiskReduction,
		p.MlRecommendedPlanType, p.Summary,
	)
	return scanPlan(row)
}

const getDietPlan = `
SELECT ` + planColumns + ` FROM diet_plans WHERE id = $1 AND user_id = $2
`

func (q *Queries) GetDietPlan(ctx context.Context, id int32, userID string) (DietPlan, error) {
	return scanPlan(q.db.QueryRow(ctx, getDietPlan, id, userID))
}

const listDietPlans = `
SELECT ` + planColumns + ` FROM diet_plans
WHERE user_id = $1 ORDER BY created_at DESC OFFSET $2 LIMIT $3
`

func (q *Queries) ListDietPlans(ctx context.Context, userID string, skip, limit int32) ([]DietPlan, error) {
	rows, err := q.db.Query(ctx, listDietPlans, userID, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var plans []DietPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

const latestDietPlan = `
SELECT ` + planColumns + ` FROM diet_plans
WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1
`

func (q *Queries) LatestDietPlan(ctx context.Context, userID string) (DietPlan, error) {
	return scanPlan(q.db.QueryRow(ctx, latestDietPlan, userID))
}
