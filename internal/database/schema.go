package database

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		full_name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'patient',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_verified BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS patient_profiles (
		id SERIAL PRIMARY KEY,
		user_id UUID NOT NULL UNIQUE REFERENCES users(user_id) ON DELETE CASCADE,
		age INT NOT NULL,
		sex TEXT NOT NULL,
		weight_kg DOUBLE PRECISION NOT NULL,
		height_cm DOUBLE PRECISION NOT NULL,
		waist_circumference_cm DOUBLE PRECISION,
		bp_systolic INT,
		bp_diastolic INT,
		fasting_glucose_mg_dl DOUBLE PRECISION,
		triglycerides_mg_dl DOUBLE PRECISION,
		hdl_cholesterol_mg_dl DOUBLE PRECISION,
		hs_crp_mg_l DOUBLE PRECISION,
		medications TEXT[],
		activity_level TEXT NOT NULL DEFAULT 'sedentary',
		sleep_duration_hours DOUBLE PRECISION,
		smoking_status TEXT NOT NULL DEFAULT 'never',
		bmi DOUBLE PRECISION,
		waist_height_ratio DOUBLE PRECISION,
		metabolic_syndrome_component_count INT,
		estimated_calorie_req DOUBLE PRECISION,
		calorie_deficit DOUBLE PRECISION,
		metabolic_risk_score INT,
		metabolic_risk_category TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS dietary_records (
		id SERIAL PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		recall_date DATE NOT NULL,
		eating_window_start TEXT,
		eating_window_end TEXT,
		eating_window_hours DOUBLE PRECISION,
		skipped_breakfast BOOLEAN NOT NULL DEFAULT FALSE,
		late_night_eating BOOLEAN NOT NULL DEFAULT FALSE,
		total_calories DOUBLE PRECISION,
		carb_percent DOUBLE PRECISION,
		protein_percent DOUBLE PRECISION,
		fat_percent DOUBLE PRECISION,
		saturated_fat_g DOUBLE PRECISION,
		trans_fat_g DOUBLE PRECISION,
		fiber_g DOUBLE PRECISION,
		added_sugar_g DOUBLE PRECISION,
		sodium_mg DOUBLE PRECISION,
		omega3_g DOUBLE PRECISION,
		ultra_processed_percent DOUBLE PRECISION,
		glycemic_load DOUBLE PRECISION,
		fruit_veg_servings DOUBLE PRECISION,
		dietary_inflammatory_score TEXT,
		chrononutrition_score DOUBLE PRECISION,
		diet_quality_score DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_id, recall_date)
	)`,
	`CREATE TABLE IF NOT EXISTS dietary_food_items (
		id SERIAL PRIMARY KEY,
		dietary_record_id INT NOT NULL REFERENCES dietary_records(id) ON DELETE CASCADE,
		food_code BIGINT NOT NULL,
		food_description TEXT NOT NULL,
		quantity_grams DOUBLE PRECISION NOT NULL,
		meal_type TEXT NOT NULL,
		meal_time TEXT,
		calories DOUBLE PRECISION,
		carbs_g DOUBLE PRECISION,
		protein_g DOUBLE PRECISION,
		fat_g DOUBLE PRECISION,
		fiber_g DOUBLE PRECISION,
		sodium_mg DOUBLE PRECISION,
		is_ultra_processed BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS ffq_responses (
		id SERIAL PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		assessment_date DATE NOT NULL,
		red_meat_servings_week DOUBLE PRECISION NOT NULL DEFAULT 0,
		processed_meat_servings_week DOUBLE PRECISION NOT NULL DEFAULT 0,
		fish_servings_week DOUBLE PRECISION NOT NULL DEFAULT 0,
		poultry_servings_week DOUBLE PRECISION NOT NULL DEFAULT 0,
		eggs_servings_week DOUBLE PRECISION NOT NULL DEFAULT 0,
		dairy_servings_week DOUBLE PRECISION NOT NULL DEFAULT 0,
		legumes_servings_week DOUBLE PRECISION NOT NULL DEFAULT 0,
		nuts_seeds_servings_week DOUBLE PRECISION NOT NULL DEFAULT 0,
		whole_grains_servings_week DOUBLE PRECISION NOT NULL DEFAULT 0,
		refined_grains_servings_week DOUBLE PRECISION NOT NULL DEFAULT 0,
		vegetables_servings_day DOUBLE PRECISION NOT NULL DEFAULT 0,
		fruits_servings_day DOUBLE PRECISION NOT NULL DEFAULT 0,
		fried_foods_servings_week DOUBLE PRECISION NOT NULL DEFAULT 0,
		sweets_servings_week DOUBLE PRECISION NOT NULL DEFAULT 0,
		sugary_beverages_servings_day DOUBLE PRECISION NOT NULL DEFAULT 0,
		alcohol_servings_week DOUBLE PRECISION NOT NULL DEFAULT 0,
		olive_oil_tbsp_day DOUBLE PRECISION NOT NULL DEFAULT 0,
		fast_food_servings_week DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS diet_plans (
		id SERIAL PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		source TEXT NOT NULL DEFAULT 'rule_based',
		target_calories DOUBLE PRECISION,
		target_carb_percent DOUBLE PRECISION,
		target_protein_percent DOUBLE PRECISION,
		target_fat_percent DOUBLE PRECISION,
		target_fiber_g DOUBLE PRECISION,
		target_sodium_mg DOUBLE PRECISION,
		target_added_sugar_g DOUBLE PRECISION,
		target_omega3_g DOUBLE PRECISION,
		triggered_rules JSONB NOT NULL DEFAULT '[]',
		food_recommendations JSONB NOT NULL DEFAULT '[]',
		lifestyle_reminders JSONB NOT NULL DEFAULT '[]',
		meal_pattern JSONB,
		low_gi_plan BOOLEAN NOT NULL DEFAULT FALSE,
		calorie_deficit_plan BOOLEAN NOT NULL DEFAULT FALSE,
		anti_inflammatory_diet BOOLEAN NOT NULL DEFAULT FALSE,
		omega3_emphasis BOOLEAN NOT NULL DEFAULT FALSE,
		mufa_emphasis BOOLEAN NOT NULL DEFAULT FALSE,
		soluble_fiber_emphasis BOOLEAN NOT NULL DEFAULT FALSE,
		time_restricted_eating BOOLEAN NOT NULL DEFAULT FALSE,
		portion_control BOOLEAN NOT NULL DEFAULT FALSE,
		carb_distribution BOOLEAN NOT NULL DEFAULT FALSE,
		ml_confidence_score DOUBLE PRECISION,
		ml_predicted_risk_reduction DOUBLE PRECISION,
		ml_recommended_plan_type TEXT,
		summary TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS foods (
		id SERIAL PRIMARY KEY,
		food_code BIGINT NOT NULL UNIQUE,
		main_description TEXT NOT NULL,
		additional_description TEXT,
		wweia_category_number INT NOT NULL,
		wweia_category_description TEXT NOT NULL,
		is_anti_inflammatory BOOLEAN NOT NULL DEFAULT FALSE,
		is_pro_inflammatory BOOLEAN NOT NULL DEFAULT FALSE,
		is_low_gi BOOLEAN NOT NULL DEFAULT FALSE,
		is_fruit_vegetable BOOLEAN NOT NULL DEFAULT FALSE,
		is_high_fiber BOOLEAN NOT NULL DEFAULT FALSE,
		is_omega3_rich BOOLEAN NOT NULL DEFAULT FALSE,
		is_ultra_processed BOOLEAN NOT NULL DEFAULT FALSE,
		is_mufa_rich BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_foods_main_description ON foods (lower(main_description))`,
	`CREATE TABLE IF NOT EXISTS health_goals (
		id SERIAL PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		goal_type TEXT NOT NULL,
		target_value DOUBLE PRECISION NOT NULL,
		current_value DOUBLE PRECISION,
		deadline TEXT,
		is_achieved BOOLEAN NOT NULL DEFAULT FALSE,
		achieved_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// CreateTables applies the schema. Statements are idempotent so it is
// safe to run on every startup.
func (s *service) CreateTables(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.Dbpool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
