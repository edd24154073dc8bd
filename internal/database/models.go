package database

import (
	"time"
)

// UserRole is the closed set of account roles.
type UserRole string

const (
	RolePatient      UserRole = "patient"
	RoleInvestigator UserRole = "investigator"
	RoleAdmin        UserRole = "admin"
)

// Sex is the closed set of biological sex values used by the clinical
// calculators. "other" is handled explicitly at every consumption site.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// ActivityLevel maps to the Mifflin-St Jeor activity multipliers.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

type SmokingStatus string

const (
	SmokingNever   SmokingStatus = "never"
	SmokingFormer  SmokingStatus = "former"
	SmokingCurrent SmokingStatus = "current"
)

// MealType is the meal slot of a recall food item.
type MealType string

const (
	MealBreakfast       MealType = "breakfast"
	MealMidMorningSnack MealType = "mid_morning_snack"
	MealLunch           MealType = "lunch"
	MealAfternoonSnack  MealType = "afternoon_snack"
	MealDinner          MealType = "dinner"
	MealLateNight       MealType = "late_night"
)

// PlanSource tags how a diet plan was produced.
type PlanSource string

const (
	SourceRuleBased PlanSource = "rule_based"
	SourceMLModel   PlanSource = "ml_model"
	SourceCombined  PlanSource = "combined"
)

// Dietary inflammatory score labels.
const (
	DISAntiInflammatory = "Anti-inflammatory"
	DISNeutral          = "Neutral"
	DISProInflammatory  = "Pro-inflammatory"
)

type User struct {
	UserID         string     `json:"user_id"`
	Email          string     `json:"email"`
	HashedPassword string     `json:"-"`
	FullName       string     `json:"full_name"`
	Role           UserRole   `json:"role"`
	IsActive       bool       `json:"is_active"`
	IsVerified     bool       `json:"is_verified"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// PatientProfile holds the clinical intake plus the derived block.
// The derived fields are recomputed together by clinical.Recompute on
// every profile save and must never be updated piecemeal.
type PatientProfile struct {
	ID     int32  `json:"id"`
	UserID string `json:"user_id"`

	Age                  int32         `json:"age"`
	Sex                  Sex           `json:"sex"`
	WeightKg             float64       `json:"weight_kg"`
	HeightCm             float64       `json:"height_cm"`
	WaistCircumferenceCm *float64      `json:"waist_circumference_cm"`
	BpSystolic           *int32        `json:"bp_systolic"`
	BpDiastolic          *int32        `json:"bp_diastolic"`
	FastingGlucoseMgDl   *float64      `json:"fasting_glucose_mg_dl"`
	TriglyceridesMgDl    *float64      `json:"triglycerides_mg_dl"`
	HdlCholesterolMgDl   *float64      `json:"hdl_cholesterol_mg_dl"`
	HsCrpMgL             *float64      `json:"hs_crp_mg_l"`
	Medications          []string      `json:"medications,omitempty"`
	ActivityLevel        ActivityLevel `json:"activity_level"`
	SleepDurationHours   *float64      `json:"sleep_duration_hours"`
	SmokingStatus        SmokingStatus `json:"smoking_status"`

	// Derived (stored for history, written only as a complete set)
	Bmi                             *float64 `json:"bmi"`
	WaistHeightRatio                *float64 `json:"waist_height_ratio"`
	MetabolicSyndromeComponentCount *int32   `json:"metabolic_syndrome_component_count"`
	EstimatedCalorieReq             *float64 `json:"estimated_calorie_req"`
	CalorieDeficit                  *float64 `json:"calorie_deficit"`
	MetabolicRiskScore              *int32   `json:"metabolic_risk_score"`
	MetabolicRiskCategory           *string  `json:"metabolic_risk_category"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// DietaryRecord is one 24-hour recall day with its computed aggregate.
type DietaryRecord struct {
	ID         int32     `json:"id"`
	UserID     string    `json:"user_id"`
	RecallDate time.Time `json:"recall_date"`

	EatingWindowStart *string  `json:"eating_window_start"` // "HH:MM"
	EatingWindowEnd   *string  `json:"eating_window_end"`
	EatingWindowHours *float64 `json:"eating_window_hours"`
	SkippedBreakfast  bool     `json:"skipped_breakfast"`
	LateNightEating   bool     `json:"late_night_eating"`

	TotalCalories         *float64 `json:"total_calories"`
	CarbPercent           *float64 `json:"carb_percent"`
	ProteinPercent        *float64 `json:"protein_percent"`
	FatPercent            *float64 `json:"fat_percent"`
	SaturatedFatG         *float64 `json:"saturated_fat_g"`
	TransFatG             *float64 `json:"trans_fat_g"`
	FiberG                *float64 `json:"fiber_g"`
	AddedSugarG           *float64 `json:"added_sugar_g"`
	SodiumMg              *float64 `json:"sodium_mg"`
	Omega3G               *float64 `json:"omega3_g"`
	UltraProcessedPercent *float64 `json:"ultra_processed_percent"`
	GlycemicLoad          *float64 `json:"glycemic_load"`
	FruitVegServings      *float64 `json:"fruit_veg_servings"`

	DietaryInflammatoryScore *string  `json:"dietary_inflammatory_score"`
	ChrononutritionScore     *float64 `json:"chrononutrition_score"`
	DietQualityScore         *float64 `json:"diet_quality_score"`

	CreatedAt time.Time `json:"created_at"`
}

type DietaryFoodItem struct {
	ID               int32    `json:"id"`
	DietaryRecordID  int32    `json:"dietary_record_id"`
	FoodCode         int64    `json:"food_code"`
	FoodDescription  string   `json:"food_description"`
	QuantityGrams    float64  `json:"quantity_grams"`
	MealType         MealType `json:"meal_type"`
	MealTime         *string  `json:"meal_time"` // "HH:MM"
	Calories         *float64 `json:"calories"`
	CarbsG           *float64 `json:"carbs_g"`
	ProteinG         *float64 `json:"protein_g"`
	FatG             *float64 `json:"fat_g"`
	FiberG           *float64 `json:"fiber_g"`
	SodiumMg         *float64 `json:"sodium_mg"`
	IsUltraProcessed bool     `json:"is_ultra_processed"`
}

// FFQResponse is a structured food-frequency questionnaire submission.
// Read-only input to the rule engine.
type FFQResponse struct {
	ID             int32     `json:"id"`
	UserID         string    `json:"user_id"`
	AssessmentDate time.Time `json:"assessment_date"`

	RedMeatServingsWeek        float64 `json:"red_meat_servings_week"`
	ProcessedMeatServingsWeek  float64 `json:"processed_meat_servings_week"`
	FishServingsWeek           float64 `json:"fish_servings_week"`
	PoultryServingsWeek        float64 `json:"poultry_servings_week"`
	EggsServingsWeek           float64 `json:"eggs_servings_week"`
	DairyServingsWeek          float64 `json:"dairy_servings_week"`
	LegumesServingsWeek        float64 `json:"legumes_servings_week"`
	NutsSeedsServingsWeek      float64 `json:"nuts_seeds_servings_week"`
	WholeGrainsServingsWeek    float64 `json:"whole_grains_servings_week"`
	RefinedGrainsServingsWeek  float64 `json:"refined_grains_servings_week"`
	VegetablesServingsDay      float64 `json:"vegetables_servings_day"`
	FruitsServingsDay          float64 `json:"fruits_servings_day"`
	FriedFoodsServingsWeek     float64 `json:"fried_foods_servings_week"`
	SweetsServingsWeek         float64 `json:"sweets_servings_week"`
	SugaryBeveragesServingsDay float64 `json:"sugary_beverages_servings_day"`
	AlcoholServingsWeek        float64 `json:"alcohol_servings_week"`
	OliveOilTbspDay            float64 `json:"olive_oil_tbsp_day"`
	FastFoodServingsWeek       float64 `json:"fast_food_servings_week"`

	CreatedAt time.Time `json:"created_at"`
}

// TriggeredRule records one fired clinical rule with its explanation.
type TriggeredRule struct {
	RuleName        string   `json:"rule_name"`
	Triggered       bool     `json:"triggered"`
	Reason          string   `json:"reason"`
	Recommendations []string `json:"recommendations"`
}

// FoodRecommendation actions: increase, decrease, avoid, reduce, strategy.
type FoodRecommendation struct {
	Category string            `json:"category"`
	Action   string            `json:"action"`
	Foods    []string          `json:"foods"`
	Reason   string            `json:"reason"`
	Details  map[string]string `json:"details,omitempty"`
}

// MealPattern is the carbohydrate-distribution meal timing template.
type MealPattern struct {
	Strategy              string            `json:"strategy"`
	BreakfastCarbsPercent int               `json:"breakfast_carbs_percent"`
	LunchCarbsPercent     int               `json:"lunch_carbs_percent"`
	DinnerCarbsPercent    int               `json:"dinner_carbs_percent"`
	SnacksCarbsPercent    int               `json:"snacks_carbs_percent"`
	RecommendedMealTimes  map[string]string `json:"recommended_meal_times"`
}

// DietPlan is immutable once stored; each generation inserts a new row.
type DietPlan struct {
	ID     int32      `json:"id"`
	UserID string     `json:"user_id"`
	Source PlanSource `json:"source"`

	TargetCalories       *float64 `json:"target_calories"`
	TargetCarbPercent    *float64 `json:"target_carb_percent"`
	TargetProteinPercent *float64 `json:"target_protein_percent"`
	TargetFatPercent     *float64 `json:"target_fat_percent"`
	TargetFiberG         *float64 `json:"target_fiber_g"`
	TargetSodiumMg       *float64 `json:"target_sodium_mg"`
	TargetAddedSugarG    *float64 `json:"target_added_sugar_g"`
	TargetOmega3G        *float64 `json:"target_omega3_g,omitempty"`

	TriggeredRules      []TriggeredRule      `json:"triggered_rules"`
	FoodRecommendations []FoodRecommendation `json:"food_recommendations"`
	LifestyleReminders  []string             `json:"lifestyle_reminders"`
	MealPattern         *MealPattern         `json:"meal_pattern"`

	LowGiPlan             bool `json:"low_gi_plan"`
	CalorieDeficitPlan    bool `json:"calorie_deficit_plan"`
	AntiInflammatoryDiet  bool `json:"anti_inflammatory_diet"`
	Omega3Emphasis        bool `json:"omega3_emphasis"`
	MufaEmphasis          bool `json:"mufa_emphasis"`
	SolubleFiberEmphasis  bool `json:"soluble_fiber_emphasis"`
	TimeRestrictedEating  bool `json:"time_restricted_eating"`
	PortionControl        bool `json:"portion_control"`
	CarbDistribution      bool `json:"carb_distribution"`

	MlConfidenceScore        *float64 `json:"ml_confidence_score"`
	MlPredictedRiskReduction *float64 `json:"ml_predicted_risk_reduction"`
	MlRecommendedPlanType    *string  `json:"ml_recommended_plan_type"`

	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// Food is one FNDDS entry with its WWEIA category and derived flags.
type Food struct {
	ID                       int32  `json:"id"`
	FoodCode                 int64  `json:"food_code"`
	MainDescription          string `json:"main_description"`
	AdditionalDescription    *string `json:"additional_description"`
	WweiaCategoryNumber      int32  `json:"wweia_category_number"`
	WweiaCategoryDescription string `json:"wweia_category_description"`

	IsAntiInflammatory bool `json:"is_anti_inflammatory"`
	IsProInflammatory  bool `json:"is_pro_inflammatory"`
	IsLowGi            bool `json:"is_low_gi"`
	IsFruitVegetable   bool `json:"is_fruit_vegetable"`
	IsHighFiber        bool `json:"is_high_fiber"`
	IsOmega3Rich       bool `json:"is_omega3_rich"`
	IsUltraProcessed   bool `json:"is_ultra_processed"`
	IsMufaRich         bool `json:"is_mufa_rich"`
}

type HealthGoal struct {
	ID           int32      `json:"id"`
	UserID       string     `json:"user_id"`
	GoalType     string     `json:"goal_type"` // bmi | glucose | weight | triglycerides | hdl
	TargetValue  float64    `json:"target_value"`
	CurrentValue *float64   `json:"current_value"`
	Deadline     *string    `json:"deadline"` // YYYY-MM-DD
	IsAchieved   bool       `json:"is_achieved"`
	AchievedAt   *time.Time `json:"achieved_at"`
	CreatedAt    time.Time  `json:"created_at"`
}
