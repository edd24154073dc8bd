package plan

import (
	"testing"

	"DiabetesDiet/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }
func i32(v int32) *int32     { return &v }
func str(v string) *string   { return &v }

func healthyProfile() *database.PatientProfile {
	return &database.PatientProfile{
		UserID:                "u-1",
		Age:                   35,
		Sex:                   database.SexFemale,
		WeightKg:              60,
		HeightCm:              165,
		ActivityLevel:         database.ActivityModerate,
		SmokingStatus:         database.SmokingNever,
		Bmi:                   f64(22.0),
		MetabolicRiskCategory: str("Low Risk"),
		EstimatedCalorieReq:   f64(2100),
	}
}

func ruleNames(rules []database.TriggeredRule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.RuleName
	}
	return names
}

func TestEvaluateHealthyProfile(t *testing.T) {
	res := Evaluate(Inputs{Profile: healthyProfile()})

	assert.Empty(t, res.TriggeredRules)
	assert.Empty(t, res.FoodRecommendations)
	assert.Nil(t, res.MealPattern)
	assert.Equal(t, Modules{}, res.Modules)

	assert.Equal(t, 2100.0, res.Targets.Calories)
	assert.Equal(t, 45.0, res.Targets.CarbPercent)
	assert.Equal(t, 20.0, res.Targets.ProteinPercent)
	assert.Equal(t, 35.0, res.Targets.FatPercent)
	assert.Equal(t, 28.0, res.Targets.FiberG)
	assert.Equal(t, 2300.0, res.Targets.SodiumMg)
	assert.Equal(t, 25.0, res.Targets.AddedSugarG)
	assert.Nil(t, res.Targets.Omega3G)

	assert.Contains(t, res.Summary, "Low Risk metabolic risk")
	assert.Contains(t, res.Summary, "0 clinical findings identified")
}

func TestEvaluateHighTriglycerides(t *testing.T) {
	p := healthyProfile()
	p.TriglyceridesMgDl = f64(180)

	res := Evaluate(Inputs{Profile: p})

	assert.Contains(t, ruleNames(res.TriggeredRules), "HIGH_TRIGLYCERIDES")
	assert.True(t, res.Modules.Omega3Emphasis)
	assert.True(t, res.Modules.SolubleFiberEmphasis)
	require.NotNil(t, res.Targets.Omega3G)
	assert.Equal(t, 2.0, *res.Targets.Omega3G)

	var r database.TriggeredRule
	for _, tr := range res.TriggeredRules {
		if tr.RuleName == "HIGH_TRIGLYCERIDES" {
			r = tr
		}
	}
	assert.Equal(t, "TG = 180 mg/dL (target <150 mg/dL)", r.Reason)
	assert.Len(t, r.Recommendations, 4)
}

func TestEvaluateLowHDLSexThresholds(t *testing.T) {
	// 44 is low for females (<50) but normal for males (>=40)
	p := healthyProfile()
	p.HdlCholesterolMgDl = f64(44)

	res := Evaluate(Inputs{Profile: p})
	assert.Contains(t, ruleNames(res.TriggeredRules), "LOW_HDL")
	assert.True(t, res.Modules.MufaEmphasis)

	p.Sex = database.SexMale
	res = Evaluate(Inputs{Profile: p})
	assert.NotContains(t, ruleNames(res.TriggeredRules), "LOW_HDL")

	// 45 threshold applies when sex is other
	p.Sex = database.SexOther
	p.HdlCholesterolMgDl = f64(44.5)
	res = Evaluate(Inputs{Profile: p})
	assert.Contains(t, ruleNames(res.TriggeredRules), "LOW_HDL")
}

func TestEvaluateGlucoseRules(t *testing.T) {
	p := healthyProfile()
	p.FastingGlucoseMgDl = f64(110)

	res := Evaluate(Inputs{Profile: p})

	require.Contains(t, ruleNames(res.TriggeredRules), "ELEVATED_FASTING_GLUCOSE")
	assert.True(t, res.Modules.LowGiPlan)
	assert.True(t, res.Modules.CarbDistribution)
	assert.Equal(t, 40.0, res.Targets.CarbPercent)
	assert.Equal(t, 35.0, res.Targets.FiberG)

	require.NotNil(t, res.MealPattern)
	assert.Equal(t, "Carbohydrate Distribution", res.MealPattern.Strategy)
	assert.Equal(t, 25, res.MealPattern.BreakfastCarbsPercent)
	assert.Equal(t, 35, res.MealPattern.LunchCarbsPercent)
	assert.Equal(t, 30, res.MealPattern.DinnerCarbsPercent)
	assert.Equal(t, 10, res.MealPattern.SnacksCarbsPercent)
	assert.Equal(t, "12:30-1:30 PM", res.MealPattern.RecommendedMealTimes["lunch"])

	assert.Contains(t, res.TriggeredRules[0].Reason, "Prediabetes (FG=110 100-125 mg/dL)")

	p.FastingGlucoseMgDl = f64(130)
	res = Evaluate(Inputs{Profile: p})
	assert.Contains(t, res.TriggeredRules[0].Reason, "Diabetes (FG=130 >=126 mg/dL)")
}

func TestEvaluateObesityRules(t *testing.T) {
	p := healthyProfile()
	p.Sex = database.SexMale
	p.Bmi = f64(28.5)
	p.WaistCircumferenceCm = f64(95)
	p.EstimatedCalorieReq = f64(2200)
	p.CalorieDeficit = f64(1700)

	res := Evaluate(Inputs{Profile: p})

	require.Contains(t, ruleNames(res.TriggeredRules), "ABDOMINAL_OBESITY")
	assert.True(t, res.Modules.CalorieDeficitPlan)
	assert.True(t, res.Modules.PortionControl)
	// elevated waist also activates time-restricted eating
	assert.True(t, res.Modules.TimeRestrictedEating)
	assert.Equal(t, 1700.0, res.Targets.Calories)

	require.Len(t, res.FoodRecommendations, 1)
	rec := res.FoodRecommendations[0]
	assert.Equal(t, "Portion Control", rec.Category)
	assert.Equal(t, "strategy", rec.Action)
	assert.Equal(t, "1700", rec.Details["target_calories"])
	assert.Equal(t, "500 kcal/day deficit", rec.Details["calorie_reduction"])
	assert.Contains(t, rec.Reason, "Waist 95cm >= 90cm cutoff")
	assert.Contains(t, rec.Reason, "BMI 28.5 >= 25")
}

func TestEvaluateObesityBMIOnly(t *testing.T) {
	// BMI elevated but waist normal: deficit plan without TRE
	p := healthyProfile()
	p.Bmi = f64(26.0)
	p.WaistCircumferenceCm = f64(70)
	p.EstimatedCalorieReq = f64(2000)

	res := Evaluate(Inputs{Profile: p})

	assert.True(t, res.Modules.CalorieDeficitPlan)
	assert.False(t, res.Modules.TimeRestrictedEating)
	// no stored deficit target, falls back to tdee-500
	assert.Equal(t, "1500", res.FoodRecommendations[0].Details["target_calories"])
}

func TestEvaluateInflammationRules(t *testing.T) {
	p := healthyProfile()
	p.HsCrpMgL = f64(4.2)

	res := Evaluate(Inputs{Profile: p})

	require.Contains(t, ruleNames(res.TriggeredRules), "ELEVATED_INFLAMMATION")
	assert.True(t, res.Modules.AntiInflammatoryDiet)
	assert.Equal(t, 1500.0, res.Targets.SodiumMg)
	assert.Equal(t, 15.0, res.Targets.AddedSugarG)

	// pro-inflammatory diet score alone also triggers the rule
	d := &database.DietaryRecord{DietaryInflammatoryScore: str(database.DISProInflammatory)}
	res = Evaluate(Inputs{Profile: healthyProfile(), Dietary: d})
	require.Contains(t, ruleNames(res.TriggeredRules), "ELEVATED_INFLAMMATION")
	assert.Contains(t, res.TriggeredRules[0].Reason, "Pro-inflammatory")
}

func TestEvaluateChrononutrition(t *testing.T) {
	d := &database.DietaryRecord{
		EatingWindowHours: f64(13.5),
		SkippedBreakfast:  true,
		LateNightEating:   true,
	}
	res := Evaluate(Inputs{Profile: healthyProfile(), Dietary: d})

	assert.True(t, res.Modules.TimeRestrictedEating)
	require.Len(t, res.LifestyleReminders, 3)
	assert.Contains(t, res.LifestyleReminders[0], "13.5h")
	assert.Contains(t, res.LifestyleReminders[1], "Breakfast skipping")
	assert.Contains(t, res.LifestyleReminders[2], "Late-night eating")
}

func TestEvaluateFFQRules(t *testing.T) {
	ffq := &database.FFQResponse{
		FishServingsWeek:           0.5,
		RedMeatServingsWeek:        6,
		ProcessedMeatServingsWeek:  3,
		VegetablesServingsDay:      1.5,
		FruitsServingsDay:          1,
		RefinedGrainsServingsWeek:  10,
		WholeGrainsServingsWeek:    1,
		SugaryBeveragesServingsDay: 2,
		FriedFoodsServingsWeek:     5,
		LegumesServingsWeek:        1,
		OliveOilTbspDay:            2, // adequate
	}
	res := Evaluate(Inputs{Profile: healthyProfile(), FFQ: ffq})

	require.Contains(t, ruleNames(res.TriggeredRules), "FFQ_DIETARY_PATTERN")
	var ffqRule database.TriggeredRule
	for _, r := range res.TriggeredRules {
		if r.RuleName == "FFQ_DIETARY_PATTERN" {
			ffqRule = r
		}
	}
	assert.Len(t, ffqRule.Recommendations, 8)

	assert.True(t, res.Modules.Omega3Emphasis)
	assert.True(t, res.Modules.AntiInflammatoryDiet)
	assert.True(t, res.Modules.SolubleFiberEmphasis)
	assert.True(t, res.Modules.LowGiPlan)

	// three or more findings add the aggregate reminder
	found := false
	for _, r := range res.LifestyleReminders {
		if r == "Your food frequency data shows several areas for improvement. "+
			"Focus on increasing vegetables, legumes, and fish while reducing "+
			"processed and fried foods for the greatest health benefit." {
			found = true
		}
	}
	assert.True(t, found)

	assert.Contains(t, res.Summary, "includes long-term dietary pattern from questionnaire")
}

func TestEvaluateFFQOliveOilNeedsMufaContext(t *testing.T) {
	// low olive oil alone says nothing without a MUFA emphasis
	ffq := &database.FFQResponse{
		FishServingsWeek: 3, RedMeatServingsWeek: 2, VegetablesServingsDay: 4,
		FruitsServingsDay: 3, WholeGrainsServingsWeek: 5, LegumesServingsWeek: 4,
		OliveOilTbspDay: 0,
	}
	res := Evaluate(Inputs{Profile: healthyProfile(), FFQ: ffq})
	assert.Empty(t, res.LifestyleReminders)

	// with low HDL driving MUFA emphasis the reminder appears
	p := healthyProfile()
	p.HdlCholesterolMgDl = f64(35)
	res = Evaluate(Inputs{Profile: p, FFQ: ffq})
	joined := ""
	for _, r := range res.LifestyleReminders {
		joined += r + "\n"
	}
	assert.Contains(t, joined, "olive oil")
}

func TestEvaluateFFQIdealIntakeTriggersNothing(t *testing.T) {
	res := Evaluate(Inputs{
		Profile: healthyProfile(),
		FFQ: &database.FFQResponse{
			FishServingsWeek:           3,
			RedMeatServingsWeek:        2,
			ProcessedMeatServingsWeek:  1,
			VegetablesServingsDay:      5,
			FruitsServingsDay:          3,
			WholeGrainsServingsWeek:    5,
			RefinedGrainsServingsWeek:  5,
			SugaryBeveragesServingsDay: 0,
			FriedFoodsServingsWeek:     1,
			LegumesServingsWeek:        4,
			OliveOilTbspDay:            2,
		},
	})

	assert.NotContains(t, ruleNames(res.TriggeredRules), "FFQ_DIETARY_PATTERN")
	assert.Empty(t, res.FoodRecommendations)
}

func TestEvaluateDeterministic(t *testing.T) {
	p := healthyProfile()
	p.TriglyceridesMgDl = f64(200)
	p.FastingGlucoseMgDl = f64(115)
	p.HsCrpMgL = f64(3.5)
	in := Inputs{Profile: p, FFQ: &database.FFQResponse{FishServingsWeek: 1}}

	a := Evaluate(in)
	b := Evaluate(in)
	assert.Equal(t, a, b)
}

func TestFiberTargetTightensWithBothModules(t *testing.T) {
	// low-GI alone: 35g; low-GI + soluble fibre: 38g
	p := healthyProfile()
	p.FastingGlucoseMgDl = f64(110)
	res := Evaluate(Inputs{Profile: p})
	assert.Equal(t, 35.0, res.Targets.FiberG)

	p.TriglyceridesMgDl = f64(180)
	res = Evaluate(Inputs{Profile: p})
	assert.Equal(t, 38.0, res.Targets.FiberG)
}
