package plan

import (
	"testing"

	"DiabetesDiet/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRulePlan(t *testing.T) {
	p := healthyProfile()
	p.FastingGlucoseMgDl = f64(118)

	out := BuildRulePlan("u-1", Inputs{Profile: p})

	assert.Equal(t, "u-1", out.UserID)
	assert.Equal(t, database.SourceRuleBased, out.Source)
	assert.True(t, out.LowGiPlan)
	assert.True(t, out.CarbDistribution)
	require.NotNil(t, out.TargetCarbPercent)
	assert.Equal(t, 40.0, *out.TargetCarbPercent)
	require.NotNil(t, out.MealPattern)
	assert.Nil(t, out.MlConfidenceScore)
}

func TestBuildMLPlanModerateRisk(t *testing.T) {
	p := healthyProfile()
	p.CalorieDeficit = f64(1800)

	out := BuildMLPlan("u-1", p, MLOutcome{
		Available:           true,
		ConfidenceScore:     f64(0.91),
		PredictedReduction:  f64(20.0),
		RecommendedPlanType: str("Low-GI_Lipid-Control"),
		RiskCategory:        str("Moderate"),
	})

	assert.Equal(t, database.SourceMLModel, out.Source)
	// moderate risk scales calories by 0.85
	assert.InDelta(t, 1530.0, *out.TargetCalories, 0.01)
	assert.Equal(t, 40.0, *out.TargetCarbPercent)
	assert.Equal(t, 22.0, *out.TargetProteinPercent)
	assert.Equal(t, 2000.0, *out.TargetSodiumMg)

	assert.True(t, out.LowGiPlan)
	assert.True(t, out.Omega3Emphasis)
	assert.True(t, out.SolubleFiberEmphasis)
	assert.True(t, out.CarbDistribution)
	assert.False(t, out.AntiInflammatoryDiet)

	require.Len(t, out.TriggeredRules, 1)
	assert.Equal(t, "ML_PREDICTION", out.TriggeredRules[0].RuleName)
	assert.Contains(t, out.TriggeredRules[0].Reason, "Moderate")
	assert.Len(t, out.FoodRecommendations, 2)
	assert.Equal(t, 0.91, *out.MlConfidenceScore)
	assert.Contains(t, out.Summary, "Low GI Lipid Control dietary pattern")
}

func TestBuildMLPlanUnavailableFallsBack(t *testing.T) {
	p := healthyProfile()
	p.EstimatedCalorieReq = f64(2100)

	out := BuildMLPlan("u-1", p, MLOutcome{})

	// defaults: General_Healthy targets, Mild risk scaling
	assert.InDelta(t, 1995.0, *out.TargetCalories, 0.01)
	assert.Equal(t, 50.0, *out.TargetCarbPercent)
	assert.False(t, out.LowGiPlan)
	assert.Nil(t, out.MlConfidenceScore)
	require.NotNil(t, out.MlRecommendedPlanType)
	assert.Equal(t, "General_Healthy", *out.MlRecommendedPlanType)
}

func TestBuildCombinedPlan(t *testing.T) {
	p := healthyProfile()
	in := Inputs{Profile: p, FFQ: &database.FFQResponse{FishServingsWeek: 3, VegetablesServingsDay: 4, FruitsServingsDay: 2, LegumesServingsWeek: 3}}

	out := BuildCombinedPlan("u-1", in, MLOutcome{
		Available:           true,
		ConfidenceScore:     f64(0.8),
		PredictedReduction:  f64(12.0),
		RecommendedPlanType: str("General_Healthy"),
	})

	assert.Equal(t, database.SourceCombined, out.Source)
	assert.Equal(t, 0.8, *out.MlConfidenceScore)
	assert.Equal(t, 12.0, *out.MlPredictedRiskReduction)
	assert.Contains(t, out.Summary, "Dietary questionnaire data also included in recommendations.")
}
