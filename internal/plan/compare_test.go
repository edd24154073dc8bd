package plan

import (
	"testing"

	"DiabetesDiet/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareFullAgreement(t *testing.T) {
	profile := healthyProfile()
	rule := database.DietPlan{
		LowGiPlan: true, Omega3Emphasis: true,
		TargetCarbPercent: f64(40), TargetCalories: f64(2000),
	}
	ml := database.DietPlan{
		LowGiPlan: true, Omega3Emphasis: true,
		TargetCarbPercent: f64(42), TargetCalories: f64(1900),
	}

	cmp := Compare(profile, nil, rule, ml)
	assert.Equal(t, 1.0, cmp.AgreementScore)
	assert.Equal(t, []string{"Both models are in full agreement"}, cmp.KeyDifferences)
	assert.False(t, cmp.PatientRiskProfile.HasDietaryData)
}

func TestCompareDisagreement(t *testing.T) {
	profile := healthyProfile()
	profile.Bmi = f64(31.0)

	rule := database.DietPlan{
		LowGiPlan: true, CalorieDeficitPlan: true, TimeRestrictedEating: true,
		TargetCarbPercent: f64(40), TargetCalories: f64(1650),
	}
	ml := database.DietPlan{
		AntiInflammatoryDiet: true,
		TargetCarbPercent:    f64(48), TargetCalories: f64(1700),
	}

	cmp := Compare(profile, &database.DietaryRecord{}, rule, ml)

	// agree on: omega3 (both false), carb within 10, calories within 300
	assert.Equal(t, 0.43, cmp.AgreementScore)
	assert.Contains(t, cmp.KeyDifferences,
		"Low-GI plan: Disagreement between rule engine and ML model")
	assert.Contains(t, cmp.KeyDifferences,
		"Caloric deficit: Rule engine and ML differ on obesity treatment priority")
	assert.True(t, cmp.PatientRiskProfile.HasDietaryData)
	require.NotNil(t, cmp.PatientRiskProfile.Bmi)
	assert.Equal(t, 31.0, *cmp.PatientRiskProfile.Bmi)
}

func TestCompareCarbSpread(t *testing.T) {
	rule := database.DietPlan{TargetCarbPercent: f64(40), TargetCalories: f64(2000)}
	ml := database.DietPlan{TargetCarbPercent: f64(52), TargetCalories: f64(2000)}

	cmp := Compare(healthyProfile(), nil, rule, ml)
	// six of seven checks pass
	assert.Equal(t, 0.86, cmp.AgreementScore)
	assert.Contains(t, cmp.KeyDifferences, "Carb target: Rule=40% vs ML=52%")
}

func TestCompareMissingTargetsUseDefaults(t *testing.T) {
	cmp := Compare(healthyProfile(), nil, database.DietPlan{}, database.DietPlan{})
	assert.Equal(t, 1.0, cmp.AgreementScore)
}
