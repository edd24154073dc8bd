package clinical

import (
	"testing"

	"DiabetesDiet/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }
func i32(v int32) *int32     { return &v }

func TestBMI(t *testing.T) {
	assert.Equal(t, 22.86, BMI(70, 175))
	assert.Equal(t, "Normal", BMICategory(BMI(70, 175)))
	assert.Equal(t, "Underweight", BMICategory(18.4))
	assert.Equal(t, "Overweight", BMICategory(25.0))
	assert.Equal(t, "Class I Obesity", BMICategory(30.0))
	assert.Equal(t, "Class I Obesity", BMICategory(32.0))
	assert.Equal(t, "Class II Obesity", BMICategory(35.0))
	assert.Equal(t, "Class II Obesity", BMICategory(37.0))
	assert.Equal(t, "Class III Obesity", BMICategory(41.2))
}

func TestBMR(t *testing.T) {
	male := BMR(70, 175, 30, database.SexMale)
	assert.Equal(t, 1648.8, male)

	female := BMR(70, 175, 30, database.SexFemale)
	assert.InDelta(t, 166, male-female, 0.01)

	// "other" gets the conservative female offset
	assert.Equal(t, female, BMR(70, 175, 30, database.SexOther))
}

func TestTDEE(t *testing.T) {
	assert.Equal(t, 2325.0, TDEE(1500, database.ActivityModerate))
	// unknown level falls back to sedentary
	assert.Equal(t, 1800.0, TDEE(1500, database.ActivityLevel("bogus")))
}

func TestCalorieDeficitTarget(t *testing.T) {
	assert.Nil(t, CalorieDeficitTarget(2400, 22.0))

	target := CalorieDeficitTarget(2400, 27.0)
	require.NotNil(t, target)
	assert.Equal(t, 1900.0, *target)

	target = CalorieDeficitTarget(2400, 32.0)
	require.NotNil(t, target)
	assert.Equal(t, 1650.0, *target)

	// floor at 1200 kcal/day
	target = CalorieDeficitTarget(1700, 31.0)
	require.NotNil(t, target)
	assert.Equal(t, 1200.0, *target)
}

func TestMetabolicSyndromeComponents(t *testing.T) {
	p := &database.PatientProfile{
		Sex:                  database.SexMale,
		WaistCircumferenceCm: f64(95),
		TriglyceridesMgDl:    f64(180),
		HdlCholesterolMgDl:   f64(38),
		BpSystolic:           i32(135),
		BpDiastolic:          i32(80),
		FastingGlucoseMgDl:   f64(105),
	}
	count, present := MetabolicSyndromeComponents(p)
	assert.Equal(t, int32(5), count)
	assert.True(t, present["central_obesity"])
	assert.True(t, present["elevated_blood_pressure"])

	// BP requires both readings
	p.BpDiastolic = nil
	count, present = MetabolicSyndromeComponents(p)
	assert.Equal(t, int32(4), count)
	assert.False(t, present["elevated_blood_pressure"])

	// missing inputs are skipped, never counted
	empty := &database.PatientProfile{Sex: database.SexFemale}
	count, _ = MetabolicSyndromeComponents(empty)
	assert.Equal(t, int32(0), count)
}

func TestMetabolicSyndromeSexCutoffs(t *testing.T) {
	female := &database.PatientProfile{Sex: database.SexFemale, WaistCircumferenceCm: f64(82)}
	count, _ := MetabolicSyndromeComponents(female)
	assert.Equal(t, int32(1), count)

	male := &database.PatientProfile{Sex: database.SexMale, WaistCircumferenceCm: f64(82)}
	count, _ = MetabolicSyndromeComponents(male)
	assert.Equal(t, int32(0), count)

	// female HDL cutoff is 50, male 40
	femaleHdl := &database.PatientProfile{Sex: database.SexFemale, HdlCholesterolMgDl: f64(45)}
	count, _ = MetabolicSyndromeComponents(femaleHdl)
	assert.Equal(t, int32(1), count)
}

func TestRiskCategory(t *testing.T) {
	assert.Equal(t, "Low Risk", RiskCategory(0))
	assert.Equal(t, "Low Risk", RiskCategory(1))
	assert.Equal(t, "Mild", RiskCategory(2))
	assert.Equal(t, "Moderate", RiskCategory(3))
	assert.Equal(t, "Severe", RiskCategory(4))
	assert.Equal(t, "Severe", RiskCategory(5))

	assert.False(t, MetabolicSyndromePresent(2))
	assert.True(t, MetabolicSyndromePresent(3))
}

func TestRecompute(t *testing.T) {
	p := &database.PatientProfile{
		Age:                  45,
		Sex:                  database.SexMale,
		WeightKg:             90,
		HeightCm:             175,
		WaistCircumferenceCm: f64(100),
		FastingGlucoseMgDl:   f64(110),
		TriglyceridesMgDl:    f64(200),
		ActivityLevel:        database.ActivitySedentary,
	}
	Recompute(p)

	require.NotNil(t, p.Bmi)
	assert.Equal(t, 29.39, *p.Bmi)
	require.NotNil(t, p.WaistHeightRatio)
	assert.Equal(t, 0.571, *p.WaistHeightRatio)
	require.NotNil(t, p.MetabolicSyndromeComponentCount)
	assert.Equal(t, int32(3), *p.MetabolicSyndromeComponentCount)
	require.NotNil(t, p.MetabolicRiskCategory)
	assert.Equal(t, "Moderate", *p.MetabolicRiskCategory)

	// TDEE = (10*90 + 6.25*175 - 5*45 + 5) * 1.2 = 2129 kcal
	require.NotNil(t, p.EstimatedCalorieReq)
	assert.Equal(t, 2129.0, *p.EstimatedCalorieReq)
	// BMI 29.39 -> 500 kcal deficit off TDEE
	require.NotNil(t, p.CalorieDeficit)
	assert.Equal(t, 1629.0, *p.CalorieDeficit)
}
