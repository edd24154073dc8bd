// Package clinical implements the anthropometric and metabolic
// calculators that feed the patient profile's derived block.
package clinical

import (
	"math"

	"DiabetesDiet/internal/database"
)

// Activity multipliers for TDEE (Mifflin-St Jeor basis).
var activityMultipliers = map[database.ActivityLevel]float64{
	database.ActivitySedentary:  1.2,
	database.ActivityLight:      1.375,
	database.ActivityModerate:   1.55,
	database.ActivityActive:     1.725,
	database.ActivityVeryActive: 1.9,
}

// IDF waist circumference cutoffs (cm) for South/Southeast Asian
// populations.
const (
	WaistCutoffMale   = 90.0
	WaistCutoffFemale = 80.0
)

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// BMI returns weight(kg)/height(m)^2 rounded to 2 decimals.
func BMI(weightKg, heightCm float64) float64 {
	h := heightCm / 100
	return round(weightKg/(h*h), 2)
}

// BMICategory uses the standard WHO bands.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	case bmi < 35:
		return "Class I Obesity"
	case bmi < 40:
		return "Class II Obesity"
	default:
		return "Class III Obesity"
	}
}

// WaistHeightRatio rounded to 3 decimals. A ratio above 0.5 indicates
// elevated cardiometabolic risk regardless of BMI.
func WaistHeightRatio(waistCm, heightCm float64) float64 {
	return round(waistCm/heightCm, 3)
}

// BMR is the Mifflin-St Jeor basal metabolic rate in kcal/day. The
// female offset is applied for both "female" and "other".
func BMR(weightKg, heightCm float64, age int32, sex database.Sex) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == database.SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return round(bmr, 1)
}

// TDEE applies the activity multiplier, rounded to a whole kcal.
func TDEE(bmr float64, level database.ActivityLevel) float64 {
	mult, ok := activityMultipliers[level]
	if !ok {
		mult = activityMultipliers[database.ActivitySedentary]
	}
	return round(bmr*mult, 0)
}

// CalorieDeficitTarget returns the reduced daily calorie target for
// weight loss: TDEE minus 500 kcal for overweight (BMI >= 25) or 750
// for obese (BMI >= 30), floored at 1200 kcal/day. Nil when no deficit
// is indicated.
func CalorieDeficitTarget(tdee, bmi float64) *float64 {
	if bmi < 25 {
		return nil
	}
	deficit := 500.0
	if bmi >= 30 {
		deficit = 750.0
	}
	target := math.Max(tdee-deficit, 1200)
	return &target
}

// MetabolicSyndromeComponents counts the present IDF components.
// Each check is skipped when its input is missing; blood pressure
// needs both readings. The returned map records which components
// were evaluated true.
func MetabolicSyndromeComponents(p *database.PatientProfile) (int32, map[string]bool) {
	present := make(map[string]bool)
	var count int32

	if p.WaistCircumferenceCm != nil {
		cutoff := WaistCutoffFemale
		if p.Sex == database.SexMale {
			cutoff = WaistCutoffMale
		}
		if *p.WaistCircumferenceCm >= cutoff {
			present["central_obesity"] = true
			count++
		}
	}
	if p.TriglyceridesMgDl != nil && *p.TriglyceridesMgDl >= 150 {
		present["elevated_triglycerides"] = true
		count++
	}
	if p.HdlCholesterolMgDl != nil {
		cutoff := 50.0
		if p.Sex == database.SexMale {
			cutoff = 40.0
		}
		if *p.HdlCholesterolMgDl < cutoff {
			present["reduced_hdl"] = true
			count++
		}
	}
	if p.BpSystolic != nil && p.BpDiastolic != nil {
		if *p.BpSystolic >= 130 || *p.BpDiastolic >= 85 {
			present["elevated_blood_pressure"] = true
			count++
		}
	}
	if p.FastingGlucoseMgDl != nil && *p.FastingGlucoseMgDl >= 100 {
		present["elevated_fasting_glucose"] = true
		count++
	}

	return count, present
}

// MetabolicSyndromePresent applies the 3-of-5 ATP III rule.
func MetabolicSyndromePresent(componentCount int32) bool {
	return componentCount >= 3
}

// RiskCategory maps the component count to the clinical banding.
func RiskCategory(componentCount int32) string {
	switch {
	case componentCount <= 1:
		return "Low Risk"
	case componentCount == 2:
		return "Mild"
	case componentCount == 3:
		return "Moderate"
	default:
		return "Severe"
	}
}

// Assessment is the complete derived block for a profile.
// EstimatedCalorieReq is the TDEE; CalorieDeficit is the reduced
// target for weight loss when indicated.
type Assessment struct {
	Bmi                       float64         `json:"bmi"`
	BmiCategory               string          `json:"bmi_category"`
	WaistHeightRatio          *float64        `json:"waist_height_ratio"`
	MsComponentCount          int32           `json:"metabolic_syndrome_component_count"`
	MsPresent                 bool            `json:"metabolic_syndrome_present"`
	MsComponentsEvaluated     map[string]bool `json:"ms_components_present"`
	EstimatedCalorieReq       float64         `json:"estimated_calorie_req"`
	CalorieDeficit            *float64        `json:"calorie_deficit"`
	MetabolicRiskScore        int32           `json:"metabolic_risk_score"`
	MetabolicRiskCategory     string          `json:"metabolic_risk_category"`
}

// Assess runs every calculator over the profile inputs.
func Assess(p *database.PatientProfile) Assessment {
	bmi := BMI(p.WeightKg, p.HeightCm)
	bmr := BMR(p.WeightKg, p.HeightCm, p.Age, p.Sex)
	tdee := TDEE(bmr, p.ActivityLevel)
	count, present := MetabolicSyndromeComponents(p)

	a := Assessment{
		Bmi:                   bmi,
		BmiCategory:           BMICategory(bmi),
		MsComponentCount:      count,
		MsPresent:             MetabolicSyndromePresent(count),
		MsComponentsEvaluated: present,
		EstimatedCalorieReq:   tdee,
		CalorieDeficit:        CalorieDeficitTarget(tdee, bmi),
		MetabolicRiskScore:    count,
		MetabolicRiskCategory: RiskCategory(count),
	}
	if p.WaistCircumferenceCm != nil {
		whr := WaistHeightRatio(*p.WaistCircumferenceCm, p.HeightCm)
		a.WaistHeightRatio = &whr
	}
	return a
}

// Recompute writes the derived block back onto the profile. The whole
// set is replaced in one shot so stored derived values never mix
// outputs from different input states.
func Recompute(p *database.PatientProfile) {
	a := Assess(p)
	count := a.MsComponentCount
	score := a.MetabolicRiskScore
	category := a.MetabolicRiskCategory
	req := a.EstimatedCalorieReq

	p.Bmi = &a.Bmi
	p.WaistHeightRatio = a.WaistHeightRatio
	p.MetabolicSyndromeComponentCount = &count
	p.EstimatedCalorieReq = &req
	p.CalorieDeficit = a.CalorieDeficit
	p.MetabolicRiskScore = &score
	p.MetabolicRiskCategory = &category
}
