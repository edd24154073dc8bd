package plan

import (
	"fmt"
	"math"

	"DiabetesDiet/internal/database"
)

// RiskProfile is the patient snapshot attached to a comparison.
type RiskProfile struct {
	Bmi                         *float64 `json:"bmi"`
	MetabolicRiskCategory       *string  `json:"metabolic_risk_category"`
	MetabolicSyndromeComponents *int32   `json:"metabolic_syndrome_components"`
	FastingGlucose              *float64 `json:"fasting_glucose"`
	Triglycerides               *float64 `json:"triglycerides"`
	Hdl                         *float64 `json:"hdl"`
	HasDietaryData              bool     `json:"has_dietary_data"`
}

// Comparison is the research output contrasting both generators.
type Comparison struct {
	PatientRiskProfile RiskProfile       `json:"patient_risk_profile"`
	RuleBasedPlan      database.DietPlan `json:"rule_based_plan"`
	MlPlan             database.DietPlan `json:"ml_plan"`
	AgreementScore     float64           `json:"agreement_score"`
	KeyDifferences     []string          `json:"key_differences"`
}

// Compare scores how closely the two plans agree: five strategy flags
// plus carb target within 10 points and calorie target within 300 kcal.
func Compare(profile *database.PatientProfile, dietary *database.DietaryRecord,
	rulePlan, mlPlan database.DietPlan) Comparison {

	checks := []bool{
		rulePlan.LowGiPlan == mlPlan.LowGiPlan,
		rulePlan.CalorieDeficitPlan == mlPlan.CalorieDeficitPlan,
		rulePlan.AntiInflammatoryDiet == mlPlan.AntiInflammatoryDiet,
		rulePlan.Omega3Emphasis == mlPlan.Omega3Emphasis,
		rulePlan.TimeRestrictedEating == mlPlan.TimeRestrictedEating,
		math.Abs(orDefault(rulePlan.TargetCarbPercent, 45)-orDefault(mlPlan.TargetCarbPercent, 45)) <= 10,
		math.Abs(orDefault(rulePlan.TargetCalories, 2000)-orDefault(mlPlan.TargetCalories, 2000)) <= 300,
	}
	agreed := 0
	for _, ok := range checks {
		if ok {
			agreed++
		}
	}
	score := math.Round(float64(agreed)/float64(len(checks))*100) / 100

	var differences []string
	if rulePlan.LowGiPlan != mlPlan.LowGiPlan {
		differences = append(differences,
			"Low-GI plan: Disagreement between rule engine and ML model")
	}
	if rulePlan.CalorieDeficitPlan != mlPlan.CalorieDeficitPlan {
		differences = append(differences,
			"Caloric deficit: Rule engine and ML differ on obesity treatment priority")
	}
	if math.Abs(orDefault(rulePlan.TargetCarbPercent, 45)-orDefault(mlPlan.TargetCarbPercent, 45)) > 10 {
		differences = append(differences, fmt.Sprintf(
			"Carb target: Rule=%s%% vs ML=%s%%",
			fnum(orDefault(rulePlan.TargetCarbPercent, 45)),
			fnum(orDefault(mlPlan.TargetCarbPercent, 45))))
	}
	if len(differences) == 0 {
		differences = []string{"Both models are in full agreement"}
	}

	return Comparison{
		PatientRiskProfile: RiskProfile{
			Bmi:                         profile.Bmi,
			MetabolicRiskCategory:       profile.MetabolicRiskCategory,
			MetabolicSyndromeComponents: profile.MetabolicSyndromeComponentCount,
			FastingGlucose:              profile.FastingGlucoseMgDl,
			Triglycerides:               profile.TriglyceridesMgDl,
			Hdl:                         profile.HdlCholesterolMgDl,
			HasDietaryData:              dietary != nil,
		},
		RuleBasedPlan:  rulePlan,
		MlPlan:         mlPlan,
		AgreementScore: score,
		KeyDifferences: differences,
	}
}
