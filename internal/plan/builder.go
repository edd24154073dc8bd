package plan

import (
	"fmt"
	"strings"

	"DiabetesDiet/internal/database"
)

// mlPlanTargets maps each predicted plan type to its nutrient targets.
type mlTargetRow struct {
	carb, protein, fat, fiber, sodium, sugar float64
}

var mlPlanTargets = map[string]mlTargetRow{
	"Low-GI_Lipid-Control":            {40, 22, 38, 35, 2000, 20},
	"Caloric-Deficit_TRE":             {45, 25, 30, 28, 2300, 25},
	"Anti-Inflammatory_Mediterranean": {48, 18, 34, 32, 1800, 15},
	"Comprehensive_Metabolic":         {42, 23, 35, 35, 2000, 20},
	"General_Healthy":                 {50, 20, 30, 25, 2300, 25},
}

var mlFoodRecommendations = map[string][]database.FoodRecommendation{
	"Low-GI_Lipid-Control": {
		{Category: "Low-GI Staples", Action: "increase",
			Foods:  []string{"Lentils", "Chickpeas", "Barley", "Steel-cut oats", "Sweet potato"},
			Reason: "Model-identified primary risk: hyperglycaemia + dyslipidaemia"},
		{Category: "Omega-3 Sources", Action: "increase",
			Foods:  []string{"Atlantic salmon", "Sardines", "Mackerel", "Flaxseed", "Walnuts"},
			Reason: "TG-lowering EPA/DHA omega-3 fatty acids"},
	},
	"Caloric-Deficit_TRE": {
		{Category: "High-Volume Low-Calorie", Action: "increase",
			Foods:  []string{"Leafy greens", "Cucumber", "Zucchini", "Broth-based soups", "Berries"},
			Reason: "Model-identified primary risk: abdominal obesity. Maximise satiety per calorie"},
		{Category: "Calorie-Dense Foods", Action: "decrease",
			Foods:  []string{"Fried foods", "Pastries", "Nuts (excess)", "Avocado (excess)", "Cheese"},
			Reason: "Reduce energy density while maintaining nutrient adequacy"},
	},
	"Anti-Inflammatory_Mediterranean": {
		{Category: "Mediterranean Staples", Action: "increase",
			Foods:  []string{"Extra virgin olive oil", "Tomatoes", "Eggplant", "Lentils", "Fresh herbs"},
			Reason: "Model-identified primary risk: systemic inflammation"},
		{Category: "Refined/Processed", Action: "avoid",
			Foods:  []string{"Ultra-processed snacks", "Processed meats", "Refined grains", "Trans fats"},
			Reason: "Key drivers of CRP elevation in model feature importance"},
	},
	"Comprehensive_Metabolic": {
		{Category: "Metabolic-Protective Foods", Action: "increase",
			Foods:  []string{"Non-starchy vegetables", "Fatty fish", "Legumes", "Whole grains", "Nuts"},
			Reason: "Multiple concurrent metabolic risk factors detected"},
	},
	"General_Healthy": {
		{Category: "General Healthy Pattern", Action: "increase",
			Foods:  []string{"Vegetables (5+ servings)", "Whole fruits", "Lean proteins", "Whole grains"},
			Reason: "Low metabolic risk predicted. Maintain preventive healthy diet"},
	},
}

// mlPlanModules maps each plan type to the module switches it implies.
var mlPlanModules = map[string]Modules{
	"Low-GI_Lipid-Control": {
		LowGiPlan: true, Omega3Emphasis: true,
		SolubleFiberEmphasis: true, CarbDistribution: true,
	},
	"Caloric-Deficit_TRE": {
		CalorieDeficitPlan: true, TimeRestrictedEating: true, PortionControl: true,
	},
	"Anti-Inflammatory_Mediterranean": {
		AntiInflammatoryDiet: true, Omega3Emphasis: true, MufaEmphasis: true,
	},
	"Comprehensive_Metabolic": {
		LowGiPlan: true, CalorieDeficitPlan: true, AntiInflammatoryDiet: true,
		PortionControl: true, CarbDistribution: true,
	},
	"General_Healthy": {},
}

func mlFoodRecsFor(planType string) []database.FoodRecommendation {
	if recs, ok := mlFoodRecommendations[planType]; ok {
		return recs
	}
	return mlFoodRecommendations["General_Healthy"]
}

func applyModules(p *database.DietPlan, m Modules) {
	p.LowGiPlan = m.LowGiPlan
	p.CalorieDeficitPlan = m.CalorieDeficitPlan
	p.AntiInflammatoryDiet = m.AntiInflammatoryDiet
	p.Omega3Emphasis = m.Omega3Emphasis
	p.MufaEmphasis = m.MufaEmphasis
	p.SolubleFiberEmphasis = m.SolubleFiberEmphasis
	p.TimeRestrictedEating = m.TimeRestrictedEating
	p.PortionControl = m.PortionControl
	p.CarbDistribution = m.CarbDistribution
}

// BuildRulePlan evaluates the rule engine and assembles a storable plan.
func BuildRulePlan(userID string, in Inputs) database.DietPlan {
	res := Evaluate(in)
	t := res.Targets

	p := database.DietPlan{
		UserID:               userID,
		Source:               database.SourceRuleBased,
		TargetCalories:       &t.Calories,
		TargetCarbPercent:    &t.CarbPercent,
		TargetProteinPercent: &t.ProteinPercent,
		TargetFatPercent:     &t.FatPercent,
		TargetFiberG:         &t.FiberG,
		TargetSodiumMg:       &t.SodiumMg,
		TargetAddedSugarG:    &t.AddedSugarG,
		TargetOmega3G:        t.Omega3G,
		TriggeredRules:       res.TriggeredRules,
		FoodRecommendations:  res.FoodRecommendations,
		LifestyleReminders:   res.LifestyleReminders,
		MealPattern:          res.MealPattern,
		Summary:              res.Summary,
	}
	applyModules(&p, res.Modules)
	return p
}

// BuildMLPlan assembles a plan from a classifier outcome. Targets come
// from the predicted plan type's target table; calories scale down
// harder for higher predicted risk.
func BuildMLPlan(userID string, profile *database.PatientProfile, out MLOutcome) database.DietPlan {
	planType := "General_Healthy"
	if out.RecommendedPlanType != nil {
		planType = *out.RecommendedPlanType
	}
	riskCat := "Mild"
	if out.RiskCategory != nil {
		riskCat = *out.RiskCategory
	}
	targets, ok := mlPlanTargets[planType]
	if !ok {
		targets = mlPlanTargets["General_Healthy"]
	}

	baseCalories := 2000.0
	if profile.CalorieDeficit != nil {
		baseCalories = *profile.CalorieDeficit
	} else if profile.EstimatedCalorieReq != nil {
		baseCalories = *profile.EstimatedCalorieReq
	}
	factor := 0.95
	if riskCat == "Moderate" || riskCat == "Severe" {
		factor = 0.85
	}
	calories := baseCalories * factor

	readable := strings.NewReplacer("_", " ", "-", " ").Replace(planType)
	p := database.DietPlan{
		UserID:               userID,
		Source:               database.SourceMLModel,
		TargetCalories:       &calories,
		TargetCarbPercent:    &targets.carb,
		TargetProteinPercent: &targets.protein,
		TargetFatPercent:     &targets.fat,
		TargetFiberG:         &targets.fiber,
		TargetSodiumMg:       &targets.sodium,
		TargetAddedSugarG:    &targets.sugar,
		TriggeredRules: []database.TriggeredRule{{
			RuleName:  "ML_PREDICTION",
			Triggered: true,
			Reason:    fmt.Sprintf("Model predicted risk: %s | Plan type: %s", riskCat, planType),
			Recommendations: []string{
				fmt.Sprintf("Model-recommended: %s approach", strings.ReplaceAll(planType, "_", " ")),
			},
		}},
		FoodRecommendations: mlFoodRecsFor(planType),
		LifestyleReminders: []string{
			"Follow your personalised dietary plan consistently for best results.",
			"Combine dietary changes with 150+ minutes of moderate activity per week.",
		},
		MlConfidenceScore:        out.ConfidenceScore,
		MlPredictedRiskReduction: out.PredictedReduction,
		MlRecommendedPlanType:    &planType,
		Summary: fmt.Sprintf(
			"Personalised dietary plan based on %s metabolic risk. Recommended approach: %s dietary pattern.",
			riskCat, readable),
	}
	applyModules(&p, mlPlanModules[planType])
	return p
}

// BuildCombinedPlan is the rule plan annotated with the classifier
// outcome. The rule engine stays authoritative for targets.
func BuildCombinedPlan(userID string, in Inputs, out MLOutcome) database.DietPlan {
	p := BuildRulePlan(userID, in)
	p.Source = database.SourceCombined
	p.MlConfidenceScore = out.ConfidenceScore
	p.MlPredictedRiskReduction = out.PredictedReduction
	p.MlRecommendedPlanType = out.RecommendedPlanType
	if in.FFQ != nil {
		p.Summary += " Dietary questionnaire data also included in recommendations."
	}
	return p
}
