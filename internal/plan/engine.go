// Package plan generates personalised diet plans from clinical,
// dietary, and questionnaire inputs: a deterministic rule engine, a
// statistical classifier adapter, and the comparison between the two.
package plan

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"DiabetesDiet/internal/database"
)

// Sex-specific HDL thresholds (ATP III).
var hdlLowThreshold = map[database.Sex]float64{
	database.SexMale:   40.0,
	database.SexFemale: 50.0,
	database.SexOther:  45.0,
}

// Asian IDF waist cutoffs.
var waistCutoff = map[database.Sex]float64{
	database.SexMale:   90.0,
	database.SexFemale: 80.0,
	database.SexOther:  85.0,
}

// Modules are the dietary strategy switches a plan can activate.
type Modules struct {
	LowGiPlan            bool
	CalorieDeficitPlan   bool
	AntiInflammatoryDiet bool
	Omega3Emphasis       bool
	MufaEmphasis         bool
	SolubleFiberEmphasis bool
	TimeRestrictedEating bool
	PortionControl       bool
	CarbDistribution     bool
}

// Targets are the plan's daily nutrient goals.
type Targets struct {
	Calories       float64
	CarbPercent    float64
	ProteinPercent float64
	FatPercent     float64
	FiberG         float64
	SodiumMg       float64
	AddedSugarG    float64
	Omega3G        *float64
}

// Inputs for one evaluation. Profile is required; the dietary record
// and FFQ are optional and activate their rule groups when present.
type Inputs struct {
	Profile *database.PatientProfile
	Dietary *database.DietaryRecord
	FFQ     *database.FFQResponse
}

// Result is the full rule engine output.
type Result struct {
	Targets             Targets
	Modules             Modules
	TriggeredRules      []database.TriggeredRule
	FoodRecommendations []database.FoodRecommendation
	LifestyleReminders  []string
	MealPattern         *database.MealPattern
	Summary             string
}

// evalState accumulates findings as the rule groups fold over it.
type evalState struct {
	profile *database.PatientProfile
	dietary *database.DietaryRecord
	ffq     *database.FFQResponse

	modules     Modules
	rules       []database.TriggeredRule
	foodRecs    []database.FoodRecommendation
	reminders   []string
	mealPattern *database.MealPattern
}

func (s *evalState) addRule(name, reason string, recs []string) {
	s.rules = append(s.rules, database.TriggeredRule{
		RuleName:        name,
		Triggered:       true,
		Reason:          reason,
		Recommendations: recs,
	})
}

// ruleGroups run in a fixed clinical order; FFQ rules run last so they
// reinforce or extend the recall-based findings.
var ruleGroups = []func(*evalState){
	lipidRules,
	glucoseRules,
	obesityRules,
	inflammationRules,
	chrononutritionRules,
	ffqRules,
}

// Evaluate folds every rule group over the inputs and derives targets
// and summary from the accumulated state. Pure: identical inputs give
// identical output.
func Evaluate(in Inputs) Result {
	s := evalState{
		profile: in.Profile,
		dietary: in.Dietary,
		ffq:     in.FFQ,
	}
	for _, group := range ruleGroups {
		group(&s)
	}

	return Result{
		Targets:             s.nutrientTargets(),
		Modules:             s.modules,
		TriggeredRules:      s.rules,
		FoodRecommendations: s.foodRecs,
		LifestyleReminders:  s.reminders,
		MealPattern:         s.mealPattern,
		Summary:             s.summary(),
	}
}

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Group 1 — lipids: elevated triglycerides and low HDL.
func lipidRules(s *evalState) {
	p := s.profile

	if p.TriglyceridesMgDl != nil && *p.TriglyceridesMgDl > 150 {
		tg := *p.TriglyceridesMgDl
		s.modules.Omega3Emphasis = true
		s.modules.SolubleFiberEmphasis = true
		s.foodRecs = append(s.foodRecs,
			database.FoodRecommendation{
				Category: "Omega-3 Rich Foods", Action: "increase",
				Foods:  []string{"Salmon", "Mackerel", "Sardines", "Flaxseed", "Walnuts", "Chia seeds"},
				Reason: fmt.Sprintf("TG %s mg/dL > 150 threshold. Omega-3 reduces TG by 20-30%%.", fnum(tg)),
			},
			database.FoodRecommendation{
				Category: "Refined Carbohydrates", Action: "decrease",
				Foods:  []string{"White bread", "White rice", "Sugary drinks", "Pastries", "Candy"},
				Reason: "Refined carbs directly raise triglycerides. Target <50g added sugar/day.",
			},
			database.FoodRecommendation{
				Category: "Soluble Fibre Sources", Action: "increase",
				Foods:  []string{"Oats", "Barley", "Black beans", "Lentils", "Apples", "Psyllium"},
				Reason: "Soluble fibre reduces TG absorption and improves lipid profile.",
			},
		)
		s.addRule(
			"HIGH_TRIGLYCERIDES",
			fmt.Sprintf("TG = %s mg/dL (target <150 mg/dL)", fnum(tg)),
			[]string{
				"Reduce refined carbs and added sugar",
				"Increase omega-3 rich foods 2-3x/week",
				"Add 10g soluble fibre daily",
				"Limit alcohol completely",
			},
		)
	}

	threshold := hdlLowThreshold[p.Sex]
	if threshold == 0 {
		threshold = 45.0
	}
	if p.HdlCholesterolMgDl != nil && *p.HdlCholesterolMgDl < threshold {
		hdl := *p.HdlCholesterolMgDl
		s.modules.MufaEmphasis = true
		s.foodRecs = append(s.foodRecs,
			database.FoodRecommendation{
				Category: "Healthy Fats (MUFA)", Action: "increase",
				Foods:  []string{"Olive oil", "Avocado", "Almonds", "Pistachios", "Olives", "Peanuts"},
				Reason: fmt.Sprintf("HDL %s mg/dL < %s threshold. MUFA raises HDL.", fnum(hdl), fnum(threshold)),
			},
			database.FoodRecommendation{
				Category: "Trans Fats", Action: "avoid",
				Foods:  []string{"Margarine", "Fried fast food", "Commercial baked goods", "Partially hydrogenated oils"},
				Reason: "Trans fats lower HDL and raise LDL. Avoid completely.",
			},
		)
		s.reminders = append(s.reminders,
			"Aim for 150+ min/week of moderate exercise. This raises HDL by 5-10%",
			"Smoking cessation is the most powerful single intervention to raise HDL",
		)
		s.addRule(
			"LOW_HDL",
			fmt.Sprintf("HDL = %s mg/dL (target >=%s mg/dL)", fnum(hdl), fnum(threshold)),
			[]string{
				"Increase healthy fat intake (olive oil, avocado, nuts)",
				"Eliminate trans fats completely",
				"150 min/week aerobic exercise",
			},
		)
	}
}

// Group 2 — glucose: prediabetes and diabetes range fasting glucose.
func glucoseRules(s *evalState) {
	p := s.profile
	if p.FastingGlucoseMgDl == nil || *p.FastingGlucoseMgDl <= 100 {
		return
	}
	fg := *p.FastingGlucoseMgDl
	s.modules.LowGiPlan = true
	s.modules.CarbDistribution = true

	glucoseLabel := fmt.Sprintf("Prediabetes (FG=%s 100-125 mg/dL)", fnum(fg))
	if fg >= 126 {
		glucoseLabel = fmt.Sprintf("Diabetes (FG=%s >=126 mg/dL)", fnum(fg))
	}

	s.foodRecs = append(s.foodRecs,
		database.FoodRecommendation{
			Category: "Low Glycaemic Foods", Action: "increase",
			Foods: []string{"Lentils", "Chickpeas", "Steel-cut oats", "Barley",
				"Non-starchy vegetables", "Berries", "Nuts", "Whole grain bread (GI<55)"},
			Reason: fmt.Sprintf("%s. Low-GI diet reduces HbA1c by 0.5-1.0%%.", glucoseLabel),
		},
		database.FoodRecommendation{
			Category: "High Glycaemic Foods", Action: "decrease",
			Foods:  []string{"White rice", "White bread", "Potatoes", "Corn flakes", "Sugary drinks"},
			Reason: "High-GI foods cause rapid glucose spikes. Switch to low-GI alternatives.",
		},
	)
	s.reminders = append(s.reminders,
		"Walk 10-15 min after each meal. Reduces post-meal glucose by 20-30%",
		"Spread carbs across 3 meals. Avoid carb-heavy dinners",
	)
	s.mealPattern = &database.MealPattern{
		Strategy:              "Carbohydrate Distribution",
		BreakfastCarbsPercent: 25,
		LunchCarbsPercent:     35,
		DinnerCarbsPercent:    30,
		SnacksCarbsPercent:    10,
		RecommendedMealTimes: map[string]string{
			"breakfast":         "7:00-8:00 AM",
			"mid_morning_snack": "10:00-10:30 AM (optional)",
			"lunch":             "12:30-1:30 PM",
			"afternoon_snack":   "3:30-4:00 PM (optional)",
			"dinner":            "6:30-7:30 PM (before 8 PM)",
		},
	}
	s.addRule(
		"ELEVATED_FASTING_GLUCOSE", glucoseLabel,
		[]string{
			"Follow low-GI meal plan (target glycaemic load <20 per meal)",
			"Distribute carbohydrates: 25% breakfast, 35% lunch, 30% dinner",
			"Include protein at every meal to blunt glucose response",
			"Post-meal 10-15 min walk after each meal",
		},
	)
}

// Group 3 — obesity: waist circumference and BMI.
func obesityRules(s *evalState) {
	p := s.profile
	cutoff := waistCutoff[p.Sex]
	if cutoff == 0 {
		cutoff = 85.0
	}
	waistElevated := p.WaistCircumferenceCm != nil && *p.WaistCircumferenceCm >= cutoff
	bmiElevated := p.Bmi != nil && *p.Bmi >= 25.0
	if !waistElevated && !bmiElevated {
		return
	}

	s.modules.CalorieDeficitPlan = true
	s.modules.PortionControl = true

	var reasons []string
	if waistElevated {
		reasons = append(reasons, fmt.Sprintf("Waist %scm >= %scm cutoff", fnum(*p.WaistCircumferenceCm), fnum(cutoff)))
	}
	if bmiElevated {
		reasons = append(reasons, fmt.Sprintf("BMI %.1f >= 25 (Overweight/Obese)", *p.Bmi))
	}
	reason := joinReasons(reasons)

	tdee := 2000.0
	if p.EstimatedCalorieReq != nil {
		tdee = *p.EstimatedCalorieReq
	}
	deficitTarget := tdee - 500
	if p.CalorieDeficit != nil {
		deficitTarget = *p.CalorieDeficit
	}

	s.foodRecs = append(s.foodRecs, database.FoodRecommendation{
		Category: "Portion Control", Action: "strategy",
		Foods:  []string{},
		Reason: reason,
		Details: map[string]string{
			"plate_method":      "1/2 plate non-starchy vegetables, 1/4 plate lean protein, 1/4 plate whole grains",
			"target_calories":   strconv.Itoa(int(deficitTarget)),
			"calorie_reduction": fmt.Sprintf("%d kcal/day deficit", int(tdee-deficitTarget)),
		},
	})
	if waistElevated {
		s.modules.TimeRestrictedEating = true
		s.reminders = append(s.reminders,
			"Limit your eating window to 8-10 hours per day (e.g. 8 AM-6 PM). "+
				"Time-restricted eating reduces waist circumference in clinical studies.")
	}
	s.addRule(
		"ABDOMINAL_OBESITY", reason,
		[]string{
			fmt.Sprintf("Calorie target: %d kcal/day", int(deficitTarget)),
			"Plate method: 1/2 vegetables, 1/4 protein, 1/4 complex carbs",
			"10-hour eating window",
			"Reduce liquid calories (juices, sodas, alcohol)",
		},
	)
}

// Group 4 — inflammation: hs-CRP and the dietary inflammatory score.
func inflammationRules(s *evalState) {
	p := s.profile
	crpElevated := p.HsCrpMgL != nil && *p.HsCrpMgL > 3.0
	disElevated := s.dietary != nil && s.dietary.DietaryInflammatoryScore != nil &&
		*s.dietary.DietaryInflammatoryScore == database.DISProInflammatory
	if !crpElevated && !disElevated {
		return
	}

	s.modules.AntiInflammatoryDiet = true
	var reasons []string
	if crpElevated {
		reasons = append(reasons, fmt.Sprintf("hs-CRP %s mg/L > 3.0 (high cardiovascular risk)", fnum(*p.HsCrpMgL)))
	}
	if disElevated {
		reasons = append(reasons, "Current dietary pattern is Pro-inflammatory")
	}
	reason := joinReasons(reasons)

	s.foodRecs = append(s.foodRecs,
		database.FoodRecommendation{
			Category: "Anti-Inflammatory Foods", Action: "increase",
			Foods: []string{"Berries", "Leafy greens (spinach, kale)", "Olive oil",
				"Fatty fish (salmon, mackerel)", "Turmeric", "Green tea",
				"Broccoli", "Walnuts", "Tomatoes"},
			Reason: reason,
		},
		database.FoodRecommendation{
			Category: "Processed Foods", Action: "decrease",
			Foods: []string{"Fast food", "Chips", "Packaged snacks", "Processed meats",
				"Margarine", "Sugary drinks"},
			Reason: "Ultra-processed foods increase CRP and systemic inflammation markers.",
		},
		database.FoodRecommendation{
			Category: "Fruits & Vegetables", Action: "increase",
			Foods:  []string{"All colourful vegetables", "Cruciferous vegetables", "Citrus fruits"},
			Reason: "Target >=5 servings/day. Each additional serving reduces CRP by ~4%.",
		},
	)
	s.reminders = append(s.reminders,
		"Mediterranean-style eating strongly recommended for inflammation reduction",
		"Aim for 5+ different coloured vegetables and fruits daily",
	)
	s.addRule(
		"ELEVATED_INFLAMMATION", reason,
		[]string{
			"Switch to anti-inflammatory dietary pattern",
			"Increase fruit & vegetable intake: >=7 servings/day",
			"Reduce ultra-processed food to <10% of total calories",
			"Include anti-inflammatory spices: turmeric, ginger, garlic daily",
		},
	)
}

// Group 5 — chrononutrition: meal timing from the recall only.
func chrononutritionRules(s *evalState) {
	if s.dietary == nil {
		return
	}
	d := s.dietary
	if d.EatingWindowHours != nil && *d.EatingWindowHours > 12 {
		s.reminders = append(s.reminders, fmt.Sprintf(
			"Your eating window (%.1fh) is too long. Aim for an 8-10 hour eating window.",
			*d.EatingWindowHours))
		s.modules.TimeRestrictedEating = true
	}
	if d.SkippedBreakfast {
		s.reminders = append(s.reminders,
			"Breakfast skipping detected. Eating breakfast improves insulin sensitivity "+
				"and reduces glucose variability throughout the day.")
	}
	if d.LateNightEating {
		s.reminders = append(s.reminders,
			"Late-night eating detected. Stop eating by 8 PM to align with your body clock. "+
				"Evening calories increase triglycerides and glucose levels.")
	}
}

// Group 6 — FFQ: long-term pattern data refines the recall findings.
func ffqRules(s *evalState) {
	if s.ffq == nil {
		return
	}
	f := s.ffq
	var triggered []string

	if f.FishServingsWeek < 2 {
		s.modules.Omega3Emphasis = true
		shortfall := round1(2 - f.FishServingsWeek)
		s.foodRecs = append(s.foodRecs, database.FoodRecommendation{
			Category: "Fish & Seafood", Action: "increase",
			Foods: []string{"Salmon", "Sardines", "Mackerel", "Tuna", "Trout"},
			Reason: fmt.Sprintf(
				"You're eating %s fish servings/week, below the recommended >=2. "+
					"Increase by %s servings/week for omega-3 and heart benefits.",
				fnum(f.FishServingsWeek), fnum(shortfall)),
		})
		triggered = append(triggered, fmt.Sprintf("Low fish intake (%s/week)", fnum(f.FishServingsWeek)))
	}

	if f.RedMeatServingsWeek > 4 || f.ProcessedMeatServingsWeek > 2 {
		s.modules.AntiInflammatoryDiet = true
		var details []string
		if f.RedMeatServingsWeek > 4 {
			details = append(details, fmt.Sprintf("red meat %s/week (limit <4)", fnum(f.RedMeatServingsWeek)))
		}
		if f.ProcessedMeatServingsWeek > 2 {
			details = append(details, fmt.Sprintf("processed meat %s/week (limit <=2)", fnum(f.ProcessedMeatServingsWeek)))
		}
		s.foodRecs = append(s.foodRecs, database.FoodRecommendation{
			Category: "Red & Processed Meat", Action: "reduce",
			Foods: []string{"Bacon", "Sausages", "Deli meats", "Beef (fatty cuts)", "Pork belly"},
			Reason: fmt.Sprintf(
				"High intake of %s increases inflammation and cardiovascular risk. "+
					"Replace with fish, legumes or poultry.", strings.Join(details, " and ")),
		})
		triggered = append(triggered, fmt.Sprintf("High meat intake (%s)", joinReasons(details)))
	}

	if f.VegetablesServingsDay < 3 {
		s.modules.AntiInflammatoryDiet = true
		s.modules.SolubleFiberEmphasis = true
		shortfall := round1(5 - f.VegetablesServingsDay)
		s.foodRecs = append(s.foodRecs, database.FoodRecommendation{
			Category: "Vegetables", Action: "increase",
			Foods: []string{"Broccoli", "Spinach", "Kale", "Capsicum", "Cucumber",
				"Tomatoes", "Carrots", "Cauliflower"},
			Reason: fmt.Sprintf(
				"You're eating %s vegetable servings/day, well below the target of 5. "+
					"Add %s more servings daily to reduce inflammation and improve fibre intake.",
				fnum(f.VegetablesServingsDay), fnum(shortfall)),
		})
		triggered = append(triggered, fmt.Sprintf("Low vegetable intake (%s servings/day)", fnum(f.VegetablesServingsDay)))
	}

	if f.FruitsServingsDay < 2 {
		s.modules.AntiInflammatoryDiet = true
		s.foodRecs = append(s.foodRecs, database.FoodRecommendation{
			Category: "Whole Fruits", Action: "increase",
			Foods: []string{"Berries", "Apples", "Oranges", "Papaya", "Guava", "Pear"},
			Reason: fmt.Sprintf(
				"Current fruit intake is %s servings/day. "+
					"Target >=2 servings/day for antioxidants and soluble fibre.",
				fnum(f.FruitsServingsDay)),
		})
		triggered = append(triggered, fmt.Sprintf("Low fruit intake (%s servings/day)", fnum(f.FruitsServingsDay)))
	}

	if f.RefinedGrainsServingsWeek > 7 && f.WholeGrainsServingsWeek < 3 {
		s.modules.LowGiPlan = true
		s.modules.SolubleFiberEmphasis = true
		s.foodRecs = append(s.foodRecs, database.FoodRecommendation{
			Category: "Whole Grains", Action: "increase",
			Foods: []string{"Oats", "Brown rice", "Quinoa", "Whole wheat bread", "Barley", "Millet"},
			Reason: fmt.Sprintf(
				"You're eating %s refined grain servings/week but only %s whole grain servings. "+
					"Replace refined with whole grains to improve blood glucose and fibre intake.",
				fnum(f.RefinedGrainsServingsWeek), fnum(f.WholeGrainsServingsWeek)),
		})
		triggered = append(triggered, fmt.Sprintf(
			"High refined grain intake (%s/week, whole grains only %s/week)",
			fnum(f.RefinedGrainsServingsWeek), fnum(f.WholeGrainsServingsWeek)))
	}

	if f.SugaryBeveragesServingsDay >= 1 {
		s.modules.LowGiPlan = true
		s.foodRecs = append(s.foodRecs, database.FoodRecommendation{
			Category: "Sugary Beverages", Action: "avoid",
			Foods: []string{"Soda", "Fruit juice", "Energy drinks", "Sweetened tea/coffee", "Sports drinks"},
			Reason: fmt.Sprintf(
				"You're drinking %s sugary beverage(s)/day. "+
					"Each serving adds ~150 kcal of pure sugar with zero nutritional value. "+
					"Replace with water, plain tea, or sparkling water.",
				fnum(f.SugaryBeveragesServingsDay)),
		})
		triggered = append(triggered, fmt.Sprintf("High sugary beverage intake (%s/day)", fnum(f.SugaryBeveragesServingsDay)))
	}

	if f.FriedFoodsServingsWeek > 3 {
		s.modules.AntiInflammatoryDiet = true
		s.foodRecs = append(s.foodRecs, database.FoodRecommendation{
			Category: "Fried Foods", Action: "avoid",
			Foods: []string{"Deep-fried snacks", "French fries", "Fried chicken", "Samosas", "Pakoras"},
			Reason: fmt.Sprintf(
				"Fried food intake of %s servings/week is above the safe limit. "+
					"Deep frying produces trans fats and advanced glycation end-products (AGEs) "+
					"that drive inflammation.", fnum(f.FriedFoodsServingsWeek)),
		})
		triggered = append(triggered, fmt.Sprintf("High fried food intake (%s/week)", fnum(f.FriedFoodsServingsWeek)))
	}

	if f.LegumesServingsWeek < 2 {
		s.modules.SolubleFiberEmphasis = true
		s.foodRecs = append(s.foodRecs, database.FoodRecommendation{
			Category: "Legumes", Action: "increase",
			Foods: []string{"Lentils", "Chickpeas", "Black beans", "Kidney beans",
				"Moong dal", "Rajma", "Edamame"},
			Reason: fmt.Sprintf(
				"You're eating %s legume servings/week. "+
					"Target >=3-4 servings/week: legumes are the best source of soluble fibre "+
					"and plant protein for blood sugar and cholesterol control.",
				fnum(f.LegumesServingsWeek)),
		})
		triggered = append(triggered, fmt.Sprintf("Low legume intake (%s/week)", fnum(f.LegumesServingsWeek)))
	}

	if f.OliveOilTbspDay < 1 && s.modules.MufaEmphasis {
		s.reminders = append(s.reminders, fmt.Sprintf(
			"You're using %s tbsp olive oil/day. "+
				"Add 1-2 tbsp extra virgin olive oil daily for HDL improvement.",
			fnum(f.OliveOilTbspDay)))
	}

	if len(triggered) > 0 {
		s.addRule(
			"FFQ_DIETARY_PATTERN",
			"Long-term dietary pattern analysis from Food Frequency Questionnaire",
			triggered,
		)
		if len(triggered) >= 3 {
			s.reminders = append(s.reminders,
				"Your food frequency data shows several areas for improvement. "+
					"Focus on increasing vegetables, legumes, and fish while reducing "+
					"processed and fried foods for the greatest health benefit.")
		}
	}
}

// nutrientTargets derives daily goals from the active modules.
// ADA 2024 + DASH defaults, tightened per module.
func (s *evalState) nutrientTargets() Targets {
	p := s.profile

	baseCalories := 2000.0
	if p.CalorieDeficit != nil {
		baseCalories = *p.CalorieDeficit
	} else if p.EstimatedCalorieReq != nil {
		baseCalories = *p.EstimatedCalorieReq
	}

	t := Targets{
		Calories:       baseCalories,
		CarbPercent:    45.0,
		ProteinPercent: 20.0,
		FatPercent:     35.0,
		FiberG:         28.0,
		SodiumMg:       2300.0,
		AddedSugarG:    25.0,
	}

	if s.modules.LowGiPlan {
		t.CarbPercent = 40.0
		t.FiberG = 35.0
	}
	if s.modules.CalorieDeficitPlan && p.CalorieDeficit != nil {
		t.Calories = *p.CalorieDeficit
	}
	if s.modules.Omega3Emphasis {
		omega3 := 2.0
		t.Omega3G = &omega3
	}
	if s.modules.AntiInflammatoryDiet {
		t.SodiumMg = 1500.0
		t.AddedSugarG = 15.0
	}
	// Tighten fibre further when both soluble fibre and low-GI are active
	if s.modules.SolubleFiberEmphasis && s.modules.LowGiPlan {
		t.FiberG = 38.0
	}

	return t
}

func (s *evalState) summary() string {
	riskCategory := "Unknown"
	if s.profile.MetabolicRiskCategory != nil {
		riskCategory = *s.profile.MetabolicRiskCategory
	}
	nRules := len(s.rules)
	plural := "s"
	if nRules == 1 {
		plural = ""
	}
	ffqNote := ""
	if s.ffq != nil {
		ffqNote = " (includes long-term dietary pattern from questionnaire)"
	}

	out := fmt.Sprintf("Personalised dietary plan for %s metabolic risk. %d clinical finding%s identified%s. ",
		riskCategory, nRules, plural, ffqNote)

	if s.modules.LowGiPlan {
		out += "Low glycaemic index eating pattern recommended. "
	}
	if s.modules.AntiInflammatoryDiet {
		out += "Anti-inflammatory dietary approach emphasised. "
	}
	if s.modules.TimeRestrictedEating {
		out += "Time-restricted eating (8-10 hour window) recommended. "
	}
	if s.modules.CalorieDeficitPlan && s.profile.CalorieDeficit != nil {
		out += fmt.Sprintf("Calorie target set to %.0f kcal/day. ", *s.profile.CalorieDeficit)
	}
	if s.modules.Omega3Emphasis {
		out += "Omega-3 rich foods (fish, flaxseed, walnuts) should be increased. "
	}

	return strings.TrimRight(out, " ")
}

func joinReasons(parts []string) string {
	return strings.Join(parts, " | ")
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
