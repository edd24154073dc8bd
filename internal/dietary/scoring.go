// Package dietary implements 24-hour recall aggregation and the three
// dietary scores: inflammatory classification, chrononutrition, and
// overall diet quality.
package dietary

import (
	"math"
)

// NutrientProfile is an approximate per-100g profile for a WWEIA
// category, used when item-level nutrient data is unavailable.
type NutrientProfile struct {
	Calories float64
	Carbs    float64
	Protein  float64
	Fat      float64
	Fiber    float64
	Sodium   float64
	GI       int
}

var nutrientEstimates = map[int32]NutrientProfile{
	// Dairy
	1002: {61, 4.7, 3.2, 3.3, 0, 43, 27},
	1004: {50, 4.8, 3.3, 1.9, 0, 47, 27},
	1006: {42, 5.0, 3.4, 1.0, 0, 44, 30},
	1602: {403, 1.3, 25, 33, 0, 621, 0},
	// Meat
	2002: {250, 0, 26, 17, 0, 72, 0},
	2004: {260, 0, 25, 18, 0, 76, 0},
	2006: {242, 0, 27, 14, 0, 62, 0},
	2202: {165, 0, 31, 4, 0, 74, 0},
	// Fish/Seafood
	2402: {206, 0, 22, 13, 0, 59, 0},
	2404: {99, 0, 20, 2, 0, 294, 0},
	// Eggs
	2502: {155, 1.1, 13, 11, 0, 124, 0},
	// Processed meats
	2602: {300, 3, 12, 27, 0, 1100, 0},
	2604: {541, 1.5, 37, 43, 0, 1717, 0},
	// Legumes
	2802: {130, 22, 9, 0.5, 7, 4, 29},
	2804: {607, 21, 21, 54, 8, 5, 15},
	// Rice/Grains
	4002: {130, 28, 2.7, 0.3, 0.4, 1, 73},
	4004: {158, 31, 5.8, 0.9, 1.8, 1, 50},
	// Bread
	4202: {265, 51, 9, 3, 2.4, 491, 70},
	4204: {270, 50, 9.3, 3.1, 2.3, 474, 72},
	4208: {218, 36, 5.6, 5, 2.4, 458, 68},
	// Cereals
	4602: {385, 83, 7, 3, 5, 320, 81},
	4604: {370, 80, 9, 3, 10, 320, 55},
	4802: {68, 12, 2.4, 1.4, 1.7, 49, 55},
	// Snacks
	5002: {536, 53, 7, 35, 3.8, 525, 70},
	5004: {489, 58, 7, 26, 4.4, 445, 65},
	5502: {389, 55, 4.4, 18, 1, 326, 65},
	5504: {480, 68, 5, 21, 2, 320, 70},
	5702: {546, 59, 4.7, 30, 3.7, 40, 43},
	// Fruits
	6002: {52, 14, 0.3, 0.2, 2.4, 1, 36},
	6004: {89, 23, 1.1, 0.3, 2.6, 1, 51},
	6006: {69, 18, 0.7, 0.2, 0.9, 2, 53},
	6009: {32, 7.7, 0.7, 0.3, 2, 1, 40},
	6011: {57, 14, 0.7, 0.3, 2.4, 1, 25},
	6012: {47, 12, 0.9, 0.1, 2.3, 1, 42},
	6014: {34, 8, 0.8, 0.2, 0.9, 1, 65},
	6018: {55, 14, 0.5, 0.2, 2, 1, 45},
	6022: {50, 13, 0.5, 0.1, 1.4, 1, 59},
	6024: {60, 15, 0.8, 0.4, 1.6, 1, 55},
	// Vegetables
	6402: {18, 3.9, 0.9, 0.2, 1.2, 5, 30},
	6404: {41, 10, 0.9, 0.2, 2.8, 69, 35},
	6407: {34, 6.6, 2.8, 0.4, 2.6, 33, 15},
	6409: {23, 3.6, 2.9, 0.4, 2.2, 79, 15},
	6410: {15, 2.9, 1.4, 0.2, 1.9, 28, 15},
	6411: {35, 6.8, 3.3, 0.4, 3.8, 19, 15},
	6420: {65, 14, 3.3, 0.3, 4.5, 16, 20},
	// Potatoes
	6802: {77, 17, 2, 0.1, 2.2, 6, 82},
	6804: {312, 41, 3.4, 15, 3.8, 210, 76},
	// Juices & Beverages
	7002: {45, 11, 0.7, 0.2, 0.2, 1, 50},
	7004: {46, 11, 0.1, 0.1, 0.2, 4, 41},
	7202: {41, 11, 0.1, 0, 0, 10, 63},
	7204: {47, 11, 0, 0, 0, 15, 55},
	7302: {1, 0, 0, 0, 0, 14, 0},
	7304: {1, 0.1, 0.1, 0, 0, 4, 0},
	// Fats/Oils
	8006: {717, 0.1, 0.9, 81, 0, 2, 0},
	8010: {680, 0.1, 0.1, 75, 0, 94, 0},
	8012: {884, 0, 0, 100, 0, 0, 0},
	// Sugars
	8802: {304, 82, 0.3, 0, 0.2, 11, 65},
}

var defaultNutrients = NutrientProfile{100, 15, 5, 3, 1, 100, 50}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// NutrientEstimate is the scaled estimate for one food item.
type NutrientEstimate struct {
	Calories      float64 `json:"calories"`
	CarbsG        float64 `json:"carbs_g"`
	ProteinG      float64 `json:"protein_g"`
	FatG          float64 `json:"fat_g"`
	FiberG        float64 `json:"fiber_g"`
	SodiumMg      float64 `json:"sodium_mg"`
	GlycemicIndex int     `json:"glycemic_index"`
	GlycemicLoad  float64 `json:"glycemic_load"`
}

// EstimateNutrients scales a category profile by quantity. Unknown
// categories fall back to a generic mixed-food profile.
func EstimateNutrients(wweiaCategory int32, quantityGrams float64) NutrientEstimate {
	profile, ok := nutrientEstimates[wweiaCategory]
	if !ok {
		profile = defaultNutrients
	}
	factor := quantityGrams / 100.0
	return NutrientEstimate{
		Calories:      round(profile.Calories*factor, 1),
		CarbsG:        round(profile.Carbs*factor, 1),
		ProteinG:      round(profile.Protein*factor, 1),
		FatG:          round(profile.Fat*factor, 1),
		FiberG:        round(profile.Fiber*factor, 2),
		SodiumMg:      round(profile.Sodium*factor, 1),
		GlycemicIndex: profile.GI,
		GlycemicLoad:  round((float64(profile.GI)*profile.Carbs*factor)/100, 2),
	}
}

// InflammatoryScore classifies the day's intake. Each component adds
// or subtracts points; the summed score maps to one of three labels.
func InflammatoryScore(fiberG, saturatedFatG, transFatG, addedSugarG, omega3G, fruitVegServings float64) string {
	score := 0

	switch {
	case fiberG >= 25:
		score -= 2
	case fiberG >= 15:
		score--
	default:
		score += 2
	}

	switch {
	case saturatedFatG <= 10:
		score--
	case saturatedFatG <= 20:
	default:
		score += 2
	}

	// Trans fat should be near zero
	switch {
	case transFatG < 0.5:
		score--
	case transFatG < 2:
		score++
	default:
		score += 3
	}

	// WHO free-sugar guidance: <25g/day
	switch {
	case addedSugarG <= 25:
		score--
	case addedSugarG <= 50:
		score++
	default:
		score += 2
	}

	switch {
	case omega3G >= 1.5:
		score -= 2
	case omega3G >= 0.5:
		score--
	default:
		score++
	}

	switch {
	case fruitVegServings >= 5:
		score -= 2
	case fruitVegServings >= 3:
		score--
	default:
		score++
	}

	switch {
	case score <= -2:
		return "Anti-inflammatory"
	case score <= 2:
		return "Neutral"
	default:
		return "Pro-inflammatory"
	}
}

// ChrononutritionScore rates meal timing 0-10, higher is better.
// Penalizes extended eating windows, skipped breakfast, late-night
// eating, and irregular meal counts. A window under 10 hours carries
// no penalty.
func ChrononutritionScore(eatingWindowHours *float64, skippedBreakfast, lateNightEating bool, mealCount int) float64 {
	score := 10.0

	if eatingWindowHours != nil {
		switch {
		case *eatingWindowHours > 14:
			score -= 3
		case *eatingWindowHours > 12:
			score -= 2
		case *eatingWindowHours > 10:
			score--
		}
	}

	if skippedBreakfast {
		score -= 2
	}
	if lateNightEating {
		score -= 2
	}
	if mealCount < 2 || mealCount > 6 {
		score--
	}

	return math.Max(0.0, round(score, 1))
}

// DietQualityScore rates the day 0-100 against targets for diabetes
// and metabolic syndrome management.
func DietQualityScore(carbPercent, proteinPercent, fatPercent, fiberG, sodiumMg, ultraProcessedPercent, fruitVegServings float64) float64 {
	score := 100.0

	// Carbohydrates: 40-55% of calories is optimal for T2DM
	if carbPercent < 35 || carbPercent > 65 {
		score -= 15
	} else if carbPercent < 40 || carbPercent > 60 {
		score -= 5
	}

	if proteinPercent < 10 || proteinPercent > 35 {
		score -= 10
	} else if proteinPercent < 15 || proteinPercent > 30 {
		score -= 5
	}

	switch {
	case fiberG < 10:
		score -= 20
	case fiberG < 20:
		score -= 10
	case fiberG >= 30:
		score += 5
	}

	if sodiumMg > 3500 {
		score -= 20
	} else if sodiumMg > 2300 {
		score -= 10
	}

	switch {
	case ultraProcessedPercent > 50:
		score -= 20
	case ultraProcessedPercent > 30:
		score -= 10
	case ultraProcessedPercent > 15:
		score -= 5
	}

	if fruitVegServings >= 5 {
		score += 5
	} else if fruitVegServings < 3 {
		score -= 10
	}

	return math.Max(0.0, math.Min(100.0, round(score, 1)))
}
