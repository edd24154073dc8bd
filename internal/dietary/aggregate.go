package dietary

import (
	"math"
	"time"

	"DiabetesDiet/internal/database"
	"DiabetesDiet/internal/foodref"
)

// Category sets for macro estimation. These approximate nutrients the
// FNDDS category data does not carry directly.
var (
	// desserts, candy, sweetened beverages: ~70% of carbs are added sugar
	addedSugarCategories = map[int32]bool{
		8802: true, 8804: true, 8806: true, 5702: true, 5704: true,
		7202: true, 7204: true, 5502: true, 5504: true, 5506: true, 5802: true,
	}
	// red meat, whole dairy, processed meat, butter: ~40% of fat saturated
	saturatedFatCategories = map[int32]bool{
		2002: true, 2004: true, 2006: true, 1002: true, 2604: true,
		2606: true, 8006: true, 8008: true, 5802: true,
	}
	// fried and packaged baked goods: ~15% of fat trans
	transFatCategories = map[int32]bool{
		2702: true, 2704: true, 2706: true, 2802: true, 2804: true,
		5702: true, 5704: true, 5802: true, 8202: true,
	}
)

const gramsPerFruitVegServing = 80.0

// RecallItem is one food entry in a submitted 24-hour recall.
type RecallItem struct {
	FoodCode        int64             `json:"food_code"`
	FoodDescription string            `json:"food_description"`
	QuantityGrams   float64           `json:"quantity_grams"`
	MealType        database.MealType `json:"meal_type"`
	MealTime        *string           `json:"meal_time"`
}

// EatingWindowHours computes the first-to-last intake span in hours,
// wrapping past midnight when the end time precedes the start. Times
// are "HH:MM". Returns nil if either bound is missing or malformed.
func EatingWindowHours(start, end *string) *float64 {
	if start == nil || end == nil {
		return nil
	}
	startT, err := time.Parse("15:04", *start)
	if err != nil {
		return nil
	}
	endT, err := time.Parse("15:04", *end)
	if err != nil {
		return nil
	}
	span := endT.Sub(startT)
	if span < 0 {
		span += 24 * time.Hour
	}
	hours := round(span.Hours(), 2)
	return &hours
}

// Aggregate computes the record's nutrient totals, scores, and food
// item rows from the submitted items. The record must already carry
// its timing fields; lookup resolves each food code to its category
// and flags.
func Aggregate(record *database.DietaryRecord, items []RecallItem, lookup func(code int64) foodref.FoodFacts) []database.DietaryFoodItem {
	var (
		totalCalories     float64
		totalCarbsKcal    float64
		totalProteinKcal  float64
		totalFatKcal      float64
		totalFiber        float64
		totalSodium       float64
		totalGlycemicLoad float64
		totalOmega3       float64
		ultraProcessedCal float64
		fruitVegServings  float64
		addedSugarG       float64
		saturatedFatG     float64
		transFatG         float64
	)

	foodItems := make([]database.DietaryFoodItem, 0, len(items))
	mealTypes := make(map[database.MealType]bool)

	for _, in := range items {
		facts := lookup(in.FoodCode)
		n := EstimateNutrients(facts.WweiaCategory, in.QuantityGrams)
		mealTypes[in.MealType] = true

		item := database.DietaryFoodItem{
			FoodCode:         in.FoodCode,
			FoodDescription:  in.FoodDescription,
			QuantityGrams:    in.QuantityGrams,
			MealType:         in.MealType,
			MealTime:         in.MealTime,
			Calories:         &n.Calories,
			CarbsG:           &n.CarbsG,
			ProteinG:         &n.ProteinG,
			FatG:             &n.FatG,
			FiberG:           &n.FiberG,
			SodiumMg:         &n.SodiumMg,
			IsUltraProcessed: facts.IsUltraProcessed,
		}
		foodItems = append(foodItems, item)

		totalCalories += n.Calories
		totalCarbsKcal += n.CarbsG * 4
		totalProteinKcal += n.ProteinG * 4
		totalFatKcal += n.FatG * 9
		totalFiber += n.FiberG
		totalSodium += n.SodiumMg
		totalGlycemicLoad += n.GlycemicLoad

		if facts.IsUltraProcessed {
			ultraProcessedCal += n.Calories
		}
		if facts.IsFruitVegetable {
			fruitVegServings += in.QuantityGrams / gramsPerFruitVegServing
		}
		if facts.IsOmega3Rich {
			// ~30% of fat is omega-3 in fatty fish
			totalOmega3 += n.FatG * 0.3
		}
		if addedSugarCategories[facts.WweiaCategory] {
			addedSugarG += n.CarbsG * 0.7
		}
		if saturatedFatCategories[facts.WweiaCategory] {
			saturatedFatG += n.FatG * 0.4
		}
		if transFatCategories[facts.WweiaCategory] {
			transFatG += n.FatG * 0.15
		}
	}

	var carbPct, protPct, fatPct float64
	totalMacrosKcal := totalCarbsKcal + totalProteinKcal + totalFatKcal
	if totalMacrosKcal > 0 {
		carbPct = round(totalCarbsKcal/totalMacrosKcal*100, 1)
		protPct = round(totalProteinKcal/totalMacrosKcal*100, 1)
		fatPct = round(totalFatKcal/totalMacrosKcal*100, 1)
	}

	ultraPct := round(ultraProcessedCal/math.Max(totalCalories, 1)*100, 1)
	fruitVegServings = round(fruitVegServings, 1)

	dis := InflammatoryScore(totalFiber, saturatedFatG, transFatG, addedSugarG, totalOmega3, fruitVegServings)
	chrono := ChrononutritionScore(record.EatingWindowHours, record.SkippedBreakfast, record.LateNightEating, len(mealTypes))
	quality := DietQualityScore(carbPct, protPct, fatPct, totalFiber, totalSodium, ultraPct, fruitVegServings)

	record.TotalCalories = ptr(round(totalCalories, 1))
	record.CarbPercent = &carbPct
	record.ProteinPercent = &protPct
	record.FatPercent = &fatPct
	record.SaturatedFatG = ptr(round(saturatedFatG, 1))
	record.TransFatG = ptr(round(transFatG, 2))
	record.FiberG = ptr(round(totalFiber, 1))
	record.AddedSugarG = ptr(round(addedSugarG, 1))
	record.SodiumMg = ptr(round(totalSodium, 1))
	record.Omega3G = ptr(round(totalOmega3, 2))
	record.UltraProcessedPercent = &ultraPct
	record.GlycemicLoad = ptr(round(totalGlycemicLoad, 1))
	record.FruitVegServings = &fruitVegServings
	record.DietaryInflammatoryScore = &dis
	record.ChrononutritionScore = &chrono
	record.DietQualityScore = &quality

	return foodItems
}

func ptr(v float64) *float64 { return &v }
