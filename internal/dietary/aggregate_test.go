package dietary

import (
	"testing"

	"DiabetesDiet/internal/database"
	"DiabetesDiet/internal/foodref"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestEatingWindowHours(t *testing.T) {
	got := EatingWindowHours(strp("08:00"), strp("20:30"))
	require.NotNil(t, got)
	assert.Equal(t, 12.5, *got)
}

func TestEatingWindowHoursWrapsMidnight(t *testing.T) {
	got := EatingWindowHours(strp("22:00"), strp("06:00"))
	require.NotNil(t, got)
	assert.Equal(t, 8.0, *got)
}

func TestEatingWindowHoursMissingOrMalformed(t *testing.T) {
	assert.Nil(t, EatingWindowHours(nil, strp("20:00")))
	assert.Nil(t, EatingWindowHours(strp("08:00"), nil))
	assert.Nil(t, EatingWindowHours(strp("8am"), strp("20:00")))
}

// riceAndApple resolves the two food codes used by the aggregate tests.
func riceAndApple(code int64) foodref.FoodFacts {
	switch code {
	case 11111:
		return foodref.FoodFacts{WweiaCategory: 4002}
	case 22222:
		return foodref.FoodFacts{WweiaCategory: 6002, IsFruitVegetable: true}
	}
	return foodref.FoodFacts{}
}

func TestAggregateTotalsAndScores(t *testing.T) {
	window := 12.0
	record := database.DietaryRecord{EatingWindowHours: &window}
	items := []RecallItem{
		{FoodCode: 11111, FoodDescription: "Rice, white, cooked", QuantityGrams: 100, MealType: database.MealLunch},
		{FoodCode: 22222, FoodDescription: "Apple, raw", QuantityGrams: 100, MealType: database.MealBreakfast},
	}

	foodItems := Aggregate(&record, items, riceAndApple)
	require.Len(t, foodItems, 2)

	assert.Equal(t, 182.0, *record.TotalCalories)
	assert.Equal(t, 91.1, *record.CarbPercent)
	assert.Equal(t, 6.5, *record.ProteinPercent)
	assert.Equal(t, 2.4, *record.FatPercent)
	assert.Equal(t, 2.8, *record.FiberG)
	assert.Equal(t, 2.0, *record.SodiumMg)
	assert.Equal(t, 25.5, *record.GlycemicLoad)
	assert.Equal(t, 1.3, *record.FruitVegServings)
	assert.Equal(t, 0.0, *record.UltraProcessedPercent)
	assert.Equal(t, 0.0, *record.Omega3G)

	assert.Equal(t, database.DISNeutral, *record.DietaryInflammatoryScore)
	// 12h window costs one point; two meal occasions is regular.
	assert.Equal(t, 9.0, *record.ChrononutritionScore)
	// Carb-heavy, low protein, low fiber, low produce.
	assert.Equal(t, 45.0, *record.DietQualityScore)

	rice := foodItems[0]
	assert.Equal(t, int64(11111), rice.FoodCode)
	assert.Equal(t, 130.0, *rice.Calories)
	assert.Equal(t, 28.0, *rice.CarbsG)
	assert.False(t, rice.IsUltraProcessed)
}

func TestAggregateUltraProcessedShare(t *testing.T) {
	record := database.DietaryRecord{}
	items := []RecallItem{
		{FoodCode: 33333, FoodDescription: "Snack cake", QuantityGrams: 100, MealType: database.MealAfternoonSnack},
	}

	lookup := func(code int64) foodref.FoodFacts {
		return foodref.FoodFacts{WweiaCategory: 5502, IsUltraProcessed: true}
	}

	foodItems := Aggregate(&record, items, lookup)
	require.Len(t, foodItems, 1)

	assert.True(t, foodItems[0].IsUltraProcessed)
	assert.Equal(t, 100.0, *record.UltraProcessedPercent)
	// Category 5502 carries added sugar at 70% of carbs.
	assert.Equal(t, 38.5, *record.AddedSugarG)
}

func TestAggregateOmega3FromFattyFish(t *testing.T) {
	record := database.DietaryRecord{}
	items := []RecallItem{
		{FoodCode: 44444, FoodDescription: "Salmon, baked", QuantityGrams: 100, MealType: database.MealDinner},
	}

	lookup := func(code int64) foodref.FoodFacts {
		return foodref.FoodFacts{WweiaCategory: 2402, IsOmega3Rich: true}
	}

	Aggregate(&record, items, lookup)

	// 13g fat, 30% of it counted as omega-3.
	assert.Equal(t, 3.9, *record.Omega3G)
}

func TestAggregateUnknownFoodUsesGenericProfile(t *testing.T) {
	record := database.DietaryRecord{}
	items := []RecallItem{
		{FoodCode: 99999, FoodDescription: "Mystery dish", QuantityGrams: 100, MealType: database.MealLunch},
	}

	foodItems := Aggregate(&record, items, func(int64) foodref.FoodFacts { return foodref.FoodFacts{} })
	require.Len(t, foodItems, 1)

	assert.Equal(t, 100.0, *record.TotalCalories)
	assert.Equal(t, 100.0, *record.SodiumMg)
}
