package dietary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateNutrientsKnownCategory(t *testing.T) {
	// 100g of raw apple, category 6002
	n := EstimateNutrients(6002, 100)

	assert.Equal(t, 52.0, n.Calories)
	assert.Equal(t, 14.0, n.CarbsG)
	assert.Equal(t, 0.3, n.ProteinG)
	assert.Equal(t, 0.2, n.FatG)
	assert.Equal(t, 2.4, n.FiberG)
	assert.Equal(t, 1.0, n.SodiumMg)
	assert.Equal(t, 36, n.GlycemicIndex)
	assert.Equal(t, 5.04, n.GlycemicLoad)
}

func TestEstimateNutrientsScalesByQuantity(t *testing.T) {
	base := EstimateNutrients(4002, 100)
	double := EstimateNutrients(4002, 200)

	assert.Equal(t, base.Calories*2, double.Calories)
	assert.Equal(t, base.CarbsG*2, double.CarbsG)
	assert.Equal(t, base.GlycemicIndex, double.GlycemicIndex)
	assert.InDelta(t, base.GlycemicLoad*2, double.GlycemicLoad, 0.011)
}

func TestEstimateNutrientsUnknownCategoryFallsBack(t *testing.T) {
	n := EstimateNutrients(9999, 200)

	assert.Equal(t, 200.0, n.Calories)
	assert.Equal(t, 30.0, n.CarbsG)
	assert.Equal(t, 10.0, n.ProteinG)
	assert.Equal(t, 50, n.GlycemicIndex)
	assert.Equal(t, 15.0, n.GlycemicLoad)
}

func TestInflammatoryScore(t *testing.T) {
	// High fiber, low saturated fat, no trans fat, low sugar, plenty of
	// omega-3 and produce.
	assert.Equal(t, "Anti-inflammatory", InflammatoryScore(30, 8, 0, 10, 2, 5))

	// Low fiber, heavy saturated and trans fat, high sugar, no fish or
	// produce.
	assert.Equal(t, "Pro-inflammatory", InflammatoryScore(5, 25, 3, 60, 0.1, 1))

	assert.Equal(t, "Neutral", InflammatoryScore(18, 15, 1, 30, 1, 3.5))
}

func TestInflammatoryScoreBoundary(t *testing.T) {
	// Component sum is exactly +2, the last Neutral value.
	assert.Equal(t, "Neutral", InflammatoryScore(10, 15, 1, 30, 1, 3))
	// Dropping produce below three servings pushes the sum past +2.
	assert.Equal(t, "Pro-inflammatory", InflammatoryScore(10, 15, 1, 30, 1, 2))
}

func TestChrononutritionScore(t *testing.T) {
	window := func(h float64) *float64 { return &h }

	assert.Equal(t, 10.0, ChrononutritionScore(nil, false, false, 3))
	assert.Equal(t, 10.0, ChrononutritionScore(window(10), false, false, 3))
	assert.Equal(t, 9.0, ChrononutritionScore(window(10.5), false, false, 3))
	assert.Equal(t, 8.0, ChrononutritionScore(window(13), false, false, 3))
	assert.Equal(t, 7.0, ChrononutritionScore(window(15), false, false, 3))

	// Every penalty at once: 10 - 3 - 2 - 2 - 1
	assert.Equal(t, 2.0, ChrononutritionScore(window(15), true, true, 1))

	// Seven eating occasions counts as irregular
	assert.Equal(t, 9.0, ChrononutritionScore(nil, false, false, 7))
}

func TestDietQualityScore(t *testing.T) {
	// Ideal day caps at 100 even with the fiber and produce bonuses.
	assert.Equal(t, 100.0, DietQualityScore(50, 20, 30, 32, 2000, 10, 5))

	// Every penalty: carbs 15, protein 10, fiber 20, sodium 20,
	// ultra-processed 20, produce 10.
	assert.Equal(t, 5.0, DietQualityScore(70, 8, 22, 8, 4000, 60, 1))

	// Mild deviations only.
	assert.Equal(t, 65.0, DietQualityScore(38, 12, 50, 15, 2500, 20, 3))
}
