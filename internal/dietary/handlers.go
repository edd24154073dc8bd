package dietary

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"DiabetesDiet/internal/database"
	"DiabetesDiet/internal/foodref"
	"DiabetesDiet/internal/utility"
)

var (
	dbpool   *pgxpool.Pool
	queries  *database.Queries
	resolver *foodref.Resolver
)

// InitDietary wires the package to the shared pool and the food
// reference resolver.
func InitDietary(pool *pgxpool.Pool, r *foodref.Resolver) {
	dbpool = pool
	queries = database.New(pool)
	resolver = r
}

type FoodItemRequest struct {
	FoodCode        int64             `json:"food_code"`
	FoodDescription string            `json:"food_description"`
	QuantityGrams   float64           `json:"quantity_grams"`
	MealType        database.MealType `json:"meal_type"`
	MealTime        *string           `json:"meal_time"`
}

type RecallRequest struct {
	RecallDate        string            `json:"recall_date"` // YYYY-MM-DD
	EatingWindowStart *string           `json:"eating_window_start"`
	EatingWindowEnd   *string           `json:"eating_window_end"`
	SkippedBreakfast  bool              `json:"skipped_breakfast"`
	LateNightEating   bool              `json:"late_night_eating"`
	FoodItems         []FoodItemRequest `json:"food_items"`
}

var validMealTypes = map[database.MealType]bool{
	database.MealBreakfast:       true,
	database.MealMidMorningSnack: true,
	database.MealLunch:           true,
	database.MealAfternoonSnack:  true,
	database.MealDinner:          true,
	database.MealLateNight:       true,
}

func (r *RecallRequest) validate() string {
	if len(r.FoodItems) == 0 {
		return "food_items must not be empty"
	}
	for i, it := range r.FoodItems {
		if it.QuantityGrams <= 0 {
			return fmt.Sprintf("food_items[%d]: quantity_grams must be positive", i)
		}
		if !validMealTypes[it.MealType] {
			return fmt.Sprintf("food_items[%d]: invalid meal_type %q", i, it.MealType)
		}
	}
	return ""
}

// RecordWithItems is the detailed recall response.
type RecordWithItems struct {
	database.DietaryRecord
	FoodItems []database.DietaryFoodItem `json:"food_items"`
}

// SubmitRecallHandler stores a 24-hour recall with all derived
// nutrition variables, one transaction for the record and its items.
// POST /dietary/recall
func SubmitRecallHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	var req RecallRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	recallDate, err := time.Parse("2006-01-02", req.RecallDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "recall_date must be YYYY-MM-DD"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}

	ctx := c.Request().Context()
	exists, err := queries.DietaryRecordExists(ctx, userID, recallDate)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to check existing recall")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if exists {
		return c.JSON(http.StatusConflict, map[string]string{
			"error": fmt.Sprintf("Recall already exists for %s. Delete or use a different date.", req.RecallDate),
		})
	}

	record := database.DietaryRecord{
		UserID:            userID,
		RecallDate:        recallDate,
		EatingWindowStart: req.EatingWindowStart,
		EatingWindowEnd:   req.EatingWindowEnd,
		EatingWindowHours: EatingWindowHours(req.EatingWindowStart, req.EatingWindowEnd),
		SkippedBreakfast:  req.SkippedBreakfast,
		LateNightEating:   req.LateNightEating,
	}

	recallItems := make([]RecallItem, len(req.FoodItems))
	for i, it := range req.FoodItems {
		recallItems[i] = RecallItem{
			FoodCode:        it.FoodCode,
			FoodDescription: it.FoodDescription,
			QuantityGrams:   it.QuantityGrams,
			MealType:        it.MealType,
			MealTime:        it.MealTime,
		}
	}
	items := Aggregate(&record, recallItems, resolver.Lookup(ctx))

	tx, err := dbpool.Begin(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	defer tx.Rollback(ctx)

	qtx := queries.WithTx(tx)
	stored, err := qtx.CreateDietaryRecord(ctx, record)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to store dietary record")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	for i := range items {
		items[i].DietaryRecordID = stored.ID
		id, err := qtx.CreateDietaryFoodItem(ctx, items[i])
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("failed to store food item")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		items[i].ID = id
	}
	if err := tx.Commit(ctx); err != nil {
		log.Error().Err(err).Msg("failed to commit recall transaction")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusCreated, RecordWithItems{DietaryRecord: stored, FoodItems: items})
}

// ListRecallsHandler lists the caller's recalls, newest first.
// GET /dietary/recall
func ListRecallsHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	skip, limit := utility.PaginationParams(c, 30)
	records, err := queries.ListDietaryRecords(c.Request().Context(), userID, skip, limit)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to list recalls")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, records)
}

// GetRecallHandler fetches one recall with its food items.
// GET /dietary/recall/:id
func GetRecallHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid record id"})
	}

	ctx := c.Request().Context()
	record, err := queries.GetDietaryRecord(ctx, int32(id), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Dietary record not found"})
		}
		log.Error().Err(err).Str("user_id", userID).Msg("failed to fetch recall")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	items, err := queries.ListFoodItems(ctx, record.ID)
	if err != nil {
		log.Error().Err(err).Int32("record_id", record.ID).Msg("failed to fetch food items")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, RecordWithItems{DietaryRecord: record, FoodItems: items})
}

// DeleteRecallHandler removes a recall and its items.
// DELETE /dietary/recall/:id
func DeleteRecallHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid record id"})
	}
	affected, err := queries.DeleteDietaryRecord(c.Request().Context(), int32(id), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to delete recall")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if affected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Dietary record not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

type FFQRequest struct {
	AssessmentDate             *string `json:"assessment_date"` // YYYY-MM-DD, defaults to today
	RedMeatServingsWeek        float64 `json:"red_meat_servings_week"`
	ProcessedMeatServingsWeek  float64 `json:"processed_meat_servings_week"`
	FishServingsWeek           float64 `json:"fish_servings_week"`
	PoultryServingsWeek        float64 `json:"poultry_servings_week"`
	EggsServingsWeek           float64 `json:"eggs_servings_week"`
	DairyServingsWeek          float64 `json:"dairy_servings_week"`
	LegumesServingsWeek        float64 `json:"legumes_servings_week"`
	NutsSeedsServingsWeek      float64 `json:"nuts_seeds_servings_week"`
	WholeGrainsServingsWeek    float64 `json:"whole_grains_servings_week"`
	RefinedGrainsServingsWeek  float64 `json:"refined_grains_servings_week"`
	VegetablesServingsDay      float64 `json:"vegetables_servings_day"`
	FruitsServingsDay          float64 `json:"fruits_servings_day"`
	FriedFoodsServingsWeek     float64 `json:"fried_foods_servings_week"`
	SweetsServingsWeek         float64 `json:"sweets_servings_week"`
	SugaryBeveragesServingsDay float64 `json:"sugary_beverages_servings_day"`
	AlcoholServingsWeek        float64 `json:"alcohol_servings_week"`
	OliveOilTbspDay            float64 `json:"olive_oil_tbsp_day"`
	FastFoodServingsWeek       float64 `json:"fast_food_servings_week"`
}

// SubmitFFQHandler stores a food frequency questionnaire submission.
// POST /dietary/ffq
func SubmitFFQHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	var req FFQRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	assessmentDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.AssessmentDate != nil {
		assessmentDate, err = time.Parse("2006-01-02", *req.AssessmentDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "assessment_date must be YYYY-MM-DD"})
		}
	}

	ffq := database.FFQResponse{
		UserID:                     userID,
		AssessmentDate:             assessmentDate,
		RedMeatServingsWeek:        req.RedMeatServingsWeek,
		ProcessedMeatServingsWeek:  req.ProcessedMeatServingsWeek,
		FishServingsWeek:           req.FishServingsWeek,
		PoultryServingsWeek:        req.PoultryServingsWeek,
		EggsServingsWeek:           req.EggsServingsWeek,
		DairyServingsWeek:          req.DairyServingsWeek,
		LegumesServingsWeek:        req.LegumesServingsWeek,
		NutsSeedsServingsWeek:      req.NutsSeedsServingsWeek,
		WholeGrainsServingsWeek:    req.WholeGrainsServingsWeek,
		RefinedGrainsServingsWeek:  req.RefinedGrainsServingsWeek,
		VegetablesServingsDay:      req.VegetablesServingsDay,
		FruitsServingsDay:          req.FruitsServingsDay,
		FriedFoodsServingsWeek:     req.FriedFoodsServingsWeek,
		SweetsServingsWeek:         req.SweetsServingsWeek,
		SugaryBeveragesServingsDay: req.SugaryBeveragesServingsDay,
		AlcoholServingsWeek:        req.AlcoholServingsWeek,
		OliveOilTbspDay:            req.OliveOilTbspDay,
		FastFoodServingsWeek:       req.FastFoodServingsWeek,
	}

	stored, err := queries.CreateFFQResponse(c.Request().Context(), ffq)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to store ffq")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusCreated, stored)
}

// ListFFQHandler lists the caller's FFQ submissions, newest first.
// GET /dietary/ffq
func ListFFQHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	responses, err := queries.ListFFQResponses(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to list ffq responses")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, responses)
}

// SearchFoodsHandler searches the FNDDS reference database.
// GET /dietary/foods/search
func SearchFoodsHandler(c echo.Context) error {
	q := c.QueryParam("q")
	if len(q) < 2 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "q must be at least 2 characters"})
	}

	params := database.SearchFoodsParams{Query: q, Limit: 15}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 50 {
			params.Limit = int32(n)
		}
	}
	if v := c.QueryParam("category"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "category must be an integer"})
		}
		params.CategoryNumber = int32(n)
	}
	if c.QueryParam("low_gi_only") == "true" {
		params.LowGi = true
	}
	if c.QueryParam("anti_inflammatory_only") == "true" {
		params.AntiInflammatory = true
	}
	if c.QueryParam("omega3_only") == "true" {
		params.Omega3Rich = true
	}

	foods, err := queries.SearchFoods(c.Request().Context(), params)
	if err != nil {
		log.Error().Err(err).Str("query", q).Msg("food search failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, foods)
}

// FoodCategoriesHandler lists all WWEIA categories in the reference set.
// GET /dietary/foods/categories
func FoodCategoriesHandler(c echo.Context) error {
	categories, err := queries.ListFoodCategories(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list food categories")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, categories)
}
