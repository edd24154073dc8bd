package plan

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"DiabetesDiet/internal/database"
	"DiabetesDiet/internal/utility"
)

var (
	queries   *database.Queries
	predictor *Predictor
)

// ErrProfileRequired signals that plan generation was attempted before
// the patient completed their clinical profile.
var ErrProfileRequired = errors.New("patient profile required")

// InitPlans wires the package to the shared pool and the classifier.
func InitPlans(dbpool *pgxpool.Pool, c Classifier) {
	queries = database.New(dbpool)
	predictor = NewPredictor(c)
}

type GenerateRequest struct {
	Source          database.PlanSource `json:"source"`
	DietaryRecordID *int32              `json:"dietary_record_id"`
}

// planInputs is the per-request data both generation paths need.
type planInputs struct {
	profile *database.PatientProfile
	dietary *database.DietaryRecord
	ffq     *database.FFQResponse
}

// loadInputs fetches the profile, dietary recall, and FFQ in parallel.
// Profile is mandatory; the other two are nil when absent.
func loadInputs(ctx context.Context, userID string, dietaryRecordID *int32) (planInputs, error) {
	var in planInputs
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		profile, err := queries.GetPatientProfileByUserID(gctx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrProfileRequired
			}
			return err
		}
		in.profile = &profile
		return nil
	})
	g.Go(func() error {
		var record database.DietaryRecord
		var err error
		if dietaryRecordID != nil {
			record, err = queries.GetDietaryRecord(gctx, *dietaryRecordID, userID)
		} else {
			record, err = queries.LatestDietaryRecord(gctx, userID)
		}
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}
		in.dietary = &record
		return nil
	})
	g.Go(func() error {
		ffq, err := queries.LatestFFQResponse(gctx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}
		in.ffq = &ffq
		return nil
	})

	if err := g.Wait(); err != nil {
		return planInputs{}, err
	}
	return in, nil
}

// GenerateHandler creates and stores a new diet plan.
// POST /diet-plan/generate
func GenerateHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.Source == "" {
		req.Source = database.SourceRuleBased
	}
	switch req.Source {
	case database.SourceRuleBased, database.SourceMLModel, database.SourceCombined:
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "source must be rule_based, ml_model, or combined"})
	}

	in, err := loadInputs(c.Request().Context(), userID, req.DietaryRecordID)
	if err != nil {
		if errors.Is(err, ErrProfileRequired) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Patient profile required. Complete your profile at POST /patients/profile first.",
			})
		}
		log.Error().Err(err).Str("user_id", userID).Msg("failed to load plan inputs")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	inputs := Inputs{Profile: in.profile, Dietary: in.dietary, FFQ: in.ffq}
	var p database.DietPlan
	switch req.Source {
	case database.SourceRuleBased:
		p = BuildRulePlan(userID, inputs)
	case database.SourceMLModel:
		p = BuildMLPlan(userID, in.profile, predictor.Predict(in.profile, in.dietary))
	case database.SourceCombined:
		p = BuildCombinedPlan(userID, inputs, predictor.Predict(in.profile, in.dietary))
	}

	stored, err := queries.CreateDietPlan(c.Request().Context(), p)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to store diet plan")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusCreated, stored)
}

// CompareHandler generates and stores both a rule-based and an ML plan
// for the same patient and scores their agreement.
// GET /diet-plan/compare
func CompareHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	if !predictor.Ready() {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "ML model not available. Comparison requires trained model weights.",
		})
	}

	in, err := loadInputs(c.Request().Context(), userID, nil)
	if err != nil {
		if errors.Is(err, ErrProfileRequired) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Patient profile required. Complete your profile at POST /patients/profile first.",
			})
		}
		log.Error().Err(err).Str("user_id", userID).Msg("failed to load plan inputs")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	inputs := Inputs{Profile: in.profile, Dietary: in.dietary, FFQ: in.ffq}
	rulePlan := BuildRulePlan(userID, inputs)
	mlPlan := BuildMLPlan(userID, in.profile, predictor.Predict(in.profile, in.dietary))

	ctx := c.Request().Context()
	storedRule, err := queries.CreateDietPlan(ctx, rulePlan)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to store rule plan")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	storedML, err := queries.CreateDietPlan(ctx, mlPlan)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to store ml plan")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, Compare(in.profile, in.dietary, storedRule, storedML))
}

// HistoryHandler lists the caller's plans, newest first.
// GET /diet-plan/history
func HistoryHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	skip, limit := utility.PaginationParams(c, 20)
	plans, err := queries.ListDietPlans(c.Request().Context(), userID, skip, limit)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to list diet plans")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, plans)
}

// GetHandler fetches one plan owned by the caller.
// GET /diet-plan/:id
func GetHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid plan id"})
	}
	p, err := queries.GetDietPlan(c.Request().Context(), int32(id), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Diet plan not found"})
		}
		log.Error().Err(err).Str("user_id", userID).Msg("failed to fetch diet plan")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, p)
}
