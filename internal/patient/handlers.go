// Package patient exposes the clinical profile endpoints. Every write
// recomputes the derived anthropometric block before storage.
package patient

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"DiabetesDiet/internal/clinical"
	"DiabetesDiet/internal/database"
	"DiabetesDiet/internal/utility"
)

var queries *database.Queries

func InitPatients(dbpool *pgxpool.Pool) {
	queries = database.New(dbpool)
}

// ProfileRequest is the clinical intake payload.
type ProfileRequest struct {
	Age                  int32                  `json:"age"`
	Sex                  database.Sex           `json:"sex"`
	WeightKg             float64                `json:"weight_kg"`
	HeightCm             float64                `json:"height_cm"`
	WaistCircumferenceCm *float64               `json:"waist_circumference_cm"`
	BpSystolic           *int32                 `json:"bp_systolic"`
	BpDiastolic          *int32                 `json:"bp_diastolic"`
	FastingGlucoseMgDl   *float64               `json:"fasting_glucose_mg_dl"`
	TriglyceridesMgDl    *float64               `json:"triglycerides_mg_dl"`
	HdlCholesterolMgDl   *float64               `json:"hdl_cholesterol_mg_dl"`
	HsCrpMgL             *float64               `json:"hs_crp_mg_l"`
	Medications          []string               `json:"medications"`
	ActivityLevel        database.ActivityLevel `json:"activity_level"`
	SleepDurationHours   *float64               `json:"sleep_duration_hours"`
	SmokingStatus        database.SmokingStatus `json:"smoking_status"`
}

func (r *ProfileRequest) validate() string {
	if r.Age < 18 || r.Age > 120 {
		return "age must be between 18 and 120"
	}
	switch r.Sex {
	case database.SexMale, database.SexFemale, database.SexOther:
	default:
		return "sex must be male, female, or other"
	}
	if r.WeightKg < 20 || r.WeightKg > 400 {
		return "weight_kg must be between 20 and 400"
	}
	if r.HeightCm < 100 || r.HeightCm > 250 {
		return "height_cm must be between 100 and 250"
	}
	switch r.ActivityLevel {
	case database.ActivitySedentary, database.ActivityLight, database.ActivityModerate,
		database.ActivityActive, database.ActivityVeryActive:
	default:
		return "activity_level must be sedentary, light, moderate, active, or very_active"
	}
	switch r.SmokingStatus {
	case database.SmokingNever, database.SmokingFormer, database.SmokingCurrent:
	default:
		return "smoking_status must be never, former, or current"
	}
	return ""
}

func (r *ProfileRequest) apply(p *database.PatientProfile) {
	p.Age = r.Age
	p.Sex = r.Sex
	p.WeightKg = r.WeightKg
	p.HeightCm = r.HeightCm
	p.WaistCircumferenceCm = r.WaistCircumferenceCm
	p.BpSystolic = r.BpSystolic
	p.BpDiastolic = r.BpDiastolic
	p.FastingGlucoseMgDl = r.FastingGlucoseMgDl
	p.TriglyceridesMgDl = r.TriglyceridesMgDl
	p.HdlCholesterolMgDl = r.HdlCholesterolMgDl
	p.HsCrpMgL = r.HsCrpMgL
	p.Medications = r.Medications
	p.ActivityLevel = r.ActivityLevel
	p.SleepDurationHours = r.SleepDurationHours
	p.SmokingStatus = r.SmokingStatus
}

// CreateProfileHandler stores a new profile with its derived metrics.
// POST /patients/profile
func CreateProfileHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}

	ctx := c.Request().Context()
	if _, err := queries.GetPatientProfileByUserID(ctx, userID); err == nil {
		return c.JSON(http.StatusConflict, map[string]string{
			"error": "Profile already exists. Use PUT /patients/profile to update.",
		})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to check existing profile")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	profile := database.PatientProfile{UserID: userID}
	req.apply(&profile)
	clinical.Recompute(&profile)

	stored, err := queries.CreatePatientProfile(ctx, profile)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to create profile")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusCreated, stored)
}

// GetProfileHandler returns the caller's profile.
// GET /patients/profile
func GetProfileHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	profile, err := queries.GetPatientProfileByUserID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "Profile not found. Create it first via POST.",
			})
		}
		log.Error().Err(err).Str("user_id", userID).Msg("failed to fetch profile")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfileHandler replaces the intake fields and recomputes the
// derived block.
// PUT /patients/profile
func UpdateProfileHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}

	ctx := c.Request().Context()
	profile, err := queries.GetPatientProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Profile not found"})
		}
		log.Error().Err(err).Str("user_id", userID).Msg("failed to fetch profile")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	req.apply(&profile)
	clinical.Recompute(&profile)

	stored, err := queries.UpdatePatientProfile(ctx, profile)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to update profile")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, stored)
}

// SummaryHandler returns the anthropometric and metabolic risk summary.
// GET /patients/profile/summary
func SummaryHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	profile, err := queries.GetPatientProfileByUserID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Profile not found"})
		}
		log.Error().Err(err).Str("user_id", userID).Msg("failed to fetch profile")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	components := int32(0)
	if profile.MetabolicSyndromeComponentCount != nil {
		components = *profile.MetabolicSyndromeComponentCount
	}
	riskCategory := "Not calculated"
	if profile.MetabolicRiskCategory != nil {
		riskCategory = *profile.MetabolicRiskCategory
	}

	return c.JSON(http.StatusOK, map[string]any{
		"bmi":                           profile.Bmi,
		"bmi_category":                  clinical.BMICategory(clinical.BMI(profile.WeightKg, profile.HeightCm)),
		"waist_height_ratio":            profile.WaistHeightRatio,
		"metabolic_syndrome_components": components,
		"metabolic_syndrome_present":    clinical.MetabolicSyndromePresent(components),
		"estimated_calorie_req":         profile.EstimatedCalorieReq,
		"calorie_deficit":               profile.CalorieDeficit,
		"metabolic_risk_score":          profile.MetabolicRiskScore,
		"metabolic_risk_category":       riskCategory,
	})
}
