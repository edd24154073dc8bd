package research

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"DiabetesDiet/internal/clinical"
	"DiabetesDiet/internal/database"
)

// Column order is pinned: downstream SPSS/R scripts read by position.
var patientExportHeader = []string{
	"patient_id", "age", "sex", "weight_kg", "height_cm", "waist_cm",
	"bmi", "bmi_category", "waist_height_ratio",
	"bp_systolic", "bp_diastolic",
	"fasting_glucose", "triglycerides", "hdl", "hs_crp",
	"metabolic_syndrome_components", "metabolic_syndrome_present",
	"metabolic_risk_score", "metabolic_risk_category",
	"estimated_calorie_req", "calorie_deficit",
	"activity_level", "sleep_hours", "smoking_status",
}

var dietaryExportHeader = []string{
	"recall_date", "total_calories", "carb_pct", "protein_pct", "fat_pct",
	"fiber_g", "added_sugar_g", "sodium_mg", "omega3_g",
	"ultra_processed_pct", "glycemic_load", "fruit_veg_servings",
	"dietary_inflammatory_score", "diet_quality_score",
	"eating_window_hours", "skipped_breakfast", "late_night_eating",
}

func csvFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func csvInt(v *int32) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(int64(*v), 10)
}

func csvString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func csvBool01(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func profileExportRow(p database.PatientProfile) []string {
	bmiCategory := ""
	if p.WeightKg > 0 && p.HeightCm > 0 {
		bmiCategory = clinical.BMICategory(clinical.BMI(p.WeightKg, p.HeightCm))
	}
	msPresent := "0"
	if p.MetabolicSyndromeComponentCount != nil && *p.MetabolicSyndromeComponentCount >= 3 {
		msPresent = "1"
	}
	return []string{
		p.UserID,
		strconv.FormatInt(int64(p.Age), 10),
		string(p.Sex),
		strconv.FormatFloat(p.WeightKg, 'f', -1, 64),
		strconv.FormatFloat(p.HeightCm, 'f', -1, 64),
		csvFloat(p.WaistCircumferenceCm),
		csvFloat(p.Bmi),
		bmiCategory,
		csvFloat(p.WaistHeightRatio),
		csvInt(p.BpSystolic),
		csvInt(p.BpDiastolic),
		csvFloat(p.FastingGlucoseMgDl),
		csvFloat(p.TriglyceridesMgDl),
		csvFloat(p.HdlCholesterolMgDl),
		csvFloat(p.HsCrpMgL),
		csvInt(p.MetabolicSyndromeComponentCount),
		msPresent,
		csvInt(p.MetabolicRiskScore),
		csvString(p.MetabolicRiskCategory),
		csvFloat(p.EstimatedCalorieReq),
		csvFloat(p.CalorieDeficit),
		string(p.ActivityLevel),
		csvFloat(p.SleepDurationHours),
		string(p.SmokingStatus),
	}
}

// patientExportCells assembles one export row; the dietary columns are
// blank when the patient has never submitted a recall.
func patientExportCells(p database.ProfileWithLatestRecord, includeDietary bool) []string {
	row := profileExportRow(p.Profile)
	if !includeDietary {
		return row
	}
	cells := make([]string, len(dietaryExportHeader))
	if p.LatestRecord != nil {
		cells = recordExportRow(*p.LatestRecord)
	}
	return append(row, cells...)
}

func recordExportRow(r database.DietaryRecord) []string {
	return []string{
		r.RecallDate.Format("2006-01-02"),
		csvFloat(r.TotalCalories),
		csvFloat(r.CarbPercent),
		csvFloat(r.ProteinPercent),
		csvFloat(r.FatPercent),
		csvFloat(r.FiberG),
		csvFloat(r.AddedSugarG),
		csvFloat(r.SodiumMg),
		csvFloat(r.Omega3G),
		csvFloat(r.UltraProcessedPercent),
		csvFloat(r.GlycemicLoad),
		csvFloat(r.FruitVegServings),
		csvString(r.DietaryInflammatoryScore),
		csvFloat(r.DietQualityScore),
		csvFloat(r.EatingWindowHours),
		csvBool01(r.SkippedBreakfast),
		csvBool01(r.LateNightEating),
	}
}

// ExportPatientsHandler streams the full patient dataset as CSV, one
// row per profile, optionally joined with the most recent recall.
// GET /research/export/patients?include_dietary=true
func ExportPatientsHandler(c echo.Context) error {
	includeDietary := c.QueryParam("include_dietary") != "false"
	ctx := c.Request().Context()

	profiles, err := queries.ListProfilesWithLatestRecord(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list profiles for export")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := patientExportHeader
	if includeDietary {
		header = append(append([]string{}, header...), dietaryExportHeader...)
	}
	if err := w.Write(header); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	for _, p := range profiles {
		if err := w.Write(patientExportCells(p, includeDietary)); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Error().Err(err).Msg("csv write failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=patient_data.csv`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// ExportDietaryTimeseriesHandler streams all recalls (optionally
// filtered by patient and date range) ordered by patient then date.
// GET /research/export/dietary-timeseries
func ExportDietaryTimeseriesHandler(c echo.Context) error {
	filter := database.DietaryRecordFilter{UserID: c.QueryParam("patient_id")}
	if v := c.QueryParam("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "start_date must be YYYY-MM-DD"})
		}
		filter.StartDate = &t
	}
	if v := c.QueryParam("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "end_date must be YYYY-MM-DD"})
		}
		filter.EndDate = &t
	}

	records, err := queries.ListAllDietaryRecords(c.Request().Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list recalls for export")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := append([]string{"patient_id"}, dietaryExportHeader...)
	if err := w.Write(header); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	for _, r := range records {
		if err := w.Write(append([]string{r.UserID}, recordExportRow(r)...)); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Error().Err(err).Msg("csv write failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=dietary_timeseries.csv`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
