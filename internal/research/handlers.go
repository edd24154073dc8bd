// Package research serves the investigator dashboard: population
// statistics, the patient registry, per-patient drill-down, CSV exports
// for SPSS/R, and operational status endpoints. Every route requires
// the investigator or admin role.
package research

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"golang.org/x/sync/errgroup"

	"DiabetesDiet/internal/clinical"
	"DiabetesDiet/internal/database"
	"DiabetesDiet/internal/plan"
)

var (
	queries    *database.Queries
	classifier plan.Classifier
	startTime  = time.Now()
)

func InitResearch(dbpool *pgxpool.Pool, c plan.Classifier) {
	queries = database.New(dbpool)
	classifier = c
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// StatsHandler returns the flat population statistics response.
// GET /research/stats
func StatsHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		counts   database.PopulationCounts
		clinAvg  database.ClinicalAverages
		dietAvg  database.DietaryAverages
		riskDist map[string]int64
		disDist  map[string]int64
		planDist map[string]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { counts, err = queries.PopulationCounts(gctx); return })
	g.Go(func() (err error) { clinAvg, err = queries.ClinicalAverages(gctx); return })
	g.Go(func() (err error) { dietAvg, err = queries.DietaryAverages(gctx); return })
	g.Go(func() (err error) { riskDist, err = queries.RiskCategoryDistribution(gctx); return })
	g.Go(func() (err error) { disDist, err = queries.InflammatoryScoreDistribution(gctx); return })
	g.Go(func() (err error) { planDist, err = queries.PlanSourceDistribution(gctx); return })
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to compute population stats")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total_patients": counts.TotalProfiles,
		"total_recalls":  counts.TotalRecalls,
		"total_ffqs":     counts.TotalFFQs,
		"total_plans":    counts.TotalDietPlans,
		"ml_model_ready": classifier != nil && classifier.Ready(),

		"avg_bmi":             round1(orZero(clinAvg.AvgBmi)),
		"avg_fasting_glucose": round1(orZero(clinAvg.AvgGlucose)),
		"avg_triglycerides":   round1(orZero(clinAvg.AvgTriglycerides)),
		"avg_hdl":             round1(orZero(clinAvg.AvgHdl)),

		"avg_total_calories":          round1(orZero(dietAvg.AvgCalories)),
		"avg_fiber_g":                 round1(orZero(dietAvg.AvgFiber)),
		"avg_sodium_mg":               round1(orZero(dietAvg.AvgSodium)),
		"avg_ultra_processed_percent": round1(orZero(dietAvg.AvgUltraProcessed)),
		"avg_omega3_g":                round2(orZero(dietAvg.AvgOmega3)),
		"avg_glycemic_load":           round1(orZero(dietAvg.AvgGlycemicLoad)),
		"avg_fruit_veg_servings":      round1(orZero(dietAvg.AvgFruitVeg)),
		"avg_added_sugar_g":           round1(orZero(dietAvg.AvgAddedSugar)),
		"avg_diet_quality_score":      round1(orZero(dietAvg.AvgDietQuality)),

		"risk_distribution":        riskDist,
		"dis_distribution":         disDist,
		"plan_source_distribution": planDist,
	})
}

// PatientsHandler lists every enrolled patient with headline clinical
// data for the registry table.
// GET /research/patients
func PatientsHandler(c echo.Context) error {
	registry, err := queries.PatientRegistry(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load patient registry")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	out := make([]map[string]any, 0, len(registry))
	for _, r := range registry {
		var bmiCategory *string
		if r.WeightKg != nil && r.HeightCm != nil && *r.WeightKg > 0 && *r.HeightCm > 0 {
			cat := clinical.BMICategory(clinical.BMI(*r.WeightKg, *r.HeightCm))
			bmiCategory = &cat
		}
		out = append(out, map[string]any{
			"user_id":                       r.UserID,
			"full_name":                     r.FullName,
			"email":                         r.Email,
			"is_active":                     r.IsActive,
			"role":                          "patient",
			"enrolled_on":                   r.CreatedAt,
			"total_recalls":                 r.RecallCount,
			"total_plans":                   r.PlanCount,
			"bmi":                           r.Bmi,
			"bmi_category":                  bmiCategory,
			"fasting_glucose":               r.FastingGlucose,
			"risk_category":                 r.RiskCategory,
			"metabolic_syndrome_components": r.MsComponents,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// PatientSummaryHandler is the expanded registry row: the full clinical
// picture for one patient.
// GET /research/patients/:user_id/summary
func PatientSummaryHandler(c echo.Context) error {
	userID := c.Param("user_id")
	ctx := c.Request().Context()

	profile, err := queries.GetPatientProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "Patient has not completed their profile yet.",
			})
		}
		log.Error().Err(err).Str("user_id", userID).Msg("failed to fetch patient profile")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	recallCount, err := queries.CountDietaryRecords(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to count recalls")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	components := int32(0)
	if profile.MetabolicSyndromeComponentCount != nil {
		components = *profile.MetabolicSyndromeComponentCount
	}
	medications := profile.Medications
	if medications == nil {
		medications = []string{}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"user_id":                       userID,
		"age":                           profile.Age,
		"sex":                           profile.Sex,
		"weight_kg":                     profile.WeightKg,
		"height_cm":                     profile.HeightCm,
		"waist_circumference_cm":        profile.WaistCircumferenceCm,
		"bmi":                           profile.Bmi,
		"bmi_category":                  clinical.BMICategory(clinical.BMI(profile.WeightKg, profile.HeightCm)),
		"waist_height_ratio":            profile.WaistHeightRatio,
		"bp_systolic":                   profile.BpSystolic,
		"bp_diastolic":                  profile.BpDiastolic,
		"fasting_glucose_mg_dl":         profile.FastingGlucoseMgDl,
		"triglycerides_mg_dl":           profile.TriglyceridesMgDl,
		"hdl_cholesterol_mg_dl":         profile.HdlCholesterolMgDl,
		"hs_crp_mg_l":                   profile.HsCrpMgL,
		"metabolic_syndrome_components": components,
		"metabolic_syndrome_present":    clinical.MetabolicSyndromePresent(components),
		"metabolic_risk_score":          profile.MetabolicRiskScore,
		"metabolic_risk_category":       profile.MetabolicRiskCategory,
		"estimated_calorie_req":         profile.EstimatedCalorieReq,
		"calorie_deficit":               profile.CalorieDeficit,
		"activity_level":                profile.ActivityLevel,
		"sleep_duration_hours":          profile.SleepDurationHours,
		"smoking_status":                profile.SmokingStatus,
		"medications":                   medications,
		"total_recalls":                 recallCount,
	})
}

// PatientRecallsHandler returns every recall with food items for one
// patient, newest first.
// GET /research/patients/:user_id/recalls
func PatientRecallsHandler(c echo.Context) error {
	userID := c.Param("user_id")
	ctx := c.Request().Context()

	user, err := queries.GetUserByID(ctx, userID)
	if err != nil || user.Role != database.RolePatient {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Patient not found."})
	}

	records, err := queries.ListDietaryRecords(ctx, userID, 0, 365)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to list patient recalls")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	out := make([]map[string]any, 0, len(records))
	for _, r := range records {
		items, err := queries.ListFoodItems(ctx, r.ID)
		if err != nil {
			log.Error().Err(err).Int32("record_id", r.ID).Msg("failed to list food items")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		if items == nil {
			items = []database.DietaryFoodItem{}
		}
		out = append(out, map[string]any{
			"id":                         r.ID,
			"recall_date":                r.RecallDate.Format("2006-01-02"),
			"total_calories":             r.TotalCalories,
			"carb_percent":               r.CarbPercent,
			"protein_percent":            r.ProteinPercent,
			"fat_percent":                r.FatPercent,
			"fiber_g":                    r.FiberG,
			"sodium_mg":                  r.SodiumMg,
			"added_sugar_g":              r.AddedSugarG,
			"omega3_g":                   r.Omega3G,
			"ultra_processed_percent":    r.UltraProcessedPercent,
			"glycemic_load":              r.GlycemicLoad,
			"fruit_veg_servings":         r.FruitVegServings,
			"dietary_inflammatory_score": r.DietaryInflammatoryScore,
			"chrononutrition_score":      r.ChrononutritionScore,
			"diet_quality_score":         r.DietQualityScore,
			"eating_window_hours":        r.EatingWindowHours,
			"skipped_breakfast":          r.SkippedBreakfast,
			"late_night_eating":          r.LateNightEating,
			"food_items":                 items,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// PatientPlansHandler returns every diet plan for one patient, newest
// first.
// GET /research/patients/:user_id/plans
func PatientPlansHandler(c echo.Context) error {
	userID := c.Param("user_id")
	ctx := c.Request().Context()

	user, err := queries.GetUserByID(ctx, userID)
	if err != nil || user.Role != database.RolePatient {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Patient not found."})
	}

	plans, err := queries.ListDietPlans(ctx, userID, 0, 100)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to list patient plans")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if plans == nil {
		plans = []database.DietPlan{}
	}
	return c.JSON(http.StatusOK, plans)
}

// ModelPerformanceHandler reports classifier status and plan-level
// aggregates for the research dashboard.
// GET /research/model-performance
func ModelPerformanceHandler(c echo.Context) error {
	perf, err := queries.ModelPerformance(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to compute model performance")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	ready := classifier != nil && classifier.Ready()
	return c.JSON(http.StatusOK, map[string]any{
		"risk_model_loaded":            ready,
		"plan_model_loaded":            ready,
		"ml_plans_generated":           perf.MLPlansGenerated,
		"plans_with_ml_annotations":    perf.PlansWithML,
		"avg_ml_confidence":            round3(orZero(perf.AvgConfidence)),
		"avg_predicted_risk_reduction": round1(orZero(perf.AvgRiskReduction)),
	})
}

// SystemInfoHandler returns host-level runtime metrics.
// GET /research/system-info
func SystemInfoHandler(c echo.Context) error {
	v, _ := mem.VirtualMemory()
	cpuPercent, _ := cpu.Percent(time.Second, false)
	d, _ := disk.Usage("/")
	hInfo, _ := host.Info()

	cpuUsage := 0.0
	if len(cpuPercent) > 0 {
		cpuUsage = cpuPercent[0]
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status": "online",
		"runtime": map[string]any{
			"uptime":     time.Since(startTime).String(),
			"start_time": startTime.Format(time.RFC3339),
			"os":         hInfo.OS,
			"platform":   hInfo.Platform,
			"arch":       hInfo.KernelArch,
			"hostname":   hInfo.Hostname,
		},
		"cpu": map[string]any{
			"usage_percent": fmt.Sprintf("%.2f%%", cpuUsage),
			"cores":         hInfo.Procs,
		},
		"memory": map[string]any{
			"total_gb":     fmt.Sprintf("%.2f GB", float64(v.Total)/1024/1024/1024),
			"used_gb":      fmt.Sprintf("%.2f GB", float64(v.Used)/1024/1024/1024),
			"used_percent": fmt.Sprintf("%.2f%%", v.UsedPercent),
			"free_gb":      fmt.Sprintf("%.2f GB", float64(v.Free)/1024/1024/1024),
		},
		"disk": map[string]any{
			"total_gb":     fmt.Sprintf("%.2f GB", float64(d.Total)/1024/1024/1024),
			"used_gb":      fmt.Sprintf("%.2f GB", float64(d.Used)/1024/1024/1024),
			"used_percent": fmt.Sprintf("%.2f%%", d.UsedPercent),
		},
	})
}
