package database

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Aggregate queries backing the investigator endpoints. Averages come
// back as NULL when no rows qualify, hence the pointer fields.

type PopulationCounts struct {
	TotalPatients  int64
	TotalProfiles  int64
	TotalRecalls   int64
	TotalFFQs      int64
	TotalDietPlans int64
}

const populationCounts = `
SELECT
	(SELECT count(*) FROM users WHERE role = 'patient'),
	(SELECT count(*) FROM patient_profiles),
	(SELECT count(*) FROM dietary_records),
	(SELECT count(*) FROM ffq_responses),
	(SELECT count(*) FROM diet_plans)
`

func (q *Queries) PopulationCounts(ctx context.Context) (PopulationCounts, error) {
	var c PopulationCounts
	err := q.db.QueryRow(ctx, populationCounts).Scan(
		&c.TotalPatients, &c.TotalProfiles, &c.TotalRecalls, &c.TotalFFQs, &c.TotalDietPlans)
	return c, err
}

const riskCategoryDistribution = `
SELECT metabolic_risk_category, count(*) FROM patient_profiles
WHERE metabolic_risk_category IS NOT NULL GROUP BY 1
`

func (q *Queries) RiskCategoryDistribution(ctx context.Context) (map[string]int64, error) {
	rows, err := q.db.Query(ctx, riskCategoryDistribution)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	dist := make(map[string]int64)
	for rows.Next() {
		var category string
		var n int64
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		dist[category] = n
	}
	return dist, rows.Err()
}

type ClinicalAverages struct {
	AvgBmi           *float64
	AvgWaist         *float64
	AvgGlucose       *float64
	AvgTriglycerides *float64
	AvgHdl           *float64
	AvgMsComponents  *float64
}

const clinicalAverages = `
SELECT avg(bmi), avg(waist_circumference_cm), avg(fasting_glucose_mg_dl),
	avg(triglycerides_mg_dl), avg(hdl_cholesterol_mg_dl),
	avg(metabolic_syndrome_component_count)
FROM patient_profiles
`

func (q *Queries) ClinicalAverages(ctx context.Context) (ClinicalAverages, error) {
	var a ClinicalAverages
	err := q.db.QueryRow(ctx, clinicalAverages).Scan(
		&a.AvgBmi, &a.AvgWaist, &a.AvgGlucose, &a.AvgTriglycerides, &a.AvgHdl, &a.AvgMsComponents)
	return a, err
}

type DietaryAverages struct {
	AvgCalories       *float64
	AvgFiber          *float64
	AvgSodium         *float64
	AvgAddedSugar     *float64
	AvgOmega3         *float64
	AvgUltraProcessed *float64
	AvgGlycemicLoad   *float64
	AvgFruitVeg       *float64
	AvgDietQuality    *float64
	AvgChrono         *float64
	AvgEatingWindow   *float64
}

const dietaryAverages = `
SELECT avg(total_calories), avg(fiber_g), avg(sodium_mg), avg(added_sugar_g),
	avg(omega3_g), avg(ultra_processed_percent), avg(glycemic_load),
	avg(fruit_veg_servings), avg(diet_quality_score),
	avg(chrononutrition_score), avg(eating_window_hours)
FROM dietary_records
`

func (q *Queries) DietaryAverages(ctx context.Context) (DietaryAverages, error) {
	var a DietaryAverages
	err := q.db.QueryRow(ctx, dietaryAverages).Scan(
		&a.AvgCalories, &a.AvgFiber, &a.AvgSodium, &a.AvgAddedSugar,
		&a.AvgOmega3, &a.AvgUltraProcessed, &a.AvgGlycemicLoad,
		&a.AvgFruitVeg, &a.AvgDietQuality, &a.AvgChrono, &a.AvgEatingWindow)
	return a, err
}

const inflammatoryScoreDistribution = `
SELECT dietary_inflammatory_score, count(*) FROM dietary_records
WHERE dietary_inflammatory_score IS NOT NULL GROUP BY 1
`

func (q *Queries) InflammatoryScoreDistribution(ctx context.Context) (map[string]int64, error) {
	rows, err := q.db.Query(ctx, inflammatoryScoreDistribution)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	dist := make(map[string]int64)
	for rows.Next() {
		var score string
		var n int64
		if err := rows.Scan(&score, &n); err != nil {
			return nil, err
		}
		dist[score] = n
	}
	return dist, rows.Err()
}

const planSourceDistribution = `
SELECT source, count(*) FROM diet_plans GROUP BY 1
`

func (q *Queries) PlanSourceDistribution(ctx context.Context) (map[string]int64, error) {
	rows, err := q.db.Query(ctx, planSourceDistribution)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	dist := make(map[string]int64)
	for rows.Next() {
		var source string
		var n int64
		if err := rows.Scan(&source, &n); err != nil {
			return nil, err
		}
		dist[source] = n
	}
	return dist, rows.Err()
}

type ModelPerformance struct {
	MLPlansGenerated int64
	PlansWithML      int64
	AvgConfidence    *float64
	AvgRiskReduction *float64
}

const modelPerformance = `
SELECT count(*) FILTER (WHERE source = 'ml_model'),
	count(*) FILTER (WHERE ml_confidence_score IS NOT NULL),
	avg(ml_confidence_score), avg(ml_predicted_risk_reduction)
FROM diet_plans
`

func (q *Queries) ModelPerformance(ctx context.Context) (ModelPerformance, error) {
	var m ModelPerformance
	err := q.db.QueryRow(ctx, modelPerformance).Scan(
		&m.MLPlansGenerated, &m.PlansWithML, &m.AvgConfidence, &m.AvgRiskReduction)
	return m, err
}

type PatientRegistryRow struct {
	UserID         string
	FullName       string
	Email          string
	IsActive       bool
	CreatedAt      string
	RecallCount    int64
	PlanCount      int64
	WeightKg       *float64
	HeightCm       *float64
	Bmi            *float64
	FastingGlucose *float64
	RiskCategory   *string
	MsComponents   *int32
}

const patientRegistry = `
SELECT u.user_id, u.full_name, u.email, u.is_active, to_char(u.created_at, 'YYYY-MM-DD'),
	(SELECT count(*) FROM dietary_records d WHERE d.user_id = u.user_id),
	(SELECT count(*) FROM diet_plans p WHERE p.user_id = u.user_id),
	pp.weight_kg, pp.height_cm, pp.bmi, pp.fasting_glucose_mg_dl,
	pp.metabolic_risk_category, pp.metabolic_syndrome_component_count
FROM users u
LEFT JOIN patient_profiles pp ON pp.user_id = u.user_id
WHERE u.role = 'patient'
ORDER BY u.created_at DESC
`

func (q *Queries) PatientRegistry(ctx context.Context) ([]PatientRegistryRow, error) {
	rows, err := q.db.Query(ctx, patientRegistry)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var registry []PatientRegistryRow
	for rows.Next() {
		var r PatientRegistryRow
		if err := rows.Scan(&r.UserID, &r.FullName, &r.Email, &r.IsActive, &r.CreatedAt,
			&r.RecallCount, &r.PlanCount, &r.WeightKg, &r.HeightCm, &r.Bmi,
			&r.FastingGlucose, &r.RiskCategory, &r.MsComponents); err != nil {
			return nil, err
		}
		registry = append(registry, r)
	}
	return registry, rows.Err()
}

// DietaryRecordFilter narrows the cross-patient record listing; zero
// values mean no filter.
type DietaryRecordFilter struct {
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
}

func (q *Queries) ListAllDietaryRecords(ctx context.Context, f DietaryRecordFilter) ([]DietaryRecord, error) {
	sql := "SELECT " + recordColumns + " FROM dietary_records"
	var conds []string
	var args []any
	if f.UserID != "" {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		conds = append(conds, fmt.Sprintf("recall_date >= $%d", len(args)))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		conds = append(conds, fmt.Sprintf("recall_date <= $%d", len(args)))
	}
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY user_id, recall_date"

	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []DietaryRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

const countDietaryRecords = `
SELECT count(*) FROM dietary_records WHERE user_id = $1
`

func (q *Queries) CountDietaryRecords(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countDietaryRecords, userID).Scan(&n)
	return n, err
}

// ProfileWithLatestRecord pairs a profile with the patient's most
// recent dietary recall, nil when they have none.
type ProfileWithLatestRecord struct {
	Profile      PatientProfile
	LatestRecord *DietaryRecord
}

// qualify prefixes every column in a comma-separated list with a table
// alias so shared names (id, user_id, created_at) stay unambiguous in
// joins.
func qualify(alias, cols string) string {
	parts := strings.Split(cols, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

var listProfilesWithLatestRecord = `
SELECT ` + qualify("pp", profileColumns) + `, ` + qualify("dr", recordColumns) + `
FROM patient_profiles pp
LEFT JOIN LATERAL (
	SELECT ` + recordColumns + ` FROM dietary_records
	WHERE user_id = pp.user_id
	ORDER BY recall_date DESC, id DESC
	LIMIT 1
) dr ON TRUE
ORDER BY pp.created_at DESC
`

// ListProfilesWithLatestRecord backs the patient CSV export in a single
// round trip instead of one latest-recall query per profile.
func (q *Queries) ListProfilesWithLatestRecord(ctx context.Context) ([]ProfileWithLatestRecord, error) {
	rows, err := q.db.Query(ctx, listProfilesWithLatestRecord)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProfileWithLatestRecord
	for rows.Next() {
		var (
			p PatientProfile
			r DietaryRecord

			// NOT NULL record columns become nullable under the left join
			recID      *int32
			recUserID  *string
			recDate    *time.Time
			skipped    *bool
			lateNight  *bool
			recCreated *time.Time
		)
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Age, &p.Sex, &p.WeightKg, &p.HeightCm, &p.WaistCircumferenceCm,
			&p.BpSystolic, &p.BpDiastolic, &p.FastingGlucoseMgDl, &p.TriglyceridesMgDl, &p.HdlCholesterolMgDl,
			&p.HsCrpMgL, &p.Medications, &p.ActivityLevel, &p.SleepDurationHours, &p.SmokingStatus,
			&p.Bmi, &p.WaistHeightRatio, &p.MetabolicSyndromeComponentCount, &p.EstimatedCalorieReq,
			&p.CalorieDeficit, &p.MetabolicRiskScore, &p.MetabolicRiskCategory, &p.CreatedAt, &p.UpdatedAt,
			&recID, &recUserID, &recDate, &r.EatingWindowStart, &r.EatingWindowEnd,
			&r.EatingWindowHours, &skipped, &lateNight, &r.TotalCalories, &r.CarbPercent,
			&r.ProteinPercent, &r.FatPercent, &r.SaturatedFatG, &r.TransFatG, &r.FiberG, &r.AddedSugarG,
			&r.SodiumMg, &r.Omega3G, &r.UltraProcessedPercent, &r.GlycemicLoad, &r.FruitVegServings,
			&r.DietaryInflammatoryScore, &r.ChrononutritionScore, &r.DietQualityScore, &recCreated,
		)
		if err != nil {
			return nil, err
		}

		row := ProfileWithLatestRecord{Profile: p}
		if recID != nil {
			r.ID = *recID
			r.UserID = *recUserID
			r.RecallDate = *recDate
			r.SkippedBreakfast = *skipped
			r.LateNightEating = *lateNight
			r.CreatedAt = *recCreated
			row.LatestRecord = &r
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
