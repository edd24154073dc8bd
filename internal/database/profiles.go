package database

import (
	"context"
)

const profileColumns = `id, user_id, age, sex, weight_kg, height_cm, waist_circumference_cm,
bp_systolic, bp_diastolic, fasting_glucose_mg_dl, triglycerides_mg_dl, hdl_cholesterol_mg_dl,
hs_crp_mg_l, medications, activity_level, sleep_duration_hours, smoking_status,
bmi, waist_height_ratio, metabolic_syndrome_component_count, estimated_calorie_req,
calorie_deficit, metabolic_risk_score, metabolic_risk_category, created_at, updated_at`

func scanProfile(row interface{ Scan(dest ...any) error }) (PatientProfile, error) {
	var p PatientProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Age, &p.Sex, &p.WeightKg, &p.HeightCm, &p.WaistCircumferenceCm,
		&p.BpSystolic, &p.BpDiastolic, &p.FastingGlucoseMgDl, &p.TriglyceridesMgDl, &p.HdlCholesterolMgDl,
		&p.HsCrpMgL, &p.Medications, &p.ActivityLevel, &p.SleepDurationHours, &p.SmokingStatus,
		&p.Bmi, &p.WaistHeightRatio, &p.MetabolicSyndromeComponentCount, &p.EstimatedCalorieReq,
		&p.CalorieDeficit, &p.MetabolicRiskScore, &p.MetabolicRiskCategory, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

const createPatientProfile = `
INSERT INTO patient_profiles (
	user_id, age, sex, weight_kg, height_cm, waist_circumference_cm,
	bp_systolic, bp_diastolic, fasting_glucose_mg_dl, triglycerides_mg_dl,
	hdl_cholesterol_mg_dl, hs_crp_mg_l, medications, activity_level,
	sleep_duration_hours, smoking_status,
	bmi, waist_height_ratio, metabolic_syndrome_component_count,
	estimated_calorie_req, calorie_deficit, metabolic_risk_score, metabolic_risk_category
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
RETURNING ` + profileColumns

func (q *Queries) CreatePatientProfile(ctx context.Context, p PatientProfile) (PatientProfile, error) {
	row := q.db.QueryRow(ctx, createPatientProfile,
		p.UserID, p.Age, p.Sex, p.WeightKg, p.HeightCm, p.WaistCircumferenceCm,
		p.BpSystolic, p.BpDiastolic, p.FastingGlucoseMgDl, p.TriglyceridesMgDl,
		p.HdlCholesterolMgDl, p.HsCrpMgL, p.Medications, p.ActivityLevel,
		p.SleepDurationHours, p.SmokingStatus,
		p.Bmi, p.WaistHeightRatio, p.MetabolicSyndromeComponentCount,
		p.EstimatedCalorieReq, p.CalorieDeficit, p.MetabolicRiskScore, p.MetabolicRiskCategory,
	)
	return scanProfile(row)
}

const updatePatientProfile = `
UPDATE patient_profiles SET
	age = $2, sex = $3, weight_kg = $4, height_cm = $5, waist_circumference_cm = $6,
	bp_systolic = $7, bp_diastolic = $8, fasting_glucose_mg_dl = $9, triglycerides_mg_dl = $10,
	hdl_cholesterol_mg_dl = $11, hs_crp_mg_l = $12, medications = $13, activity_level = $14,
	sleep_duration_hours = $15, smoking_status = $16,
	bmi = $17, waist_height_ratio = $18, metabolic_syndrome_component_count = $19,
	estimated_calorie_req = $20, calorie_deficit = $21, metabolic_risk_score = $22,
	metabolic_risk_category = $23, updated_at = now()
WHERE user_id = $1
RETURNING ` + profileColumns

func (q *Queries) UpdatePatientProfile(ctx context.Context, p PatientProfile) (PatientProfile, error) {
	row := q.db.QueryRow(ctx, updatePatientProfile,
		p.UserID, p.Age, p.Sex, p.WeightKg, p.HeightCm, p.WaistCircumferenceCm,
		p.BpSystolic, p.BpDiastolic, p.FastingGlucoseMgDl, p.TriglyceridesMgDl,
		p.HdlCholesterolMgDl, p.HsCrpMgL, p.Medications, p.ActivityLevel,
		p.SleepDurationHours, p.SmokingStatus,
		p.Bmi, p.WaistHeightRatio, p.MetabolicSyndromeComponentCount,
		p.EstimatedCalorieReq, p.CalorieDeficit, p.MetabolicRiskScore, p.MetabolicRiskCategory,
	)
	return scanProfile(row)
}

const getPatientProfileByUserID = `
SELECT ` + profileColumns + ` FROM patient_profiles WHERE user_id = $1
`

func (q *Queries) GetPatientProfileByUserID(ctx context.Context, userID string) (PatientProfile, error) {
	return scanProfile(q.db.QueryRow(ctx, getPatientProfileByUserID, userID))
}
