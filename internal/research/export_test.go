package research

import (
	"testing"
	"time"

	"DiabetesDiet/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }
func i32(v int32) *int32     { return &v }
func str(v string) *string   { return &v }

func TestProfileExportRow(t *testing.T) {
	p := database.PatientProfile{
		UserID:                          "abc-123",
		Age:                             48,
		Sex:                             database.SexFemale,
		WeightKg:                        72.5,
		HeightCm:                        160,
		WaistCircumferenceCm:            f64(88),
		BpSystolic:                      i32(134),
		BpDiastolic:                     i32(86),
		FastingGlucoseMgDl:              f64(112),
		TriglyceridesMgDl:               f64(168),
		HdlCholesterolMgDl:              f64(46),
		ActivityLevel:                   database.ActivityLight,
		SmokingStatus:                   database.SmokingNever,
		Bmi:                             f64(28.32),
		WaistHeightRatio:                f64(0.55),
		MetabolicSyndromeComponentCount: i32(4),
		MetabolicRiskScore:              i32(4),
		MetabolicRiskCategory:           str("Severe"),
		EstimatedCalorieReq:             f64(1890),
		CalorieDeficit:                  f64(1390),
	}

	row := profileExportRow(p)
	require.Len(t, row, len(patientExportHeader))
	assert.Equal(t, "abc-123", row[0])
	assert.Equal(t, "48", row[1])
	assert.Equal(t, "female", row[2])
	assert.Equal(t, "72.5", row[3])
	assert.Equal(t, "88", row[5])
	assert.Equal(t, "28.32", row[6])
	assert.Equal(t, "Overweight", row[7])
	assert.Equal(t, "4", row[15])
	assert.Equal(t, "1", row[16]) // metabolic syndrome present
	assert.Equal(t, "Severe", row[18])
	assert.Equal(t, "light", row[21])
	assert.Equal(t, "", row[22]) // sleep hours unknown
}

func TestProfileExportRowMissingOptionalFields(t *testing.T) {
	p := database.PatientProfile{
		UserID: "u", Age: 30, Sex: database.SexMale,
		WeightKg: 70, HeightCm: 175,
		ActivityLevel: database.ActivityModerate,
		SmokingStatus: database.SmokingNever,
	}
	row := profileExportRow(p)
	require.Len(t, row, len(patientExportHeader))
	assert.Equal(t, "", row[5])  // waist
	assert.Equal(t, "0", row[16]) // no MS components recorded
	assert.Equal(t, "", row[18]) // risk category
}

func TestPatientExportCells(t *testing.T) {
	p := database.ProfileWithLatestRecord{
		Profile: database.PatientProfile{
			UserID: "u-1", Age: 55, Sex: database.SexMale,
			WeightKg: 90, HeightCm: 178,
			ActivityLevel: database.ActivitySedentary,
			SmokingStatus: database.SmokingFormer,
		},
	}

	row := patientExportCells(p, false)
	assert.Len(t, row, len(patientExportHeader))

	row = patientExportCells(p, true)
	require.Len(t, row, len(patientExportHeader)+len(dietaryExportHeader))
	for _, cell := range row[len(patientExportHeader):] {
		assert.Equal(t, "", cell) // no completed recall yet
	}

	p.LatestRecord = &database.DietaryRecord{
		RecallDate:      time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		TotalCalories:   f64(2210),
		LateNightEating: true,
	}
	row = patientExportCells(p, true)
	require.Len(t, row, len(patientExportHeader)+len(dietaryExportHeader))
	assert.Equal(t, "u-1", row[0])
	dietary := row[len(patientExportHeader):]
	assert.Equal(t, "2026-05-02", dietary[0])
	assert.Equal(t, "2210", dietary[1])
	assert.Equal(t, "1", dietary[16])
}

func TestRecordExportRow(t *testing.T) {
	r := database.DietaryRecord{
		RecallDate:               time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		TotalCalories:            f64(1843.5),
		CarbPercent:              f64(51.2),
		FiberG:                   f64(19.4),
		DietaryInflammatoryScore: str(database.DISNeutral),
		SkippedBreakfast:         true,
	}
	row := recordExportRow(r)
	require.Len(t, row, len(dietaryExportHeader))
	assert.Equal(t, "2026-03-14", row[0])
	assert.Equal(t, "1843.5", row[1])
	assert.Equal(t, "51.2", row[2])
	assert.Equal(t, "", row[3]) // protein missing
	assert.Equal(t, "Neutral", row[12])
	assert.Equal(t, "1", row[15])
	assert.Equal(t, "0", row[16])
}
