package plan

import (
	"os"
	"path/filepath"
	"testing"

	"DiabetesDiet/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClassifier returns a fixed prediction.
type stubClassifier struct {
	ready bool
	pred  Prediction
	err   error
	seen  []float64
}

func (s *stubClassifier) Ready() bool { return s.ready }

func (s *stubClassifier) Predict(features []float64) (Prediction, error) {
	s.seen = features
	return s.pred, s.err
}

func TestFeatureVectorDefaults(t *testing.T) {
	p := &database.PatientProfile{Sex: database.SexFemale}
	v := FeatureVector(p, nil)

	require.Len(t, v, featureCount)
	assert.Equal(t, 45.0, v[0])  // age default
	assert.Equal(t, 0.0, v[1])   // female
	assert.Equal(t, 27.5, v[2])  // bmi
	assert.Equal(t, 82.0, v[3])  // waist, female default
	assert.Equal(t, 95.0, v[4])  // fasting glucose
	assert.Equal(t, 55.0, v[6])  // hdl, female default
	assert.Equal(t, 18.0, v[10]) // fiber
	assert.Equal(t, 2800.0, v[12])
	assert.Equal(t, 130.0, v[16]) // glycemic load
	assert.Equal(t, 12.0, v[17])  // eating window
	assert.Equal(t, 6.5, v[19])   // sleep

	male := &database.PatientProfile{Sex: database.SexMale}
	mv := FeatureVector(male, nil)
	assert.Equal(t, 1.0, mv[1])
	assert.Equal(t, 90.0, mv[3])
	assert.Equal(t, 45.0, mv[6])
}

func TestFeatureVectorObserved(t *testing.T) {
	p := &database.PatientProfile{
		Age:                             52,
		Sex:                             database.SexMale,
		Bmi:                             f64(31.2),
		WaistCircumferenceCm:            f64(104),
		FastingGlucoseMgDl:              f64(128),
		TriglyceridesMgDl:               f64(210),
		HdlCholesterolMgDl:              f64(38),
		BpSystolic:                      i32(142),
		BpDiastolic:                     i32(92),
		HsCrpMgL:                        f64(4.1),
		ActivityLevel:                   database.ActivityLight,
		SleepDurationHours:              f64(5.5),
		SmokingStatus:                   database.SmokingCurrent,
		MetabolicSyndromeComponentCount: i32(4),
	}
	d := &database.DietaryRecord{
		FiberG:                f64(12.5),
		AddedSugarG:           f64(62),
		SodiumMg:              f64(3400),
		Omega3G:               f64(0.4),
		UltraProcessedPercent: f64(48),
		FruitVegServings:      f64(1.5),
		GlycemicLoad:          f64(185),
		EatingWindowHours:     f64(14.5),
	}

	v := FeatureVector(p, d)
	require.Len(t, v, featureCount)
	assert.Equal(t, []float64{
		52, 1, 31.2, 104, 128, 210, 38, 142, 92, 4.1,
		12.5, 62, 3400, 0.4, 48, 1.5, 185, 14.5,
		1, 5.5, 2, 4,
	}, v)
}

func TestPredictorUnavailable(t *testing.T) {
	pr := NewPredictor(&stubClassifier{ready: false})
	out := pr.Predict(&database.PatientProfile{Sex: database.SexMale}, nil)

	assert.False(t, out.Available)
	assert.Nil(t, out.ConfidenceScore)
	assert.Nil(t, out.PredictedReduction)
	assert.Nil(t, out.RecommendedPlanType)
	assert.Nil(t, out.RiskCategory)
}

func TestPredictorOutcome(t *testing.T) {
	stub := &stubClassifier{
		ready: true,
		pred: Prediction{
			RiskCategory: "Severe",
			PlanType:     "Comprehensive_Metabolic",
			Confidence:   0.87654,
			RiskProbabilities: map[string]float64{
				"Low Risk": 0.01, "Mild": 0.02, "Moderate": 0.093, "Severe": 0.877,
			},
		},
	}
	pr := NewPredictor(stub)
	out := pr.Predict(&database.PatientProfile{Sex: database.SexFemale}, nil)

	require.True(t, out.Available)
	assert.Equal(t, 0.877, *out.ConfidenceScore)
	assert.Equal(t, 28.0, *out.PredictedReduction)
	assert.Equal(t, "Comprehensive_Metabolic", *out.RecommendedPlanType)
	assert.Equal(t, "Severe", *out.RiskCategory)
	assert.Len(t, stub.seen, featureCount)
}

func TestPredictorUnknownRiskFallback(t *testing.T) {
	stub := &stubClassifier{
		ready: true,
		pred:  Prediction{RiskCategory: "Exotic", PlanType: "General_Healthy", Confidence: 0.5},
	}
	out := NewPredictor(stub).Predict(&database.PatientProfile{Sex: database.SexMale}, nil)
	require.True(t, out.Available)
	assert.Equal(t, 15.0, *out.PredictedReduction)
}

func TestSoftmaxClassifier(t *testing.T) {
	// two features, two risk classes, two plan classes: weights chosen
	// so a high first feature predicts the second class of each head
	weights := `{
		"feature_columns": ["a", "b"],
		"mean": [0, 0], "scale": [1, 1],
		"risk_classes": ["Mild", "Severe"],
		"risk_coef": [[-1, 0], [1, 0]],
		"risk_intercept": [0, 0],
		"plan_classes": ["General_Healthy", "Comprehensive_Metabolic"],
		"plan_coef": [[-1, 0], [1, 0]],
		"plan_intercept": [0, 0]
	}`
	dir := t.TempDir()
	path := filepath.Join(dir, "weights.json")
	require.NoError(t, os.WriteFile(path, []byte(weights), 0o644))

	c := LoadClassifier(path)
	// width guard rejects a two-feature model in production use
	assert.False(t, c.Ready())

	_, err := c.Predict(onesVector())
	assert.ErrorIs(t, err, ErrModelNotLoaded)
}

func TestSoftmaxClassifierPredict(t *testing.T) {
	coef := func(w float64) []float64 {
		row := make([]float64, featureCount)
		row[0] = w // only age drives the toy model
		return row
	}
	m := modelFile{
		Mean:          make([]float64, featureCount),
		Scale:         onesVector(),
		RiskClasses:   []string{"Mild", "Severe"},
		RiskCoef:      [][]float64{coef(-1), coef(1)},
		RiskIntercept: []float64{0, 0},
		PlanClasses:   []string{"General_Healthy", "Comprehensive_Metabolic"},
		PlanCoef:      [][]float64{coef(-1), coef(1)},
		PlanIntercept: []float64{0, 0},
	}
	c := &SoftmaxClassifier{model: m}
	require.True(t, c.Ready())

	features := make([]float64, featureCount)
	features[0] = 5
	pred, err := c.Predict(features)
	require.NoError(t, err)
	assert.Equal(t, "Severe", pred.RiskCategory)
	assert.Equal(t, "Comprehensive_Metabolic", pred.PlanType)
	assert.Greater(t, pred.Confidence, 0.99)
	assert.InDelta(t, 1.0, pred.RiskProbabilities["Severe"]+pred.RiskProbabilities["Mild"], 0.01)

	features[0] = -5
	pred, err = c.Predict(features)
	require.NoError(t, err)
	assert.Equal(t, "Mild", pred.RiskCategory)

	_, err = c.Predict([]float64{1, 2})
	assert.Error(t, err)
}

func onesVector() []float64 {
	v := make([]float64, featureCount)
	for i := range v {
		v[i] = 1
	}
	return v
}

func TestLoadClassifierMissingFile(t *testing.T) {
	c := LoadClassifier(filepath.Join(t.TempDir(), "nope.json"))
	assert.False(t, c.Ready())

	_, err := c.Predict(make([]float64, featureCount))
	assert.Error(t, err)
}

func TestSoftmaxMath(t *testing.T) {
	probs := softmax([]float64{0, 0})
	assert.InDelta(t, 0.5, probs[0], 1e-9)
	assert.InDelta(t, 0.5, probs[1], 1e-9)

	probs = softmax([]float64{1000, 0}) // no overflow at large logits
	assert.InDelta(t, 1.0, probs[0], 1e-9)

	idx, best := argmax([]float64{0.1, 0.7, 0.2})
	assert.Equal(t, 1, idx)
	assert.Equal(t, 0.7, best)
}
