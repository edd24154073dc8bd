package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog/log"

	"DiabetesDiet/internal/database"
)

// featureCount is the fixed width of the classifier input vector.
const featureCount = 22

// ErrModelNotLoaded is returned when a prediction is requested before
// (or without) classifier weights being loaded.
var ErrModelNotLoaded = errors.New("classifier weights not loaded")

// Prediction is one classifier inference.
type Prediction struct {
	RiskCategory      string
	PlanType          string
	Confidence        float64
	RiskProbabilities map[string]float64
}

// Classifier scores a standardised clinical feature vector.
type Classifier interface {
	Ready() bool
	Predict(features []float64) (Prediction, error)
}

// modelFile is the on-disk weights format exported by the training
// pipeline: standardisation parameters plus two multinomial logistic
// heads (risk category and plan type).
type modelFile struct {
	FeatureColumns []string    `json:"feature_columns"`
	Mean           []float64   `json:"mean"`
	Scale          []float64   `json:"scale"`
	RiskClasses    []string    `json:"risk_classes"`
	RiskCoef       [][]float64 `json:"risk_coef"`
	RiskIntercept  []float64   `json:"risk_intercept"`
	PlanClasses    []string    `json:"plan_classes"`
	PlanCoef       [][]float64 `json:"plan_coef"`
	PlanIntercept  []float64   `json:"plan_intercept"`
}

// SoftmaxClassifier runs the exported logistic regression heads.
type SoftmaxClassifier struct {
	model modelFile
}

// LoadClassifier reads the weights file. A missing file is not an
// error: the service runs with predictions marked unavailable.
func LoadClassifier(path string) *SoftmaxClassifier {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).
			Msg("model weights not found, ML predictions unavailable")
		return &SoftmaxClassifier{}
	}
	var m modelFile
	if err := json.Unmarshal(data, &m); err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to parse model weights")
		return &SoftmaxClassifier{}
	}
	if len(m.Mean) != featureCount || len(m.Scale) != featureCount {
		log.Error().Int("mean", len(m.Mean)).Int("scale", len(m.Scale)).
			Msg("model weights have wrong feature width")
		return &SoftmaxClassifier{}
	}
	log.Info().Str("path", path).Int("risk_classes", len(m.RiskClasses)).
		Int("plan_classes", len(m.PlanClasses)).Msg("classifier weights loaded")
	return &SoftmaxClassifier{model: m}
}

func (c *SoftmaxClassifier) Ready() bool {
	return len(c.model.RiskClasses) > 0 && len(c.model.PlanClasses) > 0
}

func (c *SoftmaxClassifier) Predict(features []float64) (Prediction, error) {
	if !c.Ready() {
		return Prediction{}, ErrModelNotLoaded
	}
	if len(features) != featureCount {
		return Prediction{}, fmt.Errorf("expected %d features, got %d", featureCount, len(features))
	}

	scaled := make([]float64, featureCount)
	for i, v := range features {
		s := c.model.Scale[i]
		if s == 0 {
			s = 1
		}
		scaled[i] = (v - c.model.Mean[i]) / s
	}

	riskProbs := softmax(logits(scaled, c.model.RiskCoef, c.model.RiskIntercept))
	planProbs := softmax(logits(scaled, c.model.PlanCoef, c.model.PlanIntercept))

	riskIdx, riskMax := argmax(riskProbs)
	planIdx, _ := argmax(planProbs)

	probs := make(map[string]float64, len(c.model.RiskClasses))
	for i, cls := range c.model.RiskClasses {
		probs[cls] = round3(riskProbs[i])
	}

	return Prediction{
		RiskCategory:      c.model.RiskClasses[riskIdx],
		PlanType:          c.model.PlanClasses[planIdx],
		Confidence:        riskMax,
		RiskProbabilities: probs,
	}, nil
}

func logits(x []float64, coef [][]float64, intercept []float64) []float64 {
	out := make([]float64, len(coef))
	for k, row := range coef {
		z := 0.0
		if k < len(intercept) {
			z = intercept[k]
		}
		for i := range x {
			if i < len(row) {
				z += row[i] * x[i]
			}
		}
		out[k] = z
	}
	return out
}

func softmax(z []float64) []float64 {
	max := math.Inf(-1)
	for _, v := range z {
		if v > max {
			max = v
		}
	}
	out := make([]float64, len(z))
	sum := 0.0
	for i, v := range z {
		out[i] = math.Exp(v - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func argmax(v []float64) (int, float64) {
	idx, best := 0, math.Inf(-1)
	for i, x := range v {
		if x > best {
			idx, best = i, x
		}
	}
	return idx, best
}

// MLOutcome is the predictor output attached to ML and combined plans.
// All pointer fields are nil when the classifier is unavailable.
type MLOutcome struct {
	Available           bool
	ConfidenceScore     *float64
	PredictedReduction  *float64
	RecommendedPlanType *string
	RiskCategory        *string
	RiskProbabilities   map[string]float64
}

// Estimated risk reduction per predicted category, percent.
var riskReduction = map[string]float64{
	"Low Risk": 5.0,
	"Mild":     12.0,
	"Moderate": 20.0,
	"Severe":   28.0,
}

// Predictor adapts the classifier to patient data.
type Predictor struct {
	classifier Classifier
}

func NewPredictor(c Classifier) *Predictor {
	return &Predictor{classifier: c}
}

func (pr *Predictor) Ready() bool {
	return pr.classifier != nil && pr.classifier.Ready()
}

// FeatureVector builds the classifier input from a profile and an
// optional dietary record, substituting population defaults for any
// missing value. Ordering must match the training feature columns.
func FeatureVector(p *database.PatientProfile, d *database.DietaryRecord) []float64 {
	sexEnc := 0.0
	if p.Sex == database.SexMale {
		sexEnc = 1.0
	}
	activityEnc := map[database.ActivityLevel]float64{
		database.ActivitySedentary:  0,
		database.ActivityLight:      1,
		database.ActivityModerate:   2,
		database.ActivityActive:     3,
		database.ActivityVeryActive: 4,
	}[p.ActivityLevel]
	smokingEnc := map[database.SmokingStatus]float64{
		database.SmokingNever:   0,
		database.SmokingFormer:  1,
		database.SmokingCurrent: 2,
	}[p.SmokingStatus]

	waistDefault := 82.0
	hdlDefault := 55.0
	if sexEnc == 1 {
		waistDefault = 90.0
		hdlDefault = 45.0
	}
	msComponents := 0.0
	if p.MetabolicSyndromeComponentCount != nil {
		msComponents = float64(*p.MetabolicSyndromeComponentCount)
	}

	dietaryOr := func(v *float64, def float64) float64 {
		if d == nil || v == nil {
			return def
		}
		return *v
	}
	var fiberG, addedSugarG, sodiumMg, omega3G, ultraPct, fvServings, gl, eatingWindow *float64
	if d != nil {
		fiberG, addedSugarG, sodiumMg = d.FiberG, d.AddedSugarG, d.SodiumMg
		omega3G, ultraPct, fvServings = d.Omega3G, d.UltraProcessedPercent, d.FruitVegServings
		gl, eatingWindow = d.GlycemicLoad, d.EatingWindowHours
	}

	age := float64(p.Age)
	if age == 0 {
		age = 45
	}

	return []float64{
		age,
		sexEnc,
		orDefault(p.Bmi, 27.5),
		orDefault(p.WaistCircumferenceCm, waistDefault),
		orDefault(p.FastingGlucoseMgDl, 95),
		orDefault(p.TriglyceridesMgDl, 140),
		orDefault(p.HdlCholesterolMgDl, hdlDefault),
		orDefaultInt(p.BpSystolic, 120),
		orDefaultInt(p.BpDiastolic, 80),
		orDefault(p.HsCrpMgL, 1.5),
		dietaryOr(fiberG, 18.0),
		dietaryOr(addedSugarG, 35.0),
		dietaryOr(sodiumMg, 2800.0),
		dietaryOr(omega3G, 1.0),
		dietaryOr(ultraPct, 35.0),
		dietaryOr(fvServings, 3.0),
		dietaryOr(gl, 130.0),
		dietaryOr(eatingWindow, 12.0),
		activityEnc,
		orDefault(p.SleepDurationHours, 6.5),
		smokingEnc,
		msComponents,
	}
}

// Predict runs the classifier for a patient. Never fails: an
// unavailable or erroring classifier yields Available=false.
func (pr *Predictor) Predict(p *database.PatientProfile, d *database.DietaryRecord) MLOutcome {
	if !pr.Ready() {
		return MLOutcome{}
	}
	pred, err := pr.classifier.Predict(FeatureVector(p, d))
	if err != nil {
		log.Error().Err(err).Str("user_id", p.UserID).Msg("model prediction failed")
		return MLOutcome{}
	}

	reduction, ok := riskReduction[pred.RiskCategory]
	if !ok {
		reduction = 15.0
	}
	confidence := round3(pred.Confidence)
	reduction = round1(reduction)

	return MLOutcome{
		Available:           true,
		ConfidenceScore:     &confidence,
		PredictedReduction:  &reduction,
		RecommendedPlanType: &pred.PlanType,
		RiskCategory:        &pred.RiskCategory,
		RiskProbabilities:   pred.RiskProbabilities,
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func orDefaultInt(v *int32, def float64) float64 {
	if v == nil {
		return def
	}
	return float64(*v)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
