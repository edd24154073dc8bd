package goals

import (
	"testing"

	"DiabetesDiet/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestProgressLowerIsBetter(t *testing.T) {
	// weight 80 -> target 70: 87.5% of the way by the relative formula
	p := Progress("weight", f64(80), 70)
	require.NotNil(t, p)
	assert.InDelta(t, 87.5, *p, 0.01)

	// already past the target clamps at 100
	p = Progress("bmi", f64(24), 25)
	require.NotNil(t, p)
	assert.Equal(t, 100.0, *p)
}

func TestProgressHDLHigherIsBetter(t *testing.T) {
	p := Progress("hdl", f64(40), 50)
	require.NotNil(t, p)
	assert.InDelta(t, 80.0, *p, 0.01)

	p = Progress("hdl", f64(60), 50)
	require.NotNil(t, p)
	assert.Equal(t, 100.0, *p)
}

func TestProgressUnknownInputs(t *testing.T) {
	assert.Nil(t, Progress("weight", nil, 70))
	assert.Nil(t, Progress("weight", f64(0), 70))
	assert.Nil(t, Progress("weight", f64(80), 0))
	assert.Nil(t, Progress("steps", f64(80), 70))
}

func TestCurrentValueFor(t *testing.T) {
	profile := &database.PatientProfile{
		WeightKg:           82.5,
		Bmi:                f64(27.1),
		FastingGlucoseMgDl: f64(104),
		TriglyceridesMgDl:  f64(160),
		HdlCholesterolMgDl: f64(42),
	}
	assert.Equal(t, 82.5, *currentValueFor("weight", profile))
	assert.Equal(t, 27.1, *currentValueFor("bmi", profile))
	assert.Equal(t, 104.0, *currentValueFor("glucose", profile))
	assert.Equal(t, 160.0, *currentValueFor("triglycerides", profile))
	assert.Equal(t, 42.0, *currentValueFor("hdl", profile))
	assert.Nil(t, currentValueFor("bmi", nil))
	assert.Nil(t, currentValueFor("unknown", profile))
}
