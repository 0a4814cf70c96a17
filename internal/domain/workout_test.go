package domain

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

var testCoords = Coords{Lat: 10, Lng: 20}

func TestNewRunning_DerivesPace(t *testing.T) {
	w, err := NewRunning("r1", testNow, testCoords, 5, 25, 178)
	require.NoError(t, err)

	assert.Equal(t, KindRunning, w.Kind)
	require.NotNil(t, w.Running)
	assert.Nil(t, w.Cycling)
	assert.InDelta(t, 5.0, w.Running.PaceMinPerKm, 1e-9)
	assert.Equal(t, 178.0, w.Running.CadenceSpm)
	assert.Equal(t, 0, w.VisitCount)
	assert.Equal(t, "Running on June 15", w.Description)
	assert.True(t, strings.HasSuffix(w.Description, "June 15"))
}

func TestNewCycling_DerivesSpeed(t *testing.T) {
	w, err := NewCycling("c1", testNow, testCoords, 20, 60, 500)
	require.NoError(t, err)

	assert.Equal(t, KindCycling, w.Kind)
	require.NotNil(t, w.Cycling)
	assert.Nil(t, w.Running)
	assert.InDelta(t, 20.0, w.Cycling.SpeedKmh, 1e-9)
	assert.Equal(t, 500.0, w.Cycling.ElevationGainM)
	assert.Equal(t, "Cycling on June 15", w.Description)
}

func TestDerivedMetrics_Property(t *testing.T) {
	cases := []struct{ dist, dur float64 }{
		{0.1, 1}, {1, 1}, {3.7, 19.2}, {42.195, 180.5}, {160, 300}, {1e-3, 1e3},
	}
	for _, tc := range cases {
		r, err := NewRunning("r", testNow, testCoords, tc.dist, tc.dur, 170)
		require.NoError(t, err)
		assert.InDelta(t, tc.dur/tc.dist, r.Running.PaceMinPerKm, 1e-9, "pace for %+v", tc)

		c, err := NewCycling("c", testNow, testCoords, tc.dist, tc.dur, 0)
		require.NoError(t, err)
		assert.InDelta(t, tc.dist/(tc.dur/60), c.Cycling.SpeedKmh, 1e-9, "speed for %+v", tc)
	}
}

func TestNewRunning_ZeroDistanceRejected(t *testing.T) {
	w, err := NewRunning("r1", testNow, testCoords, 0, 25, 178)
	require.Error(t, err)
	assert.Nil(t, w)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "distance", verr.Field)
}

func TestNewRunning_RejectsNonPositiveOrNonFinite(t *testing.T) {
	cases := []struct {
		name               string
		dist, dur, cadence float64
		field              string
	}{
		{"negative duration", 5, -1, 178, "duration"},
		{"zero cadence", 5, 25, 0, "cadence"},
		{"NaN distance", math.NaN(), 25, 178, "distance"},
		{"Inf duration", 5, math.Inf(1), 178, "duration"},
		{"NaN cadence", 5, 25, math.NaN(), "cadence"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRunning("r", testNow, testCoords, tc.dist, tc.dur, tc.cadence)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestNewCycling_NegativeElevationAccepted(t *testing.T) {
	w, err := NewCycling("c1", testNow, testCoords, 20, 60, -120)
	require.NoError(t, err)
	assert.Equal(t, -120.0, w.Cycling.ElevationGainM)
}

func TestNewCycling_NonFiniteElevationRejected(t *testing.T) {
	_, err := NewCycling("c1", testNow, testCoords, 20, 60, math.Inf(-1))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "elevation", verr.Field)
}

func TestNewCycling_ZeroDurationRejected(t *testing.T) {
	_, err := NewCycling("c1", testNow, testCoords, 20, 0, 100)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "duration", verr.Field)
	assert.Contains(t, err.Error(), "greater than zero")
}

func TestNewRunning_InvalidCoordsRejected(t *testing.T) {
	_, err := NewRunning("r1", testNow, Coords{Lat: 91, Lng: 0}, 5, 25, 178)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "latitude", verr.Field)
}

func TestDescribe_AllMonthsNoLeadingZero(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		d := Describe(KindCycling, time.Date(2024, m, 3, 12, 0, 0, 0, time.UTC))
		assert.Equal(t, "Cycling on "+months[m-1]+" 3", d)
	}
}

func TestDescribe_UsesTimestampLocation(t *testing.T) {
	// 23:30 UTC on Jan 31 is already Feb 1 in UTC+2.
	east := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2024, time.January, 31, 23, 30, 0, 0, time.UTC).In(east)
	assert.Equal(t, "Running on February 1", Describe(KindRunning, ts))
}

func TestVisit_Increments(t *testing.T) {
	w, err := NewRunning("r1", testNow, testCoords, 5, 25, 178)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		w.Visit()
	}
	assert.Equal(t, 3, w.VisitCount)
	assert.InDelta(t, 5.0, w.Running.PaceMinPerKm, 1e-9, "derived metric must not change")
}

func TestMetrics_DispatchOnKind(t *testing.T) {
	r, _ := NewRunning("r", testNow, testCoords, 5, 25, 178)
	c, _ := NewCycling("c", testNow, testCoords, 20, 60, 500)

	assert.Equal(t, Metric{Value: 5, Unit: "min/km"}, r.PrimaryMetric())
	assert.Equal(t, Metric{Value: 178, Unit: "spm"}, r.SecondaryMetric())
	assert.Equal(t, Metric{Value: 20, Unit: "km/h"}, c.PrimaryMetric())
	assert.Equal(t, Metric{Value: 500, Unit: "m"}, c.SecondaryMetric())
}

func TestClone_IsDeep(t *testing.T) {
	w, _ := NewRunning("r", testNow, testCoords, 5, 25, 178)
	c := w.Clone()
	c.Visit()
	c.Running.CadenceSpm = 1

	assert.Equal(t, 0, w.VisitCount)
	assert.Equal(t, 178.0, w.Running.CadenceSpm)
}

func TestDisplayID(t *testing.T) {
	w := &Workout{ID: "0190a5b2-7c3e-7d41-9a6b-1f2e3d4c5b6a"}
	assert.Equal(t, "3d4c5b6a", w.DisplayID())
	assert.Equal(t, "abc", (&Workout{ID: "abc"}).DisplayID())
}

func TestTimeOrderedIDs_UniqueAndSortable(t *testing.T) {
	gen := TimeOrderedIDs{}
	seen := make(map[string]bool)
	var prev string
	for i := 0; i < 500; i++ {
		id := gen.NewID()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		if prev != "" {
			assert.GreaterOrEqual(t, id[:13], prev[:13], "timestamp prefix must not go backwards")
		}
		prev = id
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Running ")
	require.NoError(t, err)
	assert.Equal(t, KindRunning, k)

	k, err = ParseKind("CYCLING")
	require.NoError(t, err)
	assert.Equal(t, KindCycling, k)

	_, err = ParseKind("swimming")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "swimming")
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "Running", KindRunning.Label())
	assert.Equal(t, "Cycling", KindCycling.Label())
}
