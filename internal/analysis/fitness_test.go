package analysis

import (
	"math"
	"testing"

	"github.com/jengzang/pace-analyzer/internal/spatial"
)

func TestPredictRaceTimesRiegel(t *testing.T) {
	predictions := predictRaceTimes([]float64{7.2, 6.0, 6.5})
	if len(predictions) != 4 {
		t.Fatalf("expected 4 predictions, got %d", len(predictions))
	}

	want := (6.0 * 5) * math.Pow(10.0/5, 1.06)
	tenK := predictions[1]
	if tenK.Name != "10k" {
		t.Fatalf("expected 10k second, got %s", tenK.Name)
	}
	if tenK.TimeMinutes != want {
		t.Errorf("expected %v, got %v", want, tenK.TimeMinutes)
	}
	if predictions[0].TimeMinutes != 30 {
		t.Errorf("5k prediction should equal the base time, got %v", predictions[0].TimeMinutes)
	}
	if predictions[3].Name != "42.2k" {
		t.Errorf("unexpected last prediction %s", predictions[3].Name)
	}
}

func TestPredictRaceTimesNoPaces(t *testing.T) {
	if got := predictRaceTimes(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestPaceRecommendations(t *testing.T) {
	recs := paceRecommendations([]float64{8, 10})
	if len(recs) != 5 {
		t.Fatalf("expected 5 bands, got %d", len(recs))
	}

	recovery := recs[0]
	if recovery.Name != "Recovery" || !approx(recovery.MinPace, 9*1.4) || !approx(recovery.MaxPace, 9*1.5) {
		t.Errorf("unexpected recovery band %+v", recovery)
	}
	interval := recs[4]
	if interval.Name != "Interval" || !approx(interval.MinPace, 8*0.9) || !approx(interval.MaxPace, 8*0.95) {
		t.Errorf("unexpected interval band %+v", interval)
	}

	if got := paceRecommendations(nil); got != nil {
		t.Errorf("expected nil without paces, got %v", got)
	}
}

func TestFastPacesExcludesInfinite(t *testing.T) {
	segments := []Segment{{Pace: 8}, {Pace: InfinitePace}, {Pace: 7}}
	paces := fastPaces(segments)
	if len(paces) != 2 {
		t.Fatalf("expected 2 finite paces, got %v", paces)
	}
}

func TestEstimateVO2Max(t *testing.T) {
	athlete := Athlete{Age: 35, RestingHR: 60, WeightKg: 70}
	distance := 5 / spatial.KmPerMile

	// 6:00 per km, no speed adjustment
	v := estimateVO2Max(athlete, 180, 30, distance)
	if v == nil || *v != 45.9 {
		t.Fatalf("expected 45.9, got %v", v)
	}

	fast := Athlete{Age: 35, RestingHR: 50, WeightKg: 70}

	// 4:00 per km
	v = estimateVO2Max(fast, 200, 20, distance)
	if v == nil || *v != 70.4 {
		t.Fatalf("expected 70.4, got %v", v)
	}

	// 5:00 per km
	v = estimateVO2Max(fast, 200, 25, distance)
	if v == nil || *v != 64.3 {
		t.Fatalf("expected 64.3, got %v", v)
	}
}

func TestEstimateVO2MaxMissingInputs(t *testing.T) {
	if v := estimateVO2Max(Athlete{Age: 0, RestingHR: 60, WeightKg: 70}, 180, 30, 3); v != nil {
		t.Errorf("age 0 should yield nil, got %v", *v)
	}
	if v := estimateVO2Max(Athlete{Age: 30, RestingHR: 60, WeightKg: 0}, 180, 30, 3); v != nil {
		t.Errorf("weight 0 should yield nil, got %v", *v)
	}
	if v := estimateVO2Max(Athlete{Age: 30, RestingHR: 0, WeightKg: 70}, 180, 30, 3); v != nil {
		t.Errorf("resting hr 0 should yield nil, got %v", *v)
	}
	if v := estimateVO2Max(Athlete{Age: 30, RestingHR: 60, WeightKg: 70}, 180, 0, 0); v != nil {
		t.Errorf("no duration should yield nil, got %v", *v)
	}
}

func TestTrainingLoad(t *testing.T) {
	load := trainingLoad(60, 150, 190, 60)
	if load == nil {
		t.Fatalf("expected a training load")
	}
	ratio := (150.0 - 60) / (190 - 60)
	want := 60 * 150 * 0.64 * math.Exp(1.92*ratio)
	if !approx(*load, want) {
		t.Fatalf("expected %v, got %v", want, *load)
	}

	if trainingLoad(60, 150, 190, 0) != nil {
		t.Errorf("missing resting hr should yield nil")
	}
	if trainingLoad(60, 150, 60, 60) != nil {
		t.Errorf("max hr equal to resting hr should yield nil")
	}
}

func TestRecoveryTime(t *testing.T) {
	load := 100.0
	hours := recoveryTime(&load, 70, 40)
	if hours == nil || !approx(*hours, 100*0.2*1.2*1.1) {
		t.Fatalf("unexpected recovery time %v", hours)
	}

	young := recoveryTime(&load, 50, 25)
	if young == nil || !approx(*young, 20) {
		t.Fatalf("factors must not drop below 1, got %v", young)
	}

	if recoveryTime(nil, 60, 30) != nil {
		t.Errorf("nil load should yield nil")
	}
	if recoveryTime(&load, 60, 0) != nil {
		t.Errorf("missing age should yield nil")
	}
}
