package analysis

import (
	"math"

	"github.com/jengzang/pace-analyzer/internal/spatial"
	"github.com/jengzang/pace-analyzer/internal/stats"
)

// paceBand multiplies either the average or the best fast pace
type paceBand struct {
	name        string
	description string
	fromBest    bool
	low, high   float64
}

var paceBands = []paceBand{
	{"Recovery", "Very easy running, for recovery days", false, 1.4, 1.5},
	{"Easy", "Comfortable pace for building endurance", false, 1.2, 1.3},
	{"Long Run", "Slightly faster than easy pace", false, 1.1, 1.2},
	{"Tempo", "Comfortably hard, sustainable for 20-40 minutes", true, 1.05, 1.1},
	{"Interval", "Fast pace for short intervals", true, 0.9, 0.95},
}

// raceDistances are evaluated by predictRaceTimes, in kilometers
var raceDistances = []struct {
	name string
	km   float64
}{
	{"5k", 5},
	{"10k", 10},
	{"21.1k", 21.1},
	{"42.2k", 42.2},
}

const (
	riegelExponent = 1.06
	riegelBaseKm   = 5.0
)

// fastPaces returns the finite, positive paces of the given segments
func fastPaces(segments []Segment) []float64 {
	paces := make([]float64, 0, len(segments))
	for _, s := range segments {
		paces = append(paces, float64(s.Pace))
	}
	return stats.FinitePositive(paces)
}

// paceRecommendations derives training pace bands from fast-segment paces
func paceRecommendations(paces []float64) []PaceRecommendation {
	if len(paces) == 0 {
		return nil
	}

	avg := stats.Mean(paces)
	best := stats.Min(paces)

	recs := make([]PaceRecommendation, len(paceBands))
	for i, b := range paceBands {
		base := avg
		if b.fromBest {
			base = best
		}
		recs[i] = PaceRecommendation{
			Name:        b.name,
			Description: b.description,
			MinPace:     base * b.low,
			MaxPace:     base * b.high,
		}
	}
	return recs
}

// predictRaceTimes applies the Riegel formula to the best fast pace, taking
// best pace × 5 as the base time
func predictRaceTimes(paces []float64) []RacePrediction {
	if len(paces) == 0 {
		return nil
	}

	baseTime := stats.Min(paces) * riegelBaseKm
	predictions := make([]RacePrediction, len(raceDistances))
	for i, d := range raceDistances {
		predictions[i] = RacePrediction{
			Name:        d.name,
			DistanceKm:  d.km,
			TimeMinutes: baseTime * math.Pow(d.km/riegelBaseKm, riegelExponent),
		}
	}
	return predictions
}

// estimateVO2Max uses 15.3 × maxHR/restingHR, adjusted for the run's speed
func estimateVO2Max(athlete Athlete, maxHR int, durationMinutes, distanceMiles float64) *float64 {
	if athlete.Age <= 0 || athlete.WeightKg <= 0 || athlete.RestingHR <= 0 ||
		maxHR <= 0 || durationMinutes <= 0 || distanceMiles <= 0 {
		return nil
	}

	vo2max := 15.3 * (float64(maxHR) / float64(athlete.RestingHR))

	paceKm := durationMinutes / spatial.MilesToKm(distanceMiles)
	switch {
	case paceKm < 4.5:
		vo2max *= 1.15
	case paceKm < 5.5:
		vo2max *= 1.05
	}

	v := math.Round(vo2max*10) / 10
	return &v
}

// trainingLoad computes the Banister TRIMP
func trainingLoad(durationMinutes, avgHR float64, maxHR, restingHR int) *float64 {
	if durationMinutes <= 0 || avgHR <= 0 || maxHR <= 0 || restingHR <= 0 || maxHR <= restingHR {
		return nil
	}

	hrrRatio := (avgHR - float64(restingHR)) / float64(maxHR-restingHR)
	load := durationMinutes * avgHR * 0.64 * math.Exp(1.92*hrrRatio)
	return &load
}

// recoveryTime converts training load into hours, longer for older runners
// and higher resting heart rates
func recoveryTime(load *float64, restingHR, age int) *float64 {
	if load == nil || *load <= 0 || restingHR <= 0 || age <= 0 {
		return nil
	}

	ageFactor := 1 + math.Max(0, float64(age-30)*0.02)
	hrFactor := 1 + math.Max(0, float64(restingHR-60)*0.01)
	hours := *load * 0.2 * ageFactor * hrFactor
	return &hours
}
