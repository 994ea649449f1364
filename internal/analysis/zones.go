package analysis

import (
	"time"

	"github.com/jengzang/pace-analyzer/internal/track"
)

// zoneBand is one of the fixed heart-rate-reserve bands
type zoneBand struct {
	name        string
	description string
	lower       float64
	upper       float64
}

var zoneBands = []zoneBand{
	{"Recovery", "Very light intensity, active recovery, improves basic endurance", 0.30, 0.40},
	{"Aerobic", "Light aerobic, fat burning, builds endurance", 0.40, 0.60},
	{"Tempo", "Moderate intensity, improves efficiency and aerobic capacity", 0.60, 0.70},
	{"Threshold", "Hard intensity, increases lactate threshold and speed", 0.70, 0.85},
	{"VO2 Max", "Maximum effort, improves speed and power", 0.85, 1.00},
}

// AgePredictedMaxHR returns the 220-age estimate of maximum heart rate
func AgePredictedMaxHR(age int) int {
	return 220 - age
}

// trainingZones distributes heart-rate samples over the HRR bands. Each sample
// is credited with the time until the next sample; fallback covers the last
// sample and non-increasing timestamps. Returns nil without age, resting HR or
// samples.
func trainingZones(samples []track.HeartRateSample, athlete Athlete, fallback time.Duration) []TrainingZone {
	if len(samples) == 0 || athlete.Age <= 0 || athlete.RestingHR <= 0 {
		return nil
	}

	maxHR := AgePredictedMaxHR(athlete.Age)
	reserve := float64(maxHR - athlete.RestingHR)
	if reserve <= 0 {
		return nil
	}
	if fallback <= 0 {
		fallback = DefaultSampleInterval
	}

	rest := float64(athlete.RestingHR)
	zones := make([]TrainingZone, len(zoneBands))
	lows := make([]float64, len(zoneBands))
	highs := make([]float64, len(zoneBands))
	for i, b := range zoneBands {
		lows[i] = rest + b.lower*reserve
		highs[i] = rest + b.upper*reserve
		zones[i] = TrainingZone{
			Zone:        i + 1,
			Name:        b.name,
			Description: b.description,
			LowerFrac:   b.lower,
			UpperFrac:   b.upper,
			MinHR:       int(lows[i]),
			MaxHR:       int(highs[i]),
		}
	}

	counts := make([]int, len(zoneBands))
	seconds := make([]float64, len(zoneBands))
	for i, s := range samples {
		weight := fallback
		if i+1 < len(samples) {
			if gap := samples[i+1].Time.Sub(s.Time); gap > 0 {
				weight = gap
			}
		}

		hr := float64(s.BPM)
		for z := range zoneBands {
			if hr >= lows[z] && hr <= highs[z] {
				counts[z]++
				seconds[z] += weight.Seconds()
				break
			}
		}
	}

	for z := range zones {
		zones[z].TimeSpentMinutes = seconds[z] / 60
		zones[z].Percentage = float64(counts[z]) / float64(len(samples)) * 100
	}
	return zones
}
