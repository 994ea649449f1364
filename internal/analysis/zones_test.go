package analysis

import (
	"testing"
	"time"

	"github.com/jengzang/pace-analyzer/internal/track"
)

func TestTrainingZonesDistribution(t *testing.T) {
	athlete := Athlete{Age: 30, RestingHR: 60}
	// max 190, reserve 130
	samples := []track.HeartRateSample{
		{Time: t0, BPM: 125},                       // 50% HRR, Aerobic
		{Time: t0.Add(10 * time.Second), BPM: 177}, // 90% HRR, VO2 Max
		{Time: t0.Add(20 * time.Second), BPM: 70},  // below every zone
	}

	zones := trainingZones(samples, athlete, time.Second)
	if len(zones) != 5 {
		t.Fatalf("expected 5 zones, got %d", len(zones))
	}

	if zones[0].Name != "Recovery" || zones[4].Name != "VO2 Max" {
		t.Errorf("zones out of order: %s .. %s", zones[0].Name, zones[4].Name)
	}
	if zones[1].MinHR != 112 || zones[1].MaxHR != 138 {
		t.Errorf("unexpected aerobic bounds %d-%d", zones[1].MinHR, zones[1].MaxHR)
	}

	if !approx(zones[1].TimeSpentMinutes, 10.0/60) {
		t.Errorf("aerobic time: expected 10s, got %v min", zones[1].TimeSpentMinutes)
	}
	if !approx(zones[4].TimeSpentMinutes, 10.0/60) {
		t.Errorf("vo2 time: expected 10s, got %v min", zones[4].TimeSpentMinutes)
	}
	if !approx(zones[1].Percentage, 100.0/3) || !approx(zones[4].Percentage, 100.0/3) {
		t.Errorf("unexpected percentages %v, %v", zones[1].Percentage, zones[4].Percentage)
	}
	if zones[0].Percentage != 0 || zones[2].Percentage != 0 || zones[3].Percentage != 0 {
		t.Errorf("unpopulated zones should be zero")
	}
}

func TestTrainingZonesFallbackInterval(t *testing.T) {
	athlete := Athlete{Age: 30, RestingHR: 60}
	samples := []track.HeartRateSample{
		{Time: t0, BPM: 125},
		{Time: t0, BPM: 125}, // same timestamp
	}
	zones := trainingZones(samples, athlete, 2*time.Second)
	if !approx(zones[1].TimeSpentMinutes, 4.0/60) {
		t.Fatalf("expected two fallback intervals of 2s, got %v min", zones[1].TimeSpentMinutes)
	}
}

func TestTrainingZonesMissingInputs(t *testing.T) {
	samples := []track.HeartRateSample{{Time: t0, BPM: 150}}

	cases := []struct {
		name    string
		athlete Athlete
		samples []track.HeartRateSample
	}{
		{"no age", Athlete{RestingHR: 60}, samples},
		{"no resting hr", Athlete{Age: 30}, samples},
		{"no samples", Athlete{Age: 30, RestingHR: 60}, nil},
		{"resting above max", Athlete{Age: 100, RestingHR: 130}, samples},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if zones := trainingZones(tc.samples, tc.athlete, time.Second); zones != nil {
				t.Fatalf("expected nil zones, got %v", zones)
			}
		})
	}
}
