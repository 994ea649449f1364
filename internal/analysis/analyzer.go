package analysis

import (
	"fmt"
	"math"

	"github.com/jengzang/pace-analyzer/internal/stats"
	"github.com/jengzang/pace-analyzer/internal/track"
)

// Analyze parses a GPX document and runs the full pipeline.
// It fails with track.ErrEmptyTrack, track.ErrMalformedTrack or ErrInvalidPaceLimit.
func Analyze(data []byte, params Params) (*Result, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	trk, err := track.Load(data, params.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to load track: %w", err)
	}

	return AnalyzeTrack(trk, params)
}

// AnalyzeTrack runs the pipeline over an already loaded track. A track with a
// single point, or without any pair of increasing timestamps, yields a
// zero-valued result.
func AnalyzeTrack(trk *track.Track, params Params) (*Result, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	red := reducePairs(trk.Points, params.PaceLimit)
	segments := buildSegments(red.pairs)
	route, elevation := routeAndElevation(trk.Points, red)

	res := &Result{
		TotalDistance:   red.totalDistance,
		FastSegments:    []Segment{},
		SlowSegments:    []Segment{},
		RouteData:       route,
		ElevationData:   elevation,
		MileSplits:      red.mileSplits,
		PaceLimit:       params.PaceLimit,
		TrackpointCount: len(trk.Points),
		SkippedPoints:   trk.Skipped,
	}
	if res.MileSplits == nil {
		res.MileSplits = []MileSplit{}
	}

	for _, seg := range segments {
		if seg.IsFast {
			res.FastSegments = append(res.FastSegments, seg)
			res.FastDistance += seg.DistanceMiles
		} else {
			res.SlowSegments = append(res.SlowSegments, seg)
			res.SlowDistance += seg.DistanceMiles
		}
	}

	if res.TotalDistance > 0 {
		res.PercentageFast = res.FastDistance / res.TotalDistance * 100
		res.PercentageSlow = res.SlowDistance / res.TotalDistance * 100
	}

	heartRates := trk.HeartRateValues()
	res.AvgHRAll = stats.MeanInts(heartRates)
	res.AvgHRFast = meanSegmentHeartRate(res.FastSegments)
	res.AvgHRSlow = meanSegmentHeartRate(res.SlowSegments)

	if len(red.pairs) > 0 {
		first, last := red.pairs[0], red.pairs[len(red.pairs)-1]
		res.DurationMinutes = last.End.Time.Sub(first.Start.Time).Minutes()
	}
	if res.TotalDistance > 0 {
		res.AvgPace = res.DurationMinutes / res.TotalDistance
	}

	synthesize(res, trk, params)
	return res, nil
}

// synthesize fills in the derived fitness metrics. Each one is independent:
// a missing input for one leaves it nil without affecting the others.
func synthesize(res *Result, trk *track.Track, params Params) {
	athlete := params.Athlete
	heartRates := trk.HeartRateValues()

	var maxHR int
	if len(heartRates) > 0 {
		maxHR = stats.MaxInts(heartRates)
		res.MaxHR = &maxHR
	}

	res.TrainingZones = trainingZones(trk.HeartRates, athlete, params.SampleInterval)

	paces := fastPaces(res.FastSegments)
	res.PaceRecommendations = paceRecommendations(paces)
	res.RacePredictions = predictRaceTimes(paces)

	res.VO2Max = estimateVO2Max(athlete, maxHR, res.DurationMinutes, res.TotalDistance)
	res.TrainingLoad = trainingLoad(res.DurationMinutes, res.AvgHRAll, maxHR, athlete.RestingHR)
	res.RecoveryTime = recoveryTime(res.TrainingLoad, athlete.RestingHR, athlete.Age)
}

// meanSegmentHeartRate averages the segment heart rates that were recorded
func meanSegmentHeartRate(segments []Segment) float64 {
	var values []float64
	for _, s := range segments {
		if s.AvgHeartRate > 0 {
			values = append(values, s.AvgHeartRate)
		}
	}
	return stats.Mean(values)
}

func (p Params) validate() error {
	if p.PaceLimit <= 0 || math.IsNaN(p.PaceLimit) || math.IsInf(p.PaceLimit, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidPaceLimit, p.PaceLimit)
	}
	return nil
}
