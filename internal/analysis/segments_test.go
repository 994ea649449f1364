package analysis

import (
	"testing"

	"github.com/jengzang/pace-analyzer/internal/track"
)

func TestBuildSegmentsSingleFastPair(t *testing.T) {
	points := []track.Point{pointAt(0, 0), pointAt(1, minutes(10))}
	segments := buildSegments(reducePairs(points, 12).pairs)

	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	s := segments[0]
	if !s.IsFast {
		t.Errorf("expected a fast segment")
	}
	if !approx(s.DistanceMiles, 1) || s.DurationMinutes != 10 || !approx(float64(s.Pace), 10) {
		t.Errorf("unexpected aggregates: distance=%v duration=%v pace=%v", s.DistanceMiles, s.DurationMinutes, s.Pace)
	}
	if len(s.Coordinates) != 2 {
		t.Errorf("expected 2 coordinates, got %d", len(s.Coordinates))
	}
}

func TestBuildSegmentsAlternate(t *testing.T) {
	points := intervalRun()
	segments := buildSegments(reducePairs(points, 10).pairs)

	// three fast quarters, three slow, repeated twice
	if len(segments) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(segments))
	}
	for i := 1; i < len(segments); i++ {
		if segments[i].IsFast == segments[i-1].IsFast {
			t.Errorf("segments %d and %d share a classification", i-1, i)
		}
		if !segments[i].StartTime.Equal(segments[i-1].EndTime) {
			t.Errorf("segment %d does not start where %d ends", i, i-1)
		}
	}

	fast := segments[0]
	if !approx(fast.DistanceMiles, 0.75) {
		t.Errorf("expected 0.75 fast miles, got %v", fast.DistanceMiles)
	}
	if !approx(float64(fast.BestPace), 8) {
		t.Errorf("expected best pace 8, got %v", fast.BestPace)
	}
	// pair heart rates come from start points: 140, 165, 165
	if !approx(fast.AvgHeartRate, (140.0+165+165)/3) {
		t.Errorf("unexpected avg hr %v", fast.AvgHeartRate)
	}
	if len(fast.ElevationPoints) != len(fast.Coordinates) {
		t.Errorf("elevation points not aligned with coordinates")
	}
}

func TestSegmentsReproduceCoordinates(t *testing.T) {
	points := intervalRun()
	segments := buildSegments(reducePairs(points, 10).pairs)

	var merged [][2]float64
	for i, s := range segments {
		coords := s.Coordinates
		if i > 0 {
			// consecutive segments share their boundary point
			coords = coords[1:]
		}
		merged = append(merged, coords...)
	}

	if len(merged) != len(points) {
		t.Fatalf("expected %d coordinates, got %d", len(points), len(merged))
	}
	for i, p := range points {
		if merged[i] != [2]float64{p.Lat, p.Lon} {
			t.Fatalf("coordinate %d differs: %v vs %v,%v", i, merged[i], p.Lat, p.Lon)
		}
	}
}

func TestSegmentsCoverGapFromSkippedPair(t *testing.T) {
	points := []track.Point{
		pointAt(0, 0),
		pointAt(0.1, minutes(1)),
		pointAt(0.2, minutes(1)),
		pointAt(0.3, minutes(2)),
	}
	segments := buildSegments(reducePairs(points, 12).pairs)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if len(segments[0].Coordinates) != 4 {
		t.Fatalf("expected all 4 points in the polyline, got %d", len(segments[0].Coordinates))
	}
}

func TestFinalizeDropsShortSegment(t *testing.T) {
	acc := &segmentAccumulator{lastIndex: -1}
	acc.addPoint(0, pointAt(0, 0))
	if _, ok := acc.finalize(); ok {
		t.Fatalf("segment with a single coordinate must be dropped")
	}
}

func TestZeroDistanceSegmentPace(t *testing.T) {
	points := []track.Point{pointAt(0, 0), pointAt(0, minutes(2))}
	segments := buildSegments(reducePairs(points, 12).pairs)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	s := segments[0]
	if s.IsFast || s.Pace.IsFinite() || s.BestPace.IsFinite() {
		t.Fatalf("stationary segment should be slow with infinite pace: %+v", s)
	}
	if s.DurationMinutes != 2 {
		t.Errorf("expected duration 2, got %v", s.DurationMinutes)
	}
}

func TestPointTypes(t *testing.T) {
	pairs := []PointPair{
		{StartIndex: 0, EndIndex: 1, IsFast: true},
		{StartIndex: 1, EndIndex: 2, IsFast: false},
		{StartIndex: 3, EndIndex: 4, IsFast: true},
	}
	got := pointTypes(5, pairs)
	want := []string{TypeFast, TypeFast, TypeSlow, TypeSlow, TypeFast}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	for _, typ := range pointTypes(2, nil) {
		if typ != TypeSlow {
			t.Errorf("without pairs every point is slow, got %s", typ)
		}
	}
}
