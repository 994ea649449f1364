package analysis

import (
	"github.com/jengzang/pace-analyzer/internal/stats"
	"github.com/jengzang/pace-analyzer/internal/track"
)

// minSegmentCoordinates is the smallest polyline a segment may be emitted with
const minSegmentCoordinates = 2

// segmentAccumulator is the open segment of the builder state machine
type segmentAccumulator struct {
	isFast     bool
	pairs      []PointPair
	coords     [][2]float64
	elevations []float64
	lastIndex  int
}

func newSegmentAccumulator(first PointPair) *segmentAccumulator {
	acc := &segmentAccumulator{isFast: first.IsFast, lastIndex: -1}
	acc.addPoint(first.StartIndex, first.Start)
	return acc
}

func (a *segmentAccumulator) addPoint(index int, p track.Point) {
	a.coords = append(a.coords, [2]float64{p.Lat, p.Lon})
	a.elevations = append(a.elevations, p.ElevationFeet())
	a.lastIndex = index
}

func (a *segmentAccumulator) add(pair PointPair) {
	// A pair skipped for its timestamp leaves a gap between neighbours
	if pair.StartIndex != a.lastIndex {
		a.addPoint(pair.StartIndex, pair.Start)
	}
	a.pairs = append(a.pairs, pair)
	a.addPoint(pair.EndIndex, pair.End)
}

// finalize computes the segment aggregates. It reports false for segments too
// short to draw.
func (a *segmentAccumulator) finalize() (Segment, bool) {
	if len(a.coords) < minSegmentCoordinates || len(a.pairs) == 0 {
		return Segment{}, false
	}

	var distance, duration float64
	var heartRates []int
	best := InfinitePace
	for _, p := range a.pairs {
		distance += p.DistanceMiles
		duration += p.TimeDiffMinutes
		if p.HeartRate != nil {
			heartRates = append(heartRates, *p.HeartRate)
		}
		if p.Pace.IsFinite() && p.Pace < best {
			best = p.Pace
		}
	}

	return Segment{
		IsFast:          a.isFast,
		StartTime:       a.pairs[0].Start.Time,
		EndTime:         a.pairs[len(a.pairs)-1].End.Time,
		DistanceMiles:   distance,
		DurationMinutes: duration,
		AvgHeartRate:    stats.MeanInts(heartRates),
		BestPace:        best,
		Pace:            PaceOf(duration, distance),
		Coordinates:     a.coords,
		ElevationPoints: a.elevations,
	}, true
}

// buildSegments merges consecutive same-class pairs into chronological segments
func buildSegments(pairs []PointPair) []Segment {
	var segments []Segment
	var current *segmentAccumulator

	for i, pair := range pairs {
		if current == nil {
			current = newSegmentAccumulator(pair)
		}
		current.add(pair)

		if i+1 < len(pairs) && pairs[i+1].IsFast != current.isFast {
			if seg, ok := current.finalize(); ok {
				segments = append(segments, seg)
			}
			current = nil
		}
	}

	if current != nil {
		if seg, ok := current.finalize(); ok {
			segments = append(segments, seg)
		}
	}

	return segments
}

// pointTypes labels every trackpoint with the class of the pair that reaches it.
// Points before the first pair take its class; points reached by a skipped
// pair inherit the previous label.
func pointTypes(count int, pairs []PointPair) []string {
	types := make([]string, count)
	for _, p := range pairs {
		types[p.EndIndex] = segmentType(p.IsFast)
	}

	last := TypeSlow
	if len(pairs) > 0 {
		last = segmentType(pairs[0].IsFast)
	}
	for i := range types {
		if types[i] == "" {
			types[i] = last
		}
		last = types[i]
	}
	return types
}

// routeAndElevation builds the flat, trackpoint-aligned map and elevation series
func routeAndElevation(points []track.Point, r reduction) ([]RoutePoint, []ElevationPoint) {
	types := pointTypes(len(points), r.pairs)
	route := make([]RoutePoint, len(points))
	elevation := make([]ElevationPoint, len(points))

	for i, p := range points {
		route[i] = RoutePoint{Lat: p.Lat, Lon: p.Lon, Type: types[i]}
		elevation[i] = ElevationPoint{
			Time:          p.Time,
			DistanceMiles: r.cumulative[i],
			ElevationFeet: p.ElevationFeet(),
			Type:          types[i],
		}
	}
	return route, elevation
}

func segmentType(isFast bool) string {
	if isFast {
		return TypeFast
	}
	return TypeSlow
}
