package analysis

import (
	"time"

	"github.com/jengzang/pace-analyzer/internal/spatial"
	"github.com/jengzang/pace-analyzer/internal/stats"
	"github.com/jengzang/pace-analyzer/internal/track"
)

// reduction is the output of the point-pair pass
type reduction struct {
	pairs []PointPair
	// totalDistance includes pairs skipped for non-positive elapsed time
	totalDistance float64
	// cumulative[i] is the distance covered up to points[i]
	cumulative []float64
	mileSplits []MileSplit
}

// reducePairs walks consecutive trackpoints, classifying each pair against
// paceLimit and tracking mile splits in the same pass
func reducePairs(points []track.Point, paceLimit float64) reduction {
	r := reduction{cumulative: make([]float64, len(points))}
	if len(points) == 0 {
		return r
	}

	splits := newSplitTracker(points[0].Time)
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]

		distance := spatial.HaversineMiles(prev.Lat, prev.Lon, cur.Lat, cur.Lon)
		timeDiff := cur.Time.Sub(prev.Time).Minutes()

		r.totalDistance += distance
		r.cumulative[i] = r.totalDistance
		splits.add(prev, cur, distance)

		// Duplicate or out-of-order timestamps carry no pace information
		if timeDiff <= 0 {
			continue
		}

		pace := PaceOf(timeDiff, distance)
		r.pairs = append(r.pairs, PointPair{
			Start:           prev,
			End:             cur,
			StartIndex:      i - 1,
			EndIndex:        i,
			DistanceMiles:   distance,
			TimeDiffMinutes: timeDiff,
			Pace:            pace,
			HeartRate:       prev.HeartRate,
			IsFast:          pace.IsFinite() && float64(pace) <= paceLimit,
		})
	}

	r.mileSplits = splits.splits
	return r
}

// splitTracker emits a MileSplit each time cumulative distance crosses a whole mile
type splitTracker struct {
	cumulative float64
	nextMile   int
	mileStart  time.Time
	heartRates []int
	splits     []MileSplit
}

func newSplitTracker(start time.Time) *splitTracker {
	return &splitTracker{nextMile: 1, mileStart: start}
}

func (s *splitTracker) add(prev, cur track.Point, distance float64) {
	if prev.HeartRate != nil {
		s.heartRates = append(s.heartRates, *prev.HeartRate)
	}

	startDistance := s.cumulative
	s.cumulative += distance
	if distance <= 0 {
		return
	}

	elapsed := cur.Time.Sub(prev.Time)
	if elapsed < 0 {
		elapsed = 0
	}

	// A single GPS jump can cover more than one mile
	for s.cumulative >= float64(s.nextMile) {
		frac := (float64(s.nextMile) - startDistance) / distance
		crossing := prev.Time.Add(time.Duration(frac * float64(elapsed)))

		s.splits = append(s.splits, MileSplit{
			MileNumber:       s.nextMile,
			SplitTimeMinutes: crossing.Sub(s.mileStart).Minutes(),
			AvgHeartRate:     stats.MeanInts(s.heartRates),
		})

		s.mileStart = crossing
		s.heartRates = s.heartRates[:0]
		s.nextMile++
	}
}
