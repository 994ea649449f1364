package analysis

import (
	"errors"
	"time"

	"github.com/jengzang/pace-analyzer/internal/track"
)

// ErrInvalidPaceLimit is returned when the pace threshold is not a positive number
var ErrInvalidPaceLimit = errors.New("pace limit must be a positive number of minutes per mile")

// Segment types used in route and elevation series
const (
	TypeFast = "fast"
	TypeSlow = "slow"
)

// DefaultSampleInterval is the time credited to a heart-rate sample when the
// gap to the next sample is unknown
const DefaultSampleInterval = time.Second

// Athlete holds the runner profile values the fitness formulas depend on.
// Zero values mean "unknown".
type Athlete struct {
	Age       int     `json:"age"`
	RestingHR int     `json:"resting_hr"`
	WeightKg  float64 `json:"weight_kg"`
	Sex       string  `json:"sex"`
}

// Params configures one analysis run
type Params struct {
	PaceLimit float64 // minutes per mile
	Athlete   Athlete
	Location  *time.Location // nil means time.Local
	// SampleInterval is credited to the last heart-rate sample and to samples
	// whose successor has a non-increasing timestamp
	SampleInterval time.Duration
}

// PointPair is derived from two chronologically adjacent trackpoints
type PointPair struct {
	Start           track.Point
	End             track.Point
	StartIndex      int
	EndIndex        int
	DistanceMiles   float64
	TimeDiffMinutes float64
	Pace            Pace
	HeartRate       *int
	IsFast          bool
}

// Segment is a maximal run of consecutive pairs with the same classification
type Segment struct {
	IsFast          bool         `json:"is_fast"`
	StartTime       time.Time    `json:"start_time"`
	EndTime         time.Time    `json:"end_time"`
	DistanceMiles   float64      `json:"distance"`
	DurationMinutes float64      `json:"duration_minutes"`
	AvgHeartRate    float64      `json:"avg_hr"`
	BestPace        Pace         `json:"best_pace"`
	Pace            Pace         `json:"pace"`
	Coordinates     [][2]float64 `json:"coordinates"`
	ElevationPoints []float64    `json:"elevation_points"` // feet
}

// MileSplit is the elapsed time of one completed mile
type MileSplit struct {
	MileNumber       int     `json:"mile_number"`
	SplitTimeMinutes float64 `json:"split_time"`
	AvgHeartRate     float64 `json:"avg_hr"`
}

// RoutePoint is one trackpoint tagged with the class of the segment it belongs to
type RoutePoint struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Type string  `json:"type"`
}

// ElevationPoint is one trackpoint of the elevation profile
type ElevationPoint struct {
	Time          time.Time `json:"time"`
	DistanceMiles float64   `json:"distance"`
	ElevationFeet float64   `json:"elevation"`
	Type          string    `json:"type"`
}

// TrainingZone is a heart-rate-reserve band populated with time spent in it
type TrainingZone struct {
	Zone             int     `json:"zone"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	LowerFrac        float64 `json:"lower_frac"`
	UpperFrac        float64 `json:"upper_frac"`
	MinHR            int     `json:"min_hr"`
	MaxHR            int     `json:"max_hr"`
	TimeSpentMinutes float64 `json:"time_spent"`
	Percentage       float64 `json:"percentage"`
}

// PaceRecommendation is a training pace band in minutes per mile
type PaceRecommendation struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	MinPace     float64 `json:"min_pace"`
	MaxPace     float64 `json:"max_pace"`
}

// RacePrediction is a predicted finishing time for a race distance
type RacePrediction struct {
	Name        string  `json:"name"`
	DistanceKm  float64 `json:"distance_km"`
	TimeMinutes float64 `json:"time_minutes"`
}

// Result is the full analysis of one run. Nullable metrics are nil when their
// inputs were insufficient.
type Result struct {
	TotalDistance   float64 `json:"total_distance"`
	FastDistance    float64 `json:"fast_distance"`
	SlowDistance    float64 `json:"slow_distance"`
	PercentageFast  float64 `json:"percentage_fast"`
	PercentageSlow  float64 `json:"percentage_slow"`
	AvgHRAll        float64 `json:"avg_hr_all"`
	AvgHRFast       float64 `json:"avg_hr_fast"`
	AvgHRSlow       float64 `json:"avg_hr_slow"`
	AvgPace         float64 `json:"avg_pace"`
	DurationMinutes float64 `json:"duration_minutes"`

	FastSegments  []Segment        `json:"fast_segments"`
	SlowSegments  []Segment        `json:"slow_segments"`
	RouteData     []RoutePoint     `json:"route_data"`
	ElevationData []ElevationPoint `json:"elevation_data"`
	MileSplits    []MileSplit      `json:"mile_splits"`

	TrainingZones       []TrainingZone       `json:"training_zones"`
	PaceRecommendations []PaceRecommendation `json:"pace_recommendations"`
	PaceLimit           float64              `json:"pace_limit"`
	VO2Max              *float64             `json:"vo2max"`
	TrainingLoad        *float64             `json:"training_load"`
	RecoveryTime        *float64             `json:"recovery_time"`
	RacePredictions     []RacePrediction     `json:"race_predictions"`
	MaxHR               *int                 `json:"max_hr"`

	TrackpointCount int `json:"trackpoint_count"`
	SkippedPoints   int `json:"skipped_points"`
}
