package track

import (
	"encoding/xml"
	"time"
)

// MetersToFeet converts GPX elevations (meters) to the feet used in reports
const MetersToFeet = 3.28084

// Point is one parsed GPS sample. Points are kept in document order.
type Point struct {
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Time      time.Time `json:"time"`
	HeartRate *int      `json:"heart_rate,omitempty"`
	Elevation float64   `json:"elevation"` // meters
}

// ElevationFeet returns the point elevation in feet
func (p Point) ElevationFeet() float64 {
	return p.Elevation * MetersToFeet
}

// HeartRateSample is a single heart-rate reading with the time it was taken
type HeartRateSample struct {
	Time time.Time `json:"time"`
	BPM  int       `json:"bpm"`
}

// Track is the result of loading a GPX file
type Track struct {
	Points     []Point
	HeartRates []HeartRateSample
	// Skipped counts trkpt elements dropped because lat, lon or time was unusable
	Skipped int
}

// HeartRateValues returns the bare bpm values of all heart-rate samples
func (t *Track) HeartRateValues() []int {
	values := make([]int, len(t.HeartRates))
	for i, s := range t.HeartRates {
		values[i] = s.BPM
	}
	return values
}

// gpxDocument mirrors the parts of a GPX 1.1 document the loader reads.
// Attributes and values are kept as strings so a single bad point can be
// skipped instead of failing the whole decode.
type gpxDocument struct {
	XMLName xml.Name   `xml:"gpx"`
	Tracks  []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat        string   `xml:"lat,attr"`
	Lon        string   `xml:"lon,attr"`
	Elevation  string   `xml:"ele"`
	Time       string   `xml:"time"`
	HeartRate  string   `xml:"hr"`
	Extensions *xmlNode `xml:"extensions"`
}

// xmlNode is a generic element tree used to search vendor extensions
type xmlNode struct {
	XMLName xml.Name
	Content string    `xml:",chardata"`
	Nodes   []xmlNode `xml:",any"`
}
