package track

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// Load parses GPX bytes into an ordered track. Timestamps are converted to loc;
// a nil loc means time.Local.
func Load(data []byte, loc *time.Location) (*Track, error) {
	return LoadReader(bytes.NewReader(data), loc)
}

// LoadReader parses GPX from an io.Reader
func LoadReader(r io.Reader, loc *time.Location) (*Track, error) {
	if loc == nil {
		loc = time.Local
	}

	// Garmin and older exporters still declare ISO-8859-1 or windows-1252
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var doc gpxDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTrack, err)
	}

	total := 0
	t := &Track{}
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, raw := range seg.Points {
				total++
				p, ok := parsePoint(raw, loc)
				if !ok {
					t.Skipped++
					continue
				}
				t.Points = append(t.Points, p)
				if p.HeartRate != nil {
					t.HeartRates = append(t.HeartRates, HeartRateSample{Time: p.Time, BPM: *p.HeartRate})
				}
			}
		}
	}

	if total == 0 {
		return nil, ErrEmptyTrack
	}
	if len(t.Points) == 0 {
		return nil, fmt.Errorf("%w: none of %d trackpoints had a valid position and time", ErrMalformedTrack, total)
	}

	return t, nil
}

// parsePoint converts a raw trkpt. It reports false when the point must be skipped.
func parsePoint(raw gpxPoint, loc *time.Location) (Point, bool) {
	lat, err := parseCoordinate(raw.Lat, 90)
	if err != nil {
		return Point{}, false
	}
	lon, err := parseCoordinate(raw.Lon, 180)
	if err != nil {
		return Point{}, false
	}

	ts, err := parseTime(raw.Time)
	if err != nil {
		return Point{}, false
	}

	p := Point{
		Lat:       lat,
		Lon:       lon,
		Time:      ts.In(loc),
		HeartRate: findHeartRate(raw),
	}

	if ele, err := strconv.ParseFloat(strings.TrimSpace(raw.Elevation), 64); err == nil && !math.IsNaN(ele) && !math.IsInf(ele, 0) {
		p.Elevation = ele
	}

	return p, true
}

func parseCoordinate(s string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.Abs(v) > limit {
		return 0, fmt.Errorf("coordinate %q out of range", s)
	}
	return v, nil
}

// parseTime reads GPX UTC timestamps ("2006-01-02T15:04:05Z"); offsets and
// fractional seconds are accepted as well.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("missing time")
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return ts.UTC(), nil
}

// findHeartRate looks up the heart rate in candidate locations, first match wins:
// the Garmin TrackPointExtension, any hr element inside extensions, a bare hr child.
func findHeartRate(raw gpxPoint) *int {
	if raw.Extensions != nil {
		for _, ext := range raw.Extensions.Nodes {
			if ext.XMLName.Local != "TrackPointExtension" {
				continue
			}
			for _, child := range ext.Nodes {
				if child.XMLName.Local == "hr" {
					if hr, ok := parseHeartRate(child.Content); ok {
						return &hr
					}
				}
			}
		}
		if hr, ok := searchHeartRate(raw.Extensions.Nodes); ok {
			return &hr
		}
	}

	if hr, ok := parseHeartRate(raw.HeartRate); ok {
		return &hr
	}
	return nil
}

// searchHeartRate walks the extension tree depth-first for an hr element
func searchHeartRate(nodes []xmlNode) (int, bool) {
	for _, n := range nodes {
		if n.XMLName.Local == "hr" {
			if hr, ok := parseHeartRate(n.Content); ok {
				return hr, true
			}
		}
		if hr, ok := searchHeartRate(n.Nodes); ok {
			return hr, true
		}
	}
	return 0, false
}

func parseHeartRate(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if hr, err := strconv.Atoi(s); err == nil {
		return hr, hr > 0
	}
	// Some exporters write "152.0"
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return int(f), true
}
