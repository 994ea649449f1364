package analysis

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jengzang/pace-analyzer/internal/spatial"
	"github.com/jengzang/pace-analyzer/internal/track"
)

// degPerMile is the latitude change that covers one mile along a meridian
const degPerMile = 180 / (math.Pi * spatial.EarthRadiusMiles)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// pointAt builds a point north of the origin at the given mile mark and offset
func pointAt(miles float64, offset time.Duration, hr ...int) track.Point {
	p := track.Point{Lat: miles * degPerMile, Lon: 0, Time: t0.Add(offset)}
	if len(hr) > 0 {
		v := hr[0]
		p.HeartRate = &v
	}
	return p
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// gpxFor renders points as a GPX document with Garmin heart-rate extensions
func gpxFor(points []track.Point) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1" xmlns:gpxtpx="http://www.garmin.com/xmlschemas/TrackPointExtension/v1">
<trk><trkseg>
`)
	for _, p := range points {
		fmt.Fprintf(&b, `<trkpt lat="%.12f" lon="%.12f"><ele>%.1f</ele><time>%s</time>`,
			p.Lat, p.Lon, p.Elevation, p.Time.UTC().Format("2006-01-02T15:04:05Z"))
		if p.HeartRate != nil {
			fmt.Fprintf(&b, `<extensions><gpxtpx:TrackPointExtension><gpxtpx:hr>%d</gpxtpx:hr></gpxtpx:TrackPointExtension></extensions>`, *p.HeartRate)
		}
		b.WriteString("</trkpt>\n")
	}
	b.WriteString("</trkseg></trk></gpx>")
	return []byte(b.String())
}

// intervalRun alternates fast (8 min/mile) and slow (12 min/mile) quarter miles
func intervalRun() []track.Point {
	points := []track.Point{pointAt(0, 0, 140)}
	var dist float64
	var elapsed time.Duration
	for i := 0; i < 12; i++ {
		pace := 12.0
		hr := 135
		if (i/3)%2 == 0 {
			pace = 8.0
			hr = 165
		}
		dist += 0.25
		elapsed += minutes(pace * 0.25)
		p := pointAt(dist, elapsed, hr)
		p.Elevation = float64(1600 + i)
		points = append(points, p)
	}
	return points
}
