package analysis

import (
	"encoding/json"
	"math"
)

// Pace is a running pace in minutes per mile. A pair or segment with no
// distance has an infinite pace, which is written to JSON as null.
type Pace float64

// InfinitePace is the pace of a zero-distance pair or segment
var InfinitePace = Pace(math.Inf(1))

// PaceOf returns minutes/distance, or InfinitePace when distance is not positive
func PaceOf(minutes, miles float64) Pace {
	if miles <= 0 {
		return InfinitePace
	}
	return Pace(minutes / miles)
}

// IsFinite reports whether the pace can take part in pace aggregates
func (p Pace) IsFinite() bool {
	f := float64(p)
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// MarshalJSON implements json.Marshaler
func (p Pace) MarshalJSON() ([]byte, error) {
	if !p.IsFinite() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(p))
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Pace) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = InfinitePace
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = Pace(f)
	return nil
}
