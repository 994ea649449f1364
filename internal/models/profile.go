package models

import (
	"time"

	"github.com/jengzang/pace-analyzer/internal/analysis"
)

// Profile defaults used until a runner saves their own values
const (
	DefaultAge       = 30
	DefaultRestingHR = 60
	DefaultWeightKg  = 70.0
	DefaultSex       = "unspecified"
)

// Profile holds the runner values the fitness metrics depend on
type Profile struct {
	UserID    string    `json:"user_id" db:"user_id"`
	Age       int       `json:"age" db:"age" binding:"gte=0,lte=120"`
	RestingHR int       `json:"resting_hr" db:"resting_hr" binding:"gte=0,lte=250"`
	WeightKg  float64   `json:"weight_kg" db:"weight_kg" binding:"gte=0,lte=500"`
	Sex       string    `json:"sex" db:"sex"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultProfile returns the profile assumed for a user who has not saved one
func DefaultProfile(userID string) *Profile {
	return &Profile{
		UserID:    userID,
		Age:       DefaultAge,
		RestingHR: DefaultRestingHR,
		WeightKg:  DefaultWeightKg,
		Sex:       DefaultSex,
	}
}

// Athlete converts the profile into analysis inputs
func (p *Profile) Athlete() analysis.Athlete {
	return analysis.Athlete{
		Age:       p.Age,
		RestingHR: p.RestingHR,
		WeightKg:  p.WeightKg,
		Sex:       p.Sex,
	}
}
