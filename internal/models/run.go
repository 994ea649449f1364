package models

import (
	"time"

	"github.com/jengzang/pace-analyzer/internal/analysis"
)

// Run is one analyzed GPX upload
type Run struct {
	ID     int64  `json:"id" db:"id"`
	UserID string `json:"user_id" db:"user_id"`

	Filename  string  `json:"filename" db:"filename"`
	Date      string  `json:"date" db:"run_date"` // YYYY-MM-DD
	PaceLimit float64 `json:"pace_limit" db:"pace_limit"`

	// Summary columns, copied out of Data for listing
	TotalDistance   float64 `json:"total_distance" db:"total_distance"`     // Miles
	DurationMinutes float64 `json:"duration_minutes" db:"duration_minutes"` // Minutes
	AvgPace         float64 `json:"avg_pace" db:"avg_pace"`                 // Minutes per mile
	AvgHeartRate    float64 `json:"avg_hr" db:"avg_hr"`

	// Data is nil in listings
	Data *analysis.Result `json:"data,omitempty" db:"data"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RunFilter represents filter parameters for listing runs
type RunFilter struct {
	From     string `form:"from"` // YYYY-MM-DD, inclusive
	To       string `form:"to"`   // YYYY-MM-DD, inclusive
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// Normalize applies the default page and page size bounds
func (f *RunFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 50
	}
	if f.PageSize > 500 {
		f.PageSize = 500
	}
}

// AnalysisResponse is returned by the analyze endpoint
type AnalysisResponse struct {
	RunID int64            `json:"run_id"`
	Date  string           `json:"date"`
	Data  *analysis.Result `json:"data"`
}

// RunListResponse is a page of runs
type RunListResponse struct {
	Data       []Run `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}
