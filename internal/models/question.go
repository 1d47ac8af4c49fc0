package models

import "github.com/Fordzamo/Spaced-Repitition/internal/dates"

// MaxInterval caps the review interval at one year.
const MaxInterval = 365

// Question represents a single tracked practice problem.
// Ratings and SolveTimes are append-only: entries are never rewritten,
// reordered or truncated once recorded.
type Question struct {
	Name            string            `json:"name"`
	Link            string            `json:"link"`
	Category        Category          `json:"category"`
	CompanyTags     []string          `json:"company_tags"`
	LastReviewed    dates.Day         `json:"last_reviewed"`
	NextReview      dates.Day         `json:"next_review"`
	Interval        int               `json:"interval"`   // days, in [1, MaxInterval]
	Stability       float64           `json:"stability"`  // > 0
	Difficulty      float64           `json:"difficulty"` // in [1, 10]
	RetentionTarget float64           `json:"retention_target"`
	RetentionRate   *float64          `json:"retention_rate"` // nil until first rating
	Explanation     string            `json:"explanation"`
	SolveTimes      []SolveTimeRecord `json:"solving_time"`
	AverageTime     *float64          `json:"average_time"` // nil until first review
	Ratings         []RatingRecord    `json:"ratings"`
}

// RatingRecord is one self-rated recall outcome.
type RatingRecord struct {
	Date   dates.Day `json:"date"`
	Rating int       `json:"rating"`
}

// SolveTimeRecord is the time spent on one review, in minutes.
type SolveTimeRecord struct {
	Date    dates.Day `json:"date"`
	Minutes float64   `json:"time_taken"`
}

// ValidRating reports whether r is a usable self-assessment (1-5).
func ValidRating(r int) bool { return r >= 1 && r <= 5 }

// HasCompanyTag reports whether the question carries the given tag.
func (q Question) HasCompanyTag(tag string) bool {
	for _, t := range q.CompanyTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. History slices are copied so the original is
// never aliased by an update in flight.
func (q Question) Clone() Question {
	out := q
	if q.CompanyTags != nil {
		out.CompanyTags = append([]string(nil), q.CompanyTags...)
	}
	if q.SolveTimes != nil {
		out.SolveTimes = append([]SolveTimeRecord(nil), q.SolveTimes...)
	}
	if q.Ratings != nil {
		out.Ratings = append([]RatingRecord(nil), q.Ratings...)
	}
	if q.RetentionRate != nil {
		v := *q.RetentionRate
		out.RetentionRate = &v
	}
	if q.AverageTime != nil {
		v := *q.AverageTime
		out.AverageTime = &v
	}
	return out
}
