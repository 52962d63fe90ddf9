package models

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus tracks where an application sits in the pipeline.
type JobStatus string

const (
	JobStatusSaved     JobStatus = "Saved"
	JobStatusApplied   JobStatus = "Applied"
	JobStatusInterview JobStatus = "Interview"
	JobStatusRejected  JobStatus = "Rejected"
	JobStatusOffer     JobStatus = "Offer"
)

// AllJobStatuses lists every valid status, in pipeline order.
var AllJobStatuses = []JobStatus{
	JobStatusSaved,
	JobStatusApplied,
	JobStatusInterview,
	JobStatusRejected,
	JobStatusOffer,
}

// Valid reports whether the status is one of the known pipeline states.
func (s JobStatus) Valid() bool {
	for _, known := range AllJobStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseJobStatus returns the status for a raw string, or false if unknown.
func ParseJobStatus(raw string) (JobStatus, bool) {
	s := JobStatus(raw)
	return s, s.Valid()
}

// Job represents a single job application or saved job.
type Job struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	Company       string     `json:"company" db:"company"`
	Link          string     `json:"link" db:"link"`
	Category      string     `json:"category" db:"category"`
	Status        JobStatus  `json:"status" db:"status"`
	AppliedDate   *time.Time `json:"applied_date,omitempty" db:"applied_date"`
	InterviewDate *time.Time `json:"interview_date,omitempty" db:"interview_date"`
	Notes         string     `json:"notes" db:"notes"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// ImportReport summarizes one LinkedIn import batch.
type ImportReport struct {
	BatchID  uuid.UUID `json:"batch_id"`
	Imported int       `json:"imported"`
	Skipped  int       `json:"skipped"`
}

// PipelineStats aggregates the application pipeline for the dashboard.
type PipelineStats struct {
	Total           int               `json:"total"`
	ByStatus        map[JobStatus]int `json:"by_status"`
	MeanDaysOpen    float64           `json:"mean_days_open"`
	MedianDaysOpen  float64           `json:"median_days_open"`
	WeeklyCounts    []WeeklyCount     `json:"weekly_counts"`
	WeeklyTrend     float64           `json:"weekly_trend"`
	HasAppliedDates bool              `json:"has_applied_dates"`
}

// WeeklyCount is the number of applications filed in one ISO week.
type WeeklyCount struct {
	WeekStart time.Time `json:"week_start"`
	Count     int       `json:"count"`
}
