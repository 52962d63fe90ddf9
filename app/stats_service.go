package app

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"careerflow/models"
)

// StatsService computes pipeline aggregates for the dashboard
type StatsService struct {
	now func() time.Time
}

// NewStatsService creates a stats service
func NewStatsService() *StatsService {
	return &StatsService{now: time.Now}
}

// Summarize aggregates the job list into pipeline stats: counts per status,
// mean/median days since application, weekly application counts, and a linear
// trend slope over those weeks (applications per week gained or lost).
func (s *StatsService) Summarize(jobs []*models.Job) *models.PipelineStats {
	result := &models.PipelineStats{
		Total:    len(jobs),
		ByStatus: make(map[models.JobStatus]int),
	}

	now := s.now().UTC()
	var daysOpen []float64
	weekly := make(map[time.Time]int)

	for _, job := range jobs {
		result.ByStatus[job.Status]++
		if job.AppliedDate == nil {
			continue
		}
		result.HasAppliedDates = true
		daysOpen = append(daysOpen, now.Sub(*job.AppliedDate).Hours()/24)
		weekly[weekStart(*job.AppliedDate)]++
	}

	if len(daysOpen) > 0 {
		// stats errors only on empty input, which is excluded above.
		result.MeanDaysOpen, _ = stats.Mean(daysOpen)
		result.MedianDaysOpen, _ = stats.Median(daysOpen)
	}

	result.WeeklyCounts = sortedWeeklyCounts(weekly)
	result.WeeklyTrend = weeklyTrend(result.WeeklyCounts)
	return result
}

// weekStart truncates a date to the Monday of its week, UTC.
func weekStart(t time.Time) time.Time {
	t = t.UTC().Truncate(24 * time.Hour)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

func sortedWeeklyCounts(weekly map[time.Time]int) []models.WeeklyCount {
	counts := make([]models.WeeklyCount, 0, len(weekly))
	for week, count := range weekly {
		counts = append(counts, models.WeeklyCount{WeekStart: week, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].WeekStart.Before(counts[j].WeekStart)
	})
	return counts
}

// weeklyTrend fits applications-per-week against week index and returns the
// slope. Fewer than two weeks of data has no trend.
func weeklyTrend(counts []models.WeeklyCount) float64 {
	if len(counts) < 2 {
		return 0
	}
	xs := make([]float64, len(counts))
	ys := make([]float64, len(counts))
	for i, wc := range counts {
		xs[i] = float64(i)
		ys[i] = float64(wc.Count)
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope
}
