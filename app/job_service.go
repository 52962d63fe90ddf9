package app

import (
	"context"
	"log/slog"

	"careerflow/internal/errors"
	"careerflow/internal/linkedin"
	"careerflow/models"
	"careerflow/ports"

	"github.com/google/uuid"
)

// JobService orchestrates job imports and queries
type JobService struct {
	repo   ports.JobRepository
	logger *slog.Logger
}

// NewJobService creates a job service
func NewJobService(repo ports.JobRepository, logger *slog.Logger) *JobService {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobService{repo: repo, logger: logger}
}

// ImportJobs persists parsed jobs that are not already tracked. A job is a
// duplicate when a stored job shares its link, or failing that its title.
// Returns a report with inserted and skipped counts.
func (s *JobService) ImportJobs(ctx context.Context, parsed []linkedin.ParsedJob) (*models.ImportReport, error) {
	report := &models.ImportReport{BatchID: uuid.New()}

	for _, candidate := range parsed {
		existing, err := s.findExisting(ctx, candidate)
		if err != nil {
			return nil, errors.Wrap(err, "duplicate lookup failed")
		}
		if existing != nil {
			report.Skipped++
			continue
		}

		job := &models.Job{
			Title:   candidate.Title,
			Company: candidate.Company,
			Link:    candidate.Link,
			Status:  models.JobStatusSaved,
		}
		err = s.repo.Create(ctx, job)
		if err == ports.ErrDuplicateJob {
			// Lost a race with a concurrent import of the same page.
			report.Skipped++
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "job insert failed")
		}
		report.Imported++
	}

	s.logger.Info("import complete",
		"batch_id", report.BatchID,
		"imported", report.Imported,
		"skipped", report.Skipped)
	return report, nil
}

func (s *JobService) findExisting(ctx context.Context, candidate linkedin.ParsedJob) (*models.Job, error) {
	if candidate.Link != "" {
		job, err := s.repo.GetByLink(ctx, candidate.Link)
		if err != nil {
			return nil, err
		}
		if job != nil {
			return job, nil
		}
	}
	return s.repo.GetByTitle(ctx, candidate.Title)
}

// ListJobs returns jobs for display, most recent first
func (s *JobService) ListJobs(ctx context.Context, limit int) ([]*models.Job, error) {
	if limit <= 0 {
		limit = 500
	}
	return s.repo.List(ctx, limit)
}

// GetJob retrieves a single job
func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus moves a job to a new pipeline state
func (s *JobService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) error {
	if !status.Valid() {
		return errors.InvalidInput("unknown job status: " + string(status))
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return errors.Wrap(err, "status update failed")
	}
	return nil
}

// DeleteJob removes a job from the tracker
func (s *JobService) DeleteJob(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
