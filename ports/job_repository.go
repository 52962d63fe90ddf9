package ports

import (
	"context"
	"errors"

	"careerflow/models"

	"github.com/google/uuid"
)

// ErrDuplicateJob is returned by Create when a job with the same link
// already exists.
var ErrDuplicateJob = errors.New("job already exists")

// JobRepository defines the interface for job persistence operations
type JobRepository interface {
	// Create inserts a new job
	Create(ctx context.Context, job *models.Job) error

	// GetByID retrieves a job by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)

	// GetByLink retrieves a job by its exact link, or nil if none exists
	GetByLink(ctx context.Context, link string) (*models.Job, error)

	// GetByTitle retrieves a job by its exact title, or nil if none exists
	GetByTitle(ctx context.Context, title string) (*models.Job, error)

	// List returns jobs ordered by applied_date desc then created_at desc
	List(ctx context.Context, limit int) ([]*models.Job, error)

	// Update persists changes to an existing job
	Update(ctx context.Context, job *models.Job) error

	// UpdateStatus changes only a job's pipeline status
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) error

	// Delete removes a job
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByStatus returns the number of jobs in each pipeline state
	CountByStatus(ctx context.Context) (map[models.JobStatus]int, error)
}
