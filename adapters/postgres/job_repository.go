package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"careerflow/models"
	"careerflow/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// JobRepositoryImpl implements JobRepository for PostgreSQL
type JobRepositoryImpl struct {
	db *sqlx.DB
}

// NewJobRepository creates a new PostgreSQL job repository
func NewJobRepository(db *sqlx.DB) ports.JobRepository {
	return &JobRepositoryImpl{db: db}
}

// Create inserts a new job, assigning an ID when missing
func (r *JobRepositoryImpl) Create(ctx context.Context, job *models.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.Status == "" {
		job.Status = models.JobStatusSaved
	}
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO jobs (id, title, company, link, category, status, applied_date, interview_date, notes, created_at, updated_at)
		VALUES (:id, :title, :company, :link, :category, :status, :applied_date, :interview_date, :notes, :created_at, :updated_at)
	`, job)

	// Unique violation on link means another import got there first; the
	// service counts those as skips rather than failures.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ports.ErrDuplicateJob
	}
	return err
}

// GetByID retrieves a job by its ID
func (r *JobRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	err := r.db.GetContext(ctx, &job, `
		SELECT id, title, company, link, category, status, applied_date, interview_date, notes, created_at, updated_at
		FROM jobs
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetByLink retrieves a job by its exact link, or nil when absent
func (r *JobRepositoryImpl) GetByLink(ctx context.Context, link string) (*models.Job, error) {
	var job models.Job
	err := r.db.GetContext(ctx, &job, `
		SELECT id, title, company, link, category, status, applied_date, interview_date, notes, created_at, updated_at
		FROM jobs
		WHERE link = $1
		LIMIT 1
	`, link)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetByTitle retrieves a job by its exact title, or nil when absent
func (r *JobRepositoryImpl) GetByTitle(ctx context.Context, title string) (*models.Job, error) {
	var job models.Job
	err := r.db.GetContext(ctx, &job, `
		SELECT id, title, company, link, category, status, applied_date, interview_date, notes, created_at, updated_at
		FROM jobs
		WHERE title = $1
		LIMIT 1
	`, title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// List returns jobs ordered by applied_date desc then created_at desc
func (r *JobRepositoryImpl) List(ctx context.Context, limit int) ([]*models.Job, error) {
	var jobs []*models.Job
	err := r.db.SelectContext(ctx, &jobs, `
		SELECT id, title, company, link, category, status, applied_date, interview_date, notes, created_at, updated_at
		FROM jobs
		ORDER BY applied_date DESC NULLS LAST, created_at DESC
		LIMIT $1
	`, limit)
	return jobs, err
}

// Update persists changes to an existing job
func (r *JobRepositoryImpl) Update(ctx context.Context, job *models.Job) error {
	job.UpdatedAt = time.Now().UTC()
	_, err := r.db.NamedExecContext(ctx, `
		UPDATE jobs
		SET title = :title, company = :company, link = :link, category = :category,
		    status = :status, applied_date = :applied_date, interview_date = :interview_date,
		    notes = :notes, updated_at = :updated_at
		WHERE id = :id
	`, job)
	return err
}

// UpdateStatus changes only a job's pipeline status
func (r *JobRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE jobs SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a job
func (r *JobRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	return err
}

// CountByStatus returns the number of jobs in each pipeline state
func (r *JobRepositoryImpl) CountByStatus(ctx context.Context) (map[models.JobStatus]int, error) {
	rows := []struct {
		Status models.JobStatus `db:"status"`
		Count  int              `db:"count"`
	}{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT status, COUNT(*) AS count FROM jobs GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	counts := make(map[models.JobStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
