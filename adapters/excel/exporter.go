package excel

import (
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"careerflow/internal/errors"
	"careerflow/models"
)

const sheetName = "Jobs"

var headers = []string{"Title", "Company", "Link", "Category", "Status", "Applied", "Interview", "Notes"}

// JobExporter writes the tracked job list as an .xlsx workbook
type JobExporter struct{}

// NewJobExporter creates a job exporter
func NewJobExporter() *JobExporter {
	return &JobExporter{}
}

// Write renders jobs into a single-sheet workbook and writes it to w.
func (e *JobExporter) Write(w io.Writer, jobs []*models.Job) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return errors.Wrap(err, "failed to create sheet")
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.Wrap(err, "failed to drop default sheet")
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return errors.Wrap(err, "failed to compute header cell")
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return errors.Wrap(err, "failed to write header")
		}
	}

	for row, job := range jobs {
		values := []any{
			job.Title,
			job.Company,
			job.Link,
			job.Category,
			string(job.Status),
			formatDate(job.AppliedDate),
			formatDate(job.InterviewDate),
			job.Notes,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return errors.Wrap(err, "failed to compute cell")
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return errors.Wrap(err, "failed to write cell")
			}
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
