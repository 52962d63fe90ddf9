package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"careerflow/models"
)

func TestWriteWorkbook(t *testing.T) {
	applied := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	jobs := []*models.Job{
		{
			Title:       "Backend Engineer",
			Company:     "Acme",
			Link:        "https://www.linkedin.com/jobs/view/1",
			Status:      models.JobStatusApplied,
			AppliedDate: &applied,
			Notes:       "referred by a friend",
		},
		{
			Title:   "Platform Engineer",
			Company: "Globex",
			Status:  models.JobStatusSaved,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewJobExporter().Write(&buf, jobs))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Jobs"}, f.GetSheetList())

	rows, err := f.GetRows("Jobs")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Title", "Company", "Link", "Category", "Status", "Applied", "Interview", "Notes"}, rows[0])
	assert.Equal(t, "Backend Engineer", rows[1][0])
	assert.Equal(t, "Applied", rows[1][4])
	assert.Equal(t, "2025-03-10", rows[1][5])
	assert.Equal(t, "Platform Engineer", rows[2][0])
}

func TestWriteEmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJobExporter().Write(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Jobs")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header row only")
}
