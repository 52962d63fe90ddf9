package ui

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"careerflow/internal/linkedin"
	"careerflow/ui/templates/fragments"
)

// uploadResponse is the JSON contract the fragment-swap client consumes: the
// import count plus the refreshed jobs-list markup to swap into #jobList.
type uploadResponse struct {
	Imported     int    `json:"imported"`
	Skipped      int    `json:"skipped"`
	JobsListHTML string `json:"jobs_list_html"`
}

// handleUploadLinkedIn accepts uploaded LinkedIn saved-jobs HTML files,
// parses them concurrently, imports new jobs, and returns JSON with the
// inserted count and the updated jobs list fragment.
func (a *App) handleUploadLinkedIn(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.importCfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(a.importCfg.MaxUploadBytes); err != nil {
		a.logger.Warn("upload rejected", "error", err)
		writeJSONError(w, http.StatusBadRequest, "Upload too large or malformed")
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		writeJSONError(w, http.StatusBadRequest, "No file provided")
		return
	}
	if len(files) > a.importCfg.MaxFiles {
		writeJSONError(w, http.StatusBadRequest, "Too many files")
		return
	}

	// Parse each saved-jobs page concurrently; imports stay sequential so the
	// dedup checks see each other's inserts.
	parsed := make([][]linkedin.ParsedJob, len(files))
	g, _ := errgroup.WithContext(r.Context())
	for i, header := range files {
		i, header := i, header
		g.Go(func() error {
			file, err := header.Open()
			if err != nil {
				return err
			}
			defer file.Close()
			jobs, err := a.parser.ExtractJobs(file)
			if err != nil {
				return err
			}
			parsed[i] = jobs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.logger.Warn("upload parse failed", "error", err)
		writeJSONError(w, http.StatusBadRequest, "Could not parse uploaded file")
		return
	}

	var candidates []linkedin.ParsedJob
	for _, jobs := range parsed {
		candidates = append(candidates, jobs...)
	}

	report, err := a.jobs.ImportJobs(r.Context(), candidates)
	if err != nil {
		a.logger.Error("import failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Import failed")
		return
	}

	view, err := a.buildIndexView(r)
	if err != nil {
		a.logger.Error("job list failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to load jobs")
		return
	}
	fragment, err := a.renderFragment(fragments.JobsList, view)
	if err != nil {
		a.logger.Error("fragment render failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to render jobs list")
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Imported:     report.Imported,
		Skipped:      report.Skipped,
		JobsListHTML: fragment,
	})
}
