package ui

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"careerflow/models"
)

// handleUpdateStatus moves a job through the pipeline. The response is the
// full dashboard page; the swap client extracts #jobList from it.
func (a *App) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	status, ok := models.ParseJobStatus(r.FormValue("status"))
	if !ok {
		http.Error(w, "Unknown status", http.StatusBadRequest)
		return
	}

	if err := a.jobs.UpdateStatus(r.Context(), id, status); err != nil {
		a.logger.Error("status update failed", "job_id", id, "error", err)
		http.Error(w, "Status update failed", http.StatusInternalServerError)
		return
	}

	a.renderIndexPage(w, r)
}

// handleDeleteJob removes a job and responds with the refreshed dashboard.
func (a *App) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	if err := a.jobs.DeleteJob(r.Context(), id); err != nil {
		a.logger.Error("delete failed", "job_id", id, "error", err)
		http.Error(w, "Delete failed", http.StatusInternalServerError)
		return
	}

	a.renderIndexPage(w, r)
}

// coverLetterView is the data for the cover letter page.
type coverLetterView struct {
	Job    *models.Job
	Letter template.HTML
}

// handleCoverLetter renders a drafted cover letter for one job.
func (a *App) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	job, err := a.jobs.GetJob(r.Context(), id)
	if err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	a.renderTemplate(w, "cover_letter.html", coverLetterView{
		Job:    job,
		Letter: a.letters.RenderHTML(job),
	})
}
