package ui

import (
	"net/http"

	"careerflow/models"
	"careerflow/ui/templates/fragments"
)

// indexView is the data for the dashboard page and its fragments.
type indexView struct {
	Jobs  []*models.Job
	Stats *models.PipelineStats
}

func (a *App) buildIndexView(r *http.Request) (*indexView, error) {
	jobs, err := a.jobs.ListJobs(r.Context(), a.importCfg.ListLimit)
	if err != nil {
		return nil, err
	}
	return &indexView{
		Jobs:  jobs,
		Stats: a.stats.Summarize(jobs),
	}, nil
}

// handleIndex renders the main dashboard page with the job list partial.
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderIndexPage(w, r)
}

// renderIndexPage renders the full dashboard. Mutation handlers reuse it so
// the swap client can extract #jobList from their HTML responses.
func (a *App) renderIndexPage(w http.ResponseWriter, r *http.Request) {
	view, err := a.buildIndexView(r)
	if err != nil {
		a.logger.Error("job list failed", "error", err)
		http.Error(w, "Failed to load jobs", http.StatusInternalServerError)
		return
	}
	a.renderTemplate(w, "index.html", view)
}

// handleJobsFragment returns the #jobList region for click-trigger swaps.
// The wrapper carries the id so the wholesale-replacement path can locate the
// selector in the response; the JSON upload path embeds only the inner
// jobs_list fragment.
func (a *App) handleJobsFragment(w http.ResponseWriter, r *http.Request) {
	view, err := a.buildIndexView(r)
	if err != nil {
		a.logger.Error("job list failed", "error", err)
		http.Error(w, "Failed to load jobs", http.StatusInternalServerError)
		return
	}
	a.renderTemplate(w, fragments.JobsRegion, view)
}

// handleStatsFragment returns the pipeline stats panel fragment.
func (a *App) handleStatsFragment(w http.ResponseWriter, r *http.Request) {
	view, err := a.buildIndexView(r)
	if err != nil {
		a.logger.Error("stats build failed", "error", err)
		http.Error(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}
	a.renderTemplate(w, fragments.StatsPanel, view)
}
