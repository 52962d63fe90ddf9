package ui

import (
	"net/http"
)

// handleExport downloads the tracked jobs as an .xlsx workbook.
func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	jobs, err := a.jobs.ListJobs(r.Context(), a.importCfg.ListLimit)
	if err != nil {
		a.logger.Error("export list failed", "error", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="careerflow-jobs.xlsx"`)

	if err := a.exporter.Write(w, jobs); err != nil {
		// Headers are already gone; all we can do is log.
		a.logger.Error("export write failed", "error", err)
	}
}
