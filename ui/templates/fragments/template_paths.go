// Package fragments provides template name constants for the swap fragments
package fragments

// Template names for fragment rendering
const (
	// JobsList is the inner job list, embedded in JSON upload responses.
	JobsList = "jobs_list.html"
	// JobsRegion is the #jobList wrapper served to click-trigger swaps.
	JobsRegion = "jobs_region.html"
	// StatsPanel is the #statsPanel pipeline summary.
	StatsPanel = "stats.html"
)
