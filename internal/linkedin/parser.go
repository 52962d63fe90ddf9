// Package linkedin extracts saved jobs from an exported LinkedIn page.
//
// LinkedIn pages bury their data as HTML-escaped JSON inside <code> and
// <script> tags, with most fields null and only a navigation URL to go on.
// The parser tries a JSON decode with a recursive job-node search first and
// falls back to scanning for /jobs/view/ URLs with nearby title/company
// heuristics when the JSON is too fragmented to decode.
package linkedin

import (
	"encoding/json"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"careerflow/internal/dom"
	"careerflow/internal/errors"
)

// ParsedJob is one job extracted from a saved-jobs page, not yet persisted.
type ParsedJob struct {
	Title   string
	Company string
	Link    string
}

// Parser extracts jobs from LinkedIn saved-jobs HTML exports.
type Parser struct {
	logger    *slog.Logger
	sanitizer *bluemonday.Policy
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// NewParser creates a parser. Extracted titles and companies pass through a
// strict sanitizer before they reach the store.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		logger:    slog.Default(),
		sanitizer: bluemonday.StrictPolicy(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ExtractJobs parses an uploaded saved-jobs page and returns the jobs found,
// deduplicated by link.
func (p *Parser) ExtractJobs(r io.Reader) ([]ParsedJob, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.WithCode(errors.CodeParseFailed, err)
	}

	var collected []ParsedJob
	for _, tag := range findDataTags(root) {
		text := strings.TrimSpace(dom.Text(tag))
		if text == "" {
			continue
		}
		unescaped := html.UnescapeString(text)

		if jobs := extractFromJSON(unescaped); len(jobs) > 0 {
			collected = append(collected, jobs...)
			continue
		}
		collected = append(collected, extractFromText(unescaped)...)
	}

	jobs := p.dedupe(collected)
	p.logger.Debug("linkedin: extraction complete", "candidates", len(collected), "jobs", len(jobs))
	return jobs, nil
}

// findDataTags returns every <code> and <script> element; that is where
// LinkedIn embeds its payloads.
func findDataTags(root *html.Node) []*html.Node {
	var tags []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "code" || n.Data == "script") {
			tags = append(tags, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return tags
}

// dedupe collapses candidates by normalized link, merging missing titles and
// companies, filtering placeholder links, and sanitizing text fields.
func (p *Parser) dedupe(candidates []ParsedJob) []ParsedJob {
	byLink := make(map[string]*ParsedJob)
	var order []string

	for _, job := range candidates {
		link := strings.TrimSpace(job.Link)
		if link == "" || isPlaceholderLink(link) {
			continue
		}
		existing, ok := byLink[link]
		if !ok {
			copied := job
			copied.Link = link
			byLink[link] = &copied
			order = append(order, link)
			continue
		}
		if existing.Title == "" && job.Title != "" {
			existing.Title = job.Title
		}
		if existing.Company == "" && job.Company != "" {
			existing.Company = job.Company
		}
	}

	jobs := make([]ParsedJob, 0, len(order))
	for _, link := range order {
		job := byLink[link]
		title := strings.TrimSpace(p.sanitizer.Sanitize(job.Title))
		if title == "" {
			title = "Untitled"
		}
		company := strings.TrimSpace(p.sanitizer.Sanitize(job.Company))
		if company == "" {
			company = "Unknown company"
		}
		jobs = append(jobs, ParsedJob{Title: title, Company: company, Link: link})
	}
	return jobs
}

func isPlaceholderLink(link string) bool {
	lower := strings.ToLower(link)
	return lower == "string" || lower == "null" || strings.Contains(link, "com.linkedin.common.Url")
}

// --------------------------
// JSON extraction
// --------------------------

var urlFields = []string{"navigationUrl", "navigationUrlForTracking", "navigationUrlForJob", "jobUrl", "url"}

// extractFromJSON decodes the text as JSON and recursively searches for job
// nodes. Returns nil when the text is not valid JSON.
func extractFromJSON(text string) []ParsedJob {
	var data any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil
	}
	var jobs []ParsedJob
	searchJobNodes(data, &jobs)
	return jobs
}

// searchJobNodes walks decoded JSON looking for nodes carrying a job URL hint
// alongside title/company shapes LinkedIn commonly uses.
func searchJobNodes(node any, out *[]ParsedJob) {
	switch node := node.(type) {
	case map[string]any:
		for _, field := range urlFields {
			raw, ok := node[field]
			if !ok || raw == nil {
				continue
			}
			link := normalizeLink(raw)
			if link == "" {
				continue
			}
			*out = append(*out, ParsedJob{
				Title:   titleFromNode(node),
				Company: companyFromNode(node),
				Link:    link,
			})
		}
		for _, value := range node {
			searchJobNodes(value, out)
		}
	case []any:
		for _, item := range node {
			searchJobNodes(item, out)
		}
	}
}

// titleFromNode tries the common title locations.
func titleFromNode(node map[string]any) string {
	candidates := []string{
		stringValue(node["title"]),
		nestedText(node["titleText"]),
		nestedText(node["primaryText"]),
		nestedText(node["headline"]),
		stringValue(node["name"]),
	}
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// companyFromNode tries the common company locations.
func companyFromNode(node map[string]any) string {
	candidates := []string{
		stringValue(node["companyName"]),
		nestedText(node["secondaryTitleText"]),
		nestedText(node["subtitle"]),
	}
	if company, ok := node["company"].(map[string]any); ok {
		candidates = append(candidates, stringValue(company["name"]))
	}
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// nestedText unwraps LinkedIn's {"text": "..."} wrappers.
func nestedText(v any) string {
	if m, ok := v.(map[string]any); ok {
		return stringValue(m["text"])
	}
	return ""
}

// normalizeLink turns whatever LinkedIn put in a URL field into an absolute
// link, or "" when it cannot.
func normalizeLink(raw any) string {
	link, ok := raw.(string)
	if !ok {
		// Sometimes the URL is wrapped one level deeper.
		if m, isMap := raw.(map[string]any); isMap {
			for _, key := range []string{"url", "navigationUrl", "href"} {
				if s, sok := m[key].(string); sok {
					link, ok = s, true
					break
				}
			}
		}
		if !ok {
			return ""
		}
	}

	link = strings.TrimSpace(html.UnescapeString(link))
	link = strings.TrimSpace(strings.TrimPrefix(link, "navigationUrl:"))
	if strings.HasPrefix(link, "/") {
		link = "https://www.linkedin.com" + link
	}
	return link
}

// --------------------------
// Regex fallback
// --------------------------

var (
	jobURLPattern  = regexp.MustCompile(`(?i)(https?://www\.linkedin\.com/jobs/view/[0-9]+[^\s"'>]*)`)
	titlePattern   = regexp.MustCompile(`(?i)"title"\s*:\s*"([^"]{3,200})"`)
	companyPattern = regexp.MustCompile(`(?i)"companyName"\s*:\s*"([^"]{3,200})"`)
)

// extractFromText scans raw text for job view URLs and pulls title/company
// from a window of nearby text.
func extractFromText(text string) []ParsedJob {
	var jobs []ParsedJob
	for _, loc := range jobURLPattern.FindAllStringIndex(text, -1) {
		link := normalizeLink(text[loc[0]:loc[1]])
		if link == "" {
			continue
		}
		start := loc[0] - 300
		if start < 0 {
			start = 0
		}
		end := loc[1] + 300
		if end > len(text) {
			end = len(text)
		}
		window := text[start:end]
		jobs = append(jobs, ParsedJob{
			Title:   firstGroup(titlePattern, window),
			Company: firstGroup(companyPattern, window),
			Link:    link,
		})
	}
	return jobs
}

func firstGroup(pattern *regexp.Regexp, text string) string {
	if m := pattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
