package app

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"careerflow/models"
)

// CoverLetterService drafts a cover letter for a tracked job and renders it
// to HTML via markdown
type CoverLetterService struct {
	applicantName string
	now           func() time.Time
}

// NewCoverLetterService creates a cover letter service. applicantName signs
// the letter.
func NewCoverLetterService(applicantName string) *CoverLetterService {
	if applicantName == "" {
		applicantName = "Applicant"
	}
	return &CoverLetterService{applicantName: applicantName, now: time.Now}
}

// BuildMarkdown assembles the letter body as markdown paragraphs.
func (s *CoverLetterService) BuildMarkdown(job *models.Job) string {
	title := job.Title
	if title == "" {
		title = "Job Position"
	}
	company := job.Company
	if company == "" {
		company = "Company"
	}

	paragraphs := []string{
		s.now().Format("January 2, 2006"),
		fmt.Sprintf("Dear Hiring Team at %s,", company),
		fmt.Sprintf("I am writing to express my strong interest in the **%s** position at %s. "+
			"After reviewing the role, I am confident that my background in software development, "+
			"problem-solving, and continuous learning aligns closely with your team's needs.", title, company),
		"My experience with backend services, HTTP APIs, and database-driven web applications " +
			"has allowed me to deliver efficient, maintainable solutions in collaborative environments. " +
			"I am particularly motivated by roles that blend backend logic with clean, user-focused design.",
		fmt.Sprintf("I would appreciate the opportunity to contribute my skills to %s and to grow within "+
			"your team. I am excited about the possibility of discussing how I can add value to your "+
			"organization.", company),
		"Thank you for considering my application. I look forward to hearing from you.",
		"Sincerely,",
		s.applicantName,
	}
	return strings.Join(paragraphs, "\n\n")
}

// RenderHTML renders the letter to HTML for the cover-letter page.
func (s *CoverLetterService) RenderHTML(job *models.Job) template.HTML {
	source := []byte(s.BuildMarkdown(job))

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank,
	})
	return template.HTML(markdown.ToHTML(source, p, renderer))
}
