// Package swap implements the fragment-swap controller: it intercepts
// qualifying submit and click events on a parsed document, performs the
// corresponding HTTP request, and replaces a selector-named region of the
// document with server-rendered HTML or a JSON-carried fragment.
//
// Elements opt in through marker attributes. A form needs data-swap-target; a
// link or button needs data-swap-target plus data-swap-url. Anything else is
// left to default browser behavior.
//
// The controller is deliberately forgiving: network failures, malformed
// responses, and selector misses are logged and swallowed. The document is
// never mutated on a failure path. Handlers run synchronously with no timeout
// and no coordination between invocations; when two swaps race for the same
// region, the last response to be applied wins.
package swap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"log/slog"

	"golang.org/x/net/html"

	"careerflow/internal/dom"
	"careerflow/internal/errors"
)

// Marker attributes for trigger elements.
const (
	AttrTarget = "data-swap-target"
	AttrURL    = "data-swap-url"
)

// DefaultStatusSelector locates the element that receives the import-count
// summary after a JSON swap.
const DefaultStatusSelector = "#statusMessage"

// jsonFragment is the recognized shape of a JSON swap response.
type jsonFragment struct {
	JobsListHTML *string `json:"jobs_list_html"`
	Imported     *int    `json:"imported"`
}

// Controller owns one live document and handles swap events against it. It is
// not safe for concurrent use; the document is mutated without locking, which
// matches the single-threaded DOM it models.
type Controller struct {
	doc            *dom.Document
	client         *http.Client
	base           *url.URL
	logger         *slog.Logger
	statusSelector string
}

// Option configures a Controller.
type Option func(*Controller)

// WithClient sets the HTTP client used for swap requests.
func WithClient(client *http.Client) Option {
	return func(c *Controller) { c.client = client }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithStatusSelector overrides the import-count status element selector.
func WithStatusSelector(selector string) Option {
	return func(c *Controller) { c.statusSelector = selector }
}

// NewController creates a controller for a live document. pageURL is the URL
// the document was served from; relative form actions and swap URLs resolve
// against it.
func NewController(doc *dom.Document, pageURL string, opts ...Option) (*Controller, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid page URL")
	}
	c := &Controller{
		doc:            doc,
		client:         http.DefaultClient,
		base:           base,
		logger:         slog.Default(),
		statusSelector: DefaultStatusSelector,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Document returns the live document the controller mutates.
func (c *Controller) Document() *dom.Document {
	return c.doc
}

// HandleSubmit intercepts a form submission when the form carries a non-empty
// data-swap-target. It POSTs the form's fields as multipart form data to the
// form action (default: the current page path) and swaps the target from the
// response, branching on the declared content type.
func (c *Controller) HandleSubmit(ctx context.Context, ev SubmitEvent) Outcome {
	target := strings.TrimSpace(dom.Attr(ev.Form, AttrTarget))
	if target == "" {
		return skipped()
	}

	body, contentType, err := dom.EncodeMultipart(dom.FormFields(ev.Form), ev.Files)
	if err != nil {
		c.logger.Error("swap: multipart encode failed", "error", err)
		return failed(StatusParseFailed, err)
	}

	action := dom.Attr(ev.Form, "action")
	if action == "" {
		action = c.base.Path
	}
	destination, err := c.resolve(action)
	if err != nil {
		c.logger.Error("swap: bad form action", "action", action, "error", err)
		return failed(StatusFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destination, body)
	if err != nil {
		return failed(StatusFetchFailed, errors.FetchFailed(err))
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("swap: submit request failed", "url", destination, "error", err)
		return failed(StatusFetchFailed, errors.FetchFailed(err))
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("swap: response read failed", "url", destination, "error", err)
		return failed(StatusFetchFailed, errors.FetchFailed(err))
	}

	if isJSON(resp.Header.Get("Content-Type")) {
		return c.applyJSON(target, payload)
	}
	return c.applyHTML(target, payload)
}

// HandleClick intercepts a click when the clicked node, or its nearest
// ancestor, carries both data-swap-target and data-swap-url. It GETs the
// declared URL and treats the response unconditionally as HTML.
func (c *Controller) HandleClick(ctx context.Context, ev ClickEvent) Outcome {
	trigger := dom.Closest(ev.Node, func(n *html.Node) bool {
		return strings.TrimSpace(dom.Attr(n, AttrTarget)) != "" &&
			strings.TrimSpace(dom.Attr(n, AttrURL)) != ""
	})
	if trigger == nil {
		return skipped()
	}

	target := strings.TrimSpace(dom.Attr(trigger, AttrTarget))
	destination, err := c.resolve(dom.Attr(trigger, AttrURL))
	if err != nil {
		c.logger.Error("swap: bad trigger URL", "error", err)
		return failed(StatusFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, destination, nil)
	if err != nil {
		return failed(StatusFetchFailed, errors.FetchFailed(err))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("swap: click request failed", "url", destination, "error", err)
		return failed(StatusFetchFailed, errors.FetchFailed(err))
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("swap: response read failed", "url", destination, "error", err)
		return failed(StatusFetchFailed, errors.FetchFailed(err))
	}

	return c.applyHTML(target, payload)
}

// applyJSON consumes a JSON response: the fragment field replaces the swap
// target's inner content, and the import count populates the status element.
// A missing fragment field leaves the target alone but the status message is
// still updated when a count is present.
func (c *Controller) applyJSON(target string, payload []byte) Outcome {
	var frag jsonFragment
	if err := json.Unmarshal(payload, &frag); err != nil {
		c.logger.Error("swap: JSON decode failed", "error", err)
		return failed(StatusParseFailed, errors.WithCode(errors.CodeParseFailed, err))
	}

	out := Outcome{Intercepted: true}
	if frag.Imported != nil {
		out.Imported = *frag.Imported
		if statusEl := c.doc.QuerySelector(c.statusSelector); statusEl != nil {
			dom.SetText(statusEl, fmt.Sprintf("Imported %d jobs.", *frag.Imported))
		}
	}

	if frag.JobsListHTML == nil {
		out.Status = StatusStatusOnly
		return out
	}

	node, ok := c.exactlyOne(c.doc, target)
	if !ok {
		c.logger.Warn("swap: target not found in live document", "selector", target)
		out.Status = StatusNoMatch
		out.Err = errors.SelectorMiss(target)
		return out
	}
	if err := dom.SetInnerHTML(node, *frag.JobsListHTML); err != nil {
		c.logger.Error("swap: fragment parse failed", "selector", target, "error", err)
		out.Status = StatusParseFailed
		out.Err = err
		return out
	}

	out.Status = StatusInnerApplied
	return out
}

// applyHTML parses the response as a full document, locates the target
// selector on both sides, and replaces the live node wholesale. Siblings are
// preserved; anything attached to the old node is lost with it. If either
// side misses, the document stays untouched.
func (c *Controller) applyHTML(target string, payload []byte) Outcome {
	incoming, err := dom.Parse(strings.NewReader(string(payload)))
	if err != nil {
		c.logger.Error("swap: HTML parse failed", "error", err)
		return failed(StatusParseFailed, err)
	}

	replacement, ok := c.exactlyOne(incoming, target)
	if !ok {
		c.logger.Warn("swap: target not found in response", "selector", target)
		return failed(StatusNoMatch, errors.SelectorMiss(target))
	}
	current, ok := c.exactlyOne(c.doc, target)
	if !ok {
		c.logger.Warn("swap: target not found in live document", "selector", target)
		return failed(StatusNoMatch, errors.SelectorMiss(target))
	}

	if err := dom.ReplaceNode(current, replacement); err != nil {
		c.logger.Error("swap: node replacement failed", "selector", target, "error", err)
		return failed(StatusNoMatch, err)
	}
	return Outcome{Intercepted: true, Status: StatusApplied}
}

// exactlyOne enforces the selector resolution rule: replacement requires the
// selector to match exactly one element in the document.
func (c *Controller) exactlyOne(doc *dom.Document, selector string) (*html.Node, bool) {
	matches := doc.QuerySelectorAll(selector)
	if len(matches) != 1 {
		return nil, false
	}
	return matches[0], true
}

func (c *Controller) resolve(ref string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", errors.FetchFailed(err)
	}
	return c.base.ResolveReference(parsed).String(), nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
