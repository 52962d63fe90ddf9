package swap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerflow/internal/dom"
)

const basePage = `<!DOCTYPE html>
<html><body>
<p id="statusMessage"></p>
<form action="/upload" enctype="multipart/form-data" data-swap-target="#jobList">
  <input type="text" name="note" value="hello">
  <input type="submit" value="Go">
</form>
<form id="plainForm" action="/upload">
  <input type="text" name="note" value="hello">
</form>
<button id="refresh" data-swap-target="#jobList" data-swap-url="/fragments/jobs">Refresh</button>
<button id="plainButton">Nothing</button>
<div id="jobList">OLD</div>
</body></html>`

// countingHandler records error-level log lines so tests can observe the
// silent-failure branch without scraping output.
type countingHandler struct {
	slog.Handler
	errors atomic.Int64
}

func newCountingLogger() (*slog.Logger, *countingHandler) {
	h := &countingHandler{Handler: slog.NewTextHandler(&strings.Builder{}, nil)}
	return slog.New(h), h
}

func (h *countingHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		h.errors.Add(1)
	}
	return h.Handler.Handle(ctx, r)
}

func newTestController(t *testing.T, pageURL string, opts ...Option) *Controller {
	t.Helper()
	doc, err := dom.ParseString(basePage)
	require.NoError(t, err)
	ctrl, err := NewController(doc, pageURL, opts...)
	require.NoError(t, err)
	return ctrl
}

func findForm(t *testing.T, ctrl *Controller, withTarget bool) SubmitEvent {
	t.Helper()
	for _, form := range ctrl.Document().QuerySelectorAll("form") {
		if dom.HasAttr(form, AttrTarget) == withTarget {
			return SubmitEvent{Form: form}
		}
	}
	t.Fatal("form not found")
	return SubmitEvent{}
}

func TestSubmitWithoutTargetIsNotIntercepted(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	ctrl := newTestController(t, server.URL+"/")
	out := ctrl.Dispatch(context.Background(), findForm(t, ctrl, false))

	assert.False(t, out.Intercepted)
	assert.Equal(t, StatusSkipped, out.Status)
	assert.Equal(t, int64(0), hits.Load(), "no request should be made")
}

func TestClickWithoutBothAttributesIsNotIntercepted(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	ctrl := newTestController(t, server.URL+"/")
	button := ctrl.Document().QuerySelector("#plainButton")
	require.NotNil(t, button)

	out := ctrl.Dispatch(context.Background(), ClickEvent{Node: button})

	assert.False(t, out.Intercepted)
	assert.Equal(t, int64(0), hits.Load())
}

func TestSubmitJSONSwapsInnerContentAndStatusMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "hello", r.FormValue("note"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jobs_list_html": "<ul><li>Backend Engineer</li></ul>", "imported": 5}`))
	}))
	defer server.Close()

	ctrl := newTestController(t, server.URL+"/")
	out := ctrl.Dispatch(context.Background(), findForm(t, ctrl, true))

	require.True(t, out.Intercepted)
	assert.Equal(t, StatusInnerApplied, out.Status)
	assert.Equal(t, 5, out.Imported)

	target := ctrl.Document().QuerySelector("#jobList")
	require.NotNil(t, target)
	markup, err := dom.RenderNode(target)
	require.NoError(t, err)
	assert.Contains(t, markup, "<ul><li>Backend Engineer</li></ul>")
	assert.NotContains(t, markup, "OLD")

	status := ctrl.Document().QuerySelector("#statusMessage")
	require.NotNil(t, status)
	assert.Equal(t, "Imported 5 jobs.", dom.Text(status))
}

func TestSubmitJSONWithoutFragmentStillUpdatesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"imported": 3}`))
	}))
	defer server.Close()

	ctrl := newTestController(t, server.URL+"/")
	out := ctrl.Dispatch(context.Background(), findForm(t, ctrl, true))

	require.True(t, out.Intercepted)
	assert.Equal(t, StatusStatusOnly, out.Status)
	assert.Equal(t, 3, out.Imported)

	target := ctrl.Document().QuerySelector("#jobList")
	assert.Equal(t, "OLD", dom.Text(target), "swap target must be untouched")
	status := ctrl.Document().QuerySelector("#statusMessage")
	assert.Equal(t, "Imported 3 jobs.", dom.Text(status))
}

func TestClickReplacesTargetWholesale(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/fragments/jobs", r.URL.Path)
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><div id="jobList" class="fresh">NEW</div></body></html>`))
	}))
	defer server.Close()

	ctrl := newTestController(t, server.URL+"/")
	oldNode := ctrl.Document().QuerySelector("#jobList")
	require.NotNil(t, oldNode)

	button := ctrl.Document().QuerySelector("#refresh")
	out := ctrl.Dispatch(context.Background(), ClickEvent{Node: button})

	require.True(t, out.Intercepted)
	assert.Equal(t, StatusApplied, out.Status)

	replaced := ctrl.Document().QuerySelector("#jobList")
	require.NotNil(t, replaced)
	assert.NotSame(t, oldNode, replaced, "node identity must change")
	assert.Equal(t, "NEW", dom.Text(replaced))
	assert.Equal(t, "fresh", dom.Attr(replaced, "class"))
	assert.Len(t, ctrl.Document().QuerySelectorAll("#jobList"), 1, "no duplicate elements")
}

func TestClickDescendantOfTriggerIsIntercepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<div id="jobList">NEW</div>`))
	}))
	defer server.Close()

	page := `<html><body>
		<a data-swap-target="#jobList" data-swap-url="/x"><span id="inner">go</span></a>
		<div id="jobList">OLD</div>
	</body></html>`
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	ctrl, err := NewController(doc, server.URL+"/")
	require.NoError(t, err)

	out := ctrl.Dispatch(context.Background(), ClickEvent{Node: doc.QuerySelector("#inner")})

	require.True(t, out.Intercepted)
	assert.Equal(t, StatusApplied, out.Status)
	assert.Equal(t, "NEW", dom.Text(doc.QuerySelector("#jobList")))
}

func TestSelectorMissLeavesDocumentUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><div id="somethingElse">NEW</div></body></html>`))
	}))
	defer server.Close()

	logger, counter := newCountingLogger()
	ctrl := newTestController(t, server.URL+"/", WithLogger(logger))

	before, err := ctrl.Document().HTML()
	require.NoError(t, err)

	button := ctrl.Document().QuerySelector("#refresh")
	out := ctrl.Dispatch(context.Background(), ClickEvent{Node: button})

	require.True(t, out.Intercepted)
	assert.Equal(t, StatusNoMatch, out.Status)
	assert.Error(t, out.Err)

	after, err := ctrl.Document().HTML()
	require.NoError(t, err)
	assert.Equal(t, before, after, "document must not be mutated")
	assert.Equal(t, int64(0), counter.errors.Load(), "selector miss is a warning, not an error")
}

func TestAmbiguousSelectorIsNoOp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div class="card">A</div><div class="card">B</div></body></html>`))
	}))
	defer server.Close()

	page := `<html><body>
		<button id="go" data-swap-target=".card" data-swap-url="/x">go</button>
		<div class="card">OLD</div>
	</body></html>`
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	ctrl, err := NewController(doc, server.URL+"/")
	require.NoError(t, err)

	out := ctrl.Dispatch(context.Background(), ClickEvent{Node: doc.QuerySelector("#go")})

	assert.Equal(t, StatusNoMatch, out.Status)
	assert.Equal(t, "OLD", dom.Text(doc.QuerySelector(".card")))
}

func TestNetworkFailureLogsOnceAndLeavesDOM(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // reject every connection

	logger, counter := newCountingLogger()
	ctrl := newTestController(t, server.URL+"/", WithLogger(logger))

	before, err := ctrl.Document().HTML()
	require.NoError(t, err)

	out := ctrl.Dispatch(context.Background(), findForm(t, ctrl, true))

	require.True(t, out.Intercepted)
	assert.Equal(t, StatusFetchFailed, out.Status)
	assert.Error(t, out.Err)
	assert.Equal(t, int64(1), counter.errors.Load(), "exactly one logged error")

	after, err := ctrl.Document().HTML()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMalformedJSONIsParseFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jobs_list_html": `))
	}))
	defer server.Close()

	ctrl := newTestController(t, server.URL+"/")
	out := ctrl.Dispatch(context.Background(), findForm(t, ctrl, true))

	assert.Equal(t, StatusParseFailed, out.Status)
	assert.Error(t, out.Err)
	assert.Equal(t, "OLD", dom.Text(ctrl.Document().QuerySelector("#jobList")))
}

func TestLastResponseWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		label := r.URL.Query().Get("v")
		w.Write([]byte(`<html><body><div id="jobList">` + label + `</div></body></html>`))
	}))
	defer server.Close()

	page := `<html><body>
		<button id="first" data-swap-target="#jobList" data-swap-url="/jobs?v=first">a</button>
		<button id="second" data-swap-target="#jobList" data-swap-url="/jobs?v=second">b</button>
		<div id="jobList">OLD</div>
	</body></html>`
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	ctrl, err := NewController(doc, server.URL+"/")
	require.NoError(t, err)

	ctx := context.Background()
	// The handler is synchronous, so application order is dispatch order:
	// whichever response is applied last owns the region.
	require.Equal(t, StatusApplied, ctrl.Dispatch(ctx, ClickEvent{Node: doc.QuerySelector("#first")}).Status)
	require.Equal(t, StatusApplied, ctrl.Dispatch(ctx, ClickEvent{Node: doc.QuerySelector("#second")}).Status)

	matches := doc.QuerySelectorAll("#jobList")
	require.Len(t, matches, 1)
	assert.Equal(t, "second", dom.Text(matches[0]))
}

func TestSubmitDefaultsToPagePath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"imported": 0}`))
	}))
	defer server.Close()

	page := `<html><body>
		<p id="statusMessage"></p>
		<form data-swap-target="#jobList"><input type="text" name="q" value="x"></form>
		<div id="jobList"></div>
	</body></html>`
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	ctrl, err := NewController(doc, server.URL+"/dashboard")
	require.NoError(t, err)

	out := ctrl.Dispatch(context.Background(), SubmitEvent{Form: doc.QuerySelector("form")})

	require.True(t, out.Intercepted)
	assert.Equal(t, "/dashboard", gotPath)
}
