package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html><body>
<div id="jobList" class="list compact">
  <ul class="job-list">
    <li class="job-card" data-status="Applied"><span class="title">Backend Engineer</span></li>
    <li class="job-card" data-status="Saved"><span class="title">SRE</span></li>
  </ul>
</div>
<div class="list">sidebar</div>
<form action="/upload"><input type="text" name="q" value="go"></form>
</body></html>`

func mustParse(t *testing.T, markup string) *Document {
	t.Helper()
	doc, err := ParseString(markup)
	require.NoError(t, err)
	return doc
}

func TestQuerySelectorByID(t *testing.T) {
	doc := mustParse(t, samplePage)

	node := doc.QuerySelector("#jobList")
	require.NotNil(t, node)
	assert.Equal(t, "div", node.Data)

	assert.Nil(t, doc.QuerySelector("#missing"))
}

func TestQuerySelectorAllByClass(t *testing.T) {
	doc := mustParse(t, samplePage)

	cards := doc.QuerySelectorAll(".job-card")
	assert.Len(t, cards, 2)

	// Class matching is token-wise, not substring.
	lists := doc.QuerySelectorAll(".list")
	assert.Len(t, lists, 2)
	assert.Empty(t, doc.QuerySelectorAll(".lis"))
}

func TestQuerySelectorByTag(t *testing.T) {
	doc := mustParse(t, samplePage)

	assert.Len(t, doc.QuerySelectorAll("li"), 2)
	assert.Len(t, doc.QuerySelectorAll("form"), 1)
}

func TestQuerySelectorTagWithClassAndID(t *testing.T) {
	doc := mustParse(t, samplePage)

	require.NotNil(t, doc.QuerySelector("div#jobList"))
	assert.Nil(t, doc.QuerySelector("span#jobList"))
	require.NotNil(t, doc.QuerySelector("ul.job-list"))
	assert.Nil(t, doc.QuerySelector("ul.job-card"))
}

func TestQuerySelectorAttribute(t *testing.T) {
	doc := mustParse(t, samplePage)

	applied := doc.QuerySelectorAll(`li[data-status=Applied]`)
	require.Len(t, applied, 1)
	assert.Equal(t, "Backend Engineer", Text(applied[0].FirstChild))

	assert.Len(t, doc.QuerySelectorAll("li[data-status]"), 2)
	assert.Empty(t, doc.QuerySelectorAll(`li[data-status=Offer]`))
}

func TestQuerySelectorDescendant(t *testing.T) {
	doc := mustParse(t, samplePage)

	titles := doc.QuerySelectorAll("#jobList .title")
	assert.Len(t, titles, 2)

	assert.Empty(t, doc.QuerySelectorAll("form .title"))
}

func TestQuerySelectorExcludesScopeRoot(t *testing.T) {
	doc := mustParse(t, `<html><body><div class="a"><div class="a">inner</div></div></body></html>`)

	// "div div" must not pair a node with itself.
	matches := doc.QuerySelectorAll("div div")
	require.Len(t, matches, 1)
	assert.Equal(t, "inner", Text(matches[0]))
}
