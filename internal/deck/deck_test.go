package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDeck = `<!DOCTYPE html>
<html><head><style>
:root { --color-accent: #50E6FF; --font-body: Arial; }
</style></head><body>
<div class="slide title-slide center">
  <h1>Ship Faster</h1>
  <p class="subhead">A story about <strong>deck</strong> automation</p>
</div>
<section class="slide">
  <div class="section-label">Overview</div>
  <div class="thirds">
    <div class="card"><div class="card-title">One</div><div class="card-text">First thing</div></div>
    <div class="card"><div class="card-title">Two</div><div class="card-text">Second thing</div></div>
  </div>
</section>
</body></html>`

func TestSlidesAndClasses(t *testing.T) {
	doc, err := ParseString(sampleDeck)
	require.NoError(t, err)

	slides := doc.Slides()
	require.Len(t, slides, 2)
	assert.Equal(t, "div", slides[0].Tag())
	assert.True(t, slides[0].HasClass("title-slide"))
	assert.Equal(t, "section", slides[1].Tag())
	assert.False(t, slides[1].HasClass("center"))
}

func TestCSSVarsAndAccent(t *testing.T) {
	doc, err := ParseString(sampleDeck)
	require.NoError(t, err)

	vars := doc.CSSVars()
	assert.Equal(t, "#50E6FF", vars["color-accent"])
	assert.Equal(t, "Arial", vars["font-body"])
	assert.Equal(t, "#50E6FF", doc.AccentColor())
}

func TestFindClassAndText(t *testing.T) {
	doc, err := ParseString(sampleDeck)
	require.NoError(t, err)
	slide := doc.Slides()[1]

	label := slide.FindClass("section-label")
	require.NotNil(t, label)
	assert.Equal(t, "Overview", label.Text())

	cards := slide.FindAllClass("card")
	require.Len(t, cards, 2)
	assert.Equal(t, "One", cards[0].FindClass("card-title").Text())
	assert.Equal(t, "Second thing", cards[1].FindClass("card-text").Text())

	grid := slide.FindAllClassMatch(func(c string) bool { return c == "thirds" })
	require.Len(t, grid, 1)
	assert.Len(t, grid[0].FindAllClassDirect("card"), 2)
}

func TestTextCollapsesWhitespaceAndBreaks(t *testing.T) {
	doc, err := ParseString(`<div class="slide"><p class="body-text">first
      line<br>second   line</p></div>`)
	require.NoError(t, err)

	body := doc.Slides()[0].FindClass("body-text")
	require.NotNil(t, body)
	assert.Equal(t, "first line\nsecond line", body.Text())
}

func TestRichRuns(t *testing.T) {
	doc, err := ParseString(`<div class="slide"><p class="note">plain <strong>bold</strong> and <span class="highlight">lit</span> end</p></div>`)
	require.NoError(t, err)

	runs := doc.Slides()[0].FindClass("note").RichRuns()
	require.Len(t, runs, 5)
	assert.Equal(t, RichRun{Text: "plain "}, runs[0])
	assert.Equal(t, RichRun{Text: "bold", Bold: true}, runs[1])
	assert.Equal(t, RichRun{Text: " and "}, runs[2])
	assert.Equal(t, RichRun{Text: "lit", Span: "highlight"}, runs[3])
	assert.Equal(t, RichRun{Text: " end"}, runs[4])
}

func TestRichRunsMergeSameFormatting(t *testing.T) {
	doc, err := ParseString(`<div class="slide"><p class="note"><strong>a</strong><strong>b</strong> tail</p></div>`)
	require.NoError(t, err)

	runs := doc.Slides()[0].FindClass("note").RichRuns()
	require.Len(t, runs, 2)
	assert.Equal(t, "ab", runs[0].Text)
	assert.True(t, runs[0].Bold)
	assert.False(t, runs[1].Bold)
}

func TestCodeRunsPreserveWhitespace(t *testing.T) {
	doc, err := ParseString(`<div class="slide"><pre class="code-block"><span class="code-keyword">func</span> main() {
    <span class="code-comment">// hi</span>
}</pre></div>`)
	require.NoError(t, err)

	runs := doc.Slides()[0].FindClass("code-block").CodeRuns()
	require.NotEmpty(t, runs)
	assert.Equal(t, "func", runs[0].Text)
	assert.Contains(t, runs[0].Classes, "code-keyword")
	assert.Contains(t, runs[1].Text, " main() {\n")
}

func TestNextSiblingWithClass(t *testing.T) {
	doc, err := ParseString(`<div class="slide"><div class="quote">Words</div><div class="quote-attribution">— Someone</div></div>`)
	require.NoError(t, err)

	quote := doc.Slides()[0].FindClass("quote")
	attr := quote.NextSiblingWithClass("quote-attribution", "quote-attr")
	require.NotNil(t, attr)
	assert.Equal(t, "— Someone", attr.Text())
}
