package convert

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amplifier-stories/deck-tools/internal/deck"
	"github.com/amplifier-stories/deck-tools/internal/pptx"
)

const sampleHTML = `<!DOCTYPE html>
<html><head><style>
:root { --color-accent: #00CC6A; }
.slide { width: 1280px; height: 720px; }
</style></head><body>
<div class="slide title-slide">
  <h1>Shipping Decks Faster</h1>
  <div class="subhead">From HTML to the boardroom</div>
  <div class="title-meta">Stories Team · 2026</div>
</div>
<div class="slide">
  <div class="section-label">Pipeline</div>
  <h2>Three moving parts</h2>
  <div class="grid thirds">
    <div class="card">
      <div class="card-title">Author</div>
      <div class="card-text">Write slides as plain HTML.</div>
    </div>
    <div class="card">
      <div class="card-title">Convert</div>
      <div class="card-text">Render each section to shapes.</div>
    </div>
    <div class="card">
      <div class="card-title">Verify</div>
      <div class="card-text">Catch overflow before review.</div>
    </div>
  </div>
</div>
<div class="slide">
  <h2>The loop</h2>
  <pre><span class="code-keyword">for</span> slide := range deck {
    render(slide)
}</pre>
</div>
</body></html>`

func convertSample(t *testing.T) (*Converter, *pptx.Deck) {
	t.Helper()

	doc, err := deck.ParseString(sampleHTML)
	require.NoError(t, err)

	conv := New(doc)
	prs, err := conv.Convert()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.pptx")
	require.NoError(t, prs.SaveFile(path))

	out, err := pptx.Open(path)
	require.NoError(t, err)
	return conv, out
}

func TestConvertSlideCount(t *testing.T) {
	_, out := convertSample(t)
	assert.Len(t, out.Slides, 3)
}

func TestConvertAccentFromCSSVars(t *testing.T) {
	doc, err := deck.ParseString(sampleHTML)
	require.NoError(t, err)

	conv := New(doc)
	assert.Equal(t, msGreen, conv.accent)
}

func TestConvertTitleSlide(t *testing.T) {
	_, out := convertSample(t)

	text := slideText(out.Slides[0])
	assert.Contains(t, text, "Shipping Decks Faster")
	assert.Contains(t, text, "From HTML to the boardroom")
	assert.Contains(t, text, "Stories Team")
}

func TestConvertCardGrid(t *testing.T) {
	_, out := convertSample(t)

	text := slideText(out.Slides[1])
	assert.Contains(t, text, "PIPELINE", "section labels are uppercased")
	assert.Contains(t, text, "Author")
	assert.Contains(t, text, "Render each section to shapes.")

	// Three cards on one row: backgrounds plus title and body boxes.
	titled := 0
	for _, shape := range out.Slides[1].Shapes {
		if shape.Body == nil {
			continue
		}
		switch shape.Body.Text() {
		case "Author", "Convert", "Verify":
			titled++
		}
	}
	assert.Equal(t, 3, titled)
}

func TestConvertCodeBlock(t *testing.T) {
	_, out := convertSample(t)

	var code *pptx.ShapeData
	for _, shape := range out.Slides[2].Shapes {
		if shape.Body != nil && strings.Contains(shape.Body.Text(), "render(slide)") {
			code = shape
			break
		}
	}
	require.NotNil(t, code)

	assert.Equal(t, "Consolas", code.Body.Paragraphs[0].Runs[0].Font)
	require.NotNil(t, code.Body.WordWrap)
	assert.False(t, *code.Body.WordWrap)
	assert.Equal(t, "for", code.Body.Paragraphs[0].Runs[0].Text)
}

func TestConvertCodeBlocksInGrid(t *testing.T) {
	const html = `<html><body>
<div class="slide">
  <h2>Side by side</h2>
  <div class="grid-2">
    <pre>func left() {}</pre>
    <pre>func right() {}</pre>
  </div>
</div>
</body></html>`

	doc, err := deck.ParseString(html)
	require.NoError(t, err)
	prs, err := New(doc).Convert()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "grid.pptx")
	require.NoError(t, prs.SaveFile(path))
	out, err := pptx.Open(path)
	require.NoError(t, err)

	text := slideText(out.Slides[0])
	assert.Contains(t, text, "func left() {}")
	assert.Contains(t, text, "func right() {}")

	// Two code text boxes on one row, monospace runs.
	var boxes []*pptx.ShapeData
	for _, shape := range out.Slides[0].Shapes {
		if shape.Body != nil && strings.HasPrefix(shape.Body.Text(), "func ") {
			boxes = append(boxes, shape)
		}
	}
	require.Len(t, boxes, 2)
	assert.Equal(t, boxes[0].Top, boxes[1].Top)
	assert.NotEqual(t, boxes[0].Left, boxes[1].Left)
	assert.Equal(t, "Consolas", boxes[0].Body.Paragraphs[0].Runs[0].Font)
}

func TestConvertNoWarningsOnSample(t *testing.T) {
	conv, _ := convertSample(t)
	assert.Empty(t, conv.Warnings)
}

func TestConvertEmptyDocument(t *testing.T) {
	doc, err := deck.ParseString("<html><body><p>no slides here</p></body></html>")
	require.NoError(t, err)

	_, err = New(doc).Convert()
	assert.Error(t, err)
}

func TestCompressOverflow(t *testing.T) {
	prs := pptx.New()
	slide := prs.AddSlide()
	slide.AddTextBox(pptx.Inches(0.8), pptx.Inches(0.45), pptx.Inches(8.4), pptx.Inches(0.5))
	low := slide.AddTextBox(pptx.Inches(0.8), pptx.Inches(6.0), pptx.Inches(8.4), pptx.Inches(0.8))

	c := &Converter{prs: prs}
	c.compressOverflow(slide, 0)

	// Positions scale toward the anchor, heights are untouched.
	assert.Less(t, pptx.ToInches(low.Top), 5.0)
	assert.Greater(t, pptx.ToInches(low.Top), 0.3)
	assert.Equal(t, pptx.Inches(0.8), low.Height)
}

func slideText(s *pptx.SlideData) string {
	var b strings.Builder
	for _, shape := range s.Shapes {
		if shape.Body != nil {
			b.WriteString(shape.Body.Text())
			b.WriteString("\n")
		}
	}
	return b.String()
}
