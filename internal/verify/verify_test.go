package verify

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amplifier-stories/deck-tools/internal/pptx"
)

func textBox(slide *pptx.Slide, text string, left, top, width, height, size float64) *pptx.Shape {
	box := slide.AddTextBox(pptx.Inches(left), pptx.Inches(top), pptx.Inches(width), pptx.Inches(height))
	box.Text.Paragraphs = append(box.Text.Paragraphs, pptx.Paragraph{
		Runs: []pptx.Run{{Text: text, Font: "Arial", Size: size, Color: pptx.RGB(0xFF, 0xFF, 0xFF)}},
	})
	return box
}

func saveAndVerify(t *testing.T, prs *pptx.Presentation) *DeckReport {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.pptx")
	require.NoError(t, prs.SaveFile(path))
	report, err := VerifyFile(path)
	require.NoError(t, err)
	return report
}

func TestCleanDeck(t *testing.T) {
	prs := pptx.New()
	slide := prs.AddSlide()
	textBox(slide, "Short headline", 0.8, 0.5, 8.4, 0.9, 40)
	textBox(slide, "A modest line of body text.", 0.8, 1.6, 8.4, 0.5, 14)

	report := saveAndVerify(t, prs)
	assert.True(t, report.Clean())
	assert.Equal(t, 0, report.TotalOverflows())
	assert.Equal(t, 0, report.TotalOverlaps())
}

func TestDetectsOverflow(t *testing.T) {
	prs := pptx.New()
	slide := prs.AddSlide()
	long := strings.Repeat("overflowing paragraphs of measurable text ", 12)
	textBox(slide, long, 0.8, 0.5, 4.0, 0.3, 18)

	report := saveAndVerify(t, prs)
	require.Equal(t, 1, report.TotalOverflows())

	of := report.Slides[0].Overflows[0]
	assert.Greater(t, of.NeededIn, of.AvailIn)
	assert.Contains(t, of.Text, "overflowing")
}

func TestOffSlideShapeFlagged(t *testing.T) {
	prs := pptx.New()
	slide := prs.AddSlide()
	// Tall enough for its text, but positioned past the bottom edge.
	textBox(slide, "footer pushed off the deck", 0.8, 5.5, 8.4, 0.5, 14)

	report := saveAndVerify(t, prs)
	require.Equal(t, 1, report.TotalOverflows())
	assert.True(t, report.Slides[0].Overflows[0].OffSlide)
}

func TestNoWrapCountsParagraphsOnly(t *testing.T) {
	prs := pptx.New()
	slide := prs.AddSlide()
	// Wide text in a narrow frame, but wrapping is off so it renders as
	// one line and never grows vertically.
	box := textBox(slide, strings.Repeat("wide ", 40), 0.8, 0.5, 2.0, 0.4, 10)
	box.Text.WordWrap = false

	report := saveAndVerify(t, prs)
	assert.Equal(t, 0, report.TotalOverflows())
}

func TestDetectsOverlap(t *testing.T) {
	prs := pptx.New()
	slide := prs.AddSlide()
	textBox(slide, "first block", 1.0, 1.0, 3.0, 1.0, 14)
	textBox(slide, "second block", 1.2, 1.2, 3.0, 1.0, 14)

	report := saveAndVerify(t, prs)
	require.Equal(t, 1, report.TotalOverlaps())

	ov := report.Slides[0].Overlaps[0]
	assert.Equal(t, "SEVERE", ov.Severity)
	assert.Greater(t, ov.ThinIn, 0.5)
}

func TestEdgeTouchIgnored(t *testing.T) {
	prs := pptx.New()
	slide := prs.AddSlide()
	textBox(slide, "left card", 0.8, 1.0, 2.0, 1.0, 12)
	// Shares only a sliver with the first box.
	textBox(slide, "right card", 2.75, 1.0, 2.0, 1.0, 12)

	report := saveAndVerify(t, prs)
	assert.Equal(t, 0, report.TotalOverlaps())
}

func TestEmptyShapesSkipped(t *testing.T) {
	prs := pptx.New()
	slide := prs.AddSlide()
	// Background boxes carry no text and never count as overlap.
	a := slide.AddShape(pptx.GeomRoundRect, pptx.Inches(0.8), pptx.Inches(1), pptx.Inches(4), pptx.Inches(2))
	fill := pptx.RGB(0x1A, 0x1A, 0x1A)
	a.Fill = &fill
	textBox(slide, "card title", 1.0, 1.2, 3.0, 0.4, 16)

	report := saveAndVerify(t, prs)
	assert.True(t, report.Clean())
}

func TestReportFormat(t *testing.T) {
	prs := pptx.New()
	slide := prs.AddSlide()
	long := strings.Repeat("text that will not fit in this tiny frame ", 10)
	textBox(slide, long, 0.8, 0.5, 3.0, 0.3, 16)

	report := saveAndVerify(t, prs)

	var buf bytes.Buffer
	WriteReport(&buf, report, false)
	out := buf.String()
	assert.Contains(t, out, "VERIFYING: deck.pptx")
	assert.Contains(t, out, "[OVERFLOW SEVERE]")
	assert.Contains(t, out, "SUMMARY")
	assert.NotContains(t, out, "ALL CLEAN")
}

func TestReportAllClean(t *testing.T) {
	prs := pptx.New()
	slide := prs.AddSlide()
	textBox(slide, "fits fine", 0.8, 0.5, 8.4, 0.6, 14)

	report := saveAndVerify(t, prs)

	var buf bytes.Buffer
	WriteReport(&buf, report, false)
	assert.Contains(t, buf.String(), "ALL CLEAN: 1 slides")
}

func TestSnippetKeepsRunesIntact(t *testing.T) {
	long := strings.Repeat("→", 60)
	got := snippet(long)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("→", 47)+"...", got)

	short := "fits → fine"
	assert.Equal(t, short, snippet(short))
}
