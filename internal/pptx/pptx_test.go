package pptx

import (
	"archive/zip"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	c, ok := ParseHex("#0078D4")
	require.True(t, ok)
	assert.Equal(t, RGB(0x00, 0x78, 0xD4), c)

	c, ok = ParseHex("#fff")
	require.True(t, ok)
	assert.Equal(t, RGB(0xFF, 0xFF, 0xFF), c)

	_, ok = ParseHex("#12345")
	assert.False(t, ok)
	_, ok = ParseHex("red")
	assert.False(t, ok)
}

func TestEstimateTextWidthPt(t *testing.T) {
	// 'W' is the widest Arial glyph, 'i' among the narrowest.
	wide := EstimateTextWidthPt("WWWW", 14, false, "Arial")
	narrow := EstimateTextWidthPt("iiii", 14, false, "Arial")
	assert.Greater(t, wide, 3*narrow)

	bold := EstimateTextWidthPt("Deploy", 14, true, "Arial")
	regular := EstimateTextWidthPt("Deploy", 14, false, "Arial")
	assert.InDelta(t, 1.08, bold/regular, 0.001)

	mono := EstimateTextWidthPt("abcd", 10, false, "Consolas")
	assert.InDelta(t, 4*0.60*10, mono, 0.001)
}

func TestWriteProducesValidPackage(t *testing.T) {
	p := New()
	slide := p.AddSlide()

	box := slide.AddTextBox(Inches(0.8), Inches(0.6), Inches(8.4), Inches(0.4))
	box.Text.Paragraphs = []Paragraph{{
		Runs: []Run{{Text: "OVERVIEW", Font: "Arial", Size: 14, Bold: true, Color: RGB(0x00, 0x78, 0xD4)}},
	}}

	card := slide.AddShape(GeomRoundRect, Inches(0.8), Inches(1.2), Inches(2.6), Inches(1.8))
	fill := RGB(0x1A, 0x1A, 0x1A)
	card.Fill = &fill
	card.Line = &Outline{Color: RGB(0x33, 0x33, 0x33), WidthPt: 1}

	path := filepath.Join(t.TempDir(), "out.pptx")
	require.NoError(t, p.SaveFile(path))

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/_rels/slide1.xml.rels",
	} {
		assert.True(t, names[want], "missing part %s", want)
	}
}

func TestRoundTrip(t *testing.T) {
	p := New()
	slide := p.AddSlide()

	box := slide.AddTextBox(Inches(0.8), Inches(1.1), Inches(8.4), Inches(1.0))
	box.Text.Paragraphs = []Paragraph{
		{Runs: []Run{{Text: "Ship ", Font: "Arial", Size: 48, Bold: true, Color: RGB(0xFF, 0xFF, 0xFF)}, {Text: "faster", Font: "Arial", Size: 48, Bold: true, Italic: true, Color: RGB(0x50, 0xE6, 0xFF)}}},
		{Align: AlignCenter, Runs: []Run{{Text: "today & <tomorrow>", Font: "Consolas", Size: 10, Color: RGB(0xE6, 0xE6, 0xE6)}}},
	}

	nowrap := slide.AddTextBox(Inches(0.8), Inches(3.0), Inches(8.4), Inches(0.4))
	nowrap.Text.WordWrap = false
	nowrap.Text.Paragraphs = []Paragraph{{Runs: []Run{{Text: "LABEL", Size: 14, Bold: true, Color: RGB(0x00, 0x78, 0xD4)}}}}

	path := filepath.Join(t.TempDir(), "roundtrip.pptx")
	require.NoError(t, p.SaveFile(path))

	deck, err := Open(path)
	require.NoError(t, err)
	require.Len(t, deck.Slides, 1)
	require.Len(t, deck.Slides[0].Shapes, 2)

	first := deck.Slides[0].Shapes[0]
	assert.Equal(t, Inches(0.8), first.Left)
	assert.Equal(t, Inches(1.1), first.Top)
	assert.Equal(t, Inches(8.4), first.Width)
	require.NotNil(t, first.Body)
	assert.Equal(t, "Ship faster\ntoday & <tomorrow>", first.Body.Text())

	runs := first.Body.Paragraphs[0].Runs
	require.Len(t, runs, 2)
	assert.Equal(t, 48.0, runs[0].SizePt)
	assert.True(t, runs[0].Bold)
	assert.Equal(t, "Arial", runs[0].Font)
	assert.Equal(t, "Consolas", first.Body.Paragraphs[1].Runs[0].Font)

	second := deck.Slides[0].Shapes[1]
	require.NotNil(t, second.Body)
	require.NotNil(t, second.Body.WordWrap)
	assert.False(t, *second.Body.WordWrap)
	assert.True(t, second.HasText())
}

func TestEmptyShapeHasNoText(t *testing.T) {
	p := New()
	slide := p.AddSlide()
	card := slide.AddShape(GeomRect, 0, 0, Inches(1), Inches(1))
	fill := RGB(0x0D, 0x11, 0x17)
	card.Fill = &fill

	path := filepath.Join(t.TempDir(), "empty.pptx")
	require.NoError(t, p.SaveFile(path))

	deck, err := Open(path)
	require.NoError(t, err)
	require.Len(t, deck.Slides[0].Shapes, 1)
	assert.False(t, deck.Slides[0].Shapes[0].HasText())
}
