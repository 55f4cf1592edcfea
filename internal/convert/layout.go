package convert

import (
	"math"
	"strings"

	"github.com/amplifier-stories/deck-tools/internal/deck"
	"github.com/amplifier-stories/deck-tools/internal/pptx"
)

// estimateTextHeight estimates the rendered height of text in inches at
// the given font size inside a box of the given width, using the Arial
// character-width tables. Text frames keep ~0.1" internal margin per side,
// so the usable width loses 0.2"; the trailing 0.10" covers the vertical
// margins.
func estimateTextHeight(text string, sizePt, boxWidthIn float64, bold bool) float64 {
	return estimateTextHeightSpaced(text, sizePt, boxWidthIn, pptx.LineHeightFactor, bold)
}

func estimateTextHeightSpaced(text string, sizePt, boxWidthIn, lineSpacing float64, bold bool) float64 {
	usableWidthPt := (boxWidthIn - 0.20) * 72.0
	if usableWidthPt < 36 {
		usableWidthPt = 36
	}

	numLines := 0.0
	for _, para := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(para)
		if stripped == "" {
			numLines += 0.4 // empty paragraph gets ~40% of a line
			continue
		}
		rendered := pptx.EstimateTextWidthPt(stripped, sizePt, bold, defaultFont)
		if rendered <= usableWidthPt {
			numLines++
			continue
		}
		// 5% for word-boundary inefficiency: lines can't break mid-word,
		// leaving slack at each line end.
		wrapLines := math.Ceil(rendered / usableWidthPt * 1.05)
		if wrapLines < 2 {
			wrapLines = 2
		}
		numLines += wrapLines
	}

	lineHeight := sizePt / 72.0 * lineSpacing
	return numLines*lineHeight + 0.10
}

// truncateToFit shortens text so it fits maxHeightIn at the given size,
// appending an ellipsis. Binary search on paragraph boundaries first, then
// on words for a single long paragraph.
func truncateToFit(text string, sizePt, boxWidthIn, maxHeightIn float64, bold bool) string {
	if estimateTextHeight(text, sizePt, boxWidthIn, bold) <= maxHeightIn {
		return text
	}

	paragraphs := strings.Split(text, "\n")
	lo, hi := 0, len(paragraphs)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		candidate := strings.Join(paragraphs[:mid], "\n") + "\n..."
		if estimateTextHeight(candidate, sizePt, boxWidthIn, bold) <= maxHeightIn {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if lo > 0 {
		return strings.Join(paragraphs[:lo], "\n") + "\n..."
	}

	words := strings.Fields(text)
	lo, hi = 0, len(words)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		candidate := strings.Join(words[:mid], " ") + "..."
		if estimateTextHeight(candidate, sizePt, boxWidthIn, bold) <= maxHeightIn {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if lo < 1 {
		lo = 1
	}
	return strings.Join(words[:lo], " ") + "..."
}

// textStyle collects the optional knobs of addTextBox. The zero value is
// 14pt regular white left-aligned wrapped Arial.
type textStyle struct {
	Size   float64
	Font   string
	Bold   bool
	Italic bool
	Color  pptx.Color
	Align  pptx.Align
	NoWrap bool
	Anchor pptx.Anchor
}

func (st textStyle) normalized() textStyle {
	if st.Size == 0 {
		st.Size = 14
	}
	if st.Font == "" {
		st.Font = defaultFont
	}
	if st.Color == (pptx.Color{}) {
		st.Color = white
	}
	return st
}

// addTextBox adds a text box; every run carries an explicit font name.
func addTextBox(slide *pptx.Slide, text string, left, top, width, height float64, st textStyle) *pptx.Shape {
	st = st.normalized()
	box := slide.AddTextBox(pptx.Inches(left), pptx.Inches(top), pptx.Inches(width), pptx.Inches(height))
	box.Text.WordWrap = !st.NoWrap
	box.Text.Anchor = st.Anchor

	for _, line := range strings.Split(text, "\n") {
		box.Text.Paragraphs = append(box.Text.Paragraphs, pptx.Paragraph{
			Align: st.Align,
			Runs: []pptx.Run{{
				Text: line, Font: st.Font, Size: st.Size,
				Bold: st.Bold, Italic: st.Italic, Color: st.Color,
			}},
		})
	}
	return box
}

// richRun is a deck rich-text run resolved to concrete formatting.
type richRun struct {
	text   string
	bold   bool
	italic bool
	color  *pptx.Color
}

// resolveRichRuns maps deck runs to slide formatting (highlight spans
// go cyan, check spans go green).
func resolveRichRuns(runs []deck.RichRun) []richRun {
	out := make([]richRun, 0, len(runs))
	for _, r := range runs {
		rr := richRun{text: r.Text, bold: r.Bold, italic: r.Italic}
		switch r.Span {
		case "highlight":
			c := msCyan
			rr.color = &c
		case "check":
			c := msGreen
			rr.color = &c
		}
		out = append(out, rr)
	}
	return out
}

func plainTextOf(runs []richRun) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.text)
	}
	return b.String()
}

func anyBold(runs []richRun) bool {
	for _, r := range runs {
		if r.bold {
			return true
		}
	}
	return false
}

// addRichTextBox adds a text box with multiple formatting runs, splitting
// embedded newlines into paragraphs.
func addRichTextBox(slide *pptx.Slide, runs []richRun, left, top, width, height float64, size float64, defaultColor pptx.Color, align pptx.Align) *pptx.Shape {
	box := slide.AddTextBox(pptx.Inches(left), pptx.Inches(top), pptx.Inches(width), pptx.Inches(height))
	box.Text.WordWrap = true

	paragraphs := [][]richRun{{}}
	for _, r := range runs {
		parts := strings.Split(r.text, "\n")
		for i, part := range parts {
			if i > 0 {
				paragraphs = append(paragraphs, nil)
			}
			if part != "" {
				piece := r
				piece.text = part
				paragraphs[len(paragraphs)-1] = append(paragraphs[len(paragraphs)-1], piece)
			}
		}
	}

	for _, pruns := range paragraphs {
		para := pptx.Paragraph{Align: align}
		if len(pruns) == 0 {
			para.Runs = []pptx.Run{{Font: defaultFont, Size: size, Color: defaultColor}}
		}
		for _, r := range pruns {
			color := defaultColor
			if r.color != nil {
				color = *r.color
			}
			para.Runs = append(para.Runs, pptx.Run{
				Text: r.text, Font: defaultFont, Size: size,
				Bold: r.bold, Italic: r.italic, Color: color,
			})
		}
		box.Text.Paragraphs = append(box.Text.Paragraphs, para)
	}
	return box
}

// addFilledBox adds a filled shape (card background, code block bg).
func addFilledBox(slide *pptx.Slide, left, top, width, height float64, fill pptx.Color, border *pptx.Color, borderWidthPt float64, geom pptx.Geometry) *pptx.Shape {
	shape := slide.AddShape(geom, pptx.Inches(left), pptx.Inches(top), pptx.Inches(width), pptx.Inches(height))
	f := fill
	shape.Fill = &f
	if border != nil {
		shape.Line = &pptx.Outline{Color: *border, WidthPt: borderWidthPt}
	}
	return shape
}
