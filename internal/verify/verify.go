// Package verify estimates text overflow and shape overlap in generated
// presentations. The checks are heuristic: font metrics are approximated
// from character width tables, so thresholds carry generous slack to keep
// false positives down.
package verify

import (
	"math"
	"strings"

	"github.com/amplifier-stories/deck-tools/internal/pptx"
)

const (
	// Overflow is flagged only when the estimated need exceeds the
	// available height by 15 percent and by more than 0.05 inch.
	overflowSlack   = 1.15
	overflowMinIn   = 0.05
	defaultFontSize = 14.0
	defaultFont     = "Arial"

	// Overlaps thinner than this in either dimension are ignored; cards
	// legitimately touch their background boxes along an edge.
	minOverlapDim = 0.1

	// Severity steps in inches, applied to the overflow amount and to the
	// thin dimension of an overlap.
	severityModerate = 0.2
	severitySevere   = 0.5
)

type TextOverflow struct {
	ShapeIndex int
	Text       string
	NeededIn   float64
	AvailIn    float64
	Severity   string
	// OffSlide is set when the shape extends past the bottom edge even
	// before the text estimate.
	OffSlide bool
}

type ShapeOverlap struct {
	AIndex, BIndex int
	AText, BText   string
	// ThinIn is the smaller dimension of the intersection, in inches.
	ThinIn   float64
	Severity string
}

type SlideReport struct {
	Number    int
	Overflows []TextOverflow
	Overlaps  []ShapeOverlap
}

func (r *SlideReport) HasIssues() bool {
	return len(r.Overflows) > 0 || len(r.Overlaps) > 0
}

type DeckReport struct {
	Path   string
	Slides []*SlideReport
}

func (r *DeckReport) TotalOverflows() int {
	n := 0
	for _, s := range r.Slides {
		n += len(s.Overflows)
	}
	return n
}

func (r *DeckReport) TotalOverlaps() int {
	n := 0
	for _, s := range r.Slides {
		n += len(s.Overlaps)
	}
	return n
}

func (r *DeckReport) SlidesWithIssues() int {
	n := 0
	for _, s := range r.Slides {
		if s.HasIssues() {
			n++
		}
	}
	return n
}

func (r *DeckReport) Clean() bool {
	return r.SlidesWithIssues() == 0
}

// VerifyFile opens a .pptx and verifies every slide.
func VerifyFile(path string) (*DeckReport, error) {
	deck, err := pptx.Open(path)
	if err != nil {
		return nil, err
	}
	return VerifyDeck(deck), nil
}

func VerifyDeck(deck *pptx.Deck) *DeckReport {
	report := &DeckReport{Path: deck.Path}
	for i, slide := range deck.Slides {
		report.Slides = append(report.Slides, verifySlide(i+1, slide))
	}
	return report
}

func verifySlide(number int, slide *pptx.SlideData) *SlideReport {
	report := &SlideReport{Number: number}

	for i, shape := range slide.Shapes {
		if !shape.HasText() {
			continue
		}
		if of, ok := checkOverflow(i, shape); ok {
			report.Overflows = append(report.Overflows, of)
		}
	}

	for i := 0; i < len(slide.Shapes); i++ {
		for j := i + 1; j < len(slide.Shapes); j++ {
			a, b := slide.Shapes[i], slide.Shapes[j]
			if !a.HasText() || !b.HasText() {
				continue
			}
			if ov, ok := checkOverlap(i, j, a, b); ok {
				report.Overlaps = append(report.Overlaps, ov)
			}
		}
	}
	return report
}

func margin(set *int64, def int64) int64 {
	if set != nil {
		return *set
	}
	return def
}

func checkOverflow(index int, shape *pptx.ShapeData) (TextOverflow, bool) {
	body := shape.Body
	availH := shape.Height - margin(body.MarginTop, pptx.DefaultMarginTop) - margin(body.MarginBottom, pptx.DefaultMarginBottom)
	availW := shape.Width - margin(body.MarginLeft, pptx.DefaultMarginLeft) - margin(body.MarginRight, pptx.DefaultMarginRight)

	wrap := body.WordWrap == nil || *body.WordWrap
	needed := estimateBodyHeight(body, pptx.ToInches(availW), wrap)
	avail := pptx.ToInches(availH)

	of := TextOverflow{
		ShapeIndex: index,
		Text:       snippet(body.Text()),
		NeededIn:   needed,
		AvailIn:    avail,
	}

	// A shape whose effective text bottom runs past the slide edge is an
	// overflow even when the frame itself is large enough.
	textBottom := pptx.ToInches(shape.Top) + needed + pptx.ToInches(margin(body.MarginTop, pptx.DefaultMarginTop))
	if textBottom > pptx.SlideHeightInches {
		of.OffSlide = true
		of.Severity = severityLabel(textBottom - pptx.SlideHeightInches)
		return of, true
	}

	if needed > avail*overflowSlack && needed-avail > overflowMinIn {
		of.Severity = severityLabel(needed - avail)
		return of, true
	}
	return TextOverflow{}, false
}

func severityLabel(amountIn float64) string {
	switch {
	case amountIn > severitySevere:
		return "SEVERE"
	case amountIn > severityModerate:
		return "MODERATE"
	default:
		return "MINOR"
	}
}

// estimateBodyHeight estimates rendered text height in inches. With
// wrapping off each paragraph is a single line.
func estimateBodyHeight(body *pptx.Body, widthIn float64, wrap bool) float64 {
	widthPt := widthIn * 72
	if widthPt < 1 {
		widthPt = 1
	}

	total := 0.0
	for _, para := range body.Paragraphs {
		size := defaultFontSize
		font := defaultFont
		bold := false
		for _, run := range para.Runs {
			if run.SizePt > 0 && size == defaultFontSize {
				size = run.SizePt
			}
			if run.Font != "" && font == defaultFont {
				font = run.Font
			}
			if run.Bold {
				bold = true
			}
		}

		// Empty paragraphs render shorter than a full line.
		lines := 0.4
		if strings.TrimSpace(para.Text()) != "" {
			lines = 1
			if wrap {
				rendered := 0.0
				for _, run := range para.Runs {
					rendered += pptx.EstimateTextWidthPt(run.Text, size, run.Bold || bold, run.Font)
				}
				// Word wrap never packs lines perfectly.
				if l := math.Ceil(rendered * 1.05 / widthPt); l > lines {
					lines = l
				}
			}
		}

		spacing := pptx.LineHeightFactor
		if para.LineSpacing > 0 {
			spacing = para.LineSpacing
		}
		total += lines * size * spacing / 72
	}
	return total
}

func checkOverlap(i, j int, a, b *pptx.ShapeData) (ShapeOverlap, bool) {
	interW := min64(a.Left+a.Width, b.Left+b.Width) - max64(a.Left, b.Left)
	interH := min64(a.Top+a.Height, b.Top+b.Height) - max64(a.Top, b.Top)
	if interW <= 0 || interH <= 0 {
		return ShapeOverlap{}, false
	}
	thin := math.Min(pptx.ToInches(interW), pptx.ToInches(interH))
	if thin < minOverlapDim {
		return ShapeOverlap{}, false
	}

	return ShapeOverlap{
		AIndex: i, BIndex: j,
		AText: snippet(a.Body.Text()), BText: snippet(b.Body.Text()),
		ThinIn: thin, Severity: severityLabel(thin),
	}, true
}

func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if runes := []rune(s); len(runes) > 50 {
		s = string(runes[:47]) + "..."
	}
	return s
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
