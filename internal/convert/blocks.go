package convert

import (
	"strings"

	"github.com/amplifier-stories/deck-tools/internal/deck"
	"github.com/amplifier-stories/deck-tools/internal/pptx"
)

func codeBlockHeight(lines int) float64 {
	h := float64(lines)*0.18 + 0.4
	if h < 1.2 {
		h = 1.2
	}
	if h > 3.5 {
		h = 3.5
	}
	return h
}

// addCodeBlock renders a code block full width below top.
func (c *Converter) addCodeBlock(slide *pptx.Slide, block *deck.Node, top float64) float64 {
	runs := block.CodeRuns()
	lines := strings.Count(codeText(runs), "\n") + 1
	height := codeBlockHeight(lines)
	c.addCodeBlockSized(slide, block, contentLeft, top, contentWidth, height)
	return top + height
}

// addCodeBlockSized renders a code block at an explicit geometry. Font size
// drops to 9pt for dense blocks.
func (c *Converter) addCodeBlockSized(slide *pptx.Slide, block *deck.Node, left, top, width, height float64) {
	c.markHandled(block)
	addFilledBox(slide, left, top, width, height, codeBG, &borderGray, 1, pptx.GeomRoundRect)

	runs := block.CodeRuns()
	size := 10.0
	if strings.Count(codeText(runs), "\n")+1 > 12 {
		size = 9
	}

	shape := slide.AddTextBox(pptx.Inches(left+0.15), pptx.Inches(top+0.12), pptx.Inches(width-0.3), pptx.Inches(height-0.24))
	shape.Text.WordWrap = false

	para := pptx.Paragraph{NoSpacing: true}
	flush := func() {
		if len(para.Runs) == 0 {
			para.Runs = append(para.Runs, pptx.Run{Font: codeFont, Size: size, Color: codeDefault})
		}
		shape.Text.Paragraphs = append(shape.Text.Paragraphs, para)
		para = pptx.Paragraph{NoSpacing: true}
	}

	for _, run := range runs {
		parts := strings.Split(run.Text, "\n")
		for i, part := range parts {
			if i > 0 {
				flush()
			}
			if part == "" {
				continue
			}
			color := codeDefault
			for _, class := range run.Classes {
				if col, ok := codeColorByClass[class]; ok {
					color = col
					break
				}
			}
			para.Runs = append(para.Runs, pptx.Run{
				Text: part, Font: codeFont, Size: size, Bold: run.Bold, Color: color,
			})
		}
	}
	flush()
}

func codeText(runs []deck.CodeRun) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// addTenets lays out tenet boxes, two columns when there are four or more.
func (c *Converter) addTenets(slide *pptx.Slide, tenets []*deck.Node, top float64) float64 {
	if len(tenets) == 0 {
		return top
	}

	cols := 1
	if len(tenets) >= 4 {
		cols = 2
	}
	gutter := 0.2
	boxW := (contentWidth - gutter*float64(cols-1)) / float64(cols)
	rows := (len(tenets) + cols - 1) / cols
	boxH := 0.85
	if rows > 2 {
		boxH = 0.7
	}

	bottom := top
	for i, tenet := range tenets {
		c.markHandled(tenet)
		row := i / cols
		col := i % cols
		left := contentLeft + float64(col)*(boxW+gutter)
		boxTop := top + float64(row)*(boxH+0.12)

		title := textOfFirst(tenet, "tenet-title", "h3", "h4")
		text := textOfFirst(tenet, "tenet-text", "tenet-desc", "p")
		accent := c.accent
		if col, ok := colorFromClasses(tenet.Classes()); ok {
			accent = col
		}
		addTenet(slide, title, text, left, boxTop, boxW, boxH, accent)
		if b := boxTop + boxH; b > bottom {
			bottom = b
		}
	}
	return bottom
}

// addVersus renders a two-sided comparison with a "vs" divider.
func (c *Converter) addVersus(slide *pptx.Slide, versus *deck.Node, top float64) float64 {
	sides := versus.FindAllClass("versus-side")
	if len(sides) < 2 {
		sides = versus.Children()
	}
	if len(sides) < 2 {
		return top
	}
	c.markHandled(versus)

	lefts := []float64{0.8, 5.5}
	sideW := 3.7
	bottom := top

	addTextBox(slide, "vs", 4.5, top+0.6, 1.0, 0.5, textStyle{
		Size: 32, Bold: true, Color: gray50, Align: pptx.AlignCenter,
	})

	for i, side := range sides[:2] {
		c.markHandled(side)
		left := lefts[i]
		y := top

		title := textOfFirst(side, "versus-title", "h3", "h4")
		if title != "" {
			titleColor := white
			if col, ok := colorFromClasses(side.Classes()); ok {
				titleColor = col
			}
			addTextBox(slide, title, left, y, sideW, 0.35, textStyle{
				Size: 16, Bold: true, Color: titleColor,
			})
			y += 0.45
		}

		if list := side.FindClass("feature-list"); list != nil {
			y = c.addFeatureList(slide, list, left, y, sideW)
		} else if body := findCardBody(side); body != nil {
			text := body.Text()
			h := estimateTextHeight(text, 13, sideW, false)
			addTextBox(slide, text, left, y, sideW, h, textStyle{Size: 13, Color: gray70})
			y += h
		}
		if y > bottom {
			bottom = y
		}
	}
	return bottom
}

var tableColumnWidths = map[int][]float64{
	2: {4.2, 4.2},
	3: {2.5, 2.5, 3.4},
}

func markColor(text string) *pptx.Color {
	switch {
	case strings.HasPrefix(text, "✓"):
		c := msGreen
		return &c
	case strings.HasPrefix(text, "✗"):
		c := msRed
		return &c
	case strings.HasPrefix(text, "~"):
		c := msOrange
		return &c
	}
	return nil
}

// addTable renders an HTML table as positioned text cells.
func (c *Converter) addTable(slide *pptx.Slide, table *deck.Node, top float64) float64 {
	c.markHandled(table)
	rows := table.FindAllTag("tr")
	if len(rows) == 0 {
		return top
	}

	cellsOf := func(row *deck.Node) []*deck.Node {
		cells := row.FindAllTag("th")
		cells = append(cells, row.FindAllTag("td")...)
		return cells
	}

	cols := len(cellsOf(rows[0]))
	if cols == 0 {
		return top
	}
	widths, ok := tableColumnWidths[cols]
	if !ok {
		widths = make([]float64, cols)
		for i := range widths {
			widths[i] = contentWidth / float64(cols)
		}
	}

	y := top
	for ri, row := range rows {
		cells := cellsOf(row)
		header := ri == 0 && len(row.FindAllTag("th")) > 0

		rowH := 0.30
		for ci, cell := range cells {
			if ci >= len(widths) {
				break
			}
			if h := estimateTextHeight(cell.Text(), 12, widths[ci], header); h > rowH {
				rowH = h
			}
		}
		if rowH > 0.8 {
			rowH = 0.8
		}

		x := contentLeft
		for ci, cell := range cells {
			if ci >= len(widths) {
				break
			}
			text := cell.Text()
			style := textStyle{Size: 12, Color: gray70}
			switch {
			case header:
				style.Bold = true
				style.Color = c.accent
			case ci == 0:
				style.Bold = true
				style.Color = white
			}
			if col := markColor(text); col != nil {
				style.Color = *col
			}
			addTextBox(slide, text, x, y, widths[ci], rowH, style)
			x += widths[ci]
		}
		y += rowH + 0.04
	}
	return y
}

// addFeatureList renders list items at 16pt default, coloring check and
// cross marks. Width defaults to the content width.
func (c *Converter) addFeatureList(slide *pptx.Slide, list *deck.Node, left, top, width float64) float64 {
	c.markHandled(list)
	items := list.FindAllTag("li")
	if len(items) == 0 {
		items = list.Children()
	}

	size := 16.0
	if width < contentWidth {
		size = 13
	}

	y := top
	for _, item := range items {
		text := item.Text()
		if text == "" {
			continue
		}
		style := textStyle{Size: size, Color: white}
		if col := markColor(text); col != nil {
			style.Color = *col
		}
		h := estimateTextHeight(text, size, width, false)
		if min := size/72*pptx.LineHeightFactor + 0.05; h < min {
			h = min
		}
		addTextBox(slide, text, left, y, width, h, style)
		y += h + 0.02
	}
	return y
}

// addQuote renders a centered italic quote and its attribution sibling.
func (c *Converter) addQuote(slide *pptx.Slide, quote *deck.Node, top float64) float64 {
	c.markHandled(quote)
	text := quote.Text()
	h := estimateTextHeight(text, 24, contentWidth-1.0, false)
	if h < 0.6 {
		h = 0.6
	}
	addTextBox(slide, text, contentLeft+0.5, top, contentWidth-1.0, h, textStyle{
		Size: 24, Italic: true, Color: white, Align: pptx.AlignCenter,
	})
	bottom := top + h

	if attr := quote.NextSiblingWithClass("quote-attribution", "attribution"); attr != nil {
		c.markHandled(attr)
		addTextBox(slide, attr.Text(), contentLeft+0.5, bottom+0.1, contentWidth-1.0, 0.35, textStyle{
			Size: 14, Color: gray50, Align: pptx.AlignCenter,
		})
		bottom += 0.45
	}
	return bottom
}
