package convert

import (
	"fmt"
	"strings"

	"github.com/amplifier-stories/deck-tools/internal/deck"
	"github.com/amplifier-stories/deck-tools/internal/pptx"
)

func gridColumns(class string, count int) int {
	switch {
	case strings.Contains(class, "grid-5"):
		return 3
	case strings.Contains(class, "grid-4"), strings.Contains(class, "fourths"):
		return 4
	case strings.Contains(class, "grid-3"), strings.Contains(class, "thirds"):
		return 3
	case strings.Contains(class, "grid-2"):
		return 2
	case strings.Contains(class, "halves"):
		if count < 3 {
			return count
		}
		return 3
	default:
		if count < 3 {
			return count
		}
		return 3
	}
}

func isCardGridClass(class string) bool {
	for _, m := range []string{"thirds", "halves", "fourths", "tools-grid", "grid-2", "grid-3", "grid-4", "grid-5"} {
		if strings.Contains(class, m) {
			return true
		}
	}
	if class == "grid" || strings.HasPrefix(class, "grid ") || strings.HasSuffix(class, " grid") || strings.Contains(class, " grid ") {
		return true
	}
	return false
}

// addCardGrid lays out the cards of a grid container in rows. Returns the
// bottom edge of the last row.
func (c *Converter) addCardGrid(slide *pptx.Slide, grid *deck.Node, top float64) float64 {
	cards := grid.FindAllClassDirect("card")
	if len(cards) == 0 {
		cards = grid.Children()
	}
	if len(cards) == 0 {
		return top
	}

	cols := gridColumns(strings.Join(grid.Classes(), " "), len(cards))
	gutter := 0.2
	cardW := (contentWidth - gutter*float64(cols-1)) / float64(cols)
	for cols > 1 && cardW < 2.5 {
		cols--
		cardW = (contentWidth - gutter*float64(cols-1)) / float64(cols)
	}

	rows := (len(cards) + cols - 1) / cols
	cardH := 1.3
	if rows > 1 {
		cardH = 1.15
	}

	bottom := top
	for i, card := range cards {
		row := i / cols
		col := i % cols
		left := contentLeft + float64(col)*(cardW+gutter)
		cardTop := top + float64(row)*(cardH+0.15)

		c.addGridCard(slide, card, left, cardTop, cardW, cardH)
		if b := cardTop + cardH; b > bottom {
			bottom = b
		}
	}
	return bottom
}

// addGridCard renders one card of a grid, dispatching on its content shape.
func (c *Converter) addGridCard(slide *pptx.Slide, card *deck.Node, left, top, width, height float64) {
	c.markHandled(card)

	// grid-2 commonly holds two code blocks side by side.
	if card.Tag() == "pre" || card.HasClass("code-block") {
		c.addCodeBlockSized(slide, card, left, top, width, height)
		return
	}

	if num := card.FindClass("card-number"); num != nil {
		title := textOfFirst(card, "card-title", "h3", "h4")
		body := cardBodyText(card)
		c.addNumberCard(slide, num.Text(), title, body, left, top, width, height)
		return
	}
	if name := card.FindClass("module-name"); name != nil {
		contract := textOfFirst(card, "module-contract")
		purpose := textOfFirst(card, "module-purpose", "card-text")
		c.addModuleCard(slide, name.Text(), contract, purpose, left, top, width, height)
		return
	}

	title := textOfFirst(card, "card-title", "h3", "h4")
	body := cardBodyText(card)
	var rich []richRun
	if bodyNode := findCardBody(card); bodyNode != nil {
		rich = resolveRichRuns(bodyNode.RichRuns())
	}
	titleColor := c.accent
	if col, ok := colorFromClasses(card.Classes()); ok {
		titleColor = col
	}
	addCard(slide, title, body, left, top, width, height, titleColor, rich)
}

func findCardBody(card *deck.Node) *deck.Node {
	for _, class := range []string{"card-text", "card-desc", "card-description"} {
		if n := card.FindClass(class); n != nil {
			return n
		}
	}
	if n := card.FindTag("p"); n != nil {
		return n
	}
	return nil
}

func cardBodyText(card *deck.Node) string {
	if n := findCardBody(card); n != nil {
		return n.Text()
	}
	return ""
}

func textOfFirst(card *deck.Node, names ...string) string {
	for _, name := range names {
		if n := card.FindClass(name); n != nil {
			return n.Text()
		}
		if n := card.FindTag(name); n != nil {
			return n.Text()
		}
	}
	return ""
}

// addModuleCard renders a module card: accent bar, name, contract in
// monospace, purpose text. Fonts scale with the card height.
func (c *Converter) addModuleCard(slide *pptx.Slide, name, contract, purpose string, left, top, width, height float64) {
	addFilledBox(slide, left, top, width, height, darkGray, &borderGray, 1, pptx.GeomRoundRect)

	bar := slide.AddShape(pptx.GeomRect, pptx.Inches(left), pptx.Inches(top), pptx.Inches(width), pptx.Inches(0.04))
	barFill := c.accent
	bar.Fill = &barFill

	nameSize := 13.0
	contractSize := 9.0
	purposeSize := 10.0
	if height < 1.0 {
		nameSize, contractSize, purposeSize = 11, 8, 9
	}

	y := top + 0.1
	addTextBox(slide, name, left+0.12, y, width-0.24, 0.3, textStyle{
		Size: nameSize, Bold: true, Color: white, NoWrap: true,
	})
	y += 0.32
	if contract != "" {
		addTextBox(slide, contract, left+0.12, y, width-0.24, 0.25, textStyle{
			Size: contractSize, Font: codeFont, Color: codeGreen, NoWrap: true,
		})
		y += 0.27
	}
	if purpose != "" {
		remaining := top + height - y - 0.08
		if remaining > 0.15 {
			addTextBox(slide, purpose, left+0.12, y, width-0.24, remaining, textStyle{
				Size: purposeSize, Color: gray70,
			})
		}
	}
}

// addNumberCard renders a step card with a large number, title and text.
func (c *Converter) addNumberCard(slide *pptx.Slide, number, title, text string, left, top, width, height float64) {
	addFilledBox(slide, left, top, width, height, darkGray, &borderGray, 1, pptx.GeomRoundRect)

	numSize := float64(int(height * 28))
	if numSize > 48 {
		numSize = 48
	}
	if numSize < 24 {
		numSize = 24
	}

	numH := numSize/72*pptx.LineHeightFactor + 0.05
	addTextBox(slide, number, left+0.12, top+0.08, width-0.24, numH, textStyle{
		Size: numSize, Bold: true, Color: c.accent,
	})

	y := top + 0.08 + numH + 0.02
	if title != "" {
		addTextBox(slide, title, left+0.12, y, width-0.24, 0.3, textStyle{
			Size: 13, Bold: true, Color: white,
		})
		y += 0.32
	}
	if text != "" {
		remaining := top + height - y - 0.08
		if remaining > 0.15 {
			addTextBox(slide, text, left+0.12, y, width-0.24, remaining, textStyle{
				Size: 10, Color: gray70,
			})
		}
	}
}

// addPrinciples lays out numbered principles in two columns.
func (c *Converter) addPrinciples(slide *pptx.Slide, grid *deck.Node, top float64) float64 {
	items := grid.FindAllClassDirect("principle")
	if len(items) == 0 {
		items = grid.Children()
	}
	if len(items) == 0 {
		return top
	}

	cols := 2
	gutter := 0.3
	colW := (contentWidth - gutter) / 2
	rows := (len(items) + cols - 1) / cols
	itemH := 0.85
	if rows > 3 {
		itemH = 0.70
	}

	bottom := top
	for i, item := range items {
		c.markHandled(item)
		row := i / cols
		col := i % cols
		left := contentLeft + float64(col)*(colW+gutter)
		itemTop := top + float64(row)*(itemH+0.12)

		num := textOfFirst(item, "principle-number")
		if num == "" {
			num = fmt.Sprintf("%02d", i+1)
		}
		title := textOfFirst(item, "principle-title", "h3", "h4")
		desc := textOfFirst(item, "principle-text", "principle-desc", "p")

		addTextBox(slide, num, left, itemTop, 0.55, 0.45, textStyle{
			Size: 22, Bold: true, Color: c.accent,
		})
		addTextBox(slide, title, left+0.6, itemTop, colW-0.6, 0.3, textStyle{
			Size: 13, Bold: true, Color: white,
		})
		if desc != "" {
			addTextBox(slide, desc, left+0.6, itemTop+0.3, colW-0.6, itemH-0.32, textStyle{
				Size: 10, Color: gray70,
			})
		}
		if b := itemTop + itemH; b > bottom {
			bottom = b
		}
	}
	return bottom
}

// addStats lays out stat cells: big number over a small label.
func (c *Converter) addStats(slide *pptx.Slide, grid *deck.Node, top float64) float64 {
	items := grid.FindAllClassDirect("stat")
	if len(items) == 0 {
		items = grid.Children()
	}
	if len(items) == 0 {
		return top
	}

	gutter := 0.2
	cellW := (contentWidth - gutter*float64(len(items)-1)) / float64(len(items))
	bottom := top
	for i, item := range items {
		c.markHandled(item)
		left := contentLeft + float64(i)*(cellW+gutter)

		number := textOfFirst(item, "stat-number", "stat-value")
		label := textOfFirst(item, "stat-label", "stat-desc")
		if number == "" && label == "" {
			number = item.Text()
		}

		addTextBox(slide, number, left, top, cellW, 0.65, textStyle{
			Size: 40, Bold: true, Color: msCyan, Align: pptx.AlignCenter,
		})
		labelH := 0.0
		if label != "" {
			labelH = estimateTextHeight(label, 12, cellW, false)
			if labelH < 0.25 {
				labelH = 0.25
			}
			addTextBox(slide, label, left, top+0.68, cellW, labelH, textStyle{
				Size: 12, Color: gray70, Align: pptx.AlignCenter,
			})
		}
		if b := top + 0.68 + labelH; b > bottom {
			bottom = b
		}
	}
	return bottom
}

// addBigStat renders a single oversized stat with an optional unit line.
func (c *Converter) addBigStat(slide *pptx.Slide, stat *deck.Node, top float64) float64 {
	number := textOfFirst(stat, "big-stat-number", "stat-number")
	if number == "" {
		number = stat.Text()
	}
	unit := textOfFirst(stat, "big-stat-unit", "stat-unit", "stat-label")

	addTextBox(slide, number, contentLeft, top, contentWidth, 1.0, textStyle{
		Size: 56, Bold: true, Color: msCyan, Align: pptx.AlignCenter,
	})
	bottom := top + 1.0
	if unit != "" {
		addTextBox(slide, unit, contentLeft, bottom, contentWidth, 0.4, textStyle{
			Size: 18, Color: gray70, Align: pptx.AlignCenter,
		})
		bottom += 0.4
	}
	return bottom
}
