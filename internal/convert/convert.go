// Package convert turns a styled HTML deck into a PowerPoint presentation.
package convert

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/amplifier-stories/deck-tools/internal/deck"
	"github.com/amplifier-stories/deck-tools/internal/pptx"
)

// Converter builds a presentation from a parsed HTML deck. Elements are
// laid out top to bottom with a moving cursor and marked handled so the
// fallback pass does not render them twice.
type Converter struct {
	doc    *deck.Document
	prs    *pptx.Presentation
	accent pptx.Color

	handled map[*html.Node]bool

	// Warnings collects per-slide layout problems (compressed overflow,
	// unrecognized structure) for the caller to report.
	Warnings []string
}

func New(doc *deck.Document) *Converter {
	accent := msBlue
	if hex := doc.AccentColor(); hex != "" {
		if col, ok := pptx.ParseHex(hex); ok {
			accent = col
		}
	}
	return &Converter{doc: doc, prs: pptx.New(), accent: accent}
}

// Convert processes every slide and returns the assembled presentation.
func (c *Converter) Convert() (*pptx.Presentation, error) {
	slides := c.doc.Slides()
	if len(slides) == 0 {
		return nil, fmt.Errorf("no slides found in document")
	}
	for i, node := range slides {
		c.handled = map[*html.Node]bool{}
		c.processSlide(i, node)
	}
	return c.prs, nil
}

func (c *Converter) markHandled(n *deck.Node) {
	c.handled[n.HTML()] = true
}

func (c *Converter) isHandled(n *deck.Node) bool {
	for h := n.HTML(); h != nil; h = h.Parent {
		if c.handled[h] {
			return true
		}
	}
	return false
}

func (c *Converter) warnf(format string, args ...interface{}) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func isCentered(slide *deck.Node) bool {
	return slide.HasAnyClass("center", "centered", "title-slide", "section-divider", "closing")
}

func (c *Converter) processSlide(index int, node *deck.Node) {
	slide := c.prs.AddSlide()
	centered := isCentered(node)
	cursor := 0.45

	// Section number and label run above the headline.
	if num := node.FindClass("section-number"); num != nil {
		c.markHandled(num)
		addTextBox(slide, num.Text(), contentLeft, cursor, contentWidth, 0.4, textStyle{
			Size: 14, Bold: true, Color: gray50, NoWrap: true,
		})
		cursor += 0.45
	}
	if label := node.FindClass("section-label", "label", "eyebrow"); label != nil {
		c.markHandled(label)
		addSectionLabel(slide, label.Text(), cursor, c.accent)
		cursor += 0.45
	}

	if centered && cursor < 1.5 {
		cursor = 1.5
	}

	headline := node.FindTagWithClass("headline", "h1", "h2")
	if headline == nil {
		headline = node.FindTag("h1", "h2")
	}
	if headline == nil {
		headline = node.FindClass("section-title")
	}
	if headline != nil {
		c.markHandled(headline)
		size := 40.0
		if headline.Tag() == "h1" {
			size = 56
		}
		color := white
		if headline.HasClass("big-text") {
			size = 56
			color = msCyan
		}
		shape := addHeadline(slide, headline.Text(), cursor, size, centered, color)
		cursor = pptx.ToInches(shape.Bottom())
		if centered {
			cursor += 0.50
		} else {
			cursor += gapSection
		}
	}

	if med := node.FindClass("medium-headline"); med != nil && !c.isHandled(med) {
		c.markHandled(med)
		shape := addHeadline(slide, med.Text(), cursor, 36, centered, white)
		cursor = pptx.ToInches(shape.Bottom()) + gapSection
	}

	if sub := node.FindClass("subhead", "subtitle"); sub != nil && !c.isHandled(sub) {
		c.markHandled(sub)
		shape := addSubhead(slide, sub.Text(), cursor, centered, gray70)
		cursor = pptx.ToInches(shape.Bottom()) + gapSection
	}

	// Card grids.
	grids := node.FindAllClassMatch(func(class string) bool {
		for _, skip := range []string{"principles-grid", "stat-grid", "velocity-grid"} {
			if strings.Contains(class, skip) {
				return false
			}
		}
		return isCardGridClass(class)
	})
	for _, grid := range grids {
		if c.isHandled(grid) {
			continue
		}
		c.markHandled(grid)
		cursor = c.addCardGrid(slide, grid, cursor) + gapNormal
	}

	// Standalone cards outside any grid, in a single row.
	var loose []*deck.Node
	for _, card := range node.FindAllClass("card") {
		if !c.isHandled(card) {
			loose = append(loose, card)
		}
	}
	if len(loose) > 0 {
		cols := len(loose)
		if cols > 3 {
			cols = 3
		}
		gutter := 0.2
		cardW := (contentWidth - gutter*float64(cols-1)) / float64(cols)
		bottom := cursor
		for i, card := range loose {
			row := i / cols
			col := i % cols
			top := cursor + float64(row)*1.45
			c.addGridCard(slide, card, contentLeft+float64(col)*(cardW+gutter), top, cardW, 1.3)
			if b := top + 1.3; b > bottom {
				bottom = b
			}
		}
		cursor = bottom + gapNormal
	}

	if principles := node.FindClass("principles-grid", "principles"); principles != nil && !c.isHandled(principles) {
		c.markHandled(principles)
		cursor = c.addPrinciples(slide, principles, cursor) + gapNormal
	}

	// Top-level code blocks.
	for _, block := range node.FindAllTag("pre") {
		if c.isHandled(block) {
			continue
		}
		cursor = c.addCodeBlock(slide, block, cursor) + gapNormal
	}
	for _, block := range node.FindAllClass("code-block") {
		if c.isHandled(block) {
			continue
		}
		cursor = c.addCodeBlock(slide, block, cursor) + gapNormal
	}

	var tenets []*deck.Node
	for _, tenet := range node.FindAllClass("tenet") {
		if !c.isHandled(tenet) {
			tenets = append(tenets, tenet)
		}
	}
	if len(tenets) > 0 {
		cursor = c.addTenets(slide, tenets, cursor) + gapNormal
	}

	if versus := node.FindClass("versus", "comparison"); versus != nil && !c.isHandled(versus) {
		cursor = c.addVersus(slide, versus, cursor) + gapNormal
	}

	for _, table := range node.FindAllTag("table") {
		if c.isHandled(table) {
			continue
		}
		cursor = c.addTable(slide, table, cursor) + gapNormal
	}

	for _, list := range node.FindAllClass("feature-list") {
		if c.isHandled(list) {
			continue
		}
		cursor = c.addFeatureList(slide, list, contentLeft, cursor, contentWidth) + gapNormal
	}

	if stats := node.FindClass("stat-grid", "stat-row", "velocity-grid"); stats != nil && !c.isHandled(stats) {
		c.markHandled(stats)
		cursor = c.addStats(slide, stats, cursor) + gapNormal
	}

	if big := node.FindClass("big-stat"); big != nil && !c.isHandled(big) {
		c.markHandled(big)
		cursor = c.addBigStat(slide, big, cursor) + gapNormal
	}

	for _, body := range node.FindAllClass("body-text") {
		if c.isHandled(body) {
			continue
		}
		c.markHandled(body)
		text := body.Text()
		align := pptx.AlignLeft
		if centered {
			align = pptx.AlignCenter
		}
		h := estimateTextHeight(text, 14, contentWidth, false)
		addTextBox(slide, text, contentLeft, cursor, contentWidth, h, textStyle{
			Size: 14, Color: gray70, Align: align,
		})
		cursor += h + gapNormal
	}

	if meta := node.FindClass("title-meta", "meta"); meta != nil && !c.isHandled(meta) {
		c.markHandled(meta)
		top := cursor
		if top < 4.5 {
			top = 4.5
		}
		addTextBox(slide, meta.Text(), contentLeft, top, contentWidth, 0.4, textStyle{
			Size: 13, Color: gray50, Align: pptx.AlignCenter,
		})
	}

	for _, box := range node.FindAllClass("highlight-box", "callout") {
		if c.isHandled(box) {
			continue
		}
		c.markHandled(box)
		top := cursor
		if max := pptx.SlideHeightInches - 0.85; top > max {
			top = max
		}
		color := c.accent
		if col, ok := colorFromClasses(box.Classes()); ok {
			color = col
		}
		rich := resolveRichRuns(box.RichRuns())
		addHighlightBox(slide, box.Text(), top, color, rich)
		cursor = top + 0.5 + gapNormal
	}

	quote := node.FindClass("quote")
	if quote == nil {
		quote = node.FindTag("blockquote")
	}
	if quote != nil && !c.isHandled(quote) {
		cursor = c.addQuote(slide, quote, cursor) + gapNormal
	}

	for _, small := range node.FindAllClass("small-text", "footnote") {
		if c.isHandled(small) {
			continue
		}
		c.markHandled(small)
		top := cursor
		if top < 4.8 {
			top = 4.8
		}
		addTextBox(slide, small.Text(), contentLeft, top, contentWidth, 0.35, textStyle{
			Size: 11, Color: gray50,
		})
		cursor = top + 0.4
	}

	c.addUnhandled(slide, node, cursor)
	c.compressOverflow(slide, index)
}

// addUnhandled renders leftover text-bearing children so nothing written
// into the deck disappears silently.
func (c *Converter) addUnhandled(slide *pptx.Slide, node *deck.Node, cursor float64) {
	for _, child := range node.Children() {
		if c.isHandled(child) {
			continue
		}
		switch child.Tag() {
		case "style", "script":
			continue
		}
		text := child.Text()
		if len(text) <= 5 {
			continue
		}
		c.markHandled(child)
		text = truncateToFit(text, 13, contentWidth, 5.5-cursor, false)
		if text == "" {
			continue
		}
		h := estimateTextHeight(text, 13, contentWidth, false)
		addTextBox(slide, text, contentLeft, cursor, contentWidth, h, textStyle{
			Size: 13, Color: gray70,
		})
		cursor += h + gapNormal
	}
}

// compressOverflow rescales shape positions when content runs past the
// bottom edge. Heights are left alone so text keeps its estimated room.
func (c *Converter) compressOverflow(slide *pptx.Slide, index int) {
	const anchor = 0.3
	limit := pptx.SlideHeightInches - 0.2

	maxBottom := 0.0
	for _, shape := range slide.Shapes {
		if b := pptx.ToInches(shape.Bottom()); b > maxBottom {
			maxBottom = b
		}
	}
	if maxBottom <= limit {
		return
	}

	scale := (limit - anchor) / (maxBottom - anchor)
	if scale < 0.40 {
		scale = 0.40
		c.warnf("slide %d: content overflows even at maximum compression", index+1)
	}

	for _, shape := range slide.Shapes {
		top := pptx.ToInches(shape.Top)
		if top < anchor {
			continue
		}
		shape.Top = pptx.Inches(anchor + (top-anchor)*scale)
	}
}
