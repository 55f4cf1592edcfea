package convert

import (
	"strings"

	"github.com/amplifier-stories/deck-tools/internal/pptx"
)

// addSectionLabel adds a colored uppercase section label.
func addSectionLabel(slide *pptx.Slide, text string, top float64, color pptx.Color) *pptx.Shape {
	return addTextBox(slide, strings.ToUpper(text), contentLeft, top, contentWidth, 0.4, textStyle{
		Size: 14, Bold: true, Color: color, NoWrap: true,
	})
}

func headlineHeight(text string, size float64) float64 {
	h := estimateTextHeight(text, size, contentWidth, true)
	min := size/72*pptx.LineHeightFactor + 0.1
	if h < min {
		h = min
	}
	if h > 3.5 {
		h = 3.5
	}
	return h
}

// addHeadline adds a large bold headline with content-estimated height.
func addHeadline(slide *pptx.Slide, text string, top, size float64, center bool, color pptx.Color) *pptx.Shape {
	align := pptx.AlignLeft
	if center {
		align = pptx.AlignCenter
	}
	return addTextBox(slide, text, contentLeft, top, contentWidth, headlineHeight(text, size), textStyle{
		Size: size, Bold: true, Color: color, Align: align,
	})
}

func subheadHeight(text string) float64 {
	h := estimateTextHeight(text, 24, contentWidth, false)
	min := 24.0/72*pptx.LineHeightFactor + 0.1
	if h < min {
		h = min
	}
	if h > 2.5 {
		h = 2.5
	}
	return h
}

func addSubhead(slide *pptx.Slide, text string, top float64, center bool, color pptx.Color) *pptx.Shape {
	align := pptx.AlignLeft
	if center {
		align = pptx.AlignCenter
	}
	return addTextBox(slide, text, contentLeft, top, contentWidth, subheadHeight(text), textStyle{
		Size: 24, Color: color, Align: align,
	})
}

// addCard adds a card with title and description on a rounded background.
// The description font auto-shrinks until the text fits.
func addCard(slide *pptx.Slide, title, text string, left, top, width, height float64, titleColor pptx.Color, rich []richRun) {
	addFilledBox(slide, left, top, width, height, darkGray, &borderGray, 1, pptx.GeomRoundRect)

	// The +0.05" buffer prevents tight-fit overflows from the text-frame
	// internal margins.
	titleHeight := estimateTextHeight(title, 16, width-0.3, true) + 0.05
	if titleHeight < 0.35 {
		titleHeight = 0.35
	}
	if max := height * 0.50; titleHeight > max {
		titleHeight = max
	}

	addTextBox(slide, title, left+0.15, top+0.15, width-0.3, titleHeight, textStyle{
		Size: 16, Bold: true, Color: titleColor,
	})

	textTop := top + 0.15 + titleHeight + gapTight
	textHeight := height - (0.15 + titleHeight + gapTight + 0.05)

	innerW := width - 0.3
	descContent := text
	if len(rich) > 0 {
		descContent = plainTextOf(rich)
	}
	minHeight := textHeight
	if minHeight < 0.2 {
		minHeight = 0.2
	}
	descFont := 12.0
	for _, try := range []float64{12, 11, 10, 9, 8} {
		descFont = try
		if estimateTextHeight(descContent, try, innerW, false) <= minHeight {
			break
		}
	}

	if est := estimateTextHeight(descContent, descFont, innerW, false); est > textHeight {
		textHeight = est
	}
	if textHeight < 0.2 {
		textHeight = 0.2
	}

	if len(rich) > 0 {
		addRichTextBox(slide, rich, left+0.15, textTop, innerW, textHeight, descFont, gray70, pptx.AlignLeft)
	} else {
		addTextBox(slide, text, left+0.15, textTop, innerW, textHeight, textStyle{Size: descFont, Color: gray70})
	}
}

var tenetBackgrounds = map[pptx.Color]pptx.Color{
	msGreen:  pptx.RGB(0x0D, 0x1A, 0x0D),
	msOrange: pptx.RGB(0x1A, 0x15, 0x0D),
	msRed:    pptx.RGB(0x1A, 0x0D, 0x0D),
}

// addTenet adds a tenet box with a left accent bar on a tinted background.
func addTenet(slide *pptx.Slide, title, text string, left, top, width, height float64, accent pptx.Color) {
	bg, ok := tenetBackgrounds[accent]
	if !ok {
		bg = pptx.RGB(0x0D, 0x15, 0x1A)
	}

	addFilledBox(slide, left, top, width, height, bg, nil, 0, pptx.GeomRoundRect)

	// Accent bar kept 0.15" wide so it stays visible after export.
	bar := slide.AddShape(pptx.GeomRect, pptx.Inches(left), pptx.Inches(top), pptx.Inches(0.15), pptx.Inches(height))
	barFill := accent
	bar.Fill = &barFill

	textLeft := left + 0.25
	textWidth := width - 0.35
	titleH := estimateTextHeight(title, 14, textWidth, true)
	if titleH < 0.25 {
		titleH = 0.25
	}
	if max := height * 0.45; titleH > max {
		titleH = max
	}
	addTextBox(slide, title, textLeft, top+0.08, textWidth, titleH, textStyle{
		Size: 14, Bold: true, Color: white,
	})

	textTop := top + 0.08 + titleH + gapTight
	textH := height - (0.08 + titleH + gapTight + 0.05)
	if text != "" && textH > 0.1 {
		if textH < 0.15 {
			textH = 0.15
		}
		addTextBox(slide, text, textLeft, textTop, textWidth, textH, textStyle{Size: 11, Color: gray70})
	}
}

var highlightBackgrounds = map[pptx.Color]pptx.Color{
	msGreen:  pptx.RGB(0x00, 0x1A, 0x0D),
	msOrange: pptx.RGB(0x33, 0x1A, 0x00),
	msRed:    pptx.RGB(0x1A, 0x0D, 0x0D),
}

// addHighlightBox adds a tinted callout box sized to its content.
func addHighlightBox(slide *pptx.Slide, text string, top float64, color pptx.Color, rich []richRun) {
	bg, ok := highlightBackgrounds[color]
	if !ok {
		bg = pptx.RGB(0x00, 0x1A, 0x33)
	}

	// Highlight boxes commonly carry <strong> emphasis, which widens the
	// character metrics.
	innerW := contentWidth - 0.4
	textH := estimateTextHeight(text, 14, innerW, anyBold(rich))
	boxH := textH + 0.24
	if boxH < 0.5 {
		boxH = 0.5
	}

	addFilledBox(slide, contentLeft, top, contentWidth, boxH, bg, &color, 1, pptx.GeomRoundRect)

	if len(rich) > 0 {
		addRichTextBox(slide, rich, contentLeft+0.2, top+0.12, innerW, boxH-0.24, 14, white, pptx.AlignLeft)
	} else {
		addTextBox(slide, text, contentLeft+0.2, top+0.12, innerW, boxH-0.24, textStyle{Size: 14, Color: white})
	}
}
