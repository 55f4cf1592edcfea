package convert

import "github.com/amplifier-stories/deck-tools/internal/pptx"

// Slide geometry in inches.
const (
	slideWidth   = pptx.SlideWidthInches
	slideHeight  = pptx.SlideHeightInches
	contentLeft  = 0.8
	contentWidth = 8.4
)

// Consistent gap system.
const (
	gapTight   = 0.08
	gapNormal  = 0.10
	gapSection = 0.20
)

const (
	defaultFont = "Arial"
	codeFont    = "Consolas"
)

// Dark-mode deck palette.
var (
	black      = pptx.RGB(0x00, 0x00, 0x00)
	white      = pptx.RGB(0xFF, 0xFF, 0xFF)
	msBlue     = pptx.RGB(0x00, 0x78, 0xD4)
	msCyan     = pptx.RGB(0x50, 0xE6, 0xFF)
	msGreen    = pptx.RGB(0x00, 0xCC, 0x6A)
	msOrange   = pptx.RGB(0xFF, 0x9F, 0x0A)
	msRed      = pptx.RGB(0xFF, 0x45, 0x3A)
	msPurple   = pptx.RGB(0x8B, 0x5C, 0xF6)
	gray70     = pptx.RGB(0xB3, 0xB3, 0xB3)
	gray50     = pptx.RGB(0x80, 0x80, 0x80)
	darkGray   = pptx.RGB(0x1A, 0x1A, 0x1A)
	borderGray = pptx.RGB(0x33, 0x33, 0x33)
	codeBG     = pptx.RGB(0x0D, 0x11, 0x17)
)

// Code syntax colors.
var (
	codeGreen   = pptx.RGB(0x4A, 0xDE, 0x80)
	codeBlue    = pptx.RGB(0x60, 0xA5, 0xFA)
	codeYellow  = pptx.RGB(0xFB, 0xBF, 0x24)
	codeGray    = pptx.RGB(0x6B, 0x73, 0x80)
	codePurple  = pptx.RGB(0xC0, 0x84, 0xFC)
	codeString  = pptx.RGB(0xFB, 0xBF, 0x24)
	codeDefault = pptx.RGB(0xE6, 0xE6, 0xE6)
)

var accentByClass = map[string]pptx.Color{
	"green":     msGreen,
	"orange":    msOrange,
	"red":       msRed,
	"ms-green":  msGreen,
	"ms-orange": msOrange,
	"ms-red":    msRed,
	"ms-blue":   msBlue,
	"ms-cyan":   msCyan,
	"ms-purple": msPurple,
	"warning":   msOrange,
}

// colorFromClasses extracts the accent color implied by CSS classes.
func colorFromClasses(classes []string) (pptx.Color, bool) {
	for _, cls := range classes {
		if c, ok := accentByClass[cls]; ok {
			return c, true
		}
	}
	return pptx.Color{}, false
}

var codeColorByClass = map[string]pptx.Color{
	"code-keyword":     codeBlue,
	"keyword":          codeBlue,
	"code-string":      codeString,
	"string":           codeString,
	"code-comment":     codeGray,
	"comment":          codeGray,
	"code-type":        codeGreen,
	"type":             codeGreen,
	"code-func":        codeYellow,
	"func":             codeYellow,
	"code-number":      codePurple,
	"number":           codePurple,
	"layer-kernel":     codeBlue,
	"layer-foundation": codeGreen,
	"layer-apps":       codePurple,
	"layer-modules":    codeYellow,
}
