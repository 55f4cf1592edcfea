// Package pptx writes and reads minimal PresentationML (.pptx) packages:
// enough of the OOXML surface for dark-mode slide decks built from text
// boxes and preset-geometry shapes, plus font metrics for layout
// estimation. Nothing in the module pulls in a full OOXML library; the
// package speaks zip+XML directly.
package pptx

import "fmt"

// EMU (English Metric Units) conversions.
const (
	EMUPerInch  = 914400
	EMUPerPoint = 12700
)

// Slide geometry, 16:9 at 10 inches wide.
const (
	SlideWidthInches  = 10.0
	SlideHeightInches = 5.625
)

// Inches converts inches to EMU.
func Inches(in float64) int64 {
	return int64(in * EMUPerInch)
}

// ToInches converts EMU to inches.
func ToInches(emu int64) float64 {
	return float64(emu) / EMUPerInch
}

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

func (c Color) hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex parses "#RGB" or "#RRGGBB".
func ParseHex(s string) (c Color, ok bool) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return
	}
	return Color{R: r, G: g, B: b}, true
}

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

type Anchor int

const (
	AnchorTop Anchor = iota
	AnchorMiddle
)

type Geometry int

const (
	GeomRect Geometry = iota
	GeomRoundRect
)

// Run is a formatted fragment of a paragraph. Size is in points; every run
// carries an explicit font so PowerPoint never falls back to theme fonts.
type Run struct {
	Text   string
	Font   string
	Size   float64
	Bold   bool
	Italic bool
	Color  Color
}

type Paragraph struct {
	Align Align
	Runs  []Run
	// NoSpacing zeroes space-before/space-after (used by code blocks).
	NoSpacing bool
}

type TextFrame struct {
	WordWrap   bool
	Anchor     Anchor
	Paragraphs []Paragraph
}

// Shape is a slide shape: a text box or a filled preset-geometry shape.
// Geometry fields are EMU.
type Shape struct {
	Left, Top     int64
	Width, Height int64

	TextBox  bool
	Geometry Geometry
	Fill     *Color
	Line     *Outline
	Text     *TextFrame
}

type Outline struct {
	Color   Color
	WidthPt float64
}

// Bottom returns the shape's bottom edge in EMU.
func (s *Shape) Bottom() int64 {
	return s.Top + s.Height
}

type Slide struct {
	Background Color
	Shapes     []*Shape
}

// AddShape appends and returns a filled preset-geometry shape.
func (s *Slide) AddShape(geom Geometry, left, top, width, height int64) *Shape {
	sh := &Shape{Left: left, Top: top, Width: width, Height: height, Geometry: geom}
	s.Shapes = append(s.Shapes, sh)
	return sh
}

// AddTextBox appends and returns an empty word-wrapped text box.
func (s *Slide) AddTextBox(left, top, width, height int64) *Shape {
	sh := &Shape{
		Left: left, Top: top, Width: width, Height: height,
		TextBox: true,
		Text:    &TextFrame{WordWrap: true},
	}
	s.Shapes = append(s.Shapes, sh)
	return sh
}

// Presentation is an in-memory deck being built for writing.
type Presentation struct {
	Slides []*Slide
}

func New() *Presentation {
	return &Presentation{}
}

// AddSlide appends a slide with a solid black background.
func (p *Presentation) AddSlide() *Slide {
	slide := &Slide{Background: RGB(0, 0, 0)}
	p.Slides = append(p.Slides, slide)
	return slide
}
