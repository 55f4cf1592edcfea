package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Default text-frame margins when bodyPr omits them, in EMU.
const (
	DefaultMarginTop    = 45720 // 0.05"
	DefaultMarginBottom = 45720
	DefaultMarginLeft   = 91440 // 0.1"
	DefaultMarginRight  = 91440
)

// Deck is a read-only view of a .pptx file: slide shapes with geometry and
// text runs, which is all the verifier needs.
type Deck struct {
	Path   string
	Slides []*SlideData
}

type SlideData struct {
	Shapes []*ShapeData
}

// ShapeData geometry is EMU.
type ShapeData struct {
	Left, Top     int64
	Width, Height int64
	Body          *Body
}

// HasText reports whether the shape carries visible text.
func (s *ShapeData) HasText() bool {
	return s.Body != nil && strings.TrimSpace(s.Body.Text()) != ""
}

type Body struct {
	// WordWrap is nil when bodyPr does not specify wrapping (OOXML
	// defaults to wrapping).
	WordWrap *bool
	// Margins are nil when unset; use the Default* constants then.
	MarginLeft, MarginRight *int64
	MarginTop, MarginBottom *int64
	Paragraphs              []BodyParagraph
}

// Text joins paragraph texts with newlines.
func (b *Body) Text() string {
	parts := make([]string, len(b.Paragraphs))
	for i, p := range b.Paragraphs {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n")
}

type BodyParagraph struct {
	// LineSpacing is a multiplier (1.0 = single); 0 means unspecified.
	LineSpacing float64
	Runs        []BodyRun
}

func (p BodyParagraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// BodyRun carries the font properties the overflow estimator needs.
// SizePt is 0 when the run does not set an explicit size.
type BodyRun struct {
	Text   string
	SizePt float64
	Bold   bool
	Font   string
}

var slidePartPattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Open reads the slide parts of a .pptx package.
func Open(path string) (deck *Deck, err error) {
	var zr *zip.ReadCloser
	if zr, err = zip.OpenReader(path); err != nil {
		err = fmt.Errorf("failed to open %s: %w", path, err)
		return
	}
	defer zr.Close()

	type numbered struct {
		num  int
		file *zip.File
	}
	var parts []numbered
	for _, file := range zr.File {
		m := slidePartPattern.FindStringSubmatch(file.Name)
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1])
		parts = append(parts, numbered{num: num, file: file})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].num < parts[j].num })

	deck = &Deck{Path: path}
	for _, part := range parts {
		var slide *SlideData
		if slide, err = readSlidePart(part.file); err != nil {
			err = fmt.Errorf("failed to read %s: %w", part.file.Name, err)
			deck = nil
			return
		}
		deck.Slides = append(deck.Slides, slide)
	}
	return
}

type xSlide struct {
	Shapes []xShape `xml:"cSld>spTree>sp"`
}

type xShape struct {
	Off  *xPoint  `xml:"spPr>xfrm>off"`
	Ext  *xExtent `xml:"spPr>xfrm>ext"`
	Body *xTxBody `xml:"txBody"`
}

type xPoint struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type xExtent struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

type xTxBody struct {
	BodyPr xBodyPr `xml:"bodyPr"`
	Paras  []xPara `xml:"p"`
}

type xBodyPr struct {
	Wrap string `xml:"wrap,attr"`
	LIns *int64 `xml:"lIns,attr"`
	TIns *int64 `xml:"tIns,attr"`
	RIns *int64 `xml:"rIns,attr"`
	BIns *int64 `xml:"bIns,attr"`
}

type xPara struct {
	SpcPct *xSpcPct `xml:"pPr>lnSpc>spcPct"`
	Runs   []xRun   `xml:"r"`
}

type xSpcPct struct {
	Val int64 `xml:"val,attr"`
}

type xRun struct {
	Pr   *xRunPr `xml:"rPr"`
	Text string  `xml:"t"`
}

type xRunPr struct {
	Sz    string  `xml:"sz,attr"`
	B     string  `xml:"b,attr"`
	Latin *xLatin `xml:"latin"`
}

type xLatin struct {
	Typeface string `xml:"typeface,attr"`
}

func readSlidePart(file *zip.File) (slide *SlideData, err error) {
	var rc io.ReadCloser
	if rc, err = file.Open(); err != nil {
		return
	}
	defer rc.Close()

	var parsed xSlide
	if err = xml.NewDecoder(rc).Decode(&parsed); err != nil {
		return
	}

	slide = &SlideData{}
	for _, xs := range parsed.Shapes {
		shape := &ShapeData{}
		if xs.Off != nil {
			shape.Left, shape.Top = xs.Off.X, xs.Off.Y
		}
		if xs.Ext != nil {
			shape.Width, shape.Height = xs.Ext.Cx, xs.Ext.Cy
		}
		if xs.Body != nil {
			shape.Body = convertBody(xs.Body)
		}
		slide.Shapes = append(slide.Shapes, shape)
	}
	return
}

func convertBody(xb *xTxBody) *Body {
	body := &Body{
		MarginLeft:   xb.BodyPr.LIns,
		MarginRight:  xb.BodyPr.RIns,
		MarginTop:    xb.BodyPr.TIns,
		MarginBottom: xb.BodyPr.BIns,
	}
	switch xb.BodyPr.Wrap {
	case "square":
		t := true
		body.WordWrap = &t
	case "none":
		f := false
		body.WordWrap = &f
	}
	for _, xp := range xb.Paras {
		para := BodyParagraph{}
		if xp.SpcPct != nil {
			para.LineSpacing = float64(xp.SpcPct.Val) / 100000.0
		}
		for _, xr := range xp.Runs {
			run := BodyRun{Text: xr.Text}
			if xr.Pr != nil {
				if sz, perr := strconv.Atoi(xr.Pr.Sz); perr == nil {
					run.SizePt = float64(sz) / 100.0
				}
				run.Bold = xr.Pr.B == "1" || xr.Pr.B == "true"
				if xr.Pr.Latin != nil {
					run.Font = xr.Pr.Latin.Typeface
				}
			}
			para.Runs = append(para.Runs, run)
		}
		body.Paragraphs = append(body.Paragraphs, para)
	}
	return body
}
