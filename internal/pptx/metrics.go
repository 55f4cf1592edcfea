package pptx

import "strings"

// Arial character widths as a fraction of the em size, measured from the
// TrueType metrics. Proportional widths vary by 4x ('i' 0.22 vs 'W' 0.94),
// so per-character lookup beats any average factor.
var arialWidths = map[rune]float64{
	' ': 0.28, '!': 0.28, '"': 0.35, '#': 0.56, '$': 0.56, '%': 0.89,
	'&': 0.67, '\'': 0.19, '(': 0.33, ')': 0.33, '*': 0.39, '+': 0.58,
	',': 0.28, '-': 0.33, '.': 0.28, '/': 0.28,
	'0': 0.56, '1': 0.56, '2': 0.56, '3': 0.56, '4': 0.56,
	'5': 0.56, '6': 0.56, '7': 0.56, '8': 0.56, '9': 0.56,
	':': 0.28, ';': 0.28, '<': 0.58, '=': 0.58, '>': 0.58, '?': 0.56, '@': 1.02,
	'A': 0.67, 'B': 0.67, 'C': 0.72, 'D': 0.72, 'E': 0.67, 'F': 0.61,
	'G': 0.78, 'H': 0.72, 'I': 0.28, 'J': 0.50, 'K': 0.67, 'L': 0.56,
	'M': 0.83, 'N': 0.72, 'O': 0.78, 'P': 0.67, 'Q': 0.78, 'R': 0.72,
	'S': 0.67, 'T': 0.61, 'U': 0.72, 'V': 0.67, 'W': 0.94, 'X': 0.67,
	'Y': 0.67, 'Z': 0.61,
	'[': 0.28, '\\': 0.28, ']': 0.28, '^': 0.47, '_': 0.56, '`': 0.33,
	'a': 0.56, 'b': 0.56, 'c': 0.50, 'd': 0.56, 'e': 0.56, 'f': 0.28,
	'g': 0.56, 'h': 0.56, 'i': 0.22, 'j': 0.22, 'k': 0.50, 'l': 0.22,
	'm': 0.83, 'n': 0.56, 'o': 0.56, 'p': 0.56, 'q': 0.56, 'r': 0.33,
	's': 0.50, 't': 0.28, 'u': 0.56, 'v': 0.50, 'w': 0.72, 'x': 0.50,
	'y': 0.50, 'z': 0.50,
	'{': 0.33, '|': 0.26, '}': 0.33, '~': 0.58,
}

const (
	arialDefaultWidth = 0.56
	arialBoldScale    = 1.08
	consolasFactor    = 0.60

	// Rendered line height includes ascent, descent and internal leading.
	LineHeightFactor = 1.2
)

// IsMonospace reports whether the font gets the fixed-width estimate.
func IsMonospace(font string) bool {
	switch strings.ToLower(font) {
	case "consolas", "courier new", "courier":
		return true
	}
	return false
}

// EstimateTextWidthPt estimates the rendered width of text in points.
func EstimateTextWidthPt(text string, sizePt float64, bold bool, font string) float64 {
	if text == "" {
		return 0
	}
	if IsMonospace(font) {
		return float64(len([]rune(text))) * consolasFactor * sizePt
	}
	total := 0.0
	for _, ch := range text {
		w, ok := arialWidths[ch]
		if !ok {
			w = arialDefaultWidth
		}
		total += w
	}
	width := total * sizePt
	if bold {
		width *= arialBoldScale
	}
	return width
}
