package verify

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var banner = strings.Repeat("=", 70)

// WriteReport prints a deck report in the layout reviewers read in the
// terminal. Verbose includes clean slides.
func WriteReport(w io.Writer, report *DeckReport, verbose bool) {
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "VERIFYING: %s\n", filepath.Base(report.Path))
	fmt.Fprintln(w, banner)

	if report.Clean() {
		fmt.Fprintf(w, "ALL CLEAN: %d slides, no overflow or overlap detected\n", len(report.Slides))
		return
	}

	for _, slide := range report.Slides {
		if !slide.HasIssues() {
			if verbose {
				fmt.Fprintf(w, "Slide %d: ok\n", slide.Number)
			}
			continue
		}

		fmt.Fprintf(w, "\nSlide %d:\n", slide.Number)
		for _, of := range slide.Overflows {
			if of.OffSlide {
				fmt.Fprintf(w, "  [OVERFLOW %s] shape %d runs off the slide bottom: %q\n",
					of.Severity, of.ShapeIndex, of.Text)
				continue
			}
			fmt.Fprintf(w, "  [OVERFLOW %s] shape %d needs %.2f\" of %.2f\" available: %q\n",
				of.Severity, of.ShapeIndex, of.NeededIn, of.AvailIn, of.Text)
		}
		for _, ov := range slide.Overlaps {
			fmt.Fprintf(w, "  [OVERLAP %s] shapes %d and %d intersect by %.2f\": %q / %q\n",
				ov.Severity, ov.AIndex, ov.BIndex, ov.ThinIn, ov.AText, ov.BText)
		}
	}

	fmt.Fprintf(w, "\nSUMMARY\n")
	fmt.Fprintf(w, "  slides checked:     %d\n", len(report.Slides))
	fmt.Fprintf(w, "  slides with issues: %d\n", report.SlidesWithIssues())
	fmt.Fprintf(w, "  text overflows:     %d\n", report.TotalOverflows())
	fmt.Fprintf(w, "  shape overlaps:     %d\n", report.TotalOverlaps())
}
