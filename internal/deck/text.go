package deck

import (
	"strings"

	"golang.org/x/net/html"
)

// RichRun is a formatted fragment of element text. Span carries the
// recognized span class ("highlight", "check") when present.
type RichRun struct {
	Text   string
	Bold   bool
	Italic bool
	Span   string
}

// CodeRun is a fragment of a code block with its enclosing span classes,
// innermost first. Whitespace is preserved verbatim.
type CodeRun struct {
	Text    string
	Classes []string
	Bold    bool
}

// Text extracts the element's visible text. <br> becomes a newline, inline
// elements are separated by spaces, and runs of spaces collapse per line.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(cur *html.Node) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode:
				b.WriteString(c.Data)
				b.WriteString(" ")
			case c.Type == html.ElementNode && c.Data == "br":
				b.WriteString("\n")
			case c.Type == html.ElementNode && (c.Data == "style" || c.Data == "script"):
			case c.Type == html.ElementNode:
				rec(c)
			}
		}
	}
	rec(n.n)
	return collapseLines(b.String())
}

// RichRuns extracts text fragments with bold/italic/span formatting taken
// from the ancestor chain, merging adjacent fragments with identical
// formatting and trimming the outer edges.
func (n *Node) RichRuns() []RichRun {
	if n == nil {
		return nil
	}
	var runs []RichRun
	var rec func(*html.Node)
	rec = func(cur *html.Node) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				rec(c)
				continue
			}
			if c.Type != html.TextNode {
				continue
			}
			text := collapseKeepNewlines(c.Data)
			if text == "" || strings.TrimSpace(text) == "" {
				continue
			}
			run := RichRun{Text: text}
			for p := c.Parent; p != nil && p != n.n.Parent; p = p.Parent {
				if p.Type != html.ElementNode {
					continue
				}
				switch p.Data {
				case "strong", "b":
					run.Bold = true
				case "em", "i":
					run.Italic = true
				case "span":
					if run.Span == "" {
						if hasClass(p, "highlight") {
							run.Span = "highlight"
						} else if hasClass(p, "check") {
							run.Span = "check"
						}
					}
				}
			}
			runs = append(runs, run)
		}
	}
	rec(n.n)

	var merged []RichRun
	for _, run := range runs {
		if len(merged) > 0 {
			last := &merged[len(merged)-1]
			if last.Bold == run.Bold && last.Italic == run.Italic && last.Span == run.Span {
				last.Text += run.Text
				continue
			}
		}
		merged = append(merged, run)
	}

	if len(merged) > 0 {
		merged[0].Text = strings.TrimLeft(merged[0].Text, " \t\n")
		merged[len(merged)-1].Text = strings.TrimRight(merged[len(merged)-1].Text, " \t\n")
		kept := merged[:0]
		for _, run := range merged {
			if run.Text != "" {
				kept = append(kept, run)
			}
		}
		merged = kept
	}
	return merged
}

// CodeRuns extracts code block fragments verbatim, carrying the classes of
// enclosing spans so callers can map them to syntax colors.
func (n *Node) CodeRuns() []CodeRun {
	if n == nil {
		return nil
	}
	var runs []CodeRun
	var rec func(*html.Node)
	rec = func(cur *html.Node) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.ElementNode && c.Data == "br":
				runs = append(runs, CodeRun{Text: "\n"})
			case c.Type == html.ElementNode:
				rec(c)
			case c.Type == html.TextNode:
				if c.Data == "" {
					continue
				}
				run := CodeRun{Text: c.Data}
				for p := c.Parent; p != nil && p != n.n.Parent; p = p.Parent {
					if p.Type != html.ElementNode {
						continue
					}
					if p.Data == "span" {
						run.Classes = append(run.Classes, classes(p)...)
					}
					if p.Data == "strong" || p.Data == "b" {
						run.Bold = true
					}
				}
				runs = append(runs, run)
			}
		}
	}
	rec(n.n)
	return runs
}

func collapseLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// collapseKeepNewlines collapses horizontal whitespace per line but keeps
// the newlines themselves.
func collapseKeepNewlines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}
