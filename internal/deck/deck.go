// Package deck parses HTML slide decks: slide extraction, classed element
// lookup, text and rich-run extraction, and per-deck CSS theming variables.
package deck

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed deck.
type Document struct {
	root *html.Node
}

func Parse(r io.Reader) (doc *Document, err error) {
	var root *html.Node
	if root, err = html.Parse(r); err != nil {
		err = fmt.Errorf("failed to parse html: %w", err)
		return
	}
	doc = &Document{root: root}
	return
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the document root as a Node.
func (d *Document) Root() *Node {
	return &Node{n: d.root}
}

// Slides returns every div.slide and section.slide in document order.
func (d *Document) Slides() []*Node {
	var slides []*Node
	walk(d.root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if n.Data != "div" && n.Data != "section" {
			return
		}
		if hasClass(n, "slide") {
			slides = append(slides, &Node{n: n})
		}
	})
	return slides
}

var cssVarPattern = regexp.MustCompile(`--([\w-]+)\s*:\s*([^;}]+)`)

// CSSVars extracts CSS custom properties from every <style> block.
func (d *Document) CSSVars() map[string]string {
	vars := make(map[string]string)
	walk(d.root, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "style" {
			return
		}
		var css strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				css.WriteString(c.Data)
			}
		}
		for _, m := range cssVarPattern.FindAllStringSubmatch(css.String(), -1) {
			vars[strings.TrimSpace(m[1])] = strings.TrimSpace(m[2])
		}
	})
	return vars
}

// AccentColor returns the deck accent hex value ("" when unthemed).
func (d *Document) AccentColor() string {
	vars := d.CSSVars()
	for _, name := range []string{"color-accent", "accent"} {
		if val := vars[name]; strings.HasPrefix(val, "#") {
			return val
		}
	}
	return ""
}

// walk visits every node below root in depth-first order.
func walk(root *html.Node, visit func(*html.Node)) {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		visit(c)
		walk(c, visit)
	}
}
