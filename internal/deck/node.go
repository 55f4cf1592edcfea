package deck

import (
	"strings"

	"golang.org/x/net/html"
)

// Node wraps an element in the parsed deck.
type Node struct {
	n *html.Node
}

// HTML exposes the underlying parse-tree node. Its pointer identity is
// stable, which converters use to track already-handled elements.
func (n *Node) HTML() *html.Node {
	return n.n
}

func (n *Node) Tag() string {
	if n.n.Type != html.ElementNode {
		return ""
	}
	return n.n.Data
}

func (n *Node) Attr(name string) string {
	return attr(n.n, name)
}

func (n *Node) Classes() []string {
	return classes(n.n)
}

func (n *Node) HasClass(name string) bool {
	return hasClass(n.n, name)
}

func (n *Node) HasAnyClass(names ...string) bool {
	for _, name := range names {
		if hasClass(n.n, name) {
			return true
		}
	}
	return false
}

// Children returns direct element children.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, &Node{n: c})
		}
	}
	return out
}

func (n *Node) Parent() *Node {
	if n.n.Parent == nil {
		return nil
	}
	return &Node{n: n.n.Parent}
}

// FindClass returns the first descendant carrying any of the given classes.
func (n *Node) FindClass(names ...string) *Node {
	found := n.findFirst(func(c *html.Node) bool {
		for _, name := range names {
			if hasClass(c, name) {
				return true
			}
		}
		return false
	})
	return found
}

// FindAllClass returns every descendant carrying any of the given classes.
func (n *Node) FindAllClass(names ...string) []*Node {
	return n.findAll(func(c *html.Node) bool {
		for _, name := range names {
			if hasClass(c, name) {
				return true
			}
		}
		return false
	})
}

// FindAllClassMatch returns every descendant with at least one class
// accepted by match.
func (n *Node) FindAllClassMatch(match func(class string) bool) []*Node {
	return n.findAll(func(c *html.Node) bool {
		for _, cls := range classes(c) {
			if match(cls) {
				return true
			}
		}
		return false
	})
}

// FindAllClassDirect is FindAllClass restricted to direct children.
func (n *Node) FindAllClassDirect(names ...string) []*Node {
	var out []*Node
	for _, child := range n.Children() {
		if child.HasAnyClass(names...) {
			out = append(out, child)
		}
	}
	return out
}

// FindTag returns the first descendant with one of the given tag names.
func (n *Node) FindTag(tags ...string) *Node {
	return n.findFirst(func(c *html.Node) bool {
		for _, tag := range tags {
			if c.Data == tag {
				return true
			}
		}
		return false
	})
}

// FindAllTag returns every descendant with one of the given tag names.
func (n *Node) FindAllTag(tags ...string) []*Node {
	return n.findAll(func(c *html.Node) bool {
		for _, tag := range tags {
			if c.Data == tag {
				return true
			}
		}
		return false
	})
}

// FindTagWithClass returns the first descendant whose tag is one of tags
// and which carries the given class.
func (n *Node) FindTagWithClass(class string, tags ...string) *Node {
	return n.findFirst(func(c *html.Node) bool {
		for _, tag := range tags {
			if c.Data == tag && hasClass(c, class) {
				return true
			}
		}
		return false
	})
}

// NextSiblingWithClass returns the next element sibling carrying any of
// the given classes.
func (n *Node) NextSiblingWithClass(names ...string) *Node {
	for s := n.n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type != html.ElementNode {
			continue
		}
		for _, name := range names {
			if hasClass(s, name) {
				return &Node{n: s}
			}
		}
	}
	return nil
}

// AncestorMatch reports whether any ancestor element (up to the document
// root) has a class accepted by match.
func (n *Node) AncestorMatch(match func(class string) bool) bool {
	for p := n.n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		for _, cls := range classes(p) {
			if match(cls) {
				return true
			}
		}
	}
	return false
}

func (n *Node) findFirst(pred func(*html.Node) bool) *Node {
	var found *html.Node
	var rec func(*html.Node) bool
	rec = func(cur *html.Node) bool {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				if pred(c) {
					found = c
					return true
				}
				if rec(c) {
					return true
				}
			}
		}
		return false
	}
	rec(n.n)
	if found == nil {
		return nil
	}
	return &Node{n: found}
}

func (n *Node) findAll(pred func(*html.Node) bool) []*Node {
	var out []*Node
	walk(n.n, func(c *html.Node) {
		if c.Type == html.ElementNode && pred(c) {
			out = append(out, &Node{n: c})
		}
	})
	return out
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func classes(n *html.Node) []string {
	raw := attr(n, "class")
	if raw == "" {
		return nil
	}
	return strings.Fields(raw)
}

func hasClass(n *html.Node, name string) bool {
	for _, cls := range classes(n) {
		if cls == name {
			return true
		}
	}
	return false
}
