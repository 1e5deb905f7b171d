// Package dom is a small element tree parsed from the site's HTML. It gives
// the animation director a page to query and write to outside a browser.
package dom

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vibecodeutah/hackathon-site/internal/motion"
)

// Node is an element of a Document. It implements motion.Element.
type Node struct {
	Tag      string
	Parent   *Node
	Children []*Node

	attrs   map[string]string
	classes []string
	text    string
	styles  map[string]string
	rect    motion.Rect
}

var _ motion.Element = (*Node)(nil)

func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// ID returns the element's id attribute.
func (n *Node) ID() string {
	return n.attrs["id"]
}

// HasClass reports whether class is in the element's class list.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.classes, class)
}

// Text is the element's own text, not including its children.
func (n *Node) Text() string {
	return n.text
}

func (n *Node) SetText(text string) {
	n.text = text
}

// Style returns the last value written for prop.
func (n *Node) Style(prop string) (string, bool) {
	v, ok := n.styles[prop]
	return v, ok
}

func (n *Node) SetStyle(prop, value string) {
	if n.styles == nil {
		n.styles = make(map[string]string)
	}
	n.styles[prop] = value
}

// Rect is the element's box from the last Layout.
func (n *Node) Rect() motion.Rect {
	return n.rect
}

func (n *Node) String() string {
	var sb strings.Builder
	sb.WriteString(n.Tag)
	if id := n.ID(); id != "" {
		sb.WriteString("#" + id)
	}
	for _, c := range n.classes {
		sb.WriteString("." + c)
	}
	return sb.String()
}

// Document is a parsed page. It is not safe for concurrent use; the display
// loop owns it.
type Document struct {
	Root  *Node
	Title string

	nodes  []*Node
	sheets map[string]string
}

var (
	_ motion.Page       = (*Document)(nil)
	_ motion.StyleSheet = (*Document)(nil)
)

var skipped = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Svg:      true,
	atom.Template: true,
}

// Parse reads an HTML document. Only the body is kept; head content other
// than the title is dropped.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &Document{sheets: make(map[string]string)}
	if title := find(root, atom.Title); title != nil && title.FirstChild != nil {
		doc.Title = collapse(title.FirstChild.Data)
	}

	body := find(root, atom.Body)
	if body == nil {
		return nil, fmt.Errorf("parse html: no body element")
	}
	doc.Root = doc.build(body, nil)
	return doc, nil
}

func find(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, a); found != nil {
			return found
		}
	}
	return nil
}

func (d *Document) build(h *html.Node, parent *Node) *Node {
	n := &Node{Tag: h.Data, Parent: parent, attrs: make(map[string]string, len(h.Attr))}
	for _, a := range h.Attr {
		n.attrs[a.Key] = a.Val
		if a.Key == "class" {
			n.classes = strings.Fields(a.Val)
		}
	}
	d.nodes = append(d.nodes, n)

	var text []string
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if s := collapse(c.Data); s != "" {
				text = append(text, s)
			}
		case html.ElementNode:
			if skipped[c.DataAtom] {
				continue
			}
			n.Children = append(n.Children, d.build(c, n))
		}
	}
	n.text = strings.Join(text, " ")
	return n
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Nodes returns every element in document order.
func (d *Document) Nodes() []*Node {
	return d.nodes
}

// ByID finds the element with the given id.
func (d *Document) ByID(id string) (*Node, bool) {
	for _, n := range d.nodes {
		if n.ID() == id {
			return n, true
		}
	}
	return nil, false
}

func (d *Document) QueryAll(class string) []motion.Element {
	var out []motion.Element
	for _, n := range d.nodes {
		if n.HasClass(class) {
			out = append(out, n)
		}
	}
	return out
}

func (d *Document) Within(root motion.Element, class string) []motion.Element {
	r, ok := root.(*Node)
	if !ok {
		return nil
	}
	var out []motion.Element
	var walk func(*Node)
	walk = func(n *Node) {
		for _, c := range n.Children {
			if c.HasClass(class) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(r)
	return out
}

func (d *Document) Closest(el motion.Element, class string) (motion.Element, bool) {
	n, ok := el.(*Node)
	if !ok {
		return nil, false
	}
	for ; n != nil; n = n.Parent {
		if n.HasClass(class) {
			return n, true
		}
	}
	return nil, false
}

func (d *Document) HasStyle(id string) bool {
	_, ok := d.sheets[id]
	return ok
}

func (d *Document) AddStyle(id, css string) {
	d.sheets[id] = css
}
