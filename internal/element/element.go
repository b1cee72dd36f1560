// Package element is a small declarative builder for visual elements.
//
// Layout code builds Element trees without touching a document; ToNode
// materializes a tree into a golang.org/x/net/html node so it can be attached
// under a host container and rendered.
package element

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NamespaceSVG marks elements that belong to an <svg> tree
const NamespaceSVG = "svg"

// Attr is a single attribute; order is preserved when rendering
type Attr struct {
	Key string
	Val string
}

// Element is a tag with attributes, optional text and children
type Element struct {
	Tag       string
	Namespace string
	Attrs     []Attr
	Text      string
	Children  []*Element
}

// New creates an HTML element
func New(tag string) *Element {
	return &Element{Tag: tag}
}

// SVG creates an element in the SVG namespace
func SVG(tag string) *Element {
	return &Element{Tag: tag, Namespace: NamespaceSVG}
}

// Attr sets an attribute, replacing any previous value
func (e *Element) Attr(key, val string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Key == key {
			e.Attrs[i].Val = val
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Key: key, Val: val})
	return e
}

// Get returns an attribute value
func (e *Element) Get(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Class adds class names
func (e *Element) Class(names ...string) *Element {
	existing, _ := e.Get("class")
	classes := strings.Fields(existing)
	classes = append(classes, names...)
	return e.Attr("class", strings.Join(classes, " "))
}

// HasClass reports whether name is one of the element's classes
func (e *Element) HasClass(name string) bool {
	existing, _ := e.Get("class")
	for _, c := range strings.Fields(existing) {
		if c == name {
			return true
		}
	}
	return false
}

// Style appends a CSS declaration to the style attribute
func (e *Element) Style(property, value string) *Element {
	existing, _ := e.Get("style")
	decl := property + ": " + value + ";"
	if existing != "" {
		decl = existing + " " + decl
	}
	return e.Attr("style", decl)
}

// SetText sets the text content, rendered before any children
func (e *Element) SetText(text string) *Element {
	e.Text = text
	return e
}

// Append adds children, skipping nils
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c != nil {
			e.Children = append(e.Children, c)
		}
	}
	return e
}

// Walk visits e and its descendants depth first
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// FindByClass returns every descendant (including e) carrying the class
func (e *Element) FindByClass(name string) []*Element {
	var found []*Element
	e.Walk(func(el *Element) {
		if el.HasClass(name) {
			found = append(found, el)
		}
	})
	return found
}

// ToNode materializes the tree into an html.Node tree
func ToNode(e *Element) *html.Node {
	n := &html.Node{
		Type:      html.ElementNode,
		Data:      e.Tag,
		Namespace: e.Namespace,
	}
	if e.Namespace == "" {
		n.DataAtom = atom.Lookup([]byte(e.Tag))
	}
	for _, a := range e.Attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	if e.Text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: e.Text})
	}
	for _, c := range e.Children {
		n.AppendChild(ToNode(c))
	}
	return n
}

// Render writes the tree as markup
func Render(w io.Writer, e *Element) error {
	return html.Render(w, ToNode(e))
}
