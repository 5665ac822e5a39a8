package securexml

import (
	"strings"
)

// Document is a parsed XML document.
type Document struct {
	Root *Element
}

// ElementsByTagName returns every element with the local name, in document order.
func (d *Document) ElementsByTagName(name string) []*Element {
	if d == nil || d.Root == nil {
		return nil
	}
	var result []*Element
	if d.Root.Name == name {
		result = append(result, d.Root)
	}
	return append(result, d.Root.ElementsByTagName(name)...)
}

// Element is a node of the parsed tree. Names are local names; namespaces
// are dropped.
type Element struct {
	Name     string
	Attrs    map[string]string
	Children []*Element

	parent  *Element
	content []segment
}

// segment is either character data or a child element, kept in document
// order.
type segment struct {
	text  string
	child *Element
}

func (e *Element) appendText(text []byte) {
	if n := len(e.content); n > 0 && e.content[n-1].child == nil {
		e.content[n-1].text += string(text)
		return
	}
	e.content = append(e.content, segment{text: string(text)})
}

func (e *Element) appendChild(child *Element) {
	child.parent = e
	e.Children = append(e.Children, child)
	e.content = append(e.content, segment{child: child})
}

// Parent returns the enclosing element, nil for the root.
func (e *Element) Parent() *Element {
	return e.parent
}

// Attr returns an attribute value.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// Child returns the first direct child with the given name.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns the direct children with the given name.
func (e *Element) ChildrenNamed(name string) []*Element {
	var result []*Element
	for _, c := range e.Children {
		if c.Name == name {
			result = append(result, c)
		}
	}
	return result
}

// ChildText returns the trimmed text of the first direct child with the
// given name, or "" when there is none.
func (e *Element) ChildText(name string) string {
	c := e.Child(name)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.TextContent())
}

// TextContent concatenates the character data of the element and all
// descendants in document order.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *Element) writeText(b *strings.Builder) {
	for _, seg := range e.content {
		if seg.child != nil {
			seg.child.writeText(b)
		} else {
			b.WriteString(seg.text)
		}
	}
}

// ElementsByTagName returns matching descendants (not e itself) in document order.
func (e *Element) ElementsByTagName(name string) []*Element {
	var result []*Element
	for _, c := range e.Children {
		if c.Name == name {
			result = append(result, c)
		}
		result = append(result, c.ElementsByTagName(name)...)
	}
	return result
}

// Path returns the child reached by following names, or nil.
func (e *Element) Path(names ...string) *Element {
	cur := e
	for _, n := range names {
		if cur = cur.Child(n); cur == nil {
			return nil
		}
	}
	return cur
}
