package doctree

import (
	"strings"
)

// Node is a single node in a document tree.
type Node interface {
	// DeepCopy returns a fully independent copy of the node and its subtree.
	DeepCopy() Node

	// AsText flattens the node's subtree to its literal text content.
	AsText() string
}

// Document pairs a document tree with the stable name it is known by
// in the project index (slash-separated, no source suffix).
type Document struct {
	// Name is the document name (e.g., "guide/index").
	Name string

	// Root is the tree root, conventionally tagged "document".
	Root *Element
}

// DeepCopy returns an independent copy of the document.
func (d *Document) DeepCopy() *Document {
	return &Document{
		Name: d.Name,
		Root: d.Root.DeepCopy().(*Element),
	}
}

// Element is a tagged container node.
type Element struct {
	// Tag is the element name (e.g., "section", "paragraph", "inline", "reference").
	Tag string

	// Attrs contains element attributes (e.g., "refuri", "ids").
	Attrs map[string]string

	// Classes contains style classes applied by the resolver and renderers.
	Classes []string

	// Children contains the child nodes in document order.
	Children []Node

	// Source is the source document the element came from (optional).
	Source string

	// Line is the source line number (0 if unknown).
	Line int
}

// NewElement creates an element with the given tag.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// NewInline creates an "inline" element, the conventional wrapper for
// reference caption content.
func NewInline(children ...Node) *Element {
	e := NewElement("inline")
	e.Children = append(e.Children, children...)
	return e
}

// Append adds child nodes to the element.
func (e *Element) Append(children ...Node) {
	e.Children = append(e.Children, children...)
}

// SetAttr sets an attribute value.
func (e *Element) SetAttr(key, value string) {
	if e.Attrs == nil {
		e.Attrs = make(map[string]string)
	}
	e.Attrs[key] = value
}

// Attr returns an attribute value, or "" if unset.
func (e *Element) Attr(key string) string {
	return e.Attrs[key]
}

// AddClass appends style classes to the element.
func (e *Element) AddClass(classes ...string) {
	e.Classes = append(e.Classes, classes...)
}

// HasClass returns true if the element carries the given style class.
func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// FirstChildElement returns the first child that is an element, or nil.
func (e *Element) FirstChildElement() *Element {
	for _, child := range e.Children {
		if el, ok := child.(*Element); ok {
			return el
		}
	}
	return nil
}

// DeepCopy returns an independent copy of the element and its subtree.
func (e *Element) DeepCopy() Node {
	cp := &Element{
		Tag:    e.Tag,
		Source: e.Source,
		Line:   e.Line,
	}
	if e.Attrs != nil {
		cp.Attrs = make(map[string]string, len(e.Attrs))
		for k, v := range e.Attrs {
			cp.Attrs[k] = v
		}
	}
	if e.Classes != nil {
		cp.Classes = append([]string(nil), e.Classes...)
	}
	for _, child := range e.Children {
		cp.Children = append(cp.Children, child.DeepCopy())
	}
	return cp
}

// AsText flattens the element's subtree to its literal text content.
func (e *Element) AsText() string {
	var sb strings.Builder
	for _, child := range e.Children {
		sb.WriteString(child.AsText())
	}
	return sb.String()
}

// Text is a leaf node holding literal text.
type Text struct {
	Value string
}

// NewText creates a text node.
func NewText(value string) *Text {
	return &Text{Value: value}
}

// DeepCopy returns a copy of the text node.
func (t *Text) DeepCopy() Node {
	return &Text{Value: t.Value}
}

// AsText returns the literal text.
func (t *Text) AsText() string {
	return t.Value
}

// Pending is an unresolved cross-reference placeholder.
type Pending struct {
	// Kind is the reference kind tag (e.g., "link" for this pipeline's
	// own references, "any" for the generic catch-all kind).
	Kind string

	// Target is the raw reference target string.
	Target string

	// Explicit is true when the reference supplies its own caption.
	Explicit bool

	// RefDoc optionally overrides the owning document name. When empty
	// the document being resolved owns the reference.
	RefDoc string

	// Domain is the owning-domain tag; the resolver clears it when no
	// registry matched.
	Domain string

	// Content is the nested inline caption content. Always non-nil for
	// well-formed trees; may be empty.
	Content *Element

	// Source is the source document the reference came from (optional).
	Source string

	// Line is the source line number (0 if unknown).
	Line int
}

// DeepCopy returns an independent copy of the pending node.
func (p *Pending) DeepCopy() Node {
	cp := *p
	if p.Content != nil {
		cp.Content = p.Content.DeepCopy().(*Element)
	}
	return &cp
}

// AsText returns the caption text of the pending reference.
func (p *Pending) AsText() string {
	if p.Content == nil {
		return ""
	}
	return p.Content.AsText()
}

// CleanText flattens a node to plain display text: markup dropped,
// whitespace collapsed. Used when synthesizing a caption from a
// registered document title.
func CleanText(n Node) string {
	if n == nil {
		return ""
	}
	return strings.Join(strings.Fields(n.AsText()), " ")
}
