package doctree

import (
	"bytes"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/JuniperDocs/core/errors"
)

// XML tree format. The root element is <document source="NAME">; pending
// references are <pending_ref kind="..." target="..." explicit="...">
// whose children form the caption. Style classes are carried in a
// space-separated "classes" attribute, source lines in "line".

const (
	pendingTag   = "pending_ref"
	classesAttr  = "classes"
	lineAttr     = "line"
	kindAttr     = "kind"
	targetAttr   = "target"
	explicitAttr = "explicit"
	refdocAttr   = "refdoc"
	domainAttr   = "domain"
)

// ParseXML parses XML data into a Document.
func ParseXML(data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewParse("XML", "", err.Error())
	}

	docNode, err := xmlquery.Query(root, "/document")
	if err != nil {
		return nil, errors.NewParse("XML", "", err.Error())
	}
	if docNode == nil {
		return nil, errors.NewParse("XML", "", "missing <document> root element")
	}

	name := docNode.SelectAttr("source")
	rootEl := convertElement(docNode, name)
	return &Document{Name: name, Root: rootEl}, nil
}

// convertElement converts an xmlquery element node into an Element.
func convertElement(n *xmlquery.Node, source string) *Element {
	el := NewElement(n.Data)
	el.Source = source
	for _, attr := range n.Attr {
		key := attr.Name.Local
		switch key {
		case classesAttr:
			el.Classes = strings.Fields(attr.Value)
		case lineAttr:
			el.Line, _ = strconv.Atoi(attr.Value)
		case "source":
			// carried on the document root only
		default:
			el.SetAttr(key, attr.Value)
		}
	}
	el.Children = convertChildren(n, source)
	return el
}

// convertChildren converts the child nodes of an xmlquery node.
func convertChildren(n *xmlquery.Node, source string) []Node {
	var out []Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.ElementNode:
			if child.Data == pendingTag {
				out = append(out, convertPending(child, source))
			} else {
				out = append(out, convertElement(child, source))
			}
		case xmlquery.TextNode, xmlquery.CharDataNode:
			// Inter-element indentation is not content.
			if strings.TrimSpace(child.Data) != "" {
				out = append(out, NewText(child.Data))
			}
		}
	}
	return out
}

// convertPending converts a <pending_ref> element into a Pending node.
// Its children become the caption; a lone <inline> child is used as-is,
// anything else is wrapped in one.
func convertPending(n *xmlquery.Node, source string) *Pending {
	p := &Pending{
		Kind:     n.SelectAttr(kindAttr),
		Target:   n.SelectAttr(targetAttr),
		Explicit: n.SelectAttr(explicitAttr) == "true",
		RefDoc:   n.SelectAttr(refdocAttr),
		Domain:   n.SelectAttr(domainAttr),
		Source:   source,
	}
	p.Line, _ = strconv.Atoi(n.SelectAttr(lineAttr))

	children := convertChildren(n, source)
	if len(children) == 1 {
		if el, ok := children[0].(*Element); ok && el.Tag == "inline" {
			p.Content = el
			return p
		}
	}
	p.Content = NewInline(children...)
	return p
}

// XML serializes the document back to XML bytes.
func (d *Document) XML() []byte {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	writeNode(&buf, d.Root)
	buf.WriteByte('\n')
	return buf.Bytes()
}

// writeNode serializes one node and its subtree.
func writeNode(buf *bytes.Buffer, n Node) {
	switch node := n.(type) {
	case *Text:
		buf.WriteString(escapeText(node.Value))

	case *Element:
		buf.WriteByte('<')
		buf.WriteString(node.Tag)
		writeElementAttrs(buf, node)
		if len(node.Children) == 0 {
			buf.WriteString("/>")
			return
		}
		buf.WriteByte('>')
		for _, child := range node.Children {
			writeNode(buf, child)
		}
		buf.WriteString("</")
		buf.WriteString(node.Tag)
		buf.WriteByte('>')

	case *Pending:
		buf.WriteByte('<')
		buf.WriteString(pendingTag)
		writeAttr(buf, kindAttr, node.Kind)
		writeAttr(buf, targetAttr, node.Target)
		if node.Explicit {
			writeAttr(buf, explicitAttr, "true")
		}
		if node.RefDoc != "" {
			writeAttr(buf, refdocAttr, node.RefDoc)
		}
		if node.Domain != "" {
			writeAttr(buf, domainAttr, node.Domain)
		}
		if node.Line > 0 {
			writeAttr(buf, lineAttr, strconv.Itoa(node.Line))
		}
		buf.WriteByte('>')
		if node.Content != nil {
			writeNode(buf, node.Content)
		}
		buf.WriteString("</")
		buf.WriteString(pendingTag)
		buf.WriteByte('>')
	}
}

// writeElementAttrs serializes element attributes in deterministic order.
func writeElementAttrs(buf *bytes.Buffer, el *Element) {
	if el.Tag == "document" && el.Source != "" {
		writeAttr(buf, "source", el.Source)
	}
	keys := make([]string, 0, len(el.Attrs))
	for k := range el.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeAttr(buf, k, el.Attrs[k])
	}
	if len(el.Classes) > 0 {
		writeAttr(buf, classesAttr, strings.Join(el.Classes, " "))
	}
	if el.Line > 0 {
		writeAttr(buf, lineAttr, strconv.Itoa(el.Line))
	}
}

func writeAttr(buf *bytes.Buffer, key, value string) {
	buf.WriteByte(' ')
	buf.WriteString(key)
	buf.WriteString(`="`)
	buf.WriteString(escapeAttr(value))
	buf.WriteByte('"')
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

func escapeText(s string) string { return textEscaper.Replace(s) }
func escapeAttr(s string) string { return attrEscaper.Replace(s) }

// Marshal serializes a single node (and its subtree) to an XML fragment.
func Marshal(n Node) []byte {
	var buf bytes.Buffer
	writeNode(&buf, n)
	return buf.Bytes()
}

// ParseFragment parses an XML fragment holding exactly one element.
func ParseFragment(data []byte) (*Element, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewParse("XML", "", err.Error())
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			if child.Data == pendingTag {
				return nil, errors.NewParse("XML", "", "fragment root cannot be a pending reference")
			}
			return convertElement(child, ""), nil
		}
	}
	return nil, errors.NewParse("XML", "", "fragment holds no element")
}

// ReadFile reads a document tree from an XML file. Files with an ".xz"
// suffix are decompressed transparently.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading tree %s", path)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "opening xz stream %s", path)
		}
		r = xr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "reading tree %s", path)
	}
	doc, err := ParseXML(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing tree %s", path)
	}
	return doc, nil
}

// WriteFile writes a document tree to an XML file. Files with an ".xz"
// suffix are compressed transparently.
func WriteFile(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "writing tree %s", path)
	}
	defer f.Close()

	data := doc.XML()
	if strings.HasSuffix(path, ".xz") {
		xw, err := xz.NewWriter(f)
		if err != nil {
			return errors.Wrapf(err, "opening xz stream %s", path)
		}
		if _, err := xw.Write(data); err != nil {
			xw.Close()
			return errors.Wrapf(err, "writing tree %s", path)
		}
		if err := xw.Close(); err != nil {
			return errors.Wrapf(err, "closing xz stream %s", path)
		}
		return nil
	}

	if _, err := f.Write(data); err != nil {
		return errors.Wrapf(err, "writing tree %s", path)
	}
	return nil
}
