package doctree

import (
	"testing"
)

// buildCaption returns an inline caption with nested emphasis:
// "see <emphasis>this</emphasis> section"
func buildCaption() *Element {
	return NewInline(
		NewText("see "),
		&Element{Tag: "emphasis", Children: []Node{NewText("this")}},
		NewText(" section"),
	)
}

func TestElementAsText(t *testing.T) {
	caption := buildCaption()
	if got := caption.AsText(); got != "see this section" {
		t.Errorf("AsText() = %q, want %q", got, "see this section")
	}
}

func TestDeepCopyIndependence(t *testing.T) {
	orig := buildCaption()
	orig.AddClass("doc")
	orig.SetAttr("ids", "cap-1")

	cp := orig.DeepCopy().(*Element)

	// Mutate the copy; the original must not change.
	cp.AddClass("extra")
	cp.SetAttr("ids", "cap-2")
	cp.Children[0].(*Text).Value = "changed"
	cp.Children[1].(*Element).Children[0].(*Text).Value = "changed"

	if orig.HasClass("extra") {
		t.Error("class mutation leaked into original")
	}
	if orig.Attr("ids") != "cap-1" {
		t.Errorf("attr mutation leaked into original: %q", orig.Attr("ids"))
	}
	if got := orig.AsText(); got != "see this section" {
		t.Errorf("text mutation leaked into original: %q", got)
	}
}

func TestPendingDeepCopy(t *testing.T) {
	p := &Pending{
		Kind:     "link",
		Target:   "sec-a",
		Explicit: true,
		Content:  buildCaption(),
		Source:   "guide/index",
		Line:     7,
	}

	cp := p.DeepCopy().(*Pending)
	cp.Target = "other"
	cp.Content.Children[0].(*Text).Value = "changed"

	if p.Target != "sec-a" {
		t.Errorf("Target mutated through copy: %q", p.Target)
	}
	if got := p.Content.AsText(); got != "see this section" {
		t.Errorf("caption mutated through copy: %q", got)
	}
	if cp.Source != "guide/index" || cp.Line != 7 {
		t.Errorf("location not copied: %q:%d", cp.Source, cp.Line)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{
			name:     "nil node",
			node:     nil,
			expected: "",
		},
		{
			name: "markup dropped",
			node: &Element{Tag: "title", Children: []Node{
				NewText("The "),
				&Element{Tag: "literal", Children: []Node{NewText("docref")}},
				NewText(" Guide"),
			}},
			expected: "The docref Guide",
		},
		{
			name:     "whitespace collapsed",
			node:     NewText("  spaced \n out  "),
			expected: "spaced out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.node); got != tt.expected {
				t.Errorf("CleanText() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCollectPending(t *testing.T) {
	inner := &Pending{Kind: "link", Target: "nested", Content: NewInline()}
	outer := &Pending{
		Kind:    "link",
		Target:  "outer",
		Content: NewInline(inner),
	}
	other := &Pending{Kind: "footnote", Target: "fn-1", Content: NewInline()}

	root := NewElement("document")
	para := NewElement("paragraph")
	para.Append(outer, other)
	root.Append(para)

	got := CollectPending(root, "link")
	if len(got) != 1 {
		t.Fatalf("CollectPending returned %d nodes, want 1", len(got))
	}
	if got[0] != outer {
		t.Error("CollectPending returned the wrong node")
	}
	// The footnote pending belongs to another resolver entirely.
	if fns := CollectPending(root, "footnote"); len(fns) != 1 || fns[0] != other {
		t.Error("CollectPending by other kind failed")
	}
}

func TestReplaceNode(t *testing.T) {
	p := &Pending{Kind: "link", Target: "sec-a", Content: NewInline()}
	para := NewElement("paragraph")
	para.Append(NewText("before "), p, NewText(" after"))
	root := NewElement("document")
	root.Append(para)

	replacement := NewElement("reference")
	replacement.Append(NewText("resolved"))

	if !ReplaceNode(root, p, replacement) {
		t.Fatal("ReplaceNode did not find the node")
	}
	if para.Children[1] != Node(replacement) {
		t.Error("replacement not in place")
	}
	// A second replacement of the same node must not happen.
	if ReplaceNode(root, p, replacement) {
		t.Error("ReplaceNode replaced an already-replaced node")
	}
	if got := root.AsText(); got != "before resolved after" {
		t.Errorf("tree text = %q, want %q", got, "before resolved after")
	}
}

func TestWalkStopsDescent(t *testing.T) {
	root := NewElement("document")
	section := NewElement("section")
	section.Append(NewText("inside"))
	root.Append(section)

	var visited []string
	Walk(root, func(n Node) bool {
		if el, ok := n.(*Element); ok {
			visited = append(visited, el.Tag)
			return el.Tag != "section"
		}
		visited = append(visited, "text")
		return true
	})

	if len(visited) != 2 || visited[0] != "document" || visited[1] != "section" {
		t.Errorf("visited = %v, want [document section]", visited)
	}
}
