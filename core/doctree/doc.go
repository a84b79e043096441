// Package doctree provides the document tree model for the JuniperDocs pipeline.
//
// A tree is made of three node kinds:
//
//   - Element: a tagged container (section, paragraph, emphasis, inline,
//     reference, ...) with attributes, style classes, and children
//   - Text: a leaf holding literal text
//   - Pending: an unresolved cross-reference awaiting a target
//
// Pending nodes are produced by the parser stage and consumed by the
// resolver pass, which replaces each one with either a resolved reference
// element or its own caption content. Nested inline markup inside a
// caption is carried as a real subtree, never flattened to text, so it
// survives resolution verbatim.
//
// # Serialization
//
// Trees round-trip through a small XML form (see ParseXML / Document.XML).
// ReadFile and WriteFile handle xz-compressed tree files transparently.
//
// # Content Addressing
//
// HashTree and HashDocument produce BLAKE3 hashes of a tree's serialized
// form, used for change detection between pipeline passes.
//
// # Example
//
//	para := doctree.NewElement("paragraph")
//	para.Append(doctree.NewText("see "))
//	para.Append(&doctree.Pending{
//	    Kind:    "link",
//	    Target:  "sec-intro",
//	    Content: doctree.NewInline(),
//	})
//
//	doc := &doctree.Document{Name: "guide/index", Root: doctree.NewElement("document")}
//	doc.Root.Append(para)
package doctree
