// Package linker turns logical link targets into navigable reference
// elements. It is the seam between resolution (which decides what a
// reference points at) and output layout (which decides what URI that
// is under the current output mode).
package linker

import (
	"path"
	"strings"

	"github.com/FocuswithJustin/JuniperDocs/core/doctree"
	"github.com/FocuswithJustin/JuniperDocs/core/errors"
)

// Linker builds a navigable reference element for a resolved target.
//
// Build returns errors.ErrNoURI (typically via *errors.NoURIError) when
// the target exists but cannot be addressed in the current output mode;
// the resolution pass treats that as "keep the fallback content".
type Linker interface {
	Build(fromDoc, toDoc, anchor string, content doctree.Node) (*doctree.Element, error)
}

// RelativeLinker builds links for file-per-document output: each
// document becomes one output file and links between them are relative
// URIs.
type RelativeLinker struct {
	// Suffix is appended to document names to form file names
	// (e.g., ".html"). Empty means bare document names.
	Suffix string
}

// Build constructs a reference element pointing from fromDoc to toDoc.
func (l *RelativeLinker) Build(fromDoc, toDoc, anchor string, content doctree.Node) (*doctree.Element, error) {
	ref := doctree.NewElement("reference")
	ref.SetAttr("internal", "true")
	ref.SetAttr("refuri", l.relativeURI(fromDoc, toDoc, anchor))
	if content != nil {
		ref.Append(content)
	}
	return ref, nil
}

// relativeURI computes the URI of toDoc relative to fromDoc's directory.
func (l *RelativeLinker) relativeURI(fromDoc, toDoc, anchor string) string {
	uri := relativePath(path.Dir(fromDoc), toDoc) + l.Suffix
	if anchor != "" {
		uri += "#" + anchor
	}
	return uri
}

// relativePath computes a slash-separated relative path from dir to
// target. Both are project-rooted document paths.
func relativePath(dir, target string) string {
	if dir == "." || dir == "" {
		return target
	}
	dirParts := strings.Split(dir, "/")
	targetParts := strings.Split(target, "/")

	common := 0
	for common < len(dirParts) && common < len(targetParts)-1 && dirParts[common] == targetParts[common] {
		common++
	}

	var parts []string
	for i := common; i < len(dirParts); i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, targetParts[common:]...)
	return strings.Join(parts, "/")
}

// SingleFileLinker builds links for single-file output: only targets in
// the root document can be addressed, everything else has no URI.
type SingleFileLinker struct {
	// RootDoc is the one document that exists in the output.
	RootDoc string
}

// Build constructs a same-file fragment reference, or reports
// ErrNoURI for targets outside the root document.
func (l *SingleFileLinker) Build(fromDoc, toDoc, anchor string, content doctree.Node) (*doctree.Element, error) {
	if toDoc != l.RootDoc {
		return nil, errors.NewNoURI(fromDoc, toDoc, "single-file output")
	}
	ref := doctree.NewElement("reference")
	ref.SetAttr("internal", "true")
	if anchor != "" {
		ref.SetAttr("refuri", "#"+anchor)
	} else {
		ref.SetAttr("refuri", "")
	}
	if content != nil {
		ref.Append(content)
	}
	return ref, nil
}
