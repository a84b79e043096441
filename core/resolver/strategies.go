package resolver

import (
	"path"
	"strings"

	"github.com/FocuswithJustin/JuniperDocs/core/doctree"
	"github.com/FocuswithJustin/JuniperDocs/core/project"
	"github.com/FocuswithJustin/JuniperDocs/core/target"
	"github.com/FocuswithJustin/JuniperDocs/internal/logging"
)

// Resolve is the unified resolution routine: it consults every
// strategy in priority order, collects all matches, warns when more
// than one registry claims the target, and returns the first match.
// A nil node with nil error means no registry matched.
func (r *Resolver) Resolve(refdoc string, p *doctree.Pending, contnode doctree.Node) (*doctree.Element, error) {
	var results []project.Candidate

	// 1. Section/label references.
	node, err := r.resolveLabel(refdoc, p)
	if err != nil {
		return nil, err
	}
	if node != nil {
		results = append(results, project.Candidate{Role: "std:ref", Node: node})
	}

	// 2. Direct document names.
	node, err = r.resolveDoc(refdoc, p)
	if err != nil {
		return nil, err
	}
	if node != nil {
		results = append(results, project.Candidate{Role: "std:doc", Node: node})
	}

	// 3. The std registry's object types.
	std := r.env.Std()
	for _, t := range std.Types() {
		name := p.Target
		if t.Name == project.TermType {
			name = strings.ToLower(name)
		}
		entry, ok := std.Lookup(t.Name, name)
		if !ok {
			continue
		}
		node, err := r.linker.Build(refdoc, entry.Docname, entry.Anchor, contnode)
		if err != nil {
			return nil, err
		}
		results = append(results, project.Candidate{Role: project.StdDomainName + ":" + std.RoleFor(t.Name), Node: node})
	}

	// 4. Every other domain, in registration order.
	for _, d := range r.env.Domains() {
		if d.Name() == project.StdDomainName {
			continue
		}
		cands, err := d.ResolveAll(r.env, refdoc, p.Target, contnode, r.linker)
		if err != nil {
			return nil, err
		}
		results = append(results, cands...)
	}

	winner, ok := pickCandidate(results)
	if !ok {
		return nil, nil
	}
	if len(results) > 1 {
		logging.AmbiguousReference(r.log, p.Target, formatCandidates(results), p.Source, p.Line)
	}

	stampClasses(winner)
	return winner.Node, nil
}

// resolveLabel resolves the target as a section label. Explicit
// captions use the anonymous-label registry and keep the reference's
// own nested content; implicit ones use the named-label registry and
// take the registered section name.
func (r *Resolver) resolveLabel(refdoc string, p *doctree.Pending) (*doctree.Element, error) {
	lowered := strings.ToLower(p.Target)

	var docname, anchor string
	var inner *doctree.Element
	if p.Explicit {
		l, _ := r.env.AnonLabel(lowered)
		docname, anchor = l.Docname, l.Anchor
		inner = doctree.NewInline()
		if p.Content != nil {
			inner.Append(p.Content.Children...)
		}
	} else {
		l, _ := r.env.Label(lowered)
		docname, anchor = l.Docname, l.Anchor
		inner = doctree.NewInline(doctree.NewText(l.Section))
	}

	if docname == "" {
		return nil, nil
	}
	return r.linker.Build(refdoc, docname, anchor, inner)
}

// resolveDoc resolves the target as a direct document-name reference.
// The path joins against the owning document; an unknown name is
// retried once with its registered source suffix stripped. An explicit
// "#fragment" on the target becomes the link anchor.
func (r *Resolver) resolveDoc(refdoc string, p *doctree.Pending) (*doctree.Element, error) {
	tgt := target.Parse(p.Target)
	if tgt.IsQualified() || tgt.Path == "" {
		return nil, nil
	}

	docname := project.DocnameJoin(refdoc, tgt.Path)
	if !r.env.HasDocument(docname) {
		if r.env.HasSourceSuffix(docname) {
			docname = strings.TrimSuffix(docname, path.Ext(docname))
		}
		if !r.env.HasDocument(docname) {
			return nil, nil
		}
	}

	var inner *doctree.Element
	if p.Explicit {
		inner = doctree.NewInline()
		if p.Content != nil {
			inner.Append(p.Content.Children...)
		}
	} else {
		caption := doctree.CleanText(r.env.Title(docname))
		inner = doctree.NewInline(doctree.NewText(caption))
	}
	inner.AddClass("doc")

	return r.linker.Build(refdoc, docname, tgt.Fragment, inner)
}

// stampClasses records which registry won on the resolved node's
// content, so downstream rendering styles the reference by what it
// actually matched.
func stampClasses(c project.Candidate) {
	first := c.Node.FirstChildElement()
	if first == nil {
		return
	}
	domain := c.Role
	if i := strings.Index(domain, ":"); i >= 0 {
		domain = domain[:i]
	}
	first.AddClass(domain, strings.ReplaceAll(c.Role, ":", "-"))
}
