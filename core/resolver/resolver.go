package resolver

import (
	"log/slog"

	"github.com/FocuswithJustin/JuniperDocs/core/doctree"
	"github.com/FocuswithJustin/JuniperDocs/core/errors"
	"github.com/FocuswithJustin/JuniperDocs/core/hooks"
	"github.com/FocuswithJustin/JuniperDocs/core/linker"
	"github.com/FocuswithJustin/JuniperDocs/core/project"
	"github.com/FocuswithJustin/JuniperDocs/internal/logging"
)

// Reference kinds.
const (
	// KindLink tags the pipeline's own pending references; the pass
	// handles these and no others.
	KindLink = "link"

	// KindAny is the generic catch-all kind advertised to
	// missing-reference hooks.
	KindAny = "any"
)

// Stats summarizes one resolution pass.
type Stats struct {
	// Pending counts the pending references the pass processed.
	Pending int

	// Resolved counts references replaced with a navigable link.
	Resolved int

	// Fallback counts references replaced with their literal caption.
	Fallback int
}

// Resolver runs resolution passes against one project environment.
type Resolver struct {
	env    *project.Env
	linker linker.Linker
	log    *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the warning sink. The default is the global logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) {
		r.log = log
	}
}

// New creates a resolver for the given environment and linker.
func New(env *project.Env, lk linker.Linker, opts ...Option) *Resolver {
	r := &Resolver{
		env:    env,
		linker: lk,
		log:    logging.GetLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run resolves every pending "link" reference in the document tree.
// Each one is replaced by exactly one node: a resolved reference, a
// hook-provided node, or the reference's own caption content.
func (r *Resolver) Run(doc *doctree.Document) Stats {
	var stats Stats
	for _, p := range doctree.CollectPending(doc.Root, KindLink) {
		stats.Pending++

		refdoc := p.RefDoc
		if refdoc == "" {
			refdoc = doc.Name
		}

		// Snapshot the caption before any strategy touches the node.
		fallback := p.Content.DeepCopy()

		newnode, err := r.resolveWithHooks(refdoc, p, fallback)
		if err != nil {
			// A found-but-unaddressable target is indistinguishable
			// from no match; anything else degrades the same way but
			// is worth a warning.
			if !errors.Is(err, errors.ErrNoURI) {
				r.log.Warn("resolution error", "target", p.Target, "error", err.Error(), "source", p.Source, "line", p.Line)
			}
			newnode = nil
		}

		var replacement doctree.Node
		if newnode != nil {
			replacement = newnode
			stats.Resolved++
		} else {
			replacement = fallback
			stats.Fallback++
		}
		doctree.ReplaceNode(doc.Root, p, replacement)
	}
	return stats
}

// resolveWithHooks runs the unified routine, then the missing-reference
// hooks, then reports failure. A nil node with nil error means the
// caller should fall back to the caption.
func (r *Resolver) resolveWithHooks(refdoc string, p *doctree.Pending, fallback doctree.Node) (*doctree.Element, error) {
	newnode, err := r.Resolve(refdoc, p, fallback)
	if err != nil || newnode != nil {
		return newnode, err
	}

	// No registry matched; give extensions that index the generic kind
	// a chance. The kind is advertised as an argument, the node itself
	// is never relabeled.
	newnode, err = hooks.FirstResult(r.env, p, fallback, KindAny)
	if err != nil || newnode != nil {
		return newnode, err
	}

	p.Domain = ""
	logging.ReferenceNotFound(r.log, p.Kind, p.Target, p.Source, p.Line)
	return nil, nil
}
