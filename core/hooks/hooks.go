// Package hooks provides the missing-reference extension point.
//
// When the resolver finds no match for a reference in any registry, it
// offers the reference to registered hooks before giving up. The first
// hook returning a non-nil node wins. Hooks see the generic reference
// kind ("any") as an explicit argument so that extensions indexing only
// the generic kind get their chance without any node state being
// rewritten.
package hooks

import (
	"github.com/FocuswithJustin/JuniperDocs/core/doctree"
	"github.com/FocuswithJustin/JuniperDocs/core/project"
)

// MissingRefFunc attempts to resolve a reference no registry matched.
// kind is the reference kind advertised to the hook, fallback is the
// caption content that will be used if every hook declines. Returning
// nil declines; returning an error stops the chain and the reference
// falls back to its caption (silently for errors.ErrNoURI).
type MissingRefFunc func(env *project.Env, pending *doctree.Pending, fallback doctree.Node, kind string) (*doctree.Element, error)

// hook pairs a registered function with its name.
type hook struct {
	name string
	fn   MissingRefFunc
}

// registry holds all registered hooks in registration order.
var registry []hook

// Register adds a missing-reference hook under a name. Hooks run in
// registration order.
func Register(name string, fn MissingRefFunc) {
	registry = append(registry, hook{name: name, fn: fn})
}

// Names returns the registered hook names in order.
func Names() []string {
	out := make([]string, len(registry))
	for i, h := range registry {
		out[i] = h.name
	}
	return out
}

// Clear removes all registered hooks (for testing).
func Clear() {
	registry = nil
}

// FirstResult runs the hooks in order and returns the first non-nil
// node. A nil result means every hook declined. Errors propagate so
// the caller can apply its no-destination fallback handling.
func FirstResult(env *project.Env, pending *doctree.Pending, fallback doctree.Node, kind string) (*doctree.Element, error) {
	for _, h := range registry {
		node, err := h.fn(env, pending, fallback, kind)
		if err != nil {
			return nil, err
		}
		if node != nil {
			return node, nil
		}
	}
	return nil, nil
}
