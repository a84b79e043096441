package project

import (
	"sort"
	"strings"

	"github.com/FocuswithJustin/JuniperDocs/core/doctree"
	"github.com/FocuswithJustin/JuniperDocs/core/linker"
)

// StdDomainName is the name of the core domain that owns sections,
// documents, and the built-in object types.
const StdDomainName = "std"

// TermType is the object type whose lookups are case-insensitive.
const TermType = "term"

// Candidate is one possible resolution of a reference target, tagged
// with the "domain:role" that produced it.
type Candidate struct {
	// Role is the qualified role tag (e.g., "std:ref", "py:class").
	Role string

	// Node is the built reference element.
	Node *doctree.Element
}

// Domain is a reference domain: a namespace owning referenceable
// objects. Every domain resolves a target against all its object types
// at once; domains that only support per-role lookup are adapted with
// AdaptRoles rather than branched on at call sites.
type Domain interface {
	// Name returns the domain name (e.g., "py", "cli").
	Name() string

	// ResolveAll returns every candidate match for target across the
	// domain's object types. An errors.ErrNoURI failure aborts the
	// whole resolution in favor of fallback content, so implementations
	// should return it rather than swallow it.
	ResolveAll(env *Env, fromDoc, target string, content doctree.Node, lk linker.Linker) ([]Candidate, error)
}

// RoleResolver is the slower per-role lookup interface implemented by
// domains that predate bulk resolution.
type RoleResolver interface {
	// Name returns the domain name.
	Name() string

	// Roles returns the domain's role names.
	Roles() []string

	// ResolveRole resolves target under a single role. A nil element
	// with nil error means no match.
	ResolveRole(env *Env, fromDoc, role, target string, content doctree.Node, lk linker.Linker) (*doctree.Element, error)
}

// roleAdapter adapts a RoleResolver to the Domain interface by iterating
// its declared roles.
type roleAdapter struct {
	r RoleResolver
}

// AdaptRoles wraps a per-role domain so it can be registered as a Domain.
func AdaptRoles(r RoleResolver) Domain {
	return &roleAdapter{r: r}
}

func (a *roleAdapter) Name() string {
	return a.r.Name()
}

func (a *roleAdapter) ResolveAll(env *Env, fromDoc, target string, content doctree.Node, lk linker.Linker) ([]Candidate, error) {
	var out []Candidate
	for _, role := range a.r.Roles() {
		node, err := a.r.ResolveRole(env, fromDoc, role, target, content, lk)
		if err != nil {
			return nil, err
		}
		if node == nil {
			continue
		}
		out = append(out, Candidate{Role: a.r.Name() + ":" + role, Node: node})
	}
	return out, nil
}

// ObjectType declares one kind of referenceable object and the role
// used to reference it.
type ObjectType struct {
	Name string
	Role string
}

// ObjectEntry locates one registered object.
type ObjectEntry struct {
	Docname string
	Anchor  string
}

type objKey struct {
	objType string
	name    string
}

// ObjectRegistry maps (object type, object name) to locations. Lookups
// for the "term" type are case-insensitive; all others are exact.
type ObjectRegistry struct {
	domain  string
	types   []ObjectType
	objects map[objKey]ObjectEntry
}

// NewObjectRegistry creates an empty registry for the named domain.
func NewObjectRegistry(domain string) *ObjectRegistry {
	return &ObjectRegistry{
		domain:  domain,
		objects: make(map[objKey]ObjectEntry),
	}
}

// Domain returns the owning domain name.
func (r *ObjectRegistry) Domain() string {
	return r.domain
}

// DeclareType declares an object type and its role. Declaring an
// existing type updates its role.
func (r *ObjectRegistry) DeclareType(name, role string) {
	for i, t := range r.types {
		if t.Name == name {
			r.types[i].Role = role
			return
		}
	}
	r.types = append(r.types, ObjectType{Name: name, Role: role})
}

// Types returns the declared object types in declaration order.
func (r *ObjectRegistry) Types() []ObjectType {
	return r.types
}

// RoleFor returns the role for an object type, or "" if undeclared.
func (r *ObjectRegistry) RoleFor(typeName string) string {
	for _, t := range r.types {
		if t.Name == typeName {
			return t.Role
		}
	}
	return ""
}

// Add registers an object. The type must have been declared. Term
// names are stored lower-cased so lookups are case-insensitive.
func (r *ObjectRegistry) Add(objType, name, docname, anchor string) {
	r.objects[r.key(objType, name)] = ObjectEntry{Docname: docname, Anchor: anchor}
}

// Lookup finds an object by type and name.
func (r *ObjectRegistry) Lookup(objType, name string) (ObjectEntry, bool) {
	entry, ok := r.objects[r.key(objType, name)]
	return entry, ok
}

// Entries returns all (type, name) pairs, sorted, for listings.
func (r *ObjectRegistry) Entries() []struct{ Type, Name string } {
	out := make([]struct{ Type, Name string }, 0, len(r.objects))
	for k := range r.objects {
		out = append(out, struct{ Type, Name string }{k.objType, k.name})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (r *ObjectRegistry) key(objType, name string) objKey {
	if objType == TermType {
		name = strings.ToLower(name)
	}
	return objKey{objType: objType, name: name}
}

// ObjectDomain is a Domain backed by an ObjectRegistry; it supports bulk
// resolution directly.
type ObjectDomain struct {
	Registry *ObjectRegistry
}

// NewObjectDomain creates a domain around a fresh registry.
func NewObjectDomain(name string) *ObjectDomain {
	return &ObjectDomain{Registry: NewObjectRegistry(name)}
}

// Name returns the domain name.
func (d *ObjectDomain) Name() string {
	return d.Registry.Domain()
}

// ResolveAll looks up target under every declared object type.
func (d *ObjectDomain) ResolveAll(env *Env, fromDoc, target string, content doctree.Node, lk linker.Linker) ([]Candidate, error) {
	var out []Candidate
	for _, t := range d.Registry.Types() {
		entry, ok := d.Registry.Lookup(t.Name, target)
		if !ok {
			continue
		}
		node, err := lk.Build(fromDoc, entry.Docname, entry.Anchor, content)
		if err != nil {
			return nil, err
		}
		out = append(out, Candidate{Role: d.Name() + ":" + t.Role, Node: node})
	}
	return out, nil
}
