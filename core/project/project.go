// Package project provides the build environment the resolver runs
// against: the document index, the label registries, the std object
// registry, and any additional reference domains.
//
// All registries are populated before a resolution pass starts and are
// read-only while one runs.
package project

import (
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/JuniperDocs/core/doctree"
)

// Label is a named section label: the final link content carries the
// section name registered with it.
type Label struct {
	Docname string
	Anchor  string
	Section string
}

// AnonLabel is an anonymous label: the reference supplies its own caption.
type AnonLabel struct {
	Docname string
	Anchor  string
}

// Env is the build environment.
type Env struct {
	docs       map[string]*doctree.Element
	labels     map[string]Label
	anonLabels map[string]AnonLabel
	std        *ObjectRegistry
	domains    []Domain
	suffixes   []string
}

// NewEnv creates an empty environment. The given source suffixes are
// recognized when stripping extensions from document references; ".md"
// is assumed when none are given.
func NewEnv(suffixes ...string) *Env {
	if len(suffixes) == 0 {
		suffixes = []string{".md"}
	}
	return &Env{
		docs:       make(map[string]*doctree.Element),
		labels:     make(map[string]Label),
		anonLabels: make(map[string]AnonLabel),
		std:        NewObjectRegistry(StdDomainName),
		suffixes:   append([]string(nil), suffixes...),
	}
}

// AddDocument registers a document and its title content.
func (e *Env) AddDocument(name string, title *doctree.Element) {
	if title == nil {
		title = doctree.NewElement("title")
	}
	e.docs[name] = title
}

// HasDocument reports whether name is a known document.
func (e *Env) HasDocument(name string) bool {
	_, ok := e.docs[name]
	return ok
}

// Title returns the registered title content for a document, or nil.
func (e *Env) Title(name string) *doctree.Element {
	return e.docs[name]
}

// Documents returns all known document names, sorted.
func (e *Env) Documents() []string {
	names := make([]string, 0, len(e.docs))
	for name := range e.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddLabel registers a named label. Label keys are lower-cased.
func (e *Env) AddLabel(name, docname, anchor, section string) {
	e.labels[strings.ToLower(name)] = Label{Docname: docname, Anchor: anchor, Section: section}
}

// Label looks up a named label by its lower-cased key.
func (e *Env) Label(name string) (Label, bool) {
	l, ok := e.labels[strings.ToLower(name)]
	return l, ok
}

// Labels returns all named label keys, sorted.
func (e *Env) Labels() []string {
	names := make([]string, 0, len(e.labels))
	for name := range e.labels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddAnonLabel registers an anonymous label. Label keys are lower-cased.
// An empty anchor gets a synthesized id.
func (e *Env) AddAnonLabel(name, docname, anchor string) {
	if anchor == "" {
		anchor = "id-" + uuid.NewString()
	}
	e.anonLabels[strings.ToLower(name)] = AnonLabel{Docname: docname, Anchor: anchor}
}

// AnonLabel looks up an anonymous label by its lower-cased key.
func (e *Env) AnonLabel(name string) (AnonLabel, bool) {
	l, ok := e.anonLabels[strings.ToLower(name)]
	return l, ok
}

// AnonLabels returns all anonymous label keys, sorted.
func (e *Env) AnonLabels() []string {
	names := make([]string, 0, len(e.anonLabels))
	for name := range e.anonLabels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Std returns the core object registry.
func (e *Env) Std() *ObjectRegistry {
	return e.std
}

// RegisterDomain adds a reference domain. Domains are consulted in
// registration order; that order decides which domain wins when more
// than one matches, so callers should register deterministically.
func (e *Env) RegisterDomain(d Domain) {
	e.domains = append(e.domains, d)
}

// Domains returns the registered domains in registration order.
func (e *Env) Domains() []Domain {
	return e.domains
}

// SourceSuffixes returns the recognized source-file suffixes.
func (e *Env) SourceSuffixes() []string {
	return e.suffixes
}

// HasSourceSuffix reports whether the path ends in a recognized suffix.
func (e *Env) HasSourceSuffix(p string) bool {
	ext := path.Ext(p)
	for _, s := range e.suffixes {
		if ext == s {
			return true
		}
	}
	return false
}

// DocnameJoin resolves a document reference relative to the document it
// appears in. Relative paths resolve against the base document's
// directory; paths starting with "/" resolve from the project root.
func DocnameJoin(base, rel string) string {
	if strings.HasPrefix(rel, "/") {
		return path.Clean(strings.TrimPrefix(rel, "/"))
	}
	joined := path.Join(path.Dir(base), rel)
	return path.Clean(joined)
}
