package project

import (
	"testing"

	"github.com/FocuswithJustin/JuniperDocs/core/doctree"
	"github.com/FocuswithJustin/JuniperDocs/core/errors"
	"github.com/FocuswithJustin/JuniperDocs/core/linker"
)

func TestObjectDomainResolveAll(t *testing.T) {
	d := NewObjectDomain("py")
	d.Registry.DeclareType("class", "class")
	d.Registry.DeclareType("function", "func")
	d.Registry.Add("class", "Document", "api/doctree", "class-document")
	d.Registry.Add("function", "Document", "api/factory", "func-document")
	d.Registry.Add("function", "parse", "api/parse", "func-parse")

	env := NewEnv()
	lk := &linker.RelativeLinker{Suffix: ".html"}
	content := doctree.NewInline(doctree.NewText("Document"))

	cands, err := d.ResolveAll(env, "guide/index", "Document", content, lk)
	if err != nil {
		t.Fatalf("ResolveAll failed: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want 2", len(cands))
	}
	// Candidates come back in type declaration order.
	if cands[0].Role != "py:class" || cands[1].Role != "py:func" {
		t.Errorf("roles = %q, %q", cands[0].Role, cands[1].Role)
	}
	if uri := cands[0].Node.Attr("refuri"); uri != "../api/doctree.html#class-document" {
		t.Errorf("refuri = %q", uri)
	}

	cands, err = d.ResolveAll(env, "guide/index", "absent", content, lk)
	if err != nil {
		t.Fatalf("ResolveAll failed: %v", err)
	}
	if len(cands) != 0 {
		t.Errorf("got %d candidates for absent target, want 0", len(cands))
	}
}

func TestObjectDomainPropagatesNoURI(t *testing.T) {
	d := NewObjectDomain("py")
	d.Registry.DeclareType("class", "class")
	d.Registry.Add("class", "Document", "api/doctree", "class-document")

	env := NewEnv()
	lk := &linker.SingleFileLinker{RootDoc: "index"}

	_, err := d.ResolveAll(env, "index", "Document", doctree.NewInline(), lk)
	if !errors.Is(err, errors.ErrNoURI) {
		t.Errorf("error = %v, want ErrNoURI", err)
	}
}

// fakeRoleDomain is a per-role-only domain for testing AdaptRoles.
type fakeRoleDomain struct {
	hits map[string]ObjectEntry // role → entry
}

func (f *fakeRoleDomain) Name() string { return "legacy" }

func (f *fakeRoleDomain) Roles() []string { return []string{"cmd", "opt"} }

func (f *fakeRoleDomain) ResolveRole(env *Env, fromDoc, role, target string, content doctree.Node, lk linker.Linker) (*doctree.Element, error) {
	entry, ok := f.hits[role+"/"+target]
	if !ok {
		return nil, nil
	}
	return lk.Build(fromDoc, entry.Docname, entry.Anchor, content)
}

func TestAdaptRoles(t *testing.T) {
	d := AdaptRoles(&fakeRoleDomain{hits: map[string]ObjectEntry{
		"cmd/build": {Docname: "cli/build", Anchor: "cmd-build"},
		"opt/build": {Docname: "cli/options", Anchor: "opt-build"},
	}})

	if d.Name() != "legacy" {
		t.Errorf("Name() = %q, want %q", d.Name(), "legacy")
	}

	env := NewEnv()
	lk := &linker.RelativeLinker{}

	cands, err := d.ResolveAll(env, "index", "build", doctree.NewInline(), lk)
	if err != nil {
		t.Fatalf("ResolveAll failed: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want 2", len(cands))
	}
	if cands[0].Role != "legacy:cmd" || cands[1].Role != "legacy:opt" {
		t.Errorf("roles = %q, %q", cands[0].Role, cands[1].Role)
	}

	cands, err = d.ResolveAll(env, "index", "absent", doctree.NewInline(), lk)
	if err != nil {
		t.Fatalf("ResolveAll failed: %v", err)
	}
	if len(cands) != 0 {
		t.Errorf("got %d candidates for absent target, want 0", len(cands))
	}
}
