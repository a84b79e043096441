package project

import (
	"path/filepath"
	"testing"

	"github.com/FocuswithJustin/JuniperDocs/core/doctree"
	"github.com/FocuswithJustin/JuniperDocs/core/sqlite"
)

func buildTestEnv() *Env {
	env := NewEnv(".md", ".txt")
	env.AddDocument("index", titleOf("Welcome"))
	env.AddDocument("guide/page", titleOf("The Guide"))

	env.AddLabel("sec-b", "guide/page", "sec-b", "Background")
	env.AddAnonLabel("sec-a", "guide/page", "sec-a")

	env.Std().DeclareType(TermType, "term")
	env.Std().Add(TermType, "doctree", "glossary", "term-doctree")

	py := NewObjectDomain("py")
	py.Registry.DeclareType("class", "class")
	py.Registry.Add("class", "Document", "api/doctree", "class-document")
	env.RegisterDomain(py)

	return env
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	db := sqlite.MustOpen(path)
	defer db.Close()

	if err := Save(db, buildTestEnv()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	env, err := Load(db)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !env.HasDocument("guide/page") {
		t.Error("document lost in round trip")
	}
	if got := doctree.CleanText(env.Title("guide/page")); got != "The Guide" {
		t.Errorf("title = %q, want %q", got, "The Guide")
	}

	l, ok := env.Label("sec-b")
	if !ok || l.Section != "Background" {
		t.Errorf("named label lost: %+v ok=%v", l, ok)
	}
	a, ok := env.AnonLabel("sec-a")
	if !ok || a.Anchor != "sec-a" {
		t.Errorf("anonymous label lost: %+v ok=%v", a, ok)
	}

	if _, ok := env.Std().Lookup(TermType, "Doctree"); !ok {
		t.Error("std term lost in round trip")
	}

	domains := env.Domains()
	if len(domains) != 1 || domains[0].Name() != "py" {
		t.Fatalf("domains = %v", domains)
	}
	od := domains[0].(*ObjectDomain)
	if _, ok := od.Registry.Lookup("class", "Document"); !ok {
		t.Error("py object lost in round trip")
	}

	suffixes := env.SourceSuffixes()
	if len(suffixes) != 2 || suffixes[0] != ".md" || suffixes[1] != ".txt" {
		t.Errorf("suffixes = %v", suffixes)
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	db := sqlite.MustOpen(path)
	defer db.Close()

	if err := Save(db, buildTestEnv()); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	small := NewEnv()
	small.AddDocument("only", titleOf("Only"))
	if err := Save(db, small); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	env, err := Load(db)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if env.HasDocument("guide/page") {
		t.Error("stale document survived Save")
	}
	if !env.HasDocument("only") {
		t.Error("new document missing after Save")
	}
}

func TestLoadEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	db := sqlite.MustOpen(path)
	defer db.Close()

	if err := InitStore(db); err != nil {
		t.Fatalf("InitStore failed: %v", err)
	}
	env, err := Load(db)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(env.Documents()) != 0 {
		t.Error("empty database produced documents")
	}
	// Defaults still apply when no suffixes are stored.
	if !env.HasSourceSuffix("a.md") {
		t.Error("default suffix missing for empty database")
	}
}
