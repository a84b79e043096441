// Package target parses reference-target strings.
//
// A target as written in source markup is one of:
//
//   - a plain path or label: "sec-intro", "./sub/page.md"
//   - a path with an explicit fragment: "./sub/page.md#sec-intro"
//   - a fully qualified object: "py:class:Document"
//
// Strings that do not fit the grammar (stray colons, unbalanced
// punctuation) are treated as opaque paths rather than errors; the
// resolver's registries decide what an opaque target means.
package target

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Target is a parsed reference target.
type Target struct {
	// Domain and Role are set for fully qualified "domain:role:name"
	// targets; empty otherwise.
	Domain string
	Role   string

	// Path is the path, label, or object name portion.
	Path string

	// Fragment is the anchor after "#", if any.
	Fragment string

	// Raw is the original target string, unmodified.
	Raw string
}

// IsQualified returns true for fully qualified "domain:role:name" targets.
func (t Target) IsQualified() bool {
	return t.Domain != ""
}

// targetGrammar is the participle grammar for reference targets.
//
//nolint:govet // participle grammar tags are not standard struct tags
type targetGrammar struct {
	Domain   *string `parser:"( @Part ':'"`
	Role     *string `parser:"  @Part ':' )?"`
	Path     *string `parser:"@Part?"`
	Fragment *string `parser:"( '#' @Part )?"`
}

// targetLexer defines the lexer for reference targets.
var targetLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Part", Pattern: `[^:#]+`},
	{Name: "Punct", Pattern: `[:#]`},
})

// targetParser is the participle parser for reference targets. The
// qualified prefix is only distinguishable from a plain path after its
// second colon, so the parser needs more than one token of lookahead.
var targetParser = participle.MustBuild[targetGrammar](
	participle.Lexer(targetLexer),
	participle.UseLookahead(participle.MaxLookahead),
)

// Parse parses a reference-target string. It never fails: inputs outside
// the grammar come back as opaque paths.
func Parse(s string) Target {
	t := Target{Raw: s, Path: s}
	if s == "" {
		t.Path = ""
		return t
	}

	parsed, err := targetParser.ParseString("", s)
	if err != nil {
		return t
	}

	t.Path = ""
	if parsed.Domain != nil {
		t.Domain = *parsed.Domain
	}
	if parsed.Role != nil {
		t.Role = *parsed.Role
	}
	if parsed.Path != nil {
		t.Path = *parsed.Path
	}
	if parsed.Fragment != nil {
		t.Fragment = *parsed.Fragment
	}
	return t
}
