package target

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Target
	}{
		{
			input:    "sec-intro",
			expected: Target{Path: "sec-intro"},
		},
		{
			input:    "./sub/page.md",
			expected: Target{Path: "./sub/page.md"},
		},
		{
			input:    "./sub/page.md#sec-intro",
			expected: Target{Path: "./sub/page.md", Fragment: "sec-intro"},
		},
		{
			input:    "#sec-intro",
			expected: Target{Fragment: "sec-intro"},
		},
		{
			input:    "py:class:Document",
			expected: Target{Domain: "py", Role: "class", Path: "Document"},
		},
		{
			input:    "py:class:Document#frag",
			expected: Target{Domain: "py", Role: "class", Path: "Document", Fragment: "frag"},
		},
		{
			// Single colon does not fit the qualified form; opaque path.
			input:    "std:ref",
			expected: Target{Path: "std:ref"},
		},
		{
			// Extra colons in the name portion; opaque path.
			input:    "a:b:c:d",
			expected: Target{Path: "a:b:c:d"},
		},
		{
			input:    "",
			expected: Target{},
		},
		{
			// Spaces are ordinary path characters.
			input:    "getting started",
			expected: Target{Path: "getting started"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Parse(tt.input)
			if got.Raw != tt.input {
				t.Errorf("Raw = %q, want %q", got.Raw, tt.input)
			}
			if got.Domain != tt.expected.Domain {
				t.Errorf("Domain = %q, want %q", got.Domain, tt.expected.Domain)
			}
			if got.Role != tt.expected.Role {
				t.Errorf("Role = %q, want %q", got.Role, tt.expected.Role)
			}
			if got.Path != tt.expected.Path {
				t.Errorf("Path = %q, want %q", got.Path, tt.expected.Path)
			}
			if got.Fragment != tt.expected.Fragment {
				t.Errorf("Fragment = %q, want %q", got.Fragment, tt.expected.Fragment)
			}
		})
	}
}

func TestIsQualified(t *testing.T) {
	if !Parse("py:class:Document").IsQualified() {
		t.Error("qualified target not detected")
	}
	if Parse("sec-intro").IsQualified() {
		t.Error("plain target reported as qualified")
	}
}
