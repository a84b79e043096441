package resolver

import (
	"strings"

	"github.com/FocuswithJustin/JuniperDocs/core/project"
)

// pickCandidate selects the winner from a priority-ordered candidate
// list: the first entry. Pure function; the ambiguity warning is the
// caller's concern.
func pickCandidate(results []project.Candidate) (project.Candidate, bool) {
	if len(results) == 0 {
		return project.Candidate{}, false
	}
	return results[0], true
}

// formatCandidates renders a candidate list for the ambiguity warning:
// :domain:role:`title` entries joined by " or ".
func formatCandidates(results []project.Candidate) string {
	parts := make([]string, len(results))
	for i, c := range results {
		title := c.Node.Attr("reftitle")
		if title == "" {
			title = c.Node.AsText()
		}
		parts[i] = ":" + c.Role + ":`" + title + "`"
	}
	return strings.Join(parts, " or ")
}
