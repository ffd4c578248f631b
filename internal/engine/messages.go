package engine

import (
	"fmt"
	"strings"

	"huskywatch/internal/classify"
	"huskywatch/internal/mergestore"
)

// feedMessage renders the alert for a qualifying feed event:
//
//	<Category> Alert
//	<title>
//	<status>
//	[<information>]
//	[Player Page](<url>)
func feedMessage(category classify.Category, candidate classify.CandidateEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Alert\n%s\n%s", category, candidate.Title, candidate.Status)
	if candidate.Information != "" {
		b.WriteString("\n")
		b.WriteString(candidate.Information)
	}
	fmt.Fprintf(&b, "\n[Player Page](<%s>)", candidate.ProfileURL)
	return b.String()
}

// portalMessage renders the alert for a portal record in the phrasing that
// matches its category.
func portalMessage(category classify.Category, record mergestore.Record) string {
	switch category {
	case classify.CategoryPortalEntry:
		return joinFields(record.Origin, record.Position, record.Name) + " has entered the transfer portal."
	case classify.CategoryPortalWithdrawal:
		return fmt.Sprintf("%s's %s entered the transfer portal, but later withdrew to return to %s.",
			record.Origin, record.Name, record.Destination)
	default:
		return fmt.Sprintf("%s has transferred to %s.",
			joinFields(record.Origin, record.Position, record.Name), record.Destination)
	}
}

func joinFields(fields ...string) string {
	kept := fields[:0:0]
	for _, field := range fields {
		if field != "" {
			kept = append(kept, field)
		}
	}
	return strings.Join(kept, " ")
}
