package engine

import (
	"regexp"
	"strings"

	"huskywatch/internal/config"
	"huskywatch/internal/identity"
	"huskywatch/internal/mergestore"
	"huskywatch/internal/sheets"
)

var withdrawalPattern = regexp.MustCompile(`(?i)withdrew|withdrawn`)

// normalizeRow maps one spreadsheet row through the source's column layout to
// a merge candidate. Rows missing an origin or a name, and rows that do not
// involve the tracked organization on either side, are dropped.
func (e *Engine) normalizeRow(source config.PortalSource, row sheets.Row) (mergestore.Record, bool) {
	origin := row.Cell(source.OriginColumn)
	name := row.Cell(source.NameColumn)
	if origin == "" || name == "" {
		return mergestore.Record{}, false
	}

	destination := row.Cell(source.DestinationColumn)
	if destination == "" {
		destination = mergestore.UnknownDestination
	}

	if !e.mentionsOrg(origin) && !e.mentionsOrg(destination) {
		return mergestore.Record{}, false
	}

	// A destination cell that embeds the origin alongside withdrawal wording
	// means the player pulled out of the portal: record it as a return to the
	// origin so the record classifies as a withdrawal.
	if destination != mergestore.UnknownDestination &&
		strings.Contains(identity.Fold(destination), identity.Fold(origin)) &&
		withdrawalPattern.MatchString(destination) {
		destination = origin
	}

	record := mergestore.Record{
		Date:        row.Cell(source.DateColumn),
		Name:        name,
		Position:    row.Cell(source.PositionColumn),
		Origin:      e.canonicalOrg(origin),
		Destination: destination,
	}
	if record.Destination != mergestore.UnknownDestination {
		record.Destination = e.canonicalOrg(record.Destination)
	}
	return record, true
}

// mentionsOrg reports whether a spreadsheet cell refers to the tracked
// organization under any configured alias. Containment rather than equality,
// so decorated cells like "Withdrew (Michigan Tech)" still match.
func (e *Engine) mentionsOrg(value string) bool {
	folded := identity.Fold(value)
	for _, alias := range e.cfg.Org.Aliases {
		if strings.Contains(folded, identity.Fold(alias)) {
			return true
		}
	}
	return false
}

// canonicalOrg rewrites any exact alias of the tracked organization to its
// display name so messages and persisted records use one spelling.
func (e *Engine) canonicalOrg(value string) string {
	folded := identity.Fold(value)
	for _, alias := range e.cfg.Org.Aliases {
		if folded == identity.Fold(alias) {
			return e.cfg.Org.Name
		}
	}
	return value
}
