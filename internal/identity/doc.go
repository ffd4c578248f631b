// Package identity implements the fuzzy person-identity rules shared by the
// classifier and the merge store.
//
// Portal spreadsheets carry no stable player IDs, so two sightings are linked
// purely by name: the first two characters of the leading token plus the full
// remainder, compared case- and diacritic-insensitively. Feed entries instead
// identify entities of interest by profile-URL containment in the entry text.
package identity
