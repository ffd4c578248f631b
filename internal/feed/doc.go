// Package feed pulls the provider's roster-transaction feed and normalizes
// entries into structured candidates.
//
// The brittle dependency on the feed's text shape (Status:/Date:/Player:
// markers and From:/To: team links inside entry descriptions) is isolated in
// Normalize so the engine stays markup-agnostic.
package feed
