// Package mergestore persists portal-sourced transfers that may be completed
// over time.
//
// A transfer first sighted without a destination is recorded as pending and
// re-emitted exactly once when a later sighting supplies the destination.
// Records carry no TTL: a portal entry has no natural staleness signal, so
// every record is rewritten to disk each run, resolved or not.
package mergestore
