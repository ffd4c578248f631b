// Package classify decides what category of roster event a raw candidate
// represents.
//
// Feed candidates walk a fixed decision ladder: peer-tier suppression first,
// then explicit origin/destination matches against the tracked organization,
// then entity-of-interest detection backed by an appearance lookup. Portal
// records map directly from their resolution state. The classifier holds an
// immutable per-run reference snapshot and performs no I/O of its own beyond
// the injected lookup capability.
package classify
