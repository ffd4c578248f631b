// Package retention persists the time-windowed set of feed dedup keys.
//
// Load is a combined read-and-compact pass: expired keys are evicted and the
// file is rewritten atomically before any classification happens, so a key
// returned by Load is always younger than the retention window. Remember is
// append-only within a run and happens only after successful delivery.
package retention
