// Package profiles supplies per-run reference data scraped from the
// provider's site: the entity-of-interest profile list from the tracked
// org's alumni page, qualifying appearance counts from player stats tables,
// and profile photos for notification embeds.
//
// The concrete markup assumptions live here; the engine only sees the
// reference-source and lookup interfaces.
package profiles
