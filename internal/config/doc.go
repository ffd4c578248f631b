// Package config loads, normalizes, and validates HuskyWatch configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the HUSKYWATCH_WEBHOOK_URL
// environment fallback. The Config type centralizes every knob the CLI and
// engine need: the tracked organization and its peer tier, feed and profile
// endpoints, portal spreadsheet layouts, state file locations, and the
// notification webhook.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical org aliases, and clear validation errors.
package config
