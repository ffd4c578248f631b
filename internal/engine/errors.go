package engine

import "errors"

var (
	// ErrMalformedCandidate marks a candidate missing required structured
	// fields. Malformed candidates are skipped, never fatal to the run.
	ErrMalformedCandidate = errors.New("malformed candidate")

	// ErrReferenceData marks a failed reference-data fetch. This aborts the
	// run before any persistence: classifying without the peer or
	// entity-of-interest lists would silently suppress real events or flood
	// false positives.
	ErrReferenceData = errors.New("reference data unavailable")

	// ErrSinkDelivery marks alerts that could not be delivered. The affected
	// keys are left unremembered and records unresolved, so the next run
	// retries them naturally.
	ErrSinkDelivery = errors.New("sink delivery failure")
)
