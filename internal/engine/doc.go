// Package engine orchestrates a complete watch cycle over the transaction
// feed and the transfer-portal spreadsheets.
//
// A cycle runs under an exclusive file lock so overlapping invocations cannot
// race on the state files. The feed pass loads the retention store, classifies
// entries whose keys are not yet remembered, and delivers alerts for the
// qualifying categories. The portal pass merges every configured spreadsheet
// source into the published-transfers store and delivers alerts for new and
// newly resolved sightings. State is only advanced past an event after its
// alert is delivered, so transient delivery failures retry on the next run.
package engine
