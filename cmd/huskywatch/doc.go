// Command huskywatch watches a roster transaction feed and transfer portal
// spreadsheets for events involving one tracked organization and posts alerts
// to a chat webhook. It is designed to run from a scheduler; each invocation
// performs one complete cycle and exits.
package main
