// Package feed loads complete snapshots of batches, their tasks and the
// executor directory from YAML or JSON files, or from the sample data
// compiled into the binary.
//
// Every record is validated on load. A single bad record rejects the
// whole snapshot; nothing is clamped or silently dropped.
package feed
