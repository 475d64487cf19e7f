// Package detail implements the view over a single batch: its tasks, the
// selection used for bulk actions, status aggregation, and dispatch of
// act, notification and export commands to an injected collaborator.
//
// A Detail is scoped to one view and is not safe for concurrent use.
package detail
