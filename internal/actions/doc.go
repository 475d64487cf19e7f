// Package actions defines the bulk-action commands a batch view hands to
// its collaborators, and in-process collaborators that serve them.
//
// Commands are plain values carrying the selected task ids; the batch view
// never performs the action itself. The collaborators here are:
//   - LogDispatcher: records every command and does nothing else
//   - FileExporter: writes the selected tasks as JSON, YAML or CSV
//   - ChunkedNotifier: fans task ids out in fixed-size chunks
//   - Router: combines one collaborator per action into a single dispatcher
package actions
