// Package catalog is the query surface over all task batches.
//
// A Catalog is built once from a complete snapshot of batches, validates
// every record, and keeps them in canonical order: most recently created
// first, ties broken by descending id. All queries are pure; per-view state
// such as the search text or the current page is passed in by the caller.
package catalog
