// Package pagination provides page slicing, page metadata and sorting for
// list views.
//
// This package contains the shared list logic used by the catalog and the
// presentation layer, including:
//   - Paginate: zero-indexed page slicing with no clamping
//   - ClampPage: the caller-side leniency for out-of-range page numbers
//   - Meta and Window: metadata and pager links for a rendered page
//   - BatchSorter: field-validated sorting of task batches
//
// Paginate deliberately does not clamp. Callers that take a page number from
// user input clamp it first with ClampPage, so a stale page number after a
// narrowing search lands on the last page instead of failing.
package pagination
