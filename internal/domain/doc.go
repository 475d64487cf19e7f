// Package domain defines the task batch model shared by the catalog and
// detail views.
//
// A TaskBatch groups tasks that move together through three sequential
// stages (accepted, signed, paid). Each stage is tracked as a
// current/total counter pair. Tasks belonging to a batch occupy one of four
// statuses; which moves between statuses are legal is decided by a
// pluggable TransitionPolicy rather than hard-coded here.
package domain
