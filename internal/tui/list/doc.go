// Package listview provides a cursor-driven list component for Bubble Tea
// views. Only the rows inside the viewport are rendered, and the cursor is
// kept visible as it moves.
package listview
