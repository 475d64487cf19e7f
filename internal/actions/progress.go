package actions

// percentMultiplier converts a ratio to a percentage (0-100).
const percentMultiplier = 100

// Progress is a snapshot of chunk processing.
type Progress struct {
	TotalItems      int
	ProcessedItems  int
	TotalChunks     int
	ProcessedChunks int
}

// PercentComplete returns processed items as a percentage of the total.
func (p Progress) PercentComplete() float64 {
	if p.TotalItems == 0 {
		return 0
	}
	return percentMultiplier * float64(p.ProcessedItems) / float64(p.TotalItems)
}

// IsComplete reports whether every item has been processed.
func (p Progress) IsComplete() bool {
	return p.ProcessedItems >= p.TotalItems
}
