package components

// CornPile is a thrown feed pile. Not owned by any agent; birds read the
// pile list to decide attraction. Removed when Remaining reaches zero.
type CornPile struct {
	Remaining float32 // lifetime left in seconds
}
