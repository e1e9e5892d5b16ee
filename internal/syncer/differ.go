package syncer

// Diff splits a window of origin ids against the set already stored.
// Ids keep their window order. Every window id lands in exactly one of
// the two results.
func Diff(window []int, existing map[int]struct{}) (newIDs, updateCandidates []int) {
	for _, id := range window {
		if _, ok := existing[id]; ok {
			updateCandidates = append(updateCandidates, id)
		} else {
			newIDs = append(newIDs, id)
		}
	}
	return newIDs, updateCandidates
}
