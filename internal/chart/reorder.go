package chart

import "slices"

// moveBefore removes the element with id dragID and reinserts it at the index
// targetID held before the removal. Dragging upward therefore lands in front
// of the target and dragging downward lands just after it. It returns items
// unchanged when either id is missing or both name the same element.
func moveBefore[T any](items []T, dragID, targetID string, idOf func(T) string) []T {
	from := slices.IndexFunc(items, func(v T) bool { return idOf(v) == dragID })
	to := slices.IndexFunc(items, func(v T) bool { return idOf(v) == targetID })
	if from < 0 || to < 0 || from == to {
		return items
	}

	dragged := items[from]
	out := slices.Delete(slices.Clone(items), from, from+1)
	return slices.Insert(out, to, dragged)
}
