package board

import "sort"

// TaskList is an ordered list of task ids.
type TaskList []string

// Dedupe collapses repeated ids, keeping the first occurrence.
func (l TaskList) Dedupe() TaskList {
	out := make(TaskList, 0, len(l))
	seen := make(map[string]struct{}, len(l))
	for _, id := range l {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Without returns a copy of the list with every occurrence of id removed.
func (l TaskList) Without(id string) TaskList {
	out := make(TaskList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Insert returns a copy of the list with id placed at position. A nil,
// negative, or out-of-range position appends.
func (l TaskList) Insert(id string, position *int) TaskList {
	out := make(TaskList, 0, len(l)+1)
	if position == nil || *position < 0 || *position >= len(l) {
		out = append(out, l...)
		return append(out, id)
	}
	out = append(out, l[:*position]...)
	out = append(out, id)
	return append(out, l[*position:]...)
}

// Contains reports whether id is in the list.
func (l TaskList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Equal reports whether both lists hold the same ids in the same order.
func (l TaskList) Equal(other TaskList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// MoveResult describes what Move changed.
type MoveResult struct {
	// Changed holds indexes into the column slice whose lists differ.
	Changed []int
	// From holds the ids of the columns that held the task beforehand.
	From []string
}

// Move relocates taskID into the column toID at position. Every column is
// de-duplicated and stripped of taskID, so a task listed in several columns
// ends up in exactly one. A same-column move repositions the task. cols is
// updated in place.
func Move(cols []Column, taskID, toID string, position *int) (MoveResult, error) {
	dest := -1
	for i := range cols {
		if cols[i].ID == toID {
			dest = i
			break
		}
	}
	if dest < 0 {
		return MoveResult{}, ErrColumnNotFound
	}

	var res MoveResult
	for i := range cols {
		if cols[i].TaskIDs.Contains(taskID) {
			res.From = append(res.From, cols[i].ID)
		}
		cleaned := cols[i].TaskIDs.Dedupe().Without(taskID)
		if i == dest {
			cleaned = cleaned.Insert(taskID, position)
		}
		if !cleaned.Equal(cols[i].TaskIDs) {
			res.Changed = append(res.Changed, i)
		}
		cols[i].TaskIDs = cleaned
	}
	return res, nil
}

// RemoveTask strips taskID from every column and returns the indexes of the
// columns that changed.
func RemoveTask(cols []Column, taskID string) []int {
	var changed []int
	for i := range cols {
		if !cols[i].TaskIDs.Contains(taskID) {
			continue
		}
		cols[i].TaskIDs = cols[i].TaskIDs.Without(taskID)
		changed = append(changed, i)
	}
	return changed
}

// DeletePlan is the outcome of removing a column from a board.
type DeletePlan struct {
	Deleted Column
	// Target received the deleted column's tasks.
	Target Column
	// Remaining is every surviving column, densely renumbered from 0.
	Remaining []Column
}

// PlanColumnDelete computes the migration for deleting column id. The
// deleted column's task ids are appended to the first other column by order
// without de-duplication.
func PlanColumnDelete(cols []Column, id string) (DeletePlan, error) {
	sorted := SortByOrder(cols)

	at := -1
	for i := range sorted {
		if sorted[i].ID == id {
			at = i
			break
		}
	}
	if at < 0 {
		return DeletePlan{}, ErrColumnNotFound
	}
	if len(sorted) <= 1 {
		return DeletePlan{}, ErrOnlyColumn
	}

	plan := DeletePlan{Deleted: sorted[at]}
	targetID := sorted[0].ID
	if targetID == id {
		targetID = sorted[1].ID
	}

	for _, col := range sorted {
		if col.ID == id {
			continue
		}
		col.Order = len(plan.Remaining)
		if col.ID == targetID {
			merged := make(TaskList, 0, len(col.TaskIDs)+len(plan.Deleted.TaskIDs))
			merged = append(merged, col.TaskIDs...)
			merged = append(merged, plan.Deleted.TaskIDs...)
			col.TaskIDs = merged
			plan.Target = col
		}
		plan.Remaining = append(plan.Remaining, col)
	}
	return plan, nil
}

// Reorder assigns each listed column its index in ids. Ids that are not in
// cols are skipped. It returns the indexes of columns whose order changed.
func Reorder(cols []Column, ids []string) []int {
	index := make(map[string]int, len(cols))
	for i := range cols {
		index[cols[i].ID] = i
	}
	var changed []int
	marked := make(map[int]bool, len(cols))
	for pos, id := range ids {
		i, ok := index[id]
		if !ok {
			continue
		}
		if cols[i].Order != pos {
			cols[i].Order = pos
			if !marked[i] {
				marked[i] = true
				changed = append(changed, i)
			}
		}
	}
	return changed
}

// NextOrder returns the order for a column appended after cols.
func NextOrder(cols []Column) int {
	next := 0
	for _, col := range cols {
		if col.Order+1 > next {
			next = col.Order + 1
		}
	}
	return next
}

// SortByOrder returns a copy of cols sorted by order, ties broken by id.
func SortByOrder(cols []Column) []Column {
	sorted := make([]Column, len(cols))
	copy(sorted, cols)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// SortByID returns a copy of cols sorted by id. Multi-column writes follow
// this order.
func SortByID(cols []Column) []Column {
	sorted := make([]Column, len(cols))
	copy(sorted, cols)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return sorted
}

// ByID indexes columns by id.
func ByID(cols []Column) map[string]Column {
	out := make(map[string]Column, len(cols))
	for _, col := range cols {
		out[col.ID] = col
	}
	return out
}

// OrderIDs lists column ids sorted by order.
func OrderIDs(cols []Column) []string {
	sorted := SortByOrder(cols)
	ids := make([]string, len(sorted))
	for i, col := range sorted {
		ids[i] = col.ID
	}
	return ids
}
