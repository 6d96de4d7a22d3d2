package chain

import "fmt"

// Trajectory is the aliquot sequence followed from a single start.
type Trajectory struct {
	// Path holds every distinct value reached, starting with the start value.
	Path []int
	// Loop is the repeating suffix of Path, nil if the sequence escaped.
	Loop Chain
	// Escaped is the first value outside [1, Limit()] when Loop is nil.
	Escaped int
}

// Loops reports whether the sequence closed on itself.
func (t Trajectory) Loops() bool { return t.Loop != nil }

// Walk follows successors from start until a value repeats or leaves the table.
// Unlike Trace it keeps no state between calls.
func Walk(sums Sums, start int) (Trajectory, error) {
	if !sums.Contains(start) {
		return Trajectory{}, fmt.Errorf("%w: start %d outside [1, %d]", ErrInvalidArgument, start, sums.Limit())
	}
	var tr Trajectory
	index := make(map[int]int)
	cur := start
	for sums.Contains(cur) {
		if i, ok := index[cur]; ok {
			tr.Loop = make(Chain, len(tr.Path)-i)
			copy(tr.Loop, tr.Path[i:])
			return tr, nil
		}
		index[cur] = len(tr.Path)
		tr.Path = append(tr.Path, cur)
		cur = sums[cur]
	}
	tr.Escaped = cur
	return tr, nil
}
