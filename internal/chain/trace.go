package chain

// tracer walks successor links. Every k enters at most one path over its lifetime,
// so draining a whole table costs O(n) steps regardless of how many walks start.
type tracer struct {
	sums    Sums
	visited []bool
	path    []int
	index   map[int]int
}

func newTracer(sums Sums) *tracer {
	return &tracer{
		sums:    sums,
		visited: make([]bool, len(sums)),
		index:   make(map[int]int),
	}
}

// walk follows successors from start until it repeats a member of the current path
// or steps onto a value outside the table or already consumed. It returns the
// repeated suffix, or nil when the walk escaped.
func (t *tracer) walk(start int) Chain {
	t.path = t.path[:0]
	clear(t.index)

	cur := start
	for {
		if i, ok := t.index[cur]; ok {
			loop := make(Chain, len(t.path)-i)
			copy(loop, t.path[i:])
			return loop
		}
		if !t.sums.Contains(cur) || t.visited[cur] {
			return nil
		}
		t.index[cur] = len(t.path)
		t.path = append(t.path, cur)
		t.visited[cur] = true
		cur = t.sums[cur]
	}
}

// Cycles calls yield once for every cycle of sums lying entirely inside the table,
// in discovery order. Starts are tried from the largest value down; members are in
// chain order, not rotated.
func Cycles(sums Sums, yield func(Chain)) {
	t := newTracer(sums)
	for start := sums.Limit(); start >= 1; start-- {
		if t.visited[start] {
			continue
		}
		if c := t.walk(start); c != nil {
			yield(c)
		}
	}
}

// Trace returns the longest cycle of sums, not rotated. Among cycles of equal length
// the first discovered wins. It returns an empty chain if sums has no cycle.
func Trace(sums Sums) Chain {
	best := Chain{}
	Cycles(sums, func(c Chain) {
		if len(c) > len(best) {
			best = c
		}
	})
	return best
}
