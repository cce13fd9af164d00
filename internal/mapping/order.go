package mapping

import (
	"fmt"
	"sort"
	"strings"
)

// Order returns presenter indices so that every parent precedes its
// children. Among presenters that are ready at the same time the one
// declared first wins. Unknown parents are ignored here; Validate reports
// them.
func Order(f *File) ([]int, error) {
	index := make(map[string]int, len(f.Presenters))
	for i := range f.Presenters {
		if _, dup := index[f.Presenters[i].Name]; !dup {
			index[f.Presenters[i].Name] = i
		}
	}

	order, err := topoSort(len(f.Presenters), func(i int) []int {
		parent, ok := index[f.Presenters[i].Extends]
		if !ok || f.Presenters[i].Extends == "" {
			return nil
		}

		return []int{parent}
	})
	if err != nil {
		return nil, fmt.Errorf("presenters extend each other in a cycle: %s", strings.Join(cycleNames(f, order), ", "))
	}

	return order, nil
}

// cycleNames lists presenters that were not ordered.
func cycleNames(f *File, ordered []int) []string {
	done := make(map[int]bool, len(ordered))
	for _, i := range ordered {
		done[i] = true
	}

	var names []string

	for i := range f.Presenters {
		if !done[i] {
			names = append(names, f.Presenters[i].Name)
		}
	}

	return names
}

// topoSort returns indices in dependency order.
//
// Nodes are by index in the input slice.
// depsFn(i) yields indices that must come before i.
//
// The result is deterministic: when multiple nodes are available, we pick the
// smallest index. If a cycle exists, the partial order is returned along
// with an error.
func topoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		deps := depsFn(i)
		for _, d := range deps {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)
		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				// Insert while keeping ready sorted.
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	if len(order) != n {
		return order, fmt.Errorf("cycle detected")
	}

	return order, nil
}
