package isoline

import "sort"

// fragmentIndex finds the open fragments of one level by either end.
type fragmentIndex struct {
	byStart map[int]*fragment
	byEnd   map[int]*fragment
}

func newFragmentIndex() *fragmentIndex {
	return &fragmentIndex{
		byStart: make(map[int]*fragment),
		byEnd:   make(map[int]*fragment),
	}
}

func (fi *fragmentIndex) add(f *fragment) {
	fi.byStart[f.start] = f
	fi.byEnd[f.end] = f
}

// open returns the fragments still open, ordered by start index.
func (fi *fragmentIndex) open() []*fragment {
	keys := make([]int, 0, len(fi.byStart))
	for k := range fi.byStart {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	result := make([]*fragment, len(keys))
	for i, k := range keys {
		result[i] = fi.byStart[k]
	}
	return result
}

// levelIndex keys fragment indexes by the level's multiple of the interval,
// so lookups never compare floating point levels.
type levelIndex map[int]*fragmentIndex

func (li levelIndex) get(k int) *fragmentIndex {
	fi, ok := li[k]
	if !ok {
		fi = newFragmentIndex()
		li[k] = fi
	}
	return fi
}

func (li levelIndex) keys() []int {
	keys := make([]int, 0, len(li))
	for k := range li {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
