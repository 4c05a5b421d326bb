package sortbench

import (
	"cmp"
	"fmt"

	"github.com/lanrat/sortbench/sorts"
	"golang.org/x/exp/constraints"
)

// Algorithm IDs of the default registry
const (
	BaselineSort   = "sort"
	InsertionSort  = "insertionsort"
	BubbleSort     = "bubblesort"
	QuickSort      = "quicksort"
	MergeSort      = "mergesort"
	HeapSort       = "heapsort"
	SelectionSort  = "selectionsort"
	PigeonholeSort = "pigeonholesort"
	BucketSort     = "bucketsort"
)

// Registry is an ordered table of algorithm descriptions. Its order is the
// order results are presented in and the tie-break order of rankings.
type Registry []AlgorithmInfo

// DefaultRegistry returns a new copy of the built-in algorithm table.
func DefaultRegistry() Registry {
	return Registry{
		{ID: BaselineSort, Name: "Baseline", Color: "#3366cc"},
		{ID: InsertionSort, Name: "Insertion", Color: "#dc3912"},
		{ID: BubbleSort, Name: "Bubble", Color: "#ff9900"},
		{ID: QuickSort, Name: "Quick", Color: "#109618"},
		{ID: MergeSort, Name: "Merge", Color: "#990099"},
		{ID: HeapSort, Name: "Heap", Color: "#0099c6"},
		{ID: SelectionSort, Name: "Selection", Color: "#dd4477"},
		{ID: PigeonholeSort, Name: "Pigeonhole", Color: "#66aa00", NumericOnly: true},
		{ID: BucketSort, Name: "Bucket", Color: "#b82e2e", NumericOnly: true},
	}
}

// Lookup returns the description of the algorithm with the given ID.
func (r Registry) Lookup(id string) (AlgorithmInfo, bool) {
	for _, info := range r {
		if info.ID == id {
			return info, true
		}
	}
	return AlgorithmInfo{}, false
}

// IDs returns the algorithm IDs in registry order.
func (r Registry) IDs() []string {
	ids := make([]string, len(r))
	for i, info := range r {
		ids[i] = info.ID
	}
	return ids
}

// inPlace adapts a sort that cannot fail to a SortFunc
func inPlace[E any](f func([]E, sorts.Less[E]) []E) SortFunc[E] {
	return func(s []E, less sorts.Less[E]) ([]E, error) {
		return f(s, less), nil
	}
}

// bind pairs every registry entry with its implementation, skipping entries
// without one
func bind[E any](registry Registry, impls map[string]SortFunc[E]) []Algorithm[E] {
	var out []Algorithm[E]
	for _, info := range registry {
		if impl, ok := impls[info.ID]; ok {
			out = append(out, Algorithm[E]{AlgorithmInfo: info, Sort: impl})
		}
	}
	return out
}

func comparisonSorts[E cmp.Ordered]() map[string]SortFunc[E] {
	return map[string]SortFunc[E]{
		BaselineSort:  inPlace(sorts.Baseline[E]),
		InsertionSort: inPlace(sorts.Insertion[E]),
		BubbleSort:    inPlace(sorts.Bubble[E]),
		QuickSort:     inPlace(sorts.Quick[E]),
		MergeSort:     inPlace(sorts.Merge[E]),
		HeapSort:      inPlace(sorts.Heap[E]),
		SelectionSort: inPlace(sorts.Selection[E]),
	}
}

// OrderedAlgorithms returns the seven comparison sorts of the default
// registry for any ordered element type.
func OrderedAlgorithms[E cmp.Ordered]() []Algorithm[E] {
	return bind(DefaultRegistry(), comparisonSorts[E]())
}

// IntegerAlgorithms returns all nine algorithms of the default registry.
// bucketCount is passed to the bucket sort; zero picks a size from the input.
func IntegerAlgorithms[E constraints.Integer](bucketCount int) []Algorithm[E] {
	impls := comparisonSorts[E]()
	impls[PigeonholeSort] = sorts.Pigeonhole[E]
	impls[BucketSort] = func(s []E, less sorts.Less[E]) ([]E, error) {
		return sorts.Bucket(s, bucketCount, less)
	}
	return bind(DefaultRegistry(), impls)
}

// Select returns the algorithms whose IDs are listed in ids, in the order
// of algorithms. An empty ids selects everything. Unknown or duplicate IDs
// are reported as a *ConfigError.
func Select[E any](algorithms []Algorithm[E], ids []string) ([]Algorithm[E], error) {
	if len(ids) == 0 {
		return algorithms, nil
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		if wanted[id] {
			return nil, NewConfigError("Algorithms", id, "duplicate algorithm", nil)
		}
		wanted[id] = true
	}
	var out []Algorithm[E]
	for _, a := range algorithms {
		if wanted[a.ID] {
			out = append(out, a)
			delete(wanted, a.ID)
		}
	}
	for _, id := range ids {
		if wanted[id] {
			return nil, NewConfigError("Algorithms", id, fmt.Sprintf("unknown algorithm, expected one of %v", algorithmIDs(algorithms)), nil)
		}
	}
	return out, nil
}

// algorithmIDs returns the IDs of algorithms in order
func algorithmIDs[E any](algorithms []Algorithm[E]) []string {
	ids := make([]string, len(algorithms))
	for i, a := range algorithms {
		ids[i] = a.ID
	}
	return ids
}
