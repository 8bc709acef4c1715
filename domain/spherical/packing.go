package spherical

// The canonical packing enumerates degree/order pairs row-major by degree:
// for l = 0..L, all m = 0..l in order. Index 0 is always the (0,0) monopole
// term. Both the expander and the correlator speak this layout; it is defined
// once here so the two can never drift apart.

// Index is a degree/order pair in the canonical packing.
type Index struct {
	Degree int
	Order  int
}

// PairCount returns the number of (l,m) pairs for degrees 0..maxDegree,
// the triangular number (L+1)(L+2)/2.
func PairCount(maxDegree int) int {
	if maxDegree < 0 {
		return 0
	}
	return (maxDegree + 1) * (maxDegree + 2) / 2
}

// TrimmedCount returns the number of (l,m) pairs with l >= 1, the length of
// every coefficient array exchanged between the expander and the correlator.
func TrimmedCount(maxDegree int) int {
	n := PairCount(maxDegree)
	if n == 0 {
		return 0
	}
	return n - 1
}

// Indices returns the canonical packing for degrees 0..maxDegree.
func Indices(maxDegree int) []Index {
	idx := make([]Index, 0, PairCount(maxDegree))
	for l := 0; l <= maxDegree; l++ {
		for m := 0; m <= l; m++ {
			idx = append(idx, Index{Degree: l, Order: m})
		}
	}
	return idx
}

// PackedIndex returns the flat position of (l,m) in the full canonical
// packing: l(l+1)/2 + m.
func PackedIndex(l, m int) int {
	return l*(l+1)/2 + m
}

// DegreeBlock returns the offset and length of degree l's contiguous run
// inside a trimmed array (monopole already dropped). The block carries its
// degree label explicitly, so aggregation never relies on positional
// relabeling.
func DegreeBlock(l int) (offset, length int) {
	return PackedIndex(l, 0) - 1, l + 1
}
