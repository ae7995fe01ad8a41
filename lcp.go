package textindex

import (
	"errors"

	"github.com/viniciusth/rmq"
)

var (
	ErrIndexOutOfBounds = errors.New("textindex: index out of bounds")
)

// Kasai's algorithm for building the LCP array in O(n) time.
// lcp[p] is the longest common prefix length of the suffixes at positions
// p-1 and p of the suffix array; lcp[0] is 0. Inputs must describe a valid
// suffix array over text, as produced by BuildSuffixArray; BuildLCPIndex
// checks them first.
func BuildLCPArray(sa, rank []int, text []byte) []int {
	n := len(sa)
	lcp := make([]int, n)
	k := 0
	for i := 0; i < n; i++ {
		p := rank[i]
		if p == 0 {
			k = 0
			continue
		}
		j := sa[p-1]
		for i+k < n && j+k < n && text[i+k] == text[j+k] {
			k++
		}
		lcp[p] = k
		if k > 0 {
			k--
		}
	}
	return lcp
}

// LCPIndex answers longest-common-prefix queries between arbitrary suffixes
// of a text in O(log n) by taking range minima over the LCP array.
type LCPIndex struct {
	lcp    []int
	rank   []int
	n      int
	lcpRMQ *rmq.RMQHybridNaive[int]
}

// BuildLCPIndex builds the LCP array for (sa, rank, text) and wraps it in a
// range-minimum structure. It returns ErrIndexOutOfBounds if sa and rank are
// not a consistent permutation pair over text.
func BuildLCPIndex(sa, rank []int, text []byte) (*LCPIndex, error) {
	n := len(text)
	if len(sa) != n || len(rank) != n {
		return nil, ErrIndexOutOfBounds
	}
	for i := range sa {
		if sa[i] < 0 || sa[i] >= n || rank[sa[i]] != i {
			return nil, ErrIndexOutOfBounds
		}
	}

	x := &LCPIndex{rank: rank, n: n}
	if n > 0 {
		x.lcp = BuildLCPArray(sa, rank, text)
		x.lcpRMQ = rmq.NewRMQHybridNaive(x.lcp)
	}
	return x, nil
}

// LCP returns the longest common prefix length of the suffixes starting at
// text offsets i and j, in either order. The second result is false when
// either offset is out of range. For i == j the suffix matches itself in
// full; the terminating sentinel byte is not counted.
func (x *LCPIndex) LCP(i, j int) (int, bool) {
	if i < 0 || i >= x.n || j < 0 || j >= x.n {
		return 0, false
	}
	if i == j {
		return x.n - i - 1, true
	}
	ri, rj := x.rank[i], x.rank[j]
	if ri > rj {
		ri, rj = rj, ri
	}
	// The suffixes adjacent in suffix order bound every pair: their common
	// prefix is the minimum LCP entry strictly inside the rank interval.
	return x.lcp[x.lcpRMQ.Query(ri+1, rj)], true
}
