package textindex

// BuildSuffixArray builds the suffix array of text by prefix doubling with
// stable counting sorts, O(n log n) time and O(n) extra memory. It also
// returns rank, the inverse permutation: rank[i] is the position of suffix i
// in the suffix array.
//
// Positions are compared as cyclic shifts. To get plain suffix order the
// caller appends a sentinel byte strictly smaller than every other byte in
// text; with a sentinel the returned rank is the exact inverse of sa.
func BuildSuffixArray(text []byte) ([]int, []int) {
	n := len(text)
	if n == 0 {
		return nil, nil
	}

	sa := make([]int, n)
	rank := make([]int, n)
	cnt := make([]int, max(n, 256))

	// First round: counting sort by single byte, ties broken by position.
	for _, c := range text {
		cnt[c]++
	}
	for c := 1; c < 256; c++ {
		cnt[c] += cnt[c-1]
	}
	for i := n - 1; i >= 0; i-- {
		cnt[text[i]]--
		sa[cnt[text[i]]] = i
	}
	rank[sa[0]] = 0
	classes := 1
	for i := 1; i < n; i++ {
		if text[sa[i]] != text[sa[i-1]] {
			classes++
		}
		rank[sa[i]] = classes - 1
	}

	shifted := make([]int, n)
	newRank := make([]int, n)
	for w := 1; w < n; w *= 2 {
		// Each position i now sorts by the pair (rank[i], rank[(i+w) mod n]).
		// Shifting the previous order left by w lists positions by the second
		// half of the pair, so one stable counting sort by the first half
		// finishes the round.
		for i := range sa {
			shifted[i] = sa[i] - w
			if shifted[i] < 0 {
				shifted[i] += n
			}
		}
		clear(cnt[:classes])
		for _, j := range shifted {
			cnt[rank[j]]++
		}
		for c := 1; c < classes; c++ {
			cnt[c] += cnt[c-1]
		}
		for i := n - 1; i >= 0; i-- {
			c := rank[shifted[i]]
			cnt[c]--
			sa[cnt[c]] = shifted[i]
		}

		newRank[sa[0]] = 0
		classes = 1
		for i := 1; i < n; i++ {
			if rank[sa[i]] != rank[sa[i-1]] || rank[(sa[i]+w)%n] != rank[(sa[i-1]+w)%n] {
				classes++
			}
			newRank[sa[i]] = classes - 1
		}
		rank, newRank = newRank, rank
	}

	return sa, rank
}
