package textindex

// KMP returns the start offsets of every occurrence of pattern in text,
// ascending, overlaps included. An empty pattern has no occurrences.
func KMP(text []byte, pattern string) []int {
	if len(pattern) == 0 {
		return nil
	}
	pf := prefixFunction(pattern)
	var res []int
	idx := 0
	for i := 0; i < len(text); i++ {
		for idx > 0 && text[i] != pattern[idx] {
			idx = pf[idx-1]
		}
		if text[i] == pattern[idx] {
			idx++
		}
		if idx == len(pattern) {
			res = append(res, i+1-idx)
			idx = pf[idx-1]
		}
	}
	return res
}

// KMPFirst returns the start offset of the first occurrence of pattern in
// text; the second result is false when there is none.
func KMPFirst(text []byte, pattern string) (int, bool) {
	if len(pattern) == 0 {
		return 0, false
	}
	pf := prefixFunction(pattern)
	idx := 0
	for i := 0; i < len(text); i++ {
		for idx > 0 && text[i] != pattern[idx] {
			idx = pf[idx-1]
		}
		if text[i] == pattern[idx] {
			idx++
		}
		if idx == len(pattern) {
			return i + 1 - idx, true
		}
	}
	return 0, false
}

// prefixFunction computes the failure table: pf[i] is the length of the
// longest proper prefix of pattern[:i+1] that is also its suffix.
func prefixFunction(pattern string) []int {
	pf := make([]int, len(pattern))
	for i := 1; i < len(pattern); i++ {
		k := pf[i-1]
		for k > 0 && pattern[i] != pattern[k] {
			k = pf[k-1]
		}
		if pattern[i] == pattern[k] {
			k++
		}
		pf[i] = k
	}
	return pf
}
