package textindex

import "errors"

var (
	ErrEmptyPattern = errors.New("textindex: empty pattern in dictionary")
)

// Automaton is an Aho-Corasick automaton over a fixed pattern dictionary,
// built once and reusable across texts.
type Automaton struct {
	nodes    []node
	patterns []string
}

// Nodes live in one slice and refer to each other by index; -1 means no
// link. Node 0 is the root.
type node struct {
	next    map[byte]int
	fail    int
	output  int
	pattern int
	parent  int
	edge    byte
}

// BuildAutomaton builds the automaton for the given dictionary. Pattern
// indices in search reports refer to positions in patterns. Duplicate
// patterns share one terminal state, so only the last duplicate's index is
// reported. Empty patterns are rejected with ErrEmptyPattern.
func BuildAutomaton(patterns []string) (*Automaton, error) {
	a := &Automaton{
		nodes:    []node{{next: map[byte]int{}, output: -1, pattern: -1, parent: -1}},
		patterns: patterns,
	}
	for i, p := range patterns {
		if len(p) == 0 {
			return nil, ErrEmptyPattern
		}
		a.insert(p, i)
	}
	a.buildLinks()
	return a, nil
}

func (a *Automaton) insert(pattern string, id int) {
	v := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		u, ok := a.nodes[v].next[c]
		if !ok {
			u = len(a.nodes)
			a.nodes = append(a.nodes, node{
				next:    map[byte]int{},
				output:  -1,
				pattern: -1,
				parent:  v,
				edge:    c,
			})
			a.nodes[v].next[c] = u
		}
		v = u
	}
	a.nodes[v].pattern = id
}

// Resolves suffix and output links breadth-first, so every link target is
// already resolved when a node needs it: suffix links always point at
// strictly shallower nodes.
func (a *Automaton) buildLinks() {
	queue := make([]int, 0, len(a.nodes))
	for _, u := range a.nodes[0].next {
		queue = append(queue, u)
	}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		c := a.nodes[v].edge

		f := a.nodes[a.nodes[v].parent].fail
		for {
			if w, ok := a.nodes[f].next[c]; ok && w != v {
				a.nodes[v].fail = w
				break
			}
			if f == 0 {
				a.nodes[v].fail = 0
				break
			}
			f = a.nodes[f].fail
		}

		// The output link jumps to the nearest terminal along the suffix
		// chain, skipping non-terminal states.
		f = a.nodes[v].fail
		if a.nodes[f].pattern >= 0 {
			a.nodes[v].output = f
		} else {
			a.nodes[v].output = a.nodes[f].output
		}

		for _, u := range a.nodes[v].next {
			queue = append(queue, u)
		}
	}
}

// Search scans text once and reports every occurrence of every pattern,
// overlaps included. The result maps pattern index to the ascending start
// offsets of its occurrences; patterns that never occur have no key.
func (a *Automaton) Search(text []byte) map[int][]int {
	matches := make(map[int][]int)
	v := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		for {
			if u, ok := a.nodes[v].next[c]; ok {
				v = u
				break
			}
			if v == 0 {
				break
			}
			v = a.nodes[v].fail
		}

		if t := a.nodes[v].pattern; t >= 0 {
			matches[t] = append(matches[t], i+1-len(a.patterns[t]))
		}
		for u := a.nodes[v].output; u >= 0; u = a.nodes[u].output {
			t := a.nodes[u].pattern
			matches[t] = append(matches[t], i+1-len(a.patterns[t]))
		}
	}
	return matches
}
