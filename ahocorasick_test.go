package textindex

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	aho_corasick "github.com/petar-dambovaliev/aho-corasick"
)

// naiveSearch scans text once per pattern. Duplicate patterns report under
// the last duplicate's index, like the automaton.
func naiveSearch(patterns []string, text []byte) map[int][]int {
	last := make(map[string]int)
	for i, p := range patterns {
		last[p] = i
	}
	matches := make(map[int][]int)
	for i, p := range patterns {
		if last[p] != i {
			continue
		}
		for s := 0; s+len(p) <= len(text); s++ {
			if bytes.HasPrefix(text[s:], []byte(p)) {
				matches[i] = append(matches[i], s)
			}
		}
	}
	return matches
}

func TestAutomatonSearchKnown(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		text     string
		want     map[int][]int
	}{
		{
			name:     "overlapping",
			patterns: []string{"aba", "baba", "cc"},
			text:     "ababababa",
			want:     map[int][]int{0: {0, 2, 4, 6}, 1: {1, 3, 5}},
		},
		{
			name:     "disjoint",
			patterns: []string{"aba", "abb", "bbca"},
			text:     "abaabbbbca",
			want:     map[int][]int{0: {0}, 1: {3}, 2: {6}},
		},
		{
			name:     "nested suffix",
			patterns: []string{"ab", "b"},
			text:     "ab",
			want:     map[int][]int{0: {0}, 1: {1}},
		},
		{
			name:     "duplicates report last index",
			patterns: []string{"ab", "ab", "b"},
			text:     "abab",
			want:     map[int][]int{1: {0, 2}, 2: {1, 3}},
		},
		{
			name:     "no matches",
			patterns: []string{"xyz"},
			text:     "ababab",
			want:     map[int][]int{},
		},
		{
			name:     "empty text",
			patterns: []string{"a"},
			text:     "",
			want:     map[int][]int{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, err := BuildAutomaton(tc.patterns)
			if err != nil {
				t.Fatal(err)
			}
			got := a.Search([]byte(tc.text))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Search mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildAutomatonEmptyPattern(t *testing.T) {
	if _, err := BuildAutomaton([]string{"a", ""}); !errors.Is(err, ErrEmptyPattern) {
		t.Errorf("got %v, want ErrEmptyPattern", err)
	}
}

func TestAutomatonEmptyDictionary(t *testing.T) {
	a, err := BuildAutomaton(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Search([]byte("anything")); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestAutomatonRebuildConsistent(t *testing.T) {
	patterns := []string{"he", "she", "his", "hers"}
	text := []byte("ushershehishers")

	first, err := BuildAutomaton(patterns)
	if err != nil {
		t.Fatal(err)
	}
	second, err := BuildAutomaton(patterns)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first.Search(text), second.Search(text)); diff != "" {
		t.Errorf("rebuild changed results:\n%s", diff)
	}
	if diff := cmp.Diff(first.Search(text), first.Search(text)); diff != "" {
		t.Errorf("search is not repeatable:\n%s", diff)
	}
}

func randomPatterns(r *rand.Rand, count, alphabet int, unique bool) []string {
	seen := make(map[string]bool)
	patterns := make([]string, 0, count)
	for len(patterns) < count {
		p := make([]byte, 1+r.Intn(5))
		for j := range p {
			p[j] = byte('a' + r.Intn(alphabet))
		}
		if unique && seen[string(p)] {
			continue
		}
		seen[string(p)] = true
		patterns = append(patterns, string(p))
	}
	return patterns
}

func TestAutomatonSearchRandom(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for iter := 0; iter < 200; iter++ {
		patterns := randomPatterns(r, 1+r.Intn(8), 2, false)
		text := make([]byte, r.Intn(150))
		for i := range text {
			text[i] = byte('a' + r.Intn(2))
		}

		a, err := BuildAutomaton(patterns)
		if err != nil {
			t.Fatal(err)
		}
		got := a.Search(text)
		if diff := cmp.Diff(naiveSearch(patterns, text), got); diff != "" {
			t.Fatalf("patterns %q on %q (-want +got):\n%s", patterns, text, diff)
		}
	}
}

// Cross-checks Search against an independent Aho-Corasick implementation.
// StandardMatch is required for overlapping iteration. Patterns are kept
// unique because the library reports every duplicate index separately.
func TestAutomatonMatchesAhoCorasickLib(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for iter := 0; iter < 100; iter++ {
		patterns := randomPatterns(r, 1+r.Intn(6), 2, true)
		text := make([]byte, r.Intn(200))
		for i := range text {
			text[i] = byte('a' + r.Intn(2))
		}

		a, err := BuildAutomaton(patterns)
		if err != nil {
			t.Fatal(err)
		}
		got := a.Search(text)

		builder := aho_corasick.NewAhoCorasickBuilder(aho_corasick.Opts{
			AsciiCaseInsensitive: false,
			MatchOnlyWholeWords:  false,
			MatchKind:            aho_corasick.StandardMatch,
			DFA:                  false,
		})
		ac := builder.Build(patterns)
		want := make(map[int][]int)
		it := ac.IterOverlappingByte(text)
		for next := it.Next(); next != nil; next = it.Next() {
			m := *next
			want[m.Pattern()] = append(want[m.Pattern()], m.Start())
		}

		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("patterns %q on %q (-want +got):\n%s", patterns, text, diff)
		}
	}
}

func FuzzAutomatonSearch(f *testing.F) {
	f.Add([]byte("ababababa"), []byte("aba\xffbaba\xffcc"))
	f.Add([]byte("abaabbbbca"), []byte("aba\xffabb\xffbbca"))

	f.Fuzz(func(t *testing.T, text, dict []byte) {
		if len(text) > 1000 || len(dict) > 100 {
			return
		}
		parts := bytes.Split(dict, []byte{0xff})
		patterns := make([]string, 0, len(parts))
		for _, p := range parts {
			if len(p) == 0 || len(p) > 20 {
				continue
			}
			patterns = append(patterns, string(p))
		}
		if len(patterns) == 0 {
			return
		}

		a, err := BuildAutomaton(patterns)
		if err != nil {
			t.Fatal(err)
		}
		got := a.Search(text)
		if diff := cmp.Diff(naiveSearch(patterns, text), got); diff != "" {
			t.Errorf("Search mismatch (-want +got):\n%s", diff)
		}
	})
}
