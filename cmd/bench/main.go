package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/viniciusth/textindex"
	"golang.org/x/text/unicode/norm"
)

type densityType string

const (
	densityLow  densityType = "low"
	densityHigh densityType = "high"
)

// High density draws from a two-letter alphabet, which forces deep repeats
// in the suffix structures and heavy overlap in the automaton.
func (d densityType) alphabet() int {
	if d == densityHigh {
		return 2
	}
	return 26
}

type memMonitor struct {
	maxAlloc uint64
	stop     chan struct{}
}

func newMemMonitor() *memMonitor {
	mm := &memMonitor{stop: make(chan struct{})}
	go func() {
		for {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			if m.Alloc > mm.maxAlloc {
				mm.maxAlloc = m.Alloc
			}
			select {
			case <-mm.stop:
				return
			default:
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()
	return mm
}

func (mm *memMonitor) Stop() uint64 {
	close(mm.stop)
	return mm.maxAlloc
}

func getCurrentAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func measure(f func()) (time.Duration, uint64, uint64) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	f()
	dur := time.Since(start)
	peak := mm.Stop()
	runtime.GC()
	return dur, peak, getCurrentAlloc()
}

func loadWords(path string, raw bool) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" {
			continue
		}
		if !raw {
			w = norm.NFC.String(strings.ToLower(w))
		}
		words = append(words, w)
	}
	return words, sc.Err()
}

func buildCorpus(r *rand.Rand, n int, words []string, density densityType) []byte {
	text := make([]byte, 0, n)
	if len(words) > 0 {
		for len(text) < n {
			text = append(text, words[r.Intn(len(words))]...)
			text = append(text, ' ')
		}
		return text[:n]
	}
	alphabet := density.alphabet()
	for i := 0; i < n; i++ {
		text = append(text, byte('a'+r.Intn(alphabet)))
	}
	return text
}

func emit(variant string, n, m, p, q int, density densityType, bt time.Duration, bp, ba uint64, qt time.Duration, qp, qa uint64) {
	fmt.Printf("%s,%d,%d,%d,%d,%s,%.0f,%d,%d,%.0f,%d,%d\n",
		variant, n, m, p, q, density,
		float64(bt.Nanoseconds()), bp, ba,
		float64(qt.Nanoseconds()), qp, qa)
}

func runSuffix(run, n, q int, words []string, density densityType) {
	r := rand.New(rand.NewSource(int64(run)))
	text := append(buildCorpus(r, n, words, density), 0)

	var idx *textindex.LCPIndex
	bt, bp, ba := measure(func() {
		sa, rank := textindex.BuildSuffixArray(text)
		var err error
		idx, err = textindex.BuildLCPIndex(sa, rank, text)
		if err != nil {
			panic(err)
		}
	})

	qt, qp, qa := measure(func() {
		for i := 0; i < q; i++ {
			if _, ok := idx.LCP(r.Intn(len(text)), r.Intn(len(text))); !ok {
				panic("lcp query out of range")
			}
		}
	})
	emit("suffix", n, 0, 0, q, density, bt, bp, ba, qt, qp, qa)
}

func runAutomaton(run, n, m, p, q int, words []string, density densityType) {
	r := rand.New(rand.NewSource(int64(run)))
	text := buildCorpus(r, n, words, density)

	// Patterns are substrings of the corpus, so dense corpora produce many
	// overlapping matches per scan.
	patterns := make([]string, m)
	for i := range patterns {
		start := r.Intn(n - p + 1)
		patterns[i] = string(text[start : start+p])
	}

	var a *textindex.Automaton
	bt, bp, ba := measure(func() {
		var err error
		a, err = textindex.BuildAutomaton(patterns)
		if err != nil {
			panic(err)
		}
	})

	qt, qp, qa := measure(func() {
		for i := 0; i < q; i++ {
			_ = a.Search(text)
		}
	})
	emit("automaton", n, m, p, q, density, bt, bp, ba, qt, qp, qa)
}

func runKMP(run, n, p, q int, words []string, density densityType) {
	r := rand.New(rand.NewSource(int64(run)))
	text := buildCorpus(r, n, words, density)
	start := r.Intn(n - p + 1)
	pattern := string(text[start : start+p])

	qt, qp, qa := measure(func() {
		for i := 0; i < q; i++ {
			_ = textindex.KMP(text, pattern)
		}
	})
	emit("kmp", n, 1, p, q, density, 0, 0, 0, qt, qp, qa)
}

func main() {
	variant := flag.String("variant", "", "Workload: suffix, automaton or kmp")
	n := flag.Int("n", 0, "Text length N")
	m := flag.Int("m", 0, "Number of patterns M (automaton only)")
	p := flag.Int("p", 0, "Pattern length P")
	q := flag.Int("q", 0, "Number of queries Q")
	runs := flag.Int("runs", 3, "Number of runs for averaging")
	d := flag.String("d", "low", "Density: low or high")
	wordsFile := flag.String("words", "", "Build the corpus from a word list, one word per line")
	raw := flag.Bool("raw", false, "Skip lowercasing and NFC normalization of the word list")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	ok := *n > 0 && *q > 0
	switch *variant {
	case "suffix":
	case "automaton":
		ok = ok && *m > 0 && *p > 0 && *p <= *n
	case "kmp":
		ok = ok && *p > 0 && *p <= *n
	default:
		ok = false
	}
	if !ok {
		fmt.Println("Usage: go run main.go -variant=<suffix|automaton|kmp> -n=<N> [-m=<M>] [-p=<P>] -q=<Q> [-d=<density>] [-words=<file>] [-runs=<runs>]")
		os.Exit(1)
	}

	var words []string
	if *wordsFile != "" {
		var err error
		words, err = loadWords(*wordsFile, *raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not read word list: %v\n", err)
			os.Exit(1)
		}
	}

	density := densityType(*d)
	for run := 0; run < *runs; run++ {
		switch *variant {
		case "suffix":
			runSuffix(run, *n, *q, words, density)
		case "automaton":
			runAutomaton(run, *n, *m, *p, *q, words, density)
		case "kmp":
			runKMP(run, *n, *p, *q, words, density)
		}
	}
}
