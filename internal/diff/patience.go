package diff

import "sort"

// match is an aligned pair of positions
type match struct {
	a, b int
}

// matcher aligns a against b with patience diff, falling back to a plain
// LCS on ranges without unique anchors. Matches are appended in ascending
// order on both sides.
type matcher struct {
	a, b    []string
	matches []match
}

func align(a, b []string) []match {
	m := &matcher{a: a, b: b}
	m.run(0, len(a), 0, len(b))
	return m.matches
}

func (m *matcher) emit(a, b int) {
	m.matches = append(m.matches, match{a, b})
}

func (m *matcher) run(aLo, aHi, bLo, bHi int) {
	for aLo < aHi && bLo < bHi && m.a[aLo] == m.b[bLo] {
		m.emit(aLo, bLo)
		aLo++
		bLo++
	}

	var tail []match
	for aLo < aHi && bLo < bHi && m.a[aHi-1] == m.b[bHi-1] {
		aHi--
		bHi--
		tail = append(tail, match{aHi, bHi})
	}

	if aLo < aHi && bLo < bHi {
		anchors := m.anchors(aLo, aHi, bLo, bHi)
		if len(anchors) == 0 {
			m.lcs(aLo, aHi, bLo, bHi)
		} else {
			pa, pb := aLo, bLo
			for _, an := range anchors {
				m.run(pa, an.a, pb, an.b)
				m.emit(an.a, an.b)
				pa, pb = an.a+1, an.b+1
			}
			m.run(pa, aHi, pb, bHi)
		}
	}

	for i := len(tail) - 1; i >= 0; i-- {
		m.matches = append(m.matches, tail[i])
	}
}

// anchors returns the longest increasing run of lines that occur exactly
// once in both ranges
func (m *matcher) anchors(aLo, aHi, bLo, bHi int) []match {
	type occurrence struct {
		countA, countB int
		posA, posB     int
	}
	seen := make(map[string]*occurrence)
	for i := aLo; i < aHi; i++ {
		o := seen[m.a[i]]
		if o == nil {
			o = &occurrence{}
			seen[m.a[i]] = o
		}
		o.countA++
		o.posA = i
	}
	for j := bLo; j < bHi; j++ {
		o := seen[m.b[j]]
		if o == nil {
			continue
		}
		o.countB++
		o.posB = j
	}

	var candidates []match
	for j := bLo; j < bHi; j++ {
		o := seen[m.b[j]]
		if o != nil && o.countA == 1 && o.countB == 1 {
			candidates = append(candidates, match{o.posA, o.posB})
		}
	}
	return longestIncreasing(candidates)
}

// longestIncreasing takes candidates ordered by b and returns the longest
// subsequence that is also increasing in a (patience sorting)
func longestIncreasing(candidates []match) []match {
	if len(candidates) == 0 {
		return nil
	}

	tails := make([]int, 0, len(candidates))
	prev := make([]int, len(candidates))
	for i, c := range candidates {
		k := sort.Search(len(tails), func(k int) bool {
			return candidates[tails[k]].a >= c.a
		})
		if k > 0 {
			prev[i] = tails[k-1]
		} else {
			prev[i] = -1
		}
		if k == len(tails) {
			tails = append(tails, i)
		} else {
			tails[k] = i
		}
	}

	out := make([]match, len(tails))
	for i, k := len(tails)-1, tails[len(tails)-1]; i >= 0; i, k = i-1, prev[k] {
		out[i] = candidates[k]
	}
	return out
}

// lcs aligns a range with a dynamic-programming longest common subsequence
func (m *matcher) lcs(aLo, aHi, bLo, bHi int) {
	n, w := aHi-aLo, bHi-bLo
	stride := w + 1
	table := make([]int, (n+1)*stride)
	for i := n - 1; i >= 0; i-- {
		for j := w - 1; j >= 0; j-- {
			if m.a[aLo+i] == m.b[bLo+j] {
				table[i*stride+j] = table[(i+1)*stride+j+1] + 1
			} else {
				table[i*stride+j] = max(table[(i+1)*stride+j], table[i*stride+j+1])
			}
		}
	}

	for i, j := 0, 0; i < n && j < w; {
		switch {
		case m.a[aLo+i] == m.b[bLo+j]:
			m.emit(aLo+i, bLo+j)
			i++
			j++
		case table[(i+1)*stride+j] >= table[i*stride+j+1]:
			i++
		default:
			j++
		}
	}
}
