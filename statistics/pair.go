// Copyright 2025 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package statistics

import (
	"github.com/dgryski/go-farm"
	"github.com/pingcap/piggyback/util/set"
)

// pairKeyDelimiter separates the two slot values inside a pair key. The
// ASCII unit separator cannot occur in a fixed-width integer rendering and
// is vanishingly rare in text data, so keys like ("1","23") and ("12","3")
// stay distinct. Compat mode (Options.PairKeyCompat) omits it and accepts
// the aliasing.
const pairKeyDelimiter = "\x1f"

// PairStatistic tracks the distinct value combinations observed for one
// unordered column pair (From, To), From < To. Keys are stored as 64-bit
// farm fingerprints of the combined slot values, which bounds memory
// independent of value width; downstream dependency inference only consumes
// the cardinality.
type PairStatistic struct {
	From int
	To   int

	keys set.Int64Set
}

// DistinctCount returns the number of distinct value combinations observed.
func (p *PairStatistic) DistinctCount() int {
	return p.keys.Count()
}

func (p *PairStatistic) insert(left, right string, compat bool) {
	key := left + pairKeyDelimiter + right
	if compat {
		key = left + right
	}
	p.keys.Insert(int64(farm.Fingerprint64([]byte(key))))
}

func (p *PairStatistic) reset() {
	p.keys.Clear()
}

// PairCount returns the number of column pairs for an output arity of n.
func PairCount(n int) int {
	return n * (n - 1) / 2
}

// PairIndex maps the ordered pair (from, to), 0 <= from < to < n, onto a
// flat offset in [0, n(n-1)/2). Row `from` of the strict upper triangle
// starts after sum_{k=1..from}(n-k) earlier entries; the closed form below
// is that sum plus the offset inside the row.
func PairIndex(from, to, n int) int {
	return from*n - from*(from+1)/2 + to - from - 1
}

func newPairStatistics(n int) []PairStatistic {
	pairs := make([]PairStatistic, PairCount(n))
	for from := 0; from < n; from++ {
		for to := from + 1; to < n; to++ {
			p := &pairs[PairIndex(from, to, n)]
			p.From = from
			p.To = to
			p.keys = set.NewInt64Set()
		}
	}
	return pairs
}

// buildPairs folds one row's slot values into every pair set. This is the
// dominant per-row cost: O(n^2) string operations for output arity n.
func buildPairs(slots []string, pairs []PairStatistic, compat bool) {
	n := len(slots)
	for from := 0; from < n; from++ {
		for to := from + 1; to < n; to++ {
			pairs[PairIndex(from, to, n)].insert(slots[from], slots[to], compat)
		}
	}
}
