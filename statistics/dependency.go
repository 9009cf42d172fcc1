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

// UniqueColumnCombination is a set of column positions whose observed value
// combinations were all distinct across the produced rows.
type UniqueColumnCombination struct {
	Columns []int
}

// FunctionalDependency is a candidate dependency between two column
// positions: the determinant's value decided the dependent's value in every
// observed row.
type FunctionalDependency struct {
	Determinant int
	Dependent   int
}

// CandidateUCCs derives unique-column-combination candidates from the
// collected cardinalities: a column (or pair) whose distinct count equals
// the row count never repeated a value (combination). Candidates only;
// they hold for the observed result, not necessarily for the source tables.
// Valid until Finalize releases the statistics.
func (c *Context) CandidateUCCs() []UniqueColumnCombination {
	if c.state != stateArmed || c.rowCount == 0 {
		return nil
	}
	rows := int(c.rowCount)
	var uccs []UniqueColumnCombination
	for i := range c.cols {
		if !c.cols[i].DistinctFinal && c.cols[i].DistinctCount() == rows {
			uccs = append(uccs, UniqueColumnCombination{Columns: []int{i}})
		}
	}
	for i := range c.pairs {
		p := &c.pairs[i]
		if p.DistinctCount() == rows {
			uccs = append(uccs, UniqueColumnCombination{Columns: []int{p.From, p.To}})
		}
	}
	return uccs
}

// CandidateFDs derives functional-dependency candidates: when the distinct
// count of column A equals the distinct count of the pair (A, B), each value
// of A co-occurred with exactly one value of B, so A -> B is a candidate.
// Columns sealed by a predicate are skipped, their distinct set was never
// accumulated. Valid until Finalize.
func (c *Context) CandidateFDs() []FunctionalDependency {
	if c.state != stateArmed || c.rowCount == 0 {
		return nil
	}
	var fds []FunctionalDependency
	for i := range c.pairs {
		p := &c.pairs[i]
		pairCount := p.DistinctCount()
		from, to := &c.cols[p.From], &c.cols[p.To]
		if !from.DistinctFinal && from.DistinctCount() == pairCount {
			fds = append(fds, FunctionalDependency{Determinant: p.From, Dependent: p.To})
		}
		if !to.DistinctFinal && to.DistinctCount() == pairCount {
			fds = append(fds, FunctionalDependency{Determinant: p.To, Dependent: p.From})
		}
	}
	return fds
}
