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

// Package statistics collects per-column statistics and pairwise value
// co-occurrence sets while a query's result rows are produced, one row at a
// time. The collection piggybacks on the host engine's row loop: it adds no
// passes over the data and holds no state beyond one query execution.
package statistics

import (
	"fmt"

	"github.com/pingcap/errors"
	"github.com/pingcap/piggyback/types"
	"github.com/pingcap/piggyback/util/set"
)

// ColumnDescriptor identifies the provenance of a result column. Immutable
// once created.
type ColumnDescriptor struct {
	TableID  int64
	ColumnID int64
}

// ColumnInfo is the arm-time metadata for one result column.
type ColumnInfo struct {
	Name string
	Desc ColumnDescriptor
	Tag  types.TypeTag
}

// ErrFinalStatistic is returned when something tries to overwrite a
// statistic field that a predicate already fixed.
var ErrFinalStatistic = errors.New("statistic field is final and cannot be updated")

// ColumnStatistic holds the accumulated statistics of one result column.
// Position in the context's column slice is the stable key.
//
// Once a *Final flag is set, the corresponding field is immutable. All four
// flags are set together and only by the equality short-circuit path; the
// per-row accumulator never sets them.
type ColumnStatistic struct {
	Name string
	Desc ColumnDescriptor
	Tag  types.TypeTag

	IsNumeric bool

	MinValue          types.Datum
	MaxValue          types.Datum
	MostFrequentValue types.Datum

	MinFinal          bool
	MaxFinal          bool
	DistinctFinal     bool
	MostFrequentFinal bool

	// distinct is dropped once DistinctFinal is set; the count is then
	// exactly one by construction.
	distinct *distinctSet
}

// DistinctCount returns the number of distinct non-null values observed, or
// exactly 1 when the count was fixed by an equality predicate.
func (c *ColumnStatistic) DistinctCount() int {
	if c.DistinctFinal {
		return 1
	}
	return c.distinct.count()
}

// DisplayName returns the column name, falling back to its position.
func (c *ColumnStatistic) DisplayName(pos int) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("col%d", pos)
}

// updateMin lowers the recorded minimum. Equal values never replace the
// stored extreme, so repeated identical rows are idempotent.
func (c *ColumnStatistic) updateMin(v int64) error {
	if c.MinFinal {
		return errors.Trace(ErrFinalStatistic)
	}
	if c.MinValue.IsNull() || v < c.MinValue.GetInt64() {
		c.MinValue = types.NewIntDatum(v)
	}
	return nil
}

// updateMax raises the recorded maximum, strict-greater only.
func (c *ColumnStatistic) updateMax(v int64) error {
	if c.MaxFinal {
		return errors.Trace(ErrFinalStatistic)
	}
	if c.MaxValue.IsNull() || v > c.MaxValue.GetInt64() {
		c.MaxValue = types.NewIntDatum(v)
	}
	return nil
}

// applyEquality fixes every statistic of the column from an equality
// literal and seals all four finality flags. The distinct set is released;
// the count is 1 by definition.
func (c *ColumnStatistic) applyEquality(v types.Datum) {
	c.MinValue = v
	c.MaxValue = v
	c.MostFrequentValue = v
	// Statistics from an equality predicate are normalized to a single
	// numeric representation regardless of the literal's original width.
	c.IsNumeric = true
	c.MinFinal = true
	c.MaxFinal = true
	c.DistinctFinal = true
	c.MostFrequentFinal = true
	c.distinct = nil
}

// allFinal reports whether the whole column is sealed.
func (c *ColumnStatistic) allFinal() bool {
	return c.MinFinal && c.MaxFinal && c.DistinctFinal && c.MostFrequentFinal
}

// reset clears accumulated state for a rescan. Sealed columns keep their
// values: the predicate that fixed them still holds after the rescan.
func (c *ColumnStatistic) reset() {
	if c.allFinal() {
		return
	}
	c.IsNumeric = false
	c.MinValue.SetNull()
	c.MaxValue.SetNull()
	c.MostFrequentValue.SetNull()
	c.distinct.clear()
}

// distinctSet tracks distinct scalar values for one column. Numeric and
// text values live in kind-specific sets so that the integer 3 and the text
// "3" stay distinct keys.
type distinctSet struct {
	ints set.Int64Set
	strs set.StringSet
}

func newDistinctSet() *distinctSet {
	return &distinctSet{
		ints: set.NewInt64Set(),
		strs: set.NewStringSet(),
	}
}

func (s *distinctSet) insertInt64(v int64) {
	s.ints.Insert(v)
}

func (s *distinctSet) insertString(v string) {
	s.strs.Insert(v)
}

func (s *distinctSet) count() int {
	if s == nil {
		return 0
	}
	return s.ints.Count() + s.strs.Count()
}

func (s *distinctSet) clear() {
	if s == nil {
		return
	}
	s.ints.Clear()
	s.strs.Clear()
}
