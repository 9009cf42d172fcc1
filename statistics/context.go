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
	"io"
	"os"

	"github.com/pingcap/errors"
	"github.com/pingcap/piggyback/types"
)

type contextState byte

const (
	stateUninitialized contextState = iota
	stateArmed
	stateFinalized
)

// Options configures a collection Context.
type Options struct {
	// Output receives the final report. Defaults to os.Stderr.
	Output io.Writer
	// PairKeyCompat builds pair keys without a delimiter, reproducing the
	// historical aliasing of variable-length value pairs.
	PairKeyCompat bool
	// Verbose adds unique-column-combination and functional-dependency
	// candidate lines to the report.
	Verbose bool
}

// Context owns all statistics collected during one query execution. It is
// single-threaded and scoped to exactly one execution: the host engine calls
// Arm once when the result-producing root operator is known,
// OnScanInitialized once per scan operator during plan initialization,
// OnRowProduced once per row the root yields, and Finalize on teardown.
//
// Lifecycle: Uninitialized -> Armed -> Finalized. Accumulation is a
// transient step inside OnRowProduced; Finalized is terminal and Finalize is
// idempotent so abort paths can call it unconditionally.
type Context struct {
	opts  Options
	state contextState

	rootID   int64
	cols     []ColumnStatistic
	pairs    []PairStatistic
	slots    []string
	rowCount int64

	// Equality predicates seen before Arm allocates the column array.
	pending []pendingEquality
}

// NewContext creates an unarmed collection context.
func NewContext(opts Options) *Context {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	return &Context{opts: opts}
}

// Arm fixes the root operator and the output schema and allocates the
// column and pair statistic arrays. Equality predicates buffered before this
// point are applied now. Must be called exactly once, before any rows flow.
func (c *Context) Arm(rootID int64, cols []ColumnInfo) error {
	switch c.state {
	case stateArmed:
		return errors.New("statistics context is already armed")
	case stateFinalized:
		return errors.New("statistics context is finalized")
	}
	c.rootID = rootID
	c.cols = make([]ColumnStatistic, len(cols))
	for i, info := range cols {
		c.cols[i] = ColumnStatistic{
			Name:     info.Name,
			Desc:     info.Desc,
			Tag:      info.Tag,
			distinct: newDistinctSet(),
		}
	}
	c.pairs = newPairStatistics(len(cols))
	c.slots = make([]string, len(cols))
	c.state = stateArmed
	for _, pe := range c.pending {
		c.applyEqualityPredicate(pe)
	}
	c.pending = nil
	return nil
}

// OnRowProduced folds one result row into the statistics. The row must have
// the arity fixed at arm time; nulls and unsupported kinds contribute empty
// pair-key slots and no statistic updates.
func (c *Context) OnRowProduced(row []types.Datum) error {
	switch c.state {
	case stateUninitialized:
		return errors.New("statistics context is not armed")
	case stateFinalized:
		return errors.New("statistics context is finalized")
	}
	if len(row) != len(c.cols) {
		return errors.Errorf("row has %d columns, expected %d", len(row), len(c.cols))
	}
	if err := c.accumulate(row); err != nil {
		return errors.Trace(err)
	}
	buildPairs(c.slots, c.pairs, c.opts.PairKeyCompat)
	c.rowCount++
	return nil
}

// Rescan resets accumulated statistics because the root operator will
// replay its rows from the start; continuing to accumulate would double
// count distinct values. Columns sealed by an equality predicate keep their
// values, since the predicate still holds after the rescan.
func (c *Context) Rescan() {
	if c.state != stateArmed {
		return
	}
	for i := range c.cols {
		c.cols[i].reset()
	}
	for i := range c.pairs {
		c.pairs[i].reset()
	}
	c.rowCount = 0
}

// Finalize emits the report and releases all owned storage. It is
// idempotent and safe to call from an abort path: the second and later
// calls are no-ops.
func (c *Context) Finalize() {
	if c.state == stateFinalized {
		return
	}
	if c.state == stateArmed {
		c.report()
	}
	c.cols = nil
	c.pairs = nil
	c.slots = nil
	c.pending = nil
	c.state = stateFinalized
}

// Armed reports whether the context has been armed and not yet finalized.
func (c *Context) Armed() bool {
	return c.state == stateArmed
}

// RowCount returns the number of rows accumulated so far.
func (c *Context) RowCount() int64 {
	return c.rowCount
}

// ColumnCount returns the output arity fixed at arm time.
func (c *Context) ColumnCount() int {
	return len(c.cols)
}

// ColumnStat returns the statistic of the column at position i. The
// returned pointer is owned by the context and is only valid until
// Finalize.
func (c *Context) ColumnStat(i int) *ColumnStatistic {
	return &c.cols[i]
}

// PairStat returns the co-occurrence statistic for the column pair
// (from, to), from < to. Valid until Finalize.
func (c *Context) PairStat(from, to int) *PairStatistic {
	return &c.pairs[PairIndex(from, to, len(c.cols))]
}
