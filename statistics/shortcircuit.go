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
	"github.com/pingcap/piggyback/expression"
	"github.com/pingcap/piggyback/types"
	"github.com/pingcap/piggyback/util/logutil"
	"go.uber.org/zap"
)

// pendingEquality is a recognized equality predicate waiting for the column
// statistic array to exist.
type pendingEquality struct {
	desc  ColumnDescriptor
	value types.Datum
}

// OnScanInitialized inspects a scan operator's residual predicate during
// plan initialization. When the predicate is a lone top-level equality
// between a column and a literal, the matching result column's statistics
// are known exactly without observing a single row: min, max and most
// frequent value all equal the literal and the distinct count is one, so the
// column is sealed and skips per-row accumulation. Every other predicate
// shape is ignored.
//
// Scans are initialized leaf-to-root, possibly before Arm; recognized
// predicates seen early are buffered and applied at arm time.
func (c *Context) OnScanInitialized(tableID int64, residual expression.Expression) {
	if c.state == stateFinalized {
		return
	}
	col, value, ok := recognizeEquality(residual)
	if !ok {
		return
	}
	pe := pendingEquality{
		desc:  ColumnDescriptor{TableID: tableID, ColumnID: col.ColumnID},
		value: value,
	}
	if c.state != stateArmed {
		c.pending = append(c.pending, pe)
		return
	}
	c.applyEqualityPredicate(pe)
}

// recognizeEquality matches the single shape the analyzer understands: a
// top-level binary equality with a column reference on one side and a
// non-null literal on the other. Numeric literals are normalized to the
// int64 representation used for all sealed statistics.
func recognizeEquality(e expression.Expression) (*expression.Column, types.Datum, bool) {
	sf, ok := e.(*expression.ScalarFunction)
	if !ok || !sf.Op.IsEquality() || len(sf.Args) != 2 {
		return nil, types.Datum{}, false
	}
	col, okCol := sf.Args[0].(*expression.Column)
	lit, okLit := sf.Args[1].(*expression.Constant)
	if !okCol || !okLit {
		col, okCol = sf.Args[1].(*expression.Column)
		lit, okLit = sf.Args[0].(*expression.Constant)
		if !okCol || !okLit {
			return nil, types.Datum{}, false
		}
	}
	value := lit.Value
	if value.IsNull() || value.Kind() == types.KindOther {
		return nil, types.Datum{}, false
	}
	if value.Kind() == types.KindFloat64 {
		value = types.NewIntDatum(value.TruncatedInt64())
	}
	return col, value, true
}

func (c *Context) applyEqualityPredicate(pe pendingEquality) {
	for i := range c.cols {
		if c.cols[i].Desc != pe.desc {
			continue
		}
		if c.cols[i].allFinal() {
			// Already sealed by an earlier predicate; never overwrite a
			// final statistic with a later estimate.
			return
		}
		c.cols[i].applyEquality(pe.value)
		return
	}
	// Not an error: the filtered column is not part of the result, we just
	// lose the short-circuit for it.
	logutil.BgLogger().Warn("equality filter column is not part of the query result",
		zap.Int64("tableID", pe.desc.TableID),
		zap.Int64("columnID", pe.desc.ColumnID))
}
