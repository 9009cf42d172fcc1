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

// Package executor is a small pull-based row engine standing in for the
// host the collector rides along with. It exists to drive the statistics
// hooks the way a real engine would: predicate hooks at plan
// initialization, the row hook for every row the root yields, finalize on
// teardown.
package executor

import (
	"context"

	"github.com/pingcap/errors"
	"github.com/pingcap/piggyback/expression"
	"github.com/pingcap/piggyback/statistics"
	"github.com/pingcap/piggyback/types"
)

// Row is one produced result row.
type Row = []types.Datum

// Executor is the interface of a plan node. Next returns a nil row once the
// node is drained.
type Executor interface {
	Schema() []statistics.ColumnInfo
	Open(ctx context.Context) error
	Next(ctx context.Context) (Row, error)
	Close() error
}

// TableScanExec scans an in-memory table and applies its residual filter
// per candidate row. At Open it reports the filter to the collector, which
// mirrors how scan initialization feeds the equality short-circuit.
type TableScanExec struct {
	TableID int64
	Cols    []statistics.ColumnInfo
	Rows    []Row
	Filter  expression.Expression

	collector *statistics.Context
	cursor    int
}

// NewTableScanExec builds a TableScanExec. collector may be nil when
// collection is disabled.
func NewTableScanExec(tableID int64, cols []statistics.ColumnInfo, rows []Row,
	filter expression.Expression, collector *statistics.Context) *TableScanExec {
	return &TableScanExec{
		TableID:   tableID,
		Cols:      cols,
		Rows:      rows,
		Filter:    filter,
		collector: collector,
	}
}

// Schema implements the Executor interface.
func (e *TableScanExec) Schema() []statistics.ColumnInfo {
	return e.Cols
}

// Open implements the Executor interface.
func (e *TableScanExec) Open(context.Context) error {
	e.cursor = 0
	if e.collector != nil && e.Filter != nil {
		e.collector.OnScanInitialized(e.TableID, e.Filter)
	}
	return nil
}

// Next implements the Executor interface.
func (e *TableScanExec) Next(context.Context) (Row, error) {
	for e.cursor < len(e.Rows) {
		row := e.Rows[e.cursor]
		e.cursor++
		if e.Filter == nil {
			return row, nil
		}
		ok, err := evalPredicate(e.Filter, e.Cols, row)
		if err != nil {
			return nil, errors.Trace(err)
		}
		if ok {
			return row, nil
		}
	}
	return nil, nil
}

// Close implements the Executor interface.
func (e *TableScanExec) Close() error {
	return nil
}

// ProjectionExec narrows or reorders its child's output columns.
type ProjectionExec struct {
	child   Executor
	offsets []int
	schema  []statistics.ColumnInfo
}

// NewProjectionExec builds a projection of the child's columns at the given
// offsets.
func NewProjectionExec(child Executor, offsets []int) *ProjectionExec {
	childSchema := child.Schema()
	schema := make([]statistics.ColumnInfo, 0, len(offsets))
	for _, off := range offsets {
		schema = append(schema, childSchema[off])
	}
	return &ProjectionExec{child: child, offsets: offsets, schema: schema}
}

// Schema implements the Executor interface.
func (e *ProjectionExec) Schema() []statistics.ColumnInfo {
	return e.schema
}

// Open implements the Executor interface.
func (e *ProjectionExec) Open(ctx context.Context) error {
	return errors.Trace(e.child.Open(ctx))
}

// Next implements the Executor interface.
func (e *ProjectionExec) Next(ctx context.Context) (Row, error) {
	childRow, err := e.child.Next(ctx)
	if err != nil || childRow == nil {
		return nil, errors.Trace(err)
	}
	row := make(Row, 0, len(e.offsets))
	for _, off := range e.offsets {
		row = append(row, childRow[off])
	}
	return row, nil
}

// Close implements the Executor interface.
func (e *ProjectionExec) Close() error {
	return errors.Trace(e.child.Close())
}

// evalPredicate evaluates the operator subset the host supports against one
// candidate row. Null operands make every comparison false.
func evalPredicate(expr expression.Expression, cols []statistics.ColumnInfo, row Row) (bool, error) {
	sf, ok := expr.(*expression.ScalarFunction)
	if !ok {
		return false, errors.Errorf("unsupported filter expression: %s", expr)
	}
	switch sf.Op {
	case expression.LogicAnd, expression.LogicOr:
		for _, arg := range sf.Args {
			ok, err := evalPredicate(arg, cols, row)
			if err != nil {
				return false, errors.Trace(err)
			}
			if sf.Op == expression.LogicAnd && !ok {
				return false, nil
			}
			if sf.Op == expression.LogicOr && ok {
				return true, nil
			}
		}
		return sf.Op == expression.LogicAnd, nil
	}
	if len(sf.Args) != 2 {
		return false, errors.Errorf("comparison wants 2 arguments, got %d", len(sf.Args))
	}
	left, err := evalOperand(sf.Args[0], cols, row)
	if err != nil {
		return false, errors.Trace(err)
	}
	right, err := evalOperand(sf.Args[1], cols, row)
	if err != nil {
		return false, errors.Trace(err)
	}
	if left.IsNull() || right.IsNull() {
		return false, nil
	}
	if sf.Op.IsEquality() {
		return left.Equal(right), nil
	}
	cmp, err := left.Compare(right)
	if err != nil {
		return false, errors.Trace(err)
	}
	switch sf.Op {
	case expression.NE:
		return cmp != 0, nil
	case expression.LT:
		return cmp < 0, nil
	case expression.LE:
		return cmp <= 0, nil
	case expression.GT:
		return cmp > 0, nil
	case expression.GE:
		return cmp >= 0, nil
	}
	return false, errors.Errorf("unsupported operator %s", sf.Op)
}

func evalOperand(arg expression.Expression, cols []statistics.ColumnInfo, row Row) (types.Datum, error) {
	switch x := arg.(type) {
	case *expression.Constant:
		return x.Value, nil
	case *expression.Column:
		for i := range cols {
			if cols[i].Desc.TableID == x.TableID && cols[i].Desc.ColumnID == x.ColumnID {
				return row[i], nil
			}
		}
		return types.Datum{}, errors.Errorf("column %s not found in scan schema", x)
	}
	return types.Datum{}, errors.Errorf("unsupported operand %s", arg)
}
