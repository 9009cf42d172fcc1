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
	"bytes"
	"testing"

	"github.com/pingcap/piggyback/expression"
	"github.com/pingcap/piggyback/types"
	"github.com/stretchr/testify/require"
)

func eqIntPredicate(tableID, columnID, value int64) expression.Expression {
	return expression.NewFunction(expression.EQInt,
		&expression.Column{TableID: tableID, ColumnID: columnID},
		&expression.Constant{Value: types.NewIntDatum(value)})
}

func requireSealed(t *testing.T, stat *ColumnStatistic) {
	t.Helper()
	require.True(t, stat.MinFinal)
	require.True(t, stat.MaxFinal)
	require.True(t, stat.DistinctFinal)
	require.True(t, stat.MostFrequentFinal)
}

func TestEqualityShortCircuitExactness(t *testing.T) {
	c := NewContext(Options{Output: &bytes.Buffer{}})
	require.NoError(t, c.Arm(1, numericColumns("a", "b")))

	c.OnScanInitialized(1, eqIntPredicate(1, 1, 42))

	// Zero rows processed, yet the statistics of column a are exact.
	stat := c.ColumnStat(0)
	requireSealed(t, stat)
	require.True(t, stat.IsNumeric)
	require.Equal(t, int64(42), stat.MinValue.GetInt64())
	require.Equal(t, int64(42), stat.MaxValue.GetInt64())
	require.Equal(t, int64(42), stat.MostFrequentValue.GetInt64())
	require.Equal(t, 1, stat.DistinctCount())

	// Column b is untouched.
	require.False(t, c.ColumnStat(1).MinFinal)
}

func TestShortCircuitBufferedBeforeArm(t *testing.T) {
	c := NewContext(Options{Output: &bytes.Buffer{}})

	// Scans are initialized before the root is identified; the predicate
	// must be buffered and applied at arm time.
	c.OnScanInitialized(1, eqIntPredicate(1, 2, 7))
	require.NoError(t, c.Arm(1, numericColumns("a", "b")))

	stat := c.ColumnStat(1)
	requireSealed(t, stat)
	require.Equal(t, int64(7), stat.MinValue.GetInt64())
}

func TestFinalityLock(t *testing.T) {
	c := NewContext(Options{Output: &bytes.Buffer{}})
	require.NoError(t, c.Arm(1, numericColumns("a", "b")))
	c.OnScanInitialized(1, eqIntPredicate(1, 1, 42))

	for _, row := range [][]types.Datum{intRow(1, 10), intRow(99, 20)} {
		require.NoError(t, c.OnRowProduced(row))
	}

	// Sealed column keeps the predicate value regardless of observed rows.
	a := c.ColumnStat(0)
	require.Equal(t, int64(42), a.MinValue.GetInt64())
	require.Equal(t, int64(42), a.MaxValue.GetInt64())
	require.Equal(t, 1, a.DistinctCount())

	// The non-sealed column still accumulates.
	b := c.ColumnStat(1)
	require.Equal(t, int64(10), b.MinValue.GetInt64())
	require.Equal(t, int64(20), b.MaxValue.GetInt64())
}

func TestFirstPredicateWins(t *testing.T) {
	c := NewContext(Options{Output: &bytes.Buffer{}})
	require.NoError(t, c.Arm(1, numericColumns("a")))
	c.OnScanInitialized(1, eqIntPredicate(1, 1, 42))
	c.OnScanInitialized(1, eqIntPredicate(1, 1, 99))

	require.Equal(t, int64(42), c.ColumnStat(0).MinValue.GetInt64())
}

func TestShortCircuitSurvivesRescan(t *testing.T) {
	c := NewContext(Options{Output: &bytes.Buffer{}})
	require.NoError(t, c.Arm(1, numericColumns("a")))
	c.OnScanInitialized(1, eqIntPredicate(1, 1, 42))

	c.Rescan()
	stat := c.ColumnStat(0)
	requireSealed(t, stat)
	require.Equal(t, int64(42), stat.MinValue.GetInt64())
}

func TestUnrecognizedPredicateShapes(t *testing.T) {
	col := &expression.Column{TableID: 1, ColumnID: 1}
	lit := &expression.Constant{Value: types.NewIntDatum(3)}
	tests := []struct {
		name string
		expr expression.Expression
	}{
		{"nil", nil},
		{"bare column", col},
		{"bare literal", lit},
		{"range", expression.NewFunction(expression.LT, col, lit)},
		{"not equal", expression.NewFunction(expression.NE, col, lit)},
		{"conjunction", expression.NewFunction(expression.LogicAnd,
			expression.NewFunction(expression.EQInt, col, lit),
			expression.NewFunction(expression.EQInt, col, lit))},
		{"two columns", expression.NewFunction(expression.EQInt, col, col)},
		{"two literals", expression.NewFunction(expression.EQInt, lit, lit)},
		{"null literal", expression.NewFunction(expression.EQInt, col,
			&expression.Constant{Value: types.Datum{}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContext(Options{Output: &bytes.Buffer{}})
			require.NoError(t, c.Arm(1, numericColumns("a")))
			c.OnScanInitialized(1, tt.expr)
			stat := c.ColumnStat(0)
			require.False(t, stat.MinFinal)
			require.True(t, stat.MinValue.IsNull())
		})
	}
}

func TestReversedOperandOrder(t *testing.T) {
	c := NewContext(Options{Output: &bytes.Buffer{}})
	require.NoError(t, c.Arm(1, numericColumns("a")))
	c.OnScanInitialized(1, expression.NewFunction(expression.EQInt,
		&expression.Constant{Value: types.NewIntDatum(11)},
		&expression.Column{TableID: 1, ColumnID: 1}))

	stat := c.ColumnStat(0)
	requireSealed(t, stat)
	require.Equal(t, int64(11), stat.MinValue.GetInt64())
}

func TestTextEqualityNormalization(t *testing.T) {
	c := NewContext(Options{Output: &bytes.Buffer{}})
	require.NoError(t, c.Arm(1, textColumns("s")))
	c.OnScanInitialized(1, expression.NewFunction(expression.EQText,
		&expression.Column{TableID: 1, ColumnID: 1},
		&expression.Constant{Value: types.NewStringDatum("shoe")}))

	stat := c.ColumnStat(0)
	requireSealed(t, stat)
	require.Equal(t, "shoe", stat.MinValue.GetString())
	// Sealed statistics are marked numeric unconditionally, regardless of
	// the literal's type.
	require.True(t, stat.IsNumeric)
}

func TestFloatEqualityNormalizedToInt64(t *testing.T) {
	c := NewContext(Options{Output: &bytes.Buffer{}})
	require.NoError(t, c.Arm(1, numericColumns("f")))
	c.OnScanInitialized(1, expression.NewFunction(expression.EQFloat,
		&expression.Column{TableID: 1, ColumnID: 1},
		&expression.Constant{Value: types.NewFloat64Datum(3.9)}))

	stat := c.ColumnStat(0)
	requireSealed(t, stat)
	require.Equal(t, types.KindInt64, stat.MinValue.Kind())
	require.Equal(t, int64(3), stat.MinValue.GetInt64())
}

func TestFilteredColumnAbsentFromOutput(t *testing.T) {
	c := NewContext(Options{Output: &bytes.Buffer{}})
	require.NoError(t, c.Arm(1, numericColumns("a")))

	// Column 5 of table 9 is not part of the result: a diagnostic, not an
	// error, and collection proceeds.
	c.OnScanInitialized(9, eqIntPredicate(9, 5, 1))
	require.False(t, c.ColumnStat(0).MinFinal)
	require.NoError(t, c.OnRowProduced(intRow(1)))
}

func TestShortCircuitAfterFinalizeIsNoop(t *testing.T) {
	c := NewContext(Options{Output: &bytes.Buffer{}})
	require.NoError(t, c.Arm(1, numericColumns("a")))
	c.Finalize()
	c.OnScanInitialized(1, eqIntPredicate(1, 1, 42))
}
