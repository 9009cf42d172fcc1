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

	"github.com/pingcap/piggyback/types"
	"github.com/stretchr/testify/require"
)

func TestReportFormat(t *testing.T) {
	var buf bytes.Buffer
	c := NewContext(Options{Output: &buf})
	require.NoError(t, c.Arm(1, numericColumns("no_emps", "age")))
	c.OnScanInitialized(1, eqIntPredicate(1, 2, 33))

	for _, row := range [][]types.Datum{intRow(4, 33), intRow(7, 33), intRow(4, 33)} {
		require.NoError(t, c.OnRowProduced(row))
	}
	c.Finalize()

	require.Equal(t,
		"column no_emps (0) has 2 distinct values.\n"+
			"column age (1) distinct count short-circuited by equality predicate.\n"+
			"processed 3 rows.\n",
		buf.String())
}

func TestReportUnnamedColumnFallback(t *testing.T) {
	var buf bytes.Buffer
	c := NewContext(Options{Output: &buf})
	require.NoError(t, c.Arm(1, []ColumnInfo{
		{Desc: ColumnDescriptor{TableID: 1, ColumnID: 1}, Tag: types.TagNumeric},
	}))
	require.NoError(t, c.OnRowProduced(intRow(5)))
	c.Finalize()

	require.Equal(t,
		"column col0 (0) has 1 distinct values.\n"+
			"processed 1 rows.\n",
		buf.String())
}

func TestVerboseReportCandidates(t *testing.T) {
	var buf bytes.Buffer
	c := NewContext(Options{Output: &buf, Verbose: true})
	require.NoError(t, c.Arm(1, numericColumns("id", "dept")))

	// id is unique, dept repeats, and id determines dept.
	for _, row := range [][]types.Datum{intRow(1, 10), intRow(2, 10), intRow(3, 20)} {
		require.NoError(t, c.OnRowProduced(row))
	}
	c.Finalize()

	out := buf.String()
	require.Contains(t, out, "unique column combination candidate: id.\n")
	require.Contains(t, out, "unique column combination candidate: id, dept.\n")
	require.Contains(t, out, "functional dependency candidate: id -> dept.\n")
	require.NotContains(t, out, "dept -> id")
}
