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

package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDatumKinds(t *testing.T) {
	var d Datum
	require.True(t, d.IsNull())
	require.Equal(t, KindNull, d.Kind())

	d.SetInt64(42)
	require.False(t, d.IsNull())
	require.Equal(t, KindInt64, d.Kind())
	require.Equal(t, int64(42), d.GetInt64())

	d.SetString("abc")
	require.Equal(t, KindString, d.Kind())
	require.Equal(t, "abc", d.GetString())

	d.SetNull()
	require.True(t, d.IsNull())
}

func TestDatumEqual(t *testing.T) {
	tests := []struct {
		a, b  Datum
		equal bool
	}{
		{NewIntDatum(3), NewIntDatum(3), true},
		{NewIntDatum(3), NewIntDatum(4), false},
		{NewIntDatum(3), NewStringDatum("3"), false},
		{NewStringDatum("x"), NewStringDatum("x"), true},
		{NewFloat64Datum(1.5), NewFloat64Datum(1.5), true},
		{Datum{}, Datum{}, false},
		{NewOtherDatum(), NewOtherDatum(), false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.equal, tt.a.Equal(tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestDatumCompare(t *testing.T) {
	c, err := NewIntDatum(1).Compare(NewIntDatum(2))
	require.NoError(t, err)
	require.Equal(t, -1, c)

	c, err = NewStringDatum("b").Compare(NewStringDatum("a"))
	require.NoError(t, err)
	require.Equal(t, 1, c)

	c, err = NewFloat64Datum(2.5).Compare(NewFloat64Datum(2.5))
	require.NoError(t, err)
	require.Equal(t, 0, c)

	_, err = NewIntDatum(1).Compare(NewStringDatum("1"))
	require.Error(t, err)
}

func TestTruncatedInt64(t *testing.T) {
	require.Equal(t, int64(3), NewFloat64Datum(3.9).TruncatedInt64())
	require.Equal(t, int64(-3), NewFloat64Datum(-3.9).TruncatedInt64())
	require.Equal(t, int64(7), NewIntDatum(7).TruncatedInt64())
	require.Equal(t, int64(0), NewStringDatum("12").TruncatedInt64())
}
