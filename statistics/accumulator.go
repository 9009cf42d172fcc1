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
	"fmt"

	"github.com/pingcap/errors"
	"github.com/pingcap/piggyback/types"
)

// formatIntSlot renders an integer slot value in a fixed 20-character
// decimal field, wide enough for any int64 including the sign.
func formatIntSlot(v int64) string {
	return fmt.Sprintf("%020d", v)
}

// accumulate dispatches one row's values into the column statistics and
// records each column's slot value for the pair builder. Fields sealed by an
// equality predicate are skipped, never overwritten.
func (c *Context) accumulate(row []types.Datum) error {
	for i := range row {
		col := &c.cols[i]
		d := row[i]
		slot := ""
		switch d.Kind() {
		case types.KindNull:
			// Null contributes an empty slot and no statistic updates.
		case types.KindInt64:
			v := d.GetInt64()
			slot = formatIntSlot(v)
			col.IsNumeric = true
			if err := col.updateMin(v); err != nil && !errors.ErrorEqual(err, ErrFinalStatistic) {
				return errors.Trace(err)
			}
			if err := col.updateMax(v); err != nil && !errors.ErrorEqual(err, ErrFinalStatistic) {
				return errors.Trace(err)
			}
			if !col.DistinctFinal {
				col.distinct.insertInt64(v)
			}
		case types.KindFloat64:
			// Decimals only contribute a truncated slot value; their
			// min/max/distinct tracking is out of scope for this
			// accumulator and IsNumeric is left untouched.
			slot = formatIntSlot(d.TruncatedInt64())
		case types.KindString:
			s := d.GetString()
			slot = s
			col.IsNumeric = false
			if !col.DistinctFinal {
				col.distinct.insertString(s)
			}
		default:
			// Unsupported kinds contribute an empty slot, non-fatally.
		}
		c.slots[i] = slot
	}
	return nil
}
