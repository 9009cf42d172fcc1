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

package executor

import (
	"context"

	"github.com/pingcap/errors"
	"github.com/pingcap/piggyback/statistics"
)

// RowSink receives every row the root produces, after the collector has
// seen it.
type RowSink func(Row) error

// Run drives one execution: it opens the plan (which fires the predicate
// hooks for scan nodes), arms the collector on the root's schema, pulls rows
// from the root and feeds each one to the collector and the sink, then
// closes the plan and finalizes the collector. The collector is finalized on
// every exit path, including cancellation, so partially collected statistics
// are reported and released rather than leaked.
func Run(ctx context.Context, rootID int64, root Executor, collector *statistics.Context, sink RowSink) (err error) {
	if err = root.Open(ctx); err != nil {
		return errors.Trace(err)
	}
	defer func() {
		if cerr := root.Close(); cerr != nil && err == nil {
			err = errors.Trace(cerr)
		}
		if collector != nil {
			collector.Finalize()
		}
	}()
	if collector != nil {
		if err = collector.Arm(rootID, root.Schema()); err != nil {
			return errors.Trace(err)
		}
	}
	for {
		if err = ctx.Err(); err != nil {
			return errors.Trace(err)
		}
		var row Row
		row, err = root.Next(ctx)
		if err != nil {
			return errors.Trace(err)
		}
		if row == nil {
			return nil
		}
		if collector != nil {
			if err = collector.OnRowProduced(row); err != nil {
				return errors.Trace(err)
			}
		}
		if sink != nil {
			if err = sink(row); err != nil {
				return errors.Trace(err)
			}
		}
	}
}
