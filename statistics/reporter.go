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
	"strings"
)

// report writes the human-readable summary to the configured output stream.
// The per-column line format is contract, consumed by external tooling, so
// it goes to the plain writer rather than the structured log.
func (c *Context) report() {
	w := c.opts.Output
	for i := range c.cols {
		col := &c.cols[i]
		name := col.DisplayName(i)
		if col.DistinctFinal {
			fmt.Fprintf(w, "column %s (%d) distinct count short-circuited by equality predicate.\n", name, i)
			continue
		}
		fmt.Fprintf(w, "column %s (%d) has %d distinct values.\n", name, i, col.DistinctCount())
	}
	fmt.Fprintf(w, "processed %d rows.\n", c.rowCount)
	if !c.opts.Verbose {
		return
	}
	for _, ucc := range c.CandidateUCCs() {
		fmt.Fprintf(w, "unique column combination candidate: %s.\n", c.columnList(ucc.Columns))
	}
	for _, fd := range c.CandidateFDs() {
		fmt.Fprintf(w, "functional dependency candidate: %s -> %s.\n",
			c.cols[fd.Determinant].DisplayName(fd.Determinant),
			c.cols[fd.Dependent].DisplayName(fd.Dependent))
	}
}

func (c *Context) columnList(positions []int) string {
	names := make([]string, 0, len(positions))
	for _, pos := range positions {
		names = append(names, c.cols[pos].DisplayName(pos))
	}
	return strings.Join(names, ", ")
}
