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

// Package expression holds the residual-predicate descriptors the host
// engine attaches to scan operators. The collector only inspects these
// trees; it never evaluates them. Evaluation of the small operator subset
// the host supports lives with the host.
package expression

import (
	"fmt"
	"strings"

	"github.com/pingcap/piggyback/types"
)

// Op identifies a comparison or logical operator in a residual predicate.
type Op byte

// Op values. EQInt, EQFloat and EQText form the closed equality list the
// short-circuit analyzer recognizes; integer equality of every width
// collapses to EQInt when the host lowers its plan.
const (
	EQInt Op = iota
	EQFloat
	EQText
	NE
	LT
	LE
	GT
	GE
	LogicAnd
	LogicOr
)

// IsEquality reports whether the operator is in the closed equality list.
func (o Op) IsEquality() bool {
	return o == EQInt || o == EQFloat || o == EQText
}

// String implements fmt.Stringer.
func (o Op) String() string {
	switch o {
	case EQInt, EQFloat, EQText:
		return "eq"
	case NE:
		return "ne"
	case LT:
		return "lt"
	case LE:
		return "le"
	case GT:
		return "gt"
	case GE:
		return "ge"
	case LogicAnd:
		return "and"
	case LogicOr:
		return "or"
	}
	return "unknown"
}

// Expression is a node in a residual predicate tree.
type Expression interface {
	fmt.Stringer
}

// Column is a reference to a source column.
type Column struct {
	TableID  int64
	ColumnID int64
	Name     string
}

// String implements fmt.Stringer.
func (c *Column) String() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("t%d.c%d", c.TableID, c.ColumnID)
}

// Constant is a literal value.
type Constant struct {
	Value types.Datum
}

// String implements fmt.Stringer.
func (c *Constant) String() string {
	return c.Value.String()
}

// ScalarFunction applies an operator to its arguments.
type ScalarFunction struct {
	Op   Op
	Args []Expression
}

// NewFunction builds a ScalarFunction.
func NewFunction(op Op, args ...Expression) *ScalarFunction {
	return &ScalarFunction{Op: op, Args: args}
}

// String implements fmt.Stringer.
func (sf *ScalarFunction) String() string {
	args := make([]string, 0, len(sf.Args))
	for _, arg := range sf.Args {
		args = append(args, arg.String())
	}
	return fmt.Sprintf("%s(%s)", sf.Op, strings.Join(args, ", "))
}
