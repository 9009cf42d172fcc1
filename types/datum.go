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
	"fmt"
	"strconv"
	"strings"

	"github.com/pingcap/errors"
)

// Kind constants enumerate the runtime value kinds a Datum can hold.
// The zero value of Datum is the null datum.
const (
	KindNull byte = iota
	KindInt64
	KindFloat64
	KindString
	KindOther
)

// TypeTag is the declared type class of a result column. It is coarser than
// the runtime kind: the collector only distinguishes numeric, text and
// everything else.
type TypeTag byte

// TypeTag values.
const (
	TagOther TypeTag = iota
	TagNumeric
	TagText
)

// String implements fmt.Stringer.
func (t TypeTag) String() string {
	switch t {
	case TagNumeric:
		return "numeric"
	case TagText:
		return "text"
	}
	return "other"
}

// Datum is a typed scalar value produced by the row stream. Integer values of
// any width are carried as int64, decimals as float64 and character data as
// string. Kinds outside this list are represented as KindOther and carry no
// payload.
type Datum struct {
	k byte
	i int64
	f float64
	s string
}

// Kind gets the kind of the datum.
func (d Datum) Kind() byte {
	return d.k
}

// IsNull checks if datum is null.
func (d Datum) IsNull() bool {
	return d.k == KindNull
}

// GetInt64 gets the int64 value.
func (d Datum) GetInt64() int64 {
	return d.i
}

// SetInt64 sets the int64 value.
func (d *Datum) SetInt64(i int64) {
	d.k = KindInt64
	d.i = i
}

// GetFloat64 gets the float64 value.
func (d Datum) GetFloat64() float64 {
	return d.f
}

// SetFloat64 sets the float64 value.
func (d *Datum) SetFloat64(f float64) {
	d.k = KindFloat64
	d.f = f
}

// GetString gets the string value.
func (d Datum) GetString() string {
	return d.s
}

// SetString sets the string value.
func (d *Datum) SetString(s string) {
	d.k = KindString
	d.s = s
}

// SetNull sets the datum to null.
func (d *Datum) SetNull() {
	*d = Datum{}
}

// TruncatedInt64 returns the value truncated towards zero to an int64.
// For string datums it returns 0; exact decimal comparison is not a goal of
// the collector, so the truncation loss is accepted.
func (d Datum) TruncatedInt64() int64 {
	switch d.k {
	case KindInt64:
		return d.i
	case KindFloat64:
		return int64(d.f)
	}
	return 0
}

// Equal reports whether two datums hold the same value. Datums of different
// kinds never compare equal, and null equals nothing, including null.
func (d Datum) Equal(other Datum) bool {
	if d.k != other.k || d.k == KindNull || d.k == KindOther {
		return false
	}
	switch d.k {
	case KindInt64:
		return d.i == other.i
	case KindFloat64:
		return d.f == other.f
	case KindString:
		return d.s == other.s
	}
	return false
}

// Compare compares the datum with another one and returns -1/0/+1. It only
// supports datums of the same kind.
func (d Datum) Compare(other Datum) (int, error) {
	if d.k != other.k {
		return 0, errors.Errorf("cannot compare %s with %s", d, other)
	}
	switch d.k {
	case KindInt64:
		return cmp(d.i, other.i), nil
	case KindFloat64:
		switch {
		case d.f < other.f:
			return -1, nil
		case d.f > other.f:
			return 1, nil
		}
		return 0, nil
	case KindString:
		return strings.Compare(d.s, other.s), nil
	}
	return 0, errors.Errorf("cannot compare datums of kind %d", d.k)
}

func cmp(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// String implements fmt.Stringer, for logs and error messages only.
func (d Datum) String() string {
	switch d.k {
	case KindNull:
		return "NULL"
	case KindInt64:
		return strconv.FormatInt(d.i, 10)
	case KindFloat64:
		return strconv.FormatFloat(d.f, 'g', -1, 64)
	case KindString:
		return fmt.Sprintf("%q", d.s)
	}
	return "<other>"
}

// NewIntDatum creates a new Datum from an int64 value. Narrower integer
// widths are widened by the caller, which is lossless.
func NewIntDatum(i int64) (d Datum) {
	d.SetInt64(i)
	return d
}

// NewFloat64Datum creates a new Datum from a float64 value.
func NewFloat64Datum(f float64) (d Datum) {
	d.SetFloat64(f)
	return d
}

// NewStringDatum creates a new Datum from a string value.
func NewStringDatum(s string) (d Datum) {
	d.SetString(s)
	return d
}

// NewOtherDatum creates a non-null Datum of an unsupported runtime kind.
func NewOtherDatum() Datum {
	return Datum{k: KindOther}
}
