// Copyright 2023 Vexec Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import (
	"context"

	"golang.org/x/exp/constraints"

	"github.com/vexecdb/vexec/pkg/common/vxerr"
)

// The promotion rules form a join on a lattice: Join is commutative and
// associative, so resolving a set of operand types is independent of the
// order they are visited in.  This is guaranteed by construction: the join
// of integer types is computed from a per-operand width requirement and the
// result only depends on the multiset of operands, and any integer joined
// with a float resolves to float64, so no information about "how wide the
// integers really were" is lost across regroupings.
//
// Two deliberate deviations from strict losslessness keep the join total
// and associative:
//   - uint64 joined with a signed integer resolves to int64; extreme uint64
//     values do not survive the cast.
//   - float32 joined with any integer resolves to float64 even when the
//     integer range would fit a float32 exactly.

// signedWidthFor returns the byte width a signed integer needs to hold t.
func signedWidthFor(t T) int {
	switch t {
	case T_int8:
		return 1
	case T_int16:
		return 2
	case T_int32:
		return 4
	case T_int64:
		return 8
	case T_uint8:
		return 2
	case T_uint16:
		return 4
	case T_uint32:
		return 8
	case T_uint64:
		// an int64 is the best we can offer
		return 8
	}
	panic("not an integer type")
}

func unsignedWidth(t T) int {
	switch t {
	case T_uint8:
		return 1
	case T_uint16:
		return 2
	case T_uint32:
		return 4
	case T_uint64:
		return 8
	}
	panic("not an unsigned type")
}

func signedOfWidth(w int) T {
	switch w {
	case 1:
		return T_int8
	case 2:
		return T_int16
	case 4:
		return T_int32
	default:
		return T_int64
	}
}

func unsignedOfWidth(w int) T {
	switch w {
	case 1:
		return T_uint8
	case 2:
		return T_uint16
	case 4:
		return T_uint32
	default:
		return T_uint64
	}
}

func maxOf[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// joinNumeric joins two plain numeric types.
func joinNumeric(a, b T) T {
	// floats dominate
	if a == T_float64 || b == T_float64 {
		return T_float64
	}
	if a == T_float32 || b == T_float32 {
		if a == T_float32 && b == T_float32 {
			return T_float32
		}
		return T_float64
	}

	as, bs := a.IsSignedInt(), b.IsSignedInt()
	switch {
	case as && bs:
		return signedOfWidth(maxOf(signedWidthFor(a), signedWidthFor(b)))
	case !as && !bs:
		return unsignedOfWidth(maxOf(unsignedWidth(a), unsignedWidth(b)))
	default:
		return signedOfWidth(maxOf(signedWidthFor(a), signedWidthFor(b)))
	}
}

// joinTemporal joins two temporal instant types.  Only instants within one
// family promote; the single cross-family edge is date into datetime.
func joinTemporal(a, b T) (T, bool) {
	if a == b {
		return a, true
	}
	if (a == T_date && b == T_datetime) || (a == T_datetime && b == T_date) {
		return T_datetime, true
	}
	return T_any, false
}

// Join computes the least common supertype of a and b under the promotion
// lattice.
func Join(ctx context.Context, a, b T) (T, error) {
	if a == b {
		return a, nil
	}
	if a == T_any {
		return b, nil
	}
	if b == T_any {
		return a, nil
	}
	if a.IsNumeric() && b.IsNumeric() {
		return joinNumeric(a, b), nil
	}
	if a.IsTemporal() && b.IsTemporal() {
		if t, ok := joinTemporal(a, b); ok {
			return t, nil
		}
	}
	return T_any, vxerr.NewSupertype(ctx, a.String(), b.String())
}

// Supertype folds Join over all the given operand types.  Because Join is a
// lattice join, any fold order yields the same result.
func Supertype(ctx context.Context, ts ...T) (T, error) {
	if len(ts) == 0 {
		return T_any, vxerr.NewInternalError(ctx, "supertype of no types")
	}
	super := ts[0]
	for _, t := range ts[1:] {
		var err error
		if super, err = Join(ctx, super, t); err != nil {
			return T_any, err
		}
	}
	return super, nil
}
