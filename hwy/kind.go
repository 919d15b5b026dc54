// Copyright 2025 go-highway Authors
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

package hwy

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Kind identifies a primitive lane element type. It is a dispatch tag only:
// every kernel table in this package is indexed by Kind.
type Kind uint8

const (
	KindUint8 Kind = iota
	KindUint16
	KindUint32
	KindUint64
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64

	numKinds
)

var kindNames = [numKinds]string{
	KindUint8:   "uint8",
	KindUint16:  "uint16",
	KindUint32:  "uint32",
	KindUint64:  "uint64",
	KindInt8:    "int8",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindFloat32: "float32",
	KindFloat64: "float64",
}

// AllKinds lists every supported element kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// String returns the Go name of the element type.
func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKind returns the Kind named by s ("uint8", "int64", "float32", ...).
// The aliases "byte", "u8", "i32", "f64" and similar are accepted.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "byte", "u8":
		return KindUint8, nil
	case "u16":
		return KindUint16, nil
	case "u32":
		return KindUint32, nil
	case "u64":
		return KindUint64, nil
	case "sbyte", "i8":
		return KindInt8, nil
	case "i16":
		return KindInt16, nil
	case "i32":
		return KindInt32, nil
	case "i64":
		return KindInt64, nil
	case "f32", "float":
		return KindFloat32, nil
	case "f64", "double":
		return KindFloat64, nil
	}
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("hwy: unknown element kind %q", s)
}

// Bits returns the lane width in bits.
func (k Kind) Bits() int {
	return k.Size() * 8
}

// Size returns the lane width in bytes.
func (k Kind) Size() int {
	switch k {
	case KindUint8, KindInt8:
		return 1
	case KindUint16, KindInt16:
		return 2
	case KindUint32, KindInt32, KindFloat32:
		return 4
	default:
		return 8
	}
}

// IsSigned reports whether k is a signed integer kind.
func (k Kind) IsSigned() bool {
	return k >= KindInt8 && k <= KindInt64
}

// IsUnsigned reports whether k is an unsigned integer kind.
func (k Kind) IsUnsigned() bool {
	return k <= KindUint64
}

// IsFloat reports whether k is an IEEE floating-point kind.
func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// LaneOnes returns the all-bits-set pattern of one lane.
func (k Kind) LaneOnes() uint64 {
	if k.Bits() == 64 {
		return math.MaxUint64
	}
	return 1<<uint(k.Bits()) - 1
}

// SignBit returns the bit pattern of the lane's most significant bit, which is
// also the bit pattern of the signed minimum value.
func (k Kind) SignBit() uint64 {
	return 1 << uint(k.Bits()-1)
}

// MaxUnsigned returns the largest value of the unsigned integer of k's width.
func (k Kind) MaxUnsigned() uint64 {
	return k.LaneOnes()
}

// MaxSigned returns the largest value of the signed integer of k's width.
func (k Kind) MaxSigned() int64 {
	return int64(k.SignBit() - 1)
}

// MinSigned returns the smallest value of the signed integer of k's width.
func (k Kind) MinSigned() int64 {
	return -k.MaxSigned() - 1
}

// KindOf returns the Kind of the lane type T.
func KindOf[T Lanes]() Kind {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Uint64:
		return KindUint64
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int64:
		return KindInt64
	case reflect.Float32:
		return KindFloat32
	default:
		return KindFloat64
	}
}
