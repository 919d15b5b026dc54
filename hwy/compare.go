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
	"errors"
	"fmt"
	"strings"
)

// CmpOp is a lane comparison operator.
type CmpOp uint8

const (
	CmpEq CmpOp = iota // EqualTo
	CmpNe              // NotEqualTo
	CmpGt              // GreaterThan
	CmpLt              // LessThan
	CmpGe              // GreaterThanOrEqualTo
	CmpLe              // LessThanOrEqualTo

	numCmpOps
)

// AllCmpOps lists every comparison operator.
func AllCmpOps() []CmpOp {
	return []CmpOp{CmpEq, CmpNe, CmpGt, CmpLt, CmpGe, CmpLe}
}

var cmpOpNames = [numCmpOps]string{"EqualTo", "NotEqualTo", "GreaterThan", "LessThan", "GreaterThanOrEqualTo", "LessThanOrEqualTo"}

func (op CmpOp) String() string {
	if op < numCmpOps {
		return cmpOpNames[op]
	}
	return fmt.Sprintf("CmpOp(%d)", uint8(op))
}

// MarshalText implements encoding.TextMarshaler.
func (op CmpOp) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// Symbol returns the Go operator for op, e.g. "<=".
func (op CmpOp) Symbol() string {
	return [...]string{"==", "!=", ">", "<", ">=", "<="}[op]
}

// Negate returns the operator whose result is the logical negation of op's
// for every pair of ordered (non-NaN) operands.
func (op CmpOp) Negate() CmpOp {
	return [...]CmpOp{CmpNe, CmpEq, CmpLe, CmpGe, CmpLt, CmpGt}[op]
}

// Swap returns the operator with exchanged operands: a op b == b op.Swap() a.
func (op CmpOp) Swap() CmpOp {
	return [...]CmpOp{CmpEq, CmpNe, CmpLt, CmpGt, CmpLe, CmpGe}[op]
}

// ParseCmpOp canonicalizes every accepted spelling of a comparison operator.
// Aliases are resolved here so the kernel only ever sees canonical tags.
func ParseCmpOp(s string) (CmpOp, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "==", "=", "eq", "equal", "equalto", "equals":
		return CmpEq, nil
	case "!=", "<>", "ne", "neq", "notequal", "notequalto":
		return CmpNe, nil
	case ">", "gt", "greater", "greaterthan":
		return CmpGt, nil
	case "<", "lt", "less", "lessthan":
		return CmpLt, nil
	case ">=", "ge", "gte", "greaterequal", "greaterthanorequalto", "notlessthan":
		return CmpGe, nil
	case "<=", "le", "lte", "lessequal", "lessthanorequalto", "notgreaterthan":
		return CmpLe, nil
	}
	return 0, fmt.Errorf("hwy: unknown comparison operator %q", s)
}

// ErrUnsupportedInstruction reports a (kind, operator, level) combination the
// tier cannot realize. It is a configuration error: callers are expected to
// check Supports up front and use the scalar path for the whole operation.
var ErrUnsupportedInstruction = errors.New("hwy: unsupported instruction")

// primitive names the instruction sequence a rule executes.
type primitive uint8

const (
	primUnsupported primitive = iota
	primScalar                // Go relational operators, no vector instruction
	primEq                    // pcmpeq
	primNe                    // vpcmp NE
	primGt                    // pcmpgt (signed)
	primGtU                   // vpcmpu GT / cmhi
	primGe                    // vpcmp NLT / cmge
	primGeU                   // vpcmpu NLT / cmhs
	primEq64Pairs             // pcmpeqd + pshufd + pand
	primGt64Split             // pcmpgtd halves + pcmpeqq
	primMaxUEq                // pmaxud + pcmpeqd
	primFloat                 // cmpps / cmppd predicate
)

var primitiveNames = [...]string{
	primUnsupported: "unsupported",
	primScalar:      "scalar",
	primEq:          "cmpeq",
	primNe:          "cmpne",
	primGt:          "cmpgt",
	primGtU:         "cmpgtu",
	primGe:          "cmpge",
	primGeU:         "cmpgeu",
	primEq64Pairs:   "cmpeq32x2",
	primGt64Split:   "cmpgt64split",
	primMaxUEq:      "maxu+cmpeq",
	primFloat:       "cmpf",
}

func (p primitive) String() string {
	return primitiveNames[p]
}

// cmpRule is one entry of the dispatch table.
type cmpRule struct {
	prim primitive
	pred floatPredicate // primFloat only
	op   CmpOp          // primScalar only

	// swap exchanges the operands before the primitive runs (lhs < rhs is
	// evaluated as rhs > lhs).
	swap bool

	// bias XORs both operands with the sign bit so that a signed-only
	// primitive orders unsigned lanes.
	bias bool

	// invert marks a result whose lanes must be read negated by the
	// consumer. The kernel never flips the bits itself.
	invert bool
}

// RuleInfo describes how one table entry is realized, for diagnostics.
type RuleInfo struct {
	Kind      Kind          `yaml:"kind"`
	Op        CmpOp         `yaml:"op"`
	Level     DispatchLevel `yaml:"level"`
	Supported bool          `yaml:"supported"`
	Primitive string        `yaml:"primitive"`
	Predicate string        `yaml:"predicate,omitempty"`
	Swapped   bool          `yaml:"swapped"`
	Biased    bool          `yaml:"biased"`
	Inverted  bool          `yaml:"inverted"`
}

// levelCaps lists the comparison capabilities of an integer vector tier.
type levelCaps struct {
	unsignedOrder bool // native unsigned GT/GE
	nativeGe      bool // native GE for signed and unsigned lanes
	nativeNe      bool // native not-equal predicate
	eq64          bool // native 64-bit lane equality
	gt64          bool // native 64-bit lane greater-than
	u32MinMax     bool // order unsigned 32-bit GE/LE via pmaxud/pminud
}

var capsByLevel = [numLevels]levelCaps{
	DispatchSSE2:   {},
	DispatchSSE41:  {eq64: true, u32MinMax: true},
	DispatchNEON:   {unsignedOrder: true, nativeGe: true, eq64: true, gt64: true},
	DispatchAVX2:   {eq64: true, gt64: true},
	DispatchAVX512: {unsignedOrder: true, nativeGe: true, nativeNe: true, eq64: true, gt64: true},
}

// compareTable is indexed by [kind][op][level]. Built once in init, read-only
// afterwards.
var compareTable [numKinds][numCmpOps][numLevels]cmpRule

func init() {
	for k := range numKinds {
		for op := range numCmpOps {
			for l := range numLevels {
				compareTable[k][op][l] = buildRule(Kind(k), CmpOp(op), DispatchLevel(l))
			}
		}
	}
}

// buildRule is the single place where the derivation rules live.
func buildRule(k Kind, op CmpOp, level DispatchLevel) cmpRule {
	if level == DispatchScalar {
		return cmpRule{prim: primScalar, op: op}
	}
	if k.IsFloat() {
		preds := [...]floatPredicate{predEQOQ, predNEQUQ, predGTOQ, predLTOQ, predGEOQ, predLEOQ}
		return cmpRule{prim: primFloat, pred: preds[op]}
	}

	caps := capsByLevel[level]
	wide := k.Bits() == 64

	switch op {
	case CmpEq:
		if wide && !caps.eq64 {
			return cmpRule{prim: primEq64Pairs}
		}
		return cmpRule{prim: primEq}

	case CmpNe:
		if caps.nativeNe {
			return cmpRule{prim: primNe}
		}
		r := buildRule(k, CmpEq, level)
		r.invert = true
		return r

	case CmpGt:
		if wide && !caps.gt64 {
			// Order compares on 64-bit lanes are only derivable from a
			// native 64-bit equality.
			if !caps.eq64 {
				return cmpRule{prim: primUnsupported}
			}
			return cmpRule{prim: primGt64Split}
		}
		if !k.IsUnsigned() {
			return cmpRule{prim: primGt}
		}
		if caps.unsignedOrder {
			return cmpRule{prim: primGtU}
		}
		return cmpRule{prim: primGt, bias: true}

	case CmpLt:
		r := buildRule(k, CmpGt, level)
		r.swap = !r.swap
		return r

	case CmpGe:
		if caps.nativeGe {
			if k.IsUnsigned() {
				return cmpRule{prim: primGeU}
			}
			return cmpRule{prim: primGe}
		}
		if k == KindUint32 && caps.u32MinMax {
			return cmpRule{prim: primMaxUEq}
		}
		// a >= b == !(a < b)
		r := buildRule(k, CmpLt, level)
		if r.prim == primUnsupported {
			return r
		}
		r.invert = !r.invert
		return r

	case CmpLe:
		if caps.nativeGe || (k == KindUint32 && caps.u32MinMax) {
			r := buildRule(k, CmpGe, level)
			r.swap = !r.swap
			return r
		}
		// a <= b == !(a > b)
		r := buildRule(k, CmpGt, level)
		if r.prim == primUnsupported {
			return r
		}
		r.invert = !r.invert
		return r
	}
	return cmpRule{prim: primUnsupported}
}

func lookupRule(k Kind, op CmpOp, level DispatchLevel) cmpRule {
	if k >= numKinds || op >= numCmpOps || level < 0 || level >= numLevels {
		return cmpRule{prim: primUnsupported}
	}
	return compareTable[k][op][level]
}

// Supports reports whether level can evaluate op on lanes of kind k.
func Supports(k Kind, op CmpOp, level DispatchLevel) bool {
	return lookupRule(k, op, level).prim != primUnsupported
}

// CheckSupported returns an error wrapping ErrUnsupportedInstruction when
// level cannot evaluate op on lanes of kind k.
func CheckSupported(k Kind, op CmpOp, level DispatchLevel) error {
	if Supports(k, op, level) {
		return nil
	}
	return fmt.Errorf("%w: %s %s on %s", ErrUnsupportedInstruction, k, op, level)
}

// DescribeRule reports how (k, op, level) is realized.
func DescribeRule(k Kind, op CmpOp, level DispatchLevel) RuleInfo {
	r := lookupRule(k, op, level)
	info := RuleInfo{
		Kind:      k,
		Op:        op,
		Level:     level,
		Supported: r.prim != primUnsupported,
		Primitive: r.prim.String(),
		Swapped:   r.swap,
		Biased:    r.bias,
		Inverted:  r.invert,
	}
	if r.prim == primFloat {
		info.Predicate = r.pred.name
	}
	return info
}

// InvertsResult reports whether Compare returns an inverted-polarity mask
// for (k, op, level).
func InvertsResult(k Kind, op CmpOp, level DispatchLevel) bool {
	return lookupRule(k, op, level).invert
}

// CompareScalar evaluates a op b with Go's relational operators. It is the
// scalar tier's implementation and the reference every vector rule must
// match. NaN operands follow IEEE semantics: only NotEqualTo is true.
func CompareScalar[T Lanes](a, b T, op CmpOp) bool {
	switch op {
	case CmpEq:
		return a == b
	case CmpNe:
		return a != b
	case CmpGt:
		return a > b
	case CmpLt:
		return a < b
	case CmpGe:
		return a >= b
	case CmpLe:
		return a <= b
	}
	panic(fmt.Errorf("%w: operator %s", ErrUnsupportedInstruction, op))
}

// Compare evaluates lhs op rhs lane by lane using the instructions of level.
//
// When the rule for (T, op, level) is derived by negation, the returned mask
// is marked inverted: its raw lanes hold the primitive's result and every
// Mask accessor reads them negated. Compare panics with an error wrapping
// ErrUnsupportedInstruction when level cannot realize the combination; check
// Supports first and fall back to CompareScalar for the whole operation.
func Compare[T Lanes](lhs, rhs Vec[T], op CmpOp, level DispatchLevel) Mask[T] {
	k := KindOf[T]()
	rule := lookupRule(k, op, level)

	switch rule.prim {
	case primUnsupported:
		panic(CheckSupported(k, op, level))
	case primScalar:
		n := min(len(lhs.data), len(rhs.data))
		bits := make([]bool, n)
		for i := range n {
			bits[i] = CompareScalar(lhs.data[i], rhs.data[i], rule.op)
		}
		return Mask[T]{bits: bits}
	}

	a, b := registerOf(lhs), registerOf(rhs)
	if rule.swap {
		a, b = b, a
	}
	if rule.bias {
		a, b = biasSign(a), biasSign(b)
		// Biased lanes are ordered by the signed primitive.
		a.kind, b.kind = signedKind(k), signedKind(k)
	}

	var res register
	switch rule.prim {
	case primEq:
		res = pcmpeq(a, b)
	case primNe:
		res = pcmpne(a, b)
	case primGt:
		res = pcmpgt(a, b)
	case primGtU:
		res = pcmpgtu(a, b)
	case primGe:
		res = pcmpge(a, b)
	case primGeU:
		res = pcmpgeu(a, b)
	case primEq64Pairs:
		res = pcmpeq64Pairs(a, b)
	case primGt64Split:
		res = pcmpgt64Split(a, b, k.IsUnsigned())
	case primMaxUEq:
		res = pmaxudEq(a, b)
	case primFloat:
		res = cmpf(a, b, rule.pred)
	}
	return maskFromRegister[T](res, rule.invert)
}

// signedKind returns the signed integer kind of the same width as k.
func signedKind(k Kind) Kind {
	switch k.Bits() {
	case 8:
		return KindInt8
	case 16:
		return KindInt16
	case 32:
		return KindInt32
	default:
		return KindInt64
	}
}
