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

package algo

import "github.com/ajroetker/go-highway-algo/hwy"

// Predicate tests elements against a target with one comparison operator:
// an element x matches when "x Op Target" holds.
type Predicate[T hwy.Lanes] struct {
	Op     hwy.CmpOp
	Target T
}

// Test returns true if the scalar value satisfies the predicate.
func (p Predicate[T]) Test(value T) bool {
	return hwy.CompareScalar(value, p.Target, p.Op)
}

// Prepare resolves the predicate for one dispatch level: the broadcast target
// vector and the partial-vector plan are computed once, before the scan.
// When level cannot evaluate the operator on T the whole scan runs on the
// scalar tier.
func (p Predicate[T]) Prepare(level hwy.DispatchLevel) Prepared[T] {
	if !hwy.Supports(hwy.KindOf[T](), p.Op, level) {
		level = hwy.DispatchScalar
	}
	lanes := hwy.LanesFor[T](level)
	var filler T
	return Prepared[T]{
		Predicate: p,
		level:     level,
		lanes:     lanes,
		target:    hwy.SetN(lanes, p.Target),
		filler:    filler,
		tail:      hwy.PlanTail(p.Op, hwy.Known(p.Target), filler, level),
	}
}

// Prepared is a Predicate bound to a dispatch level.
type Prepared[T hwy.Lanes] struct {
	Predicate[T]

	level  hwy.DispatchLevel
	lanes  int
	target hwy.Vec[T]
	filler T
	tail   hwy.TailAction
}

// Level returns the tier the predicate evaluates on.
func (p Prepared[T]) Level() hwy.DispatchLevel {
	return p.level
}

// Lanes returns the number of elements tested per vector.
func (p Prepared[T]) Lanes() int {
	return p.lanes
}

// Tail returns the plan applied to a partial final vector.
func (p Prepared[T]) Tail() hwy.TailAction {
	return p.tail
}

// Apply tests up to Lanes elements of chunk. A short chunk is padded with
// the zero filler and the tail plan is applied, so lanes past len(chunk)
// always read inactive.
func (p Prepared[T]) Apply(chunk []T) hwy.Mask[T] {
	if len(chunk) >= p.lanes {
		return hwy.Compare(hwy.LoadN(chunk, p.lanes), p.target, p.Op, p.level)
	}
	m := hwy.Compare(hwy.LoadPadded(chunk, p.lanes, p.filler), p.target, p.Op, p.level)
	return m.ApplyTail(p.tail, len(chunk))
}

// prepare binds a predicate to the current dispatch level.
func prepare[T hwy.Lanes](op hwy.CmpOp, target T) Prepared[T] {
	return Predicate[T]{Op: op, Target: target}.Prepare(hwy.CurrentLevel())
}
