// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package syntax

import (
	"sort"
	"strconv"
)

// VariableSet is an insertion-ordered set of variables.  Determinism of every
// transformation depends on iteration order being reproducible, hence sets
// remember the order in which elements first arrived.
type VariableSet struct {
	elems []Variable
	index map[Variable]bool
}

// NewVariableSet constructs an empty variable set.
func NewVariableSet(vars ...Variable) *VariableSet {
	s := &VariableSet{index: make(map[Variable]bool)}
	for _, v := range vars {
		s.Add(v)
	}
	//
	return s
}

// Add inserts a variable, keeping the first-occurrence order.
func (s *VariableSet) Add(v Variable) {
	if s.index == nil {
		s.index = make(map[Variable]bool)
	}
	//
	if !s.index[v] {
		s.index[v] = true
		s.elems = append(s.elems, v)
	}
}

// AddAll inserts every variable of another set.
func (s *VariableSet) AddAll(other *VariableSet) {
	for _, v := range other.elems {
		s.Add(v)
	}
}

// Remove deletes a variable from the set, if present.
func (s *VariableSet) Remove(v Variable) {
	if s.index[v] {
		delete(s.index, v)

		for i, e := range s.elems {
			if e == v {
				s.elems = append(s.elems[:i:i], s.elems[i+1:]...)
				break
			}
		}
	}
}

// Contains reports whether the set holds the given variable.
func (s *VariableSet) Contains(v Variable) bool {
	return s.index[v]
}

// ContainsName reports whether any variable with the given name is present,
// regardless of sort.
func (s *VariableSet) ContainsName(name string) bool {
	for _, v := range s.elems {
		if v.Name == name {
			return true
		}
	}
	//
	return false
}

// Len returns the number of elements.
func (s *VariableSet) Len() int {
	return len(s.elems)
}

// Slice returns the elements in insertion order.  The caller must not mutate
// the result.
func (s *VariableSet) Slice() []Variable {
	return s.elems
}

// Sorted returns the elements ordered by name.
func (s *VariableSet) Sorted() []Variable {
	vars := make([]Variable, len(s.elems))
	copy(vars, s.elems)
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	//
	return vars
}

// Predicate identifies a predicate symbol together with its arity.
type Predicate struct {
	Symbol string
	Arity  int
}

func (p Predicate) String() string {
	return p.Symbol + "/" + strconv.Itoa(p.Arity)
}

// PredicateSet is an insertion-ordered set of predicates.
type PredicateSet struct {
	elems []Predicate
	index map[Predicate]bool
}

// NewPredicateSet constructs a predicate set from the given elements.
func NewPredicateSet(preds ...Predicate) *PredicateSet {
	s := &PredicateSet{index: make(map[Predicate]bool)}
	for _, p := range preds {
		s.Add(p)
	}
	//
	return s
}

// Add inserts a predicate, keeping the first-occurrence order.
func (s *PredicateSet) Add(p Predicate) {
	if s.index == nil {
		s.index = make(map[Predicate]bool)
	}
	//
	if !s.index[p] {
		s.index[p] = true
		s.elems = append(s.elems, p)
	}
}

// AddAll inserts every predicate of another set.
func (s *PredicateSet) AddAll(other *PredicateSet) {
	for _, p := range other.elems {
		s.Add(p)
	}
}

// Contains reports whether the set holds the given predicate.
func (s *PredicateSet) Contains(p Predicate) bool {
	return s.index[p]
}

// Len returns the number of elements.
func (s *PredicateSet) Len() int {
	return len(s.elems)
}

// Slice returns the elements in insertion order.  The caller must not mutate
// the result.
func (s *PredicateSet) Slice() []Predicate {
	return s.elems
}
