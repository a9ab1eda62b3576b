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
package problem

// StandardPrelude fixes the intended interpretation shared by every rendered
// problem: the sorts general and symbol, the injections f__integer__ and
// f__symbolic__ embedding integers and symbols into general, and a total
// order p__less__ over general with least element c__infimum__ and greatest
// element c__supremum__, agreeing with $less on embedded integers and
// placing every integer below every symbol.
const StandardPrelude = `tff(type_general, type, general: $tType).
tff(type_symbol, type, symbol: $tType).
tff(type_f__integer__, type, f__integer__: $int > general).
tff(type_f__symbolic__, type, f__symbolic__: symbol > general).
tff(type_c__infimum__, type, c__infimum__: general).
tff(type_c__supremum__, type, c__supremum__: general).
tff(type_p__less__, type, p__less__: (general * general) > $o).
tff(type_p__less_equal__, type, p__less_equal__: (general * general) > $o).
tff(type_p__greater__, type, p__greater__: (general * general) > $o).
tff(type_p__greater_equal__, type, p__greater_equal__: (general * general) > $o).
tff(f__integer___injective, axiom, ![X: $int, Y: $int]: ((f__integer__(X) = f__integer__(Y)) => (X = Y))).
tff(f__symbolic___injective, axiom, ![X: symbol, Y: symbol]: ((f__symbolic__(X) = f__symbolic__(Y)) => (X = Y))).
tff(integers_distinct_from_symbols, axiom, ![X: $int, Y: symbol]: (f__integer__(X) != f__symbolic__(Y))).
tff(infimum_not_integer, axiom, ![X: $int]: (c__infimum__ != f__integer__(X))).
tff(supremum_not_integer, axiom, ![X: $int]: (c__supremum__ != f__integer__(X))).
tff(infimum_not_symbol, axiom, ![X: symbol]: (c__infimum__ != f__symbolic__(X))).
tff(supremum_not_symbol, axiom, ![X: symbol]: (c__supremum__ != f__symbolic__(X))).
tff(p__less___irreflexive, axiom, ![X: general]: (~p__less__(X, X))).
tff(p__less___transitive, axiom, ![X: general, Y: general, Z: general]: ((p__less__(X, Y) & p__less__(Y, Z)) => p__less__(X, Z))).
tff(p__less___total, axiom, ![X: general, Y: general]: ((p__less__(X, Y) | p__less__(Y, X)) | (X = Y))).
tff(c__infimum___least, axiom, ![X: general]: ((X != c__infimum__) => p__less__(c__infimum__, X))).
tff(c__supremum___greatest, axiom, ![X: general]: ((X != c__supremum__) => p__less__(X, c__supremum__))).
tff(p__less___embeds_integer_order, axiom, ![X: $int, Y: $int]: (p__less__(f__integer__(X), f__integer__(Y)) <=> $less(X, Y))).
tff(integers_below_symbols, axiom, ![X: $int, Y: symbol]: p__less__(f__integer__(X), f__symbolic__(Y))).
tff(p__less_equal___definition, axiom, ![X: general, Y: general]: (p__less_equal__(X, Y) <=> (p__less__(X, Y) | (X = Y)))).
tff(p__greater___definition, axiom, ![X: general, Y: general]: (p__greater__(X, Y) <=> p__less__(Y, X))).
tff(p__greater_equal___definition, axiom, ![X: general, Y: general]: (p__greater_equal__(X, Y) <=> p__less_equal__(Y, X))).
`
