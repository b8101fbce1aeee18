// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package mapst holds small generic map helpers.
package mapst

import (
	"cmp"
	"slices"
)

// Keys

// Keys returns the keys of m in ascending order.
func Keys[K cmp.Ordered, V any, M ~map[K]V](m M) []K {
	result := make([]K, 0, len(m))
	for k := range m {
		result = append(result, k)
	}
	slices.Sort(result)
	return result
}

// Values

// SortedValues returns the values of m ordered by their keys.
func SortedValues[K cmp.Ordered, V any, M ~map[K]V](m M) []V {
	result := make([]V, 0, len(m))
	for _, k := range Keys(m) {
		result = append(result, m[k])
	}
	return result
}

// Find

// FindKey returns the first key, in key order, whose value matches.
func FindKey[K cmp.Ordered, V any, M ~map[K]V](m M, match func(V) bool) (K, bool) {
	for _, k := range Keys(m) {
		if match(m[k]) {
			return k, true
		}
	}
	var zero K
	return zero, false
}
