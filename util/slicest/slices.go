// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package slicest holds small generic slice helpers.
package slicest

// Map

func MapX[T, U any, S ~[]T](s S, fn func(T) (U, error)) ([]U, error) {
	result := make([]U, len(s))
	for i, v := range s {
		out, err := fn(v)
		if err != nil {
			return nil, err
		}
		result[i] = out
	}
	return result, nil
}

func Map[T, U any, S ~[]T](s S, fn func(T) U) []U {
	result, _ := MapX(s, func(t T) (U, error) {
		return fn(t), nil
	})
	return result
}

// Filter

// Filter returns the elements of s for which keep is true, in order.
func Filter[T any, S ~[]T](s S, keep func(T) bool) S {
	var result S
	for _, t := range s {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}

// Find

// Find returns the first element for which match is true.
func Find[T any, S ~[]T](s S, match func(T) bool) (T, bool) {
	for _, t := range s {
		if match(t) {
			return t, true
		}
	}
	var zero T
	return zero, false
}
