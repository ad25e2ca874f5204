// Package utils holds helpers for the optional (pointer) fields of requests.
package utils

// Ref returns a pointer to a copy of value.
func Ref[T any](value T) *T {
	return &value
}

// Deref returns *value, or the zero T for nil.
func Deref[T any](value *T) T {
	if value == nil {
		var zero T
		return zero
	}
	return *value
}
