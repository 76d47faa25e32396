// Package ptr provides pointer helpers for optional struct fields.
package ptr

// To returns a pointer to v.
func To[T any](v T) *T {
	return &v
}
