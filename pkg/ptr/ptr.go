package ptr

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// Value returns the value behind p or def when p is nil.
func Value[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
