package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// CoalesceID returns the first non-nil id, or zero.
func CoalesceID(ids ...*int64) int64 {
	for _, id := range ids {
		if id != nil {
			return *id
		}
	}
	return 0
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
