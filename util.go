package sdk

// StringPtr is a convenience helper for optional update fields.
func StringPtr(s string) *string { return &s }

// IntPtr is a convenience helper for optional update fields.
func IntPtr(v int) *int { return &v }

// Float64Ptr is a convenience helper for optional update fields.
func Float64Ptr(v float64) *float64 { return &v }

// BoolPtr is a convenience helper for optional update fields.
func BoolPtr(b bool) *bool { return &b }
