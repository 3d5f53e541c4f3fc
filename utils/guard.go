package utils

// Guard runs a cleanup only when the guarded function returns early with an error. It
// replaces the "defer if !success" dance around partially built resources:
//
//	guard := NewGuard(func() { frames.Close() })
//	defer guard.OnFail()
//	...
//	guard.Success()
type Guard struct {
	OnFail  func()
	success bool
}

// NewGuard returns a Guard that calls onFailCleanup from OnFail unless Success was called.
func NewGuard(onFailCleanup func()) *Guard {
	ret := &Guard{}
	ret.OnFail = func() {
		if !ret.success {
			onFailCleanup()
		}
	}
	return ret
}

// Success disarms the guard.
func (guard *Guard) Success() {
	guard.success = true
}
