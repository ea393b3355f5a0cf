//go:build !windows

package tinput

// ExecuteNative is the fallback for terminals which don't interpret control
// sequences. Every terminal tinput drives on this platform does, so there is
// nothing to do
func (c Command) ExecuteNative() error {
	return nil
}

func supportsANSI() bool {
	return true
}
