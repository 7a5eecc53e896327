//go:build !cgo

package hal

// oto needs cgo on desktop systems; without it there is no audio driver.
func newOtoDriver() AudioDriver { return nil }
