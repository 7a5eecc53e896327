//go:build !linux && !windows

package hal

// SystemControllers has no native controller driver on this platform.
func SystemControllers() (ControllerDriver, error) {
	return nil, ErrDriverUnavailable
}
