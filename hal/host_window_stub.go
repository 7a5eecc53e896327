//go:build !cgo

package hal

const ebitenAvailable = false

func newEbitenPlatform(Logger) Platform { return nil }
