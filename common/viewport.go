package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// HUDHeight is the strip at the top of the window reserved for the toolbar.
	HUDHeight = 64
)
