package entity

// DeliveryPlatform is the backend's numeric tag for the push delivery channel
// a device registers through. The values are part of the registration API
// contract and must not be renumbered.
type DeliveryPlatform int

const (
	// DeliveryPlatformChromeLike covers Chrome and Chromium-derived browsers.
	DeliveryPlatformChromeLike DeliveryPlatform = 5
	// DeliveryPlatformSafari covers Safari's proprietary push.
	DeliveryPlatformSafari DeliveryPlatform = 7
	// DeliveryPlatformFirefox covers Firefox.
	DeliveryPlatformFirefox DeliveryPlatform = 8
)
