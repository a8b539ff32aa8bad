package entity

// RawPushSubscription is the untyped result of asking the platform for a push
// endpoint. It is constructed fresh per subscription attempt and discarded
// after normalization into a Subscription.
//
// Exactly one of Endpoint (VAPID/legacy push) or SafariDeviceToken (Safari
// proprietary push) is set. Key material is optional; older browsers do not
// expose it and downstream consumers must treat the fields as absent, not as
// an error.
type RawPushSubscription struct {
	Endpoint          string `json:"endpoint,omitempty"`
	SafariDeviceToken string `json:"safariDeviceToken,omitempty"`
	P256dh            string `json:"p256dh,omitempty"` // Base64-encoded public encryption key.
	Auth              string `json:"auth,omitempty"`   // Base64-encoded auth secret.
}

// Token returns the value registered with the backend: the Safari device
// token when present, otherwise the push endpoint URL.
func (r *RawPushSubscription) Token() string {
	if r.SafariDeviceToken != "" {
		return r.SafariDeviceToken
	}

	return r.Endpoint
}
